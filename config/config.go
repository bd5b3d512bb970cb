// Package config loads tool configuration from an optional YAML file
// with environment variable overrides. Defaults place data under XDG
// directories, so tools work without any configuration at all.
package config

import (
	"os"
	"path"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/miku/pidkit"
	"gopkg.in/yaml.v3"
)

// Config for the identifier tools.
type Config struct {
	// DataDir is the generic data dir for all tools.
	DataDir string `yaml:"data_dir"`
	// FeedDir is the directory for raw data feeds only. Can be anything,
	// but recommended to be a subdirectory of the DataDir.
	FeedDir string `yaml:"feed_dir"`
	// IndexPath is the CSV file validity verdicts persist to.
	IndexPath string `yaml:"index_path"`
	// UserAgent sent with every registry and provider request.
	UserAgent string `yaml:"user_agent"`
	// MaxRetries is a generic retry count.
	MaxRetries int `yaml:"max_retries"`
	// Timeout is the per-request timeout.
	Timeout time.Duration `yaml:"timeout"`
	// RetryPause is the pause after a connection level failure.
	RetryPause time.Duration `yaml:"retry_pause"`
	// CrossrefApiEmail is sent as mailto parameter, as suggested by the
	// crossref REST API docs.
	CrossrefApiEmail string `yaml:"crossref_api_email"`
	// CrossrefApiFilter is the harvest filter, e.g. index or created.
	CrossrefApiFilter string `yaml:"crossref_api_filter"`
	// CrossrefFeedPrefix distinguishes different harvest runs.
	CrossrefFeedPrefix string `yaml:"crossref_feed_prefix"`
	// PubmedUpdateURL is the update file listing to watch.
	PubmedUpdateURL string `yaml:"pubmed_update_url"`
}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() *Config {
	dataDir := path.Join(xdg.DataHome, pidkit.AppName)
	return &Config{
		DataDir:            dataDir,
		FeedDir:            path.Join(dataDir, "feeds"),
		IndexPath:          path.Join(dataDir, "index.csv"),
		UserAgent:          pidkit.UserAgent,
		MaxRetries:         3,
		Timeout:            30 * time.Second,
		RetryPause:         5 * time.Second,
		CrossrefApiFilter:  "index",
		CrossrefFeedPrefix: "crossref-feed-0-",
		PubmedUpdateURL:    "https://ftp.ncbi.nlm.nih.gov/pubmed/updatefiles/",
	}
}

// Load reads the config file at p, if any, and applies environment
// overrides on top of the defaults. A missing file is not an error.
func Load(p string) (*Config, error) {
	c := Default()
	if p != "" {
		b, err := os.ReadFile(p)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		if err == nil {
			if err := yaml.Unmarshal(b, c); err != nil {
				return nil, err
			}
		}
	}
	c.applyEnv()
	return c, nil
}

// applyEnv maps PIDKIT_ prefixed variables onto fields.
func (c *Config) applyEnv() {
	envString(&c.DataDir, "PIDKIT_DATA_DIR")
	envString(&c.FeedDir, "PIDKIT_FEED_DIR")
	envString(&c.IndexPath, "PIDKIT_INDEX_PATH")
	envString(&c.UserAgent, "PIDKIT_USER_AGENT")
	envInt(&c.MaxRetries, "PIDKIT_MAX_RETRIES")
	envDuration(&c.Timeout, "PIDKIT_TIMEOUT")
	envDuration(&c.RetryPause, "PIDKIT_RETRY_PAUSE")
	envString(&c.CrossrefApiEmail, "PIDKIT_CROSSREF_API_EMAIL")
	envString(&c.CrossrefApiFilter, "PIDKIT_CROSSREF_API_FILTER")
	envString(&c.CrossrefFeedPrefix, "PIDKIT_CROSSREF_FEED_PREFIX")
	envString(&c.PubmedUpdateURL, "PIDKIT_PUBMED_UPDATE_URL")
}

func envString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
