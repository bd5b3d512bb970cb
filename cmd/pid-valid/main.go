// pid-valid normalizes and validates scholarly persistent identifiers.
// Identifiers come from arguments or stdin, one per line, with their
// scheme given via flag or prefix (e.g. doi:10.1007/s11192-022-04367-w).
//
// $ pid-valid doi:10.1007/s11192-022-04367-w
// doi:10.1007/s11192-022-04367-w	true
//
// $ echo "0000-0002-8420-0696" | pid-valid -s orcid -n
// orcid:0000-0002-8420-0696	true
//
// Verdicts are cached in a CSV index between runs, so repeated
// invocations do not hit the registries again.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/miku/pidkit"
	"github.com/miku/pidkit/config"
	"github.com/miku/pidkit/fetch"
	"github.com/miku/pidkit/id"
	"github.com/miku/pidkit/index"
	"github.com/sethgrid/pester"
)

var (
	schemeName  = flag.String("s", "", "identifier scheme, empty means detect from prefix")
	offline     = flag.Bool("n", false, "offline mode, skip registry existence checks")
	configPath  = flag.String("c", "", "path to config file")
	indexPath   = flag.String("x", "", "path to validity index, overrides config")
	skipPath    = flag.String("k", "", "CSV file of identifiers to skip, first column")
	showVersion = flag.Bool("version", false, "show version")
)

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Println(pidkit.Version)
		os.Exit(0)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *indexPath != "" {
		cfg.IndexPath = *indexPath
	}
	cache, err := index.Load(cfg.IndexPath)
	if err != nil {
		log.Fatal(err)
	}
	skip := map[string]bool{}
	if *skipPath != "" {
		skip, err = index.LoadColumnSet(*skipPath, 0)
		if err != nil {
			log.Fatal(err)
		}
	}
	var client *fetch.Client
	if !*offline {
		httpClient := pester.New()
		httpClient.MaxRetries = cfg.MaxRetries
		httpClient.RetryOnHTTP429 = true
		httpClient.Timeout = cfg.Timeout
		client = &fetch.Client{
			Doer:        httpClient,
			UserAgent:   cfg.UserAgent,
			MaxAttempts: cfg.MaxRetries,
			RetryPause:  cfg.RetryPause,
		}
	}
	managers := make(map[id.Scheme]id.Manager)
	for _, scheme := range id.Schemes {
		managers[scheme] = id.For(scheme, client, cache)
	}
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for _, value := range inputs() {
		if skip[value] {
			continue
		}
		scheme := id.Scheme(*schemeName)
		if scheme == "" {
			scheme = detectScheme(value)
		}
		m, ok := managers[scheme]
		if !ok {
			fmt.Fprintf(w, "%s\t%s\n", value, "unknown-scheme")
			continue
		}
		norm := m.Normalise(value, true)
		if norm == "" {
			fmt.Fprintf(w, "%s\tfalse\n", value)
			continue
		}
		fmt.Fprintf(w, "%s\t%t\n", norm, m.IsValid(value))
	}
	if err := index.Save(cfg.IndexPath, cache); err != nil {
		log.Fatal(err)
	}
}

// inputs returns identifiers from args, or from stdin when no args are
// given.
func inputs() []string {
	if flag.NArg() > 0 {
		return flag.Args()
	}
	var values []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			values = append(values, line)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}
	return values
}

// detectScheme guesses the scheme from a prefix, falling back to DOI for
// anything starting with a DOI directory indicator.
func detectScheme(value string) id.Scheme {
	if prefix, _, ok := strings.Cut(value, ":"); ok {
		scheme := id.Scheme(strings.ToLower(prefix))
		for _, s := range id.Schemes {
			if s == scheme {
				return s
			}
		}
	}
	if strings.Contains(value, "10.") {
		return id.SchemeDOI
	}
	return ""
}
