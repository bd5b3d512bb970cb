// Package fetch implements the HTTP access layer for registry lookups. A
// single GET goes through a bounded retry loop: a read timeout retries
// immediately, a connection level failure pauses before the next attempt,
// and any HTTP response (including 4xx) ends the loop, since a definitive
// answer from the registry needs no retry.
package fetch

import (
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultTimeout     = 30 * time.Second
	DefaultMaxAttempts = 3
	DefaultRetryPause  = 5 * time.Second
)

// ErrExhausted is returned after the last attempt failed on a transport
// error. Callers treat it as "existence unknown", not as a fatal failure.
var ErrExhausted = errors.New("fetch: attempts exhausted")

// Doer abstracts https://pkg.go.dev/net/http#Client.Do.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
}

// Client wraps a Doer with the retry policy and default headers.
type Client struct {
	Doer        Doer
	UserAgent   string
	MaxAttempts int
	RetryPause  time.Duration

	// Sleep is a hook for tests; nil means time.Sleep.
	Sleep func(time.Duration)
}

// New returns a client with the default per-attempt timeout.
func New(userAgent string) *Client {
	return &Client{
		Doer:        &http.Client{Timeout: DefaultTimeout},
		UserAgent:   userAgent,
		MaxAttempts: DefaultMaxAttempts,
		RetryPause:  DefaultRetryPause,
	}
}

// Get fetches a URL under the retry policy. Any HTTP response is returned
// as is, status included; only transport failures are retried.
func (c *Client) Get(link string, headers map[string]string) (*Response, error) {
	var (
		attempts = c.MaxAttempts
		pause    = c.RetryPause
		sleep    = c.Sleep
		lastErr  error
	)
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	if pause == 0 {
		pause = DefaultRetryPause
	}
	if sleep == nil {
		sleep = time.Sleep
	}
	for i := 0; i < attempts; i++ {
		req, err := http.NewRequest("GET", link, nil)
		if err != nil {
			return nil, err
		}
		if c.UserAgent != "" {
			req.Header.Set("User-Agent", c.UserAgent)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		resp, err := c.doer().Do(req)
		if err != nil {
			lastErr = err
			if isTimeout(err) {
				log.WithFields(log.Fields{"url": link, "attempt": i + 1}).
					Debug("fetch: read timeout, retrying")
				continue
			}
			log.WithFields(log.Fields{"url": link, "attempt": i + 1, "err": err}).
				Debug("fetch: connection failure, pausing before retry")
			sleep(pause)
			continue
		}
		b, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			sleep(pause)
			continue
		}
		return &Response{StatusCode: resp.StatusCode, Body: b}, nil
	}
	if lastErr == nil {
		lastErr = ErrExhausted
	}
	return nil, errors.Join(ErrExhausted, lastErr)
}

func (c *Client) doer() Doer {
	if c.Doer == nil {
		return http.DefaultClient
	}
	return c.Doer
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// QuotePath percent-encodes an identifier for use in a URL path while
// keeping slashes, which DOIs carry as part of their suffix.
func QuotePath(s string) string {
	return strings.ReplaceAll(url.PathEscape(s), "%2F", "/")
}
