package fetch

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

// failDoer fails every request with a fixed error.
type failDoer struct {
	calls int
	err   error
}

func (d *failDoer) Do(req *http.Request) (*http.Response, error) {
	d.calls++
	return nil, d.err
}

// respDoer returns a fixed response.
type respDoer struct {
	calls  int
	status int
	body   string
}

func (d *respDoer) Do(req *http.Request) (*http.Response, error) {
	d.calls++
	return &http.Response{
		StatusCode: d.status,
		Body:       io.NopCloser(strings.NewReader(d.body)),
	}, nil
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "read timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestGetConnectionFailureExhaustsAttempts(t *testing.T) {
	var (
		doer   = &failDoer{err: errors.New("connection refused")}
		pauses []time.Duration
	)
	client := &Client{
		Doer:        doer,
		MaxAttempts: 3,
		RetryPause:  5 * time.Second,
		Sleep:       func(d time.Duration) { pauses = append(pauses, d) },
	}
	resp, err := client.Get("http://example.com", nil)
	if resp != nil {
		t.Fatalf("expected no response, got %v", resp)
	}
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
	if doer.calls != 3 {
		t.Errorf("got %d attempts, want 3", doer.calls)
	}
	if len(pauses) != 3 {
		t.Errorf("got %d pauses, want 3", len(pauses))
	}
	for _, p := range pauses {
		if p != 5*time.Second {
			t.Errorf("got pause %v, want 5s", p)
		}
	}
}

func TestGetTimeoutRetriesWithoutPause(t *testing.T) {
	var (
		doer   = &failDoer{err: timeoutError{}}
		pauses int
	)
	client := &Client{
		Doer:        doer,
		MaxAttempts: 3,
		Sleep:       func(time.Duration) { pauses++ },
	}
	_, err := client.Get("http://example.com", nil)
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
	if doer.calls != 3 {
		t.Errorf("got %d attempts, want 3", doer.calls)
	}
	if pauses != 0 {
		t.Errorf("got %d pauses, want 0", pauses)
	}
}

func TestGetReturnsHTTPErrorsAsIs(t *testing.T) {
	// a definitive answer from the registry needs no retry
	doer := &respDoer{status: 404, body: "not found"}
	client := &Client{Doer: doer, Sleep: func(time.Duration) {}}
	resp, err := client.Get("http://example.com", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("got status %d, want 404", resp.StatusCode)
	}
	if string(resp.Body) != "not found" {
		t.Errorf("got body %q", resp.Body)
	}
	if doer.calls != 1 {
		t.Errorf("got %d attempts, want 1", doer.calls)
	}
}

func TestQuotePath(t *testing.T) {
	var cases = []struct {
		input  string
		result string
	}{
		{"10.1007/s11192-022-04367-w", "10.1007/s11192-022-04367-w"},
		{"10.1000/a b", "10.1000/a%20b"},
		{"10.1000/a#b", "10.1000/a%23b"},
	}
	for _, c := range cases {
		if got := QuotePath(c.input); got != c.result {
			t.Errorf("QuotePath(%q): got %q, want %q", c.input, got, c.result)
		}
	}
}
