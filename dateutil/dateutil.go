// Package dateutil handles partial dates and interval generation.
// Provider dates come at year, month or day precision; parsing preserves
// the precision of the input instead of padding it.
package dateutil

import (
	"time"

	"github.com/araddon/dateparse"
)

// A Ladder is an ordered list of layouts, most precise first. The first
// layout that parses wins and decides the output precision.
type Ladder []string

var (
	// Medra publication dates: 20060102, 200601, 2006.
	Medra = Ladder{"20060102", "200601", "2006"}
	// Pubmed DP lines: 1998 Dec 01, 1998 Dec, 1998.
	Pubmed = Ladder{"2006 Jan 2", "2006 Jan", "2006"}
	// ISO partial dates.
	ISO = Ladder{"2006-01-02", "2006-01", "2006"}
)

// render maps an input layout to the partial ISO output layout of the
// same precision.
var render = map[string]string{
	"20060102":   "2006-01-02",
	"200601":     "2006-01",
	"2006":       "2006",
	"2006 Jan 2": "2006-01-02",
	"2006 Jan":   "2006-01",
	"2006-01-02": "2006-01-02",
	"2006-01":    "2006-01",
}

// Partial parses a value against the ladder and renders it as a partial
// ISO-8601 date at matching precision. Unparseable input yields "".
func Partial(value string, ladder Ladder) string {
	for _, layout := range ladder {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		out, ok := render[layout]
		if !ok {
			out = "2006"
		}
		return t.Format(out)
	}
	return ""
}

// Lenient falls back to a permissive parser and renders a full date.
// Used where providers emit free-form date strings.
func Lenient(value string) string {
	t, err := dateparse.ParseStrict(value)
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// Parse parses a value strictly into a time.
func Parse(value string) (time.Time, error) {
	return dateparse.ParseStrict(value)
}

// MustParse is like Parse but panics on error.
func MustParse(value string) time.Time {
	t, err := dateparse.ParseStrict(value)
	if err != nil {
		panic(err)
	}
	return t
}
