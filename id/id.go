// Package id implements per-scheme managers for scholarly persistent
// identifiers. Every scheme supports the required capability set
// (Normalise, SyntaxOK, CheckDigit, IsValid); schemes with a usable
// registry endpoint additionally implement Exister. Existence checks go
// through a caller supplied fetch client and verdicts are memoized in a
// caller supplied cache, so callers control both network policy and
// concurrency (one cache per worker).
package id

import "github.com/miku/pidkit/fetch"

// Scheme names an identifier namespace.
type Scheme string

const (
	SchemeDOI       Scheme = "doi"
	SchemeISBN      Scheme = "isbn"
	SchemeISSN      Scheme = "issn"
	SchemeORCID     Scheme = "orcid"
	SchemePMID      Scheme = "pmid"
	SchemeArXiv     Scheme = "arxiv"
	SchemeWikidata  Scheme = "wikidata"
	SchemeWikipedia Scheme = "wikipedia"
)

// Schemes lists all supported schemes.
var Schemes = []Scheme{
	SchemeDOI, SchemeISBN, SchemeISSN, SchemeORCID,
	SchemePMID, SchemeArXiv, SchemeWikidata, SchemeWikipedia,
}

// Info is a cached validity verdict, possibly with extra fields from a
// registry lookup.
type Info struct {
	Valid bool              `json:"valid"`
	Extra map[string]string `json:"extra,omitempty"`
}

// Cache memoizes verdicts, keyed by the normalized, prefixed identifier.
// It may be pre-seeded from a persisted index. A nil cache disables
// memoization.
type Cache map[string]Info

func (c Cache) get(key string) (Info, bool) {
	if c == nil {
		return Info{}, false
	}
	info, ok := c[key]
	return info, ok
}

func (c Cache) put(key string, info Info) {
	if c == nil {
		return
	}
	c[key] = info
}

// Manager is the capability set every scheme implements.
type Manager interface {
	// Scheme returns the scheme tag.
	Scheme() Scheme
	// Normalise strips noise from a raw identifier and returns the
	// canonical form, optionally with the scheme prefix. Malformed input
	// yields the empty string, never an error.
	Normalise(id string, includePrefix bool) string
	// SyntaxOK reports whether the identifier matches the scheme's
	// lexical grammar. Independent of check digit correctness.
	SyntaxOK(id string) bool
	// CheckDigit reports whether the scheme specific numeric validation
	// holds. Schemes without a check digit fall back to SyntaxOK.
	CheckDigit(id string) bool
	// IsValid composes normalisation, syntax and check digit validation
	// and, when the manager has registry access, a cached existence
	// check.
	IsValid(id string) bool
}

// Exister is implemented by managers that can confirm registration
// against the scheme's registry. Discover it with a type assertion; a
// manager without the capability never pretends an id exists.
type Exister interface {
	Exists(id string) bool
}

// For returns the manager for a scheme, or nil for an unknown scheme.
// The client may be nil, which disables existence checks.
func For(scheme Scheme, client *fetch.Client, cache Cache) Manager {
	switch scheme {
	case SchemeDOI:
		return NewDOI(client, cache)
	case SchemeISBN:
		return NewISBN(cache)
	case SchemeISSN:
		return NewISSN(cache)
	case SchemeORCID:
		return NewORCID(client, cache)
	case SchemePMID:
		return NewPMID(client, cache)
	case SchemeArXiv:
		return NewArXiv(client, cache)
	case SchemeWikidata:
		return NewWikidata(client, cache)
	case SchemeWikipedia:
		return NewWikipedia(client, cache)
	}
	return nil
}

// dropSpaceAndNul removes whitespace and NUL bytes, the typical noise in
// copy-pasted identifiers.
func dropSpaceAndNul(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r', '\f', '\v', 0:
			continue
		}
		b = append(b, s[i])
	}
	return string(b)
}
