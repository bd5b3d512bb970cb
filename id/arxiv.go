package id

import (
	"encoding/xml"
	"net/url"
	"regexp"
	"strings"

	"github.com/miku/pidkit/fetch"
)

const (
	arxivQueryAPI = "https://export.arxiv.org/api/query?search_query=all:"
	arxivAbsAPI   = "https://arxiv.org/abs/"
)

// Modern (YYMM.NNNNN) and legacy (category[.SC]/NNNNNNN) forms, with an
// optional version suffix.
var (
	arxivPattern   = regexp.MustCompile(`^arxiv:(\d{4}\.\d{4,5}|[a-z-]+(\.[A-Za-z]{2})?/\d{7})(v\d+)?$`)
	arxivIDPattern = regexp.MustCompile(`(\d{4}\.\d{4,5}|[a-z-]+(\.[a-z]{2})?/\d{7})(v\d+)?$`)
	arxivVersion   = regexp.MustCompile(`v\d+$`)
	arxivURLPrefix = regexp.MustCompile(`^https?://(export\.arxiv\.org/api/query\?search_query=all:|arxiv\.org/abs/)`)
	multiDot       = regexp.MustCompile(`\.+`)
)

// ArXiv validates arXiv identifiers. Unversioned ids are checked through
// the export query API (Atom feed result count), versioned ids resolve
// directly against the abstract page.
type ArXiv struct {
	client *fetch.Client
	cache  Cache
	api    string
	absAPI string
}

func NewArXiv(client *fetch.Client, cache Cache) *ArXiv {
	return &ArXiv{client: client, cache: cache, api: arxivQueryAPI, absAPI: arxivAbsAPI}
}

func (m *ArXiv) Scheme() Scheme { return SchemeArXiv }

// Normalise lowercases, strips the scheme prefix and known API URL forms,
// collapses repeated dots and keeps the trailing identifier if it matches
// either lexical form.
func (m *ArXiv) Normalise(id string, includePrefix bool) string {
	s := strings.ToLower(strings.TrimSpace(id))
	if s == "" {
		return ""
	}
	s = strings.TrimPrefix(s, "arxiv:")
	if u, err := url.QueryUnescape(s); err == nil {
		s = u
	}
	s = arxivURLPrefix.ReplaceAllString(s, "")
	s = multiDot.ReplaceAllString(s, ".")
	s = dropSpaceAndNul(s)
	match := arxivIDPattern.FindString(s)
	if match == "" {
		return ""
	}
	if includePrefix {
		return "arxiv:" + match
	}
	return match
}

func (m *ArXiv) SyntaxOK(id string) bool {
	if !strings.HasPrefix(id, "arxiv:") {
		id = "arxiv:" + id
	}
	return arxivPattern.MatchString(id)
}

// CheckDigit delegates to SyntaxOK; arXiv ids carry no check digit.
func (m *ArXiv) CheckDigit(id string) bool { return m.SyntaxOK(id) }

func (m *ArXiv) IsValid(id string) bool {
	arxiv := m.Normalise(id, true)
	if arxiv == "" || !m.SyntaxOK(arxiv) {
		return false
	}
	if info, ok := m.cache.get(arxiv); ok {
		return info.Valid
	}
	if m.client == nil {
		return true
	}
	valid := m.Exists(arxiv)
	m.cache.put(arxiv, Info{Valid: valid})
	return valid
}

// Exists confirms registration. Versioned ids hit the abstract page; a
// 200 is enough. Unversioned ids go through the query API, where the
// opensearch totalResults count decides.
func (m *ArXiv) Exists(id string) bool {
	arxiv := m.Normalise(id, false)
	if arxiv == "" || m.client == nil {
		return false
	}
	if arxivVersion.MatchString(arxiv) {
		resp, err := m.client.Get(m.absAPI+url.PathEscape(arxiv), nil)
		return err == nil && resp.StatusCode == 200
	}
	resp, err := m.client.Get(m.api+url.QueryEscape(arxiv), nil)
	if err != nil || resp.StatusCode != 200 {
		return false
	}
	var feed struct {
		TotalResults int `xml:"totalResults"`
	}
	if err := xml.Unmarshal(resp.Body, &feed); err != nil {
		return false
	}
	return feed.TotalResults > 0
}
