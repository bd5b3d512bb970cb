package id

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/miku/pidkit/fetch"
	"github.com/segmentio/encoding/json"
)

const wikipediaAPI = "https://en.wikipedia.org/w/api.php"

// Page titles cannot contain the characters MediaWiki reserves for
// markup and linking.
var wikipediaPattern = regexp.MustCompile(`^wikipedia:[^#<>\[\]|{}]+$`)

// Wikipedia validates page titles against the English Wikipedia API.
type Wikipedia struct {
	client *fetch.Client
	cache  Cache
	api    string
}

func NewWikipedia(client *fetch.Client, cache Cache) *Wikipedia {
	return &Wikipedia{client: client, cache: cache, api: wikipediaAPI}
}

func (m *Wikipedia) Scheme() Scheme { return SchemeWikipedia }

// Normalise strips whitespace and NUL bytes and URL-unescapes the title.
func (m *Wikipedia) Normalise(id string, includePrefix bool) string {
	s := strings.TrimPrefix(id, "wikipedia:")
	if u, err := url.QueryUnescape(s); err == nil {
		s = u
	}
	s = dropSpaceAndNul(s)
	if s == "" {
		return ""
	}
	if includePrefix {
		return "wikipedia:" + s
	}
	return s
}

func (m *Wikipedia) SyntaxOK(id string) bool {
	if !strings.HasPrefix(id, "wikipedia:") {
		id = "wikipedia:" + id
	}
	return wikipediaPattern.MatchString(id)
}

// CheckDigit delegates to SyntaxOK; titles carry no check digit.
func (m *Wikipedia) CheckDigit(id string) bool { return m.SyntaxOK(id) }

func (m *Wikipedia) IsValid(id string) bool {
	title := m.Normalise(id, true)
	if title == "" || !m.SyntaxOK(title) {
		return false
	}
	if info, ok := m.cache.get(title); ok {
		return info.Valid
	}
	if m.client == nil {
		return true
	}
	valid := m.Exists(title)
	m.cache.put(title, Info{Valid: valid})
	return valid
}

// Exists runs an info query for the page title; a page that resolves to
// anything but the "missing" placeholder id exists.
func (m *Wikipedia) Exists(id string) bool {
	title := m.Normalise(id, false)
	if title == "" || m.client == nil {
		return false
	}
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "info")
	params.Set("titles", title)
	params.Set("format", "json")
	resp, err := m.client.Get(m.api+"?"+params.Encode(), nil)
	if err != nil || resp.StatusCode != 200 {
		return false
	}
	var doc struct {
		Query struct {
			Pages map[string]struct {
				Missing *string `json:"missing"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return false
	}
	for pageid, page := range doc.Query.Pages {
		if pageid != "-1" && page.Missing == nil {
			return true
		}
	}
	return false
}
