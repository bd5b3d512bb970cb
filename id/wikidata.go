package id

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/miku/pidkit/fetch"
	"github.com/segmentio/encoding/json"
)

const wikidataAPI = "https://www.wikidata.org/wiki/Special:EntityData/"

var wikidataPattern = regexp.MustCompile(`^wikidata:Q[1-9]\d*$`)

// Wikidata validates entity identifiers against the EntityData endpoint.
type Wikidata struct {
	client *fetch.Client
	cache  Cache
	api    string
}

func NewWikidata(client *fetch.Client, cache Cache) *Wikidata {
	return &Wikidata{client: client, cache: cache, api: wikidataAPI}
}

func (m *Wikidata) Scheme() Scheme { return SchemeWikidata }

// Normalise isolates everything from the first "Q" of the uppercased
// input and strips whitespace and NUL bytes.
func (m *Wikidata) Normalise(id string, includePrefix bool) string {
	s := strings.ToUpper(id)
	i := strings.Index(s, "Q")
	if i < 0 {
		return ""
	}
	s = s[i:]
	if u, err := url.QueryUnescape(s); err == nil {
		s = u
	}
	s = dropSpaceAndNul(s)
	if s == "" {
		return ""
	}
	if includePrefix {
		return "wikidata:" + s
	}
	return s
}

func (m *Wikidata) SyntaxOK(id string) bool {
	if !strings.HasPrefix(id, "wikidata:") {
		id = "wikidata:" + id
	}
	return wikidataPattern.MatchString(id)
}

// CheckDigit delegates to SyntaxOK; Q-ids carry no check digit.
func (m *Wikidata) CheckDigit(id string) bool { return m.SyntaxOK(id) }

func (m *Wikidata) IsValid(id string) bool {
	qid := m.Normalise(id, true)
	if qid == "" || !m.SyntaxOK(qid) {
		return false
	}
	if info, ok := m.cache.get(qid); ok {
		return info.Valid
	}
	if m.client == nil {
		return true
	}
	valid := m.Exists(qid)
	m.cache.put(qid, Info{Valid: valid})
	return valid
}

// Exists fetches the entity data document; a 4xx is a definitive miss.
func (m *Wikidata) Exists(id string) bool {
	qid := m.Normalise(id, false)
	if qid == "" || m.client == nil {
		return false
	}
	resp, err := m.client.Get(m.api+url.PathEscape(qid)+".json", map[string]string{
		"Accept": "application/json",
	})
	if err != nil || resp.StatusCode != 200 {
		return false
	}
	var doc struct {
		Entities map[string]struct {
			ID string `json:"id"`
		} `json:"entities"`
	}
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return false
	}
	entity, ok := doc.Entities[qid]
	return ok && entity.ID == qid
}
