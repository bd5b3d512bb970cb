package id

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/miku/pidkit/fetch"
	"github.com/segmentio/encoding/json"
)

const doiHandleAPI = "https://doi.org/api/handles/"

// Registration agency metadata endpoints, keyed by the lowercased agency
// name as reported by https://doi.org/ra/.
var (
	DOIRAEndpoint = "https://doi.org/ra/"

	RAEndpoints = map[string]string{
		"crossref": "https://api.crossref.org/works/",
		"datacite": "https://api.datacite.org/dois/",
		"medra":    "https://api.medra.org/metadata/",
		"jalc":     "https://api.japanlinkcenter.org/dois/",
	}
)

var doiPattern = regexp.MustCompile(`(?i)^doi:10\..+/.+$`)

// DOI validates digital object identifiers against the handle system.
type DOI struct {
	client *fetch.Client
	cache  Cache
	api    string
}

func NewDOI(client *fetch.Client, cache Cache) *DOI {
	return &DOI{client: client, cache: cache, api: doiHandleAPI}
}

func (m *DOI) Scheme() Scheme { return SchemeDOI }

// Normalise isolates everything from the first "10.", URL-unescapes it,
// removes whitespace and NUL bytes and lowercases the result.
func (m *DOI) Normalise(id string, includePrefix bool) string {
	i := strings.Index(id, "10.")
	if i < 0 {
		return ""
	}
	s := id[i:]
	if u, err := url.QueryUnescape(s); err == nil {
		s = u
	}
	s = strings.ToLower(dropSpaceAndNul(s))
	if s == "" {
		return ""
	}
	if includePrefix {
		return "doi:" + s
	}
	return s
}

func (m *DOI) SyntaxOK(id string) bool {
	if !strings.HasPrefix(id, "doi:") {
		id = "doi:" + id
	}
	return doiPattern.MatchString(id)
}

// CheckDigit delegates to SyntaxOK; DOIs carry no numeric check digit.
func (m *DOI) CheckDigit(id string) bool { return m.SyntaxOK(id) }

func (m *DOI) IsValid(id string) bool {
	doi := m.Normalise(id, true)
	if doi == "" || !m.SyntaxOK(doi) {
		return false
	}
	if info, ok := m.cache.get(doi); ok {
		return info.Valid
	}
	if m.client == nil {
		return true
	}
	valid := m.Exists(doi)
	m.cache.put(doi, Info{Valid: valid})
	return valid
}

// Exists resolves the DOI against the handle API; a handle is registered
// when the response code is 1.
func (m *DOI) Exists(id string) bool {
	doi := m.Normalise(id, false)
	if doi == "" || m.client == nil {
		return false
	}
	resp, err := m.client.Get(m.api+fetch.QuotePath(doi), nil)
	if err != nil || resp.StatusCode != 200 {
		return false
	}
	var hr struct {
		ResponseCode int `json:"responseCode"`
	}
	if err := json.Unmarshal(resp.Body, &hr); err != nil {
		return false
	}
	return hr.ResponseCode == 1
}

// RegistrationAgency looks up the agency that registered a DOI, returning
// its lowercased name (e.g. "crossref", "datacite", "medra", "jalc").
func (m *DOI) RegistrationAgency(id string) string {
	doi := m.Normalise(id, false)
	if doi == "" || m.client == nil {
		return ""
	}
	resp, err := m.client.Get(DOIRAEndpoint+fetch.QuotePath(doi), nil)
	if err != nil || resp.StatusCode != 200 {
		return ""
	}
	var rows []struct {
		DOI string `json:"DOI"`
		RA  string `json:"RA"`
	}
	if err := json.Unmarshal(resp.Body, &rows); err != nil || len(rows) == 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(rows[0].RA))
}
