package id

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/miku/pidkit/fetch"
	"github.com/segmentio/encoding/json"
)

const orcidAPI = "https://pub.orcid.org/v3.0/"

var orcidPattern = regexp.MustCompile(`^([0-9]{4}-){3}[0-9]{3}[0-9X]$`)

// ORCID validates contributor identifiers against the public ORCID API.
type ORCID struct {
	client *fetch.Client
	cache  Cache
	api    string
}

func NewORCID(client *fetch.Client, cache Cache) *ORCID {
	return &ORCID{client: client, cache: cache, api: orcidAPI}
}

func (m *ORCID) Scheme() Scheme { return SchemeORCID }

// Normalise strips everything but digits and X and regroups the sixteen
// characters as 4-4-4-4.
func (m *ORCID) Normalise(id string, includePrefix bool) string {
	s := keepDigitsAndX(strings.ToUpper(id))
	if len(s) < 16 {
		return ""
	}
	s = s[:4] + "-" + s[4:8] + "-" + s[8:12] + "-" + s[12:16]
	if includePrefix {
		return "orcid:" + s
	}
	return s
}

func (m *ORCID) SyntaxOK(id string) bool {
	return orcidPattern.MatchString(strings.TrimPrefix(id, "orcid:"))
}

// CheckDigit implements ISO 7064 MOD 11-2 over the first fifteen digits;
// a computed value of 10 renders as X.
func (m *ORCID) CheckDigit(id string) bool {
	orcid := strings.TrimPrefix(id, "orcid:")
	if !orcidPattern.MatchString(orcid) {
		return false
	}
	digits := keepDigitsAndX(strings.ToUpper(orcid))
	total := 0
	for i := 0; i < 15; i++ {
		v, _ := digitValue(digits[i])
		total = (total + v) * 2
	}
	result := (12 - total%11) % 11
	check := digits[15]
	if result == 10 {
		return check == 'X'
	}
	return int(check-'0') == result
}

func (m *ORCID) IsValid(id string) bool {
	orcid := m.Normalise(id, true)
	if orcid == "" || !m.CheckDigit(orcid) {
		return false
	}
	if info, ok := m.cache.get(orcid); ok {
		return info.Valid
	}
	if m.client == nil {
		return true
	}
	valid := m.Exists(orcid)
	m.cache.put(orcid, Info{Valid: valid})
	return valid
}

// Exists queries the public ORCID API and compares the returned record
// path against the normalized identifier.
func (m *ORCID) Exists(id string) bool {
	orcid := m.Normalise(id, false)
	if orcid == "" || m.client == nil {
		return false
	}
	resp, err := m.client.Get(m.api+url.PathEscape(orcid), map[string]string{
		"Accept": "application/json",
	})
	if err != nil || resp.StatusCode != 200 {
		return false
	}
	var doc struct {
		OrcidIdentifier struct {
			Path string `json:"path"`
		} `json:"orcid-identifier"`
	}
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return false
	}
	return doc.OrcidIdentifier.Path == orcid
}
