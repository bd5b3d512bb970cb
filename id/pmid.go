package id

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/miku/pidkit/fetch"
)

const pmidAPI = "https://pubmed.ncbi.nlm.nih.gov/"

var pmidPattern = regexp.MustCompile(`^pmid:[1-9]\d*$`)

// PMID validates PubMed identifiers. PubMed has no lookup API for bare
// existence, so the check scrapes the article page and compares the
// embedded uid meta tag.
type PMID struct {
	client *fetch.Client
	cache  Cache
	api    string
}

func NewPMID(client *fetch.Client, cache Cache) *PMID {
	return &PMID{client: client, cache: cache, api: pmidAPI}
}

func (m *PMID) Scheme() Scheme { return SchemePMID }

// Normalise strips non-digits and leading zeros.
func (m *PMID) Normalise(id string, includePrefix bool) string {
	b := make([]byte, 0, len(id))
	for i := 0; i < len(id); i++ {
		if id[i] >= '0' && id[i] <= '9' {
			b = append(b, id[i])
		}
	}
	s := strings.TrimLeft(string(b), "0")
	if s == "" {
		return ""
	}
	if includePrefix {
		return "pmid:" + s
	}
	return s
}

func (m *PMID) SyntaxOK(id string) bool {
	if !strings.HasPrefix(id, "pmid:") {
		id = "pmid:" + id
	}
	return pmidPattern.MatchString(id)
}

// CheckDigit delegates to SyntaxOK; PMIDs are plain positive integers.
func (m *PMID) CheckDigit(id string) bool { return m.SyntaxOK(id) }

func (m *PMID) IsValid(id string) bool {
	pmid := m.Normalise(id, true)
	if pmid == "" || !m.SyntaxOK(pmid) {
		return false
	}
	if info, ok := m.cache.get(pmid); ok {
		return info.Valid
	}
	if m.client == nil {
		return true
	}
	valid := m.Exists(pmid)
	m.cache.put(pmid, Info{Valid: valid})
	return valid
}

// Exists fetches the PubMed article page in pmid format and looks for a
// meta[name=uid] tag whose content matches the identifier.
func (m *PMID) Exists(id string) bool {
	pmid := m.Normalise(id, false)
	if pmid == "" || m.client == nil {
		return false
	}
	resp, err := m.client.Get(m.api+url.PathEscape(pmid)+"/?format=pmid", nil)
	if err != nil || resp.StatusCode != 200 {
		return false
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return false
	}
	var found bool
	doc.Find(`meta[name="uid"]`).Each(func(i int, s *goquery.Selection) {
		if content, ok := s.Attr("content"); ok && content == pmid {
			found = true
		}
	})
	return found
}
