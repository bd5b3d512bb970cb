// Package extract turns provider API payloads into the canonical
// bibliographic record. Each registration agency gets its own extractor
// over its native format (Crossref and DataCite JSON, mEDRA ONIX XML,
// JaLC JSON, PubMed MEDLINE text); all of them write into a shared
// record under a first-writer-wins rule, so a record can be assembled
// from more than one source without later sources clobbering earlier
// fields.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/miku/pidkit/fetch"
	"github.com/miku/pidkit/id"
	"github.com/miku/pidkit/schema/record"
)

// Provider tags the upstream format of a payload.
type Provider string

const (
	Crossref Provider = "crossref"
	DataCite Provider = "datacite"
	Medra    Provider = "medra"
	Jalc     Provider = "jalc"
	Pubmed   Provider = "pmid"
	// Unknown marks a doi.org/ra response that still needs routing to the
	// registration agency's own API.
	Unknown Provider = "unknown"
)

// Extractor holds the offline identifier managers used while cleaning
// embedded identifiers (ISSN and ISBN in venues, ORCID on agents) and a
// fetch client for agency routing. Managers run without registry access
// here; extraction validates syntax and check digits only.
type Extractor struct {
	client *fetch.Client
	doi    *id.DOI
	issn   *id.ISSN
	isbn   *id.ISBN
	orcid  *id.ORCID
}

// New returns an extractor. The client is only used when routing unknown
// registration agencies; it may be nil for pure payload extraction.
func New(client *fetch.Client) *Extractor {
	return &Extractor{
		client: client,
		doi:    id.NewDOI(nil, nil),
		issn:   id.NewISSN(nil),
		isbn:   id.NewISBN(nil),
		orcid:  id.NewORCID(nil, nil),
	}
}

// Extract dispatches a payload to the extractor for its provider and
// merges the result into rec. An unsupported provider leaves rec
// unchanged and returns nil, so a caller can probe formats in sequence.
func (e *Extractor) Extract(provider Provider, b []byte, rec *record.Record) error {
	switch provider {
	case Crossref:
		return e.FromCrossref(b, rec)
	case DataCite:
		return e.FromDataCite(b, rec)
	case Medra:
		return e.FromMedra(b, rec)
	case Jalc:
		return e.FromJalc(b, rec)
	case Pubmed:
		return e.FromPubmed(b, rec)
	case Unknown:
		return e.FromUnknown(b, rec)
	}
	return nil
}

// setString fills dst only if it is still empty.
func setString(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}

// setStrings fills dst only if it is still empty. An empty but non-nil
// value is written, so serialized output shows [] instead of null while
// a later pass can still fill the field.
func setStrings(dst *[]string, v []string) {
	if len(*dst) == 0 && v != nil {
		*dst = v
	}
}

// ambiguousBracketPattern matches a square bracketed group of
// scheme:value tokens, the notation venue identifiers are rendered in.
var ambiguousBracketPattern = regexp.MustCompile(`\[\s*((?:[^\s]+:[^\s]+)?(?:\s+[^\s]+:[^\s]+)*)\s*\]`)

// fixAmbiguousBrackets rewrites square brackets in a venue name to
// parentheses when their content looks like identifier notation, so a
// title like "Studies [2merged titles]" cannot be misread as carrying
// venue identifiers once real ones are appended.
func fixAmbiguousBrackets(s string) string {
	loc := ambiguousBracketPattern.FindStringSubmatchIndex(s)
	for loc != nil {
		s = s[:loc[0]] + "(" + s[loc[0]+1:loc[1]-1] + ")" + s[loc[1]:]
		loc = ambiguousBracketPattern.FindStringSubmatchIndex(s)
	}
	return s
}

var alnumRunPattern = regexp.MustCompile(`[A-Za-z0-9]+`)

// cleanPages canonicalizes a page range to "first-last". Provider page
// strings come with stray letters glued to numbers ("583b-584"), single
// pages, article ids ("G27") and roman numeral ranges ("iv-vii"); the
// alphanumeric runs decide which treatment applies.
func cleanPages(pages string) string {
	runs := alnumRunPattern.FindAllString(pages, -1)
	if len(runs) == 0 {
		return pages
	}
	clean := make([]string, 0, len(runs))
	for _, run := range runs {
		switch {
		case isDigits(run):
			clean = append(clean, run)
		case isRoman(run):
			clean = append(clean, run)
		case len(runs) == 1:
			// a sole non-numeric segment is an article id, keep it
			clean = append(clean, run)
		default:
			// mixed run like "583b": keep the digits
			if d := digitsOf(run); d != "" {
				clean = append(clean, d)
			}
		}
	}
	if len(clean) == 0 {
		return pages
	}
	return strings.Join(clean, "-")
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

func isRoman(s string) bool {
	for _, c := range strings.ToUpper(s) {
		switch c {
		case 'I', 'V', 'X', 'L', 'C', 'D', 'M':
		default:
			return false
		}
	}
	return len(s) > 0
}

func digitsOf(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

// validORCID normalizes a raw ORCID (URL or bare form) and returns the
// prefixed canonical form, or "" when syntax or check digit fail.
func (e *Extractor) validORCID(raw string) string {
	orcid := e.orcid.Normalise(raw, true)
	if orcid == "" || !e.orcid.SyntaxOK(orcid) || !e.orcid.CheckDigit(orcid) {
		return ""
	}
	return orcid
}

// validISSN returns the prefixed canonical ISSN, or "" on failure.
func (e *Extractor) validISSN(raw string) string {
	issn := e.issn.Normalise(raw, true)
	if issn == "" || !e.issn.SyntaxOK(issn) || !e.issn.CheckDigit(issn) {
		return ""
	}
	return issn
}

// validISBN returns the prefixed canonical ISBN, or "" on failure.
func (e *Extractor) validISBN(raw string) string {
	isbn := e.isbn.Normalise(raw, true)
	if isbn == "" || !e.isbn.SyntaxOK(isbn) || !e.isbn.CheckDigit(isbn) {
		return ""
	}
	return isbn
}

// venueWithIDs renders "Name [id id ...]"; without ids, just the name.
// Identifiers without a name render nothing, a bare id bracket is not a
// venue.
func venueWithIDs(name string, ids []string) string {
	if name == "" {
		return ""
	}
	if len(ids) == 0 {
		return name
	}
	return name + " [" + strings.Join(ids, " ") + "]"
}

// idSet collects identifiers in first-seen order without duplicates.
type idSet struct {
	seen map[string]bool
	ids  []string
}

func (s *idSet) add(v string) {
	if v == "" || s.seen[v] {
		return
	}
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	s.seen[v] = true
	s.ids = append(s.ids, v)
}

// sequenceLess orders contributor sequence numbers numerically where
// possible, lexicographically otherwise.
func sequenceLess(a, b string) bool {
	ai, aerr := strconv.Atoi(strings.TrimSpace(a))
	bi, berr := strconv.Atoi(strings.TrimSpace(b))
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return a < b
}
