package id

import (
	"regexp"
	"strings"
)

var issnPattern = regexp.MustCompile(`^issn:\d{4}-\d{3}[0-9X]$`)

// ISSN validates international standard serial numbers. Like ISBN, the
// check digit is the final verdict.
type ISSN struct {
	cache Cache
}

func NewISSN(cache Cache) *ISSN { return &ISSN{cache: cache} }

func (m *ISSN) Scheme() Scheme { return SchemeISSN }

// Normalise strips everything but digits and X and restores the NNNN-NNNC
// grouping.
func (m *ISSN) Normalise(id string, includePrefix bool) string {
	s := keepDigitsAndX(strings.ToUpper(id))
	if len(s) != 8 {
		return ""
	}
	s = s[:4] + "-" + s[4:]
	if includePrefix {
		return "issn:" + s
	}
	return s
}

func (m *ISSN) SyntaxOK(id string) bool {
	if !strings.HasPrefix(id, "issn:") {
		id = "issn:" + id
	}
	return issnPattern.MatchString(id)
}

// CheckDigit validates the mod-11 weighted sum over the first seven
// digits (weights 8..2); the eighth character is the check digit, X
// standing for 10.
func (m *ISSN) CheckDigit(id string) bool {
	issn := strings.TrimPrefix(id, "issn:")
	issn = strings.ReplaceAll(issn, "-", "")
	if len(issn) != 8 {
		return false
	}
	total := 0
	for i := 0; i < 7; i++ {
		v, ok := digitValue(issn[i])
		if !ok || v == 10 {
			return false
		}
		total += v * (8 - i)
	}
	check, ok := digitValue(issn[7])
	if !ok {
		return false
	}
	return (total+check)%11 == 0
}

func (m *ISSN) IsValid(id string) bool {
	issn := m.Normalise(id, true)
	if issn == "" {
		return false
	}
	if info, ok := m.cache.get(issn); ok {
		return info.Valid
	}
	valid := m.SyntaxOK(issn) && m.CheckDigit(issn)
	m.cache.put(issn, Info{Valid: valid})
	return valid
}
