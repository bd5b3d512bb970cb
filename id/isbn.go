package id

import (
	"regexp"
	"strings"
)

var isbnPattern = regexp.MustCompile(`^isbn:(\d{13}|\d{9}[0-9X])$`)

// ISBN validates international standard book numbers. There is no public
// existence registry, so the check digit is the final verdict.
type ISBN struct {
	cache Cache
}

func NewISBN(cache Cache) *ISBN { return &ISBN{cache: cache} }

func (m *ISBN) Scheme() Scheme { return SchemeISBN }

// Normalise strips everything but digits and X.
func (m *ISBN) Normalise(id string, includePrefix bool) string {
	s := keepDigitsAndX(strings.ToUpper(id))
	if s == "" {
		return ""
	}
	if includePrefix {
		return "isbn:" + s
	}
	return s
}

func (m *ISBN) SyntaxOK(id string) bool {
	if !strings.HasPrefix(id, "isbn:") {
		id = "isbn:" + id
	}
	return isbnPattern.MatchString(id)
}

// CheckDigit validates the 13-digit alternating 1/3 weighted sum (mod 10)
// or the 10-digit 10..1 weighted sum (mod 11, X counts as 10).
func (m *ISBN) CheckDigit(id string) bool {
	isbn := strings.TrimPrefix(id, "isbn:")
	isbn = strings.ReplaceAll(isbn, "-", "")
	switch len(isbn) {
	case 13:
		total, weight := 0, 1
		for i := 0; i < len(isbn); i++ {
			v, ok := digitValue(isbn[i])
			if !ok {
				return false
			}
			total += v * weight
			if weight == 1 {
				weight = 3
			} else {
				weight = 1
			}
		}
		return total%10 == 0
	case 10:
		total := 0
		for i := 0; i < len(isbn); i++ {
			v, ok := digitValue(isbn[i])
			if !ok {
				return false
			}
			total += v * (10 - i)
		}
		return total%11 == 0
	}
	return false
}

func (m *ISBN) IsValid(id string) bool {
	isbn := m.Normalise(id, true)
	if isbn == "" {
		return false
	}
	if info, ok := m.cache.get(isbn); ok {
		return info.Valid
	}
	valid := m.SyntaxOK(isbn) && m.CheckDigit(isbn)
	m.cache.put(isbn, Info{Valid: valid})
	return valid
}

func keepDigitsAndX(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == 'X' || (c >= '0' && c <= '9') {
			b = append(b, c)
		}
	}
	return string(b)
}

func digitValue(c byte) (int, bool) {
	switch {
	case c == 'X':
		return 10, true
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	}
	return 0, false
}
