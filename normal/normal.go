// Package normal provides string normalization helpers used while
// cleaning provider metadata: markup removal, entity unescaping, unicode
// compatibility normalization. Normalizers can be chained in a Pipeline.
package normal

import (
	"html"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

type Pipeline struct {
	Normalizer []Normalizer
}

func (p *Pipeline) Normalize(s string) string {
	for _, n := range p.Normalizer {
		s = n.Normalize(s)
	}
	return s
}

type Normalizer interface {
	Normalize(string) string
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// StripMarkup removes HTML tags, unescapes entities and drops embedded
// newlines, the treatment provider titles and venue names get.
func StripMarkup(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\n", "")
	return html.UnescapeString(s)
}

type StripMarkupNormalizer struct{}

func (n *StripMarkupNormalizer) Normalize(s string) string {
	return StripMarkup(s)
}

// NFKC applies unicode compatibility normalization, folding full-width
// forms; JaLC output fields pass through this.
func NFKC(s string) string {
	return norm.NFKC.String(s)
}

type NFKCNormalizer struct{}

func (n *NFKCNormalizer) Normalize(s string) string {
	return NFKC(s)
}

// ReplaceNewlineAndTab flattens control whitespace to single spaces.
func ReplaceNewlineAndTab(s string) string {
	var sb strings.Builder
	for _, c := range s {
		if c == '\n' || c == '\t' {
			sb.WriteString(" ")
		} else {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}
