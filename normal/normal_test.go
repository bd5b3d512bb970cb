package normal

import "testing"

func TestStripMarkup(t *testing.T) {
	var cases = []struct {
		input  string
		result string
	}{
		{"plain", "plain"},
		{"a <i>title</i> with <sub>markup</sub>", "a title with markup"},
		{"line\nbreak", "linebreak"},
		{"&amp; &lt;entities&gt;", "& <entities>"},
		{"<p>nested &amp; text</p>", "nested & text"},
	}
	for _, c := range cases {
		if got := StripMarkup(c.input); got != c.result {
			t.Errorf("StripMarkup(%q): got %q, want %q", c.input, got, c.result)
		}
	}
}

func TestNFKC(t *testing.T) {
	var cases = []struct {
		input  string
		result string
	}{
		{"ＡＢＣ１２３", "ABC123"},
		{"ｶﾞｷﾞ", "ガギ"},
		{"plain ascii", "plain ascii"},
	}
	for _, c := range cases {
		if got := NFKC(c.input); got != c.result {
			t.Errorf("NFKC(%q): got %q, want %q", c.input, got, c.result)
		}
	}
}

func TestPipeline(t *testing.T) {
	p := Pipeline{Normalizer: []Normalizer{
		&StripMarkupNormalizer{},
		&NFKCNormalizer{},
	}}
	got := p.Normalize("<b>ＡＢＣ</b>")
	if got != "ABC" {
		t.Errorf("got %q, want %q", got, "ABC")
	}
}

func TestReplaceNewlineAndTab(t *testing.T) {
	if got := ReplaceNewlineAndTab("a\tb\nc"); got != "a b c" {
		t.Errorf("got %q", got)
	}
}
