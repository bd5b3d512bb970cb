package id

import "testing"

func TestForReturnsAllSchemes(t *testing.T) {
	for _, scheme := range Schemes {
		m := For(scheme, nil, nil)
		if m == nil {
			t.Fatalf("no manager for scheme %s", scheme)
		}
		if m.Scheme() != scheme {
			t.Errorf("got %s, want %s", m.Scheme(), scheme)
		}
	}
	if For(Scheme("nope"), nil, nil) != nil {
		t.Error("expected nil manager for unknown scheme")
	}
}

func TestExisterCapability(t *testing.T) {
	// schemes with a registry endpoint announce the capability, pure
	// check digit schemes do not
	var cases = []struct {
		scheme Scheme
		exists bool
	}{
		{SchemeDOI, true},
		{SchemeORCID, true},
		{SchemePMID, true},
		{SchemeArXiv, true},
		{SchemeWikidata, true},
		{SchemeWikipedia, true},
		{SchemeISBN, false},
		{SchemeISSN, false},
	}
	for _, c := range cases {
		_, ok := For(c.scheme, nil, nil).(Exister)
		if ok != c.exists {
			t.Errorf("%s: exister capability got %v, want %v", c.scheme, ok, c.exists)
		}
	}
}

func TestPMIDNormalise(t *testing.T) {
	m := NewPMID(nil, nil)
	var cases = []struct {
		input         string
		includePrefix bool
		result        string
	}{
		{"12345", false, "12345"},
		{"pmid:0012345", true, "pmid:12345"},
		{"https://pubmed.ncbi.nlm.nih.gov/12345/", false, "12345"},
		{"000", false, ""},
		{"abc", false, ""},
	}
	for _, c := range cases {
		if got := m.Normalise(c.input, c.includePrefix); got != c.result {
			t.Errorf("Normalise(%q): got %q, want %q", c.input, got, c.result)
		}
	}
}

func TestArXivNormalise(t *testing.T) {
	m := NewArXiv(nil, nil)
	var cases = []struct {
		about         string
		input         string
		includePrefix bool
		result        string
	}{
		{"modern id", "2204.01234", false, "2204.01234"},
		{"modern with version", "arXiv:2204.01234v2", true, "arxiv:2204.01234v2"},
		{"legacy id", "hep-th/9901001", false, "hep-th/9901001"},
		{"legacy with subject class", "math.GT/0309136", false, "math.gt/0309136"},
		{"abs url", "https://arxiv.org/abs/2204.01234", false, "2204.01234"},
		{"repeated dots", "2204..01234", false, "2204.01234"},
		{"garbage", "not an id", false, ""},
	}
	for _, c := range cases {
		if got := m.Normalise(c.input, c.includePrefix); got != c.result {
			t.Errorf("%s: got %q, want %q", c.about, got, c.result)
		}
	}
}

func TestArXivSyntaxOK(t *testing.T) {
	m := NewArXiv(nil, nil)
	var cases = []struct {
		input string
		ok    bool
	}{
		{"2204.01234", true},
		{"2204.01234v3", true},
		{"hep-th/9901001", true},
		{"arxiv:2204.01234", true},
		{"2204.012", false},
		{"", false},
	}
	for _, c := range cases {
		if got := m.SyntaxOK(c.input); got != c.ok {
			t.Errorf("SyntaxOK(%q): got %v, want %v", c.input, got, c.ok)
		}
	}
}

func TestWikidataNormalise(t *testing.T) {
	m := NewWikidata(nil, nil)
	var cases = []struct {
		input         string
		includePrefix bool
		result        string
	}{
		{"Q42", false, "Q42"},
		{"q42", false, "Q42"},
		{"wikidata:Q42", true, "wikidata:Q42"},
		{"https://www.wikidata.org/wiki/Q42", false, "Q42"},
		{"42", false, ""},
	}
	for _, c := range cases {
		if got := m.Normalise(c.input, c.includePrefix); got != c.result {
			t.Errorf("Normalise(%q): got %q, want %q", c.input, got, c.result)
		}
	}
}

func TestWikidataSyntaxOK(t *testing.T) {
	m := NewWikidata(nil, nil)
	var cases = []struct {
		input string
		ok    bool
	}{
		{"Q42", true},
		{"wikidata:Q42", true},
		{"Q0", false},
		{"Q", false},
		{"P31", false},
	}
	for _, c := range cases {
		if got := m.SyntaxOK(c.input); got != c.ok {
			t.Errorf("SyntaxOK(%q): got %v, want %v", c.input, got, c.ok)
		}
	}
}

func TestWikipediaSyntaxOK(t *testing.T) {
	m := NewWikipedia(nil, nil)
	var cases = []struct {
		input string
		ok    bool
	}{
		{"Go_(programming_language)", true},
		{"wikipedia:Alan_Turing", true},
		{"bad|title", false},
		{"bad[title]", false},
	}
	for _, c := range cases {
		if got := m.SyntaxOK(c.input); got != c.ok {
			t.Errorf("SyntaxOK(%q): got %v, want %v", c.input, got, c.ok)
		}
	}
}
