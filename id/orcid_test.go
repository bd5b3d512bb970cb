package id

import "testing"

func TestORCIDNormalise(t *testing.T) {
	m := NewORCID(nil, nil)
	var cases = []struct {
		input         string
		includePrefix bool
		result        string
	}{
		{"0000-0002-8420-0696", false, "0000-0002-8420-0696"},
		{"0000000284200696", false, "0000-0002-8420-0696"},
		{"https://orcid.org/0000-0002-8420-0696", true, "orcid:0000-0002-8420-0696"},
		{"orcid:0000-0002-8420-0696", true, "orcid:0000-0002-8420-0696"},
		{"0000-0002-8420", false, ""},
	}
	for _, c := range cases {
		if got := m.Normalise(c.input, c.includePrefix); got != c.result {
			t.Errorf("Normalise(%q): got %q, want %q", c.input, got, c.result)
		}
	}
}

func TestORCIDCheckDigit(t *testing.T) {
	m := NewORCID(nil, nil)
	var cases = []struct {
		about string
		input string
		ok    bool
	}{
		{"known good", "0000-0002-8420-0696", true},
		{"prefixed", "orcid:0000-0002-8420-0696", true},
		{"x check digit", "0000-0002-1825-009X", false},
		{"flipped digit", "0000-0002-8420-0697", false},
		{"flipped early digit", "1000-0002-8420-0696", false},
		{"malformed", "0000-0002-8420-069", false},
	}
	for _, c := range cases {
		if got := m.CheckDigit(c.input); got != c.ok {
			t.Errorf("%s: CheckDigit(%q) got %v, want %v", c.about, c.input, got, c.ok)
		}
	}
}

func TestORCIDIsValidOffline(t *testing.T) {
	m := NewORCID(nil, Cache{})
	if !m.IsValid("0000-0002-8420-0696") {
		t.Error("expected valid verdict without client")
	}
	if m.IsValid("0000-0002-8420-0697") {
		t.Error("expected check digit failure")
	}
}
