package id

import "testing"

func TestISSNNormalise(t *testing.T) {
	m := NewISSN(nil)
	var cases = []struct {
		input         string
		includePrefix bool
		result        string
	}{
		{"0138-9130", false, "0138-9130"},
		{"01389130", false, "0138-9130"},
		{"issn:0138 9130", true, "issn:0138-9130"},
		{"2434-561x", false, "2434-561X"},
		{"0138-913", false, ""},
		{"0138-91301", false, ""},
	}
	for _, c := range cases {
		if got := m.Normalise(c.input, c.includePrefix); got != c.result {
			t.Errorf("Normalise(%q): got %q, want %q", c.input, got, c.result)
		}
	}
}

func TestISSNCheckDigit(t *testing.T) {
	m := NewISSN(nil)
	var cases = []struct {
		input string
		ok    bool
	}{
		{"0138-9130", true},
		{"issn:0138-9130", true},
		{"2434-561X", true},
		{"0138-9131", false},
		{"1388-9130", false},
		{"0000-000", false},
	}
	for _, c := range cases {
		if got := m.CheckDigit(c.input); got != c.ok {
			t.Errorf("CheckDigit(%q): got %v, want %v", c.input, got, c.ok)
		}
	}
}

func TestISSNIsValid(t *testing.T) {
	m := NewISSN(Cache{})
	if !m.IsValid("0138-9130") {
		t.Error("expected valid issn")
	}
	if m.IsValid("0138-9131") {
		t.Error("expected invalid issn")
	}
}
