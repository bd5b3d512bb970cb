package id

import "testing"

func TestISBNNormalise(t *testing.T) {
	m := NewISBN(nil)
	var cases = []struct {
		input         string
		includePrefix bool
		result        string
	}{
		{"978-0-306-40615-7", false, "9780306406157"},
		{"isbn:978 0 306 40615 7", true, "isbn:9780306406157"},
		{"0-306-40615-2", false, "0306406152"},
		{"0-8044-2957-x", false, "080442957X"},
		{"no digits", false, ""},
	}
	for _, c := range cases {
		if got := m.Normalise(c.input, c.includePrefix); got != c.result {
			t.Errorf("Normalise(%q): got %q, want %q", c.input, got, c.result)
		}
	}
}

func TestISBNCheckDigit(t *testing.T) {
	m := NewISBN(nil)
	var cases = []struct {
		about string
		input string
		ok    bool
	}{
		{"isbn-13 valid", "9780306406157", true},
		{"isbn-13 flipped digit", "9780306406156", false},
		{"isbn-13 transposed", "9780306460157", false},
		{"isbn-10 valid", "0306406152", true},
		{"isbn-10 x check", "080442957X", true},
		{"isbn-10 flipped digit", "0306406153", false},
		{"prefixed", "isbn:9780306406157", true},
		{"hyphenated", "978-0-306-40615-7", true},
		{"too short", "12345", false},
	}
	for _, c := range cases {
		if got := m.CheckDigit(c.input); got != c.ok {
			t.Errorf("%s: CheckDigit(%q) got %v, want %v", c.about, c.input, got, c.ok)
		}
	}
}

func TestISBNIsValid(t *testing.T) {
	cache := Cache{}
	m := NewISBN(cache)
	if !m.IsValid("978-0-306-40615-7") {
		t.Error("expected valid isbn")
	}
	if m.IsValid("978-0-306-40615-6") {
		t.Error("expected invalid isbn")
	}
	if info, ok := cache["isbn:9780306406157"]; !ok || !info.Valid {
		t.Error("expected verdict in cache")
	}
}
