package dateutil

import "testing"

func TestPartial(t *testing.T) {
	var cases = []struct {
		about  string
		value  string
		ladder Ladder
		result string
	}{
		{"compact full date", "20150612", Medra, "2015-06-12"},
		{"compact year month", "201506", Medra, "2015-06"},
		{"year only", "2015", Medra, "2015"},
		{"medline full date", "2022 Apr 12", Pubmed, "2022-04-12"},
		{"medline year month", "2022 Apr", Pubmed, "2022-04"},
		{"medline year", "2022", Pubmed, "2022"},
		{"iso full date", "2022-04-12", ISO, "2022-04-12"},
		{"iso year month", "2022-04", ISO, "2022-04"},
		{"unparseable", "first quarter 2022", Pubmed, ""},
		{"empty", "", ISO, ""},
	}
	for _, c := range cases {
		if got := Partial(c.value, c.ladder); got != c.result {
			t.Errorf("%s: got %q, want %q", c.about, got, c.result)
		}
	}
}

func TestLenient(t *testing.T) {
	var cases = []struct {
		value  string
		result string
	}{
		{"2022-04-12T10:30:00Z", "2022-04-12"},
		{"April 12, 2022", "2022-04-12"},
		{"not a date", ""},
	}
	for _, c := range cases {
		if got := Lenient(c.value); got != c.result {
			t.Errorf("Lenient(%q): got %q, want %q", c.value, got, c.result)
		}
	}
}
