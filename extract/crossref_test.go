package extract

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/miku/pidkit/schema/crossref"
	"github.com/miku/pidkit/schema/record"
)

func TestFromCrossref(t *testing.T) {
	b, err := os.ReadFile("testdata/crossref-work.json")
	if err != nil {
		t.Fatal(err)
	}
	e := New(nil)
	rec := &record.Record{}
	if err := e.FromCrossref(b, rec); err != nil {
		t.Fatal(err)
	}
	want := &record.Record{
		Valid: true,
		Title: "Identifying and correcting invalid citations due to DOI errors in Crossref data",
		Author: []string{
			"Cioffi, Alessia",
			"Coppini, Sara",
			"Peroni, Silvio [orcid:0000-0003-0530-4305]",
		},
		Editor:    []string{},
		PubDate:   "2022-06",
		Venue:     "Scientometrics",
		Volume:    "127",
		Issue:     "6",
		Page:      "3593-3612",
		Type:      []string{"journal article"},
		Publisher: "Springer Science and Business Media LLC [crossref:297]",
	}
	if d := cmp.Diff(want, rec); d != "" {
		t.Errorf("record mismatch (-want +got):\n%s", d)
	}
}

func TestFromCrossrefWithoutDOI(t *testing.T) {
	e := New(nil)
	rec := &record.Record{}
	if err := e.FromCrossref([]byte(`{"message": {"title": ["x"]}}`), rec); err != nil {
		t.Fatal(err)
	}
	if rec.Valid || rec.Title != "" {
		t.Errorf("record changed for payload without DOI: %+v", rec)
	}
}

func TestFromCrossrefBookChapterVenueISBN(t *testing.T) {
	payload := `{
		"message": {
			"DOI": "10.1000/chapter",
			"type": "book-chapter",
			"container-title": ["Some Edited Volume"],
			"ISBN": ["978-0-306-40615-7"]
		}
	}`
	e := New(nil)
	rec := &record.Record{}
	if err := e.FromCrossref([]byte(payload), rec); err != nil {
		t.Fatal(err)
	}
	// the raw api type is hyphenated and therefore never matches the
	// space separated gate set, so no isbn is appended
	if rec.Venue != "Some Edited Volume" {
		t.Errorf("got venue %q", rec.Venue)
	}
	if d := cmp.Diff([]string{"book chapter"}, rec.Type); d != "" {
		t.Errorf("type mismatch (-want +got):\n%s", d)
	}
}

func TestFromCrossrefMergeKeepsEarlierFields(t *testing.T) {
	b, err := os.ReadFile("testdata/crossref-work.json")
	if err != nil {
		t.Fatal(err)
	}
	e := New(nil)
	rec := &record.Record{Title: "an earlier title"}
	if err := e.FromCrossref(b, rec); err != nil {
		t.Fatal(err)
	}
	if rec.Title != "an earlier title" {
		t.Errorf("title overwritten: %q", rec.Title)
	}
	if rec.Venue != "Scientometrics" {
		t.Errorf("empty venue not filled: %q", rec.Venue)
	}
}

func TestDateParts(t *testing.T) {
	var cases = []struct {
		about  string
		parts  [][]int
		result string
	}{
		{"full date", [][]int{{2022, 6, 15}}, "2022-06-15"},
		{"year month", [][]int{{2022, 6}}, "2022-06"},
		{"year only", [][]int{{2022}}, "2022"},
		{"zero year", [][]int{{0}}, ""},
		{"empty", nil, ""},
	}
	for _, c := range cases {
		got := dateParts(crossref.Date{DateParts: c.parts})
		if got != c.result {
			t.Errorf("%s: got %q, want %q", c.about, got, c.result)
		}
	}
}
