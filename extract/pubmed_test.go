package extract

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/miku/pidkit/schema/record"
)

const medlineRecord = `PMID- 33099042
OWN - NLM
STAT- MEDLINE
IS  - 1588-2861 (Electronic)
IS  - 0138-9130 (Print)
VI  - 127
IP  - 6
DP  - 2022 Apr 12
TI  - Citation data quality in scholarly databases: a longitudinal
      comparison across sources
PG  - 3593-3612
FAU - Cioffi, Alessia
AU  - Cioffi A
FAU - Peroni, Silvio
AU  - Peroni S
ED  - Roe, Richard
PT  - Journal Article
PT  - Comparative Study
JT  - Scientometrics
PB  - Springer
`

func TestFromPubmed(t *testing.T) {
	e := New(nil)
	rec := &record.Record{}
	if err := e.FromPubmed([]byte(medlineRecord), rec); err != nil {
		t.Fatal(err)
	}
	want := &record.Record{
		Valid: true,
		Title: "Citation data quality in scholarly databases: a longitudinal comparison across sources",
		Author: []string{
			"Cioffi, Alessia",
			"Peroni, Silvio",
		},
		Editor:    []string{"Roe, Richard"},
		PubDate:   "2022-04-12",
		Venue:     "Scientometrics [issn:1588-2861 issn:0138-9130]",
		Volume:    "127",
		Issue:     "6",
		Page:      "3593-3612",
		Type:      []string{"journal article", "comparative study"},
		Publisher: "Springer",
	}
	if d := cmp.Diff(want, rec); d != "" {
		t.Errorf("record mismatch (-want +got):\n%s", d)
	}
}

func TestFromPubmedEmptyInput(t *testing.T) {
	e := New(nil)
	rec := &record.Record{}
	if err := e.FromPubmed([]byte("no medline fields here\n"), rec); err != nil {
		t.Fatal(err)
	}
	if rec.Valid {
		t.Error("expected record untouched")
	}
}

func TestParseMedlineContinuation(t *testing.T) {
	text := "TI  - A very long title that\n      wraps over two lines\nVI  - 3\n"
	fields := parseMedline(text)
	if len(fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(fields))
	}
	want := "A very long title that wraps over two lines"
	if fields[0].Value != want {
		t.Errorf("got %q, want %q", fields[0].Value, want)
	}
}

func TestFromPubmedInvalidISSNSkipped(t *testing.T) {
	text := "JT  - Some Journal\nIS  - 1234-5678 (Print)\n"
	e := New(nil)
	rec := &record.Record{}
	if err := e.FromPubmed([]byte(text), rec); err != nil {
		t.Fatal(err)
	}
	// 1234-5678 fails the check digit, venue stays bare
	if rec.Venue != "Some Journal" {
		t.Errorf("got venue %q", rec.Venue)
	}
}
