package extract

import (
	"regexp"
	"strings"

	"github.com/miku/pidkit/dateutil"
	"github.com/miku/pidkit/schema/record"
)

var (
	medlineFieldPattern = regexp.MustCompile(`^([A-Z]{1,4})\s*- ?(.*)$`)
	medlineContPattern  = regexp.MustCompile(`^\s{6}(.*)$`)
)

// medlineField is one tagged MEDLINE field with continuation lines
// already folded in.
type medlineField struct {
	Tag   string
	Value string
}

// parseMedline splits a MEDLINE flat record into ordered fields. Lines
// indented six spaces continue the previous field.
func parseMedline(text string) []medlineField {
	var fields []medlineField
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if m := medlineFieldPattern.FindStringSubmatch(line); m != nil {
			fields = append(fields, medlineField{Tag: m[1], Value: m[2]})
			continue
		}
		if m := medlineContPattern.FindStringSubmatch(line); m != nil && len(fields) > 0 {
			fields[len(fields)-1].Value += " " + strings.TrimSpace(m[1])
		}
	}
	return fields
}

// FromPubmed merges a PubMed MEDLINE flat record into rec. A payload
// without any recognizable field leaves rec unchanged.
func (e *Extractor) FromPubmed(b []byte, rec *record.Record) error {
	fields := parseMedline(string(b))
	if len(fields) == 0 {
		return nil
	}
	rec.Valid = true

	var (
		authors = []string{}
		editors = []string{}
		types   = []string{}
		ids     idSet
		venue   string
	)
	for _, f := range fields {
		value := strings.TrimSpace(f.Value)
		if value == "" {
			continue
		}
		switch f.Tag {
		case "TI":
			setString(&rec.Title, value)
		case "FAU":
			authors = append(authors, value)
		case "FED", "ED":
			editors = append(editors, value)
		case "DP":
			setString(&rec.PubDate, dateutil.Partial(value, dateutil.Pubmed))
		case "IS":
			// "0138-9130 (Print)", keep the bare ISSN token
			token, _, _ := strings.Cut(value, " ")
			ids.add(e.validISSN(token))
		case "JT":
			if venue == "" {
				venue = fixAmbiguousBrackets(value)
			}
		case "VI":
			setString(&rec.Volume, value)
		case "IP":
			setString(&rec.Issue, value)
		case "PG":
			setString(&rec.Page, cleanPages(value))
		case "PT":
			types = append(types, strings.ToLower(value))
		case "PB":
			setString(&rec.Publisher, value)
		}
	}
	setStrings(&rec.Author, authors)
	setStrings(&rec.Editor, editors)
	if venue != "" || len(ids.ids) > 0 {
		setString(&rec.Venue, venueWithIDs(venue, ids.ids))
	}
	if len(types) > 0 {
		setStrings(&rec.Type, types)
	}
	return nil
}
