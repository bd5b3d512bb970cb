package extract

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/miku/pidkit/normal"
	"github.com/miku/pidkit/schema/jalc"
	"github.com/miku/pidkit/schema/record"
	"github.com/segmentio/encoding/json"
)

// jalcCleanup strips markup first, then folds full-width forms, the
// treatment JaLC titles and venue names get.
var jalcCleanup = &normal.Pipeline{Normalizer: []normal.Normalizer{
	&normal.StripMarkupNormalizer{},
	&normal.NFKCNormalizer{},
}}

// jalcTypes maps JaLC content type codes to record types.
var jalcTypes = map[string]string{
	"JA": "journal article",
	"BK": "book",
	"RD": "dataset",
	"EL": "other",
	"GD": "other",
}

// FromJalc merges a Japan Link Center payload into rec. JaLC fields come
// in parallel language variants; extraction uses the Japanese one. All
// output strings pass through NFKC, folding the full-width forms common
// in JaLC records.
func (e *Extractor) FromJalc(b []byte, rec *record.Record) error {
	var resp jalc.Response
	if err := json.Unmarshal(b, &resp); err != nil {
		return err
	}
	data := resp.Data
	if data.ContentType == "" {
		return nil
	}
	rec.Valid = true

	for _, t := range data.TitleList {
		if t.Lang == "ja" && t.Title != "" {
			setString(&rec.Title, jalcCleanup.Normalize(t.Title))
			break
		}
	}

	creators := make([]jalc.Creator, len(data.CreatorList))
	copy(creators, data.CreatorList)
	sort.SliceStable(creators, func(i, j int) bool {
		return sequenceLess(creators[i].Sequence, creators[j].Sequence)
	})
	authors := []string{}
	for _, c := range creators {
		for _, n := range c.Names {
			if n.Lang != "ja" {
				continue
			}
			agent := record.Agent{
				Role:   record.RoleAuthor,
				Family: normal.NFKC(n.LastName),
				Given:  normal.NFKC(n.FirstName),
			}
			if s := agent.String(); s != "" {
				authors = append(authors, s)
			}
			break
		}
	}
	setStrings(&rec.Author, authors)
	setStrings(&rec.Editor, []string{})

	setString(&rec.PubDate, jalcDate(data.PublicationDate))

	for _, jt := range data.JournalTitleNameList {
		if jt.Lang == "ja" && jt.Type == "full" && jt.JournalTitleName != "" {
			setString(&rec.Venue, jalcCleanup.Normalize(jt.JournalTitleName))
			break
		}
	}

	setString(&rec.Volume, normal.NFKC(data.Volume))
	setString(&rec.Issue, normal.NFKC(data.Issue))
	if page := jalcPages(data.FirstPage, data.LastPage); page != "" {
		setString(&rec.Page, normal.NFKC(page))
	}
	setStrings(&rec.Type, []string{jalcType(data.ContentType)})

	for _, p := range data.PublisherList {
		if p.Lang == "ja" && p.PublisherName != "" {
			setString(&rec.Publisher, normal.NFKC(p.PublisherName))
			break
		}
	}
	return nil
}

func jalcType(code string) string {
	if t, ok := jalcTypes[code]; ok {
		return t
	}
	return "other"
}

// jalcDate joins year, month and day at the precision present, padding
// month and day to two digits.
func jalcDate(d jalc.Date) string {
	year := strings.TrimSpace(d.PublicationYear)
	if year == "" {
		return ""
	}
	s := year
	if month := pad2(d.PublicationMonth); month != "" {
		s += "-" + month
		if day := pad2(d.PublicationDay); day != "" {
			s += "-" + day
		}
	}
	return s
}

func pad2(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if n, err := strconv.Atoi(s); err == nil {
		return fmt.Sprintf("%02d", n)
	}
	return s
}

// jalcPages joins first and last page with a hyphen, quoting any page
// that itself contains a hyphen so the range separator stays readable.
func jalcPages(first, last string) string {
	quote := func(p string) string {
		if strings.Contains(p, "-") {
			return `"` + p + `"`
		}
		return p
	}
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	switch {
	case first != "" && last != "":
		return quote(first) + "-" + quote(last)
	case first != "":
		return quote(first)
	case last != "":
		return quote(last)
	}
	return ""
}
