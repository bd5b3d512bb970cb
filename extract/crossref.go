package extract

import (
	"fmt"
	"strings"

	"github.com/miku/pidkit/normal"
	"github.com/miku/pidkit/schema/crossref"
	"github.com/miku/pidkit/schema/record"
	"github.com/segmentio/encoding/json"
)

// Venue identifier gates, keyed by the work type as the API reports it.
var (
	crossrefISBNTypes = map[string]bool{
		"book chapter":    true,
		"book part":       true,
		"book section":    true,
		"book track":      true,
		"reference entry": true,
	}
	crossrefISSNTypes = map[string]bool{
		"book":            true,
		"data file":       true,
		"dataset":         true,
		"edited book":     true,
		"journal article": true,
		"journal volume":  true,
		"journal issue":   true,
		"monograph":       true,
		"proceedings":     true,
		"peer review":     true,
		"reference book":  true,
		"reference entry": true,
		"report":          true,
	}
)

// FromCrossref merges a Crossref works API payload into rec. A payload
// without a DOI leaves rec unchanged.
func (e *Extractor) FromCrossref(b []byte, rec *record.Record) error {
	var work crossref.Work
	if err := json.Unmarshal(b, &work); err != nil {
		return err
	}
	msg := work.Message
	if msg.DOI.First() == "" {
		return nil
	}
	rec.Valid = true

	if len(msg.Title) > 0 {
		setString(&rec.Title, normal.StripMarkup(msg.Title.First()))
	}

	var agents []record.Agent
	for _, a := range msg.Author {
		agents = append(agents, record.Agent{
			Role:   record.RoleAuthor,
			Family: a.Family,
			Given:  a.Given,
			Name:   a.Name,
			ORCID:  e.validORCID(a.ORCID),
		})
	}
	for _, a := range msg.Editor {
		agents = append(agents, record.Agent{
			Role:   record.RoleEditor,
			Family: a.Family,
			Given:  a.Given,
			Name:   a.Name,
			ORCID:  e.validORCID(a.ORCID),
		})
	}
	authors, editors := record.Strings(agents)
	setStrings(&rec.Author, authors)
	setStrings(&rec.Editor, editors)

	setString(&rec.PubDate, dateParts(msg.Issued))

	if len(msg.ContainerTitle) > 0 {
		name := fixAmbiguousBrackets(normal.StripMarkup(msg.ContainerTitle.First()))
		var ids idSet
		if crossrefISBNTypes[msg.Type] {
			for _, raw := range msg.ISBN {
				ids.add(e.validISBN(raw))
			}
		}
		if crossrefISSNTypes[msg.Type] ||
			(msg.Type == "report series" && name != "") {
			for _, raw := range msg.ISSN {
				ids.add(e.validISSN(raw))
			}
		}
		setString(&rec.Venue, venueWithIDs(name, ids.ids))
	}

	setString(&rec.Volume, msg.Volume)
	setString(&rec.Issue, msg.Issue)
	if msg.Page != "" {
		setString(&rec.Page, cleanPages(msg.Page))
	}
	if msg.Type != "" {
		setStrings(&rec.Type, []string{strings.ReplaceAll(msg.Type, "-", " ")})
	}
	if msg.Publisher != "" {
		publisher := msg.Publisher
		if msg.Member != "" {
			publisher = fmt.Sprintf("%s [crossref:%s]", publisher, msg.Member)
		}
		setString(&rec.Publisher, publisher)
	}
	return nil
}

// dateParts renders the first date-parts entry as a partial ISO date.
func dateParts(d crossref.Date) string {
	if len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return ""
	}
	parts := d.DateParts[0]
	if parts[0] == 0 {
		return ""
	}
	s := fmt.Sprintf("%d", parts[0])
	if len(parts) > 1 && parts[1] != 0 {
		s += fmt.Sprintf("-%02d", parts[1])
		if len(parts) > 2 && parts[2] != 0 {
			s += fmt.Sprintf("-%02d", parts[2])
		}
	}
	return s
}
