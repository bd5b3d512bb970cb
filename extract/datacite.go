package extract

import (
	"strconv"
	"strings"

	"github.com/miku/pidkit/dateutil"
	"github.com/miku/pidkit/normal"
	"github.com/miku/pidkit/schema/datacite"
	"github.com/miku/pidkit/schema/record"
	"github.com/segmentio/encoding/json"
)

// FromDataCite merges a DataCite REST API payload into rec. Payloads
// whose data type is not "dois" leave rec unchanged.
func (e *Extractor) FromDataCite(b []byte, rec *record.Record) error {
	var doc datacite.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	if doc.Data.Type != "dois" || doc.Data.ID == "" {
		return nil
	}
	rec.Valid = true
	attrs := doc.Data.Attributes

	for _, t := range attrs.Titles {
		if t.Title != "" {
			setString(&rec.Title, normal.StripMarkup(t.Title))
			break
		}
	}

	var agents []record.Agent
	for _, c := range attrs.Creators {
		agents = append(agents, dataciteAgent(e, c, record.RoleAuthor))
	}
	for _, c := range attrs.Contributors {
		if c.ContributorType != "Editor" {
			continue
		}
		agents = append(agents, dataciteAgent(e, c, record.RoleEditor))
	}
	authors, editors := record.Strings(agents)
	setStrings(&rec.Author, authors)
	setStrings(&rec.Editor, editors)

	setString(&rec.PubDate, datacitePubDate(attrs))

	var (
		name                string
		ids                 idSet
		volume, issue, page string
	)
	// only containers identified by ISSN or ISBN contribute; a DOI- or
	// URL-typed container is a related work, not a venue
	container := attrs.Container
	switch strings.ToLower(container.IdentifierType) {
	case "issn":
		ids.add(e.issn.Normalise(container.Identifier, true))
		name = normal.StripMarkup(container.Title)
		volume = container.Volume
		issue = container.Issue
		page = pageRange(container.FirstPage, container.LastPage)
	case "isbn":
		ids.add(e.isbn.Normalise(container.Identifier, true))
		name = normal.StripMarkup(container.Title)
		volume = container.Volume
		issue = container.Issue
		page = pageRange(container.FirstPage, container.LastPage)
	}
	for _, rel := range attrs.RelatedIdentifiers {
		if strings.ToLower(rel.RelationType) != "ispartof" {
			continue
		}
		switch strings.ToLower(rel.RelatedIdentifierType) {
		case "issn":
			ids.add(e.issn.Normalise(rel.RelatedIdentifier, true))
		case "isbn":
			ids.add(e.isbn.Normalise(rel.RelatedIdentifier, true))
		default:
			continue
		}
		if volume == "" {
			volume = rel.Volume
		}
		if issue == "" {
			issue = rel.Issue
		}
		if page == "" {
			page = pageRange(rel.FirstPage, rel.LastPage)
		}
	}
	if name != "" || len(ids.ids) > 0 {
		setString(&rec.Venue, venueWithIDs(fixAmbiguousBrackets(name), ids.ids))
	}
	setString(&rec.Volume, volume)
	setString(&rec.Issue, issue)
	if page != "" {
		setString(&rec.Page, cleanPages(page))
	}

	if values := attrs.Types.Values(); len(values) > 0 {
		types := make([]string, 0, len(values))
		for _, v := range values {
			types = append(types, strings.ReplaceAll(strings.ToLower(v), "-", " "))
		}
		setStrings(&rec.Type, types)
	}
	setString(&rec.Publisher, strings.TrimSpace(normal.ReplaceNewlineAndTab(attrs.Publisher)))
	return nil
}

func dataciteAgent(e *Extractor, n datacite.Name, role string) record.Agent {
	agent := record.Agent{Role: role, Name: n.Name}
	if n.NameType == "Personal" || n.FamilyName != "" || n.GivenName != "" {
		agent.Family = n.FamilyName
		agent.Given = n.GivenName
	}
	for _, ni := range n.NameIdentifiers {
		if !strings.EqualFold(ni.NameIdentifierScheme, "ORCID") {
			continue
		}
		if orcid := e.validORCID(ni.NameIdentifier); orcid != "" {
			agent.ORCID = orcid
			break
		}
	}
	return agent
}

// datacitePubDate prefers the issued date over the publication year.
func datacitePubDate(attrs datacite.Attributes) string {
	for _, d := range attrs.Dates {
		if d.DateType != "Issued" || d.Date == "" {
			continue
		}
		if iso := dateutil.Partial(d.Date, dateutil.ISO); iso != "" {
			return iso
		}
		if lenient := dateutil.Lenient(d.Date); lenient != "" {
			return lenient
		}
		return d.Date
	}
	if attrs.PublicationYear != 0 {
		return strconv.FormatInt(attrs.PublicationYear, 10)
	}
	return ""
}

func pageRange(first, last string) string {
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	switch {
	case first != "" && last != "":
		return first + "-" + last
	case first != "":
		return first
	case last != "":
		return last
	}
	return ""
}
