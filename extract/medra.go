package extract

import (
	"errors"
	"sort"

	"github.com/miku/pidkit/dateutil"
	"github.com/miku/pidkit/normal"
	"github.com/miku/pidkit/schema/medra"
	"github.com/miku/pidkit/schema/record"
)

// FromMedra merges a mEDRA ONIX DOI metadata payload into rec. The work
// element name decides the extraction path.
func (e *Extractor) FromMedra(b []byte, rec *record.Record) error {
	doc, err := medra.Decode(b)
	if errors.Is(err, medra.ErrNoWork) {
		return nil
	}
	if err != nil {
		return err
	}
	rec.Valid = true
	switch doc.Tag {
	case medra.TagSerialArticle:
		e.medraArticle(doc.Article, rec)
	case medra.TagSerialIssue:
		e.medraIssue(doc.Issue, rec)
	case medra.TagMonographicProduct, medra.TagMonographicWork:
		e.medraBook(doc.Book, rec)
	case medra.TagMonographChapter:
		e.medraChapter(doc.Chapter, rec)
	}
	return nil
}

func (e *Extractor) medraArticle(w *medra.SerialArticleWork, rec *record.Record) {
	setString(&rec.Title, medraTitle(w.ContentItem.Titles))

	authors, editors := e.medraAgents(w.ContentItem.Contributors)
	setStrings(&rec.Author, authors)
	setStrings(&rec.Editor, editors)

	setString(&rec.PubDate, dateutil.Partial(w.ContentItem.PubDate, dateutil.Medra))

	name := fixAmbiguousBrackets(medraTitle(w.SerialPublication.SerialWork.Titles))
	var ids idSet
	for _, version := range w.SerialPublication.SerialVersions {
		if version.ProductForm != "JD" && version.ProductForm != "JB" {
			continue
		}
		for _, pid := range version.ProductIDs {
			ids.add(e.validISSN(pid.IDValue))
			break
		}
	}
	setString(&rec.Venue, venueWithIDs(name, ids.ids))

	setString(&rec.Volume, w.JournalIssue.JournalVolumeNumber)
	setString(&rec.Issue, w.JournalIssue.JournalIssueNumber)
	if page := pageRange(w.ContentItem.TextItem.PageRun.FirstPageNumber,
		w.ContentItem.TextItem.PageRun.LastPageNumber); page != "" {
		setString(&rec.Page, cleanPages(page))
	}
	setStrings(&rec.Type, []string{"journal article"})
	setString(&rec.Publisher, w.SerialPublication.SerialWork.Publisher.PublisherName)
}

func (e *Extractor) medraIssue(w *medra.SerialIssueWork, rec *record.Record) {
	name := fixAmbiguousBrackets(medraTitle(w.SerialPublication.SerialWork.Titles))
	var ids idSet
	for _, version := range w.SerialPublication.SerialVersions {
		if version.ProductForm != "JD" && version.ProductForm != "JB" {
			continue
		}
		for _, pid := range version.ProductIDs {
			ids.add(e.validISSN(pid.IDValue))
			break
		}
	}
	setString(&rec.Venue, venueWithIDs(name, ids.ids))
	setString(&rec.Volume, w.JournalIssue.JournalVolumeNumber)
	setString(&rec.Issue, w.JournalIssue.JournalIssueNumber)
	setStrings(&rec.Type, []string{"journal issue"})
	setString(&rec.Publisher, w.SerialPublication.SerialWork.Publisher.PublisherName)
}

func (e *Extractor) medraBook(w *medra.MonographWork, rec *record.Record) {
	setString(&rec.Title, medraTitle(w.Title))
	authors, editors := e.medraAgents(w.Contributors)
	setStrings(&rec.Author, authors)
	setStrings(&rec.Editor, editors)
	setString(&rec.PubDate, dateutil.Partial(w.PubDate, dateutil.Medra))
	setStrings(&rec.Type, []string{"book"})
	setString(&rec.Publisher, w.Publisher.PublisherName)
}

func (e *Extractor) medraChapter(w *medra.MonographChapterWork, rec *record.Record) {
	setString(&rec.Title, medraTitle(w.ContentItem.Titles))
	authors, editors := e.medraAgents(w.ContentItem.Contributors)
	setStrings(&rec.Author, authors)
	setStrings(&rec.Editor, editors)
	setString(&rec.PubDate, dateutil.Partial(w.ContentItem.PubDate, dateutil.Medra))

	name := fixAmbiguousBrackets(medraTitle(w.MonographicPublication.MonographicWork.Title))
	var ids idSet
	for _, pid := range w.MonographicPublication.MonographicProduct.ProductIDs {
		ids.add(e.validISBN(pid.IDValue))
	}
	setString(&rec.Venue, venueWithIDs(name, ids.ids))

	if page := pageRange(w.ContentItem.TextItem.PageRun.FirstPageNumber,
		w.ContentItem.TextItem.PageRun.LastPageNumber); page != "" {
		setString(&rec.Page, cleanPages(page))
	}
	setStrings(&rec.Type, []string{"book chapter"})
}

// medraTitle picks the distinctive title (TitleType 01), falling back to
// the first one present.
func medraTitle(titles []medra.Title) string {
	for _, t := range titles {
		if t.TitleType == "01" && t.TitleText != "" {
			return normal.StripMarkup(t.TitleText)
		}
	}
	for _, t := range titles {
		if t.TitleText != "" {
			return normal.StripMarkup(t.TitleText)
		}
	}
	return ""
}

// medraAgents renders contributors in sequence number order. Role A01 is
// an author, B01 an editor; other roles are skipped.
func (e *Extractor) medraAgents(contributors []medra.Contributor) (authors, editors []string) {
	sorted := make([]medra.Contributor, len(contributors))
	copy(sorted, contributors)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sequenceLess(sorted[i].SequenceNumber, sorted[j].SequenceNumber)
	})
	var agents []record.Agent
	for _, c := range sorted {
		var role string
		switch c.ContributorRole {
		case "A01":
			role = record.RoleAuthor
		case "B01":
			role = record.RoleEditor
		default:
			continue
		}
		agent := record.Agent{Role: role}
		if c.PersonNameInverted != "" {
			agent.Name = c.PersonNameInverted
		} else {
			agent.Name = c.CorporateName
		}
		agent.ORCID = e.validORCID(c.NameIdentifier.IDValue)
		agents = append(agents, agent)
	}
	return record.Strings(agents)
}
