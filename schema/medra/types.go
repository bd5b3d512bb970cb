// Package medra contains structs for the ONIX DOI metadata documents
// served by the mEDRA API. A response wraps one work or product element;
// the element name decides the bibliographic resource type.
package medra

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
)

// Work element names, in sniffing order.
const (
	TagMonographicProduct = "DOIMonographicProduct"
	TagMonographicWork    = "DOIMonographicWork"
	TagMonographChapter   = "DOIMonographChapterWork"
	TagSerialArticle      = "DOISerialArticleWork"
	TagSerialIssue        = "DOISerialIssueWork"
)

var ErrNoWork = errors.New("medra: no work element found")

// Document is the decoded work element plus its tag name.
type Document struct {
	Tag     string
	Article *SerialArticleWork
	Issue   *SerialIssueWork
	Book    *MonographWork
	Chapter *MonographChapterWork
}

// Decode walks the XML token stream to the first known work element and
// decodes it, regardless of the surrounding message envelope.
func Decode(b []byte) (*Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(b))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, ErrNoWork
		}
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		doc := &Document{Tag: start.Name.Local}
		switch start.Name.Local {
		case TagSerialArticle:
			doc.Article = new(SerialArticleWork)
			return doc, dec.DecodeElement(doc.Article, &start)
		case TagSerialIssue:
			doc.Issue = new(SerialIssueWork)
			return doc, dec.DecodeElement(doc.Issue, &start)
		case TagMonographicProduct, TagMonographicWork:
			doc.Tag = start.Name.Local
			doc.Book = new(MonographWork)
			return doc, dec.DecodeElement(doc.Book, &start)
		case TagMonographChapter:
			doc.Chapter = new(MonographChapterWork)
			return doc, dec.DecodeElement(doc.Chapter, &start)
		}
	}
}

// SerialArticleWork is a journal article registration.
type SerialArticleWork struct {
	SerialPublication SerialPublication `xml:"SerialPublication"`
	JournalIssue      JournalIssue      `xml:"JournalIssue"`
	ContentItem       ContentItem       `xml:"ContentItem"`
}

// SerialIssueWork is a journal issue registration.
type SerialIssueWork struct {
	SerialPublication SerialPublication `xml:"SerialPublication"`
	JournalIssue      JournalIssue      `xml:"JournalIssue"`
}

// MonographWork covers books registered as work or product.
type MonographWork struct {
	Title        []Title       `xml:"Title"`
	Contributors []Contributor `xml:"Contributor"`
	Publisher    Publisher     `xml:"Publisher"`
	ProductIDs   []ProductID   `xml:"ProductIdentifier"`
	PubDate      string        `xml:"PublicationDate"`
	CountryCode  string        `xml:"CountryOfPublication"`
}

// MonographChapterWork is a chapter within a monograph.
type MonographChapterWork struct {
	MonographicPublication MonographicPublication `xml:"MonographicPublication"`
	ContentItem            ContentItem            `xml:"ContentItem"`
}

type MonographicPublication struct {
	MonographicWork struct {
		Title []Title `xml:"Title"`
	} `xml:"MonographicWork"`
	MonographicProduct struct {
		ProductIDs []ProductID `xml:"ProductIdentifier"`
	} `xml:"MonographicProduct"`
}

type SerialPublication struct {
	SerialWork     SerialWork      `xml:"SerialWork"`
	SerialVersions []SerialVersion `xml:"SerialVersion"`
}

type SerialWork struct {
	Titles    []Title   `xml:"Title"`
	Publisher Publisher `xml:"Publisher"`
}

type SerialVersion struct {
	ProductForm string      `xml:"ProductForm"`
	ProductIDs  []ProductID `xml:"ProductIdentifier"`
}

type ProductID struct {
	IDTypeName string `xml:"ProductIDType"`
	IDValue    string `xml:"IDValue"`
}

type Title struct {
	TitleType string `xml:"TitleType"`
	TitleText string `xml:"TitleText"`
}

type Publisher struct {
	PublisherName string `xml:"PublisherName"`
}

type JournalIssue struct {
	JournalVolumeNumber string `xml:"JournalVolumeNumber"`
	JournalIssueNumber  string `xml:"JournalIssueNumber"`
}

type ContentItem struct {
	SequenceNumber string        `xml:"SequenceNumber"`
	Titles         []Title       `xml:"Title"`
	Contributors   []Contributor `xml:"Contributor"`
	TextItem       TextItem      `xml:"TextItem"`
	PubDate        string        `xml:"PublicationDate"`
}

type TextItem struct {
	PageRun PageRun `xml:"PageRun"`
}

type PageRun struct {
	FirstPageNumber string `xml:"FirstPageNumber"`
	LastPageNumber  string `xml:"LastPageNumber"`
}

type Contributor struct {
	SequenceNumber     string         `xml:"SequenceNumber"`
	ContributorRole    string         `xml:"ContributorRole"`
	PersonNameInverted string         `xml:"PersonNameInverted"`
	CorporateName      string         `xml:"CorporateName"`
	NameIdentifier     NameIdentifier `xml:"NameIdentifier"`
}

type NameIdentifier struct {
	IDValue string `xml:"IDValue"`
}
