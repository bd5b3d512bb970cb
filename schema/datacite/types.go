// Package datacite contains the subset of the DataCite REST API response
// shape needed for metadata extraction.
package datacite

// Document is a single DOI response.
type Document struct {
	Data Data `json:"data"`
}

type Data struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	Attributes Attributes `json:"attributes"`
}

type Attributes struct {
	DOI                string              `json:"doi"`
	Titles             []Title             `json:"titles"`
	Creators           []Name              `json:"creators"`
	Contributors       []Name              `json:"contributors"`
	Dates              []Date              `json:"dates"`
	PublicationYear    int64               `json:"publicationYear"`
	Container          Container           `json:"container"`
	RelatedIdentifiers []RelatedIdentifier `json:"relatedIdentifiers"`
	Types              Types               `json:"types"`
	Publisher          string              `json:"publisher"`
}

type Title struct {
	Title string `json:"title"`
}

type Name struct {
	Name            string           `json:"name"`
	GivenName       string           `json:"givenName"`
	FamilyName      string           `json:"familyName"`
	NameType        string           `json:"nameType"`
	ContributorType string           `json:"contributorType"`
	NameIdentifiers []NameIdentifier `json:"nameIdentifiers"`
}

type NameIdentifier struct {
	NameIdentifier       string `json:"nameIdentifier"`
	NameIdentifierScheme string `json:"nameIdentifierScheme"`
}

type Date struct {
	Date     string `json:"date"`
	DateType string `json:"dateType"`
}

type Container struct {
	Type           string `json:"type"`
	Identifier     string `json:"identifier"`
	IdentifierType string `json:"identifierType"`
	Title          string `json:"title"`
	Volume         string `json:"volume"`
	Issue          string `json:"issue"`
	FirstPage      string `json:"firstPage"`
	LastPage       string `json:"lastPage"`
}

type RelatedIdentifier struct {
	RelationType          string `json:"relationType"`
	RelatedIdentifierType string `json:"relatedIdentifierType"`
	RelatedIdentifier     string `json:"relatedIdentifier"`
	Volume                string `json:"volume"`
	Issue                 string `json:"issue"`
	FirstPage             string `json:"firstPage"`
	LastPage              string `json:"lastPage"`
}

// Types carries the parallel type vocabularies of a DOI. Values returns
// the non-empty ones in a fixed order, so record output is deterministic.
type Types struct {
	ResourceTypeGeneral string `json:"resourceTypeGeneral"`
	ResourceType        string `json:"resourceType"`
	SchemaOrg           string `json:"schemaOrg"`
	Citeproc            string `json:"citeproc"`
	Bibtex              string `json:"bibtex"`
	Ris                 string `json:"ris"`
}

func (t Types) Values() []string {
	var out []string
	for _, v := range []string{
		t.ResourceTypeGeneral, t.ResourceType, t.SchemaOrg,
		t.Citeproc, t.Bibtex, t.Ris,
	} {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
