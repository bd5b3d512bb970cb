// Package pidkit normalizes, validates and resolves scholarly persistent
// identifiers (DOI, ISBN, ISSN, ORCID, PMID, arXiv, Wikidata, Wikipedia)
// and extracts canonical bibliographic records from registration agency
// responses (Crossref, DataCite, mEDRA, JaLC, PubMed).
package pidkit

const (
	Version = "0.1.0"
	AppName = "pidkit"

	// UserAgent is sent with every registry request.
	UserAgent = "pidkit/" + Version + " (https://github.com/miku/pidkit)"
)
