package extract

import (
	"strings"

	"github.com/miku/pidkit/fetch"
	"github.com/miku/pidkit/id"
	"github.com/miku/pidkit/schema/record"
	"github.com/segmentio/encoding/json"
)

// providerForRA maps a lowercased registration agency name, as reported
// by https://doi.org/ra/, to the extractor that understands its API.
var providerForRA = map[string]Provider{
	"crossref": Crossref,
	"datacite": DataCite,
	"medra":    Medra,
	"jalc":     Jalc,
}

// FromUnknown routes a doi.org/ra response to the registration agency's
// own metadata API and extracts from there. Agencies without a supported
// API leave rec unchanged.
func (e *Extractor) FromUnknown(b []byte, rec *record.Record) error {
	var rows []struct {
		DOI string `json:"DOI"`
		RA  string `json:"RA"`
	}
	if err := json.Unmarshal(b, &rows); err != nil {
		return err
	}
	if len(rows) == 0 || e.client == nil {
		return nil
	}
	ra := strings.ToLower(strings.TrimSpace(rows[0].RA))
	provider, ok := providerForRA[ra]
	if !ok {
		return nil
	}
	endpoint, ok := id.RAEndpoints[ra]
	if !ok {
		return nil
	}
	doi := e.doi.Normalise(rows[0].DOI, false)
	if doi == "" {
		return nil
	}
	resp, err := e.client.Get(endpoint+fetch.QuotePath(doi), nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return nil
	}
	return e.Extract(provider, resp.Body, rec)
}
