package extract

import (
	"github.com/miku/pidkit/fetch"
	"github.com/miku/pidkit/id"
	"github.com/miku/pidkit/schema/record"
)

// ResolveDOI validates a DOI through the given manager and, when
// providers are named, augments the verdict with metadata fetched from
// their APIs. Providers are tried in order and merged first-writer-wins,
// so a second provider only fills fields the first one left empty.
// Passing Unknown routes through the registration agency lookup.
//
// A failed validation yields a record with Valid false and nothing else;
// a provider fetch failure is not fatal, the chain moves on.
func (e *Extractor) ResolveDOI(dm *id.DOI, raw string, providers ...Provider) (*record.Record, error) {
	rec := &record.Record{
		Author: []string{},
		Editor: []string{},
		Type:   []string{},
	}
	if !dm.IsValid(raw) {
		return rec, nil
	}
	rec.Valid = true
	doi := dm.Normalise(raw, false)
	var lastErr error
	for _, provider := range providers {
		if e.client == nil {
			break
		}
		var link string
		switch provider {
		case Unknown:
			link = id.DOIRAEndpoint + fetch.QuotePath(doi)
		default:
			endpoint, ok := id.RAEndpoints[string(provider)]
			if !ok {
				continue
			}
			link = endpoint + fetch.QuotePath(doi)
		}
		resp, err := e.client.Get(link, nil)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != 200 {
			continue
		}
		if err := e.Extract(provider, resp.Body, rec); err != nil {
			lastErr = err
		}
	}
	return rec, lastErr
}
