// Package crossref contains the subset of the Crossref works API
// response shape needed for metadata extraction.
package crossref

import "github.com/segmentio/encoding/json"

// Work is a single works API response.
type Work struct {
	Message Message `json:"message"`
}

// Message holds the fields of interest of a work. Crossref is not fully
// consistent about list vs scalar for some fields, hence FlexStrings.
type Message struct {
	DOI            FlexStrings `json:"DOI"`
	Title          FlexStrings `json:"title"`
	Author         []Agent     `json:"author"`
	Editor         []Agent     `json:"editor"`
	Issued         Date        `json:"issued"`
	ContainerTitle FlexStrings `json:"container-title"`
	ISBN           FlexStrings `json:"ISBN"`
	ISSN           FlexStrings `json:"ISSN"`
	Volume         string      `json:"volume"`
	Issue          string      `json:"issue"`
	Page           string      `json:"page"`
	Type           string      `json:"type"`
	Publisher      string      `json:"publisher"`
	Member         string      `json:"member"`
}

// Agent is an author or editor entry.
type Agent struct {
	Given  string `json:"given"`
	Family string `json:"family"`
	Name   string `json:"name"`
	ORCID  string `json:"ORCID"`
}

// Date is a Crossref date-parts date.
type Date struct {
	DateParts [][]int `json:"date-parts"`
}

// FlexStrings decodes a JSON string, a list of strings, or a list of
// arbitrary scalars into a string slice.
type FlexStrings []string

func (f *FlexStrings) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexStrings{s}
		return nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	out := make(FlexStrings, 0, len(list))
	for _, raw := range list {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			v = string(raw)
		}
		out = append(out, v)
	}
	*f = out
	return nil
}

// First returns the first value or the empty string.
func (f FlexStrings) First() string {
	if len(f) == 0 {
		return ""
	}
	return f[0]
}
