// Package record defines the canonical bibliographic record shape shared
// by all provider extractors, plus the transient agent (author or editor)
// representation used while building contributor lists.
package record

import "strings"

// Record is the unified bibliographic metadata mapping produced
// regardless of source provider. Fields are filled first-writer-wins:
// once non-empty, a later extraction pass must not overwrite them.
type Record struct {
	Valid     bool     `json:"valid"`
	Title     string   `json:"title"`
	Author    []string `json:"author"`
	Editor    []string `json:"editor"`
	PubDate   string   `json:"pub_date"`
	Venue     string   `json:"venue"`
	Volume    string   `json:"volume"`
	Issue     string   `json:"issue"`
	Page      string   `json:"page"`
	Type      []string `json:"type"`
	Publisher string   `json:"publisher"`
}

// Roles an agent can carry.
const (
	RoleAuthor = "author"
	RoleEditor = "editor"
)

// Agent is a transient contributor: a person or organization attached to
// a work with a role. Only the fields the provider supplied are set.
type Agent struct {
	Role   string
	Family string
	Given  string
	Name   string
	ORCID  string
}

// String renders the agent as "Family, Given", "Family, ", ", Given" or
// the bare name, with an " [orcid:ID]" suffix when an ORCID is attached.
func (a Agent) String() string {
	var s string
	switch {
	case a.Family != "" && a.Given != "":
		s = a.Family + ", " + a.Given
	case a.Family != "":
		s = a.Family + ", "
	case a.Name != "":
		s = a.Name
	case a.Given != "":
		s = ", " + a.Given
	default:
		return ""
	}
	if a.ORCID != "" {
		orcid := strings.TrimPrefix(a.ORCID, "orcid:")
		s += " [orcid:" + orcid + "]"
	}
	return s
}

// Strings splits a list of agents into rendered author and editor lists,
// preserving input order and skipping agents without any name part.
func Strings(agents []Agent) (authors, editors []string) {
	authors, editors = []string{}, []string{}
	for _, agent := range agents {
		s := agent.String()
		if s == "" {
			continue
		}
		switch agent.Role {
		case RoleAuthor:
			authors = append(authors, s)
		case RoleEditor:
			editors = append(editors, s)
		}
	}
	return authors, editors
}
