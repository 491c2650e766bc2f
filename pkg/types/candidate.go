// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the linkage-engine
// pipeline: candidate mentions, publications, match decisions, and
// verification outcomes. All structures are value objects owned by the
// calling pipeline step; the only process-wide state in the engine is the
// static lookup tables, which are read-only.
//
// See docs/ARCHITECTURE § Data Model.
package types

// Candidate is one mention of a person gathered from a single source
// (bibliographic record, search engine hit, retraction database entry,
// prior analysis output). Candidates are created upstream per source hit
// and consumed by the grouper; the engine never persists them itself.
type Candidate struct {
	// Name is the raw name string as it appeared in the source.
	Name string `json:"name" yaml:"name"`

	// Affiliation is the raw affiliation string, if the source provided one.
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`

	// Email is a contact address, if known.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// Website is a homepage or profile URL, if known.
	Website string `json:"website,omitempty" yaml:"website,omitempty"`

	// HIndex is the h-index reported by the source, 0 if unknown.
	HIndex int `json:"h_index,omitempty" yaml:"h_index,omitempty"`

	// Citations is the total citation count reported by the source, 0 if unknown.
	Citations int `json:"citations,omitempty" yaml:"citations,omitempty"`

	// Publications lists publications the source attributed to this mention.
	Publications []Publication `json:"publications,omitempty" yaml:"publications,omitempty"`

	// Source identifies where the mention came from (e.g. "pubmed",
	// "serpapi", "claude", "retractions").
	Source string `json:"source" yaml:"source"`

	// ClaudeReason is the suggestion rationale when Source is "claude".
	ClaudeReason string `json:"claude_reason,omitempty" yaml:"claude_reason,omitempty"`
}

// MergedResearcher is the output of grouping: one record per inferred real
// person. Scalar string fields use longest-non-empty selection across the
// group, numeric fields take the maximum, and Sources is the union.
type MergedResearcher struct {
	// ID is assigned by the persistence layer; empty until stored.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Name is the longest non-empty name seen across the group.
	Name string `json:"name" yaml:"name"`

	// NormalizedName is the canonical whitespace-normalized, lowercase form
	// used as the grouping and storage key.
	NormalizedName string `json:"normalized_name" yaml:"normalized_name"`

	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`
	Email       string `json:"email,omitempty" yaml:"email,omitempty"`
	Website     string `json:"website,omitempty" yaml:"website,omitempty"`

	// HIndex is the maximum h-index across the group.
	HIndex int `json:"h_index,omitempty" yaml:"h_index,omitempty"`

	// TotalCitations is the maximum citation count across the group.
	TotalCitations int `json:"total_citations,omitempty" yaml:"total_citations,omitempty"`

	// Sources is the sorted union of member sources.
	Sources []string `json:"sources" yaml:"sources"`

	// Publications concatenates all members' publication lists. Duplicates
	// are kept; downstream consumers dedupe by DOI or PMID.
	Publications []Publication `json:"publications,omitempty" yaml:"publications,omitempty"`

	// ClaudeSuggested is true if any member came from the "claude" source.
	ClaudeSuggested bool `json:"claude_suggested" yaml:"claude_suggested"`
}

// Publication is a bibliographic record as returned by a publication
// search backend.
type Publication struct {
	Title    string   `json:"title" yaml:"title"`
	Year     int      `json:"year,omitempty" yaml:"year,omitempty"`
	Authors  []Author `json:"authors,omitempty" yaml:"authors,omitempty"`
	Journal  string   `json:"journal,omitempty" yaml:"journal,omitempty"`
	DOI      string   `json:"doi,omitempty" yaml:"doi,omitempty"`
	PMID     string   `json:"pmid,omitempty" yaml:"pmid,omitempty"`
	Abstract string   `json:"abstract,omitempty" yaml:"abstract,omitempty"`
}

// Author is one entry in a publication's author list.
type Author struct {
	Name string `json:"name" yaml:"name"`

	// Affiliation is the first listed affiliation for this author on this paper.
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`

	// AllAffiliations lists every affiliation string attached to the author.
	AllAffiliations []string `json:"all_affiliations,omitempty" yaml:"all_affiliations,omitempty"`
}
