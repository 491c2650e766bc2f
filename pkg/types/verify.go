// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// VerificationResult is the terminal output of publication-based
// verification for one candidate.
type VerificationResult struct {
	// Verified is true when enough author-matching publications were found.
	Verified bool `json:"verified" yaml:"verified"`

	// Confidence is the expertise-relevance score in [0, 1].
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// Affiliation is the most frequent affiliation extracted from the
	// matched publications, empty if none could be extracted.
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`

	// InstitutionMismatch is true when the extracted affiliation disagrees
	// with the claimed institution.
	InstitutionMismatch bool `json:"institution_mismatch" yaml:"institution_mismatch"`

	// ExpertiseMismatch is true when none of the specific claimed expertise
	// terms appear in any matched publication.
	ExpertiseMismatch bool `json:"expertise_mismatch" yaml:"expertise_mismatch"`

	// PublicationCount is the number of author-matching publications within
	// the search window (last five years).
	PublicationCount int `json:"publication_count_5yr" yaml:"publication_count_5yr"`

	// Reason is a human-readable explanation for an unverified outcome,
	// e.g. "only 1 relevant publications (minimum: 3)".
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// COIDetail records one detected conflict of interest between the candidate
// and another person.
type COIDetail struct {
	// Name is the other person's name as supplied by the caller.
	Name string `json:"name" yaml:"name"`

	// JointPublications is the number of shared publications found.
	JointPublications int `json:"joint_publications" yaml:"joint_publications"`

	// SampleTitles lists up to three joint publication titles.
	SampleTitles []string `json:"sample_titles,omitempty" yaml:"sample_titles,omitempty"`
}

// COIReport is the outcome of coauthorship conflict-of-interest screening
// for one candidate against a list of other names.
type COIReport struct {
	HasCOI  bool        `json:"has_coi" yaml:"has_coi"`
	Details []COIDetail `json:"details,omitempty" yaml:"details,omitempty"`
}
