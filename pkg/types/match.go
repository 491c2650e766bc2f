// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// MatchType labels which matching tier produced a MatchResult.
type MatchType string

const (
	MatchExact                MatchType = "exact"
	MatchFirstLastExact       MatchType = "first_last_exact"
	MatchNameVariant          MatchType = "name_variant"
	MatchLastFirstInitial     MatchType = "last_first_initial"
	MatchNameOrderSwap        MatchType = "name_order_swap"
	MatchHighSimilarity       MatchType = "high_similarity"
	MatchFullSimilarity       MatchType = "full_similarity"
	MatchNameOrderSwapVariant MatchType = "name_order_swap_variant"
	MatchPartialFirst         MatchType = "partial_first"
	MatchLastNameOnly         MatchType = "last_name_only"
	MatchNone                 MatchType = "no_match"
)

// MatchResult is the graded outcome of comparing two name mentions.
// Produced fresh per comparison and never mutated.
type MatchResult struct {
	// Matches is true for any tier above no_match.
	Matches bool `json:"matches" yaml:"matches"`

	// Confidence is the tier score in [0, 100].
	Confidence int `json:"confidence" yaml:"confidence"`

	// Type identifies the tier that fired.
	Type MatchType `json:"match_type" yaml:"match_type"`
}
