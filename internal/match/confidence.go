// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match computes tiered confidence scores between two name
// mentions and adjusts them for institutional agreement.
//
// The tier table is the single source of truth: an ordered list of
// (predicate, confidence, label) rules evaluated top to bottom, returning
// on the first hit. More specific evidence outranks looser statistical
// similarity, and the length-bounded last-name-only tier exists to keep
// "John Smith" from matching "Jonathan Smith-Jones".
//
// See docs/ARCHITECTURE § Confidence Matching.
package match

import (
	"strings"

	"github.com/pdiddy/linkage-engine/internal/institution"
	"github.com/pdiddy/linkage-engine/internal/names"
	"github.com/pdiddy/linkage-engine/internal/similarity"
	"github.com/pdiddy/linkage-engine/pkg/types"
)

// tier is one priority-ordered matching rule.
type tier struct {
	label      types.MatchType
	confidence int
	applies    func(a, b names.Parts) bool
}

// tiers are evaluated in order; the first predicate that fires wins.
var tiers = []tier{
	{types.MatchExact, 100, func(a, b names.Parts) bool {
		return a.Full == b.Full
	}},
	{types.MatchFirstLastExact, 95, func(a, b names.Parts) bool {
		return sameLast(a, b) && a.First != "" && a.First == b.First
	}},
	{types.MatchNameVariant, 90, func(a, b names.Parts) bool {
		return sameLast(a, b) && a.First != "" && b.First != "" &&
			names.AreVariants(a.First, b.First)
	}},
	{types.MatchLastFirstInitial, 85, func(a, b names.Parts) bool {
		return sameLast(a, b) && a.First != "" && b.First != "" &&
			a.First[0] == b.First[0] &&
			(len(a.First) == 1 || len(b.First) == 1)
	}},
	{types.MatchNameOrderSwap, 85, func(a, b names.Parts) bool {
		return a.First != "" && b.First != "" &&
			a.First == b.Last && a.Last == b.First
	}},
	{types.MatchHighSimilarity, 80, func(a, b names.Parts) bool {
		return sameLast(a, b) && similarity.Dice(a.Full, b.Full) > 0.9
	}},
	{types.MatchFullSimilarity, 75, func(a, b names.Parts) bool {
		return similarity.Dice(a.Full, b.Full) > 0.9
	}},
	{types.MatchNameOrderSwapVariant, 75, func(a, b names.Parts) bool {
		return orderSwapVariant(a, b) || orderSwapVariant(b, a)
	}},
	{types.MatchPartialFirst, 60, func(a, b names.Parts) bool {
		return sameLast(a, b) && a.First != "" && b.First != "" &&
			(strings.HasPrefix(a.First, b.First) || strings.HasPrefix(b.First, a.First))
	}},
	// Two mentions that both carry first names and reach this point have
	// conflicting first names (equal, variant, initial, and prefix forms all
	// matched earlier), so a shared surname alone must not pair them. The
	// tier exists for surname-only mentions, with the length bound keeping
	// "Smith" away from hyphenated compounds.
	{types.MatchLastNameOnly, 50, func(a, b names.Parts) bool {
		return sameLast(a, b) && (a.First == "" || b.First == "") &&
			absDiff(len(a.Full), len(b.Full)) <= 3
	}},
}

func sameLast(a, b names.Parts) bool {
	return a.Last != "" && a.Last == b.Last
}

// orderSwapVariant catches "Rob Zhang" vs "Zhang Robert": last of one side
// equals first of the other, and the remaining first names are nickname
// variants. Checked in both directions so the outcome is symmetric.
func orderSwapVariant(a, b names.Parts) bool {
	return a.First != "" && b.First != "" &&
		a.Last == b.First && names.AreVariants(a.First, b.Last)
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// Match computes the tiered confidence between two raw name strings. It is
// deterministic and total: malformed or empty input degrades to no_match
// rather than failing.
func Match(nameA, nameB string) types.MatchResult {
	a := names.Normalize(nameA)
	b := names.Normalize(nameB)
	return MatchParts(a, b)
}

// MatchParts is Match for already-normalized parts, letting callers that
// normalize once avoid repeating the work in O(n²) comparison loops.
func MatchParts(a, b names.Parts) types.MatchResult {
	if a.IsEmpty() || b.IsEmpty() {
		return types.MatchResult{Type: types.MatchNone}
	}

	for _, t := range tiers {
		if t.applies(a, b) {
			return types.MatchResult{Matches: true, Confidence: t.confidence, Type: t.label}
		}
	}
	return types.MatchResult{Type: types.MatchNone}
}

// adjustStopWords are ignored when counting shared significant words for
// the institution adjustment. Broader than the institution matcher's list:
// generic institutional nouns carry no distinguishing signal here.
var adjustStopWords = map[string]bool{
	"of": true, "the": true, "and": true, "at": true, "in": true, "for": true,
	"university": true, "college": true, "institute": true,
}

// AdjustForInstitution raises a base confidence when two affiliation
// strings agree: +15 for equal normalized forms, +10 for containment or at
// least two shared significant words. Never lowers the confidence; the
// result is capped at 100.
func AdjustForInstitution(base int, instA, instB string) int {
	if instA == "" || instB == "" {
		return base
	}

	normA := institution.Normalize(instA)
	normB := institution.Normalize(instB)
	if normA == "" || normB == "" {
		return base
	}

	if normA == normB {
		return capConfidence(base + 15)
	}
	if similarity.ContainsFold(normA, normB) {
		return capConfidence(base + 10)
	}

	shared := 0
	wordsB := make(map[string]bool)
	for _, w := range strings.Fields(normB) {
		if len(w) > 2 && !adjustStopWords[w] {
			wordsB[w] = true
		}
	}
	for _, w := range strings.Fields(normA) {
		if len(w) > 2 && !adjustStopWords[w] && wordsB[w] {
			shared++
		}
	}
	if shared >= 2 {
		return capConfidence(base + 10)
	}
	return base
}

func capConfidence(c int) int {
	if c > 100 {
		return 100
	}
	return c
}
