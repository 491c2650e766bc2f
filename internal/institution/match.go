// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package institution

import (
	"sort"
	"strings"

	"github.com/pdiddy/linkage-engine/internal/similarity"
)

// stopWords are ignored when extracting significant words.
var stopWords = map[string]bool{
	"of": true, "the": true, "and": true, "at": true, "in": true, "for": true,
}

// shortWordAllowlist keeps short tokens that are institution-defining
// despite their length, e.g. the "A&M" in "Texas A&M".
var shortWordAllowlist = map[string]bool{
	"am": true,
}

// conflictWords distinguish otherwise-overlapping institutions. A word from
// this set present on one side but not the other rejects a subset match, so
// "University of Michigan" never matches "Michigan State University".
var conflictWords = map[string]bool{
	"state": true, "tech": true, "polytechnic": true,
	"community": true, "medical": true, "health": true, "am": true,
}

// Match decides whether two affiliation strings refer to the same
// institution. Checks short-circuit on the first success: raw equality,
// abbreviation-expanded normalized equality, substring containment,
// significant-word multiset equality, subset match with conflict-word veto,
// and finally bigram similarity above 0.9.
func Match(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}

	normA := Normalize(ExpandAbbreviations(a))
	normB := Normalize(ExpandAbbreviations(b))
	if normA == "" || normB == "" {
		return false
	}
	if normA == normB {
		return true
	}

	if similarity.ContainsFold(normA, normB) {
		return true
	}

	wordsA := SignificantWords(normA)
	wordsB := SignificantWords(normB)

	if sameWordMultiset(wordsA, wordsB) {
		return true
	}

	if subsetMatch(wordsA, wordsB) {
		return true
	}

	return similarity.Dice(normA, normB) > 0.9
}

// SignificantWords extracts the institution-defining tokens of a normalized
// affiliation: words longer than two characters or in the short-word
// allowlist, minus stop-words.
func SignificantWords(normalized string) []string {
	var words []string
	for _, w := range strings.Fields(normalized) {
		if stopWords[w] {
			continue
		}
		if len(w) > 2 || shortWordAllowlist[w] {
			words = append(words, w)
		}
	}
	return words
}

func sameWordMultiset(a, b []string) bool {
	if len(a) == 0 || len(a) != len(b) {
		return false
	}
	sa := append([]string(nil), a...)
	sb := append([]string(nil), b...)
	sort.Strings(sa)
	sort.Strings(sb)
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}

// subsetMatch accepts when every word of the shorter side appears in the
// longer side, the shorter side has at least two words, and the longer side
// introduces no conflict word absent from the shorter.
func subsetMatch(a, b []string) bool {
	shorter, longer := a, b
	if len(longer) < len(shorter) {
		shorter, longer = longer, shorter
	}
	if len(shorter) < 2 {
		return false
	}

	shorterSet := make(map[string]bool, len(shorter))
	for _, w := range shorter {
		shorterSet[w] = true
	}

	for _, w := range longer {
		if conflictWords[w] && !shorterSet[w] {
			return false
		}
	}

	longerSet := make(map[string]bool, len(longer))
	for _, w := range longer {
		longerSet[w] = true
	}
	for _, w := range shorter {
		if !longerSet[w] {
			return false
		}
	}
	return true
}
