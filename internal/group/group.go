// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package group clusters candidate mentions into one record per inferred
// real person and merges each cluster's fields.
//
// Clustering is greedy and single-pass in input order, O(n²) over the
// candidate list. Candidate lists are bounded (tens to low hundreds per
// proposal); if that changes, switch to union-find blocked on last name
// without touching the matching semantics.
//
// See docs/ARCHITECTURE § Grouping and Merging.
package group

import (
	"sort"
	"strings"

	"github.com/pdiddy/linkage-engine/internal/match"
	"github.com/pdiddy/linkage-engine/internal/names"
	"github.com/pdiddy/linkage-engine/internal/similarity"
	"github.com/pdiddy/linkage-engine/pkg/types"
)

// Group clusters candidates by name similarity. Each unprocessed candidate
// seeds a new group and absorbs every later unprocessed candidate whose
// name is similar enough under the confidence matcher or the relaxed
// initials/partial rules.
func Group(candidates []types.Candidate) [][]types.Candidate {
	parts := make([]names.Parts, len(candidates))
	for i, c := range candidates {
		parts[i] = names.Normalize(c.Name)
	}

	used := make([]bool, len(candidates))
	var groups [][]types.Candidate

	for i := range candidates {
		if used[i] {
			continue
		}
		used[i] = true
		g := []types.Candidate{candidates[i]}

		for j := i + 1; j < len(candidates); j++ {
			if used[j] {
				continue
			}
			if similarEnough(parts[i], parts[j]) {
				used[j] = true
				g = append(g, candidates[j])
			}
		}
		groups = append(groups, g)
	}
	return groups
}

// similarEnough is the grouping criterion: any non-zero-confidence tier
// match, high overall bigram similarity, an initials match, or a partial
// first-name match.
func similarEnough(a, b names.Parts) bool {
	if match.MatchParts(a, b).Matches {
		return true
	}
	if similarity.Dice(a.Full, b.Full) > 0.85 {
		return true
	}
	return isInitialsMatch(a, b) || isPartialMatch(a, b)
}

// isInitialsMatch: same last name, and one first token reduced to a single
// letter is a prefix of the other.
func isInitialsMatch(a, b names.Parts) bool {
	if a.Last == "" || a.Last != b.Last || a.First == "" || b.First == "" {
		return false
	}
	fa := strings.ReplaceAll(a.First, ".", "")
	fb := strings.ReplaceAll(b.First, ".", "")
	if fa == "" || fb == "" {
		return false
	}
	return (len(fa) == 1 && strings.HasPrefix(fb, fa)) ||
		(len(fb) == 1 && strings.HasPrefix(fa, fb))
}

// isPartialMatch: same last name, and one first name contains the other.
func isPartialMatch(a, b names.Parts) bool {
	if a.Last == "" || a.Last != b.Last || a.First == "" || b.First == "" {
		return false
	}
	return strings.Contains(a.First, b.First) || strings.Contains(b.First, a.First)
}

// Merge collapses one group into a single researcher record: longest
// non-empty wins for string fields, numeric max for counts, union for
// sources, and concatenation for publications. Publication dedup is left
// to downstream consumers keyed on DOI or PMID.
func Merge(g []types.Candidate) types.MergedResearcher {
	var m types.MergedResearcher
	if len(g) == 0 {
		return m
	}

	sourceSet := make(map[string]bool)
	for _, c := range g {
		m.Name = longest(m.Name, c.Name)
		m.Affiliation = longest(m.Affiliation, c.Affiliation)
		m.Email = longest(m.Email, c.Email)
		m.Website = longest(m.Website, c.Website)

		if c.HIndex > m.HIndex {
			m.HIndex = c.HIndex
		}
		if c.Citations > m.TotalCitations {
			m.TotalCitations = c.Citations
		}

		if c.Source != "" {
			sourceSet[c.Source] = true
		}
		if c.Source == "claude" {
			m.ClaudeSuggested = true
		}

		m.Publications = append(m.Publications, c.Publications...)
	}

	for s := range sourceSet {
		m.Sources = append(m.Sources, s)
	}
	sort.Strings(m.Sources)

	m.NormalizedName = names.Normalize(m.Name).Full
	return m
}

// GroupAndMerge runs the full pipeline: cluster, then merge each cluster.
func GroupAndMerge(candidates []types.Candidate) []types.MergedResearcher {
	groups := Group(candidates)
	merged := make([]types.MergedResearcher, 0, len(groups))
	for _, g := range groups {
		merged = append(merged, Merge(g))
	}
	return merged
}

// longest returns the longer of two strings, preferring non-empty values.
func longest(cur, candidate string) string {
	if len(candidate) > len(cur) {
		return candidate
	}
	return cur
}
