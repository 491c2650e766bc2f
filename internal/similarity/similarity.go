// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package similarity provides string similarity scoring shared by the
// matching components.
package similarity

import "strings"

// Dice computes the Sørensen–Dice coefficient over character bigrams,
// returning a value in [0, 1]. Identical strings score 1; strings shorter
// than two characters only match exactly.
func Dice(a, b string) float64 {
	if a == b {
		if a == "" {
			return 0
		}
		return 1
	}
	if len(a) < 2 || len(b) < 2 {
		return 0
	}

	bigramsA := bigrams(a)
	bigramsB := bigrams(b)

	overlap := 0
	for bg, n := range bigramsA {
		if m, ok := bigramsB[bg]; ok {
			overlap += min(n, m)
		}
	}

	totalA := len(a) - 1
	totalB := len(b) - 1
	return 2.0 * float64(overlap) / float64(totalA+totalB)
}

// bigrams returns the multiset of adjacent character pairs in s.
func bigrams(s string) map[string]int {
	m := make(map[string]int, len(s))
	for i := 0; i+2 <= len(s); i++ {
		m[s[i:i+2]]++
	}
	return m
}

// ContainsFold reports whether either non-empty string contains the other,
// case-insensitively. Empty strings never match.
func ContainsFold(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}
