// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package names canonicalizes personal names into comparable parts and
// expands first names into their known nickname variants.
//
// See docs/ARCHITECTURE § Name Normalization.
package names

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Parts holds the canonical components of a normalized name. Full is
// whitespace-normalized, diacritic-stripped, honorific-free, and lowercase.
// Last is non-empty whenever the input contained at least one token.
type Parts struct {
	First  string
	Middle string
	Last   string
	Full   string
}

var (
	// "Last, First Middle" rewritten to "First Middle Last".
	invertedRe = regexp.MustCompile(`^([^,]+),\s*(.+)$`)

	honorificRe = regexp.MustCompile(`\b(?:dr|prof|professor|mr|mrs|ms|sir|phd|md)\b`)

	// NFD decomposition followed by combining-mark removal strips diacritics
	// ("José" → "Jose") while leaving base letters intact.
	deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Normalize canonicalizes a raw name string. It is pure, total, and
// idempotent: empty or garbage input yields all-empty Parts, never an error.
//
// A single-token name is treated as a bare surname, not a first name, so it
// never satisfies first-name-based matching tiers.
func Normalize(raw string) Parts {
	s := strings.ToLower(raw)

	if out, _, err := transform.String(deaccent, s); err == nil {
		s = out
	}

	if m := invertedRe.FindStringSubmatch(s); m != nil {
		s = m[2] + " " + m[1]
	}

	s = honorificRe.ReplaceAllString(s, " ")
	s = stripNonLetters(s)

	tokens := strings.Fields(s)

	var p Parts
	switch len(tokens) {
	case 0:
		return p
	case 1:
		p.Last = tokens[0]
	case 2:
		p.First = tokens[0]
		p.Last = tokens[1]
	default:
		p.First = tokens[0]
		p.Middle = strings.Join(tokens[1:len(tokens)-1], " ")
		p.Last = tokens[len(tokens)-1]
	}
	p.Full = strings.Join(tokens, " ")
	return p
}

// stripNonLetters removes everything except letters and spaces.
func stripNonLetters(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || r == ' ' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// Tokens returns the whitespace-separated tokens of the normalized form.
func (p Parts) Tokens() []string {
	return strings.Fields(p.Full)
}

// IsEmpty reports whether the name normalized to nothing.
func (p Parts) IsEmpty() bool {
	return p.Full == ""
}
