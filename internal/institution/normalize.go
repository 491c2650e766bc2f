// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package institution canonicalizes affiliation strings and decides
// institution equivalence under abbreviation, word-overlap, and conflict
// rules.
//
// See docs/ARCHITECTURE § Institution Matching.
package institution

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// Leading organizational-unit prefix up to the first comma:
	// "Department of Biology, MIT" → "MIT".
	deptCommaRe = regexp.MustCompile(`^(?:department|school|division|center|centre)\s+(?:of|for)\s+[^,]*,\s*`)

	// Same prefix without a comma, stopping at an institutional keyword so
	// the institution name itself is never eaten:
	// "school of medicine university of utah" → "university of utah".
	deptKeywordRe = regexp.MustCompile(`^(?:department|school|division|center|centre)\s+(?:of|for)\s+.*?\b((?:university|institute|college|academy)\b.*)$`)

	countrySuffixRe = regexp.MustCompile(`[,\s]+(?:usa|united states|u\.s\.a\.?)\.?\s*$`)
)

// Normalize canonicalizes an affiliation string: lowercase, organizational
// prefix and country suffix stripped, punctuation removed, whitespace
// collapsed. Pure and total; empty input yields "".
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))

	s = deptCommaRe.ReplaceAllString(s, "")
	s = deptKeywordRe.ReplaceAllString(s, "$1")
	s = countrySuffixRe.ReplaceAllString(s, "")

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || r == ' ' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// abbreviations maps well-known institution abbreviations to their
// expansions. Applied via word-boundary substitution so "UC Riverside"
// expands without touching "Duke".
var abbreviations = map[string]string{
	"uc":      "university of california",
	"ucla":    "university of california los angeles",
	"ucsd":    "university of california san diego",
	"ucsf":    "university of california san francisco",
	"ucb":     "university of california berkeley",
	"uci":     "university of california irvine",
	"ucd":     "university of california davis",
	"mit":     "massachusetts institute of technology",
	"caltech": "california institute of technology",
	"nyu":     "new york university",
	"usc":     "university of southern california",
	"ucl":     "university college london",
	"jhu":     "johns hopkins university",
	"cmu":     "carnegie mellon university",
	"gatech":  "georgia institute of technology",
	"upenn":   "university of pennsylvania",
	"penn":    "university of pennsylvania",
	"msu":     "michigan state university",
	"osu":     "ohio state university",
	"psu":     "pennsylvania state university",
	"asu":     "arizona state university",
	"fsu":     "florida state university",
	"lsu":     "louisiana state university",
	"tamu":    "texas a m university",
	"unc":     "university of north carolina",
	"uva":     "university of virginia",
	"umich":   "university of michigan",
	"uw":      "university of washington",
	"uiuc":    "university of illinois urbana champaign",
	"bu":      "boston university",
	"gwu":     "george washington university",
	"vcu":     "virginia commonwealth university",
	"suny":    "state university of new york",
	"cuny":    "city university of new york",
	"utsw":    "university of texas southwestern",
	"nih":     "national institutes of health",
	"cdc":     "centers for disease control and prevention",
	"hhmi":    "howard hughes medical institute",
	"mgh":     "massachusetts general hospital",
	"eth":     "swiss federal institute of technology",
	"kcl":     "kings college london",
	"lse":     "london school of economics",
}

// abbreviationRules holds the compiled word-boundary substitutions, built
// once at startup.
var abbreviationRules = buildAbbreviationRules()

type abbreviationRule struct {
	re        *regexp.Regexp
	expansion string
}

func buildAbbreviationRules() []abbreviationRule {
	rules := make([]abbreviationRule, 0, len(abbreviations))
	for abbr, full := range abbreviations {
		rules = append(rules, abbreviationRule{
			re:        regexp.MustCompile(`(?i)\b` + abbr + `\b`),
			expansion: full,
		})
	}
	return rules
}

// ExpandAbbreviations replaces known institution abbreviations with their
// full names. The result still needs Normalize before comparison.
func ExpandAbbreviations(raw string) string {
	s := raw
	for _, rule := range abbreviationRules {
		s = rule.re.ReplaceAllString(s, rule.expansion)
	}
	return s
}
