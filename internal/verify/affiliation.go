// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"regexp"
	"strings"

	"github.com/pdiddy/linkage-engine/internal/institution"
	"github.com/pdiddy/linkage-engine/internal/similarity"
)

// institutionAliasGroups lists well-known institutions under every form
// they commonly appear in affiliations. Two affiliation strings that hit
// the same group are considered the same institution regardless of
// phrasing. Loaded once, read-only.
var institutionAliasGroups = [][]string{
	{"mit", "massachusetts institute of technology"},
	{"caltech", "california institute of technology"},
	{"ucla", "university of california los angeles"},
	{"ucsd", "university of california san diego"},
	{"ucsf", "university of california san francisco"},
	{"uc berkeley", "university of california berkeley", "berkeley"},
	{"harvard", "harvard university", "harvard medical school"},
	{"stanford", "stanford university", "stanford medicine"},
	{"yale", "yale university", "yale school of medicine"},
	{"princeton", "princeton university"},
	{"columbia", "columbia university"},
	{"cornell", "cornell university", "weill cornell"},
	{"johns hopkins", "johns hopkins university", "jhu"},
	{"duke", "duke university"},
	{"nyu", "new york university"},
	{"usc", "university of southern california"},
	{"carnegie mellon", "carnegie mellon university", "cmu"},
	{"georgia tech", "georgia institute of technology", "gatech"},
	{"upenn", "university of pennsylvania", "penn"},
	{"university of michigan", "umich", "michigan ann arbor"},
	{"university of washington", "uw seattle"},
	{"university of chicago", "uchicago"},
	{"university of wisconsin", "uw madison", "wisconsin madison"},
	{"university of minnesota", "umn"},
	{"university of texas", "ut austin"},
	{"university of north carolina", "unc chapel hill"},
	{"university of virginia", "uva"},
	{"ohio state", "ohio state university", "osu"},
	{"penn state", "pennsylvania state university", "psu"},
	{"michigan state", "michigan state university"},
	{"texas a m", "texas a m university", "tamu"},
	{"nih", "national institutes of health"},
	{"cdc", "centers for disease control and prevention"},
	{"hhmi", "howard hughes medical institute"},
	{"mass general", "massachusetts general hospital", "mgh"},
	{"mayo clinic", "mayo foundation"},
	{"cold spring harbor", "cshl", "cold spring harbor laboratory"},
	{"broad institute", "broad institute of mit and harvard"},
	{"scripps", "scripps research", "scripps institute"},
	{"salk", "salk institute"},
	{"oxford", "university of oxford"},
	{"cambridge", "university of cambridge"},
	{"ucl", "university college london"},
	{"imperial college", "imperial college london"},
	{"eth zurich", "swiss federal institute of technology"},
	{"max planck", "max planck institute"},
}

// institutionPatternRe extracts the core institutional phrase of an
// affiliation: "university of X", "X university", and the institute,
// college, and school-of-medicine analogues.
var institutionPatternRe = regexp.MustCompile(
	`(?:university|institute|college|school of medicine)\s+(?:of|for)\s+\w+(?:\s+\w+)?` +
		`|\w+(?:\s+\w+)?\s+(?:university|institute|college)`)

// affiliationsAgree decides whether an extracted affiliation and a claimed
// institution refer to the same place. Either side empty gives the
// candidate the benefit of the doubt: there is no evidence of mismatch.
func affiliationsAgree(extracted, claimed string) bool {
	if extracted == "" || claimed == "" {
		return true
	}

	normExtracted := institution.Normalize(institution.ExpandAbbreviations(extracted))
	normClaimed := institution.Normalize(institution.ExpandAbbreviations(claimed))
	if normExtracted == "" || normClaimed == "" {
		return true
	}

	if similarity.ContainsFold(normExtracted, normClaimed) {
		return true
	}

	if gi := aliasGroupIndex(normExtracted); gi >= 0 && gi == aliasGroupIndex(normClaimed) {
		return true
	}

	if patternsOverlap(normExtracted, normClaimed) {
		return true
	}

	return sharedLongWord(normExtracted, normClaimed)
}

// aliasGroupIndex returns the index of the first alias group the
// normalized string hits, or -1.
func aliasGroupIndex(normalized string) int {
	padded := " " + normalized + " "
	for i, group := range institutionAliasGroups {
		for _, alias := range group {
			if strings.Contains(padded, " "+alias+" ") {
				return i
			}
		}
	}
	return -1
}

// patternsOverlap reports whether the two sides contain matching
// institutional phrases ("university of minnesota" on both sides buried
// in different noise).
func patternsOverlap(a, b string) bool {
	for _, pa := range institutionPatternRe.FindAllString(a, -1) {
		for _, pb := range institutionPatternRe.FindAllString(b, -1) {
			if pa == pb {
				return true
			}
		}
	}
	return false
}

// institutionNoiseWords never count as a shared distinguishing word.
var institutionNoiseWords = map[string]bool{
	"university": true, "institute": true, "college": true, "school": true,
	"medicine": true, "medical": true, "center": true, "centre": true,
	"department": true, "hospital": true, "national": true, "state": true,
	"sciences": true, "science": true,
}

// sharedLongWord reports whether the sides share a significant word longer
// than four characters.
func sharedLongWord(a, b string) bool {
	wordsA := make(map[string]bool)
	for _, w := range strings.Fields(a) {
		if len(w) > 4 && !institutionNoiseWords[w] {
			wordsA[w] = true
		}
	}
	for _, w := range strings.Fields(b) {
		if len(w) > 4 && !institutionNoiseWords[w] && wordsA[w] {
			return true
		}
	}
	return false
}
