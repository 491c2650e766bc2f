// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"math"
	"strings"

	"github.com/pdiddy/linkage-engine/pkg/types"
)

// scientificSynonyms expands claimed-expertise keywords with common
// near-synonyms so "viral evolution" credits papers about phages. Loaded
// once, read-only.
var scientificSynonyms = map[string][]string{
	"viral":         {"virus", "phage", "bacteriophage", "virology"},
	"virus":         {"viral", "phage", "bacteriophage", "virology"},
	"bacteria":      {"bacterial", "microbe", "microbial", "prokaryote"},
	"bacterial":     {"bacteria", "microbe", "microbial"},
	"microbiome":    {"microbiota", "microbial", "metagenomics"},
	"gene":          {"genetic", "genomic", "genome"},
	"genetics":      {"genetic", "genomic", "genome", "heredity"},
	"genomics":      {"genomic", "genome", "sequencing"},
	"cancer":        {"tumor", "tumour", "oncology", "carcinoma", "malignancy"},
	"immunology":    {"immune", "immunity", "antibody", "lymphocyte"},
	"immune":        {"immunology", "immunity", "antibody"},
	"neuroscience":  {"neural", "neuron", "brain", "cognitive"},
	"evolution":     {"evolutionary", "phylogenetic", "phylogeny", "selection"},
	"evolutionary":  {"evolution", "phylogenetic", "phylogeny"},
	"ecology":       {"ecological", "ecosystem", "community"},
	"metabolism":    {"metabolic", "metabolomics", "metabolite"},
	"protein":       {"proteomic", "proteomics", "peptide"},
	"crispr":        {"cas", "editing", "nuclease"},
	"epidemiology":  {"epidemic", "outbreak", "surveillance", "incidence"},
	"biochemistry":  {"biochemical", "enzyme", "enzymatic"},
	"development":   {"developmental", "morphogenesis", "differentiation"},
	"computational": {"bioinformatics", "modeling", "simulation", "algorithm"},
	"stem":          {"pluripotent", "progenitor", "differentiation"},
	"aging":         {"senescence", "longevity", "lifespan"},
	"infection":     {"infectious", "pathogen", "pathogenesis"},
	"vaccine":       {"vaccination", "immunization", "antigen"},
}

// genericTerms are too common to distinguish one field from another; they
// are excluded when deciding expertise mismatch.
var genericTerms = map[string]bool{
	"biology": true, "research": true, "molecular": true, "protein": true,
	"science": true, "analysis": true, "study": true, "studies": true,
	"biological": true, "cell": true, "cellular": true, "human": true,
	"clinical": true, "medicine": true, "health": true, "disease": true,
	"systems": true, "data": true,
}

// expertiseKeywords builds the lowercase keyword set from claimed
// expertise phrases: words longer than three characters, expanded through
// the synonym table.
func expertiseKeywords(expertise []string) map[string]bool {
	keywords := make(map[string]bool)
	for _, phrase := range expertise {
		for _, w := range strings.Fields(strings.ToLower(phrase)) {
			w = strings.Trim(w, ".,;:()")
			if len(w) <= 3 {
				continue
			}
			keywords[w] = true
			for _, syn := range scientificSynonyms[w] {
				keywords[syn] = true
			}
		}
	}
	return keywords
}

// scoreExpertise computes the expertise-relevance confidence in [0, 1]:
// the fraction of publications mentioning any keyword, plus a small bonus
// for average hit density. No claimed expertise yields the configured
// neutral value; no publications yields 0.
func scoreExpertise(pubs []types.Publication, keywords map[string]bool, neutral float64) float64 {
	if len(keywords) == 0 {
		return neutral
	}
	if len(pubs) == 0 {
		return 0
	}

	pubsWithHit := 0
	totalHits := 0
	for _, p := range pubs {
		text := strings.ToLower(p.Title + " " + p.Abstract)
		hits := 0
		for kw := range keywords {
			if strings.Contains(text, kw) {
				hits++
			}
		}
		if hits > 0 {
			pubsWithHit++
		}
		totalHits += hits
	}

	frac := float64(pubsWithHit) / float64(len(pubs))
	avgHits := float64(totalHits) / float64(len(pubs))
	return math.Min(1, frac+math.Min(0.2, 0.05*avgHits))
}

// specificTerms extracts the distinguishing expertise words: longer than
// three characters and not in the generic blocklist.
func specificTerms(expertise []string) []string {
	var terms []string
	seen := make(map[string]bool)
	for _, phrase := range expertise {
		for _, w := range strings.Fields(strings.ToLower(phrase)) {
			w = strings.Trim(w, ".,;:()")
			if len(w) <= 3 || genericTerms[w] || seen[w] {
				continue
			}
			seen[w] = true
			terms = append(terms, w)
		}
	}
	return terms
}

// expertiseMismatch reports whether none of the specific claimed terms
// appear anywhere in the publications. All-generic claims never mismatch.
func expertiseMismatch(pubs []types.Publication, expertise []string) bool {
	terms := specificTerms(expertise)
	if len(terms) == 0 {
		return false
	}

	var b strings.Builder
	for _, p := range pubs {
		b.WriteString(strings.ToLower(p.Title))
		b.WriteByte(' ')
		b.WriteString(strings.ToLower(p.Abstract))
		b.WriteByte(' ')
	}
	corpus := b.String()

	for _, term := range terms {
		if strings.Contains(corpus, term) {
			return false
		}
	}
	return true
}
