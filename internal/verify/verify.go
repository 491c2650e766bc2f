// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify checks a claimed researcher identity against a
// bibliographic corpus: it drives multi-variant author searches, filters
// results to the right person, extracts a representative affiliation,
// scores expertise relevance, and flags institution or expertise
// mismatches versus the claim.
//
// The package performs no network I/O itself; all searches go through the
// pubsearch.PublicationSearch collaborator. Search failures are treated as
// empty result sets, so a flaky backend degrades to an unverified outcome
// with a readable reason instead of failing the pipeline.
//
// See docs/ARCHITECTURE § Verification.
package verify

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/linkage-engine/internal/institution"
	"github.com/pdiddy/linkage-engine/internal/names"
	"github.com/pdiddy/linkage-engine/internal/pubsearch"
	"github.com/pdiddy/linkage-engine/pkg/types"
)

// Claim is what the candidate asserts about themselves.
type Claim struct {
	Name        string
	Expertise   []string
	Institution string
}

// Verifier drives publication-based identity verification.
type Verifier struct {
	search pubsearch.PublicationSearch
	cfg    types.VerifyConfig

	// delay is the pause between consecutive search requests, honoring the
	// backend's rate limit. Zero in tests.
	delay time.Duration

	// log receives warnings about failed searches.
	log io.Writer

	// now is swappable in tests to pin the publication date window.
	now func() time.Time
}

// New builds a Verifier. The search collaborator must not be nil; passing
// nil is a programming error, not a runtime condition, and panics.
func New(search pubsearch.PublicationSearch, cfg types.VerifyConfig, delay time.Duration, log io.Writer) *Verifier {
	if search == nil {
		panic("verify: nil PublicationSearch")
	}
	if log == nil {
		log = io.Discard
	}
	return &Verifier{
		search: search,
		cfg:    cfg.WithDefaults(),
		delay:  delay,
		log:    log,
		now:    time.Now,
	}
}

// Verify runs the full verification flow for one claim. It returns an
// error only on context cancellation; every evidentiary shortfall is
// reported inside the VerificationResult instead.
func (v *Verifier) Verify(ctx context.Context, claim Claim) (types.VerificationResult, error) {
	parts := names.Normalize(claim.Name)
	if parts.IsEmpty() {
		return types.VerificationResult{Reason: "no publications found"}, nil
	}

	variants := v.searchVariants(parts)

	simplePool, disambPool, err := v.runSearches(ctx, variants, claim.Expertise)
	if err != nil {
		return types.VerificationResult{}, err
	}

	variantParts := make([]names.Parts, len(variants))
	for i, s := range variants {
		variantParts[i] = names.Normalize(s)
	}

	// Author filtering is load-bearing: upstream queries return
	// same-surname, different-person hits that must not count as evidence.
	simpleMatched := dedupPublications(filterToAuthor(simplePool, variantParts))
	disambMatched := dedupPublications(filterToAuthor(disambPool, variantParts))

	keywords := expertiseKeywords(claim.Expertise)
	final := chooseFinalSet(simpleMatched, disambMatched, keywords, v.cfg.MinPublications)

	result := types.VerificationResult{
		PublicationCount: len(final),
	}

	if len(final) < v.cfg.MinPublications {
		if len(final) == 0 {
			result.Reason = "no publications found"
		} else {
			result.Reason = fmt.Sprintf("only %d relevant publications (minimum: %d)",
				len(final), v.cfg.MinPublications)
		}
		result.Confidence = scoreExpertise(final, keywords, v.cfg.NeutralExpertiseConfidence)
		return result, nil
	}

	result.Verified = true
	result.Affiliation = extractAffiliation(final, variantParts)
	result.Confidence = scoreExpertise(final, keywords, v.cfg.NeutralExpertiseConfidence)
	result.InstitutionMismatch = !affiliationsAgree(result.Affiliation, claim.Institution)
	result.ExpertiseMismatch = expertiseMismatch(final, claim.Expertise)
	return result, nil
}

// searchVariants returns the name forms to search, capped by config: the
// cleaned name, then the initial form, then nickname expansions in sorted
// order. The initial form goes before the nicknames so the cap never cuts
// it, and sorting keeps the searched set identical run-to-run.
func (v *Verifier) searchVariants(parts names.Parts) []string {
	variants := []string{parts.Full}

	if parts.First != "" {
		rest := parts.Last
		if parts.Middle != "" {
			rest = parts.Middle + " " + parts.Last
		}
		if len(parts.First) > 1 {
			variants = append(variants, parts.First[:1]+" "+rest)
		}

		alts := make([]string, 0, 8)
		for alt := range names.VariantsOf(parts.First) {
			if alt != parts.First {
				alts = append(alts, alt)
			}
		}
		sort.Strings(alts)
		for _, alt := range alts {
			variants = append(variants, alt+" "+rest)
		}
	}

	if len(variants) > v.cfg.MaxNameVariants {
		variants = variants[:v.cfg.MaxNameVariants]
	}
	return variants
}

// runSearches issues the simple and disambiguated queries for every
// variant sequentially, pausing between requests, and pools the results
// per query type.
func (v *Verifier) runSearches(ctx context.Context, variants []string, expertise []string) (simple, disamb []types.Publication, err error) {
	yearTo := v.now().Year()
	yearFrom := yearTo - v.cfg.YearsBack
	dateFilter := fmt.Sprintf("%d:%d[pdat]", yearFrom, yearTo)

	expertiseFilter := buildExpertiseFilter(expertise)

	first := true
	for _, variant := range variants {
		queries := []struct {
			q    string
			pool *[]types.Publication
		}{
			{fmt.Sprintf("%s[Author] AND %s", variant, dateFilter), &simple},
		}
		if expertiseFilter != "" {
			queries = append(queries, struct {
				q    string
				pool *[]types.Publication
			}{fmt.Sprintf("%s[Author] AND %s AND %s", variant, dateFilter, expertiseFilter), &disamb})
		}

		for _, item := range queries {
			if !first {
				if err := v.pause(ctx); err != nil {
					return nil, nil, err
				}
			}
			first = false

			pubs, searchErr := v.search.Search(ctx, item.q, 0)
			if searchErr != nil {
				if ctx.Err() != nil {
					return nil, nil, ctx.Err()
				}
				fmt.Fprintf(v.log, "warning: search failed for %q: %v\n", item.q, searchErr)
				continue
			}
			*item.pool = append(*item.pool, pubs...)
		}
	}
	return simple, disamb, nil
}

func (v *Verifier) pause(ctx context.Context) error {
	if v.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(v.delay):
		return nil
	}
}

// buildExpertiseFilter OR-combines up to two 2-word expertise phrases into
// a title/abstract filter.
func buildExpertiseFilter(expertise []string) string {
	var phrases []string
	for _, e := range expertise {
		words := strings.Fields(strings.ToLower(e))
		if len(words) == 0 {
			continue
		}
		if len(words) > 2 {
			words = words[:2]
		}
		phrases = append(phrases, fmt.Sprintf("%s[tiab]", strings.Join(words, " ")))
		if len(phrases) == 2 {
			break
		}
	}
	switch len(phrases) {
	case 0:
		return ""
	case 1:
		return phrases[0]
	default:
		return "(" + phrases[0] + " OR " + phrases[1] + ")"
	}
}

// filterToAuthor keeps publications whose author list actually contains
// one of the name variants.
func filterToAuthor(pubs []types.Publication, variants []names.Parts) []types.Publication {
	var matched []types.Publication
	for _, p := range pubs {
		if publicationHasAuthor(p, variants) {
			matched = append(matched, p)
		}
	}
	return matched
}

func publicationHasAuthor(p types.Publication, variants []names.Parts) bool {
	for _, a := range p.Authors {
		author := names.Normalize(a.Name)
		for _, variant := range variants {
			if relaxedAuthorMatch(author, variant) {
				return true
			}
		}
	}
	return false
}

// relaxedAuthorMatch is the author-filter rule: last names equal, and the
// first names either equal, one a short (≤2 character) prefix of the
// other, or sharing an initial with exactly one extra token (a middle
// initial) on one side.
func relaxedAuthorMatch(a, b names.Parts) bool {
	if a.Last == "" || a.Last != b.Last {
		return false
	}
	if a.First == "" || b.First == "" {
		return false
	}
	if a.First == b.First {
		return true
	}
	if len(a.First) <= 2 && strings.HasPrefix(b.First, a.First) {
		return true
	}
	if len(b.First) <= 2 && strings.HasPrefix(a.First, b.First) {
		return true
	}
	if a.First[0] == b.First[0] {
		diff := len(a.Tokens()) - len(b.Tokens())
		if diff == 1 || diff == -1 {
			return true
		}
	}
	return false
}

// dedupPublications removes duplicates by PMID, then DOI, then normalized
// title, keeping the first occurrence.
func dedupPublications(pubs []types.Publication) []types.Publication {
	seen := make(map[string]bool)
	var out []types.Publication
	for _, p := range pubs {
		key := publicationKey(p)
		if key != "" && seen[key] {
			continue
		}
		if key != "" {
			seen[key] = true
		}
		out = append(out, p)
	}
	return out
}

func publicationKey(p types.Publication) string {
	if p.PMID != "" {
		return "pmid:" + p.PMID
	}
	if p.DOI != "" {
		return "doi:" + strings.ToLower(p.DOI)
	}
	title := strings.Join(strings.Fields(strings.ToLower(p.Title)), " ")
	if title != "" {
		return "title:" + title
	}
	return ""
}

// chooseFinalSet picks the evidence set: the disambiguated set when it
// clears the minimum, else the simple set filtered to expertise-keyword
// hits when that clears the minimum, else whichever raw set is larger.
func chooseFinalSet(simple, disamb []types.Publication, keywords map[string]bool, minPubs int) []types.Publication {
	if len(disamb) >= minPubs {
		return disamb
	}

	if len(keywords) > 0 {
		var filtered []types.Publication
		for _, p := range simple {
			text := strings.ToLower(p.Title + " " + p.Abstract)
			for kw := range keywords {
				if strings.Contains(text, kw) {
					filtered = append(filtered, p)
					break
				}
			}
		}
		if len(filtered) >= minPubs {
			return filtered
		}
	}

	if len(simple) >= len(disamb) {
		return simple
	}
	return disamb
}

// extractAffiliation returns the most frequent normalized affiliation
// across all matched-author appearances, ties broken by first-seen order.
// Frequency, not recency: a visiting affiliation on one recent paper must
// not override a long-standing primary affiliation.
func extractAffiliation(pubs []types.Publication, variants []names.Parts) string {
	counts := make(map[string]int)
	display := make(map[string]string)
	var order []string

	for _, p := range pubs {
		for _, a := range p.Authors {
			author := names.Normalize(a.Name)
			matched := false
			for _, variant := range variants {
				if relaxedAuthorMatch(author, variant) {
					matched = true
					break
				}
			}
			if !matched || a.Affiliation == "" {
				continue
			}
			key := institution.Normalize(a.Affiliation)
			if key == "" {
				continue
			}
			if counts[key] == 0 {
				order = append(order, key)
				display[key] = strings.TrimSpace(a.Affiliation)
			}
			counts[key]++
		}
	}

	best := ""
	bestCount := 0
	for _, key := range order {
		if counts[key] > bestCount {
			best = key
			bestCount = counts[key]
		}
	}
	return display[best]
}
