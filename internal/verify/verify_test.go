// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/linkage-engine/internal/names"
	"github.com/pdiddy/linkage-engine/internal/pubsearch"
	"github.com/pdiddy/linkage-engine/pkg/types"
)

func mustParts(t *testing.T, name string) names.Parts {
	t.Helper()
	p := names.Normalize(name)
	require.False(t, p.IsEmpty(), "name %q normalized to nothing", name)
	return p
}

func mustPartsSlice(t *testing.T, raw []string) []names.Parts {
	t.Helper()
	out := make([]names.Parts, len(raw))
	for i, s := range raw {
		out[i] = mustParts(t, s)
	}
	return out
}

func harcombePub(pmid, title string) types.Publication {
	return types.Publication{
		PMID:  pmid,
		Title: title,
		Year:  2023,
		Authors: []types.Author{
			{
				Name:        "William Harcombe",
				Affiliation: "University of Minnesota, St. Paul, MN, USA",
			},
			{Name: "J Doe"},
		},
		Abstract: "Metabolic cross-feeding between microbial species.",
	}
}

// fixedSearcher returns the same publications for every query and records
// the queries it saw.
type fixedSearcher struct {
	pubs    []types.Publication
	queries []string
}

func (f *fixedSearcher) Search(ctx context.Context, query string, maxResults int) ([]types.Publication, error) {
	f.queries = append(f.queries, query)
	return f.pubs, nil
}

func newTestVerifier(search pubsearch.PublicationSearch) *Verifier {
	v := New(search, types.VerifyConfig{}, 0, nil)
	v.now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }
	return v
}

func TestVerifyEnoughPublications(t *testing.T) {
	searcher := &fixedSearcher{pubs: []types.Publication{
		harcombePub("1", "Cross-feeding in synthetic communities"),
		harcombePub("2", "Spatial structure in microbial mutualism"),
		harcombePub("3", "Metabolic division of labor"),
	}}

	v := newTestVerifier(searcher)
	res, err := v.Verify(context.Background(), Claim{
		Name:        "William Harcombe",
		Expertise:   []string{"microbial ecology"},
		Institution: "University of Minnesota",
	})
	require.NoError(t, err)

	assert.True(t, res.Verified)
	assert.Equal(t, 3, res.PublicationCount)
	assert.Equal(t, "University of Minnesota, St. Paul, MN, USA", res.Affiliation)
	assert.False(t, res.InstitutionMismatch)
	assert.False(t, res.ExpertiseMismatch)
	assert.Greater(t, res.Confidence, 0.5)
	assert.Empty(t, res.Reason)
}

func TestVerifyTooFewPublications(t *testing.T) {
	searcher := &fixedSearcher{pubs: []types.Publication{
		harcombePub("1", "Cross-feeding in synthetic communities"),
		harcombePub("2", "Spatial structure in microbial mutualism"),
	}}

	v := newTestVerifier(searcher)
	res, err := v.Verify(context.Background(), Claim{Name: "William Harcombe"})
	require.NoError(t, err)

	assert.False(t, res.Verified)
	assert.Equal(t, 2, res.PublicationCount)
	assert.Equal(t, "only 2 relevant publications (minimum: 3)", res.Reason)
}

func TestVerifyNoPublications(t *testing.T) {
	v := newTestVerifier(&fixedSearcher{})
	res, err := v.Verify(context.Background(), Claim{Name: "Zelda Nobody"})
	require.NoError(t, err)

	assert.False(t, res.Verified)
	assert.Zero(t, res.PublicationCount)
	assert.Equal(t, "no publications found", res.Reason)
}

func TestVerifyEmptyName(t *testing.T) {
	v := newTestVerifier(&fixedSearcher{})
	res, err := v.Verify(context.Background(), Claim{Name: "   "})
	require.NoError(t, err)
	assert.False(t, res.Verified)
	assert.Equal(t, "no publications found", res.Reason)
}

func TestVerifyInstitutionMismatch(t *testing.T) {
	searcher := &fixedSearcher{pubs: []types.Publication{
		harcombePub("1", "Paper one"),
		harcombePub("2", "Paper two"),
		harcombePub("3", "Paper three"),
	}}

	v := newTestVerifier(searcher)
	res, err := v.Verify(context.Background(), Claim{
		Name:        "William Harcombe",
		Institution: "Stanford University",
	})
	require.NoError(t, err)

	assert.True(t, res.Verified)
	assert.True(t, res.InstitutionMismatch)
}

func TestVerifyExpertiseMismatch(t *testing.T) {
	searcher := &fixedSearcher{pubs: []types.Publication{
		harcombePub("1", "Paper one"),
		harcombePub("2", "Paper two"),
		harcombePub("3", "Paper three"),
	}}

	v := newTestVerifier(searcher)
	res, err := v.Verify(context.Background(), Claim{
		Name:      "William Harcombe",
		Expertise: []string{"quantum gravity"},
	})
	require.NoError(t, err)

	assert.True(t, res.Verified)
	assert.True(t, res.ExpertiseMismatch)
}

func TestVerifyFiltersOtherAuthors(t *testing.T) {
	// Same surname, different person: must not count as evidence.
	other := types.Publication{
		PMID:  "9",
		Title: "Unrelated paper",
		Authors: []types.Author{
			{Name: "Helen Harcombe", Affiliation: "University of Otago"},
		},
	}
	searcher := &fixedSearcher{pubs: []types.Publication{
		other, other, other,
	}}

	v := newTestVerifier(searcher)
	res, err := v.Verify(context.Background(), Claim{Name: "William Harcombe"})
	require.NoError(t, err)

	assert.False(t, res.Verified)
	assert.Equal(t, "no publications found", res.Reason)
}

func TestVerifyQueryShape(t *testing.T) {
	searcher := &fixedSearcher{}
	v := newTestVerifier(searcher)
	_, err := v.Verify(context.Background(), Claim{
		Name:      "Wei Zhang",
		Expertise: []string{"microbial ecology", "synthetic biology"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, searcher.queries)

	assert.Contains(t, searcher.queries[0], "wei zhang[Author]")
	assert.Contains(t, searcher.queries[0], "2021:2026[pdat]")

	foundDisamb := false
	for _, q := range searcher.queries {
		if strings.Contains(q, "[tiab]") {
			foundDisamb = true
			assert.Contains(t, q, "microbial ecology[tiab]")
			assert.Contains(t, q, "synthetic biology[tiab]")
			assert.Contains(t, q, " OR ")
		}
	}
	assert.True(t, foundDisamb, "expected a disambiguated query")
}

func TestVerifySearchErrorFailsOpen(t *testing.T) {
	var log strings.Builder
	v := New(pubsearch.Func(func(ctx context.Context, query string, maxResults int) ([]types.Publication, error) {
		return nil, assert.AnError
	}), types.VerifyConfig{}, 0, &log)

	res, err := v.Verify(context.Background(), Claim{Name: "Wei Zhang"})
	require.NoError(t, err)
	assert.False(t, res.Verified)
	assert.Equal(t, "no publications found", res.Reason)
	assert.Contains(t, log.String(), "warning: search failed")
}

func TestVerifyContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v := New(pubsearch.Func(func(ctx context.Context, query string, maxResults int) ([]types.Publication, error) {
		return nil, ctx.Err()
	}), types.VerifyConfig{}, 0, nil)

	_, err := v.Verify(ctx, Claim{Name: "Wei Zhang"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearchVariants(t *testing.T) {
	v := newTestVerifier(&fixedSearcher{})

	// Cleaned name first, initial form second, sorted nicknames after; the
	// cap never cuts the initial form even for nickname-rich first names.
	variants := v.searchVariants(mustParts(t, "Robert Smith"))
	assert.Equal(t, []string{"robert smith", "r smith", "bert smith", "bob smith"}, variants)

	// No nicknames: just the cleaned name and the initial form.
	variants = v.searchVariants(mustParts(t, "Wei Zhang"))
	assert.Equal(t, []string{"wei zhang", "w zhang"}, variants)

	// Single-token names get no initial form.
	variants = v.searchVariants(mustParts(t, "Smith"))
	assert.Equal(t, []string{"smith"}, variants)
}

func TestSearchVariantsDeterministic(t *testing.T) {
	v := newTestVerifier(&fixedSearcher{})
	parts := mustParts(t, "Robert Smith")

	first := v.searchVariants(parts)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, v.searchVariants(parts))
	}
}

func TestRelaxedAuthorMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"william harcombe", "william harcombe", true},
		{"w harcombe", "william harcombe", true},
		{"william r harcombe", "william harcombe", true},
		{"helen harcombe", "william harcombe", false},
		{"william harcombe", "william smith", false},
		{"harcombe", "william harcombe", false},
	}
	for _, tt := range tests {
		got := relaxedAuthorMatch(mustParts(t, tt.a), mustParts(t, tt.b))
		assert.Equal(t, tt.want, got, "%q vs %q", tt.a, tt.b)
	}
}

func TestDedupPublications(t *testing.T) {
	pubs := []types.Publication{
		{PMID: "1", Title: "A"},
		{PMID: "1", Title: "A duplicate by PMID"},
		{DOI: "10.1/x", Title: "B"},
		{DOI: "10.1/X", Title: "B duplicate by DOI"},
		{Title: "Shared  Title"},
		{Title: "shared title"},
		{Title: "C"},
	}
	out := dedupPublications(pubs)
	require.Len(t, out, 4)
	assert.Equal(t, "A", out[0].Title)
	assert.Equal(t, "B", out[1].Title)
	assert.Equal(t, "C", out[3].Title)
}

func TestChooseFinalSetPrefersDisambiguated(t *testing.T) {
	simple := []types.Publication{{Title: "s1"}, {Title: "s2"}, {Title: "s3"}, {Title: "s4"}}
	disamb := []types.Publication{{Title: "d1"}, {Title: "d2"}, {Title: "d3"}}

	got := chooseFinalSet(simple, disamb, nil, 3)
	assert.Equal(t, disamb, got)

	// Disambiguated set below minimum: fall back to keyword-filtered simple.
	kw := map[string]bool{"phage": true}
	simple = []types.Publication{
		{Title: "Phage dynamics"},
		{Title: "phage resistance", Abstract: ""},
		{Abstract: "a phage study"},
		{Title: "unrelated"},
	}
	got = chooseFinalSet(simple, disamb[:1], kw, 3)
	require.Len(t, got, 3)

	// Nothing clears the minimum: larger raw set wins.
	got = chooseFinalSet(simple[:2], disamb[:1], nil, 3)
	assert.Len(t, got, 2)
}

func TestExtractAffiliationMostFrequent(t *testing.T) {
	variants := []string{"william harcombe"}
	parts := mustPartsSlice(t, variants)

	pub := func(aff string) types.Publication {
		return types.Publication{Authors: []types.Author{
			{Name: "William Harcombe", Affiliation: aff},
		}}
	}
	pubs := []types.Publication{
		pub("University of Minnesota, USA"),
		pub("University of Minnesota"),
		pub("Harvard University"),
	}

	got := extractAffiliation(pubs, parts)
	assert.Equal(t, "University of Minnesota, USA", got)
}
