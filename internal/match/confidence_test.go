// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"testing"

	"github.com/pdiddy/linkage-engine/pkg/types"
)

func TestMatchTiers(t *testing.T) {
	tests := []struct {
		name       string
		a, b       string
		confidence int
		matchType  types.MatchType
	}{
		{"exact", "John Smith", "John Smith", 100, types.MatchExact},
		{"exact after normalization", "Dr. John Smith", "john smith", 100, types.MatchExact},
		{"first and last with middle", "John A Smith", "John Smith", 95, types.MatchFirstLastExact},
		{"nickname variant", "Robert Smith", "Bob Smith", 90, types.MatchNameVariant},
		{"sibling nicknames", "Rob Smith", "Bobby Smith", 90, types.MatchNameVariant},
		{"first initial", "J Smith", "John Smith", 85, types.MatchLastFirstInitial},
		{"dotted initial", "J. Smith", "John Smith", 85, types.MatchLastFirstInitial},
		{"order swap", "Wei Zhang", "Zhang Wei", 85, types.MatchNameOrderSwap},
		{"high similarity same last", "Alexandros Konstantinopoulos", "Alexandro Konstantinopoulos", 80, types.MatchHighSimilarity},
		{"full similarity different last", "Maria Constantinopoulos", "Maria Constantinopoulou", 75, types.MatchFullSimilarity},
		{"partial first prefix", "Rich Smith", "Richard Smith", 60, types.MatchPartialFirst},
		{"bare surname", "Smith", "J Smith", 50, types.MatchLastNameOnly},
		{"different people", "John Smith", "Jane Doe", 0, types.MatchNone},
		{"conflicting firsts share surname", "Will Harcombe", "Helen Harcombe", 0, types.MatchNone},
		{"empty left", "", "John Smith", 0, types.MatchNone},
		{"both empty", "", "", 0, types.MatchNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.a, tt.b)
			if got.Confidence != tt.confidence || got.Type != tt.matchType {
				t.Errorf("Match(%q, %q) = {%d %s}, want {%d %s}",
					tt.a, tt.b, got.Confidence, got.Type, tt.confidence, tt.matchType)
			}
			if got.Matches != (tt.confidence > 0) {
				t.Errorf("Match(%q, %q).Matches = %v with confidence %d",
					tt.a, tt.b, got.Matches, got.Confidence)
			}
		})
	}
}

func TestMatchSymmetricOutcome(t *testing.T) {
	pairs := [][2]string{
		{"Robert Smith", "Bob Smith"},
		{"Wei Zhang", "Zhang Wei"},
		{"J Smith", "John Smith"},
		{"Rob Zhang", "Zhang Robert"},
		{"Will Harcombe", "Helen Harcombe"},
		{"Smith", "J Smith"},
	}
	for _, p := range pairs {
		fwd := Match(p[0], p[1])
		rev := Match(p[1], p[0])
		if fwd.Confidence != rev.Confidence {
			t.Errorf("asymmetric outcome for %q / %q: %d vs %d",
				p[0], p[1], fwd.Confidence, rev.Confidence)
		}
	}
}

func TestMatchOrderSwapVariant(t *testing.T) {
	got := Match("Rob Zhang", "Zhang Robert")
	if got.Type != types.MatchNameOrderSwapVariant || got.Confidence != 75 {
		t.Errorf("Match = {%d %s}, want {75 %s}",
			got.Confidence, got.Type, types.MatchNameOrderSwapVariant)
	}
}

func TestAdjustForInstitution(t *testing.T) {
	tests := []struct {
		name   string
		base   int
		a, b   string
		want   int
	}{
		{"equal normalized", 60, "Harvard University", "harvard university", 75},
		{"containment", 60, "Harvard", "Harvard University", 70},
		{"two shared significant words", 60, "Michigan Medicine Ann Arbor", "Michigan Ann Arbor Hospital", 70},
		{"no agreement", 60, "Harvard University", "Yale University", 60},
		{"empty right", 60, "Harvard University", "", 60},
		{"capped at 100", 95, "Harvard University", "Harvard University", 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AdjustForInstitution(tt.base, tt.a, tt.b); got != tt.want {
				t.Errorf("AdjustForInstitution(%d, %q, %q) = %d, want %d",
					tt.base, tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// Self-match adjustment never decreases confidence.
func TestAdjustForInstitutionMonotonic(t *testing.T) {
	institutions := []string{"MIT", "Harvard University", "Department of Biology, Stanford University"}
	for _, inst := range institutions {
		for _, base := range []int{0, 50, 95, 100} {
			if got := AdjustForInstitution(base, inst, inst); got < base {
				t.Errorf("AdjustForInstitution(%d, %q, %q) = %d, decreased", base, inst, inst, got)
			}
		}
	}
}
