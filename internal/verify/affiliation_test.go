// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAffiliationsAgree(t *testing.T) {
	tests := []struct {
		name      string
		extracted string
		claimed   string
		want      bool
	}{
		{"identical", "University of Minnesota", "University of Minnesota", true},
		{"substring with noise", "Dept. of Ecology, University of Minnesota, St. Paul, MN", "University of Minnesota", true},
		{"alias group", "MIT", "Massachusetts Institute of Technology", true},
		{"harvard forms", "Harvard Medical School", "Harvard University", true},
		{"pattern overlap", "BioTechnology Institute and University of Minnesota", "College of Biological Sciences, University of Minnesota", true},
		{"shared distinguishing word", "Stanford Medicine", "Stanford University School of Medicine", true},
		{"different places", "Stanford University", "University of Minnesota", false},
		{"noise words only shared", "National University Hospital", "State Medical University", false},
		{"empty extracted", "", "Harvard University", true},
		{"empty claimed", "University of Oxford", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, affiliationsAgree(tt.extracted, tt.claimed))
		})
	}
}

func TestAffiliationsAgreeSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"MIT", "Massachusetts Institute of Technology"},
		{"Stanford University", "University of Minnesota"},
		{"Harvard Medical School", "Harvard University"},
	}
	for _, p := range pairs {
		assert.Equal(t,
			affiliationsAgree(p[0], p[1]),
			affiliationsAgree(p[1], p[0]),
			"%q vs %q", p[0], p[1])
	}
}

func TestAliasGroupIndex(t *testing.T) {
	mit := aliasGroupIndex("massachusetts institute of technology")
	assert.GreaterOrEqual(t, mit, 0)
	assert.Equal(t, mit, aliasGroupIndex("mit"))

	assert.Equal(t, -1, aliasGroupIndex("unknown regional college"))
}
