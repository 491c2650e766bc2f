// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package similarity

import "testing"

func TestDice(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		min  float64
		max  float64
	}{
		{"identical", "john smith", "john smith", 1.0, 1.0},
		{"disjoint", "abcd", "wxyz", 0.0, 0.0},
		{"close", "jonathan smith", "jonathon smith", 0.8, 0.99},
		{"empty both", "", "", 0.0, 0.0},
		{"empty one", "smith", "", 0.0, 0.0},
		{"single char", "a", "a", 1.0, 1.0},
		{"single vs word", "a", "ab", 0.0, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dice(tt.a, tt.b)
			if got < tt.min || got > tt.max {
				t.Errorf("Dice(%q, %q) = %f, want in [%f, %f]", tt.a, tt.b, got, tt.min, tt.max)
			}
			// Symmetry.
			if rev := Dice(tt.b, tt.a); rev != got {
				t.Errorf("Dice not symmetric: %f vs %f", got, rev)
			}
		})
	}
}

func TestContainsFold(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Massachusetts Institute of Technology", "institute of technology", true},
		{"MIT", "massachusetts", false},
		{"harvard", "Harvard University", true},
		{"", "x", false},
	}
	for _, tt := range tests {
		if got := ContainsFold(tt.a, tt.b); got != tt.want {
			t.Errorf("ContainsFold(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
