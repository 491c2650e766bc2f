// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "linkage-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the publication search backend.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of publications per query (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// APIKey is an optional NCBI API key. With a key the rate limit is
	// 10 req/s; without it, 3 req/s.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// RequestDelay is the fixed pause between consecutive search requests.
	// When zero, a default derived from the rate limit is used.
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`
}

// VerifyConfig holds settings for publication-based verification.
type VerifyConfig struct {
	// MinPublications is the number of author-matching publications required
	// for a verified outcome (default 3).
	MinPublications int `json:"min_publications" yaml:"min_publications"`

	// YearsBack bounds the publication date window (default 5).
	YearsBack int `json:"years_back" yaml:"years_back"`

	// MaxNameVariants caps the number of name variants searched per
	// candidate (default 4), bounding external request count.
	MaxNameVariants int `json:"max_name_variants" yaml:"max_name_variants"`

	// NeutralExpertiseConfidence is the confidence assigned when the
	// candidate claims no expertise. A heuristic "benefit of the doubt"
	// value; tunable, default 0.5.
	NeutralExpertiseConfidence float64 `json:"neutral_expertise_confidence" yaml:"neutral_expertise_confidence"`
}

// WithDefaults returns a copy of c with zero-valued fields replaced by
// their defaults.
func (c VerifyConfig) WithDefaults() VerifyConfig {
	if c.MinPublications <= 0 {
		c.MinPublications = 3
	}
	if c.YearsBack <= 0 {
		c.YearsBack = 5
	}
	if c.MaxNameVariants <= 0 {
		c.MaxNameVariants = 4
	}
	if c.NeutralExpertiseConfidence <= 0 {
		c.NeutralExpertiseConfidence = 0.5
	}
	return c
}

// COIConfig holds settings for conflict-of-interest screening.
type COIConfig struct {
	// BatchSize is the number of names checked concurrently. When zero the
	// default is 5 with an API key and 2 without, matching the external
	// rate limit.
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// BatchPause is the pause between concurrent batches. When zero a pause
	// covering the batch's share of the rate budget is used.
	BatchPause time.Duration `json:"batch_pause" yaml:"batch_pause"`
}

// WithDefaults returns a copy of c with zero-valued fields replaced by
// defaults sized to the NCBI rate limit: batches of 5 with an API key
// (10 req/s) or 2 without (3 req/s), and a pause long enough for each
// batch's concurrent requests to fit inside the budget before the next
// batch fires.
func (c COIConfig) WithDefaults(hasAPIKey bool) COIConfig {
	perRequest := 334 * time.Millisecond
	if hasAPIKey {
		perRequest = 100 * time.Millisecond
	}
	if c.BatchSize <= 0 {
		if hasAPIKey {
			c.BatchSize = 5
		} else {
			c.BatchSize = 2
		}
	}
	if c.BatchPause <= 0 {
		c.BatchPause = time.Duration(c.BatchSize) * perRequest
	}
	return c
}

// StoreConfig holds settings for the researcher store.
type StoreConfig struct {
	// DataDir is the directory containing the SQLite database and exports.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// EngineConfig groups all component configurations.
type EngineConfig struct {
	Search SearchConfig `json:"search" yaml:"search"`
	Verify VerifyConfig `json:"verify" yaml:"verify"`
	COI    COIConfig    `json:"coi" yaml:"coi"`
	Store  StoreConfig  `json:"store" yaml:"store"`
}
