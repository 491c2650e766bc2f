// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubsearch defines the publication search collaborator contract
// and its NCBI E-utilities implementation.
//
// The matching engine performs no network I/O of its own; verification and
// COI screening drive searches through the PublicationSearch interface.
// Implementations return an empty slice, not an error, for "no results".
// Transport failures may surface as errors; callers are expected to treat
// them as empty result sets so a flaky backend degrades to "insufficient
// evidence" instead of failing the pipeline.
//
// See docs/ARCHITECTURE § Publication Search.
package pubsearch

import (
	"context"

	"github.com/pdiddy/linkage-engine/pkg/types"
)

// PublicationSearch is the abstract search collaborator. Queries use
// PubMed field-tag syntax, e.g. `smith j[Author] AND 2021:2026[pdat]`.
type PublicationSearch interface {
	Search(ctx context.Context, query string, maxResults int) ([]types.Publication, error)
}

// Func adapts a plain function to the PublicationSearch interface,
// convenient for tests and inline stubs.
type Func func(ctx context.Context, query string, maxResults int) ([]types.Publication, error)

// Search implements PublicationSearch.
func (f Func) Search(ctx context.Context, query string, maxResults int) ([]types.Publication, error) {
	return f(ctx, query, maxResults)
}
