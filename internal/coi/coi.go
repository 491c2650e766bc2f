// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package coi detects conflicts of interest between a candidate and a set
// of other researchers by probing the bibliographic corpus for joint
// publications. Queries run in concurrent batches sized to the backend's
// rate limit, pausing between batches.
//
// See docs/ARCHITECTURE § Conflict of Interest.
package coi

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/linkage-engine/internal/names"
	"github.com/pdiddy/linkage-engine/internal/pubsearch"
	"github.com/pdiddy/linkage-engine/pkg/types"
)

// Checker probes for co-authorship between a candidate and other people.
type Checker struct {
	search pubsearch.PublicationSearch
	cfg    types.COIConfig

	// log receives warnings about failed joint-author searches.
	log io.Writer
}

// New builds a Checker. The search collaborator must not be nil.
// hasAPIKey sizes the default batch and pause: keyed NCBI access permits
// 10 req/s versus 3 without.
func New(search pubsearch.PublicationSearch, cfg types.COIConfig, hasAPIKey bool, log io.Writer) *Checker {
	if search == nil {
		panic("coi: nil PublicationSearch")
	}
	if log == nil {
		log = io.Discard
	}
	return &Checker{search: search, cfg: cfg.WithDefaults(hasAPIKey), log: log}
}

// maxSampleTitles caps the joint-publication titles carried per conflict.
const maxSampleTitles = 3

// Check reports whether the candidate has co-authored with any of the
// other names. Individual search failures are logged and treated as "no
// joint publications"; only context cancellation aborts the run.
func (c *Checker) Check(ctx context.Context, candidateName string, otherNames []string) (types.COIReport, error) {
	candidate := compactForm(candidateName)
	if candidate == "" {
		return types.COIReport{}, nil
	}

	// Drop others that collapse to nothing or to the candidate itself.
	var others []string
	for _, raw := range otherNames {
		other := compactForm(raw)
		if other == "" || other == candidate {
			continue
		}
		others = append(others, raw)
	}

	report := types.COIReport{}
	batch := c.cfg.BatchSize

	for start := 0; start < len(others); start += batch {
		if start > 0 {
			if err := c.pauseBetweenBatches(ctx); err != nil {
				return types.COIReport{}, err
			}
		}

		end := start + batch
		if end > len(others) {
			end = len(others)
		}

		details := c.checkBatch(ctx, candidate, others[start:end])
		if ctx.Err() != nil {
			return types.COIReport{}, ctx.Err()
		}
		report.Details = append(report.Details, details...)
	}

	sort.Slice(report.Details, func(i, j int) bool {
		return report.Details[i].Name < report.Details[j].Name
	})
	report.HasCOI = len(report.Details) > 0
	return report, nil
}

// checkBatch queries each name in the batch concurrently and returns the
// conflicts found.
func (c *Checker) checkBatch(ctx context.Context, candidate string, batch []string) []types.COIDetail {
	results := make([]*types.COIDetail, len(batch))
	var wg sync.WaitGroup

	for i, raw := range batch {
		wg.Add(1)
		go func(i int, raw string) {
			defer wg.Done()

			other := compactForm(raw)
			query := fmt.Sprintf("%s[Author] AND %s[Author]", candidate, other)
			pubs, err := c.search.Search(ctx, query, 0)
			if err != nil {
				if ctx.Err() == nil {
					fmt.Fprintf(c.log, "warning: joint-author search failed for %q: %v\n", query, err)
				}
				return
			}
			if len(pubs) == 0 {
				return
			}

			detail := &types.COIDetail{
				Name:              raw,
				JointPublications: len(pubs),
			}
			for _, p := range pubs {
				if len(detail.SampleTitles) == maxSampleTitles {
					break
				}
				if strings.TrimSpace(p.Title) != "" {
					detail.SampleTitles = append(detail.SampleTitles, p.Title)
				}
			}
			results[i] = detail
		}(i, raw)
	}
	wg.Wait()

	var details []types.COIDetail
	for _, d := range results {
		if d != nil {
			details = append(details, *d)
		}
	}
	return details
}

func (c *Checker) pauseBetweenBatches(ctx context.Context) error {
	if c.cfg.BatchPause <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.cfg.BatchPause):
		return nil
	}
}

// compactForm reduces a name to the "last firstinitial" author-search
// form PubMed indexes best: "William R. Harcombe" → "harcombe w". A name
// without a first token keeps the surname alone.
func compactForm(raw string) string {
	parts := names.Normalize(raw)
	if parts.IsEmpty() {
		return ""
	}
	if parts.First == "" {
		return parts.Last
	}
	return parts.Last + " " + parts.First[:1]
}
