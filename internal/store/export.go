// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/linkage-engine/pkg/types"
)

// ExportEntry pairs a stored profile with its verification outcome, when
// one exists.
type ExportEntry struct {
	Researcher   types.MergedResearcher    `json:"researcher" yaml:"researcher"`
	Verification *types.VerificationResult `json:"verification,omitempty" yaml:"verification,omitempty"`
}

// ExportYAML writes every stored profile to dataDir/export.yaml.
func (s *Store) ExportYAML(ctx context.Context) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(filepath.Join(s.dataDir, "export.yaml"), data, 0o644)
}

// ExportJSON writes every stored profile to dataDir/export.json.
func (s *Store) ExportJSON(ctx context.Context) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(filepath.Join(s.dataDir, "export.json"), data, 0o644)
}

func (s *Store) exportEntries(ctx context.Context) ([]ExportEntry, error) {
	researchers, err := s.ListResearchers(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, len(researchers))
	for i, r := range researchers {
		entries[i] = ExportEntry{Researcher: r}
		v, err := s.GetVerification(ctx, r.NormalizedName)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, err
		}
		entries[i].Verification = &v
	}
	return entries, nil
}
