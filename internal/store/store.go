// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists merged researcher profiles and their
// verification outcomes in a SQLite database, keyed by normalized name so
// repeated pipeline runs update rather than duplicate.
//
// See docs/ARCHITECTURE § Persistence.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/linkage-engine/internal/names"
	"github.com/pdiddy/linkage-engine/pkg/types"
)

const dbFile = "linkage.db"

// Store manages the linkage SQLite database.
type Store struct {
	db      *sql.DB
	dataDir string
}

// New opens or creates the database at cfg.DataDir/linkage.db, creating
// the schema if needed.
func New(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dataDir: cfg.DataDir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS researchers (
			normalized_name TEXT PRIMARY KEY,
			id TEXT,
			name TEXT NOT NULL,
			affiliation TEXT,
			email TEXT,
			website TEXT,
			h_index INTEGER,
			total_citations INTEGER,
			sources TEXT,
			publications TEXT,
			claude_suggested INTEGER NOT NULL DEFAULT 0,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS verifications (
			normalized_name TEXT PRIMARY KEY REFERENCES researchers(normalized_name),
			verified INTEGER NOT NULL,
			confidence REAL,
			affiliation TEXT,
			institution_mismatch INTEGER NOT NULL DEFAULT 0,
			expertise_mismatch INTEGER NOT NULL DEFAULT 0,
			publication_count INTEGER,
			reason TEXT,
			checked_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_researchers_name ON researchers(name)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveResearcher upserts a merged profile, keyed by its normalized name.
func (s *Store) SaveResearcher(ctx context.Context, r types.MergedResearcher) error {
	key := r.NormalizedName
	if key == "" {
		key = names.Normalize(r.Name).Full
	}
	if key == "" {
		return fmt.Errorf("researcher has no usable name")
	}

	sourcesJSON, err := json.Marshal(r.Sources)
	if err != nil {
		return fmt.Errorf("marshaling sources: %w", err)
	}
	pubsJSON, err := json.Marshal(r.Publications)
	if err != nil {
		return fmt.Errorf("marshaling publications: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO researchers
			(normalized_name, id, name, affiliation, email, website,
			 h_index, total_citations, sources, publications, claude_suggested, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(normalized_name) DO UPDATE SET
			id=excluded.id, name=excluded.name, affiliation=excluded.affiliation,
			email=excluded.email, website=excluded.website,
			h_index=excluded.h_index, total_citations=excluded.total_citations,
			sources=excluded.sources, publications=excluded.publications,
			claude_suggested=excluded.claude_suggested, updated_at=excluded.updated_at`,
		key, r.ID, r.Name, r.Affiliation, r.Email, r.Website,
		r.HIndex, r.TotalCitations, string(sourcesJSON), string(pubsJSON),
		boolToInt(r.ClaudeSuggested), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting researcher %q: %w", r.Name, err)
	}
	return nil
}

// SaveVerification upserts the verification outcome for a researcher. The
// researcher row must exist first.
func (s *Store) SaveVerification(ctx context.Context, normalizedName string, v types.VerificationResult) error {
	if normalizedName == "" {
		return fmt.Errorf("empty normalized name")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO verifications
			(normalized_name, verified, confidence, affiliation,
			 institution_mismatch, expertise_mismatch, publication_count, reason, checked_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(normalized_name) DO UPDATE SET
			verified=excluded.verified, confidence=excluded.confidence,
			affiliation=excluded.affiliation,
			institution_mismatch=excluded.institution_mismatch,
			expertise_mismatch=excluded.expertise_mismatch,
			publication_count=excluded.publication_count,
			reason=excluded.reason, checked_at=excluded.checked_at`,
		normalizedName, boolToInt(v.Verified), v.Confidence, v.Affiliation,
		boolToInt(v.InstitutionMismatch), boolToInt(v.ExpertiseMismatch),
		v.PublicationCount, v.Reason, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting verification for %q: %w", normalizedName, err)
	}
	return nil
}

// GetResearcher loads one profile by normalized name. Returns
// sql.ErrNoRows wrapped when no row exists.
func (s *Store) GetResearcher(ctx context.Context, normalizedName string) (types.MergedResearcher, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT normalized_name, id, name, affiliation, email, website,
			h_index, total_citations, sources, publications, claude_suggested
		 FROM researchers WHERE normalized_name = ?`, normalizedName)

	r, err := scanResearcher(row)
	if err != nil {
		return types.MergedResearcher{}, fmt.Errorf("loading researcher %q: %w", normalizedName, err)
	}
	return r, nil
}

// ListResearchers returns all stored profiles ordered by name.
func (s *Store) ListResearchers(ctx context.Context) ([]types.MergedResearcher, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT normalized_name, id, name, affiliation, email, website,
			h_index, total_citations, sources, publications, claude_suggested
		 FROM researchers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing researchers: %w", err)
	}
	defer rows.Close()

	var out []types.MergedResearcher
	for rows.Next() {
		r, err := scanResearcher(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning researcher row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetVerification loads the stored verification outcome for a researcher.
func (s *Store) GetVerification(ctx context.Context, normalizedName string) (types.VerificationResult, error) {
	var v types.VerificationResult
	var verified, instMismatch, expMismatch int
	var checkedAt string

	err := s.db.QueryRowContext(ctx,
		`SELECT verified, confidence, affiliation, institution_mismatch,
			expertise_mismatch, publication_count, reason, checked_at
		 FROM verifications WHERE normalized_name = ?`, normalizedName,
	).Scan(&verified, &v.Confidence, &v.Affiliation, &instMismatch,
		&expMismatch, &v.PublicationCount, &v.Reason, &checkedAt)
	if err != nil {
		return types.VerificationResult{}, fmt.Errorf("loading verification for %q: %w", normalizedName, err)
	}

	v.Verified = verified != 0
	v.InstitutionMismatch = instMismatch != 0
	v.ExpertiseMismatch = expMismatch != 0
	return v, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResearcher(row rowScanner) (types.MergedResearcher, error) {
	var r types.MergedResearcher
	var sourcesJSON, pubsJSON string
	var claudeSuggested int

	err := row.Scan(&r.NormalizedName, &r.ID, &r.Name, &r.Affiliation,
		&r.Email, &r.Website, &r.HIndex, &r.TotalCitations,
		&sourcesJSON, &pubsJSON, &claudeSuggested)
	if err != nil {
		return types.MergedResearcher{}, err
	}

	if err := json.Unmarshal([]byte(sourcesJSON), &r.Sources); err != nil {
		return types.MergedResearcher{}, fmt.Errorf("parsing sources: %w", err)
	}
	if err := json.Unmarshal([]byte(pubsJSON), &r.Publications); err != nil {
		return types.MergedResearcher{}, fmt.Errorf("parsing publications: %w", err)
	}
	r.ClaudeSuggested = claudeSuggested != 0
	return r, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
