// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history archives research results in SQLite. Besides serving the
// CLI's recall and search commands, it acts as a durable second-level cache:
// a recorded run can be looked up by query fingerprint and rehydrated
// without refetching any source.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/uxinsight/pkg/types"
)

// timeLayout is RFC 3339 with fixed nine-digit fractional seconds so the
// stored strings sort chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages the research history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the history database at cfg.Path, creating the
// schema when missing.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("history database path is empty")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
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
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			fingerprint TEXT NOT NULL,
			topic TEXT NOT NULL,
			focus TEXT NOT NULL,
			niche TEXT,
			confidence REAL NOT NULL,
			planned_sources INTEGER NOT NULL,
			fetched_sources INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_fingerprint ON runs(fingerprint)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
		`CREATE TABLE IF NOT EXISTS findings (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			content TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_findings_run_id ON findings(run_id)`,
		`CREATE TABLE IF NOT EXISTS sources (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			url TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS recommendations (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			element_type TEXT NOT NULL,
			principle TEXT NOT NULL,
			color_scheme TEXT NOT NULL,
			placement TEXT NOT NULL,
			example_text TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='findings_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE findings_fts USING fts5(content, content=findings, content_rowid=rowid)`,
			`CREATE TRIGGER findings_ai AFTER INSERT ON findings BEGIN
				INSERT INTO findings_fts(rowid, content) VALUES (new.rowid, new.content);
			END`,
			`CREATE TRIGGER findings_ad AFTER DELETE ON findings BEGIN
				INSERT INTO findings_fts(findings_fts, rowid, content) VALUES('delete', old.rowid, old.content);
			END`,
			`CREATE TRIGGER findings_au AFTER UPDATE ON findings BEGIN
				INSERT INTO findings_fts(findings_fts, rowid, content) VALUES('delete', old.rowid, old.content);
				INSERT INTO findings_fts(rowid, content) VALUES (new.rowid, new.content);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Record archives one research run in a single transaction. The query
// supplies the plan (focus, niche, source budget); the result supplies what
// was actually found.
func (s *Store) Record(ctx context.Context, q types.Query, fingerprint string, result *types.ResearchResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	runID := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, fingerprint, topic, focus, niche, confidence,
			planned_sources, fetched_sources, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, fingerprint, result.Topic, string(q.Focus), string(q.Niche),
		result.Confidence, q.MaxSources, len(result.Sources),
		result.Timestamp.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	findingStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO findings (run_id, position, content) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing findings insert: %w", err)
	}
	defer findingStmt.Close()
	for i, f := range result.Findings {
		if _, err := findingStmt.ExecContext(ctx, runID, i, f); err != nil {
			return fmt.Errorf("inserting finding %d: %w", i, err)
		}
	}

	sourceStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sources (run_id, position, url) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing sources insert: %w", err)
	}
	defer sourceStmt.Close()
	for i, u := range result.Sources {
		if _, err := sourceStmt.ExecContext(ctx, runID, i, u); err != nil {
			return fmt.Errorf("inserting source %d: %w", i, err)
		}
	}

	recStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO recommendations (run_id, position, element_type, principle,
			color_scheme, placement, example_text)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing recommendations insert: %w", err)
	}
	defer recStmt.Close()
	for i, r := range result.Recommendations {
		_, err := recStmt.ExecContext(ctx, runID, i,
			string(r.ElementType), r.Principle, r.ColorScheme, r.Placement, r.ExampleText)
		if err != nil {
			return fmt.Errorf("inserting recommendation %d: %w", i, err)
		}
	}

	return tx.Commit()
}
