// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pdiddy/uxinsight/pkg/types"
)

// RunSummary describes one archived research run.
type RunSummary struct {
	ID         string    `json:"id" yaml:"id"`
	Topic      string    `json:"topic" yaml:"topic"`
	Focus      string    `json:"focus" yaml:"focus"`
	Niche      string    `json:"niche,omitempty" yaml:"niche,omitempty"`
	Confidence float64   `json:"confidence" yaml:"confidence"`
	Planned    int       `json:"planned_sources" yaml:"planned_sources"`
	Fetched    int       `json:"fetched_sources" yaml:"fetched_sources"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`

	// Finding carries the matched finding text for search results and is
	// empty otherwise.
	Finding string `json:"finding,omitempty" yaml:"finding,omitempty"`
}

// Lookup reconstructs the most recent archived result for fingerprint. A
// maxAge above zero restricts the search to runs recorded within that
// window. A miss, including one caused by unreadable rows, returns
// (nil, nil).
func (s *Store) Lookup(ctx context.Context, fingerprint string, maxAge time.Duration) (*types.ResearchResult, error) {
	query := `SELECT id, topic, confidence, created_at FROM runs WHERE fingerprint = ?`
	args := []any{fingerprint}
	if maxAge > 0 {
		query += ` AND created_at >= ?`
		args = append(args, time.Now().Add(-maxAge).UTC().Format(timeLayout))
	}
	query += ` ORDER BY created_at DESC LIMIT 1`

	var (
		runID     string
		result    types.ResearchResult
		createdAt string
	)
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&runID, &result.Topic, &result.Confidence, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up run: %w", err)
	}

	ts, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, nil
	}
	result.Timestamp = ts

	result.Findings, result.Sources, result.Recommendations, err = s.loadRunContent(ctx, runID)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// loadRunContent loads the ordered findings, sources, and recommendations
// belonging to one run.
func (s *Store) loadRunContent(ctx context.Context, runID string) ([]string, []string, []types.Recommendation, error) {
	findings, err := s.loadStrings(ctx,
		`SELECT content FROM findings WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading findings: %w", err)
	}

	sources, err := s.loadStrings(ctx,
		`SELECT url FROM sources WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading sources: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT element_type, principle, color_scheme, placement, example_text
		 FROM recommendations WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading recommendations: %w", err)
	}
	defer rows.Close()

	var recs []types.Recommendation
	for rows.Next() {
		var (
			rec     types.Recommendation
			element string
		)
		if err := rows.Scan(&element, &rec.Principle, &rec.ColorScheme,
			&rec.Placement, &rec.ExampleText); err != nil {
			return nil, nil, nil, fmt.Errorf("scanning recommendation: %w", err)
		}
		rec.ElementType = types.ElementType(element)
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("reading recommendations: %w", err)
	}

	return findings, sources, recs, nil
}

func (s *Store) loadStrings(ctx context.Context, query, runID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// Search runs an FTS5 query over archived findings and returns the owning
// runs ranked by relevance, each carrying the matched finding text. A limit
// at or below zero uses the store default.
func (s *Store) Search(ctx context.Context, term string, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.topic, r.focus, r.niche, r.confidence,
			r.planned_sources, r.fetched_sources, r.created_at, f.content
		 FROM findings_fts
		 JOIN findings f ON f.rowid = findings_fts.rowid
		 JOIN runs r ON r.id = f.run_id
		 WHERE findings_fts MATCH ?
		 ORDER BY findings_fts.rank
		 LIMIT ?`, term, limit)
	if err != nil {
		return nil, fmt.Errorf("searching findings: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows, true)
}

// Recent returns the latest archived runs, newest first. A limit at or
// below zero uses the store default.
func (s *Store) Recent(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topic, focus, niche, confidence,
			planned_sources, fetched_sources, created_at
		 FROM runs
		 ORDER BY created_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows, false)
}

// scanSummaries reads run summary rows. Rows with unreadable timestamps are
// dropped rather than failing the whole listing.
func scanSummaries(rows *sql.Rows, withFinding bool) ([]RunSummary, error) {
	var summaries []RunSummary
	for rows.Next() {
		var (
			rs        RunSummary
			niche     sql.NullString
			createdAt string
		)
		dest := []any{&rs.ID, &rs.Topic, &rs.Focus, &niche, &rs.Confidence,
			&rs.Planned, &rs.Fetched, &createdAt}
		if withFinding {
			dest = append(dest, &rs.Finding)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if niche.Valid {
			rs.Niche = niche.String
		}
		ts, err := time.Parse(timeLayout, createdAt)
		if err != nil {
			continue
		}
		rs.CreatedAt = ts
		summaries = append(summaries, rs)
	}
	return summaries, rows.Err()
}
