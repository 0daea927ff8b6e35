// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/uxinsight/pkg/types"
)

// ExportRun holds one archived run with its full content for export.
type ExportRun struct {
	RunSummary      `yaml:",inline"`
	Findings        []string               `json:"findings" yaml:"findings"`
	Sources         []string               `json:"sources" yaml:"sources"`
	Recommendations []types.Recommendation `json:"recommendations" yaml:"recommendations"`
}

const exportLimit = 10000

// ExportYAML writes the archive to w as YAML, newest run first.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ExportJSON writes the archive to w as indented JSON, newest run first.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func (s *Store) exportEntries(ctx context.Context) ([]ExportRun, error) {
	summaries, err := s.Recent(ctx, exportLimit)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportRun, 0, len(summaries))
	for _, rs := range summaries {
		findings, sources, recs, err := s.loadRunContent(ctx, rs.ID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ExportRun{
			RunSummary:      rs,
			Findings:        findings,
			Sources:         sources,
			Recommendations: recs,
		})
	}
	return entries, nil
}
