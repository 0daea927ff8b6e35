// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders research results for terminals and files. The text
// renderer targets interactive use; JSON, YAML, and Markdown are for piping
// into other tools and for documentation.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/uxinsight/pkg/types"
)

// WriteText renders the result as a fixed-width terminal report.
func WriteText(w io.Writer, result *types.ResearchResult) {
	fmt.Fprintf(w, "Research: %s\n", result.Topic)
	fmt.Fprintf(w, "Generated: %s    Confidence: %.2f    Sources: %d\n",
		result.Timestamp.Format("2006-01-02 15:04 MST"), result.Confidence, len(result.Sources))
	fmt.Fprintln(w, strings.Repeat("-", 100))

	if len(result.Findings) == 0 {
		fmt.Fprintln(w, "No findings.")
		return
	}

	fmt.Fprintln(w, "Findings:")
	for i, finding := range result.Findings {
		fmt.Fprintf(w, "%4d. %s\n", i+1, finding)
	}

	if len(result.Recommendations) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%-8s  %-20s  %-36s  %s\n", "Element", "Principle", "Color Scheme", "Placement")
		fmt.Fprintln(w, strings.Repeat("-", 100))
		for _, rec := range result.Recommendations {
			fmt.Fprintf(w, "%-8s  %-20s  %-36s  %s\n",
				rec.ElementType, rec.Principle, rec.ColorScheme, rec.Placement)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Sources:")
	for _, src := range result.Sources {
		fmt.Fprintf(w, "  %s\n", src)
	}

	fmt.Fprintf(w, "\n%d findings from %d sources\n", len(result.Findings), len(result.Sources))
}

// WriteJSON renders the result as indented JSON.
func WriteJSON(w io.Writer, result *types.ResearchResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return nil
}

// WriteYAML renders the result as a YAML document.
func WriteYAML(w io.Writer, result *types.ResearchResult) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	return nil
}

// WriteMarkdown renders the result as a Markdown document with a summary
// table, a findings list, a recommendations table, and the source list.
func WriteMarkdown(w io.Writer, result *types.ResearchResult) error {
	md := markdown.NewMarkdown(w)

	md.H1("Research: " + result.Topic)
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Generated", result.Timestamp.Format("2006-01-02 15:04:05 MST")},
			{"Confidence", fmt.Sprintf("%.2f", result.Confidence)},
			{"Sources", strconv.Itoa(len(result.Sources))},
		},
	})
	md.PlainText("")

	md.H2("Findings")
	md.PlainText("")
	if len(result.Findings) == 0 {
		md.PlainText("No findings.")
	} else {
		md.BulletList(result.Findings...)
	}
	md.PlainText("")

	if len(result.Recommendations) > 0 {
		md.H2("Recommendations")
		md.PlainText("")
		rows := make([][]string, len(result.Recommendations))
		for i, rec := range result.Recommendations {
			rows[i] = []string{
				string(rec.ElementType),
				rec.Principle,
				rec.ColorScheme,
				rec.Placement,
				truncate(rec.ExampleText, 60),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Element", "Principle", "Color Scheme", "Placement", "Example"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	md.H2("Sources")
	md.PlainText("")
	md.BulletList(result.Sources...)

	return md.Build()
}

// truncate shortens s to max bytes with an ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
