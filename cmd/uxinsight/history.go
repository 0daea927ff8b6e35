// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/uxinsight/internal/history"
	"github.com/pdiddy/uxinsight/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Query the archive of past research runs (recent, search, export)",
	Long: `History queries the local SQLite archive of research runs. Use
subcommands to list recent runs, search findings with full-text search,
or export the archive.`,
}

// --- recent subcommand ---

var historyRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List the most recent research runs",
	RunE:  runHistoryRecent,
}

func runHistoryRecent(cmd *cobra.Command, args []string) error {
	store, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Recent(context.Background(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRuns(runs, jsonOutput)
}

// --- search subcommand ---

var historySearchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Full-text search across archived findings",
	Long: `Search runs a full-text query over archived findings and lists the
runs that produced the matches, most relevant first.`,
	RunE: runHistorySearch,
}

func runHistorySearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a search term")
	}
	term := strings.Join(args, " ")

	store, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Search(context.Background(), term, limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRuns(runs, jsonOutput)
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the archive to YAML or JSON",
	Long: `Export writes every archived run, including findings, sources, and
recommendations, to YAML or JSON.`,
	RunE: runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")

	store, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	w := io.Writer(os.Stdout)
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "yaml", "":
		err = store.ExportYAML(context.Background(), w)
	case "json":
		err = store.ExportJSON(context.Background(), w)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	if outPath != "" {
		fmt.Printf("Exported to %s\n", outPath)
	}
	return nil
}

// --- shared helpers ---

func openArchive(cmd *cobra.Command) (*history.Store, error) {
	path := archivePath(cmd, "db")
	if path == "" {
		return nil, fmt.Errorf("history is disabled: provide --db or set history.path")
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")
	return history.NewStore(types.HistoryConfig{Path: path, MaxResults: maxResults})
}

func formatRuns(runs []history.RunSummary, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-30s  %-13s  %-16s  %-5s  %-7s  %s\n",
		"Rank", "Topic", "Focus", "Niche", "Conf", "Fetched", "Created")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for i, r := range runs {
		topic := r.Topic
		if len(topic) > 30 {
			topic = topic[:27] + "..."
		}
		niche := r.Niche
		if niche == "" {
			niche = "-"
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-30s  %-13s  %-16s  %-5.2f  %-7s  %s\n",
			i+1, topic, r.Focus, niche, r.Confidence,
			fmt.Sprintf("%d/%d", r.Fetched, r.Planned),
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
		if r.Finding != "" {
			finding := r.Finding
			if len(finding) > 100 {
				finding = finding[:97] + "..."
			}
			fmt.Fprintf(os.Stdout, "      %s\n", finding)
		}
	}

	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
	return nil
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	historyCmd.PersistentFlags().String("db", "", "archive database path (default: XDG data dir)")
	historyCmd.PersistentFlags().Int("max-results", 20, "default maximum query results")

	// Recent flags.
	historyRecentCmd.Flags().Int("limit", 0, "maximum runs to list (0 = use default)")
	historyRecentCmd.Flags().Bool("json", false, "output runs as JSON")

	// Search flags.
	historySearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	historySearchCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().String("out", "", "write the export to a file instead of stdout")

	// Wire subcommands.
	historyCmd.AddCommand(historyRecentCmd)
	historyCmd.AddCommand(historySearchCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
