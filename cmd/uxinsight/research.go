package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/uxinsight/internal/engine"
	"github.com/pdiddy/uxinsight/internal/history"
	"github.com/pdiddy/uxinsight/internal/report"
	"github.com/pdiddy/uxinsight/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research [topic]",
	Short: "Research one UX topic and print recommendations",
	Long: `Research fetches curated sources for a topic, extracts focus-area
insights, and synthesizes findings into element recommendations. Results
are cached in memory and archived to the history database; repeating a
query inside the cache window reuses the archived result.`,
	RunE: runResearch,
}

func init() {
	researchCmd.Flags().String("topic", "", "research topic (may also be given as positional arguments)")
	researchCmd.Flags().String("focus", "ui_ux", "focus area: ui_ux, conversion, seo, performance, accessibility")
	researchCmd.Flags().String("niche", "", "niche context: outdoor_gear, fashion, tech, home_improvement, music, general")
	researchCmd.Flags().Int("max-sources", 0, "maximum sources to fetch (0 = default 5, capped at 20)")
	researchCmd.Flags().Int("recency-days", 0, "preferred content age window in days (0 = default 365)")
	researchCmd.Flags().String("format", "table", "output format: table, json, yaml, or markdown")
	researchCmd.Flags().String("out", "", "write the report to a file instead of stdout")
	researchCmd.Flags().Bool("no-cache", false, "skip cache and history lookups and fetch fresh sources")
	researchCmd.Flags().String("history", "", "research archive database (default: XDG data dir; empty disables)")

	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	if topic == "" && len(args) > 0 {
		topic = strings.Join(args, " ")
	}
	if topic == "" {
		return fmt.Errorf("provide a research topic: uxinsight research \"checkout button design\"")
	}

	focus, _ := cmd.Flags().GetString("focus")
	niche, _ := cmd.Flags().GetString("niche")
	maxSources, _ := cmd.Flags().GetInt("max-sources")
	recencyDays, _ := cmd.Flags().GetInt("recency-days")

	q := types.Query{
		Topic:       topic,
		Focus:       types.FocusArea(focus),
		Niche:       types.Niche(niche),
		MaxSources:  maxSources,
		RecencyDays: recencyDays,
	}

	cfg := engineConfig()
	cfg.History.Path = archivePath(cmd, "history")

	opts := []engine.Option{engine.WithLogger(logger)}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		opts = append(opts, engine.WithoutRecall())
	}
	if cfg.History.Path != "" {
		store, err := history.NewStore(cfg.History)
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer store.Close()
		opts = append(opts, engine.WithHistory(store))
	}

	eng := engine.New(cfg, opts...)
	result, err := eng.Research(context.Background(), q)
	if err != nil {
		return err
	}

	return writeReport(cmd, result)
}

func writeReport(cmd *cobra.Command, result *types.ResearchResult) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")

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
	case "table", "":
		report.WriteText(w, result)
	case "json":
		if err := report.WriteJSON(w, result); err != nil {
			return err
		}
	case "yaml":
		if err := report.WriteYAML(w, result); err != nil {
			return err
		}
	case "markdown":
		if err := report.WriteMarkdown(w, result); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use table, json, yaml, or markdown", format)
	}

	if outPath != "" {
		fmt.Printf("Wrote %s report to %s\n", format, outPath)
	}
	return nil
}
