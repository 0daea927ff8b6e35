package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/uxinsight/internal/engine"
	"github.com/pdiddy/uxinsight/pkg/types"
)

var topicsCmd = &cobra.Command{
	Use:   "topics [topic...]",
	Short: "Collect findings for several topics in one batch",
	Long: `Topics researches each topic with a reduced source budget and prints
the findings grouped per topic. A topic with no reachable sources yields
an empty group instead of failing the batch.`,
	RunE: runTopics,
}

func init() {
	topicsCmd.Flags().String("focus", "ui_ux", "focus area applied to every topic")
	topicsCmd.Flags().String("niche", "", "niche context applied to every topic")
	topicsCmd.Flags().Bool("json", false, "output findings as JSON")

	rootCmd.AddCommand(topicsCmd)
}

func runTopics(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more topics")
	}

	focus, _ := cmd.Flags().GetString("focus")
	niche, _ := cmd.Flags().GetString("niche")

	eng := engine.New(engineConfig(), engine.WithLogger(logger))
	findings, err := eng.TopicFindings(context.Background(), args, types.FocusArea(focus), types.Niche(niche))
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(findings)
	}

	for _, topic := range args {
		fmt.Printf("%s:\n", topic)
		if len(findings[topic]) == 0 {
			fmt.Println("  (no findings)")
			continue
		}
		for _, finding := range findings[topic] {
			fmt.Printf("  - %s\n", finding)
		}
	}
	return nil
}
