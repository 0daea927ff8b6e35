package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/uxinsight/internal/sources"
	"github.com/pdiddy/uxinsight/pkg/types"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Print the curated source catalog for a focus area",
	Long: `Sources prints the URLs a research run would draw from for the given
focus area and niche, in resolution order. Blocked domains are not
reflected here; the list is the static catalog.`,
	RunE: runSources,
}

func init() {
	sourcesCmd.Flags().String("focus", "ui_ux", "focus area: ui_ux, conversion, seo, performance, accessibility")
	sourcesCmd.Flags().String("niche", "", "niche context appended after the focus sources")
	sourcesCmd.Flags().Bool("json", false, "output the list as JSON")

	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, args []string) error {
	focusStr, _ := cmd.Flags().GetString("focus")
	focus, err := types.ParseFocusArea(focusStr)
	if err != nil {
		return err
	}
	nicheStr, _ := cmd.Flags().GetString("niche")
	niche, err := types.ParseNiche(nicheStr)
	if err != nil {
		return err
	}

	urls := sources.Default().Resolve(focus, niche)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(urls)
	}

	for i, u := range urls {
		fmt.Printf("%2d. %s\n", i+1, u)
	}
	fmt.Printf("\n%d sources\n", len(urls))
	return nil
}
