// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the uxinsight CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/uxinsight/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in PersistentPreRunE so every command honors --verbose.
var logger *slog.Logger

// rootCmd is the base command for the uxinsight CLI.
var rootCmd = &cobra.Command{
	Use:   "uxinsight",
	Short: "Research engine for ecommerce UX patterns",
	Long: `uxinsight researches UX topics across curated design publications. It
fetches sources politely (robots.txt, per-domain throttling), extracts
focus-area insights from page content, and synthesizes findings into
element recommendations with persuasion principles and color guidance.

Each operation is a subcommand: research runs one query, topics batches
findings across several topics, sources prints the curated catalog, and
history queries the local archive of past runs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./uxinsight.yaml or ~/.config/uxinsight/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "log fetch decisions and cache activity")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("uxinsight")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "uxinsight"))
		}
	}

	viper.SetEnvPrefix("UXINSIGHT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// engineConfig builds the engine configuration from defaults overlaid with
// values from the config file or environment. The history path is resolved
// separately by archivePath because it depends on a per-command flag.
func engineConfig() types.ResearchConfig {
	cfg := types.DefaultResearchConfig()
	if viper.IsSet("throttle.requests_per_second") {
		cfg.Throttle.RequestsPerSecond = viper.GetFloat64("throttle.requests_per_second")
	}
	if viper.IsSet("policy.timeout") {
		cfg.Policy.Timeout = viper.GetDuration("policy.timeout")
	}
	if viper.IsSet("cache.ttl") {
		cfg.Cache.TTL = viper.GetDuration("cache.ttl")
	}
	if viper.IsSet("fetch.timeout") {
		cfg.Fetch.Timeout = viper.GetDuration("fetch.timeout")
	}
	if viper.IsSet("fetch.user_agent") {
		cfg.Fetch.UserAgent = viper.GetString("fetch.user_agent")
	}
	if viper.IsSet("fetch.max_concurrent") {
		cfg.Fetch.MaxConcurrent = viper.GetInt("fetch.max_concurrent")
	}
	if viper.IsSet("fetch.max_content_bytes") {
		cfg.Fetch.MaxContentBytes = viper.GetInt64("fetch.max_content_bytes")
	}
	if viper.IsSet("history.max_results") {
		cfg.History.MaxResults = viper.GetInt("history.max_results")
	}
	return cfg
}

// archivePath resolves the research archive location from the named flag,
// the config file, and the XDG data directory, in that order. An empty
// result disables the archive.
func archivePath(cmd *cobra.Command, flag string) string {
	if cmd.Flags().Changed(flag) {
		path, _ := cmd.Flags().GetString(flag)
		return path
	}
	if viper.IsSet("history.path") {
		return viper.GetString("history.path")
	}
	return filepath.Join(xdg.DataHome, "uxinsight", "history.db")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
