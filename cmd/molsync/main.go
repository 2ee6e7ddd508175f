// Package main is the entry point for the molsync CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/helixml/molsync/internal/config"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "molsync",
		Short: "Structure viewer commands from sequence alignments",
		Long: `molsync colours molecular structures the way their aligned sequences are
coloured, writing command scripts for Chimera, ChimeraX or Jmol.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  MOLSYNC_LOG_LEVEL         Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  MOLSYNC_LOG_FORMAT        Log format: pretty, json (default: pretty)
  MOLSYNC_DIALECT           chimera, chimerax, jmol (default: chimera)
  MOLSYNC_MAX_CHUNK_LENGTH  Characters per command chunk, 0 for no limit (default: 32000)
  MOLSYNC_HIDDEN_COLOUR     Colour of hidden columns (default: #808080)
  MOLSYNC_DUPLICATE_POLICY  first, consecutive (default: first)
  MOLSYNC_HIDDEN_POLICY     override, computed (default: override)
  MOLSYNC_DB_URL            Command history database, sqlite:///path or postgres://...
  MOLSYNC_WORKER_COUNT      Session files processed concurrently (default: 1)
  MOLSYNC_WATCH_INTERVAL_SECONDS  Watch reload interval (default: 2)`,
		SilenceUsage: true,
	}

	cmd.AddCommand(colourCmd())
	cmd.AddCommand(attributesCmd())
	cmd.AddCommand(chainCmd())
	cmd.AddCommand(chargeCmd())
	cmd.AddCommand(watchCmd())
	cmd.AddCommand(forgetCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
