// Package handlers wires the CLI commands to the application services.
package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "creatorlens",
		Short: "creatorlens serves competitor video analyses for YouTube creators",
		Long: `creatorlens is the backend for competitor video analysis. It fetches
video metadata and comments from the YouTube Data API, composes strategic
analyses with an LLM, layers deterministic heuristics on top, and caches
the derived results in Postgres with content-hash aware freshness windows.

Commands:
  serve     Start the HTTP API server
  migrate   Manage the database schema
  snapshot  Capture view-count snapshots for tracked videos
  user      Manage user accounts and API tokens`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.creatorlens.yaml)")

	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewMigrateCmd())
	rootCmd.AddCommand(NewSnapshotCmd())
	rootCmd.AddCommand(NewUserCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
