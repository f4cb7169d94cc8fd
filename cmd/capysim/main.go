// SPDX-License-Identifier: MIT

// Command capysim scores and simulates two populations over a graph.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/katalvlaran/capy/internal/config"
	"github.com/katalvlaran/capy/internal/logging"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "capysim",
		Short: "CAPY mixing scores and Metropolis-Hastings simulation",
		Long: `capysim measures how two populations laid out over a graph mix,
using the CAPY half-edge and edge scores, and runs a Metropolis-Hastings
process that moves members between nodes toward a target score.

A run is described by a YAML file (see --config); CAPY_* environment
variables and command flags override it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Run file (YAML)")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug, trace")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newScoreCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "capysim version %s\n", version)
			return err
		},
	}
}

// loadConfig resolves the run file, environment and global flags, then validates.
func loadConfig(cmd *cobra.Command) (*config.RunConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		cfg.Output.Format = config.FormatJSON
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}

	return cfg, nil
}

// newLogger writes operational logs to the command's stderr.
func newLogger(cmd *cobra.Command, cfg *config.RunConfig) *slog.Logger {
	return logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
}
