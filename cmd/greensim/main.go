package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ecoffset/greensim/internal/config"
	"github.com/ecoffset/greensim/internal/logging"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "greensim",
		Short: "Monte Carlo simulation of indoor-plant carbon offset",
		Long: `greensim estimates how much of a workspace's digital-device carbon
emissions can be offset by indoor plants.

It runs a dual-scenario Monte Carlo simulation (scenario 2 is a random
perturbation of scenario 1) and renders comparison tables, histogram
plots, and a research-paper-style PDF report.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for programmatic consumption)")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default ~/.greensim/config.yaml)")
	rootCmd.PersistentFlags().String("out", "", "Output directory for artifacts")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug, trace")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newSimulateCmd(),
		newDeriveCmd(),
		newRunsCmd(),
		newExportCmd(),
		newConfigCmd(),
		newMCPServerCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(os.Stdout).Encode(map[string]string{"version": version})
			} else {
				fmt.Printf("greensim version %s\n", version)
			}
		},
	}
}

// loadConfig resolves the effective configuration for a command: config
// file (or defaults plus env), then flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		cfg.Output.Dir = out
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the operational stderr logger for cfg.
func newLogger(cfg *config.Config) *slog.Logger {
	return logging.NewLogger(cfg.Logging.Level, os.Stderr)
}
