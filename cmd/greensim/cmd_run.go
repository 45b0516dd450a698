package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ecoffset/greensim/internal/logging"
	"github.com/ecoffset/greensim/internal/report"
	"github.com/ecoffset/greensim/internal/simulation"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the dual-scenario simulation and write the report",
		Long: `Run the full pipeline: scenario 1 from the configuration, scenario 2
derived by random perturbation, four histogram plots, and the PDF report.

Examples:
  greensim run                    # Artifacts in the current directory
  greensim run --out results/     # Artifacts in results/
  greensim run --trials 5000      # Override the trial count
  greensim run --save --csv       # Also archive the run and export CSVs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if trials, _ := cmd.Flags().GetInt("trials"); trials > 0 {
				cfg.Scenario.Trials = trials
			}
			if cmd.Flags().Changed("seed") {
				seed, _ := cmd.Flags().GetInt64("seed")
				cfg.Scenario.RandomSeed = seed
			}
			if save, _ := cmd.Flags().GetBool("save"); save {
				cfg.Output.SaveRuns = true
			}
			if csv, _ := cmd.Flags().GetBool("csv"); csv {
				cfg.Output.ExportCSV = true
			}

			log := newLogger(cfg)
			runLog := logging.NewRunLogger(cfg.Output.Dir, cfg.Logging.Level)
			defer runLog.Close()

			runner := simulation.NewRunner(cfg, log, runLog)
			a, err := runner.Run(context.Background())
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(a)
			}

			doc, err := report.Build(a.Result1, a.Result2, cfg.Report)
			if err != nil {
				return err
			}
			fmt.Print(report.RenderText(doc))
			fmt.Printf("Report: %s\n", a.ReportPath)
			for _, p := range a.PlotPaths {
				fmt.Printf("Plot:   %s\n", p)
			}
			for _, p := range a.CSVPaths {
				fmt.Printf("CSV:    %s\n", p)
			}
			if a.RunID > 0 {
				fmt.Printf("Archived as run %d\n", a.RunID)
			}
			return nil
		},
	}

	cmd.Flags().Int("trials", 0, "Override the number of Monte Carlo trials")
	cmd.Flags().Int64("seed", 0, "Override the random seed")
	cmd.Flags().Bool("save", false, "Archive the run into the sqlite run store")
	cmd.Flags().Bool("csv", false, "Export per-scenario raw samples as CSV")

	return cmd
}
