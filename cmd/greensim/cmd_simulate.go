package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ecoffset/greensim/internal/montecarlo"
	"github.com/ecoffset/greensim/internal/stats"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a single scenario and print its statistics",
		Long: `Run one Monte Carlo scenario from the configuration and print its
summary statistics without writing any artifacts.

Examples:
  greensim simulate                 # Baseline scenario
  greensim simulate --seed 7        # Different seed
  greensim simulate --devices 0     # Offset ratio reported as n/a`,
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
			if cmd.Flags().Changed("devices") {
				devices, _ := cmd.Flags().GetInt("devices")
				cfg.Scenario.DeviceCount = devices
			}
			if cmd.Flags().Changed("plants") {
				plants, _ := cmd.Flags().GetInt("plants")
				cfg.Scenario.PlantCount = plants
			}

			res, err := montecarlo.Run(cfg.Scenario)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(res.View())
			}

			fmt.Printf("Scenario (%d trials, seed %d)\n\n", len(res.Samples), res.Params.RandomSeed)
			printSummary("Sequestration (tCO2/yr)", res.Sequestration)
			printSummary("Offset Ratio", res.OffsetRatio)
			printSummary("Synthetic Credit (tCO2e)", res.CreditYield)
			return nil
		},
	}

	cmd.Flags().Int("trials", 0, "Override the number of Monte Carlo trials")
	cmd.Flags().Int64("seed", 0, "Override the random seed")
	cmd.Flags().Int("devices", 0, "Override the device count")
	cmd.Flags().Int("plants", 0, "Override the plant count")

	return cmd
}

func printSummary(metric string, s stats.Summary) {
	fmt.Printf("%s\n", metric)
	fmt.Printf("  median: %s  mean: %s  stddev: %s\n", fmtStat(s.Median), fmtStat(s.Mean), fmtStat(s.StdDev))
	fmt.Printf("  min: %s  q25: %s  q75: %s  max: %s\n\n", fmtStat(s.Min), fmtStat(s.Q25), fmtStat(s.Q75), fmtStat(s.Max))
}
