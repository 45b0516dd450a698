package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ecoffset/greensim/internal/montecarlo"
)

func newDeriveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Show the perturbed scenario-2 parameters",
		Long: `Derive scenario 2 from the configured scenario 1 and print both
parameter sets side by side. Each numeric field of scenario 1 is scaled by
an independent uniform factor in [0.8, 1.2], seeded from the base seed, so
the derivation is reproducible.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			base := cfg.Scenario
			derived, err := montecarlo.DeriveScenarioTwo(base)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]montecarlo.ScenarioParameters{
					"scenario1": base,
					"scenario2": derived,
				})
			}

			fmt.Printf("%-28s %14s %14s\n", "Parameter", "Scenario 1", "Scenario 2")
			fmt.Printf("%-28s %14d %14d\n", "trials", base.Trials, derived.Trials)
			fmt.Printf("%-28s %14.3f %14.3f\n", "area_m2", base.AreaM2, derived.AreaM2)
			fmt.Printf("%-28s %14d %14d\n", "device_count", base.DeviceCount, derived.DeviceCount)
			fmt.Printf("%-28s %14d %14d\n", "plant_count", base.PlantCount, derived.PlantCount)
			fmt.Printf("%-28s %14.3f %14.3f\n", "leaf_area_index", base.LeafAreaIndex, derived.LeafAreaIndex)
			fmt.Printf("%-28s %14.3f %14.3f\n", "light_interception", base.LightInterception, derived.LightInterception)
			fmt.Printf("%-28s %14.3f %14.3f\n", "photosynthetic_rate_mean", base.PhotosyntheticRateMean, derived.PhotosyntheticRateMean)
			fmt.Printf("%-28s %14.3f %14.3f\n", "photosynthetic_rate_sigma", base.PhotosyntheticRateSigma, derived.PhotosyntheticRateSigma)
			fmt.Printf("%-28s %14.3f %14.3f\n", "device_emission_mean_kg", base.DeviceEmissionMeanKg, derived.DeviceEmissionMeanKg)
			fmt.Printf("%-28s %14.3f %14.3f\n", "device_emission_sigma_kg", base.DeviceEmissionSigmaKg, derived.DeviceEmissionSigmaKg)
			fmt.Printf("%-28s %14d %14d\n", "random_seed", base.RandomSeed, derived.RandomSeed)
			return nil
		},
	}

	return cmd
}
