package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ecoffset/greensim/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage greensim configuration",
		Long: `View and modify greensim configuration settings.

Configuration is stored in ~/.greensim/config.yaml.

Examples:
  greensim config init                      # Write a default config file
  greensim config list                      # Show all settings
  greensim config get scenario.trials       # Get a specific setting
  greensim config set scenario.trials 5000  # Set a setting`,
	}

	cmd.AddCommand(
		newConfigInitCmd(),
		newConfigListCmd(),
		newConfigGetCmd(),
		newConfigSetCmd(),
	)

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
			}

			if err := config.Default().WriteFile(path); err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]string{
					"status": "created",
					"path":   path,
				})
			}
			fmt.Printf("Wrote default configuration to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(cfg)
			}

			fmt.Println("Configuration (~/.greensim/config.yaml):")
			fmt.Println()
			fmt.Println("Scenario Settings:")
			fmt.Printf("  scenario.trials:                     %d\n", cfg.Scenario.Trials)
			fmt.Printf("  scenario.area_m2:                    %.2f\n", cfg.Scenario.AreaM2)
			fmt.Printf("  scenario.device_count:               %d\n", cfg.Scenario.DeviceCount)
			fmt.Printf("  scenario.plant_count:                %d\n", cfg.Scenario.PlantCount)
			fmt.Printf("  scenario.leaf_area_index:            %.2f\n", cfg.Scenario.LeafAreaIndex)
			fmt.Printf("  scenario.light_interception:         %.2f\n", cfg.Scenario.LightInterception)
			fmt.Printf("  scenario.photosynthetic_rate_mean:   %.2f\n", cfg.Scenario.PhotosyntheticRateMean)
			fmt.Printf("  scenario.photosynthetic_rate_sigma:  %.2f\n", cfg.Scenario.PhotosyntheticRateSigma)
			fmt.Printf("  scenario.device_emission_mean_kg:    %.2f\n", cfg.Scenario.DeviceEmissionMeanKg)
			fmt.Printf("  scenario.device_emission_sigma_kg:   %.2f\n", cfg.Scenario.DeviceEmissionSigmaKg)
			fmt.Printf("  scenario.random_seed:                %d\n", cfg.Scenario.RandomSeed)
			fmt.Println()
			fmt.Println("Output Settings:")
			fmt.Printf("  output.dir:         %s\n", cfg.Output.Dir)
			fmt.Printf("  output.save_runs:   %v\n", cfg.Output.SaveRuns)
			fmt.Printf("  output.export_csv:  %v\n", cfg.Output.ExportCSV)
			fmt.Println()
			fmt.Println("Logging Settings:")
			fmt.Printf("  logging.level:  %s\n", cfg.Logging.Level)

			return nil
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			key := args[0]

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			value, found := getConfigValue(cfg, key)
			if !found {
				if jsonOut {
					json.NewEncoder(os.Stdout).Encode(map[string]any{
						"error": "key not found",
						"key":   key,
					})
				} else {
					fmt.Printf("Unknown configuration key: %s\n", key)
				}
				return nil
			}

			if jsonOut {
				json.NewEncoder(os.Stdout).Encode(map[string]any{
					"key":   key,
					"value": value,
				})
			} else {
				fmt.Printf("%s = %v\n", key, value)
			}

			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			key := args[0]
			value := args[1]

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if err := setConfigValue(cfg, key, value); err != nil {
				if jsonOut {
					json.NewEncoder(os.Stdout).Encode(map[string]any{
						"error": err.Error(),
						"key":   key,
					})
				} else {
					fmt.Printf("Error: %v\n", err)
				}
				return nil
			}

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			path, err := configPath()
			if err != nil {
				return err
			}
			if err := cfg.WriteFile(path); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			if jsonOut {
				json.NewEncoder(os.Stdout).Encode(map[string]any{
					"status": "updated",
					"key":    key,
					"value":  value,
				})
			} else {
				fmt.Printf("Set %s = %s\n", key, value)
			}

			return nil
		},
	}
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (any, bool) {
	switch key {
	case "scenario.trials":
		return cfg.Scenario.Trials, true
	case "scenario.area_m2":
		return cfg.Scenario.AreaM2, true
	case "scenario.device_count":
		return cfg.Scenario.DeviceCount, true
	case "scenario.plant_count":
		return cfg.Scenario.PlantCount, true
	case "scenario.leaf_area_index":
		return cfg.Scenario.LeafAreaIndex, true
	case "scenario.light_interception":
		return cfg.Scenario.LightInterception, true
	case "scenario.photosynthetic_rate_mean":
		return cfg.Scenario.PhotosyntheticRateMean, true
	case "scenario.photosynthetic_rate_sigma":
		return cfg.Scenario.PhotosyntheticRateSigma, true
	case "scenario.device_emission_mean_kg":
		return cfg.Scenario.DeviceEmissionMeanKg, true
	case "scenario.device_emission_sigma_kg":
		return cfg.Scenario.DeviceEmissionSigmaKg, true
	case "scenario.random_seed":
		return cfg.Scenario.RandomSeed, true
	case "output.dir":
		return cfg.Output.Dir, true
	case "output.save_runs":
		return cfg.Output.SaveRuns, true
	case "output.export_csv":
		return cfg.Output.ExportCSV, true
	case "logging.level":
		return cfg.Logging.Level, true
	default:
		return nil, false
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	parseInt := func() (int, error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer: %s", value)
		}
		return n, nil
	}
	parseFloat := func() (float64, error) {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number: %s", value)
		}
		return f, nil
	}

	switch key {
	case "scenario.trials":
		n, err := parseInt()
		if err != nil {
			return err
		}
		cfg.Scenario.Trials = n
	case "scenario.area_m2":
		f, err := parseFloat()
		if err != nil {
			return err
		}
		cfg.Scenario.AreaM2 = f
	case "scenario.device_count":
		n, err := parseInt()
		if err != nil {
			return err
		}
		cfg.Scenario.DeviceCount = n
	case "scenario.plant_count":
		n, err := parseInt()
		if err != nil {
			return err
		}
		cfg.Scenario.PlantCount = n
	case "scenario.leaf_area_index":
		f, err := parseFloat()
		if err != nil {
			return err
		}
		cfg.Scenario.LeafAreaIndex = f
	case "scenario.light_interception":
		f, err := parseFloat()
		if err != nil {
			return err
		}
		cfg.Scenario.LightInterception = f
	case "scenario.photosynthetic_rate_mean":
		f, err := parseFloat()
		if err != nil {
			return err
		}
		cfg.Scenario.PhotosyntheticRateMean = f
	case "scenario.photosynthetic_rate_sigma":
		f, err := parseFloat()
		if err != nil {
			return err
		}
		cfg.Scenario.PhotosyntheticRateSigma = f
	case "scenario.device_emission_mean_kg":
		f, err := parseFloat()
		if err != nil {
			return err
		}
		cfg.Scenario.DeviceEmissionMeanKg = f
	case "scenario.device_emission_sigma_kg":
		f, err := parseFloat()
		if err != nil {
			return err
		}
		cfg.Scenario.DeviceEmissionSigmaKg = f
	case "scenario.random_seed":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer: %s", value)
		}
		cfg.Scenario.RandomSeed = n
	case "output.dir":
		cfg.Output.Dir = value
	case "output.save_runs":
		cfg.Output.SaveRuns = value == "true" || value == "1"
	case "output.export_csv":
		cfg.Output.ExportCSV = value == "true" || value == "1"
	case "logging.level":
		cfg.Logging.Level = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

// configPath returns the path of the user config file.
func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".greensim", "config.yaml"), nil
}
