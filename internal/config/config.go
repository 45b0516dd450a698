// Package config provides unified configuration loading for greensim.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ecoffset/greensim/internal/montecarlo"
	"github.com/ecoffset/greensim/internal/report"
)

// Config contains all greensim configuration settings.
type Config struct {
	// Scenario is the baseline (scenario 1) parameter set. Scenario 2 is
	// always derived from it at run time.
	Scenario montecarlo.ScenarioParameters `json:"scenario" yaml:"scenario"`

	// Report contains the narrative text blocks embedded in the document.
	Report report.Templates `json:"report" yaml:"report"`

	// Output contains artifact destination settings.
	Output OutputConfig `json:"output" yaml:"output"`

	// Logging contains settings for operational and run-trace logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// OutputConfig configures where and how artifacts are written.
type OutputConfig struct {
	// Dir is the directory all artifacts are written to.
	Dir string `json:"dir" yaml:"dir"`

	// SaveRuns enables archiving each run into the sqlite run store.
	SaveRuns bool `json:"save_runs" yaml:"save_runs"`

	// ExportCSV enables writing per-scenario raw-sample CSV files next to
	// the report.
	ExportCSV bool `json:"export_csv" yaml:"export_csv"`
}

// LoggingConfig configures greensim's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables run-trace logging to <out>/runs.jsonl.
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with sensible defaults: the baseline parameter
// set, the original paper narrative, and artifacts in the working directory.
func Default() *Config {
	return &Config{
		Scenario: montecarlo.DefaultParameters(),
		Report:   report.DefaultTemplates(),
		Output: OutputConfig{
			Dir:       ".",
			SaveRuns:  false,
			ExportCSV: false,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the default locations and environment
// variables. Order: defaults -> ~/.greensim/config.yaml -> environment.
func Load() (*Config, error) {
	cfg := Default()

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".greensim", "config.yaml")
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileCfg, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			cfg = fileCfg
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is valid. Scenario validation is
// delegated to the sampler so the CLI fails before any sampling begins.
func (c *Config) Validate() error {
	if err := c.Scenario.Validate(); err != nil {
		return err
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("output dir must not be empty")
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GREENSIM_TRIALS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scenario.Trials = n
		}
	}

	if v := os.Getenv("GREENSIM_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Scenario.RandomSeed = n
		}
	}

	if v := os.Getenv("GREENSIM_OUT"); v != "" {
		cfg.Output.Dir = v
	}

	if v := os.Getenv("GREENSIM_SAVE_RUNS"); v != "" {
		cfg.Output.SaveRuns = v == "true" || v == "1"
	}

	if v := os.Getenv("GREENSIM_EXPORT_CSV"); v != "" {
		cfg.Output.ExportCSV = v == "true" || v == "1"
	}

	if v := os.Getenv("GREENSIM_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// WriteFile serializes the config as YAML to path, creating parent
// directories as needed. Used by `greensim config init`.
func (c *Config) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
