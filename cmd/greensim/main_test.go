package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/ecoffset/greensim/internal/config"
)

// newTestRootCmd creates a root command with persistent flags for testing subcommands
func newTestRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use: "greensim",
	}
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "Config file path")
	rootCmd.PersistentFlags().String("out", "", "Output directory")
	rootCmd.PersistentFlags().String("log-level", "", "Log level")
	return rootCmd
}

// isolateHome sets HOME to a temp directory to avoid touching real ~/.greensim/
func isolateHome(t *testing.T, tmpDir string) {
	t.Helper()
	tmpHome := filepath.Join(tmpDir, "home")
	if err := os.MkdirAll(tmpHome, 0700); err != nil {
		t.Fatalf("Failed to create temp home: %v", err)
	}
	t.Setenv("HOME", tmpHome)
}

func TestNewVersionCmd(t *testing.T) {
	cmd := newVersionCmd()
	if cmd.Use != "version" {
		t.Errorf("Use = %q, want %q", cmd.Use, "version")
	}
}

func TestNewRunCmd(t *testing.T) {
	cmd := newRunCmd()
	if cmd.Use != "run" {
		t.Errorf("Use = %q, want %q", cmd.Use, "run")
	}

	for _, flag := range []string{"trials", "seed", "save", "csv"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("missing --%s flag", flag)
		}
	}
}

func TestNewSimulateCmd(t *testing.T) {
	cmd := newSimulateCmd()
	if cmd.Use != "simulate" {
		t.Errorf("Use = %q, want %q", cmd.Use, "simulate")
	}

	for _, flag := range []string{"trials", "seed", "devices", "plants"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("missing --%s flag", flag)
		}
	}
}

func TestNewExportCmd(t *testing.T) {
	cmd := newExportCmd()
	if !strings.HasPrefix(cmd.Use, "export") {
		t.Errorf("Use = %q, want prefix %q", cmd.Use, "export")
	}
	if cmd.Flags().Lookup("format") == nil {
		t.Error("missing --format flag")
	}
}

func TestDeriveCmd(t *testing.T) {
	tmpDir := t.TempDir()
	isolateHome(t, tmpDir)

	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newDeriveCmd())
	rootCmd.SetArgs([]string{"derive"})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("derive failed: %v", err)
	}
}

func TestRunsCmdEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	isolateHome(t, tmpDir)

	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newRunsCmd())
	rootCmd.SetArgs([]string{"runs", "--out", tmpDir})
	rootCmd.SetOut(&bytes.Buffer{})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("runs failed: %v", err)
	}
}

func TestExportCmdInvalidID(t *testing.T) {
	tmpDir := t.TempDir()
	isolateHome(t, tmpDir)

	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newExportCmd())
	rootCmd.SetArgs([]string{"export", "not-a-number", "--out", tmpDir})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	err := rootCmd.Execute()
	if err == nil {
		t.Error("expected error for non-numeric run id")
	}
	if !strings.Contains(err.Error(), "invalid run id") {
		t.Errorf("expected 'invalid run id' error, got: %v", err)
	}
}

func TestExportCmdMissingRun(t *testing.T) {
	tmpDir := t.TempDir()
	isolateHome(t, tmpDir)

	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newExportCmd())
	rootCmd.SetArgs([]string{"export", "123", "--out", tmpDir})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	err := rootCmd.Execute()
	if err == nil {
		t.Error("expected error for archived run that does not exist")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected 'not found' error, got: %v", err)
	}
}

func TestConfigInitAndSet(t *testing.T) {
	tmpDir := t.TempDir()
	isolateHome(t, tmpDir)

	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.SetArgs([]string{"config", "init"})
	rootCmd.SetOut(&bytes.Buffer{})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config init failed: %v", err)
	}

	home, _ := os.UserHomeDir()
	path := filepath.Join(home, ".greensim", "config.yaml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config.yaml not created")
	}

	// Re-init without --force must refuse to clobber
	rootCmd2 := newTestRootCmd()
	rootCmd2.AddCommand(newConfigCmd())
	rootCmd2.SetArgs([]string{"config", "init"})
	rootCmd2.SetOut(&bytes.Buffer{})
	rootCmd2.SetErr(&bytes.Buffer{})
	if err := rootCmd2.Execute(); err == nil {
		t.Error("expected error re-initializing existing config without --force")
	}

	// Set then get round trip
	rootCmd3 := newTestRootCmd()
	rootCmd3.AddCommand(newConfigCmd())
	rootCmd3.SetArgs([]string{"config", "set", "scenario.trials", "2500"})
	rootCmd3.SetOut(&bytes.Buffer{})
	if err := rootCmd3.Execute(); err != nil {
		t.Fatalf("config set failed: %v", err)
	}

	rootCmd4 := newTestRootCmd()
	rootCmd4.AddCommand(newConfigCmd())
	rootCmd4.SetArgs([]string{"config", "get", "scenario.trials"})
	var out bytes.Buffer
	rootCmd4.SetOut(&out)
	if err := rootCmd4.Execute(); err != nil {
		t.Fatalf("config get failed: %v", err)
	}
}

func TestSetConfigValueRejectsUnknownKey(t *testing.T) {
	cfg := config.Default()
	if err := setConfigValue(cfg, "scenario.nope", "1"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestSetConfigValueParsesTypes(t *testing.T) {
	cfg := config.Default()

	if err := setConfigValue(cfg, "scenario.trials", "777"); err != nil {
		t.Fatalf("set trials failed: %v", err)
	}
	if cfg.Scenario.Trials != 777 {
		t.Errorf("Trials = %d, want 777", cfg.Scenario.Trials)
	}

	if err := setConfigValue(cfg, "scenario.area_m2", "55.5"); err != nil {
		t.Fatalf("set area failed: %v", err)
	}
	if cfg.Scenario.AreaM2 != 55.5 {
		t.Errorf("AreaM2 = %f, want 55.5", cfg.Scenario.AreaM2)
	}

	if err := setConfigValue(cfg, "output.save_runs", "true"); err != nil {
		t.Fatalf("set save_runs failed: %v", err)
	}
	if !cfg.Output.SaveRuns {
		t.Error("SaveRuns = false, want true")
	}

	if err := setConfigValue(cfg, "scenario.trials", "many"); err == nil {
		t.Error("expected error for non-numeric trials")
	}
}
