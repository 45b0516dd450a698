package mcp

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ecoffset/greensim/internal/config"
	"github.com/ecoffset/greensim/internal/logging"
	"github.com/ecoffset/greensim/internal/report"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Scenario.Trials = 50
	cfg.Output.Dir = t.TempDir()

	s, err := NewServer(&Config{Name: "greensim", Version: "test"}, cfg, logging.NewLogger("info", io.Discard))
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return s
}

func intPtr(n int) *int           { return &n }
func int64Ptr(n int64) *int64     { return &n }
func boolPtr(b bool) *bool        { return &b }
func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestHandleSimulate_AppliesOverrides(t *testing.T) {
	s := testServer(t)

	_, out, err := s.handleSimulate(context.Background(), nil, ParameterOverrides{
		Trials:     intPtr(25),
		RandomSeed: int64Ptr(7),
	})
	if err != nil {
		t.Fatalf("handleSimulate() error = %v", err)
	}
	if out.Scenario.Trials != 25 {
		t.Errorf("trials = %d, want 25", out.Scenario.Trials)
	}
	if out.Scenario.Params.RandomSeed != 7 {
		t.Errorf("seed = %d, want 7", out.Scenario.Params.RandomSeed)
	}
	if !(out.Scenario.Sequestration.Median > 0) {
		t.Errorf("median sequestration = %v, want > 0", out.Scenario.Sequestration.Median)
	}
}

func TestHandleSimulate_InvalidOverride(t *testing.T) {
	s := testServer(t)

	_, _, err := s.handleSimulate(context.Background(), nil, ParameterOverrides{
		Trials: intPtr(0),
	})
	if err == nil {
		t.Fatal("handleSimulate() succeeded with zero trials, want error")
	}
}

func TestHandleCompare_ReturnsBothScenarios(t *testing.T) {
	s := testServer(t)

	_, out, err := s.handleCompare(context.Background(), nil, ParameterOverrides{})
	if err != nil {
		t.Fatalf("handleCompare() error = %v", err)
	}
	if out.Scenario1.Trials != 50 || out.Scenario2.Trials != 50 {
		t.Errorf("trials = %d/%d, want 50/50", out.Scenario1.Trials, out.Scenario2.Trials)
	}
	if len(out.Comparison) != 3 {
		t.Errorf("comparison rows = %d, want 3", len(out.Comparison))
	}
	if out.Scenario2.Params.RandomSeed != out.Scenario1.Params.RandomSeed+1 {
		t.Errorf("scenario 2 seed = %d, want %d",
			out.Scenario2.Params.RandomSeed, out.Scenario1.Params.RandomSeed+1)
	}
}

func TestHandleReport_WritesArtifacts(t *testing.T) {
	s := testServer(t)
	outDir := t.TempDir()

	_, out, err := s.handleReport(context.Background(), nil, ReportInput{
		OutDir:    strPtr(outDir),
		ExportCSV: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("handleReport() error = %v", err)
	}

	if filepath.Dir(out.ReportPath) != outDir {
		t.Errorf("report written to %s, want %s", out.ReportPath, outDir)
	}
	if _, err := os.Stat(out.ReportPath); err != nil {
		t.Errorf("missing report: %v", err)
	}
	if len(out.PlotPaths) != 4 {
		t.Errorf("plot paths = %d, want 4", len(out.PlotPaths))
	}
	if len(out.CSVPaths) != 2 {
		t.Errorf("csv paths = %d, want 2", len(out.CSVPaths))
	}

	// The baseline config is untouched by per-call overrides.
	if s.cfg.Output.ExportCSV {
		t.Error("per-call override mutated server config")
	}
	if _, err := os.Stat(filepath.Join(outDir, report.ReportFileName)); err != nil {
		t.Errorf("report name mismatch: %v", err)
	}
}

func TestApply_UnsetFieldsKeepBase(t *testing.T) {
	s := testServer(t)
	base := s.cfg.Scenario

	got := ParameterOverrides{AreaM2: floatPtr(55)}.apply(base)
	if got.AreaM2 != 55 {
		t.Errorf("AreaM2 = %v, want 55", got.AreaM2)
	}
	got.AreaM2 = base.AreaM2
	if got != base {
		t.Errorf("unset fields changed: %+v vs %+v", got, base)
	}
}
