// Package simulation orchestrates the full dual-scenario pipeline: run
// scenario 1, derive and run scenario 2, render plots, assemble the
// document, and write every artifact to the output directory.
package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/ecoffset/greensim/internal/config"
	"github.com/ecoffset/greensim/internal/logging"
	"github.com/ecoffset/greensim/internal/montecarlo"
	"github.com/ecoffset/greensim/internal/plot"
	"github.com/ecoffset/greensim/internal/report"
	"github.com/ecoffset/greensim/internal/store"
)

// Runner executes the simulation pipeline for one configuration.
type Runner struct {
	cfg    *config.Config
	log    *slog.Logger
	runLog *logging.RunLogger
}

// Artifacts collects everything a pipeline run produced. The raw results
// are excluded from JSON output; the views carry the aggregate statistics.
type Artifacts struct {
	Result1    *montecarlo.ScenarioResult `json:"-"`
	Result2    *montecarlo.ScenarioResult `json:"-"`
	Scenario1  montecarlo.SummaryView     `json:"scenario1"`
	Scenario2  montecarlo.SummaryView     `json:"scenario2"`
	Comparison []report.ComparisonRow     `json:"comparison"`
	ReportPath string                     `json:"report_path"`
	PlotPaths  []string                   `json:"plot_paths"`
	CSVPaths   []string                   `json:"csv_paths,omitempty"`
	RunID      int64                      `json:"run_id,omitempty"`
}

// NewRunner creates a pipeline runner. runLog may be nil.
func NewRunner(cfg *config.Config, log *slog.Logger, runLog *logging.RunLogger) *Runner {
	return &Runner{cfg: cfg, log: log, runLog: runLog}
}

// Run executes the whole pipeline and returns the produced artifacts.
// The two scenario runs are independent and sequential; the only shared
// resource is the output directory, written once per artifact.
func (r *Runner) Run(ctx context.Context) (*Artifacts, error) {
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}

	dir := r.cfg.Output.Dir
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	params1 := r.cfg.Scenario
	res1, err := montecarlo.Run(params1)
	if err != nil {
		return nil, fmt.Errorf("scenario 1: %w", err)
	}
	r.logScenario(1, res1)

	params2, err := montecarlo.DeriveScenarioTwo(params1)
	if err != nil {
		return nil, fmt.Errorf("deriving scenario 2: %w", err)
	}
	res2, err := montecarlo.Run(params2)
	if err != nil {
		return nil, fmt.Errorf("scenario 2: %w", err)
	}
	r.logScenario(2, res2)

	plotPaths, err := plot.ScenarioPlots(res1, res2, dir)
	if err != nil {
		return nil, fmt.Errorf("rendering plots: %w", err)
	}
	r.log.Debug("plots rendered", "count", len(plotPaths))

	doc, err := report.Build(res1, res2, r.cfg.Report)
	if err != nil {
		return nil, fmt.Errorf("assembling report: %w", err)
	}
	reportPath, err := report.RenderPDF(doc, dir)
	if err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}
	r.log.Info("report written", "path", reportPath)

	a := &Artifacts{
		Result1:    res1,
		Result2:    res2,
		Scenario1:  res1.View(),
		Scenario2:  res2.View(),
		Comparison: report.CompareRows(res1, res2),
		ReportPath: reportPath,
		PlotPaths:  plotPaths,
	}

	if r.cfg.Output.ExportCSV {
		for i, res := range []*montecarlo.ScenarioResult{res1, res2} {
			path, err := store.ExportSamples(res, i+1, dir, store.FormatCSV)
			if err != nil {
				return nil, fmt.Errorf("exporting csv: %w", err)
			}
			a.CSVPaths = append(a.CSVPaths, path)
		}
	}

	if r.cfg.Output.SaveRuns {
		runStore, err := store.Open(dir)
		if err != nil {
			return nil, fmt.Errorf("opening run archive: %w", err)
		}
		defer runStore.Close()

		id, err := runStore.SaveRun(ctx, "run", res1, res2)
		if err != nil {
			return nil, fmt.Errorf("archiving run: %w", err)
		}
		a.RunID = id
		r.log.Info("run archived", "id", id)
	}

	r.runLog.Log(map[string]any{
		"event":  "pipeline_complete",
		"report": reportPath,
		"run_id": a.RunID,
	})
	return a, nil
}

// logScenario records one scenario's summary to the operational and run
// trace logs.
func (r *Runner) logScenario(n int, res *montecarlo.ScenarioResult) {
	r.log.Info("scenario complete",
		"scenario", n,
		"trials", len(res.Samples),
		"median_sequestration", res.Sequestration.Median,
	)
	r.runLog.Log(map[string]any{
		"event":                "scenario_complete",
		"scenario":             n,
		"trials":               len(res.Samples),
		"median_sequestration": jsonSafe(res.Sequestration.Median),
		"median_offset_ratio":  jsonSafe(res.OffsetRatio.Median),
		"median_credit_yield":  jsonSafe(res.CreditYield.Median),
		"seed":                 res.Params.RandomSeed,
	})
}

// jsonSafe maps the NaN sentinel to null so a trace line still marshals.
func jsonSafe(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
