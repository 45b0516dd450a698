package mcp

import (
	"context"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ecoffset/greensim/internal/montecarlo"
	"github.com/ecoffset/greensim/internal/report"
	"github.com/ecoffset/greensim/internal/simulation"
)

// ParameterOverrides are optional per-call overrides of the baseline
// scenario configuration. Unset fields keep their configured values.
type ParameterOverrides struct {
	Trials                  *int     `json:"trials,omitempty" jsonschema:"number of Monte Carlo trials"`
	AreaM2                  *float64 `json:"area_m2,omitempty" jsonschema:"workspace floor area in square meters"`
	DeviceCount             *int     `json:"device_count,omitempty" jsonschema:"number of digital devices"`
	PlantCount              *int     `json:"plant_count,omitempty" jsonschema:"number of indoor plants"`
	LeafAreaIndex           *float64 `json:"leaf_area_index,omitempty" jsonschema:"leaf area index"`
	LightInterception       *float64 `json:"light_interception,omitempty" jsonschema:"light interception fraction in [0,1]"`
	PhotosyntheticRateMean  *float64 `json:"photosynthetic_rate_mean,omitempty" jsonschema:"mean photosynthetic rate in g CO2/m2/day"`
	PhotosyntheticRateSigma *float64 `json:"photosynthetic_rate_sigma,omitempty" jsonschema:"photosynthetic rate standard deviation"`
	RandomSeed              *int64   `json:"random_seed,omitempty" jsonschema:"random seed for reproducibility"`
}

// apply returns base with the overrides applied.
func (o ParameterOverrides) apply(base montecarlo.ScenarioParameters) montecarlo.ScenarioParameters {
	p := base
	if o.Trials != nil {
		p.Trials = *o.Trials
	}
	if o.AreaM2 != nil {
		p.AreaM2 = *o.AreaM2
	}
	if o.DeviceCount != nil {
		p.DeviceCount = *o.DeviceCount
	}
	if o.PlantCount != nil {
		p.PlantCount = *o.PlantCount
	}
	if o.LeafAreaIndex != nil {
		p.LeafAreaIndex = *o.LeafAreaIndex
	}
	if o.LightInterception != nil {
		p.LightInterception = *o.LightInterception
	}
	if o.PhotosyntheticRateMean != nil {
		p.PhotosyntheticRateMean = *o.PhotosyntheticRateMean
	}
	if o.PhotosyntheticRateSigma != nil {
		p.PhotosyntheticRateSigma = *o.PhotosyntheticRateSigma
	}
	if o.RandomSeed != nil {
		p.RandomSeed = *o.RandomSeed
	}
	return p
}

// SimulateOutput is the result of greensim_simulate.
type SimulateOutput struct {
	Scenario montecarlo.SummaryView `json:"scenario"`
}

// CompareOutput is the result of greensim_compare.
type CompareOutput struct {
	Scenario1  montecarlo.SummaryView `json:"scenario1"`
	Scenario2  montecarlo.SummaryView `json:"scenario2"`
	Comparison []report.ComparisonRow `json:"comparison"`
}

// ReportInput configures greensim_report.
type ReportInput struct {
	ParameterOverrides
	OutDir    *string `json:"out_dir,omitempty" jsonschema:"output directory for artifacts"`
	ExportCSV *bool   `json:"export_csv,omitempty" jsonschema:"also write per-scenario raw sample CSVs"`
	SaveRun   *bool   `json:"save_run,omitempty" jsonschema:"archive the run into the sqlite run store"`
}

// ReportOutput is the result of greensim_report.
type ReportOutput struct {
	ReportPath string   `json:"report_path"`
	PlotPaths  []string `json:"plot_paths"`
	CSVPaths   []string `json:"csv_paths,omitempty"`
	RunID      int64    `json:"run_id,omitempty"`
}

func (s *Server) handleSimulate(ctx context.Context, req *sdk.CallToolRequest, args ParameterOverrides) (*sdk.CallToolResult, SimulateOutput, error) {
	params := args.apply(s.cfg.Scenario)

	res, err := montecarlo.Run(params)
	if err != nil {
		return nil, SimulateOutput{}, fmt.Errorf("running scenario: %w", err)
	}

	s.log.Debug("mcp simulate", "trials", params.Trials, "seed", params.RandomSeed)
	return nil, SimulateOutput{Scenario: res.View()}, nil
}

func (s *Server) handleCompare(ctx context.Context, req *sdk.CallToolRequest, args ParameterOverrides) (*sdk.CallToolResult, CompareOutput, error) {
	params := args.apply(s.cfg.Scenario)

	res1, err := montecarlo.Run(params)
	if err != nil {
		return nil, CompareOutput{}, fmt.Errorf("scenario 1: %w", err)
	}
	params2, err := montecarlo.DeriveScenarioTwo(params)
	if err != nil {
		return nil, CompareOutput{}, fmt.Errorf("deriving scenario 2: %w", err)
	}
	res2, err := montecarlo.Run(params2)
	if err != nil {
		return nil, CompareOutput{}, fmt.Errorf("scenario 2: %w", err)
	}

	return nil, CompareOutput{
		Scenario1:  res1.View(),
		Scenario2:  res2.View(),
		Comparison: report.CompareRows(res1, res2),
	}, nil
}

func (s *Server) handleReport(ctx context.Context, req *sdk.CallToolRequest, args ReportInput) (*sdk.CallToolResult, ReportOutput, error) {
	cfg := *s.cfg
	cfg.Scenario = args.apply(cfg.Scenario)
	if args.OutDir != nil {
		cfg.Output.Dir = *args.OutDir
	}
	if args.ExportCSV != nil {
		cfg.Output.ExportCSV = *args.ExportCSV
	}
	if args.SaveRun != nil {
		cfg.Output.SaveRuns = *args.SaveRun
	}

	runner := simulation.NewRunner(&cfg, s.log, nil)
	a, err := runner.Run(ctx)
	if err != nil {
		return nil, ReportOutput{}, err
	}

	return nil, ReportOutput{
		ReportPath: a.ReportPath,
		PlotPaths:  a.PlotPaths,
		CSVPaths:   a.CSVPaths,
		RunID:      a.RunID,
	}, nil
}
