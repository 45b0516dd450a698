package report_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ecoffset/greensim/internal/montecarlo"
	"github.com/ecoffset/greensim/internal/plot"
	"github.com/ecoffset/greensim/internal/report"
)

func TestRenderPDF_WritesReport(t *testing.T) {
	dir := t.TempDir()

	p := montecarlo.DefaultParameters()
	p.Trials = 100
	res1, err := montecarlo.Run(p)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	p2, err := montecarlo.DeriveScenarioTwo(p)
	if err != nil {
		t.Fatalf("DeriveScenarioTwo() error = %v", err)
	}
	res2, err := montecarlo.Run(p2)
	if err != nil {
		t.Fatalf("Run() scenario 2 error = %v", err)
	}

	if _, err := plot.ScenarioPlots(res1, res2, dir); err != nil {
		t.Fatalf("ScenarioPlots() error = %v", err)
	}

	doc, err := report.Build(res1, res2, report.DefaultTemplates())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	out, err := report.RenderPDF(doc, dir)
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}
	if filepath.Base(out) != report.ReportFileName {
		t.Errorf("output name = %q, want %q", filepath.Base(out), report.ReportFileName)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("report is empty")
	}
	if !strings.HasPrefix(string(data[:5]), "%PDF-") {
		t.Errorf("report does not start with PDF header: %q", data[:5])
	}
}

func TestRenderPDF_MissingPlotFails(t *testing.T) {
	dir := t.TempDir()

	p := montecarlo.DefaultParameters()
	p.Trials = 10
	res, err := montecarlo.Run(p)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	doc, err := report.Build(res, res, report.DefaultTemplates())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// No plots were written, so the image section must surface the error.
	if _, err := report.RenderPDF(doc, dir); err == nil {
		t.Fatal("RenderPDF() succeeded without plot files, want error")
	}
}
