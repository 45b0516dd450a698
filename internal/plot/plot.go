// Package plot renders the per-scenario histogram artifacts.
package plot

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	gonumplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ecoffset/greensim/internal/montecarlo"
	"github.com/ecoffset/greensim/internal/report"
)

// histogram styling, matching the original tool's output: 20 bins, green
// sequestration, blue offset, 7x4 inch canvas.
const bins = 20

var (
	sequestrationFill = color.NRGBA{R: 46, G: 139, B: 87, A: 180}
	offsetFill        = color.NRGBA{R: 70, G: 130, B: 180, A: 180}
)

// Histogram renders a single histogram PNG. Non-finite samples (the NaN
// offset sentinel) are filtered before binning; when nothing finite
// remains, an empty titled plot is written instead of failing.
func Histogram(vs []float64, title string, fill color.Color, path string) error {
	finite := make([]float64, 0, len(vs))
	for _, v := range vs {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}

	p := gonumplot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Trials"

	if len(finite) > 0 {
		h, err := plotter.NewHist(plotter.Values(finite), bins)
		if err != nil {
			return fmt.Errorf("building histogram %s: %w", title, err)
		}
		h.FillColor = fill
		p.Add(h)
	}

	if err := p.Save(7*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// ScenarioPlots writes the four fixed-name histogram PNGs for the two
// scenario results into dir and returns their paths. It fails with
// *montecarlo.EmptyResultError before writing anything if either result
// has no samples.
func ScenarioPlots(res1, res2 *montecarlo.ScenarioResult, dir string) ([]string, error) {
	if len(res1.Samples) == 0 {
		return nil, &montecarlo.EmptyResultError{Scenario: "1"}
	}
	if len(res2.Samples) == 0 {
		return nil, &montecarlo.EmptyResultError{Scenario: "2"}
	}

	specs := []struct {
		values []float64
		title  string
		fill   color.Color
		name   string
	}{
		{res1.SequestrationValues(), "Scenario 1 - Annual CO2 Sequestration", sequestrationFill, report.PlotSequestration1},
		{res1.OffsetValues(), "Scenario 1 - Offset Ratio", offsetFill, report.PlotOffset1},
		{res2.SequestrationValues(), "Scenario 2 - Annual CO2 Sequestration", sequestrationFill, report.PlotSequestration2},
		{res2.OffsetValues(), "Scenario 2 - Offset Ratio", offsetFill, report.PlotOffset2},
	}

	paths := make([]string, 0, len(specs))
	for _, s := range specs {
		path := filepath.Join(dir, s.name)
		if err := Histogram(s.values, s.title, s.fill, path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
