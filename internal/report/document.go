// Package report assembles the simulation results into a fixed-structure
// document: narrative sections, per-scenario statistics tables, a median
// comparison table, and the four embedded histogram plots.
package report

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/ecoffset/greensim/internal/montecarlo"
	"github.com/ecoffset/greensim/internal/stats"
)

// Plot artifact names, fixed because downstream consumers expect them.
const (
	PlotSequestration1 = "plot_sequestration_1.png"
	PlotOffset1        = "plot_offset_1.png"
	PlotSequestration2 = "plot_sequestration_2.png"
	PlotOffset2        = "plot_offset_2.png"
	ReportFileName     = "simulation_report.pdf"
)

// Metric display names shared by tables and plots.
const (
	MetricSequestration = "Sequestration (tCO2/yr)"
	MetricOffsetRatio   = "Offset Ratio"
	MetricCreditYield   = "Synthetic Credit (tCO2e)"
)

// Table is a rendered table: a header row plus data rows of formatted cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// ComparisonRow pairs the scenario 1 and scenario 2 medians for one metric.
// The medians are carried over unmodified from the scenario summaries.
type ComparisonRow struct {
	Metric    string
	Scenario1 float64
	Scenario2 float64
}

// MarshalJSON encodes NaN medians as null, since JSON has no NaN literal.
func (r ComparisonRow) MarshalJSON() ([]byte, error) {
	type jsonRow struct {
		Metric    string   `json:"metric"`
		Scenario1 *float64 `json:"scenario1"`
		Scenario2 *float64 `json:"scenario2"`
	}
	nullable := func(v float64) *float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return &v
	}
	return json.Marshal(jsonRow{Metric: r.Metric, Scenario1: nullable(r.Scenario1), Scenario2: nullable(r.Scenario2)})
}

// Section is one logical block of the document, in render order.
type Section struct {
	Heading string
	Body    string
	Table   *Table
	Images  []string
}

// Document is the assembled report, ready for a renderer.
type Document struct {
	Title    string
	Author   string
	Sections []Section
}

// CompareRows derives the comparison rows for the three metrics. Medians
// are taken directly from each scenario's summary with no re-aggregation.
func CompareRows(res1, res2 *montecarlo.ScenarioResult) []ComparisonRow {
	return []ComparisonRow{
		{Metric: MetricSequestration, Scenario1: res1.Sequestration.Median, Scenario2: res2.Sequestration.Median},
		{Metric: MetricOffsetRatio, Scenario1: res1.OffsetRatio.Median, Scenario2: res2.OffsetRatio.Median},
		{Metric: MetricCreditYield, Scenario1: res1.CreditYield.Median, Scenario2: res2.CreditYield.Median},
	}
}

// Build assembles the document from two scenario results. It fails with
// *montecarlo.EmptyResultError if either result carries no samples, rather
// than producing misleading empty tables and plots.
func Build(res1, res2 *montecarlo.ScenarioResult, tpl Templates) (*Document, error) {
	if len(res1.Samples) == 0 {
		return nil, &montecarlo.EmptyResultError{Scenario: "1"}
	}
	if len(res2.Samples) == 0 {
		return nil, &montecarlo.EmptyResultError{Scenario: "2"}
	}

	doc := &Document{
		Title:  tpl.Title,
		Author: tpl.Author,
		Sections: []Section{
			{Heading: "Abstract", Body: tpl.Abstract},
			{Heading: "Introduction", Body: tpl.Introduction},
			{Heading: "Methodology", Body: tpl.Methodology},
			{Heading: "Scenario 1 Results", Table: scenarioTable(res1)},
			{Heading: "Scenario 2 Results", Table: scenarioTable(res2)},
			{Heading: "Scenario Comparison (Median Values)", Table: comparisonTable(CompareRows(res1, res2))},
			{Heading: "Scenario 1 Plots", Images: []string{PlotSequestration1, PlotOffset1}},
			{Heading: "Scenario 2 Plots", Images: []string{PlotSequestration2, PlotOffset2}},
			{Heading: "Discussion", Body: tpl.Discussion},
			{Heading: "Conclusion", Body: tpl.Conclusion},
		},
	}
	return doc, nil
}

// scenarioTable renders one scenario's three metric summaries.
func scenarioTable(res *montecarlo.ScenarioResult) *Table {
	return &Table{
		Header: []string{"Metric", "Median", "Mean", "Std Dev", "Min", "Max"},
		Rows: [][]string{
			summaryRow(MetricSequestration, res.Sequestration),
			summaryRow(MetricOffsetRatio, res.OffsetRatio),
			summaryRow(MetricCreditYield, res.CreditYield),
		},
	}
}

func summaryRow(metric string, s stats.Summary) []string {
	return []string{
		metric,
		formatValue(s.Median),
		formatValue(s.Mean),
		formatValue(s.StdDev),
		formatValue(s.Min),
		formatValue(s.Max),
	}
}

func comparisonTable(rows []ComparisonRow) *Table {
	t := &Table{Header: []string{"Metric", "Scenario 1", "Scenario 2"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.Metric, formatValue(r.Scenario1), formatValue(r.Scenario2)})
	}
	return t
}

// formatValue renders a statistic, mapping the NaN sentinel (e.g. the offset
// ratio of a zero-device scenario) to "n/a" instead of crashing the table.
func formatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", v)
}
