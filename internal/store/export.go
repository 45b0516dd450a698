package store

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/ecoffset/greensim/internal/montecarlo"
)

// Export formats for raw trial samples.
const (
	FormatCSV   = "csv"
	FormatArrow = "arrow"
)

// sampleSchema is the Arrow schema for exported trial samples. The offset
// ratio is nullable: NaN sentinels export as nulls.
var sampleSchema = arrow.NewSchema([]arrow.Field{
	{Name: "trial", Type: arrow.PrimitiveTypes.Int64},
	{Name: "sequestration", Type: arrow.PrimitiveTypes.Float64},
	{Name: "offset_ratio", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
	{Name: "credit_yield", Type: arrow.PrimitiveTypes.Float64},
}, nil)

// ExportSamples writes one scenario's raw samples to
// <dir>/samples_<scenario>.<format> and returns the path.
func ExportSamples(res *montecarlo.ScenarioResult, scenario int, dir, format string) (string, error) {
	switch format {
	case FormatCSV:
		return exportCSV(res, scenario, dir)
	case FormatArrow:
		return exportArrow(res, scenario, dir)
	default:
		return "", fmt.Errorf("unknown export format %q (valid: csv, arrow)", format)
	}
}

// ExportRun exports every scenario of an archived run and returns the
// written paths in scenario order.
func ExportRun(run *Run, dir, format string) ([]string, error) {
	paths := make([]string, 0, len(run.Scenarios))
	for i, res := range run.Scenarios {
		path, err := ExportSamples(res, i+1, dir, format)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func exportCSV(res *montecarlo.ScenarioResult, scenario int, dir string) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("samples_%d.csv", scenario))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"trial", "sequestration_tco2", "offset_ratio", "credit_yield_tco2e"}); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}

	for i, s := range res.Samples {
		offset := ""
		if !math.IsNaN(s.OffsetRatio) && !math.IsInf(s.OffsetRatio, 0) {
			offset = strconv.FormatFloat(s.OffsetRatio, 'g', -1, 64)
		}
		record := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(s.Sequestration, 'g', -1, 64),
			offset,
			strconv.FormatFloat(s.CreditYield, 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write sample %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}
	return path, nil
}

func exportArrow(res *montecarlo.ScenarioResult, scenario int, dir string) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("samples_%d.arrow", scenario))

	b := array.NewRecordBuilder(memory.DefaultAllocator, sampleSchema)
	defer b.Release()

	trialB := b.Field(0).(*array.Int64Builder)
	seqB := b.Field(1).(*array.Float64Builder)
	offsetB := b.Field(2).(*array.Float64Builder)
	creditB := b.Field(3).(*array.Float64Builder)

	for i, s := range res.Samples {
		trialB.Append(int64(i))
		seqB.Append(s.Sequestration)
		if math.IsNaN(s.OffsetRatio) || math.IsInf(s.OffsetRatio, 0) {
			offsetB.AppendNull()
		} else {
			offsetB.Append(s.OffsetRatio)
		}
		creditB.Append(s.CreditYield)
	}

	rec := b.NewRecord()
	defer rec.Release()

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w, err := ipc.NewFileWriter(f, ipc.WithSchema(sampleSchema))
	if err != nil {
		return "", fmt.Errorf("failed to create arrow writer: %w", err)
	}
	if err := w.Write(rec); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write arrow record: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close arrow writer: %w", err)
	}
	return path, nil
}
