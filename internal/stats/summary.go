// Package stats provides descriptive statistics over Monte Carlo samples.
package stats

import (
	"encoding/json"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary holds descriptive statistics for one metric across all trials.
// When a sample set contains no finite values (e.g. the offset ratio of a
// zero-device scenario, where every draw is the NaN sentinel), every
// statistic is NaN and Finite is 0.
type Summary struct {
	N      int     `json:"n"`
	Finite int     `json:"finite"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}

// Summarize reduces a sample set to descriptive statistics. Non-finite
// values are excluded from the computation but counted in N, so a metric
// carrying NaN sentinels still summarizes cleanly over the rest.
func Summarize(xs []float64) Summary {
	finite := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			finite = append(finite, x)
		}
	}

	s := Summary{
		N:      len(xs),
		Finite: len(finite),
		Mean:   math.NaN(),
		Median: math.NaN(),
		StdDev: math.NaN(),
		Min:    math.NaN(),
		Max:    math.NaN(),
		Q25:    math.NaN(),
		Q75:    math.NaN(),
	}
	if len(finite) == 0 {
		return s
	}

	sort.Float64s(finite)

	s.Mean = stat.Mean(finite, nil)
	s.StdDev = stat.PopStdDev(finite, nil)
	s.Min = finite[0]
	s.Max = finite[len(finite)-1]
	s.Median = stat.Quantile(0.5, stat.Empirical, finite, nil)
	s.Q25 = stat.Quantile(0.25, stat.Empirical, finite, nil)
	s.Q75 = stat.Quantile(0.75, stat.Empirical, finite, nil)
	return s
}

// Median returns the empirical median of xs, or NaN for an empty or
// all-non-finite sample set.
func Median(xs []float64) float64 {
	return Summarize(xs).Median
}

// MarshalJSON encodes NaN statistics (the zero-device offset sentinel) as
// null, since JSON has no NaN literal.
func (s Summary) MarshalJSON() ([]byte, error) {
	type jsonSummary struct {
		N      int      `json:"n"`
		Finite int      `json:"finite"`
		Mean   *float64 `json:"mean"`
		Median *float64 `json:"median"`
		StdDev *float64 `json:"std_dev"`
		Min    *float64 `json:"min"`
		Max    *float64 `json:"max"`
		Q25    *float64 `json:"q25"`
		Q75    *float64 `json:"q75"`
	}
	nullable := func(v float64) *float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return &v
	}
	return json.Marshal(jsonSummary{
		N:      s.N,
		Finite: s.Finite,
		Mean:   nullable(s.Mean),
		Median: nullable(s.Median),
		StdDev: nullable(s.StdDev),
		Min:    nullable(s.Min),
		Max:    nullable(s.Max),
		Q25:    nullable(s.Q25),
		Q75:    nullable(s.Q75),
	})
}
