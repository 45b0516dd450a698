package stats

import (
	"math"
	"testing"
)

func TestSummarize_Basic(t *testing.T) {
	s := Summarize([]float64{4, 1, 3, 2, 5})

	if s.N != 5 || s.Finite != 5 {
		t.Fatalf("N = %d, Finite = %d, want 5, 5", s.N, s.Finite)
	}
	if s.Mean != 3 {
		t.Errorf("Mean = %v, want 3", s.Mean)
	}
	if s.Median != 3 {
		t.Errorf("Median = %v, want 3", s.Median)
	}
	if s.Min != 1 || s.Max != 5 {
		t.Errorf("Min/Max = %v/%v, want 1/5", s.Min, s.Max)
	}
	wantStd := math.Sqrt(2) // population stddev of 1..5
	if math.Abs(s.StdDev-wantStd) > 1e-12 {
		t.Errorf("StdDev = %v, want %v", s.StdDev, wantStd)
	}
}

func TestSummarize_SingleValue(t *testing.T) {
	s := Summarize([]float64{7.5})
	if s.Median != 7.5 {
		t.Errorf("Median = %v, want 7.5", s.Median)
	}
	if s.StdDev != 0 {
		t.Errorf("StdDev = %v, want 0", s.StdDev)
	}
}

func TestSummarize_SkipsNonFinite(t *testing.T) {
	s := Summarize([]float64{1, math.NaN(), 3, math.Inf(1)})
	if s.N != 4 {
		t.Errorf("N = %d, want 4", s.N)
	}
	if s.Finite != 2 {
		t.Errorf("Finite = %d, want 2", s.Finite)
	}
	if s.Mean != 2 {
		t.Errorf("Mean = %v, want 2", s.Mean)
	}
}

func TestSummarize_AllNaN(t *testing.T) {
	s := Summarize([]float64{math.NaN(), math.NaN()})
	if s.Finite != 0 {
		t.Errorf("Finite = %d, want 0", s.Finite)
	}
	if !math.IsNaN(s.Median) || !math.IsNaN(s.Mean) {
		t.Errorf("Median/Mean = %v/%v, want NaN", s.Median, s.Mean)
	}
}

func TestSummarize_DoesNotMutateInput(t *testing.T) {
	xs := []float64{3, 1, 2}
	Summarize(xs)
	if xs[0] != 3 || xs[1] != 1 || xs[2] != 2 {
		t.Errorf("input mutated: %v", xs)
	}
}

func TestMedian_Empty(t *testing.T) {
	if m := Median(nil); !math.IsNaN(m) {
		t.Errorf("Median(nil) = %v, want NaN", m)
	}
}
