package montecarlo

import (
	"errors"
	"math"
	"testing"
)

func baseParams() ScenarioParameters {
	return ScenarioParameters{
		Trials:                  1000,
		AreaM2:                  20,
		DeviceCount:             5,
		PlantCount:              10,
		LeafAreaIndex:           3.0,
		LightInterception:       0.7,
		PhotosyntheticRateMean:  5.0,
		PhotosyntheticRateSigma: 1.0,
		DeviceEmissionMeanKg:    2.0,
		DeviceEmissionSigmaKg:   0.2,
		RandomSeed:              42,
	}
}

func TestRun_Determinism(t *testing.T) {
	p := baseParams()

	r1, err := Run(p)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	r2, err := Run(p)
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if len(r1.Samples) != len(r2.Samples) {
		t.Fatalf("sample counts differ: %d vs %d", len(r1.Samples), len(r2.Samples))
	}
	for i := range r1.Samples {
		if r1.Samples[i] != r2.Samples[i] {
			t.Fatalf("sample %d differs: %+v vs %+v", i, r1.Samples[i], r2.Samples[i])
		}
	}
	if r1.Sequestration.Median != r2.Sequestration.Median {
		t.Errorf("medians differ: %v vs %v", r1.Sequestration.Median, r2.Sequestration.Median)
	}
}

func TestRun_BaseParamsEndToEnd(t *testing.T) {
	r, err := Run(baseParams())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(r.Samples) != 1000 {
		t.Errorf("len(Samples) = %d, want 1000", len(r.Samples))
	}
	if !(r.Sequestration.Median > 0) {
		t.Errorf("median sequestration = %v, want > 0", r.Sequestration.Median)
	}
}

func TestRun_SamplesNonNegative(t *testing.T) {
	r, err := Run(baseParams())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for i, s := range r.Samples {
		if s.Sequestration < 0 {
			t.Fatalf("sample %d sequestration = %v, want >= 0", i, s.Sequestration)
		}
		if s.CreditYield < 0 {
			t.Fatalf("sample %d credit yield = %v, want >= 0", i, s.CreditYield)
		}
		if !math.IsNaN(s.OffsetRatio) && s.OffsetRatio < 0 {
			t.Fatalf("sample %d offset ratio = %v, want >= 0 or NaN", i, s.OffsetRatio)
		}
	}
}

func TestRun_SingleTrialMedianEqualsSample(t *testing.T) {
	p := baseParams()
	p.Trials = 1

	r, err := Run(p)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(r.Samples) != 1 {
		t.Fatalf("len(Samples) = %d, want 1", len(r.Samples))
	}
	if r.Sequestration.Median != r.Samples[0].Sequestration {
		t.Errorf("median = %v, want sample value %v", r.Sequestration.Median, r.Samples[0].Sequestration)
	}
}

func TestRun_ZeroDevicesOffsetIsNaN(t *testing.T) {
	p := baseParams()
	p.DeviceCount = 0

	r, err := Run(p)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for i, s := range r.Samples {
		if !math.IsNaN(s.OffsetRatio) {
			t.Fatalf("sample %d offset ratio = %v, want NaN sentinel", i, s.OffsetRatio)
		}
	}
	if !math.IsNaN(r.OffsetRatio.Median) {
		t.Errorf("offset median = %v, want NaN", r.OffsetRatio.Median)
	}
	if r.OffsetRatio.Finite != 0 {
		t.Errorf("offset finite count = %d, want 0", r.OffsetRatio.Finite)
	}
	// Sequestration stays well defined without devices.
	if !(r.Sequestration.Median > 0) {
		t.Errorf("sequestration median = %v, want > 0", r.Sequestration.Median)
	}
}

func TestRun_ZeroSigmaIsConstantRate(t *testing.T) {
	p := baseParams()
	p.PhotosyntheticRateSigma = 0
	p.DeviceEmissionSigmaKg = 0

	r, err := Run(p)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// With both sigmas at zero every trial's sequestration and offset are
	// identical; only the credit yield still varies.
	first := r.Samples[0]
	for i, s := range r.Samples {
		if s.Sequestration != first.Sequestration {
			t.Fatalf("sample %d sequestration = %v, want constant %v", i, s.Sequestration, first.Sequestration)
		}
		if s.OffsetRatio != first.OffsetRatio {
			t.Fatalf("sample %d offset = %v, want constant %v", i, s.OffsetRatio, first.OffsetRatio)
		}
	}
	if r.Sequestration.StdDev != 0 {
		t.Errorf("sequestration stddev = %v, want 0", r.Sequestration.StdDev)
	}
}

func TestRun_ZeroPlantsSequesterNothing(t *testing.T) {
	p := baseParams()
	p.PlantCount = 0

	r, err := Run(p)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for i, s := range r.Samples {
		if s.Sequestration != 0 {
			t.Fatalf("sample %d sequestration = %v, want 0", i, s.Sequestration)
		}
		if s.OffsetRatio != 0 {
			t.Fatalf("sample %d offset = %v, want 0", i, s.OffsetRatio)
		}
	}
}

func TestRun_InvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ScenarioParameters)
		field  string
	}{
		{"zero trials", func(p *ScenarioParameters) { p.Trials = 0 }, "trials"},
		{"negative area", func(p *ScenarioParameters) { p.AreaM2 = -1 }, "area_m2"},
		{"negative devices", func(p *ScenarioParameters) { p.DeviceCount = -1 }, "device_count"},
		{"negative plants", func(p *ScenarioParameters) { p.PlantCount = -3 }, "plant_count"},
		{"zero LAI", func(p *ScenarioParameters) { p.LeafAreaIndex = 0 }, "leaf_area_index"},
		{"light above one", func(p *ScenarioParameters) { p.LightInterception = 1.5 }, "light_interception"},
		{"negative sigma", func(p *ScenarioParameters) { p.PhotosyntheticRateSigma = -0.1 }, "photosynthetic_rate_sigma"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseParams()
			tt.mutate(&p)

			_, err := Run(p)
			var perr *InvalidParameterError
			if !errors.As(err, &perr) {
				t.Fatalf("Run() error = %v, want *InvalidParameterError", err)
			}
			if perr.Field != tt.field {
				t.Errorf("Field = %q, want %q", perr.Field, tt.field)
			}
		})
	}
}

func TestRun_DifferentSeedsDiffer(t *testing.T) {
	p := baseParams()
	r1, err := Run(p)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	p.RandomSeed = 43
	r2, err := Run(p)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if r1.Sequestration.Median == r2.Sequestration.Median {
		t.Errorf("distinct seeds produced identical medians %v", r1.Sequestration.Median)
	}
}
