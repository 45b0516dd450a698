package montecarlo

import (
	"github.com/ecoffset/greensim/internal/constants"
)

// ScenarioParameters fully describes one simulation scenario. A value is
// validated once and treated as immutable afterwards; Run never mutates it.
type ScenarioParameters struct {
	// Trials is the number of independent Monte Carlo draws.
	Trials int `json:"trials" yaml:"trials"`

	// AreaM2 is the workspace floor area in square meters, shared evenly
	// across plants.
	AreaM2 float64 `json:"area_m2" yaml:"area_m2"`

	// DeviceCount is the number of digital devices contributing emissions.
	DeviceCount int `json:"device_count" yaml:"device_count"`

	// PlantCount is the number of indoor plants contributing sequestration.
	PlantCount int `json:"plant_count" yaml:"plant_count"`

	// LeafAreaIndex is the ratio of total leaf area to ground area.
	LeafAreaIndex float64 `json:"leaf_area_index" yaml:"leaf_area_index"`

	// LightInterception is the fraction of incident light captured, in [0,1].
	LightInterception float64 `json:"light_interception" yaml:"light_interception"`

	// PhotosyntheticRateMean is the mean photosynthetic rate in g CO2/m2/day.
	PhotosyntheticRateMean float64 `json:"photosynthetic_rate_mean" yaml:"photosynthetic_rate_mean"`

	// PhotosyntheticRateSigma is the standard deviation of the rate draw.
	// Zero degenerates to a constant rate per trial.
	PhotosyntheticRateSigma float64 `json:"photosynthetic_rate_sigma" yaml:"photosynthetic_rate_sigma"`

	// DeviceEmissionMeanKg is the mean per-device annual emission in kg CO2e.
	DeviceEmissionMeanKg float64 `json:"device_emission_mean_kg" yaml:"device_emission_mean_kg"`

	// DeviceEmissionSigmaKg is the standard deviation of the per-device draw.
	DeviceEmissionSigmaKg float64 `json:"device_emission_sigma_kg" yaml:"device_emission_sigma_kg"`

	// RandomSeed seeds the trial generator. Identical parameters plus
	// identical seed reproduce identical samples.
	RandomSeed int64 `json:"random_seed" yaml:"random_seed"`
}

// DefaultParameters returns the baseline parameter set used when no
// configuration overrides are supplied.
func DefaultParameters() ScenarioParameters {
	return ScenarioParameters{
		Trials:                  1000,
		AreaM2:                  100.0,
		DeviceCount:             10,
		PlantCount:              12,
		LeafAreaIndex:           4.0,
		LightInterception:       0.7,
		PhotosyntheticRateMean:  2.0,
		PhotosyntheticRateSigma: 0.4,
		DeviceEmissionMeanKg:    constants.DefaultDeviceEmissionMeanKg,
		DeviceEmissionSigmaKg:   constants.DefaultDeviceEmissionSigmaKg,
		RandomSeed:              42,
	}
}

// Validate checks that the parameters are physically and numerically valid.
// It returns an *InvalidParameterError describing the first offending field.
func (p ScenarioParameters) Validate() error {
	if p.Trials < 1 {
		return &InvalidParameterError{Field: "trials", Value: float64(p.Trials), Reason: "must be at least 1"}
	}
	if p.AreaM2 <= 0 {
		return &InvalidParameterError{Field: "area_m2", Value: p.AreaM2, Reason: "must be positive"}
	}
	if p.DeviceCount < 0 {
		return &InvalidParameterError{Field: "device_count", Value: float64(p.DeviceCount), Reason: "must be non-negative"}
	}
	if p.PlantCount < 0 {
		return &InvalidParameterError{Field: "plant_count", Value: float64(p.PlantCount), Reason: "must be non-negative"}
	}
	if p.LeafAreaIndex <= 0 {
		return &InvalidParameterError{Field: "leaf_area_index", Value: p.LeafAreaIndex, Reason: "must be positive"}
	}
	if p.LightInterception < 0 || p.LightInterception > 1 {
		return &InvalidParameterError{Field: "light_interception", Value: p.LightInterception, Reason: "must be in [0,1]"}
	}
	if p.PhotosyntheticRateMean < 0 {
		return &InvalidParameterError{Field: "photosynthetic_rate_mean", Value: p.PhotosyntheticRateMean, Reason: "must be non-negative"}
	}
	if p.PhotosyntheticRateSigma < 0 {
		return &InvalidParameterError{Field: "photosynthetic_rate_sigma", Value: p.PhotosyntheticRateSigma, Reason: "must be non-negative"}
	}
	if p.DeviceEmissionMeanKg < 0 {
		return &InvalidParameterError{Field: "device_emission_mean_kg", Value: p.DeviceEmissionMeanKg, Reason: "must be non-negative"}
	}
	if p.DeviceEmissionSigmaKg < 0 {
		return &InvalidParameterError{Field: "device_emission_sigma_kg", Value: p.DeviceEmissionSigmaKg, Reason: "must be non-negative"}
	}
	return nil
}
