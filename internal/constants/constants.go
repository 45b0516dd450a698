// Package constants provides named constants used throughout the greensim codebase.
// This centralizes the fixed model coefficients so the sampling formula reads
// without magic numbers.
package constants

// Sequestration model constants
const (
	// DaysPerYear annualizes the per-day plant CO2 uptake.
	DaysPerYear = 365.0

	// GramsToTonnes converts daily uptake in grams to tonnes.
	GramsToTonnes = 1e-6

	// KgToTonnes converts per-device emissions in kilograms to tonnes.
	KgToTonnes = 1e-3
)

// Carbon credit yield constants. Each trial draws a performance factor and an
// uncertainty rate uniformly from these ranges; the credit yield is
// sequestration * factor * (1 - uncertainty).
const (
	// PerformanceFactorMin is the lower bound of the verified-performance draw.
	PerformanceFactorMin = 0.75

	// PerformanceFactorMax is the upper bound of the verified-performance draw.
	PerformanceFactorMax = 0.90

	// UncertaintyRateMin is the lower bound of the uncertainty-rate draw.
	UncertaintyRateMin = 0.03

	// UncertaintyRateMax is the upper bound of the uncertainty-rate draw.
	UncertaintyRateMax = 0.09
)

// Scenario derivation constants
const (
	// PerturbationMin is the lower bound of the per-field scaling factor
	// applied when deriving scenario 2 from scenario 1.
	PerturbationMin = 0.8

	// PerturbationMax is the upper bound of the per-field scaling factor.
	PerturbationMax = 1.2
)

// Default device emission parameters, used when a configuration does not
// override them. A typical office device emits about 2 kg CO2-equivalent per
// year with modest spread.
const (
	DefaultDeviceEmissionMeanKg  = 2.0
	DefaultDeviceEmissionSigmaKg = 0.2
)
