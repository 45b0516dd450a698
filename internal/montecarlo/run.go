package montecarlo

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ecoffset/greensim/internal/constants"
	"github.com/ecoffset/greensim/internal/stats"
)

// TrialSample is one Monte Carlo draw: annual sequestration in tonnes CO2,
// the fraction of device emissions it offsets, and the synthetic carbon
// credit yield in tonnes CO2e.
type TrialSample struct {
	Sequestration float64 `json:"sequestration"`
	OffsetRatio   float64 `json:"offset_ratio"`
	CreditYield   float64 `json:"credit_yield"`
}

// ScenarioResult holds the raw samples and per-metric summaries for one
// scenario. It is owned by the scenario that produced it; the report
// assembler only reads from it.
type ScenarioResult struct {
	Params        ScenarioParameters `json:"params"`
	Samples       []TrialSample      `json:"samples"`
	Sequestration stats.Summary      `json:"sequestration"`
	OffsetRatio   stats.Summary      `json:"offset_ratio"`
	CreditYield   stats.Summary      `json:"credit_yield"`
}

// SequestrationValues returns the sequestration metric as a flat slice,
// in trial order.
func (r *ScenarioResult) SequestrationValues() []float64 {
	vs := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		vs[i] = s.Sequestration
	}
	return vs
}

// OffsetValues returns the offset-ratio metric as a flat slice, in trial
// order. Entries may be NaN for zero-emission scenarios.
func (r *ScenarioResult) OffsetValues() []float64 {
	vs := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		vs[i] = s.OffsetRatio
	}
	return vs
}

// SummaryView is the JSON-friendly aggregate view of a result: parameters
// and per-metric summaries without the raw samples.
type SummaryView struct {
	Params        ScenarioParameters `json:"params"`
	Trials        int                `json:"trials"`
	Sequestration stats.Summary      `json:"sequestration"`
	OffsetRatio   stats.Summary      `json:"offset_ratio"`
	CreditYield   stats.Summary      `json:"credit_yield"`
}

// View returns the aggregate view of the result.
func (r *ScenarioResult) View() SummaryView {
	return SummaryView{
		Params:        r.Params,
		Trials:        len(r.Samples),
		Sequestration: r.Sequestration,
		OffsetRatio:   r.OffsetRatio,
		CreditYield:   r.CreditYield,
	}
}

// CreditValues returns the credit-yield metric as a flat slice, in trial order.
func (r *ScenarioResult) CreditValues() []float64 {
	vs := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		vs[i] = s.CreditYield
	}
	return vs
}

// Run executes one scenario: Trials independent draws followed by
// aggregation. The generator is seeded from RandomSeed before the first
// draw, so repeated calls with identical parameters are bit-for-bit
// reproducible. Run performs no I/O and shares no state between trials.
func Run(p ScenarioParameters) (*ScenarioResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	src := rand.NewSource(uint64(p.RandomSeed))
	deviceDist := distuv.Normal{Mu: p.DeviceEmissionMeanKg, Sigma: p.DeviceEmissionSigmaKg, Src: src}
	rateDist := distuv.Normal{Mu: p.PhotosyntheticRateMean, Sigma: p.PhotosyntheticRateSigma, Src: src}
	perfDist := distuv.Uniform{Min: constants.PerformanceFactorMin, Max: constants.PerformanceFactorMax, Src: src}
	uncertaintyDist := distuv.Uniform{Min: constants.UncertaintyRateMin, Max: constants.UncertaintyRateMax, Src: src}

	var areaPerPlant float64
	if p.PlantCount > 0 {
		areaPerPlant = p.AreaM2 / float64(p.PlantCount)
	}

	samples := make([]TrialSample, p.Trials)
	for i := range samples {
		// Device emissions: gaussian per device, clamped at zero, summed,
		// converted kg -> tonnes. Draw order is fixed for reproducibility.
		var emissionsKg float64
		for d := 0; d < p.DeviceCount; d++ {
			emissionsKg += clampZero(deviceDist.Rand())
		}
		emissionsTonnes := emissionsKg * constants.KgToTonnes

		// Plant uptake: normal photosynthetic rate clamped at zero, scaled
		// by LAI, light interception and the per-plant share of the area,
		// annualized and converted g -> tonnes.
		var annualTonnes float64
		for q := 0; q < p.PlantCount; q++ {
			rate := clampZero(rateDist.Rand())
			dailyGrams := rate * p.LeafAreaIndex * p.LightInterception * areaPerPlant
			annualTonnes += dailyGrams * constants.DaysPerYear * constants.GramsToTonnes
		}

		// Offset ratio is undefined without device emissions; the NaN
		// sentinel is surfaced in the output tables rather than aborting.
		offset := math.NaN()
		if emissionsTonnes > 0 {
			offset = annualTonnes / emissionsTonnes
		}

		perf := perfDist.Rand()
		uncertainty := uncertaintyDist.Rand()

		samples[i] = TrialSample{
			Sequestration: annualTonnes,
			OffsetRatio:   offset,
			CreditYield:   annualTonnes * perf * (1 - uncertainty),
		}
	}

	return NewResult(p, samples), nil
}

// NewResult wraps raw samples with their descriptive statistics. Only the
// set of samples matters for the summaries, not their order.
func NewResult(p ScenarioParameters, samples []TrialSample) *ScenarioResult {
	res := &ScenarioResult{
		Params:  p,
		Samples: samples,
	}
	res.Sequestration = stats.Summarize(res.SequestrationValues())
	res.OffsetRatio = stats.Summarize(res.OffsetValues())
	res.CreditYield = stats.Summarize(res.CreditValues())
	return res
}

func clampZero(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}
