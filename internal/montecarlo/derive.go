package montecarlo

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ecoffset/greensim/internal/constants"
)

// DeriveScenarioTwo builds the second scenario from the first by scaling
// each numeric field with an independent uniform factor in
// [PerturbationMin, PerturbationMax]. The derivation generator is seeded
// with base.RandomSeed+1, so the derived scenario is itself reproducible.
//
// Policy for non-real fields: Trials is held fixed so the two scenarios stay
// comparable; the derived RandomSeed is base.RandomSeed+1; integer counts
// are rounded and then clamped back into the perturbation window.
func DeriveScenarioTwo(base ScenarioParameters) (ScenarioParameters, error) {
	if err := base.Validate(); err != nil {
		return ScenarioParameters{}, err
	}

	src := rand.NewSource(uint64(base.RandomSeed + 1))
	factor := distuv.Uniform{Min: constants.PerturbationMin, Max: constants.PerturbationMax, Src: src}

	d := base
	d.AreaM2 = base.AreaM2 * factor.Rand()
	d.DeviceCount = perturbCount(base.DeviceCount, factor.Rand())
	d.PlantCount = perturbCount(base.PlantCount, factor.Rand())
	d.LeafAreaIndex = base.LeafAreaIndex * factor.Rand()
	// Light interception stays a physical fraction.
	d.LightInterception = math.Min(1.0, base.LightInterception*factor.Rand())
	d.PhotosyntheticRateMean = base.PhotosyntheticRateMean * factor.Rand()
	d.PhotosyntheticRateSigma = base.PhotosyntheticRateSigma * factor.Rand()
	d.DeviceEmissionMeanKg = base.DeviceEmissionMeanKg * factor.Rand()
	d.DeviceEmissionSigmaKg = base.DeviceEmissionSigmaKg * factor.Rand()
	d.RandomSeed = base.RandomSeed + 1
	return d, nil
}

// perturbCount scales an integer count and clamps the rounded result back
// into the [PerturbationMin*n, PerturbationMax*n] window. Counts too small
// for the window to contain another integer are returned unchanged.
func perturbCount(n int, factor float64) int {
	if n == 0 {
		return 0
	}
	lo := int(math.Ceil(float64(n) * constants.PerturbationMin))
	hi := int(math.Floor(float64(n) * constants.PerturbationMax))
	if lo > hi {
		return n
	}
	scaled := int(math.Round(float64(n) * factor))
	if scaled < lo {
		return lo
	}
	if scaled > hi {
		return hi
	}
	return scaled
}
