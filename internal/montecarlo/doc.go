// Package montecarlo implements the dual-scenario sampling core: per-trial
// random draws of plant CO2 uptake and device emissions, aggregation into
// descriptive statistics, and derivation of a perturbed second scenario.
//
// All randomness flows through explicitly seeded generators, so a parameter
// set (including its seed) reproduces identical raw samples on every run.
package montecarlo
