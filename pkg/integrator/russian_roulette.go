package integrator

import "github.com/JoeJoeTV/picture-perfector/pkg/core"

// applyRussianRoulette decides whether a path should be stochastically
// terminated once it has taken at least cfg.RussianRouletteMinBounces
// bounces, provided the scene's overall sampling budget
// (cfg.SamplesPerPixel) meets cfg.RussianRouletteMinSamples — a cheap
// scene is rendered to completion without paying roulette's variance cost.
// Survival probability tracks the throughput's luminance, clamped to
// [0.5, 0.95] so compensation never exceeds 2x.
func applyRussianRoulette(bounce int, throughput core.Vec3, cfg core.SamplingConfig, smp core.Sampler) (terminate bool, compensation float64) {
	if bounce < cfg.RussianRouletteMinBounces || cfg.SamplesPerPixel < cfg.RussianRouletteMinSamples {
		return false, 1.0
	}

	survivalProb := throughput.Luminance()
	if survivalProb < 0.5 {
		survivalProb = 0.5
	}
	if survivalProb > 0.95 {
		survivalProb = 0.95
	}

	if smp.Next() > survivalProb {
		return true, 0.0
	}
	return false, 1.0 / survivalProb
}
