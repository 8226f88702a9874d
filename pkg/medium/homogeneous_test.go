package medium

import (
	"math"
	"testing"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
	"github.com/JoeJoeTV/picture-perfector/pkg/sampler"
)

func TestHomogeneous_Transmittance(t *testing.T) {
	m := NewHomogeneous(core.NewVec3(1, 1, 1), core.Zero)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	tr := m.Tr(ray, 2, nil)
	want := math.Exp(-2)
	if math.Abs(tr.X-want) > 1e-9 {
		t.Errorf("Tr = %v, want %v", tr.X, want)
	}
}

func TestHomogeneous_SampleHitDistanceMatchesMean(t *testing.T) {
	m := NewHomogeneous(core.Zero, core.NewVec3(2, 2, 2))
	s := sampler.NewRandomSampler(9)
	s.Seed([2]int{0, 0}, 0)
	ray := core.NewRay(core.Zero, core.NewVec3(0, 0, 1))

	const n = 20000
	sum := 0.0
	for i := 0; i < n; i++ {
		t, ok := m.SampleHitDistance(ray, s)
		if !ok {
			continue
		}
		sum += t
	}
	mean := sum / n
	want := 1.0 / 2.0 // mean of an exponential distribution with rate sigma_t=2
	if math.Abs(mean-want) > 0.05 {
		t.Errorf("mean sampled distance = %v, want ~%v", mean, want)
	}
}

func TestHomogeneous_ProbabilityFunctionsAgree(t *testing.T) {
	m := NewHomogeneous(core.NewVec3(0.5, 0.5, 0.5), core.NewVec3(0.5, 0.5, 0.5))
	tVal := 1.3
	before := m.ProbOfSamplingBeforeT(tVal)
	density := m.ProbOfSamplingThisPoint(tVal)
	want := math.Exp(-1 * tVal)
	if math.Abs(before-want) > 1e-9 {
		t.Errorf("ProbOfSamplingBeforeT = %v, want %v", before, want)
	}
	wantDensity := 1 * math.Exp(-1*tVal)
	if math.Abs(density-wantDensity) > 1e-9 {
		t.Errorf("ProbOfSamplingThisPoint = %v, want %v", density, wantDensity)
	}
}

func TestHomogeneous_SigmaSExposedExplicitly(t *testing.T) {
	sigmaS := core.NewVec3(0.3, 0.1, 0.2)
	m := NewHomogeneous(core.NewVec3(0.1, 0.1, 0.1), sigmaS)
	if got := m.SigmaS(); got != sigmaS {
		t.Errorf("SigmaS() = %v, want %v", got, sigmaS)
	}
}
