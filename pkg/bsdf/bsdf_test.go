package bsdf

import (
	"math"
	"testing"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
	"github.com/JoeJoeTV/picture-perfector/pkg/sampler"
	"github.com/JoeJoeTV/picture-perfector/pkg/texture"
)

func TestDiffuse_EnergyConservation(t *testing.T) {
	d := NewDiffuse(texture.NewConstant(core.NewVec3(0.8, 0.8, 0.8)))
	s := sampler.NewRandomSampler(1)
	s.Seed([2]int{0, 0}, 0)

	wo := core.NewVec3(0, 0, 1)
	for i := 0; i < 100; i++ {
		sample, ok := d.Sample([2]float64{}, wo, s)
		if !ok {
			t.Fatalf("diffuse sample rejected unexpectedly")
		}
		if got := sample.Weight.MaxComponent(); got > 1+1e-9 {
			t.Errorf("sample %d: weight.max = %v, want <= 1", i, got)
		}
	}
}

func TestDiffuse_EvaluateMatchesWeightInExpectation(t *testing.T) {
	albedo := core.NewVec3(0.6, 0.5, 0.4)
	d := NewDiffuse(texture.NewConstant(albedo))
	s := sampler.NewRandomSampler(2)
	s.Seed([2]int{0, 0}, 0)

	wo := core.NewVec3(0, 0, 1)
	const n = 4000
	sum := core.Zero
	for i := 0; i < n; i++ {
		sample, ok := d.Sample([2]float64{}, wo, s)
		if !ok {
			continue
		}
		pdf := sampler.CosineHemispherePDF(sample.WiLocal)
		eval := d.Evaluate([2]float64{}, wo, sample.WiLocal)
		// sample.Weight should equal eval/pdf for every draw (diffuse's
		// sampling and evaluation are perfectly matched, so this holds
		// exactly rather than just in expectation).
		want := eval.Multiply(1 / pdf)
		sum = sum.Add(want.Subtract(sample.Weight))
	}
	avgErr := sum.Multiply(1.0 / n).Length()
	if avgErr > 1e-6 {
		t.Errorf("average |eval/pdf - weight| = %v, want ~0", avgErr)
	}
}

func TestConductor_IsDeltaAndMirrors(t *testing.T) {
	c := NewConductor(texture.NewConstant(core.One))
	if !c.IsDelta() {
		t.Errorf("Conductor.IsDelta() = false, want true")
	}
	s := sampler.NewRandomSampler(3)
	s.Seed([2]int{0, 0}, 0)

	wo := core.NewVec3(0.3, 0.1, 0.95).Normalize()
	sample, ok := c.Sample([2]float64{}, wo, s)
	if !ok {
		t.Fatalf("conductor sample rejected")
	}
	if math.Abs(sample.WiLocal.X+wo.X) > 1e-9 || math.Abs(sample.WiLocal.Y+wo.Y) > 1e-9 || math.Abs(sample.WiLocal.Z-wo.Z) > 1e-9 {
		t.Errorf("mirror reflection %v, want (%v,%v,%v)", sample.WiLocal, -wo.X, -wo.Y, wo.Z)
	}
}

func TestDielectric_NormalIncidenceTransmitsMostly(t *testing.T) {
	d := NewDielectric(1.5, texture.NewConstant(core.One), texture.NewConstant(core.One))
	s := sampler.NewRandomSampler(4)
	s.Seed([2]int{0, 0}, 0)

	refractCount := 0
	const n = 2000
	for i := 0; i < n; i++ {
		sample, ok := d.Sample([2]float64{}, core.NewVec3(0, 0, 1), s)
		if ok && sample.WiLocal.Z < 0 {
			refractCount++
		}
	}
	// Fresnel reflectance at normal incidence for ior=1.5 is ~4%, so the
	// large majority of samples should refract through.
	if frac := float64(refractCount) / n; frac < 0.85 {
		t.Errorf("refracted fraction at normal incidence = %v, want > 0.85", frac)
	}
}

func TestRoughConductor_SampleStaysAboveHorizon(t *testing.T) {
	rc := NewRoughConductor(texture.NewConstant(core.NewVec3(0.3, 0.3, 0.3)), texture.NewConstant(core.One))
	s := sampler.NewRandomSampler(5)
	s.Seed([2]int{0, 0}, 0)

	wo := core.NewVec3(0.2, 0.1, 0.97).Normalize()
	for i := 0; i < 500; i++ {
		sample, ok := rc.Sample([2]float64{}, wo, s)
		if !ok {
			continue
		}
		if core.CosTheta(sample.WiLocal) < -1e-9 {
			t.Fatalf("sampled direction below horizon: %v", sample.WiLocal)
		}
		if got := sample.Weight.MaxComponent(); got > 1+1e-6 {
			t.Errorf("weight.max = %v, want <= 1", got)
		}
	}
}

func TestPrincipled_DiffuseLimitMatchesDiffuseWeightScale(t *testing.T) {
	p := NewPrincipled(
		texture.NewConstant(core.NewVec3(0.8, 0.2, 0.2)),
		texture.NewConstant(core.NewVec3(1, 1, 1)),
		texture.NewConstant(core.Zero), // metallic = 0
		texture.NewConstant(core.Zero), // specular = 0
	)
	s := sampler.NewRandomSampler(6)
	s.Seed([2]int{0, 0}, 0)

	wo := core.NewVec3(0, 0, 1)
	for i := 0; i < 50; i++ {
		sample, ok := p.Sample([2]float64{}, wo, s)
		if !ok {
			continue
		}
		if got := sample.Weight.MaxComponent(); got > 1+1e-6 {
			t.Errorf("weight.max = %v, want <= 1 for a pure-diffuse config", got)
		}
	}
}
