package sampler

import (
	"math"
	"testing"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
)

func TestRandomSampler_SeedIsDeterministic(t *testing.T) {
	a := NewRandomSampler(42)
	b := NewRandomSampler(42)

	a.Seed([2]int{3, 7}, 2)
	b.Seed([2]int{3, 7}, 2)

	for i := 0; i < 8; i++ {
		av := a.Next()
		bv := b.Next()
		if av != bv {
			t.Fatalf("draw %d diverged: %v vs %v", i, av, bv)
		}
	}
}

func TestRandomSampler_DifferentPixelsDiffer(t *testing.T) {
	a := NewRandomSampler(42)
	b := NewRandomSampler(42)

	a.Seed([2]int{0, 0}, 0)
	b.Seed([2]int{1, 0}, 0)

	if a.Next() == b.Next() {
		t.Errorf("distinct pixels produced the same first draw")
	}
}

func TestCosineHemisphere_StaysInUpperHemisphereAndMatchesPDF(t *testing.T) {
	const n = 2000
	s := NewRandomSampler(7)
	s.Seed([2]int{0, 0}, 0)

	for i := 0; i < n; i++ {
		u1, u2 := s.Next(), s.Next()
		w := CosineHemisphere(u1, u2)
		if w.Z < 0 {
			t.Fatalf("CosineHemisphere produced a below-horizon direction: %v", w)
		}
		if math.Abs(w.Length()-1) > 1e-9 {
			t.Fatalf("CosineHemisphere direction not unit length: %v", w)
		}
		if got := CosineHemispherePDF(w); got <= 0 {
			t.Fatalf("CosineHemispherePDF(%v) = %v, want > 0", w, got)
		}
	}
}

func TestUniformSphere_UnitLength(t *testing.T) {
	s := NewRandomSampler(11)
	s.Seed([2]int{0, 0}, 0)
	for i := 0; i < 100; i++ {
		u1, u2 := s.Next(), s.Next()
		w := UniformSphere(u1, u2)
		if math.Abs(w.Length()-1) > 1e-9 {
			t.Fatalf("UniformSphere not unit length: %v", w)
		}
	}
}

func TestGGXSampleVNDF_ReturnsUpperHemisphereNormal(t *testing.T) {
	s := NewRandomSampler(5)
	s.Seed([2]int{0, 0}, 0)
	wo := core.NewVec3(0.3, 0.1, 0.94).Normalize()

	for i := 0; i < 200; i++ {
		u1, u2 := s.Next(), s.Next()
		m := GGXSampleVNDF(wo, 0.4, u1, u2)
		if m.Z < 0 {
			t.Fatalf("sampled micro-normal below the macro-surface: %v", m)
		}
		if math.Abs(m.Length()-1) > 1e-6 {
			t.Fatalf("sampled micro-normal not unit length: %v", m)
		}
	}
}
