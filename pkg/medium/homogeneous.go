// Package medium implements the participating-medium contract (component
// I): transmittance, distance sampling, and phase sampling for a homogeneous
// absorbing+scattering volume.
package medium

import (
	"math"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
	"github.com/JoeJoeTV/picture-perfector/pkg/sampler"
)

// Homogeneous is a spatially-constant absorbing+scattering medium with an
// isotropic phase function. SigmaA and SigmaS are exposed independently
// (rather than only their sum) so that a medium's scattering fraction is
// fully plumbed through distance and phase sampling, per this codebase's
// fix for the scattering coefficient not being separately reachable in the
// model it's descended from.
type Homogeneous struct {
	Absorption core.Vec3 // sigma_a
	Scattering core.Vec3 // sigma_s
}

func NewHomogeneous(sigmaA, sigmaS core.Vec3) *Homogeneous {
	return &Homogeneous{Absorption: sigmaA, Scattering: sigmaS}
}

// SigmaT is the extinction coefficient, absorption plus scattering.
func (m *Homogeneous) SigmaT() core.Vec3 {
	return m.Absorption.Add(m.Scattering)
}

// sigmaTScalar reduces the (possibly tinted) extinction coefficient to the
// scalar used for distance sampling, via its mean — the standard
// single-channel-majorant simplification for a non-spectral renderer.
func (m *Homogeneous) sigmaTScalar() float64 { return m.SigmaT().Mean() }

func (m *Homogeneous) Tr(ray core.Ray, t float64, s core.Sampler) core.Vec3 {
	dist := ray.Direction.Multiply(t).Length()
	sigmaT := m.SigmaT()
	return core.NewVec3(
		math.Exp(-sigmaT.X*dist),
		math.Exp(-sigmaT.Y*dist),
		math.Exp(-sigmaT.Z*dist),
	)
}

func (m *Homogeneous) SampleHitDistance(ray core.Ray, s core.Sampler) (float64, bool) {
	sigmaT := m.sigmaTScalar()
	if sigmaT <= 0 {
		return math.Inf(1), false
	}
	u := s.Next()
	t := -math.Log(1-u) / sigmaT
	return t, true
}

func (m *Homogeneous) PhaseSample(woLocal core.Vec3, s core.Sampler) core.Vec3 {
	u1, u2 := s.Next2D()
	return sampler.UniformSphere(u1, u2)
}

func (m *Homogeneous) ProbOfSamplingBeforeT(t float64) float64 {
	return math.Exp(-m.sigmaTScalar() * t)
}

func (m *Homogeneous) ProbOfSamplingThisPoint(t float64) float64 {
	sigmaT := m.sigmaTScalar()
	return sigmaT * math.Exp(-sigmaT*t)
}

func (m *Homogeneous) SigmaS() core.Vec3 { return m.Scattering }

var _ core.Medium = (*Homogeneous)(nil)
