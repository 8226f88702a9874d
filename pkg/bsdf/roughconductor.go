package bsdf

import (
	"math"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
	"github.com/JoeJoeTV/picture-perfector/pkg/sampler"
	"github.com/JoeJoeTV/picture-perfector/pkg/texture"
)

// RoughConductor is a micro-facet conductor using the GGX normal
// distribution and the Smith masking-shadowing function.
type RoughConductor struct {
	Roughness   texture.ColorSource // luminance of the evaluated color is used as the scalar roughness
	Reflectance texture.ColorSource
}

func NewRoughConductor(roughness, reflectance texture.ColorSource) *RoughConductor {
	return &RoughConductor{Roughness: roughness, Reflectance: reflectance}
}

func alphaFromRoughness(roughness float64) float64 {
	return math.Max(1e-3, roughness*roughness)
}

func (r *RoughConductor) alpha(uv [2]float64) float64 {
	return alphaFromRoughness(r.Roughness.Evaluate(uv, core.Zero).Luminance())
}

func (r *RoughConductor) Evaluate(uv [2]float64, woLocal, wiLocal core.Vec3) core.Vec3 {
	cosO := core.CosTheta(woLocal)
	cosI := core.CosTheta(wiLocal)
	if cosO <= 0 || cosI <= 0 {
		return core.Zero
	}
	n := woLocal.Add(wiLocal).Normalize()
	alpha := r.alpha(uv)

	d := sampler.GGXD(alpha, n)
	g := sampler.SmithG1(alpha, n, woLocal) * sampler.SmithG1(alpha, n, wiLocal)
	value := d * g / (4 * cosO * cosI)

	reflectance := r.Reflectance.Evaluate(uv, core.Zero)
	return reflectance.Multiply(value * cosI)
}

func (r *RoughConductor) Sample(uv [2]float64, woLocal core.Vec3, s core.Sampler) (core.ScatterSample, bool) {
	alpha := r.alpha(uv)
	u1, u2 := s.Next2D()
	n := sampler.GGXSampleVNDF(woLocal, alpha, u1, u2)
	wi := Reflect(woLocal, n)
	if core.CosTheta(wi) <= 0 {
		return core.ScatterSample{}, false
	}

	g1 := sampler.SmithG1(alpha, n, wi)
	reflectance := r.Reflectance.Evaluate(uv, core.Zero)
	// The remaining micro-facet terms (D, the other G1 factor, and
	// cosTheta(wi)) cancel against the VNDF sampling pdf, leaving only the
	// masking term for wi.
	weight := reflectance.Multiply(g1)
	return core.ScatterSample{WiLocal: wi, Weight: weight}, true
}

func (r *RoughConductor) IsDelta() bool { return false }

var _ core.Material = (*RoughConductor)(nil)
