package bsdf

import (
	"math"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
	"github.com/JoeJoeTV/picture-perfector/pkg/sampler"
	"github.com/JoeJoeTV/picture-perfector/pkg/texture"
)

// Diffuse is a perfectly Lambertian material: evaluate returns
// albedo/pi*cosTheta, sample draws a cosine-weighted direction for which the
// albedo/pi and cos/pi terms cancel, leaving weight=albedo.
type Diffuse struct {
	Albedo texture.ColorSource
}

func NewDiffuse(albedo texture.ColorSource) *Diffuse { return &Diffuse{Albedo: albedo} }

func (d *Diffuse) Evaluate(uv [2]float64, woLocal, wiLocal core.Vec3) core.Vec3 {
	cosTheta := core.CosTheta(wiLocal)
	if cosTheta < 0 {
		return core.Zero
	}
	albedo := d.Albedo.Evaluate(uv, core.Zero)
	return albedo.Multiply(cosTheta / math.Pi)
}

func (d *Diffuse) Sample(uv [2]float64, woLocal core.Vec3, s core.Sampler) (core.ScatterSample, bool) {
	u1, u2 := s.Next2D()
	wi := sampler.CosineHemisphere(u1, u2)
	// Diffuse materials are two-sided: flip the sampled hemisphere to match
	// whichever side wo arrived from.
	if core.CosTheta(woLocal) < 0 {
		wi.Z = -wi.Z
	}
	albedo := d.Albedo.Evaluate(uv, core.Zero)
	return core.ScatterSample{WiLocal: wi, Weight: albedo}, true
}

func (d *Diffuse) IsDelta() bool { return false }

var _ core.Material = (*Diffuse)(nil)
