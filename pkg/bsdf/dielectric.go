package bsdf

import (
	"github.com/JoeJoeTV/picture-perfector/pkg/core"
	"github.com/JoeJoeTV/picture-perfector/pkg/texture"
)

// Dielectric is a perfectly smooth glass-like interface: a Dirac lobe split
// stochastically between reflection and refraction by the Fresnel term.
// Evaluate is always zero. On refraction the weight is additionally scaled
// by 1/eta^2, where eta = etaI/etaT is the ior on wo's side over the ior on
// the far side.
type Dielectric struct {
	IOR           float64
	Reflectance   texture.ColorSource
	Transmittance texture.ColorSource
}

func NewDielectric(ior float64, reflectance, transmittance texture.ColorSource) *Dielectric {
	return &Dielectric{IOR: ior, Reflectance: reflectance, Transmittance: transmittance}
}

func (d *Dielectric) Evaluate(uv [2]float64, woLocal, wiLocal core.Vec3) core.Vec3 {
	return core.Zero
}

func (d *Dielectric) Sample(uv [2]float64, woLocal core.Vec3, s core.Sampler) (core.ScatterSample, bool) {
	entering := core.CosTheta(woLocal) >= 0
	etaI, etaT := 1.0, d.IOR
	if !entering {
		etaI, etaT = d.IOR, 1.0
	}

	// FresnelDielectric orients the interface itself from the cosine's sign.
	fr := FresnelDielectric(core.CosTheta(woLocal), 1.0, d.IOR)

	if s.Next() < fr {
		wi := Reflect(woLocal, core.NewVec3(0, 0, 1))
		weight := d.Reflectance.Evaluate(uv, core.Zero)
		return core.ScatterSample{WiLocal: wi, Weight: weight}, true
	}

	eta := etaI / etaT
	wi, ok := Refract(woLocal, eta)
	if !ok {
		// Total internal reflection degenerates the refraction branch into
		// a reflection; treat it as an invalid sample (absorbed) instead of
		// silently reflecting, since the Fresnel term above already routed
		// virtually all TIR energy into the reflect branch.
		return core.ScatterSample{}, false
	}
	weight := d.Transmittance.Evaluate(uv, core.Zero).Multiply(1 / (eta * eta))
	return core.ScatterSample{WiLocal: wi, Weight: weight}, true
}

func (d *Dielectric) IsDelta() bool { return true }

var _ core.Material = (*Dielectric)(nil)
