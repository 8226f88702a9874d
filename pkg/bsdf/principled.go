package bsdf

import (
	"math"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
	"github.com/JoeJoeTV/picture-perfector/pkg/sampler"
	"github.com/JoeJoeTV/picture-perfector/pkg/texture"
)

// Principled is a two-lobe mixture of a diffuse lobe and a metallic GGX
// lobe, blended by an approximate Schlick Fresnel term and the metallic
// parameter. A single random choice selects a lobe with probability
// proportional to its mean reflectance; the chosen lobe's weight is divided
// by that selection probability so the estimator stays unbiased.
type Principled struct {
	BaseColor texture.ColorSource
	Roughness texture.ColorSource
	Metallic  texture.ColorSource
	Specular  texture.ColorSource
}

func NewPrincipled(baseColor, roughness, metallic, specular texture.ColorSource) *Principled {
	return &Principled{BaseColor: baseColor, Roughness: roughness, Metallic: metallic, Specular: specular}
}

type principledLobes struct {
	diffuseColor  core.Vec3
	metallicColor core.Vec3
	alpha         float64
	diffuseProb   float64
}

func (p *Principled) combine(uv [2]float64, woLocal core.Vec3) principledLobes {
	baseColor := p.BaseColor.Evaluate(uv, core.Zero)
	roughness := p.Roughness.Evaluate(uv, core.Zero).Luminance()
	metallic := p.Metallic.Evaluate(uv, core.Zero).Luminance()
	specular := p.Specular.Evaluate(uv, core.Zero).Luminance()

	alpha := alphaFromRoughness(roughness)
	f0 := specular * SchlickFresnel0(1.5) * (1 - metallic) // a neutral dielectric base, scaled by the specular control
	f := SchlickFresnel(f0, core.AbsCosTheta(woLocal))

	diffuseColor := baseColor.Multiply((1 - f) * (1 - metallic))
	metallicColor := baseColor.Multiply(metallic).Add(core.One.Multiply(f)).Multiply(0.5)

	dm, mm := diffuseColor.Mean(), metallicColor.Mean()
	diffuseProb := 0.5
	if dm+mm > 0 {
		diffuseProb = dm / (dm + mm)
	}

	return principledLobes{diffuseColor: diffuseColor, metallicColor: metallicColor, alpha: alpha, diffuseProb: diffuseProb}
}

func (p *Principled) Evaluate(uv [2]float64, woLocal, wiLocal core.Vec3) core.Vec3 {
	lobes := p.combine(uv, woLocal)

	cosI := core.CosTheta(wiLocal)
	var diffuse core.Vec3
	if cosI > 0 {
		diffuse = lobes.diffuseColor.Multiply(cosI / math.Pi)
	}

	var metallic core.Vec3
	cosO := core.CosTheta(woLocal)
	if cosO > 0 && cosI > 0 {
		n := woLocal.Add(wiLocal).Normalize()
		d := sampler.GGXD(lobes.alpha, n)
		g := sampler.SmithG1(lobes.alpha, n, woLocal) * sampler.SmithG1(lobes.alpha, n, wiLocal)
		metallic = lobes.metallicColor.Multiply(d * g / (4 * cosO * cosI) * cosI)
	}

	return diffuse.Add(metallic)
}

func (p *Principled) Sample(uv [2]float64, woLocal core.Vec3, s core.Sampler) (core.ScatterSample, bool) {
	lobes := p.combine(uv, woLocal)

	if s.Next() < lobes.diffuseProb {
		u1, u2 := s.Next2D()
		wi := sampler.CosineHemisphere(u1, u2)
		if core.CosTheta(woLocal) < 0 {
			wi.Z = -wi.Z
		}
		weight := lobes.diffuseColor.Multiply(1 / lobes.diffuseProb)
		return core.ScatterSample{WiLocal: wi, Weight: weight}, true
	}

	u1, u2 := s.Next2D()
	n := sampler.GGXSampleVNDF(woLocal, lobes.alpha, u1, u2)
	wi := Reflect(woLocal, n)
	if core.CosTheta(wi) <= 0 {
		return core.ScatterSample{}, false
	}
	g1 := sampler.SmithG1(lobes.alpha, n, wi)
	selectionProb := 1 - lobes.diffuseProb
	weight := lobes.metallicColor.Multiply(g1 / selectionProb)
	return core.ScatterSample{WiLocal: wi, Weight: weight}, true
}

func (p *Principled) IsDelta() bool { return false }

var _ core.Material = (*Principled)(nil)
