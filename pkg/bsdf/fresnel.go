// Package bsdf implements the scattering-function contract (component F):
// evaluate returns f*|cosTheta|, sample returns an incident direction and a
// weight f*|cosTheta|/pdf, both expressed in the local shading frame where
// wo points away from the surface.
package bsdf

import (
	"math"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
)

// FresnelDielectric evaluates the unpolarized Fresnel reflectance for a
// dielectric interface given the signed cosine of the incident angle
// (positive means the ray is on the etaI side) and the ior of each side.
func FresnelDielectric(cosThetaI, etaI, etaT float64) float64 {
	c := cosThetaI
	if c <= 0 {
		etaI, etaT = etaT, etaI
		c = -c
	}

	sinThetaI := math.Sqrt(math.Max(0, 1-c*c))
	sinThetaT := etaI / etaT * sinThetaI
	if sinThetaT >= 1 {
		return 1 // total internal reflection
	}

	cosThetaT := math.Sqrt(math.Max(0, 1-sinThetaT*sinThetaT))
	rParl := (etaT*c - etaI*cosThetaT) / (etaT*c + etaI*cosThetaT)
	rPerp := (etaI*c - etaT*cosThetaT) / (etaI*c + etaT*cosThetaT)
	return 0.5 * (rParl*rParl + rPerp*rPerp)
}

// SchlickFresnel0 returns the normal-incidence reflectance implied by an IOR
// pair, usable as the f0 argument to SchlickFresnel.
func SchlickFresnel0(ior float64) float64 {
	r := (ior - 1) / (ior + 1)
	return r * r
}

// SchlickFresnel is the Schlick approximation to Fresnel reflectance, used
// by the principled BSDF's specular lobe.
func SchlickFresnel(f0, cosTheta float64) float64 {
	c := math.Max(0, 1-cosTheta)
	c2 := c * c
	return f0 + (1-f0)*c2*c2*c
}

// Reflect mirrors wo about local normal n (both expressed in the same
// space; n need not be the macro-normal — the rough conductor reflects
// about the sampled micro-normal).
func Reflect(wo, n core.Vec3) core.Vec3 {
	return n.Multiply(2 * wo.Dot(n)).Subtract(wo)
}

// Refract computes the refracted direction for incident direction wo
// (pointing away from the surface, in the local shading frame where
// (0,0,1) is the macro-normal) given relative IOR eta = ior_incident /
// ior_transmitted. ok is false under total internal reflection.
func Refract(wo core.Vec3, eta float64) (wi core.Vec3, ok bool) {
	n := core.NewVec3(0, 0, 1)
	if core.CosTheta(wo) < 0 {
		n = core.NewVec3(0, 0, -1)
	}
	cosThetaI := wo.Dot(n)

	sin2ThetaI := math.Max(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := eta * eta * sin2ThetaI
	if sin2ThetaT >= 1 {
		return core.Vec3{}, false
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)

	wi = n.Multiply(eta*cosThetaI - cosThetaT).Subtract(wo.Multiply(eta))
	return wi.Normalize(), true
}
