package sampler

import (
	"math"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
)

// UniformDisk maps a uniform [0,1)^2 sample to a uniform point on the unit
// disk (z=0) via Shirley's concentric mapping, avoiding rejection sampling.
func UniformDisk(u1, u2 float64) core.Vec3 {
	ox, oy := 2*u1-1, 2*u2-1
	if ox == 0 && oy == 0 {
		return core.Vec3{}
	}

	var theta, r float64
	if math.Abs(ox) > math.Abs(oy) {
		r = ox
		theta = math.Pi / 4 * (oy / ox)
	} else {
		r = oy
		theta = math.Pi/2 - math.Pi/4*(ox/oy)
	}
	return core.NewVec3(r*math.Cos(theta), r*math.Sin(theta), 0)
}

// UniformSphere maps a uniform [0,1)^2 sample to a uniform direction on the
// unit sphere.
func UniformSphere(u1, u2 float64) core.Vec3 {
	z := 1 - 2*u1
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * u2
	return core.NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// UniformSpherePDF is the constant density of UniformSphere, 1/(4*pi).
func UniformSpherePDF() float64 { return 1 / (4 * math.Pi) }

// UniformHemisphere maps a uniform [0,1)^2 sample to a uniform direction on
// the local +z hemisphere.
func UniformHemisphere(u1, u2 float64) core.Vec3 {
	z := u1
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * u2
	return core.NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// UniformHemispherePDF is the constant density of UniformHemisphere,
// 1/(2*pi).
func UniformHemispherePDF() float64 { return 1 / (2 * math.Pi) }

// CosineHemisphere maps a uniform [0,1)^2 sample to a cosine-weighted
// direction on the local +z hemisphere (z = cosTheta).
func CosineHemisphere(u1, u2 float64) core.Vec3 {
	d := UniformDisk(u1, u2)
	z := math.Sqrt(math.Max(0, 1-d.X*d.X-d.Y*d.Y))
	return core.NewVec3(d.X, d.Y, z)
}

// CosineHemispherePDF is the density of CosineHemisphere at local direction
// w: cosTheta(w)/pi.
func CosineHemispherePDF(wLocal core.Vec3) float64 {
	return math.Max(0, wLocal.Z) / math.Pi
}

// GGXSampleVNDF samples a visible micro-facet normal (in local shading
// space, where the macro-normal is +z) from the GGX distribution of visible
// normals given an outgoing direction wo and roughness alpha, following
// Heitz's 2017 "Sampling the GGX Distribution of Visible Normals".
func GGXSampleVNDF(wo core.Vec3, alpha, u1, u2 float64) core.Vec3 {
	// Transform wo to the hemisphere configuration (stretch by alpha).
	vh := core.NewVec3(alpha*wo.X, alpha*wo.Y, wo.Z).Normalize()

	// Build an orthonormal basis around vh.
	lensq := vh.X*vh.X + vh.Y*vh.Y
	var t1 core.Vec3
	if lensq > 0 {
		t1 = core.NewVec3(-vh.Y, vh.X, 0).Multiply(1 / math.Sqrt(lensq))
	} else {
		t1 = core.NewVec3(1, 0, 0)
	}
	t2 := vh.Cross(t1)

	// Sample a point on the disk, warped toward the visible hemisphere.
	r := math.Sqrt(u1)
	phi := 2 * math.Pi * u2
	p1 := r * math.Cos(phi)
	p2 := r * math.Sin(phi)
	s := 0.5 * (1 + vh.Z)
	p2 = (1-s)*math.Sqrt(math.Max(0, 1-p1*p1)) + s*p2

	nh := t1.Multiply(p1).Add(t2.Multiply(p2)).Add(vh.Multiply(math.Sqrt(math.Max(0, 1-p1*p1-p2*p2))))

	// Unstretch back to the ellipsoid configuration and renormalize.
	ne := core.NewVec3(alpha*nh.X, alpha*nh.Y, math.Max(1e-6, nh.Z))
	return ne.Normalize()
}

// GGXD evaluates the GGX normal-distribution function for a local
// half-vector m (macro-normal is +z) with roughness alpha.
func GGXD(alpha float64, m core.Vec3) float64 {
	cosTheta := core.AbsCosTheta(m)
	if cosTheta <= 0 {
		return 0
	}
	a2 := alpha * alpha
	cos2 := cosTheta * cosTheta
	denom := cos2*(a2-1) + 1
	return a2 / (math.Pi * denom * denom)
}

// SmithG1 evaluates the Smith masking term for direction w against a
// half-vector m, with roughness alpha.
func SmithG1(alpha float64, m, w core.Vec3) float64 {
	cosTheta := core.AbsCosTheta(w)
	if cosTheta <= 0 {
		return 0
	}
	if w.Dot(m) <= 0 {
		return 0
	}
	tan2 := (1 - cosTheta*cosTheta) / (cosTheta * cosTheta)
	return 2 / (1 + math.Sqrt(1+alpha*alpha*tan2))
}
