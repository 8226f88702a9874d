// Package light implements component G: direct-illumination sampling for
// point, directional, area, and environment-map lights. Every light returns
// a DirectSample whose Weight already folds in every geometric and pdf term
// needed so that Weight*bsdf(wi) with an implicit pdf of 1 is the unbiased
// contribution, per the shared core.Light contract.
package light

import (
	"math"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
	"github.com/JoeJoeTV/picture-perfector/pkg/texture"
)

// Point is an isotropic point light of the given radiant power.
type Point struct {
	Position core.Vec3
	Power    core.Vec3
}

func NewPoint(position, power core.Vec3) *Point { return &Point{Position: position, Power: power} }

func (p *Point) SampleDirect(origin core.Vec3, smp core.Sampler) core.DirectSample {
	d := p.Position.Subtract(origin)
	dist := d.Length()
	if dist == 0 {
		return core.DirectSample{Weight: core.Zero, Distance: 0}
	}
	wi := d.Multiply(1 / dist)
	weight := p.Power.Multiply(1 / (4 * math.Pi * dist * dist))
	return core.DirectSample{Wi: wi, Weight: weight, Distance: dist}
}

func (p *Point) CanBeIntersected() bool { return false }

// Directional is a light at infinity shining along a fixed direction with
// constant intensity.
type Directional struct {
	Direction core.Vec3 // direction the light travels
	Intensity core.Vec3
}

func NewDirectional(direction, intensity core.Vec3) *Directional {
	return &Directional{Direction: direction.Normalize(), Intensity: intensity}
}

func (d *Directional) SampleDirect(origin core.Vec3, smp core.Sampler) core.DirectSample {
	return core.DirectSample{
		Wi:       d.Direction.Negate(),
		Weight:   d.Intensity,
		Distance: math.Inf(1),
	}
}

func (d *Directional) CanBeIntersected() bool { return false }

// areaInstance is the narrow surface contract an Area light needs from the
// instance it samples: a point on the surface plus its emission profile.
type areaInstance interface {
	SampleArea(sampler core.Sampler) core.AreaSample
	Emission() core.Emitter
	CanBeIntersected() bool
}

// Area samples a point on an emissive instance's surface for direct
// illumination.
type Area struct {
	Instance areaInstance
}

func NewArea(instance areaInstance) *Area { return &Area{Instance: instance} }

func (a *Area) SampleDirect(origin core.Vec3, smp core.Sampler) core.DirectSample {
	sample := a.Instance.SampleArea(smp)
	toLight := sample.Position.Subtract(origin)
	dist := toLight.Length()
	if dist == 0 || sample.Area <= 0 {
		return core.DirectSample{Weight: core.Zero, Distance: 0}
	}
	wi := toLight.Multiply(1 / dist)

	woLocalAtLight := sample.Frame.ToLocal(wi.Negate())
	emitter := a.Instance.Emission()
	if emitter == nil {
		return core.DirectSample{Weight: core.Zero, Distance: dist}
	}
	radiance := emitter.Evaluate(sample.UV, woLocalAtLight)
	cosThetaS := math.Abs(core.CosTheta(woLocalAtLight))

	area := sample.Area
	// weight = emission * |cosTheta_s| * area / d^2, the solid-angle Jacobian
	// for converting an area-measure sample into a direct-lighting estimator
	// with an implicit pdf of 1.
	weight := radiance.Multiply(cosThetaS * area / (dist * dist))
	return core.DirectSample{Wi: wi, Weight: weight, Distance: dist}
}

func (a *Area) CanBeIntersected() bool { return a.Instance.CanBeIntersected() }

// Environment is an infinitely distant light whose radiance varies by
// direction, read from an equirectangular ColorSource and optionally
// rotated by a transform.
type Environment struct {
	Radiance  texture.ColorSource
	Transform *core.Transform
}

func NewEnvironment(radiance texture.ColorSource, transform *core.Transform) *Environment {
	return &Environment{Radiance: radiance, Transform: transform}
}

func (e *Environment) SampleDirect(origin core.Vec3, smp core.Sampler) core.DirectSample {
	u1, u2 := smp.Next2D()
	dir := uniformSphere(u1, u2)
	worldDir := dir
	if e.Transform != nil {
		worldDir = e.Transform.ApplyVector(dir).Normalize()
	}
	uv := equirectangularUV(dir)
	pdf := 1 / (4 * math.Pi)
	radiance := e.Radiance.Evaluate(uv, core.Zero)
	weight := radiance.Multiply(1 / pdf)
	return core.DirectSample{Wi: worldDir, Weight: weight, Distance: math.Inf(1)}
}

func (e *Environment) CanBeIntersected() bool { return false }

// Background evaluates the environment's radiance toward a ray's direction,
// used by integrators as the miss color for this light.
func (e *Environment) Background(ray core.Ray) core.Vec3 {
	dir := ray.Direction.Normalize()
	localDir := dir
	if e.Transform != nil {
		localDir = e.Transform.InverseApplyVector(dir).Normalize()
	}
	return e.Radiance.Evaluate(equirectangularUV(localDir), core.Zero)
}

func uniformSphere(u1, u2 float64) core.Vec3 {
	z := 1 - 2*u1
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * u2
	return core.NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

func equirectangularUV(dir core.Vec3) [2]float64 {
	theta := math.Acos(clampf(dir.Y, -1, 1))
	phi := math.Atan2(dir.Z, dir.X)
	return [2]float64{(phi + math.Pi) / (2 * math.Pi), theta / math.Pi}
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var (
	_ core.Light = (*Point)(nil)
	_ core.Light = (*Directional)(nil)
	_ core.Light = (*Area)(nil)
	_ core.Light = (*Environment)(nil)
)
