package sdf

import (
	"math"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
)

// Sphere is a sphere SDF of Radius centered at the origin.
type Sphere struct{ Radius float64 }

func NewSphere(radius float64) *Sphere { return &Sphere{Radius: radius} }

func (s *Sphere) EstimateDistance(p core.Vec3) float64 { return p.Length() - s.Radius }

func (s *Sphere) Bounds() core.Bounds {
	r := s.Radius
	return core.NewBounds(core.NewVec3(-r, -r, -r), core.NewVec3(r, r, r))
}

// Box is an axis-aligned box SDF, symmetric about the origin, with
// half-extents Corner along each axis.
type Box struct{ Corner core.Vec3 }

func NewBox(corner core.Vec3) *Box { return &Box{Corner: corner} }

func (b *Box) EstimateDistance(p core.Vec3) float64 {
	q := p.Abs().Subtract(b.Corner)
	maxQ0 := core.NewVec3(math.Max(q.X, 0), math.Max(q.Y, 0), math.Max(q.Z, 0))
	return maxQ0.Length() + math.Min(math.Max(q.X, math.Max(q.Y, q.Z)), 0)
}

func (b *Box) Bounds() core.Bounds {
	return core.NewBounds(b.Corner.Negate(), b.Corner)
}

// Cylinder is a cylinder SDF aligned to the y axis, symmetric about the
// origin, with the given Height (half-length along y) and Radius.
type Cylinder struct{ Height, Radius float64 }

func NewCylinder(height, radius float64) *Cylinder { return &Cylinder{Height: height, Radius: radius} }

func (c *Cylinder) EstimateDistance(p core.Vec3) float64 {
	dx := math.Abs(math.Hypot(p.X, p.Z)) - c.Radius
	dy := math.Abs(p.Y) - c.Height
	inside := math.Min(math.Max(dx, dy), 0)
	outX, outY := math.Max(dx, 0), math.Max(dy, 0)
	return inside + math.Hypot(outX, outY)
}

func (c *Cylinder) Bounds() core.Bounds {
	return core.NewBounds(
		core.NewVec3(-c.Radius, -c.Height, -c.Radius),
		core.NewVec3(c.Radius, c.Height, c.Radius),
	)
}

// Mandelbulb is the power-N mandelbulb fractal SDF, evaluated by escape-time
// iteration with a distance-estimator bound.
type Mandelbulb struct {
	Power      float64
	Iterations int
	Bailout    float64
}

func NewMandelbulb(power float64, iterations int, bailout float64) *Mandelbulb {
	return &Mandelbulb{Power: power, Iterations: iterations, Bailout: bailout}
}

func (m *Mandelbulb) EstimateDistance(p core.Vec3) float64 {
	z := p
	dr := 1.0
	r := 0.0

	for i := 0; i < m.Iterations; i++ {
		r = z.Length()
		if r > m.Bailout {
			break
		}

		theta := math.Acos(z.Z / r)
		phi := math.Atan2(z.Y, z.X)
		dr = math.Pow(r, m.Power-1) * m.Power * dr + 1

		zr := math.Pow(r, m.Power)
		theta *= m.Power
		phi *= m.Power

		z = core.NewVec3(
			math.Sin(theta)*math.Cos(phi),
			math.Sin(phi)*math.Sin(theta),
			math.Cos(theta),
		).Multiply(zr).Add(p)
	}

	return 0.5 * math.Log(r) * r / dr
}

func (m *Mandelbulb) Bounds() core.Bounds {
	return core.NewBounds(core.NewVec3(-1.5, -1.5, -1.5), core.NewVec3(1.5, 1.5, 1.5))
}

var (
	_ Node = (*Sphere)(nil)
	_ Node = (*Box)(nil)
	_ Node = (*Cylinder)(nil)
	_ Node = (*Mandelbulb)(nil)
)
