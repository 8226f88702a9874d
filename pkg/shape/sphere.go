// Package shape implements the primitive shapes of component C: sphere,
// triangle mesh, and the signed-distance-function shape (in the sdf
// sub-package). Every shape here is canonical/unit-sized; instances apply
// their own Transform to position, scale and orient it.
package shape

import (
	"math"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
	"github.com/JoeJoeTV/picture-perfector/pkg/sampler"
)

// Epsilon is the distance tolerance used across shapes to reject
// self-intersections and near-parallel rays.
const Epsilon = 1e-4

// Sphere is the unit sphere centered at the origin.
type Sphere struct{}

func NewSphere() *Sphere { return &Sphere{} }

func (s *Sphere) Bounds() core.Bounds {
	return core.NewBounds(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))
}

func (s *Sphere) Centroid() core.Vec3 { return core.Zero }

func (s *Sphere) Area() float64 { return 4 * math.Pi }

func (s *Sphere) Intersect(ray core.Ray, its *core.Intersection, smp core.Sampler) bool {
	oc := ray.Origin
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - 1

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return false
	}
	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if root < Epsilon || root > its.T {
		root = (-halfB + sqrtD) / a
		if root < Epsilon || root > its.T {
			return false
		}
	}

	position := ray.At(root).Normalize() // re-project onto the unit sphere
	its.T = root
	its.Position = position
	its.Frame = core.NewFrame(position)
	its.UV = sphereUV(position)
	return true
}

func sphereUV(p core.Vec3) [2]float64 {
	theta := math.Acos(clamp(p.Y, -1, 1))
	phi := math.Atan2(p.Z, p.X)
	return [2]float64{phi / (2 * math.Pi), (math.Pi - theta) / math.Pi}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (s *Sphere) SampleArea(smp core.Sampler) core.AreaSample {
	u1, u2 := smp.Next2D()
	p := sampler.UniformSphere(u1, u2)
	return core.AreaSample{
		Position: p,
		Frame:    core.NewFrame(p),
		UV:       sphereUV(p),
		PDFArea:  1 / (4 * math.Pi),
		Area:     4 * math.Pi,
	}
}

var _ core.Primitive = (*Sphere)(nil)
