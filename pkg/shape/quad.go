package shape

import (
	"math"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
)

// Quad is a planar rectangle spanned by two edge vectors from a corner,
// the workhorse shape for box interiors, backdrops, and area-light panels.
type Quad struct {
	Corner core.Vec3
	U      core.Vec3
	V      core.Vec3

	normal core.Vec3
	d      float64 // plane equation constant: normal . p = d
	w      core.Vec3
	area   float64
}

func NewQuad(corner, u, v core.Vec3) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()
	d := normal.Dot(corner)
	w := normal.Multiply(1 / normal.Dot(cross))

	return &Quad{
		Corner: corner,
		U:      u,
		V:      v,
		normal: normal,
		d:      d,
		w:      w,
		area:   cross.Length(),
	}
}

func (q *Quad) Bounds() core.Bounds {
	return core.NewBoundsFromPoints(
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	)
}

func (q *Quad) Centroid() core.Vec3 {
	return q.Corner.Add(q.U.Multiply(0.5)).Add(q.V.Multiply(0.5))
}

func (q *Quad) Area() float64 { return q.area }

func (q *Quad) Intersect(ray core.Ray, its *core.Intersection, smp core.Sampler) bool {
	denom := ray.Direction.Dot(q.normal)
	if math.Abs(denom) < 1e-8 {
		return false
	}

	t := (q.d - ray.Origin.Dot(q.normal)) / denom
	if t < Epsilon || t > its.T {
		return false
	}

	hit := ray.At(t)
	fromCorner := hit.Subtract(q.Corner)
	alpha := q.w.Dot(fromCorner.Cross(q.V))
	beta := q.w.Dot(q.U.Cross(fromCorner))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return false
	}

	its.T = t
	its.Position = hit
	its.Frame = core.NewFrame(q.normal)
	its.UV = [2]float64{alpha, beta}
	return true
}

func (q *Quad) SampleArea(smp core.Sampler) core.AreaSample {
	u1, u2 := smp.Next2D()
	position := q.Corner.Add(q.U.Multiply(u1)).Add(q.V.Multiply(u2))
	return core.AreaSample{
		Position: position,
		Frame:    core.NewFrame(q.normal),
		UV:       [2]float64{u1, u2},
		PDFArea:  1 / q.area,
		Area:     q.area,
	}
}

var _ core.Primitive = (*Quad)(nil)
