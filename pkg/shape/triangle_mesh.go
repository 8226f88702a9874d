package shape

import (
	"math"

	"github.com/JoeJoeTV/picture-perfector/pkg/accel"
	"github.com/JoeJoeTV/picture-perfector/pkg/core"
)

// TriangleMesh is an indexed triangle mesh with an internal BVH over its
// faces. Positions are required; Normals and UVs are per-vertex and
// optional. When Smooth is true and Normals is non-empty, shading normals
// are barycentrically interpolated from the per-vertex normals; otherwise
// the flat geometric face normal is used for every point on the triangle.
type TriangleMesh struct {
	Positions []core.Vec3
	Normals   []core.Vec3 // may be nil
	UVs       [][2]float64 // may be nil
	Faces     [][3]int
	Smooth    bool

	bvh    *accel.BVH
	areas  []float64
	total  float64
	bounds core.Bounds
}

// NewTriangleMesh builds the mesh's internal BVH over its faces. Panics if a
// face index is out of range or Normals/UVs are supplied with a length that
// doesn't match Positions — mirroring the teacher's constructor-time
// validation for malformed mesh data.
func NewTriangleMesh(positions []core.Vec3, normals []core.Vec3, uvs [][2]float64, faces [][3]int, smooth bool) *TriangleMesh {
	if normals != nil && len(normals) != len(positions) {
		panic("shape: triangle mesh normals length must match positions length")
	}
	if uvs != nil && len(uvs) != len(positions) {
		panic("shape: triangle mesh uvs length must match positions length")
	}

	m := &TriangleMesh{
		Positions: positions,
		Normals:   normals,
		UVs:       uvs,
		Faces:     faces,
		Smooth:    smooth && normals != nil,
	}

	prims := make([]core.Primitive, len(faces))
	m.areas = make([]float64, len(faces))
	bounds := core.Unbounded()
	first := true
	for i, f := range faces {
		for _, idx := range f {
			if idx < 0 || idx >= len(positions) {
				panic("shape: triangle mesh face index out of range")
			}
		}
		tri := &meshTriangle{mesh: m, face: i}
		prims[i] = tri
		area := tri.area()
		m.areas[i] = area
		m.total += area

		fb := tri.Bounds()
		if first {
			bounds = fb
			first = false
		} else {
			bounds = bounds.Union(fb)
		}
	}
	m.bounds = bounds
	m.bvh = accel.NewBVH(prims)
	return m
}

func (m *TriangleMesh) Bounds() core.Bounds { return m.bounds }

func (m *TriangleMesh) Centroid() core.Vec3 { return m.bounds.Center() }

func (m *TriangleMesh) Area() float64 { return m.total }

func (m *TriangleMesh) Intersect(ray core.Ray, its *core.Intersection, smp core.Sampler) bool {
	return m.bvh.Intersect(ray, its, smp)
}

// SampleArea picks a face proportional to its area via its first random
// draw, then a uniform point inside that face via the standard
// sqrt-based barycentric warp applied to an independent second draw.
func (m *TriangleMesh) SampleArea(smp core.Sampler) core.AreaSample {
	uFace, _ := smp.Next2D()
	target := uFace * m.total
	faceIdx := len(m.areas) - 1
	cum := 0.0
	for i, a := range m.areas {
		cum += a
		if target <= cum {
			faceIdx = i
			break
		}
	}

	face := m.Faces[faceIdx]
	v0, v1, v2 := m.Positions[face[0]], m.Positions[face[1]], m.Positions[face[2]]

	bu, bv := smp.Next2D()
	su := math.Sqrt(bu)
	b0 := 1 - su
	b1 := bv * su
	b2 := 1 - b0 - b1

	pos := v0.Multiply(b0).Add(v1.Multiply(b1)).Add(v2.Multiply(b2))
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)
	geoNormal := edge1.Cross(edge2).Normalize()

	normal := geoNormal
	if m.Smooth {
		n0, n1, n2 := m.Normals[face[0]], m.Normals[face[1]], m.Normals[face[2]]
		normal = n0.Multiply(b0).Add(n1.Multiply(b1)).Add(n2.Multiply(b2)).Normalize()
	}

	uv := [2]float64{b1, b2}
	if m.UVs != nil {
		uv0, uv1, uv2 := m.UVs[face[0]], m.UVs[face[1]], m.UVs[face[2]]
		uv = [2]float64{
			b0*uv0[0] + b1*uv1[0] + b2*uv2[0],
			b0*uv0[1] + b1*uv1[1] + b2*uv2[1],
		}
	}

	return core.AreaSample{
		Position: pos,
		Frame:    core.FrameFromTangentNormal(edge1, normal),
		UV:       uv,
		PDFArea:  1 / m.total,
		Area:     m.total,
	}
}

// meshTriangle is a single face of a TriangleMesh, satisfying core.Primitive
// so it can live in the mesh's internal BVH.
type meshTriangle struct {
	mesh *TriangleMesh
	face int
}

func (t *meshTriangle) v(i int) core.Vec3 { return t.mesh.Positions[t.mesh.Faces[t.face][i]] }

func (t *meshTriangle) area() float64 {
	e1 := t.v(1).Subtract(t.v(0))
	e2 := t.v(2).Subtract(t.v(0))
	return 0.5 * e1.Cross(e2).Length()
}

func (t *meshTriangle) Bounds() core.Bounds {
	return core.NewBoundsFromPoints(t.v(0), t.v(1), t.v(2))
}

func (t *meshTriangle) Centroid() core.Vec3 {
	return t.v(0).Add(t.v(1)).Add(t.v(2)).Multiply(1.0 / 3.0)
}

// Intersect is the Möller-Trumbore ray/triangle test.
func (t *meshTriangle) Intersect(ray core.Ray, its *core.Intersection, smp core.Sampler) bool {
	v0, v1, v2 := t.v(0), t.v(1), t.v(2)
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if math.Abs(a) < Epsilon {
		return false
	}
	f := 1.0 / a

	s := ray.Origin.Subtract(v0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return false
	}

	tHit := f * edge2.Dot(q)
	if tHit < Epsilon || tHit > its.T {
		return false
	}

	w := 1 - u - v
	geoNormal := edge1.Cross(edge2).Normalize()

	var shadingNormal core.Vec3
	if t.mesh.Smooth {
		face := t.mesh.Faces[t.face]
		n0 := t.mesh.Normals[face[0]]
		n1 := t.mesh.Normals[face[1]]
		n2 := t.mesh.Normals[face[2]]
		shadingNormal = n0.Multiply(w).Add(n1.Multiply(u)).Add(n2.Multiply(v)).Normalize()
	} else {
		shadingNormal = geoNormal
	}

	var uv [2]float64
	if t.mesh.UVs != nil {
		face := t.mesh.Faces[t.face]
		uv0 := t.mesh.UVs[face[0]]
		uv1 := t.mesh.UVs[face[1]]
		uv2 := t.mesh.UVs[face[2]]
		uv = [2]float64{
			w*uv0[0] + u*uv1[0] + v*uv2[0],
			w*uv0[1] + u*uv1[1] + v*uv2[1],
		}
	} else {
		uv = [2]float64{u, v}
	}

	its.T = tHit
	its.Position = ray.At(tHit)
	its.Frame = core.FrameFromTangentNormal(edge1, shadingNormal)
	its.UV = uv
	return true
}

var (
	_ core.Primitive = (*TriangleMesh)(nil)
	_ core.Primitive = (*meshTriangle)(nil)
)
