// Package instance implements component E: the scene-graph node that binds
// a canonical Shape to a Transform, Material, optional Emitter/Medium, and
// optional normal map / portal link, exposing the result as a core.Instance.
package instance

import (
	"math"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
	"github.com/JoeJoeTV/picture-perfector/pkg/texture"
)

// Shape is the contract a canonical, untransformed geometric primitive must
// satisfy to be wrapped by an Instance — core.Primitive plus area sampling,
// which the shapes in pkg/shape all implement.
type Shape interface {
	core.Primitive
	SampleArea(sampler core.Sampler) core.AreaSample
	Area() float64
}

// Instance binds a Shape to a placement (Transform), appearance (Material,
// Emission, NormalMap, FlipNormal) and optional volume (InsideMedium). A nil
// Transform is the fast path: the shape is queried directly in world space.
type Instance struct {
	Shape      Shape
	Transform  *core.Transform
	Mat        core.Material
	Emit       core.Emitter
	Medium     core.Medium
	NormalMap  texture.ColorSource
	FlipNormal bool

	// Portal, when non-nil, makes this instance a portal surface: hits that
	// pass the mask test continue tracing from a teleported ray instead of
	// terminating.
	Portal *PortalLink

	// intersectable controls CanBeIntersected; set false for lights whose
	// instance is excluded from the scene BVH (e.g. an infinite
	// environment that is only ever sampled, never hit by chance in the
	// geometric sense).
	intersectable bool
}

// NewInstance returns an Instance that participates in the scene BVH
// (CanBeIntersected() == true), the common case.
func NewInstance(shape Shape, transform *core.Transform, mat core.Material) *Instance {
	return &Instance{Shape: shape, Transform: transform, Mat: mat, intersectable: true}
}

// SetIntersectable overrides whether this instance participates in the
// scene BVH; lights built over an instance that is sampled but never
// randomly hit should pass false.
func (i *Instance) SetIntersectable(v bool) { i.intersectable = v }

func (i *Instance) Bounds() core.Bounds {
	if i.Transform == nil {
		return i.Shape.Bounds()
	}
	local := i.Shape.Bounds()
	if !local.IsValid() {
		return core.Unbounded()
	}
	corners := local.Corners()
	result := core.NewBoundsFromPoints(i.Transform.Apply(corners[0]))
	for _, c := range corners[1:] {
		result = result.UnionPoint(i.Transform.Apply(c))
	}
	return result
}

func (i *Instance) Centroid() core.Vec3 {
	if i.Transform == nil {
		return i.Shape.Centroid()
	}
	return i.Transform.Apply(i.Shape.Centroid())
}

func (i *Instance) Area() float64 { return i.Shape.Area() }

// Intersect transforms the ray into the shape's local space, intersects
// there, then transforms the resulting hit back into world space and
// rebuilds the shading frame (normal map, adjoint-transformed normal,
// optional flip, re-orthonormalized).
func (i *Instance) Intersect(ray core.Ray, its *core.Intersection, smp core.Sampler) bool {
	if i.Transform == nil {
		if !i.Shape.Intersect(ray, its, smp) {
			return false
		}
		if i.FlipNormal || i.NormalMap != nil {
			its.Frame = i.transformFrame(its.Frame, its.UV)
		}
		its.Instance = i
		i.applyPortal(ray, its)
		return true
	}

	previousT := its.T
	localRaw := i.Transform.InverseApplyRay(ray)
	scale := localRaw.Direction.Length()
	localRay := localRaw
	if scale > 0 {
		localRay.Direction = localRaw.Direction.Multiply(1 / scale)
	}

	// its.T was computed in world-space distance units against a previous
	// candidate hit; rescale into local unit-ray distance so the shape's
	// internal comparisons against its.T stay meaningful.
	if scale > 0 && !math.IsInf(its.T, 1) {
		its.T = its.T * scale
	}

	if !i.Shape.Intersect(localRay, its, smp) {
		its.T = previousT
		return false
	}

	worldPosition := i.Transform.Apply(its.Position)
	its.T = worldPosition.Subtract(ray.Origin).Length()
	its.Position = worldPosition
	its.Frame = i.transformFrame(its.Frame, its.UV)
	its.Instance = i
	i.applyPortal(ray, its)
	return true
}

// applyPortal sets its.ForwardRay when this instance is a portal surface
// and the hit point passes the mask test, so integrators continue tracing
// from the teleported ray instead of terminating at this hit.
func (i *Instance) applyPortal(worldRay core.Ray, its *core.Intersection) {
	if i.Portal == nil {
		return
	}
	if !i.Portal.ShouldTeleport(its.UV) {
		return
	}
	forward := i.Portal.TeleportedRay(i, worldRay, its.Position)
	its.ForwardRay = &forward
}

// transformFrame applies the normal map (if any), maps the normal to world
// space via the transform's adjoint, applies FlipNormal, and rebuilds an
// orthonormal frame around the result — mirroring the original's
// transformFrame hook.
func (i *Instance) transformFrame(f core.Frame, uv [2]float64) core.Frame {
	normal := f.Normal
	if i.NormalMap != nil {
		nc := i.NormalMap.Evaluate(uv, core.Zero)
		local := core.NewVec3(2*nc.X-1, 2*nc.Y-1, 2*nc.Z-1).Normalize()
		normal = f.ToWorld(local).Normalize()
	}
	if i.Transform != nil {
		normal = i.Transform.ApplyNormal(normal)
	}
	if i.FlipNormal {
		normal = normal.Negate()
	}
	return core.NewFrame(normal)
}

func (i *Instance) SampleArea(smp core.Sampler) core.AreaSample {
	sample := i.Shape.SampleArea(smp)
	if i.Transform == nil {
		return sample
	}
	sample.Position = i.Transform.Apply(sample.Position)
	sample.Frame = i.transformFrame(sample.Frame, sample.UV)
	return sample
}

func (i *Instance) Material() core.Material { return i.Mat }

func (i *Instance) Emission() core.Emitter { return i.Emit }

func (i *Instance) InsideMedium() core.Medium { return i.Medium }

func (i *Instance) CanBeIntersected() bool { return i.intersectable }

var _ core.Instance = (*Instance)(nil)
