package sdf

import (
	"math"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
)

// UVMode selects how a hit point on an SDF surface is mapped to texture
// coordinates. original_source hardcodes uv to (0,0); this repository adds
// both modes so SDF shapes can carry textures.
type UVMode int

const (
	UVModeNone UVMode = iota
	UVModeSpherical
)

// advanceMultiplier scales MinDistance when nudging the march origin forward
// to avoid re-hitting the surface it started on.
const advanceMultiplier = 3

// Shape ray-marches a Node tree to find the nearest surface crossing along
// a ray.
type Shape struct {
	Child          Node
	MaxSteps       int
	MinDistance    float64
	NormalEpsilon  float64
	UVMapping      UVMode

	bounds core.Bounds
}

// NewShape wraps child for ray marching. maxSteps and minDistance default to
// 50 and 0.01 respectively when zero, matching original_source's defaults.
func NewShape(child Node, maxSteps int, minDistance float64, uvMapping UVMode) *Shape {
	if maxSteps == 0 {
		maxSteps = 50
	}
	if minDistance == 0 {
		minDistance = 0.01
	}
	return &Shape{
		Child:         child,
		MaxSteps:      maxSteps,
		MinDistance:   minDistance,
		NormalEpsilon: minDistance,
		UVMapping:     uvMapping,
		bounds:        child.Bounds(),
	}
}

func (s *Shape) Bounds() core.Bounds { return s.bounds }

func (s *Shape) Centroid() core.Vec3 { return core.Zero }

// Area is not analytically known for a ray-marched surface; SDF shapes are
// not usable as area lights, matching original_source's unimplemented
// sampleArea for this shape.
func (s *Shape) Area() float64 { return 0 }

// SampleArea panics: SDF shapes cannot be sampled as area lights (there is
// no closed-form surface measure), exactly as original_source's
// SDFShape::sampleArea declares NOT_IMPLEMENTED.
func (s *Shape) SampleArea(smp core.Sampler) core.AreaSample {
	panic("sdf: SampleArea is not implemented for ray-marched SDF shapes")
}

func (s *Shape) intersectAABB(ray core.Ray) float64 {
	tNear, tFar, hit := s.bounds.IntersectRange(ray, math.Inf(-1), math.Inf(1))
	if !hit || tFar < 1e-4 {
		return math.Inf(1)
	}
	return tNear
}

// Intersect implements the ray-marching algorithm: reject rays that miss
// the precomputed AABB, nudge the march origin forward when starting inside
// the minimum-distance shell (self-intersection avoidance), then step along
// the ray by the absolute estimated distance (clamped below) until the
// surface is found, the existing best hit is exceeded, the march leaves the
// AABB, or the step budget is exhausted.
func (s *Shape) Intersect(ray core.Ray, its *core.Intersection, smp core.Sampler) bool {
	originDist := s.Child.EstimateDistance(ray.Origin)

	marchOrigin := ray.Origin
	if ray.Depth >= 1 || math.Abs(originDist) < s.MinDistance {
		marchOrigin = ray.At(s.MinDistance * advanceMultiplier)
	}
	marchRay := core.NewRay(marchOrigin, ray.Direction).WithDepth(ray.Depth)

	boundsT := s.intersectAABB(marchRay)
	if math.IsInf(boundsT, 1) {
		return false
	}

	distMult := 1.0
	if s.Child.EstimateDistance(marchRay.Origin) < 0 {
		distMult = -1.0
	}

	marchedDist := 0.0
	step := 0
	for ; step < s.MaxSteps; step++ {
		point := marchRay.At(marchedDist)
		distance := distMult * s.Child.EstimateDistance(point)

		if marchedDist > its.T ||
			math.IsInf(marchedDist, 1) ||
			(marchedDist > boundsT && !containsPoint(s.bounds, marchRay.At(marchedDist))) {
			return false
		}

		if math.Abs(distance) < s.MinDistance {
			break
		}

		marchedDist += math.Max(math.Abs(distance), s.MinDistance/2)
	}
	if step >= s.MaxSteps {
		return false
	}

	its.T = marchedDist
	its.Stats.SDFStepFraction = float64(step) / float64(s.MaxSteps)

	hitPoint := marchRay.At(marchedDist)
	its.Position = hitPoint

	signedGrad := func(p core.Vec3) core.Vec3 {
		return Gradient(signedNode{s.Child, distMult}, p, s.NormalEpsilon)
	}
	normal := signedGrad(hitPoint)
	its.Frame = core.FrameFromTangentNormal(tangentHint(normal), normal)
	its.UV = s.uv(hitPoint, normal)
	return true
}

// signedNode flips a child's distance sign, used so Gradient computes the
// normal consistently whether the march started inside or outside the
// surface.
type signedNode struct {
	Node
	sign float64
}

func (n signedNode) EstimateDistance(p core.Vec3) float64 { return n.sign * n.Node.EstimateDistance(p) }

// tangentHint picks an arbitrary vector not parallel to normal, the same
// fallback-axis trick original_source uses to seed a tangent before
// orthogonalizing.
func tangentHint(normal core.Vec3) core.Vec3 {
	axis := core.NewVec3(1, 0, 0)
	if normal.Cross(axis).LengthSquared() < 1e-8 {
		axis = core.NewVec3(1, 1, 0)
	}
	return normal.Cross(axis)
}

func (s *Shape) uv(p core.Vec3, normal core.Vec3) [2]float64 {
	switch s.UVMapping {
	case UVModeSpherical:
		theta := math.Acos(clampf(normal.Y, -1, 1))
		phi := math.Atan2(normal.Z, normal.X)
		return [2]float64{phi / (2 * math.Pi), (math.Pi - theta) / math.Pi}
	default:
		return [2]float64{0, 0}
	}
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

func containsPoint(b core.Bounds, p core.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

var _ core.Primitive = (*Shape)(nil)
