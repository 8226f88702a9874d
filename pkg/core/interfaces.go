package core

import "math"

// Logger is the narrow logging surface offered to pkg/ code; internal/rlog
// implements it. Kept here (rather than importing internal/rlog) so that
// pkg/ never depends on the concrete logging backend. No package under pkg/
// currently takes a Logger.
type Logger interface {
	Debugf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Noticef(format string, v ...interface{})
	Warningf(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

// Sampler draws a seedable per-pixel, per-sample pseudo-random stream.
// Clone returns an independent instance for a worker so that the per-thread
// contract in the render driver holds without locking.
type Sampler interface {
	Seed(pixel [2]int, sampleIndex int)
	Next() float64
	Next2D() (float64, float64)
	Clone() Sampler
}

// Vertex is a triangle-mesh element; barycentric interpolation
// (alpha=1-u-v, beta=u, gamma=v) is linear in all three fields.
type Vertex struct {
	Position Vec3
	Normal   Vec3
	UV       [2]float64
}

// Stats carries debug/diagnostic scalars threaded through an intersection,
// such as the SDF's step fraction.
type Stats struct {
	SDFStepFraction float64
	BVHNodesVisited int
}

// Intersection is the nearest-surface-interaction record threaded through
// shape-level and instance-level intersect calls. Before intersection T is
// +Inf and Instance is nil. After a successful shape-level intersect,
// Position = ray(T) in the space the shape was queried in. After a
// successful instance-level intersect, Position and Frame are in world
// space.
type Intersection struct {
	T        float64
	Position Vec3
	Frame    Frame
	UV       [2]float64
	Wo       Vec3 // incident direction, in world space, pointing away from the surface
	Instance Instance
	// ForwardRay is set when the hit surface is a portal: tracing should
	// continue from this ray rather than terminating at this hit.
	ForwardRay *Ray
	Stats      Stats
}

// NewIntersection returns an intersection record with T = +Inf and no owning
// instance, ready to be passed into a Primitive.Intersect call.
func NewIntersection() *Intersection {
	return &Intersection{T: math.Inf(1)}
}

// AreaSample is the result of sampling a point on a shape's or instance's
// surface, used by area lights.
type AreaSample struct {
	Position Vec3
	Frame    Frame
	UV       [2]float64
	PDFArea  float64
	Area     float64
}

// Primitive is anything a BVH can hold: raw Shapes and Instances both
// satisfy it, which lets one accel.BVH implementation serve as both the
// scene-level BVH (over instances) and a mesh's internal BVH (over
// triangles).
type Primitive interface {
	// Intersect may only strengthen its (a smaller its.T); it returns true
	// iff it did so.
	Intersect(ray Ray, its *Intersection, sampler Sampler) bool
	Bounds() Bounds
	Centroid() Vec3
}

// Material is the BSDF contract: evaluate and importance-sample scattering
// at a surface point, in the local shading frame (wo points away from the
// surface; wi is the sampled incident direction, also oriented away from
// the surface).
type Material interface {
	// Evaluate returns f(wo,wi) * |cosTheta(wi)|, zero outside the valid
	// hemisphere.
	Evaluate(uv [2]float64, woLocal, wiLocal Vec3) Vec3
	// Sample returns a ScatterSample and ok=false if the material absorbed
	// the ray (invalid sample -> path termination, no retry).
	Sample(uv [2]float64, woLocal Vec3, sampler Sampler) (ScatterSample, bool)
	// IsDelta reports whether this material is a Dirac BSDF (smooth
	// conductor/dielectric), which integrators use to skip NEE at this hit.
	IsDelta() bool
}

// ScatterSample is the result of Material.Sample: Weight = f*|cosTheta|/pdf.
type ScatterSample struct {
	WiLocal Vec3
	Weight  Vec3
}

// Emitter is implemented by emission profiles attached to an instance.
type Emitter interface {
	// Evaluate returns emitted radiance leaving the surface toward woLocal,
	// with the one-sided clamp applied (zero when cosTheta(woLocal) <= 0).
	Evaluate(uv [2]float64, woLocal Vec3) Vec3
}

// Medium is a participating medium attached to an instance.
type Medium interface {
	// Tr returns the transmittance along the ray up to distance t.
	Tr(ray Ray, t float64, sampler Sampler) Vec3
	// SampleHitDistance draws a candidate scattering distance along ray.
	SampleHitDistance(ray Ray, sampler Sampler) (t float64, ok bool)
	// PhaseSample draws a new direction from the phase function about wo.
	PhaseSample(woLocal Vec3, sampler Sampler) Vec3
	// ProbOfSamplingBeforeT is P(scatter distance >= t), i.e. the survival
	// probability of reaching t unscattered.
	ProbOfSamplingBeforeT(t float64) float64
	// ProbOfSamplingThisPoint is the distance-sampling pdf at t.
	ProbOfSamplingThisPoint(t float64) float64
	// SigmaS returns the scattering coefficient, used to weight a medium
	// scatter event.
	SigmaS() Vec3
}

// Instance is the scene-graph node contract Lights and Integrators consume:
// a shape plus optional transform/material/emission/medium/portal, reachable
// through the Intersection.Instance field.
type Instance interface {
	Primitive
	Material() Material
	Emission() Emitter
	InsideMedium() Medium
	SampleArea(sampler Sampler) AreaSample
	Area() float64
	// CanBeIntersected is true precisely when this instance's emission is
	// also reachable by a random hit (i.e. it participates in the BVH as an
	// ordinary instance), used by integrators to avoid double-counting.
	CanBeIntersected() bool
}

// Light exposes direct illumination sampling toward a shading point.
type Light interface {
	// SampleDirect returns a DirectSample such that the estimator
	// weight*bsdf(wi) with implicit pdf 1 is the unbiased direct-lighting
	// contribution from this light.
	SampleDirect(origin Vec3, sampler Sampler) DirectSample
	// CanBeIntersected reports whether this light's radiance is also
	// reachable by a random surface hit.
	CanBeIntersected() bool
}

// DirectSample is the result of Light.SampleDirect.
type DirectSample struct {
	Wi       Vec3
	Weight   Vec3
	Distance float64
}
