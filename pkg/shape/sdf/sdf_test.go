package sdf

import (
	"math"
	"testing"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
)

func TestSphere_EstimateDistance(t *testing.T) {
	s := NewSphere(2)
	if got := s.EstimateDistance(core.NewVec3(5, 0, 0)); math.Abs(got-3) > 1e-9 {
		t.Errorf("distance at (5,0,0) = %v, want 3", got)
	}
	if got := s.EstimateDistance(core.Zero); math.Abs(got-(-2)) > 1e-9 {
		t.Errorf("distance at origin = %v, want -2 (inside)", got)
	}
}

func TestCombine_UnionIsNearerSurface(t *testing.T) {
	a := NewSphere(1)
	b := &translated{Node: NewSphere(1), offset: core.NewVec3(3, 0, 0)}
	u := NewCombine(a, b, Union, false, 0)

	p := core.NewVec3(1.5, 0, 0)
	got := u.EstimateDistance(p)
	want := math.Min(a.EstimateDistance(p), b.EstimateDistance(p))
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("union distance = %v, want %v", got, want)
	}
}

func TestSDFTransform_RejectsNonUniformScale(t *testing.T) {
	tr, err := core.Identity().Scale(core.NewVec3(1, 2, 1))
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}
	if _, err := NewSDFTransform(NewSphere(1), tr); err == nil {
		t.Errorf("expected an error for non-uniform scale")
	}
}

func TestSDFTransform_UniformScaleMatchesEstimate(t *testing.T) {
	tr, err := core.Identity().Scale(core.NewVec3(2, 2, 2))
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}
	wrapped, err := NewSDFTransform(NewSphere(1), tr)
	if err != nil {
		t.Fatalf("NewSDFTransform: %v", err)
	}
	// the sphere has radius 1 scaled by 2, so its world-space radius is 2.
	got := wrapped.EstimateDistance(core.NewVec3(5, 0, 0))
	if math.Abs(got-3) > 1e-6 {
		t.Errorf("scaled sphere distance at (5,0,0) = %v, want 3", got)
	}
}

func TestShape_IntersectSphereAlongAxis(t *testing.T) {
	s := NewShape(NewSphere(1), 0, 0, UVModeNone)
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	its := core.NewIntersection()
	if !s.Intersect(ray, its, nil) {
		t.Fatalf("expected a hit on the sdf sphere")
	}
	if math.Abs(its.T-4) > 0.05 {
		t.Errorf("its.T = %v, want ~4", its.T)
	}
	if its.Frame.Normal.Dot(core.NewVec3(0, 0, -1)) < 0.9 {
		t.Errorf("normal = %v, want close to (0,0,-1)", its.Frame.Normal)
	}
}

func TestShape_MissesWhenRayAvoidsBounds(t *testing.T) {
	s := NewShape(NewSphere(1), 0, 0, UVModeNone)
	ray := core.NewRay(core.NewVec3(10, 10, -5), core.NewVec3(0, 0, 1))
	its := core.NewIntersection()
	if s.Intersect(ray, its, nil) {
		t.Errorf("expected no hit for a ray that misses the bounding box")
	}
}

// translated is a tiny test-only Node wrapper that offsets a child's
// distance-field query point, used to build two spatially-separated spheres
// without needing the Transform operator's uniform-scale machinery.
type translated struct {
	Node
	offset core.Vec3
}

func (t *translated) EstimateDistance(p core.Vec3) float64 {
	return t.Node.EstimateDistance(p.Subtract(t.offset))
}

func (t *translated) Bounds() core.Bounds {
	b := t.Node.Bounds()
	return core.NewBounds(b.Min.Add(t.offset), b.Max.Add(t.offset))
}
