package instance

import (
	"math"
	"testing"

	"github.com/JoeJoeTV/picture-perfector/pkg/bsdf"
	"github.com/JoeJoeTV/picture-perfector/pkg/core"
	"github.com/JoeJoeTV/picture-perfector/pkg/shape"
	"github.com/JoeJoeTV/picture-perfector/pkg/texture"
)

func TestInstance_TransformedSphereIntersect(t *testing.T) {
	translate, err := core.Identity().Translate(core.NewVec3(5, 0, 0))
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	scaled, err := translate.Scale(core.NewVec3(2, 2, 2))
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}

	mat := bsdf.NewDiffuse(texture.NewConstant(core.One))
	inst := NewInstance(shape.NewSphere(), scaled, mat)

	ray := core.NewRay(core.NewVec3(5, 0, -10), core.NewVec3(0, 0, 1))
	its := core.NewIntersection()
	if !inst.Intersect(ray, its, nil) {
		t.Fatalf("expected a hit on the transformed sphere")
	}
	// the sphere has radius 2 after scaling, centered at (5,0,0), so the
	// near hit along +z from z=-10 should land at z=-2.
	if math.Abs(its.Position.Z-(-2)) > 1e-6 {
		t.Errorf("hit position = %v, want z ~ -2", its.Position)
	}
	if math.Abs(its.T-8) > 1e-6 {
		t.Errorf("its.T = %v, want 8", its.T)
	}
	if its.Instance != inst {
		t.Errorf("its.Instance not set to the hitting instance")
	}
}

func TestInstance_FlipNormalInvertsShadingNormal(t *testing.T) {
	mat := bsdf.NewDiffuse(texture.NewConstant(core.One))
	inst := NewInstance(shape.NewSphere(), nil, mat)
	inst.FlipNormal = true

	ray := core.NewRay(core.NewVec3(0, 0, -10), core.NewVec3(0, 0, 1))
	its := core.NewIntersection()
	if !inst.Intersect(ray, its, nil) {
		t.Fatalf("expected a hit")
	}
	// The outward normal at the near hit (0,0,-1) is -z; flipped, it faces +z.
	if its.Frame.Normal.Z <= 0 {
		t.Errorf("normal = %v, want flipped to face +z", its.Frame.Normal)
	}
}

func TestPortalLink_TeleportsAndCountsDepth(t *testing.T) {
	mat := bsdf.NewDiffuse(texture.NewConstant(core.One))
	a := NewInstance(shape.NewSphere(), nil, mat)
	b := NewInstance(shape.NewSphere(), nil, mat)

	dest, err := core.Identity().Translate(core.NewVec3(100, 0, 0))
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	link := &PortalLink{}
	link.RegisterPortal(a, nil)
	link.RegisterPortal(b, dest)
	a.Portal = link
	b.Portal = link

	ray := core.NewRay(core.NewVec3(0, 0, -10), core.NewVec3(0, 0, 1))
	its := core.NewIntersection()
	if !a.Intersect(ray, its, nil) {
		t.Fatalf("expected a hit on portal a")
	}
	if its.ForwardRay == nil {
		t.Fatalf("expected ForwardRay to be set on a portal hit")
	}
	if its.ForwardRay.Depth != ray.Depth+1 {
		t.Errorf("forward ray depth = %d, want %d", its.ForwardRay.Depth, ray.Depth+1)
	}
	if math.Abs(its.ForwardRay.Origin.X-100) > 1e-6 {
		t.Errorf("forward ray origin = %v, want x ~ 100", its.ForwardRay.Origin)
	}
}

func TestPortalLink_MaskBlocksTeleportBelowThreshold(t *testing.T) {
	mat := bsdf.NewDiffuse(texture.NewConstant(core.One))
	a := NewInstance(shape.NewSphere(), nil, mat)
	b := NewInstance(shape.NewSphere(), nil, mat)

	link := &PortalLink{Mask: texture.NewConstant(core.Zero)}
	link.RegisterPortal(a, nil)
	link.RegisterPortal(b, nil)
	a.Portal = link

	ray := core.NewRay(core.NewVec3(0, 0, -10), core.NewVec3(0, 0, 1))
	its := core.NewIntersection()
	if !a.Intersect(ray, its, nil) {
		t.Fatalf("expected a hit on portal a")
	}
	if its.ForwardRay != nil {
		t.Errorf("mask below threshold should block teleport, got ForwardRay = %v", its.ForwardRay)
	}
}
