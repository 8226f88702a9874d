package core

import (
	"math"
	"testing"
)

const vecTolerance = 1e-9

func TestVec3_CrossDot(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	z := NewVec3(0, 0, 1)

	if got := x.Cross(y); got.Subtract(z).Length() > vecTolerance {
		t.Errorf("x cross y = %v, want %v", got, z)
	}
	if got := x.Dot(y); math.Abs(got) > vecTolerance {
		t.Errorf("x dot y = %v, want 0", got)
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 4, 0)
	n := v.Normalize()
	if math.Abs(n.Length()-1) > vecTolerance {
		t.Errorf("normalized length = %v, want 1", n.Length())
	}

	zero := Vec3{}
	if got := zero.Normalize(); got != zero {
		t.Errorf("normalize of zero vector = %v, want zero", got)
	}
}

func TestVec3_Luminance(t *testing.T) {
	white := NewVec3(1, 1, 1)
	if got := white.Luminance(); math.Abs(got-1) > vecTolerance {
		t.Errorf("luminance(white) = %v, want 1", got)
	}
}

func TestFrame_OrthonormalAndRoundTrip(t *testing.T) {
	normals := []Vec3{
		NewVec3(0, 0, 1),
		NewVec3(0, 0, -1),
		NewVec3(1, 0, 0),
		NewVec3(0.3, 0.5, 0.8).Normalize(),
	}

	for _, n := range normals {
		f := NewFrame(n)

		if math.Abs(f.Tangent.Length()-1) > vecTolerance ||
			math.Abs(f.Bitangent.Length()-1) > vecTolerance ||
			math.Abs(f.Normal.Length()-1) > vecTolerance {
			t.Fatalf("frame axes not unit length for normal %v", n)
		}
		if math.Abs(f.Tangent.Dot(f.Bitangent)) > vecTolerance ||
			math.Abs(f.Tangent.Dot(f.Normal)) > vecTolerance ||
			math.Abs(f.Bitangent.Dot(f.Normal)) > vecTolerance {
			t.Fatalf("frame axes not orthogonal for normal %v", n)
		}

		w := NewVec3(0.2, -0.4, 0.9).Normalize()
		roundTrip := f.ToLocal(f.ToWorld(w))
		if roundTrip.Subtract(w).Length() > 1e-6 {
			t.Errorf("ToLocal(ToWorld(w)) = %v, want %v", roundTrip, w)
		}
	}
}

func TestTransform_RoundTrip(t *testing.T) {
	tr, err := Identity().Translate(NewVec3(1, 2, 3))
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	tr, err = tr.Rotate(NewVec3(0, 1, 0), math.Pi/4)
	if err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	tr, err = tr.Scale(NewVec3(2, 3, 0.5))
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}

	p := NewVec3(0.5, -1.2, 3.7)
	roundTrip := tr.InverseApply(tr.Apply(p))
	if roundTrip.Subtract(p).Length() > 1e-6 {
		t.Errorf("inverse(apply(p)) = %v, want %v", roundTrip, p)
	}

	v := NewVec3(0.1, 0.2, -0.3)
	vRoundTrip := tr.InverseApplyVector(tr.ApplyVector(v))
	if vRoundTrip.Subtract(v).Length() > 1e-6 {
		t.Errorf("inverse(applyVector(v)) = %v, want %v", vRoundTrip, v)
	}
}

func TestTransform_ScaleRejectsZeroProduct(t *testing.T) {
	if _, err := Identity().Scale(NewVec3(1, 0, 1)); err != ErrSingularTransform {
		t.Errorf("Scale with a zero axis: got err=%v, want ErrSingularTransform", err)
	}
}

func TestTransform_LookAtRejectsColinear(t *testing.T) {
	origin := NewVec3(0, 0, 0)
	target := NewVec3(0, 5, 0)
	up := NewVec3(0, 1, 0)
	if _, err := Identity().LookAt(origin, target, up); err != ErrSingularTransform {
		t.Errorf("LookAt with colinear up/direction: got err=%v, want ErrSingularTransform", err)
	}
}

func TestTransform_PopScaleUniform(t *testing.T) {
	tr, err := Identity().Scale(NewVec3(2, 2, 2))
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}
	scale, unscaled := tr.PopScale()
	if math.Abs(scale.X-2) > vecTolerance || math.Abs(scale.Y-2) > vecTolerance || math.Abs(scale.Z-2) > vecTolerance {
		t.Errorf("PopScale factors = %v, want (2,2,2)", scale)
	}
	p := NewVec3(1, 0, 0)
	if got := unscaled.Apply(p); got.Subtract(p).Length() > vecTolerance {
		t.Errorf("unscaled transform moved %v to %v", p, got)
	}
}

func TestBounds_HitTAndUnbounded(t *testing.T) {
	b := NewBounds(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	ray := NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1))

	if got := b.HitT(ray); math.Abs(got-4) > vecTolerance {
		t.Errorf("HitT = %v, want 4", got)
	}

	behind := NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, -1))
	if got := b.HitT(behind); !math.IsInf(got, 1) {
		t.Errorf("HitT behind origin = %v, want +Inf", got)
	}

	u := Unbounded()
	if got := u.HitT(ray); got != 0 {
		t.Errorf("HitT against unbounded box = %v, want 0", got)
	}
}
