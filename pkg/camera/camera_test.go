package camera

import (
	"math"
	"testing"
)

func TestPerspective_CenterPixelPointsAlongForward(t *testing.T) {
	p := NewPerspective(nil, 60, FovAxisY, 400, 300)
	ray, weight := p.SampleRay(200, 150, nil)
	if weight != 1 {
		t.Errorf("weight = %v, want 1", weight)
	}
	if math.Abs(ray.Direction.X) > 1e-9 || math.Abs(ray.Direction.Y) > 1e-9 {
		t.Errorf("center-pixel direction = %v, want pointing straight along +z", ray.Direction)
	}
}

func TestPerspective_TopLeftPixelLooksUpAndLeft(t *testing.T) {
	p := NewPerspective(nil, 90, FovAxisY, 400, 300)
	ray, _ := p.SampleRay(0, 0, nil)
	if ray.Direction.X >= 0 {
		t.Errorf("top-left pixel direction.X = %v, want negative", ray.Direction.X)
	}
	if ray.Direction.Y <= 0 {
		t.Errorf("top-left pixel direction.Y = %v, want positive (image +y is up)", ray.Direction.Y)
	}
}

func TestThinLens_ZeroApertureMatchesPinhole(t *testing.T) {
	p := NewPerspective(nil, 60, FovAxisY, 400, 300)
	lens := NewThinLens(p, 0, 5)
	pinholeRay, _ := p.SampleRay(120, 80, nil)
	lensRay, _ := lens.SampleRay(120, 80, nil)
	if pinholeRay.Direction != lensRay.Direction {
		t.Errorf("zero-aperture thin lens direction = %v, want %v", lensRay.Direction, pinholeRay.Direction)
	}
}
