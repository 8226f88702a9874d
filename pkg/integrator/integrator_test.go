package integrator

import (
	"math"
	"testing"

	"github.com/JoeJoeTV/picture-perfector/pkg/bsdf"
	"github.com/JoeJoeTV/picture-perfector/pkg/core"
	"github.com/JoeJoeTV/picture-perfector/pkg/instance"
	"github.com/JoeJoeTV/picture-perfector/pkg/light"
	"github.com/JoeJoeTV/picture-perfector/pkg/sampler"
	"github.com/JoeJoeTV/picture-perfector/pkg/shape"
	"github.com/JoeJoeTV/picture-perfector/pkg/texture"
)

// fakeScene is a minimal core.Scene: a single ground quad, a flat list of
// lights, and a constant background, enough to exercise an integrator
// without pulling in pkg/scene (which itself depends on this package's
// sibling packages but not on pkg/integrator, so there's no cycle — this
// stays self-contained to keep the test independent of scene-builder churn).
type fakeScene struct {
	instances  []core.Instance
	lights     []core.Light
	background core.Vec3
}

func (s *fakeScene) Intersect(ray core.Ray, its *core.Intersection, smp core.Sampler) bool {
	hitAny := false
	for _, inst := range s.instances {
		if inst.Intersect(ray, its, smp) {
			hitAny = true
		}
	}
	return hitAny
}

func (s *fakeScene) IntersectP(ray core.Ray, tMin, tMax float64) bool {
	its := core.NewIntersection()
	its.T = tMax
	for _, inst := range s.instances {
		if inst.Intersect(ray, its, nil) {
			return its.T >= tMin
		}
	}
	return false
}

func (s *fakeScene) Lights() []core.Light { return s.lights }

func (s *fakeScene) SampleLight(smp core.Sampler) (core.Light, float64, bool) {
	if len(s.lights) == 0 {
		return nil, 0, false
	}
	return s.lights[0], 1 / float64(len(s.lights)), true
}

func (s *fakeScene) LightPDF() float64 {
	if len(s.lights) == 0 {
		return 0
	}
	return 1 / float64(len(s.lights))
}

func (s *fakeScene) Background(ray core.Ray) core.Vec3 { return s.background }
func (s *fakeScene) Camera() core.Camera               { return nil }
func (s *fakeScene) SamplingConfig() core.SamplingConfig {
	// Russian roulette starts only at bounce MaxDepth, i.e. never, so an
	// integrator's random draws come from light and BSDF sampling alone.
	return core.SamplingConfig{MaxDepth: 8, RussianRouletteMinBounces: 8}
}

var _ core.Scene = (*fakeScene)(nil)

// groundPointLightScene builds a single diffuse ground quad lit directly
// overhead by a point light, with black background, so that a camera ray
// pointed straight down at the quad has an exactly computable NEE term and
// a zero second-bounce contribution (the cosine-sampled bounce direction
// points up, away from the only surface in the scene).
func groundPointLightScene(albedo core.Vec3, power core.Vec3) (*fakeScene, core.Vec3) {
	mat := bsdf.NewDiffuse(texture.NewConstant(albedo))
	quadShape := shape.NewQuad(core.NewVec3(-10, 0, -10), core.NewVec3(0, 0, 20), core.NewVec3(20, 0, 0))
	groundInst := instance.NewInstance(quadShape, nil, mat)

	pointPos := core.NewVec3(0, 5, 0)
	s := &fakeScene{
		instances:  []core.Instance{groundInst},
		lights:     []core.Light{light.NewPoint(pointPos, power)},
		background: core.Zero,
	}
	return s, pointPos
}

func TestDirect_NEEMatchesAnalyticPointLightContribution(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.8, 0.8)
	power := core.NewVec3(4*math.Pi, 4*math.Pi, 4*math.Pi)
	s, _ := groundPointLightScene(albedo, power)

	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))
	smp := sampler.NewRandomSampler(1)
	smp.Seed([2]int{0, 0}, 0)

	d := NewDirect()
	got := d.Li(ray, s, smp)

	// point light at distance 5 directly overhead: weight = power/(4*pi*d^2) = 1/25.
	// NEE = weight * f(uv,wo,wi) = weight * albedo/pi*cosTheta, cosTheta=1.
	want := albedo.Multiply((1.0 / 25.0) / math.Pi)
	if math.Abs(got.X-want.X) > 1e-6 {
		t.Errorf("Li.X = %v, want %v", got.X, want.X)
	}
}

func TestPathTracer_MatchesDirectOnASingleBounceScene(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.8, 0.8)
	power := core.NewVec3(4*math.Pi, 4*math.Pi, 4*math.Pi)
	s, _ := groundPointLightScene(albedo, power)

	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))

	smpDirect := sampler.NewRandomSampler(7)
	smpDirect.Seed([2]int{0, 0}, 0)
	direct := NewDirect().Li(ray, s, smpDirect)

	smpPath := sampler.NewRandomSampler(7)
	smpPath.Seed([2]int{0, 0}, 0)
	path := NewPathTracer(8).Li(ray, s, smpPath)

	// Both integrators draw light-selection and BSDF samples off the same
	// seeded stream in the same order for a one-surface scene (the fake
	// scene keeps Russian roulette off), so their first-bounce NEE terms
	// coincide exactly.
	if math.Abs(direct.X-path.X) > 1e-6 {
		t.Errorf("direct.X = %v, path.X = %v, want equal on a single-bounce scene", direct.X, path.X)
	}
}

func TestNormals_PointsStraightUpFromFlatGroundQuad(t *testing.T) {
	s, _ := groundPointLightScene(core.One, core.Zero)
	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))
	got := NewNormals().Li(ray, s, nil)

	// the quad's normal is +y; remapped into [0,1], that is (0.5, 1, 0.5).
	want := core.NewVec3(0.5, 1, 0.5)
	if math.Abs(got.Y-want.Y) > 1e-6 {
		t.Errorf("normal color Y = %v, want %v", got.Y, want.Y)
	}
}

func TestDirect_MissReturnsBackground(t *testing.T) {
	s, _ := groundPointLightScene(core.One, core.Zero)
	s.background = core.NewVec3(0.1, 0.2, 0.3)
	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, 1, 0))
	got := NewDirect().Li(ray, s, sampler.NewRandomSampler(1))
	if got != s.background {
		t.Errorf("Li = %v, want background %v", got, s.background)
	}
}
