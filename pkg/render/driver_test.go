package render

import (
	"testing"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
)

// fakeCamera emits a ray straight down -z for every pixel, ignoring the
// pixel coordinate entirely — enough to drive the integrator below.
type fakeCamera struct{}

func (fakeCamera) SampleRay(px, py float64, smp core.Sampler) (core.Ray, float64) {
	return core.NewRay(core.Zero, core.NewVec3(0, 0, -1)), 1.0
}

// fakeScene has no geometry and no lights; its only job here is to carry a
// camera and a sampling config through to the driver.
type fakeScene struct {
	cam core.Camera
	cfg core.SamplingConfig
}

func (s *fakeScene) Intersect(ray core.Ray, its *core.Intersection, smp core.Sampler) bool { return false }
func (s *fakeScene) IntersectP(ray core.Ray, tMin, tMax float64) bool                      { return false }
func (s *fakeScene) Lights() []core.Light                                                  { return nil }
func (s *fakeScene) SampleLight(smp core.Sampler) (core.Light, float64, bool)              { return nil, 0, false }
func (s *fakeScene) LightPDF() float64                                                     { return 0 }
func (s *fakeScene) Background(ray core.Ray) core.Vec3                                     { return core.Zero }
func (s *fakeScene) Camera() core.Camera                                                   { return s.cam }
func (s *fakeScene) SamplingConfig() core.SamplingConfig                                   { return s.cfg }

var _ core.Scene = (*fakeScene)(nil)

// constantIntegrator ignores the ray entirely and returns a fixed color, so
// the driver's accumulation/averaging arithmetic can be checked exactly.
type constantIntegrator struct{ color core.Vec3 }

func (c constantIntegrator) Li(ray core.Ray, scene core.Scene, smp core.Sampler) core.Vec3 {
	return c.color
}

func TestDriver_Render_EveryPixelMatchesConstantIntegrator(t *testing.T) {
	scene := &fakeScene{cam: fakeCamera{}, cfg: core.SamplingConfig{SamplesPerPixel: 4, MaxDepth: 1}}
	color := core.NewVec3(0.25, 0.5, 0.75)
	integ := constantIntegrator{color: color}
	cfg := Config{Width: 20, Height: 15, SamplesPerPixel: 4, TileSize: 8, Workers: 2}

	d := NewDriver(scene, integ, cfg, 42)

	tilesSeen := 0
	fb := d.Render(func(tile Tile, completed, total int, fb *Framebuffer) { tilesSeen++ })

	expectedTiles := len(SpiralTiles(cfg.Width, cfg.Height, cfg.TileSize))
	if tilesSeen != expectedTiles {
		t.Errorf("tilesSeen = %d, want %d", tilesSeen, expectedTiles)
	}

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			got := fb.At(x, y)
			if got != color {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, color)
			}
		}
	}
}

func TestDriver_Render_ZeroSamplesPerPixelLeavesFramebufferZero(t *testing.T) {
	scene := &fakeScene{cam: fakeCamera{}, cfg: core.SamplingConfig{SamplesPerPixel: 0}}
	integ := constantIntegrator{color: core.One}
	cfg := Config{Width: 4, Height: 4, SamplesPerPixel: 0, TileSize: 64, Workers: 1}

	d := NewDriver(scene, integ, cfg, 1)
	fb := d.Render(nil)

	if fb.At(0, 0) != core.Zero {
		t.Errorf("pixel = %v, want zero", fb.At(0, 0))
	}
}
