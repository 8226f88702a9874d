// Package scene assembles instances, lights, and a camera into a
// core.Scene: the read-only aggregate integrators query for nearest-hit,
// shadow, and light-sampling queries.
package scene

import (
	"math"

	"github.com/JoeJoeTV/picture-perfector/pkg/accel"
	"github.com/JoeJoeTV/picture-perfector/pkg/core"
)

// Scene is the concrete core.Scene: a BVH over instances, a flat light
// list, a background (either a constant color or an environment light's
// Background), and a camera.
type Scene struct {
	Instances []core.Instance
	LightList []core.Light
	Camera_   core.Camera
	Config    core.SamplingConfig

	// BackgroundFn evaluates the miss color for a ray; defaults to a
	// constant black background when nil.
	BackgroundFn func(ray core.Ray) core.Vec3

	bvh *accel.BVH
}

// Build constructs the scene's BVH over its instances. Call once after all
// instances and lights have been assembled.
func (s *Scene) Build() {
	prims := make([]core.Primitive, len(s.Instances))
	for i, inst := range s.Instances {
		prims[i] = inst
	}
	s.bvh = accel.NewBVH(prims)
}

func (s *Scene) Intersect(ray core.Ray, its *core.Intersection, smp core.Sampler) bool {
	if s.bvh == nil {
		return false
	}
	return s.bvh.Intersect(ray, its, smp)
}

func (s *Scene) IntersectP(ray core.Ray, tMin, tMax float64) bool {
	if s.bvh == nil {
		return false
	}
	its := core.NewIntersection()
	its.T = tMax
	if !s.bvh.Intersect(ray, its, nil) {
		return false
	}
	return its.T >= tMin
}

func (s *Scene) Lights() []core.Light { return s.LightList }

func (s *Scene) SampleLight(smp core.Sampler) (core.Light, float64, bool) {
	if len(s.LightList) == 0 {
		return nil, 0, false
	}
	u, _ := smp.Next2D()
	idx := int(u * float64(len(s.LightList)))
	if idx >= len(s.LightList) {
		idx = len(s.LightList) - 1
	}
	return s.LightList[idx], s.LightPDF(), true
}

func (s *Scene) LightPDF() float64 {
	if len(s.LightList) == 0 {
		return 0
	}
	return 1 / float64(len(s.LightList))
}

func (s *Scene) Background(ray core.Ray) core.Vec3 {
	if s.BackgroundFn == nil {
		return core.Zero
	}
	return s.BackgroundFn(ray)
}

func (s *Scene) Camera() core.Camera { return s.Camera_ }

func (s *Scene) SamplingConfig() core.SamplingConfig { return s.Config }

var _ core.Scene = (*Scene)(nil)

// gradientBackground builds a BackgroundFn that linearly interpolates
// between bottomColor and topColor by the ray direction's y component,
// the teacher's sky-gradient convention for scenes with no environment map.
func gradientBackground(topColor, bottomColor core.Vec3) func(core.Ray) core.Vec3 {
	return func(ray core.Ray) core.Vec3 {
		t := 0.5 * (ray.Direction.Normalize().Y + 1)
		t = math.Max(0, math.Min(1, t))
		return bottomColor.Multiply(1 - t).Add(topColor.Multiply(t))
	}
}
