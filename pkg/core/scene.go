package core

// SamplingConfig groups the render-time tunables that flow from the driver
// down into every integrator call, mirroring this codebase's convention of
// passing one small config value by copy rather than threading individual
// parameters.
type SamplingConfig struct {
	Width, Height             int
	SamplesPerPixel           int
	MaxDepth                  int
	RussianRouletteMinBounces int
	RussianRouletteMinSamples int
}

// Camera turns a pixel sample into a primary ray.
type Camera interface {
	// SampleRay returns a world-space ray for the given continuous pixel
	// coordinate (already jittered by the caller) and an importance weight
	// (1 for an ideal pinhole/thin-lens camera).
	SampleRay(pixelX, pixelY float64, sampler Sampler) (ray Ray, weight float64)
}

// Scene is the read-only aggregate integrators query: nearest-hit queries
// through the BVH, light sampling, and the camera. Defined in core (rather
// than imported from pkg/scene) so that pkg/integrator and pkg/render can
// depend on the interface without importing the concrete scene package,
// which in turn depends on instance/light/shape/camera.
type Scene interface {
	Intersect(ray Ray, its *Intersection, sampler Sampler) bool
	// IntersectP is a shadow/occlusion test bounded to (tMin, tMax); it does
	// not need to report which primitive was hit.
	IntersectP(ray Ray, tMin, tMax float64) bool
	Lights() []Light
	// SampleLight uniformly selects one light and returns it with the
	// selection probability (1/len(Lights())), or ok=false if there are no
	// lights.
	SampleLight(sampler Sampler) (light Light, pdf float64, ok bool)
	// LightPDF is the selection probability of any light under
	// SampleLight's uniform policy (1/len(Lights())).
	LightPDF() float64
	Background(ray Ray) Vec3
	Camera() Camera
	SamplingConfig() SamplingConfig
}
