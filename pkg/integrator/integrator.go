// Package integrator implements component H: light-transport estimators
// that consume a camera ray and a sampler and return a tristimulus estimate
// of incoming radiance, plus two debug integrators (shading normals and SDF
// step fraction) useful for inspecting geometry without full transport.
package integrator

import (
	"math"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
)

// Integrator estimates incoming radiance along a ray through a scene.
type Integrator interface {
	Li(ray core.Ray, scene core.Scene, smp core.Sampler) core.Vec3
}

// occluded runs a shadow ray bounded by (epsilon, distance-epsilon) and
// reports whether anything blocks it.
func occluded(scene core.Scene, origin, wi core.Vec3, distance float64) bool {
	const epsilon = 1e-4
	shadowRay := core.NewRay(origin, wi)
	return scene.IntersectP(shadowRay, epsilon, distance-epsilon)
}

// sampleDirectLighting draws one light from the scene and returns its NEE
// contribution at a shaded point, folding the BSDF evaluation and visibility
// test in, or zero if there are no lights, the light rejects itself, is
// occluded, or the BSDF is zero in that direction. A light that announces
// CanBeIntersected is rejected outright: its contribution already reaches
// the image through the integrator's own emission-at-hit term on whichever
// bounce lands on it by chance, so NEE-sampling it here would double count.
func sampleDirectLighting(scene core.Scene, mat core.Material, uv [2]float64, frame core.Frame, origin, woWorld core.Vec3, smp core.Sampler) core.Vec3 {
	if mat.IsDelta() {
		// A Dirac BSDF has zero density in every direction but the one the
		// mirror/glass sample already chose, so a light sample drawn here
		// would evaluate to zero regardless of which light was picked.
		return core.Zero
	}
	lightPicked, lightPDF, ok := scene.SampleLight(smp)
	if !ok || lightPDF <= 0 {
		return core.Zero
	}
	if lightPicked.CanBeIntersected() {
		return core.Zero
	}
	direct := lightPicked.SampleDirect(origin, smp)
	if direct.Weight.IsZero() || direct.Distance <= 0 {
		return core.Zero
	}
	if math.IsInf(direct.Distance, 1) {
		if occluded(scene, origin, direct.Wi, 1e30) {
			return core.Zero
		}
	} else if occluded(scene, origin, direct.Wi, direct.Distance) {
		return core.Zero
	}

	woLocal := frame.ToLocal(woWorld)
	wiLocal := frame.ToLocal(direct.Wi)
	f := mat.Evaluate(uv, woLocal, wiLocal)
	if f.IsZero() {
		return core.Zero
	}
	return direct.Weight.MultiplyVec(f).Multiply(1 / lightPDF)
}
