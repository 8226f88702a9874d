package integrator

import (
	"math"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
)

// intersectTr walks from origin along wi up to distance, accumulating the
// transmittance of every medium-only boundary it passes through (an
// instance with no material, attached purely to bound a participating
// medium). It returns zero the first time it meets a real BSDF surface
// before distance, and the accumulated transmittance (one, if nothing was
// in the way) otherwise.
func intersectTr(scene core.Scene, origin, wi core.Vec3, distance float64, smp core.Sampler) core.Vec3 {
	const epsilon = 1e-4
	weight := core.One
	currentOrigin := origin
	remaining := distance

	for {
		currentRay := core.NewRay(currentOrigin, wi)
		its := core.NewIntersection()
		its.T = math.Inf(1)
		if !scene.Intersect(currentRay, its, smp) || its.T > remaining-epsilon {
			return weight
		}

		inst := its.Instance
		if inst.Material() != nil {
			return core.Zero
		}

		if m := inst.InsideMedium(); m != nil {
			weight = weight.MultiplyVec(m.Tr(currentRay, its.T, smp))
		}

		traveled := its.Position.Subtract(currentOrigin).Length()
		remaining -= traveled
		currentOrigin = its.Position
		if remaining <= epsilon {
			return weight
		}
	}
}

// sampleMediumDirectLighting is the volume-path-tracer's analogue of
// sampleDirectLighting for a scatter point inside a medium: there is no
// surface frame or BSDF, only the light's own geometric weight, folded
// through medium-aware visibility.
func sampleMediumDirectLighting(scene core.Scene, activeMedium core.Medium, origin core.Vec3, smp core.Sampler) core.Vec3 {
	lightPicked, lightPDF, ok := scene.SampleLight(smp)
	if !ok || lightPDF <= 0 {
		return core.Zero
	}
	// A light whose radiance is also reachable by a random surface hit is
	// skipped here to avoid double counting against the integrator's own
	// emission term on a later bounce.
	if lightPicked.CanBeIntersected() {
		return core.Zero
	}
	direct := lightPicked.SampleDirect(origin, smp)
	if direct.Weight.IsZero() || direct.Distance <= 0 {
		return core.Zero
	}

	traceDistance := direct.Distance
	if math.IsInf(traceDistance, 1) {
		traceDistance = 1e30
	}
	tr := intersectTr(scene, origin, direct.Wi, traceDistance, smp)
	if tr.IsZero() {
		return core.Zero
	}

	return direct.Weight.MultiplyVec(tr).Multiply(1 / lightPDF)
}

// sampleDirectLightingTr is sampleDirectLighting's medium-aware counterpart:
// visibility is tested with intersectTr rather than a single boolean
// occlusion test, so a shadow ray that merely crosses medium-only boundaries
// before reaching the light still contributes, attenuated by their
// transmittance.
func sampleDirectLightingTr(scene core.Scene, mat core.Material, uv [2]float64, frame core.Frame, origin, woWorld core.Vec3, smp core.Sampler) core.Vec3 {
	if mat.IsDelta() {
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

	traceDistance := direct.Distance
	if math.IsInf(traceDistance, 1) {
		traceDistance = 1e30
	}
	tr := intersectTr(scene, origin, direct.Wi, traceDistance, smp)
	if tr.IsZero() {
		return core.Zero
	}

	woLocal := frame.ToLocal(woWorld)
	wiLocal := frame.ToLocal(direct.Wi)
	f := mat.Evaluate(uv, woLocal, wiLocal)
	if f.IsZero() {
		return core.Zero
	}
	return direct.Weight.MultiplyVec(tr).MultiplyVec(f).Multiply(1 / lightPDF)
}
