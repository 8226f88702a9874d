package integrator

import (
	"math"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
)

// VolumePathTracer extends PathTracer with a tracked active medium: at each
// step it draws a tentative scattering distance inside the active medium
// (if any) and, should that distance land before the surface hit, performs a
// medium scatter event instead of a surface one. Entering/leaving a medium
// is detected from which side of the hit surface wo and the sampled wi fall
// on.
type VolumePathTracer struct {
	MaxDepth int
}

func NewVolumePathTracer(maxDepth int) *VolumePathTracer { return &VolumePathTracer{MaxDepth: maxDepth} }

func (vpt *VolumePathTracer) Li(ray core.Ray, scene core.Scene, smp core.Sampler) core.Vec3 {
	radiance := core.Zero
	throughput := core.One
	currentRay := ray
	var currentMedium core.Medium
	cfg := scene.SamplingConfig()

	portalHops := 0
	for i := 0; i < vpt.MaxDepth; i++ {
		if terminate, compensation := applyRussianRoulette(i, throughput, cfg, smp); terminate {
			break
		} else {
			throughput = throughput.Multiply(compensation)
		}

		its := core.NewIntersection()
		hit := scene.Intersect(currentRay, its, smp)

		tScatter := math.Inf(1)
		pBeforeHit := 0.0
		if currentMedium != nil {
			if t, ok := currentMedium.SampleHitDistance(currentRay, smp); ok {
				tScatter = t
			}
			if hit {
				pBeforeHit = clamp01(currentMedium.ProbOfSamplingBeforeT(its.T))
			}
		}

		if !hit {
			if currentMedium != nil {
				break
			}
			radiance = radiance.Add(throughput.MultiplyVec(scene.Background(currentRay)))
			break
		}

		if tScatter < its.T {
			// Medium scatter event.
			scatterPos := currentRay.At(tScatter)
			tr := currentMedium.Tr(currentRay, tScatter, smp)
			pdf := currentMedium.ProbOfSamplingThisPoint(tScatter)
			if pdf <= 0 {
				break
			}

			var nee core.Vec3
			if i < vpt.MaxDepth-1 {
				nee = sampleMediumDirectLighting(scene, currentMedium, scatterPos, smp)
			}

			throughput = throughput.MultiplyVec(tr).MultiplyVec(currentMedium.SigmaS()).Multiply(1 / (pdf * math.Pi))
			radiance = radiance.Add(throughput.MultiplyVec(nee))

			woLocal := currentRay.Direction.Negate()
			wiLocal := currentMedium.PhaseSample(woLocal, smp)
			currentRay = core.NewRay(scatterPos, wiLocal)
			continue
		}

		// Surface scatter event.
		if its.ForwardRay != nil {
			portalHops++
			if portalHops > maxPortalHops {
				break
			}
			currentRay = *its.ForwardRay
			i--
			continue
		}

		inst := its.Instance
		mat := inst.Material()
		woWorld := currentRay.Direction.Negate()
		woLocal := its.Frame.ToLocal(woWorld)

		var scatter core.ScatterSample
		sampleOK := false
		if mat != nil {
			scatter, sampleOK = mat.Sample(its.UV, woLocal, smp)
		}

		if sampleOK {
			wiLocalSign := core.CosTheta(scatter.WiLocal)
			woLocalSign := core.CosTheta(woLocal)
			if woLocalSign < 0 && wiLocalSign > 0 {
				currentMedium = nil
			} else if woLocalSign > 0 && wiLocalSign < 0 {
				currentMedium = inst.InsideMedium()
			}
		}

		emitted := core.Zero
		if emitter := inst.Emission(); emitter != nil {
			emitted = emitter.Evaluate(its.UV, woLocal)
		}

		nee := core.Zero
		if mat != nil && i < vpt.MaxDepth-1 {
			nee = sampleDirectLightingTr(scene, mat, its.UV, its.Frame, its.Position, woWorld, smp)
		}

		divisor := 1 - pBeforeHit
		if divisor <= 0 {
			divisor = 1
		}
		radiance = radiance.Add(throughput.MultiplyVec(emitted.Add(nee)).Multiply(1 / divisor))

		if !sampleOK {
			break
		}
		throughput = throughput.MultiplyVec(scatter.Weight)
		wiWorld := its.Frame.ToWorld(scatter.WiLocal)
		currentRay = core.NewRay(its.Position, wiWorld)
	}

	return radiance
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

var _ Integrator = (*VolumePathTracer)(nil)
