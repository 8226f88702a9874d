package integrator

import "github.com/JoeJoeTV/picture-perfector/pkg/core"

// PathTracer implements unidirectional path tracing with next-event
// estimation: per bounce it adds surface emission and one light sample,
// then continues along a BSDF-sampled direction, terminating either on an
// invalid BSDF sample, a miss, or the configured max depth.
type PathTracer struct {
	MaxDepth int
}

func NewPathTracer(maxDepth int) *PathTracer { return &PathTracer{MaxDepth: maxDepth} }

func (pt *PathTracer) Li(ray core.Ray, scene core.Scene, smp core.Sampler) core.Vec3 {
	radiance := core.Zero
	throughput := core.One
	currentRay := ray
	cfg := scene.SamplingConfig()

	portalHops := 0
	for i := 0; i < pt.MaxDepth; i++ {
		if terminate, compensation := applyRussianRoulette(i, throughput, cfg, smp); terminate {
			break
		} else {
			throughput = throughput.Multiply(compensation)
		}

		its := core.NewIntersection()
		if !scene.Intersect(currentRay, its, smp) {
			radiance = radiance.Add(throughput.MultiplyVec(scene.Background(currentRay)))
			break
		}
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

		emitted := core.Zero
		if emitter := inst.Emission(); emitter != nil {
			emitted = emitter.Evaluate(its.UV, woLocal)
		}

		nee := core.Zero
		if i < pt.MaxDepth-1 {
			// NEE is suppressed on the final bounce: its contribution would
			// not be balanced by a following BSDF-sampled bounce.
			nee = sampleDirectLighting(scene, mat, its.UV, its.Frame, its.Position, woWorld, smp)
		}

		radiance = radiance.Add(throughput.MultiplyVec(emitted.Add(nee)))

		scatter, ok := mat.Sample(its.UV, woLocal, smp)
		if !ok {
			break
		}
		throughput = throughput.MultiplyVec(scatter.Weight)

		wiWorld := its.Frame.ToWorld(scatter.WiLocal)
		currentRay = core.NewRay(its.Position, wiWorld)
	}

	return radiance
}

var _ Integrator = (*PathTracer)(nil)
