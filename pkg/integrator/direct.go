package integrator

import "github.com/JoeJoeTV/picture-perfector/pkg/core"

// maxPortalHops bounds how many consecutive portal teleports a single ray
// may take before the integrator gives up, guarding against a misconfigured
// portal pair that would otherwise loop forever.
const maxPortalHops = 16

// Direct estimates one-bounce radiance: emission at the first hit plus a
// next-event-estimation sample from one light, plus a single indirect
// bounce sampled from the surface BSDF.
type Direct struct{}

func NewDirect() *Direct { return &Direct{} }

func (d *Direct) Li(ray core.Ray, scene core.Scene, smp core.Sampler) core.Vec3 {
	currentRay := ray
	its := core.NewIntersection()
	for hop := 0; hop < maxPortalHops; hop++ {
		*its = *core.NewIntersection()
		if !scene.Intersect(currentRay, its, smp) {
			return scene.Background(currentRay)
		}
		if its.ForwardRay != nil {
			currentRay = *its.ForwardRay
			continue
		}
		break
	}

	inst := its.Instance
	mat := inst.Material()
	woWorld := currentRay.Direction.Negate()
	woLocal := its.Frame.ToLocal(woWorld)

	radiance := core.Zero
	if emitter := inst.Emission(); emitter != nil {
		radiance = radiance.Add(emitter.Evaluate(its.UV, woLocal))
	}

	radiance = radiance.Add(sampleDirectLighting(scene, mat, its.UV, its.Frame, its.Position, woWorld, smp))

	scatter, ok := mat.Sample(its.UV, woLocal, smp)
	if !ok {
		return radiance
	}
	wiWorld := its.Frame.ToWorld(scatter.WiLocal)
	bounceRay := core.NewRay(its.Position, wiWorld)

	bounceIts := core.NewIntersection()
	if !scene.Intersect(bounceRay, bounceIts, smp) {
		return radiance.Add(scatter.Weight.MultiplyVec(scene.Background(bounceRay)))
	}
	if emitter := bounceIts.Instance.Emission(); emitter != nil {
		bounceWo := bounceIts.Frame.ToLocal(wiWorld.Negate())
		radiance = radiance.Add(scatter.Weight.MultiplyVec(emitter.Evaluate(bounceIts.UV, bounceWo)))
	}
	return radiance
}

var _ Integrator = (*Direct)(nil)
