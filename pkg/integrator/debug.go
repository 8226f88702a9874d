package integrator

import "github.com/JoeJoeTV/picture-perfector/pkg/core"

// Normals visualizes the shading normal at the first hit, remapped from
// [-1,1] into the [0,1] displayable range, or black on a miss.
type Normals struct{}

func NewNormals() *Normals { return &Normals{} }

func (n *Normals) Li(ray core.Ray, scene core.Scene, smp core.Sampler) core.Vec3 {
	its := core.NewIntersection()
	if !scene.Intersect(ray, its, smp) {
		return core.Zero
	}
	normal := its.Frame.ToWorld(core.NewVec3(0, 0, 1))
	return normal.Add(core.One).Multiply(0.5)
}

var _ Integrator = (*Normals)(nil)

// SDFStepFraction visualizes how many of an SDF shape's ray-march step
// budget a hit consumed (0 = immediate hit, nearing 1 for a hit on the last
// steps), zero elsewhere and on a miss; a march that exhausts its budget is
// a miss.
type SDFStepFraction struct{}

func NewSDFStepFraction() *SDFStepFraction { return &SDFStepFraction{} }

func (s *SDFStepFraction) Li(ray core.Ray, scene core.Scene, smp core.Sampler) core.Vec3 {
	its := core.NewIntersection()
	if !scene.Intersect(ray, its, smp) {
		return core.Zero
	}
	f := its.Stats.SDFStepFraction
	return core.NewVec3(f, f, f)
}

var _ Integrator = (*SDFStepFraction)(nil)
