package scene

import (
	"github.com/JoeJoeTV/picture-perfector/pkg/bsdf"
	"github.com/JoeJoeTV/picture-perfector/pkg/camera"
	"github.com/JoeJoeTV/picture-perfector/pkg/core"
	"github.com/JoeJoeTV/picture-perfector/pkg/instance"
	"github.com/JoeJoeTV/picture-perfector/pkg/light"
	"github.com/JoeJoeTV/picture-perfector/pkg/shape"
	"github.com/JoeJoeTV/picture-perfector/pkg/texture"
)

// NewCornellScene builds the classic Cornell box: a 555-unit cube of
// diffuse walls with a glowing ceiling panel and a metallic and a glass
// sphere inside, the reference test scene for a path tracer's handling of
// diffuse interreflection, specular transport, and area-light sampling.
func NewCornellScene() *Scene {
	const boxSize = 555.0

	camTransform, err := core.Identity().LookAt(
		core.NewVec3(278, 278, -800),
		core.NewVec3(278, 278, 0),
		core.NewVec3(0, 1, 0),
	)
	if err != nil {
		panic(err)
	}
	cam := camera.NewPerspective(camTransform, 40, camera.FovAxisY, 400, 400)

	white := bsdf.NewDiffuse(texture.NewConstant(core.NewVec3(0.73, 0.73, 0.73)))
	red := bsdf.NewDiffuse(texture.NewConstant(core.NewVec3(0.65, 0.05, 0.05)))
	green := bsdf.NewDiffuse(texture.NewConstant(core.NewVec3(0.12, 0.45, 0.15)))

	s := &Scene{
		Camera_:      cam,
		BackgroundFn: gradientBackground(core.Zero, core.Zero),
		Config: core.SamplingConfig{
			Width:                     400,
			Height:                    400,
			SamplesPerPixel:           150,
			MaxDepth:                  40,
			RussianRouletteMinBounces: 4,
			RussianRouletteMinSamples: 6,
		},
	}

	addQuad := func(corner, u, v core.Vec3, mat core.Material) {
		inst := instance.NewInstance(shape.NewQuad(corner, u, v), nil, mat)
		s.Instances = append(s.Instances, inst)
	}

	// Floor.
	addQuad(core.NewVec3(0, 0, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white)
	// Ceiling.
	addQuad(core.NewVec3(0, boxSize, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white)
	// Back wall.
	addQuad(core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), white)
	// Left wall (red).
	addQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0), red)
	// Right wall (green).
	addQuad(core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), green)

	// Ceiling light panel.
	const lightSize = 130.0
	lightOffset := (boxSize - lightSize) / 2
	lightShape := shape.NewQuad(
		core.NewVec3(lightOffset, boxSize-1, lightOffset),
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize),
	)
	lightEmitter := texture.NewEmission(texture.NewConstant(core.NewVec3(15, 15, 15)))
	lightMat := bsdf.NewDiffuse(texture.NewConstant(core.Zero))
	lightInst := instance.NewInstance(lightShape, nil, lightMat)
	lightInst.Emit = lightEmitter
	s.Instances = append(s.Instances, lightInst)
	s.LightList = append(s.LightList, light.NewArea(lightInst))

	// Left sphere: shiny metal.
	metalSphereTransform := unitSphereTransform(core.NewVec3(185, 82.5, 169), 82.5)
	metalMat := bsdf.NewConductor(texture.NewConstant(core.NewVec3(0.8, 0.8, 0.9)))
	s.Instances = append(s.Instances, instance.NewInstance(shape.NewSphere(), metalSphereTransform, metalMat))

	// Right sphere: glass.
	glassSphereTransform := unitSphereTransform(core.NewVec3(370, 90, 351), 90)
	glassMat := bsdf.NewDielectric(1.5, texture.NewConstant(core.One), texture.NewConstant(core.One))
	s.Instances = append(s.Instances, instance.NewInstance(shape.NewSphere(), glassSphereTransform, glassMat))

	s.Build()
	return s
}

// unitSphereTransform places the canonical unit sphere at center with the
// given radius via a translate-then-scale transform.
func unitSphereTransform(center core.Vec3, radius float64) *core.Transform {
	t, err := core.Identity().Translate(center)
	if err != nil {
		panic(err)
	}
	t, err = t.Scale(core.NewVec3(radius, radius, radius))
	if err != nil {
		panic(err)
	}
	return t
}
