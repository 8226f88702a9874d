package scene

import (
	"math"

	"github.com/JoeJoeTV/picture-perfector/pkg/bsdf"
	"github.com/JoeJoeTV/picture-perfector/pkg/camera"
	"github.com/JoeJoeTV/picture-perfector/pkg/core"
	"github.com/JoeJoeTV/picture-perfector/pkg/instance"
	"github.com/JoeJoeTV/picture-perfector/pkg/light"
	"github.com/JoeJoeTV/picture-perfector/pkg/shape"
	"github.com/JoeJoeTV/picture-perfector/pkg/texture"
)

// oklchToRGB converts OKLCH color values (lightness, chroma, hue-degrees)
// to linear RGB via the OKLAB intermediate space.
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180

	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_, m_, s_ = l_*l_*l_, m_*m_*m_, s_*s_*s_

	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(clampf01(r), clampf01(g), clampf01(blue))
}

func clampf01(v float64) float64 { return math.Max(0, math.Min(1, v)) }

// NewSphereGridScene builds a grid of metallic spheres of varying roughness
// and OKLCH-derived color over a ground plane, lit by one warm sun-like
// sphere light — a stress test for glossy-reflection sampling and
// many-instance BVH traversal.
func NewSphereGridScene() *Scene {
	camTransform, err := core.Identity().LookAt(
		core.NewVec3(4.5, 6, 18),
		core.NewVec3(4.5, 0.8, 4.5),
		core.NewVec3(0, 1, 0),
	)
	if err != nil {
		panic(err)
	}
	persp := camera.NewPerspective(camTransform, 40, camera.FovAxisY, 800, 450)
	cam := camera.NewThinLens(persp, 0.02, camTransform.Apply(core.Zero).Subtract(core.NewVec3(4.5, 0.8, 4.5)).Length())

	s := &Scene{
		Camera_:      cam,
		BackgroundFn: gradientBackground(core.NewVec3(0.5, 0.7, 1.0), core.One),
		Config: core.SamplingConfig{
			Width:                     800,
			Height:                    450,
			SamplesPerPixel:           100,
			MaxDepth:                  40,
			RussianRouletteMinBounces: 12,
			RussianRouletteMinSamples: 6,
		},
	}

	// Sun-like sphere light.
	sunTransform := unitSphereTransform(core.NewVec3(20, 25, 20), 8)
	sunMat := bsdf.NewDiffuse(texture.NewConstant(core.Zero))
	sunInst := instance.NewInstance(shape.NewSphere(), sunTransform, sunMat)
	sunInst.Emit = texture.NewEmission(texture.NewConstant(core.NewVec3(12, 11.5, 10)))
	s.Instances = append(s.Instances, sunInst)
	s.LightList = append(s.LightList, light.NewArea(sunInst))

	// Ground, a large quad standing in for an infinite plane.
	const groundSize = 1000.0
	groundMat := bsdf.NewDiffuse(texture.NewConstant(core.NewVec3(0.5, 0.5, 0.5)))
	groundCorner := core.NewVec3(4.5-groundSize/2, 0, 4.5-groundSize/2)
	s.Instances = append(s.Instances, instance.NewInstance(
		shape.NewQuad(groundCorner, core.NewVec3(groundSize, 0, 0), core.NewVec3(0, 0, groundSize)), nil, groundMat))

	const gridSize = 20
	const targetArea = 9.0
	spacing := targetArea / float64(gridSize-1)

	sphereRadius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	const baseLightness = 0.65
	const minChroma, maxChroma = 0.05, 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2 + 4.5
			z := float64(j)*spacing - targetArea/2 + 4.5
			y := sphereRadius

			hue := (float64(i) / float64(gridSize-1)) * 360
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			color := oklchToRGB(lightness, chroma, hue)

			roughness := 0.05 + 0.1*float64((i+j)%3)/2
			mat := bsdf.NewRoughConductor(texture.NewConstant(core.NewVec3(roughness, roughness, roughness)), texture.NewConstant(color))

			transform := unitSphereTransform(core.NewVec3(x, y, z), sphereRadius)
			s.Instances = append(s.Instances, instance.NewInstance(shape.NewSphere(), transform, mat))
		}
	}

	s.Build()
	return s
}
