// Package camera implements component L: perspective and thin-lens cameras,
// each mapping a continuous pixel coordinate to a world-space ray via
// core.Scene's Camera contract.
package camera

import (
	"math"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
	"github.com/JoeJoeTV/picture-perfector/pkg/sampler"
)

// FovAxis selects which image axis the field-of-view angle is measured
// along; the orthogonal axis is scaled by the image aspect ratio.
type FovAxis int

const (
	FovAxisX FovAxis = iota
	FovAxisY
)

// Perspective is a pinhole camera: rays fan out from a single point through
// a virtual image plane one unit in front of it.
type Perspective struct {
	Transform     *core.Transform
	Width, Height int
	halfW, halfH  float64
}

// NewPerspective precomputes half-widths on the image plane from a
// field-of-view angle (degrees) measured along axis, scaling the orthogonal
// axis by the image's aspect ratio.
func NewPerspective(transform *core.Transform, fovDegrees float64, axis FovAxis, width, height int) *Perspective {
	half := math.Tan(fovDegrees * math.Pi / 360)
	aspect := float64(width) / float64(height)

	p := &Perspective{Transform: transform, Width: width, Height: height}
	switch axis {
	case FovAxisX:
		p.halfW = half
		p.halfH = half / aspect
	default:
		p.halfH = half
		p.halfW = half * aspect
	}
	return p
}

// normalized maps a continuous pixel coordinate to [-1,1]^2, with +y
// pointing up the image (opposite pixel-row order).
func (p *Perspective) normalized(pixelX, pixelY float64) (nx, ny float64) {
	nx = 2*pixelX/float64(p.Width) - 1
	ny = 1 - 2*pixelY/float64(p.Height)
	return
}

func (p *Perspective) SampleRay(pixelX, pixelY float64, smp core.Sampler) (core.Ray, float64) {
	nx, ny := p.normalized(pixelX, pixelY)
	local := core.NewVec3(nx*p.halfW, ny*p.halfH, 1).Normalize()
	origin := core.Zero
	direction := local
	if p.Transform != nil {
		origin = p.Transform.Apply(core.Zero)
		direction = p.Transform.ApplyVector(local).Normalize()
	}
	return core.NewRay(origin, direction), 1
}

// ThinLens additionally samples a finite aperture and aims the ray through
// the corresponding point on the focal plane of the centered pinhole ray,
// producing depth-of-field defocus.
type ThinLens struct {
	Perspective    *Perspective
	ApertureRadius float64
	FocalDistance  float64
}

func NewThinLens(perspective *Perspective, apertureRadius, focalDistance float64) *ThinLens {
	return &ThinLens{Perspective: perspective, ApertureRadius: apertureRadius, FocalDistance: focalDistance}
}

func (t *ThinLens) SampleRay(pixelX, pixelY float64, smp core.Sampler) (core.Ray, float64) {
	centerRay, weight := t.Perspective.SampleRay(pixelX, pixelY, smp)
	if t.ApertureRadius <= 0 {
		return centerRay, weight
	}

	focalPoint := centerRay.At(t.FocalDistance)

	u1, u2 := smp.Next2D()
	lensLocal := sampler.UniformDisk(u1, u2).Multiply(t.ApertureRadius)
	lensOrigin := centerRay.Origin
	if t.Perspective.Transform != nil {
		lensOrigin = lensOrigin.Add(t.Perspective.Transform.ApplyVector(lensLocal))
	} else {
		lensOrigin = lensOrigin.Add(lensLocal)
	}

	direction := focalPoint.Subtract(lensOrigin).Normalize()
	return core.NewRay(lensOrigin, direction), weight
}

var (
	_ core.Camera = (*Perspective)(nil)
	_ core.Camera = (*ThinLens)(nil)
)
