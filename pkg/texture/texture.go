// Package texture implements uv/point -> color lookups (ColorSource) and the
// one-sided emission profile, component K of the design.
package texture

import (
	"math"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
)

// ColorSource provides spatially-varying colors for materials and emissions,
// indexed by the surface's uv and world point.
type ColorSource interface {
	Evaluate(uv [2]float64, point core.Vec3) core.Vec3
}

// Constant is a ColorSource with a single, spatially-invariant color.
type Constant struct {
	Color core.Vec3
}

func NewConstant(c core.Vec3) *Constant { return &Constant{Color: c} }

func (c *Constant) Evaluate(uv [2]float64, point core.Vec3) core.Vec3 { return c.Color }

// Checkerboard alternates between two colors on a uv grid scaled by Scale,
// following the original renderer's XOR-parity checkerboard.
type Checkerboard struct {
	Color0, Color1 core.Vec3
	Scale          float64
}

func NewCheckerboard(c0, c1 core.Vec3, scale float64) *Checkerboard {
	if scale == 0 {
		scale = 1
	}
	return &Checkerboard{Color0: c0, Color1: c1, Scale: scale}
}

func (c *Checkerboard) Evaluate(uv [2]float64, point core.Vec3) core.Vec3 {
	ix := int(math.Floor(uv[0] * c.Scale))
	iy := int(math.Floor(uv[1] * c.Scale))
	if (ix+iy)%2 == 0 {
		return c.Color0
	}
	return c.Color1
}

// Emission wraps a ColorSource as a core.Emitter, applying the one-sided
// clamp: radiance is zero unless the outgoing local direction is on the
// same side as the shading normal.
type Emission struct {
	Radiance ColorSource
}

func NewEmission(radiance ColorSource) *Emission { return &Emission{Radiance: radiance} }

func (e *Emission) Evaluate(uv [2]float64, woLocal core.Vec3) core.Vec3 {
	if core.CosTheta(woLocal) <= 0 {
		return core.Zero
	}
	return e.Radiance.Evaluate(uv, core.Zero)
}

var _ core.Emitter = (*Emission)(nil)
