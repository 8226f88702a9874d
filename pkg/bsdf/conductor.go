package bsdf

import (
	"github.com/JoeJoeTV/picture-perfector/pkg/core"
	"github.com/JoeJoeTV/picture-perfector/pkg/texture"
)

// Conductor is a perfectly smooth mirror: a Dirac reflection lobe, so
// Evaluate is always zero and Sample deterministically reflects wo about the
// macro-normal.
type Conductor struct {
	Reflectance texture.ColorSource
}

func NewConductor(reflectance texture.ColorSource) *Conductor {
	return &Conductor{Reflectance: reflectance}
}

func (c *Conductor) Evaluate(uv [2]float64, woLocal, wiLocal core.Vec3) core.Vec3 {
	return core.Zero
}

func (c *Conductor) Sample(uv [2]float64, woLocal core.Vec3, s core.Sampler) (core.ScatterSample, bool) {
	wi := Reflect(woLocal, core.NewVec3(0, 0, 1))
	weight := c.Reflectance.Evaluate(uv, core.Zero)
	return core.ScatterSample{WiLocal: wi, Weight: weight}, true
}

func (c *Conductor) IsDelta() bool { return true }

var _ core.Material = (*Conductor)(nil)
