package sdf

import (
	"fmt"
	"math"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
)

// CombineMode selects how two SDF nodes are combined.
type CombineMode int

const (
	Union CombineMode = iota
	Sub
	Intersect
)

// smoothUnion is Iñigo Quílez's polynomial smooth-minimum, blending two
// distances within a region of size k around their crossing.
func smoothUnion(d1, d2, k float64) float64 {
	h := math.Max(k-math.Abs(d1-d2), 0)
	return math.Min(d1, d2) - h*h*0.25/k
}

// Combine joins two SDF nodes under Mode, optionally with a smooth blend of
// width SmoothSize instead of a hard min/max.
type Combine struct {
	First, Second Node
	Mode          CombineMode
	Smooth        bool
	SmoothSize    float64
}

func NewCombine(first, second Node, mode CombineMode, smooth bool, smoothSize float64) *Combine {
	if smoothSize == 0 {
		smoothSize = 1
	}
	return &Combine{First: first, Second: second, Mode: mode, Smooth: smooth, SmoothSize: smoothSize}
}

func (c *Combine) EstimateDistance(p core.Vec3) float64 {
	d1 := c.First.EstimateDistance(p)
	d2 := c.Second.EstimateDistance(p)

	if c.Smooth {
		switch c.Mode {
		case Union:
			return smoothUnion(d1, d2, c.SmoothSize)
		case Sub:
			return -smoothUnion(d1, -d2, c.SmoothSize)
		case Intersect:
			return -smoothUnion(-d1, -d2, c.SmoothSize)
		}
		return 0
	}

	switch c.Mode {
	case Union:
		return math.Min(d1, d2)
	case Sub:
		return math.Max(-d1, d2)
	case Intersect:
		return math.Max(d1, d2)
	}
	return 0
}

func (c *Combine) Bounds() core.Bounds {
	return c.First.Bounds().Union(c.Second.Bounds())
}

// Thicken offsets a node's surface outward by Amount.
type Thicken struct {
	Child  Node
	Amount float64
}

func NewThicken(child Node, amount float64) *Thicken { return &Thicken{Child: child, Amount: amount} }

func (t *Thicken) EstimateDistance(p core.Vec3) float64 {
	return t.Child.EstimateDistance(p) - t.Amount
}

func (t *Thicken) Bounds() core.Bounds {
	return t.Child.Bounds().Expand(t.Amount)
}

// Transform places a child node under a rigid-plus-uniform-scale transform.
// NewSDFTransform returns an error if the transform's scale is non-uniform, since a
// signed distance field is only preserved (up to the returned scale factor)
// under uniform scaling.
type Transform struct {
	Child     Node
	transform *core.Transform
	scale     float64
}

// NewSDFTransform wraps child under transform, rejecting a non-uniform
// scale. The distance estimate evaluates the child in its unscaled local
// space and rescales the result by the uniform factor, so that the returned
// distance remains a true (not merely signed) distance in world space.
func NewSDFTransform(child Node, transform *core.Transform) (*Transform, error) {
	scale, unscaled := transform.PopScale()
	const eps = 1e-4
	if math.Abs(scale.X-scale.Y) >= eps || math.Abs(scale.Y-scale.Z) >= eps || math.Abs(scale.Z-scale.X) >= eps {
		return nil, fmt.Errorf("sdf: only uniform scaling is allowed for an sdf transform, got %v", scale)
	}
	return &Transform{Child: child, transform: unscaled, scale: scale.X}, nil
}

func (t *Transform) EstimateDistance(p core.Vec3) float64 {
	local := t.transform.InverseApply(p)
	if t.scale == 0 {
		return t.Child.EstimateDistance(local)
	}
	return t.Child.EstimateDistance(local.Multiply(1 / t.scale)) * t.scale
}

func (t *Transform) Bounds() core.Bounds {
	childBounds := t.Child.Bounds()
	corners := childBounds.Corners()
	result := core.NewBoundsFromPoints(t.transform.Apply(corners[0].Multiply(t.scale)))
	for _, c := range corners[1:] {
		result = result.UnionPoint(t.transform.Apply(c.Multiply(t.scale)))
	}
	return result
}

var (
	_ Node = (*Combine)(nil)
	_ Node = (*Thicken)(nil)
	_ Node = (*Transform)(nil)
)
