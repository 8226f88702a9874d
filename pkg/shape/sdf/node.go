// Package sdf implements the signed-distance-function node tree: primitive
// nodes (box, sphere, cylinder, mandelbulb), combinator/operator nodes
// (union/sub/intersect with optional smooth-min, thicken, transform with
// uniform-scale enforcement), and the Shape wrapper (in shape.go) that
// ray-marches a tree to a surface hit.
package sdf

import "github.com/JoeJoeTV/picture-perfector/pkg/core"

// Node is a node in a signed-distance-function tree: it estimates the
// (possibly negative, inside the surface) distance from a point to the
// represented surface, and exposes a conservative world-space bounding box.
type Node interface {
	EstimateDistance(p core.Vec3) float64
	Bounds() core.Bounds
}

// Gradient estimates the normal at p via central finite differences, the
// standard numerical stand-in for the original's automatic-differentiation
// gradient — both compute the same quantity, the local gradient of the
// distance field.
func Gradient(n Node, p core.Vec3, eps float64) core.Vec3 {
	dx := core.NewVec3(eps, 0, 0)
	dy := core.NewVec3(0, eps, 0)
	dz := core.NewVec3(0, 0, eps)
	gx := n.EstimateDistance(p.Add(dx)) - n.EstimateDistance(p.Subtract(dx))
	gy := n.EstimateDistance(p.Add(dy)) - n.EstimateDistance(p.Subtract(dy))
	gz := n.EstimateDistance(p.Add(dz)) - n.EstimateDistance(p.Subtract(dz))
	return core.NewVec3(gx, gy, gz).Normalize()
}

// boundsFromDistanceField derives a conservative axis-aligned bounding box
// for a node that does not know its own extent analytically, by probing the
// distance field far along each axis in each direction — the same
// technique original_source's default SDFObject::getBoundingBox uses.
func boundsFromDistanceField(n Node) core.Bounds {
	const probe = 1e7
	axes := [3]core.Vec3{core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1)}

	var minP, maxP core.Vec3
	for i, axis := range axes {
		far := axis.Multiply(probe)
		dPos := n.EstimateDistance(far)
		dNeg := n.EstimateDistance(far.Negate())
		maxVal := probe - dPos
		minVal := -probe + dNeg
		switch i {
		case 0:
			maxP.X, minP.X = maxVal, minVal
		case 1:
			maxP.Y, minP.Y = maxVal, minVal
		case 2:
			maxP.Z, minP.Z = maxVal, minVal
		}
	}
	return core.NewBounds(minP, maxP)
}
