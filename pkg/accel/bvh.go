// Package accel implements the bounding-volume hierarchy (component D): a
// binary tree over core.Primitive indices, traversed front-to-back with
// pruning. A single implementation serves both the scene-level BVH (over
// instances) and a mesh's internal BVH (over triangles), since both satisfy
// core.Primitive.
package accel

import (
	"sort"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
)

// leafThreshold is the maximum number of primitives a leaf may hold before
// construction splits it further.
const leafThreshold = 4

// node is an internal BVH node or leaf.
type node struct {
	bounds      core.Bounds
	left, right *node
	primitives  []core.Primitive // non-nil only at a leaf
}

func (n *node) isLeaf() bool { return n.left == nil && n.right == nil }

// BVH is a bounding-volume hierarchy over a fixed set of primitives. It
// implements core.Primitive itself, so it can be nested (an instance may
// hold a BVH-backed mesh, and the outer scene BVH holds instances).
type BVH struct {
	root       *node
	primitives []core.Primitive
	bounds     core.Bounds
}

// NewBVH copies the input slice (so concurrent mutation of the caller's
// slice after construction cannot race with traversal) and builds the tree
// top-down, recursively splitting at the median along the longest axis of
// each node's bounds.
func NewBVH(primitives []core.Primitive) *BVH {
	owned := make([]core.Primitive, len(primitives))
	copy(owned, primitives)

	bvh := &BVH{primitives: owned}
	if len(owned) == 0 {
		bvh.root = &node{primitives: owned}
		return bvh
	}

	indices := make([]int, len(owned))
	for i := range indices {
		indices[i] = i
	}
	bvh.root = buildNode(owned, indices)
	bvh.bounds = bvh.root.bounds
	return bvh
}

func boundsOf(primitives []core.Primitive, indices []int) core.Bounds {
	b := primitives[indices[0]].Bounds()
	for _, i := range indices[1:] {
		b = b.Union(primitives[i].Bounds())
	}
	return b
}

func buildNode(primitives []core.Primitive, indices []int) *node {
	bounds := boundsOf(primitives, indices)

	if len(indices) <= leafThreshold {
		leafPrims := make([]core.Primitive, len(indices))
		for i, idx := range indices {
			leafPrims[i] = primitives[idx]
		}
		return &node{bounds: bounds, primitives: leafPrims}
	}

	axis := bounds.LongestAxis()
	sort.Slice(indices, func(a, b int) bool {
		return primitives[indices[a]].Centroid().ComponentAt(axis) < primitives[indices[b]].Centroid().ComponentAt(axis)
	})

	mid := len(indices) / 2
	left := buildNode(primitives, indices[:mid])
	right := buildNode(primitives, indices[mid:])
	return &node{bounds: bounds, left: left, right: right}
}

func (b *BVH) Bounds() core.Bounds { return b.bounds }

func (b *BVH) Centroid() core.Vec3 { return b.bounds.Center() }

// Primitives returns the primitives the tree was built over, in their
// original order.
func (b *BVH) Primitives() []core.Primitive { return b.primitives }

// Intersect traverses the tree front-to-back: at each internal node it
// visits the nearer child first and prunes the farther child once its
// entry-t exceeds the current best t (its.T). The recursion is re-entrant —
// a primitive being tested may itself be a nested BVH.
func (b *BVH) Intersect(ray core.Ray, its *core.Intersection, smp core.Sampler) bool {
	if b.root == nil {
		return false
	}
	return intersectNode(b.root, ray, its, smp)
}

func intersectNode(n *node, ray core.Ray, its *core.Intersection, smp core.Sampler) bool {
	if n == nil {
		return false
	}
	its.Stats.BVHNodesVisited++

	tEntry, _, hit := n.bounds.IntersectRange(ray, 0, its.T)
	if !hit {
		return false
	}
	_ = tEntry

	if n.isLeaf() {
		found := false
		for _, prim := range n.primitives {
			if prim.Intersect(ray, its, smp) {
				found = true
			}
		}
		return found
	}

	leftT, _, leftHit := n.left.bounds.IntersectRange(ray, 0, its.T)
	rightT, _, rightHit := n.right.bounds.IntersectRange(ray, 0, its.T)

	first, second := n.left, n.right
	firstHit, secondHit := leftHit, rightHit
	firstT, secondT := leftT, rightT
	if rightHit && (!leftHit || rightT < leftT) {
		first, second = n.right, n.left
		firstHit, secondHit = rightHit, leftHit
		firstT, secondT = rightT, leftT
	}

	found := false
	if firstHit && firstT <= its.T {
		if intersectNode(first, ray, its, smp) {
			found = true
		}
	}
	if secondHit && secondT <= its.T {
		if intersectNode(second, ray, its, smp) {
			found = true
		}
	}
	return found
}
