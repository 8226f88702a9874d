package core

import "math"

// Bounds is an axis-aligned bounding box. A Bounds may be "unbounded" (Min =
// -Inf, Max = +Inf on one or more axes), which the slab test below handles
// the same way as any other interval.
type Bounds struct {
	Min Vec3
	Max Vec3
}

// NewBounds creates a new Bounds from min and max points.
func NewBounds(min, max Vec3) Bounds {
	return Bounds{Min: min, Max: max}
}

// NewBoundsFromPoints creates a Bounds that bounds all given points.
func NewBoundsFromPoints(points ...Vec3) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min.X = math.Min(min.X, point.X)
		min.Y = math.Min(min.Y, point.Y)
		min.Z = math.Min(min.Z, point.Z)

		max.X = math.Max(max.X, point.X)
		max.Y = math.Max(max.Y, point.Y)
		max.Z = math.Max(max.Z, point.Z)
	}

	return Bounds{Min: min, Max: max}
}

// Unbounded returns a Bounds that contains all of space.
func Unbounded() Bounds {
	inf := math.Inf(1)
	return Bounds{Min: Vec3{-inf, -inf, -inf}, Max: Vec3{inf, inf, inf}}
}

// IntersectRange runs the slab test against [tMin, tMax] and, on a hit,
// returns the near and far intersection distances clipped to that range. On
// a miss (or when the box lies entirely behind tMin) it reports hit=false.
func (b Bounds) IntersectRange(ray Ray, tMin, tMax float64) (tNear, tFar float64, hit bool) {
	tNear, tFar = tMin, tMax
	for axis := 0; axis < 3; axis++ {
		lo := b.Min.ComponentAt(axis)
		hi := b.Max.ComponentAt(axis)
		origin := ray.Origin.ComponentAt(axis)
		dir := ray.Direction.ComponentAt(axis)

		if math.Abs(dir) < 1e-12 {
			if origin < lo || origin > hi {
				return 0, 0, false
			}
			continue
		}

		invDir := 1.0 / dir
		t1 := (lo - origin) * invDir
		t2 := (hi - origin) * invDir
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tNear = math.Max(tNear, t1)
		tFar = math.Min(tFar, t2)
		if tNear > tFar {
			return 0, 0, false
		}
	}
	return tNear, tFar, true
}

// HitT returns the near-t of the entry hit against [0, +Inf), or +Inf if the
// box is missed or lies entirely behind the ray origin.
func (b Bounds) HitT(ray Ray) float64 {
	tNear, _, hit := b.IntersectRange(ray, 0, math.Inf(1))
	if !hit {
		return math.Inf(1)
	}
	return tNear
}

// Hit reports whether the ray intersects the box within [tMin, tMax].
func (b Bounds) Hit(ray Ray, tMin, tMax float64) bool {
	_, _, hit := b.IntersectRange(ray, tMin, tMax)
	return hit
}

// Union returns a Bounds that bounds both this Bounds and another.
func (b Bounds) Union(other Bounds) Bounds {
	min := Vec3{
		X: math.Min(b.Min.X, other.Min.X),
		Y: math.Min(b.Min.Y, other.Min.Y),
		Z: math.Min(b.Min.Z, other.Min.Z),
	}
	max := Vec3{
		X: math.Max(b.Max.X, other.Max.X),
		Y: math.Max(b.Max.Y, other.Max.Y),
		Z: math.Max(b.Max.Z, other.Max.Z),
	}
	return Bounds{Min: min, Max: max}
}

// UnionPoint returns a Bounds expanded to include p.
func (b Bounds) UnionPoint(p Vec3) Bounds {
	return b.Union(Bounds{Min: p, Max: p})
}

// Center returns the center point of the Bounds.
func (b Bounds) Center() Vec3 {
	return b.Min.Add(b.Max).Multiply(0.5)
}

// Size returns the extent of the Bounds along each axis.
func (b Bounds) Size() Vec3 {
	return b.Max.Subtract(b.Min)
}

// SurfaceArea returns the surface area of the Bounds.
func (b Bounds) SurfaceArea() float64 {
	size := b.Size()
	return 2.0 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent.
func (b Bounds) LongestAxis() int {
	size := b.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// IsValid reports whether min <= max on every axis.
func (b Bounds) IsValid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// Expand returns a Bounds grown by amount in every direction.
func (b Bounds) Expand(amount float64) Bounds {
	expansion := NewVec3(amount, amount, amount)
	return Bounds{Min: b.Min.Subtract(expansion), Max: b.Max.Add(expansion)}
}

// Corners returns the 8 corner points of the box, used by Instance to
// transform a local bounding box into world space.
func (b Bounds) Corners() [8]Vec3 {
	return [8]Vec3{
		{b.Min.X, b.Min.Y, b.Min.Z}, {b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z}, {b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z}, {b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z}, {b.Max.X, b.Max.Y, b.Max.Z},
	}
}
