package core

import (
	"errors"
	"math"
)

// ErrSingularTransform is returned when a transform construction step would
// produce a non-invertible matrix (zero-product scale, colinear lookat
// vectors).
var ErrSingularTransform = errors.New("core: singular transform")

// Transform holds a forward 4x4 matrix and its precomputed inverse. Points
// apply with homogeneous coordinate 1, vectors with homogeneous coordinate
// 0, and normals by the adjoint of the inverse transpose (ApplyNormal).
type Transform struct {
	forward Matrix4
	inverse Matrix4
}

// NewTransform wraps an already-composed matrix, computing its inverse.
// Returns ErrSingularTransform if the matrix is not invertible.
func NewTransform(m Matrix4) (*Transform, error) {
	inv, ok := Inverse4(m)
	if !ok {
		return nil, ErrSingularTransform
	}
	return &Transform{forward: m, inverse: inv}, nil
}

// Identity returns the identity transform.
func Identity() *Transform {
	return &Transform{forward: Identity4(), inverse: Identity4()}
}

// Matrix returns the forward matrix.
func (t *Transform) Matrix() Matrix4 { return t.forward }

// Determinant returns the determinant of the forward matrix's linear part.
func (t *Transform) Determinant() float64 { return t.forward.Determinant3() }

// Apply applies the forward transform to an affine point.
func (t *Transform) Apply(p Vec3) Vec3 { return t.forward.ApplyPoint(p) }

// ApplyVector applies the forward transform's linear part to a vector.
func (t *Transform) ApplyVector(v Vec3) Vec3 { return t.forward.ApplyVector(v) }

// ApplyNormal transforms a unit normal by the adjoint of the inverse
// (the transpose of the inverse matrix's linear part) and renormalizes.
// The input is assumed to already be normalized.
func (t *Transform) ApplyNormal(n Vec3) Vec3 {
	it := t.inverse.Transpose()
	return it.ApplyVector(n).Normalize()
}

// ApplyRay transforms a ray's origin as a point and its direction as a
// vector. The direction's length is intentionally not renormalized, so that
// a parametric distance measured against the transformed ray remains
// comparable (after dividing by the direction's length) to the original
// ray's parametrization.
func (t *Transform) ApplyRay(r Ray) Ray {
	return Ray{Origin: t.Apply(r.Origin), Direction: t.ApplyVector(r.Direction), Depth: r.Depth}
}

// Inverse returns a Transform wrapping the inverse matrix, so that
// Inverse().Apply(...) etc. apply the inverse transform. The returned
// Transform shares no further meaning beyond being the algebraic inverse.
func (t *Transform) Inverse() *Transform {
	return &Transform{forward: t.inverse, inverse: t.forward}
}

// InverseApply applies the inverse transform to a point.
func (t *Transform) InverseApply(p Vec3) Vec3 { return t.inverse.ApplyPoint(p) }

// InverseApplyVector applies the inverse transform's linear part to a vector.
func (t *Transform) InverseApplyVector(v Vec3) Vec3 { return t.inverse.ApplyVector(v) }

// InverseApplyRay applies the inverse transform to a ray (see ApplyRay for
// the renormalization contract, which holds symmetrically here).
func (t *Transform) InverseApplyRay(r Ray) Ray {
	return Ray{Origin: t.InverseApply(r.Origin), Direction: t.InverseApplyVector(r.Direction), Depth: r.Depth}
}

// Translate appends a translation to the transform (T' = T * translate).
func (t *Transform) Translate(delta Vec3) (*Transform, error) {
	m := Identity4()
	m[0][3], m[1][3], m[2][3] = delta.X, delta.Y, delta.Z
	return NewTransform(t.forward.Mul(m))
}

// Scale appends a non-uniform scale. Rejects a zero-product scale (any axis
// exactly zero collapses the transform to a non-invertible one).
func (t *Transform) Scale(s Vec3) (*Transform, error) {
	if s.X*s.Y*s.Z == 0 {
		return nil, ErrSingularTransform
	}
	m := Identity4()
	m[0][0], m[1][1], m[2][2] = s.X, s.Y, s.Z
	return NewTransform(t.forward.Mul(m))
}

// Rotate appends a rotation of angle (radians) about axis, constructed via
// the Rodrigues rotation formula in matrix form.
func (t *Transform) Rotate(axis Vec3, angle float64) (*Transform, error) {
	a := axis.Normalize()
	s, c := math.Sin(angle), math.Cos(angle)
	ic := 1 - c

	m := Identity4()
	m[0][0] = c + a.X*a.X*ic
	m[0][1] = a.X*a.Y*ic - a.Z*s
	m[0][2] = a.X*a.Z*ic + a.Y*s
	m[1][0] = a.Y*a.X*ic + a.Z*s
	m[1][1] = c + a.Y*a.Y*ic
	m[1][2] = a.Y*a.Z*ic - a.X*s
	m[2][0] = a.Z*a.X*ic - a.Y*s
	m[2][1] = a.Z*a.Y*ic + a.X*s
	m[2][2] = c + a.Z*a.Z*ic

	return NewTransform(t.forward.Mul(m))
}

// LookAt appends a look-at transform: the local +z axis points from origin
// toward target, with up used to disambiguate roll. Rejects a direction
// colinear with up.
func (t *Transform) LookAt(origin, target, up Vec3) (*Transform, error) {
	dir := target.Subtract(origin).Normalize()
	if up.Cross(dir).IsZero() {
		return nil, ErrSingularTransform
	}
	right := up.Normalize().Cross(dir).Normalize()
	newUp := dir.Cross(right)

	m := Identity4()
	m[0][0], m[1][0], m[2][0] = right.X, right.Y, right.Z
	m[0][1], m[1][1], m[2][1] = newUp.X, newUp.Y, newUp.Z
	m[0][2], m[1][2], m[2][2] = dir.X, dir.Y, dir.Z
	m[0][3], m[1][3], m[2][3] = origin.X, origin.Y, origin.Z

	return NewTransform(t.forward.Mul(m))
}

// PopScale separates the per-axis scale factors (column lengths of the
// linear block) from the forward matrix, returning those factors and a new
// Transform with unit-length basis columns (rotation and translation
// retained, scale removed). Used by the SDF transform operator, which
// requires the three factors to agree within 1e-4 (uniform scale only).
func (t *Transform) PopScale() (scale Vec3, unscaled *Transform) {
	col := func(i int) Vec3 {
		return Vec3{t.forward[0][i], t.forward[1][i], t.forward[2][i]}
	}
	c0, c1, c2 := col(0), col(1), col(2)
	sx, sy, sz := c0.Length(), c1.Length(), c2.Length()

	m := t.forward
	if sx > 0 {
		for r := 0; r < 3; r++ {
			m[r][0] /= sx
		}
	}
	if sy > 0 {
		for r := 0; r < 3; r++ {
			m[r][1] /= sy
		}
	}
	if sz > 0 {
		for r := 0; r < 3; r++ {
			m[r][2] /= sz
		}
	}

	unscaledT, err := NewTransform(m)
	if err != nil {
		// A degenerate input scale still yields a usable (if singular)
		// unscaled transform for callers that only need the factors.
		unscaledT = &Transform{forward: m, inverse: m}
	}
	return Vec3{sx, sy, sz}, unscaledT
}
