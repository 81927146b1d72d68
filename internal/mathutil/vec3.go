package mathutil

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Vec3 is a point or direction in shape space. Y is up and track geometry is
// authored with the path running along +Z.
type Vec3 [3]float64

func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]} }
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v[0] - w[0], v[1] - w[1], v[2] - w[2]} }
func (v Vec3) Scale(k float64) Vec3 { return Vec3{k * v[0], k * v[1], k * v[2]} }
func (v Vec3) Dot(w Vec3) float64 { return v[0]*w[0] + v[1]*w[1] + v[2]*w[2] }

// Cross is the right-handed cross product v × w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v[1]*w[2] - v[2]*w[1],
		v[2]*w[0] - v[0]*w[2],
		v[0]*w[1] - v[1]*w[0],
	}
}

// Normalize scales v to unit length. Vectors shorter than 1e-12 become zero.
func (v Vec3) Normalize() Vec3 {
	n := math.Sqrt(v.Dot(v))
	if n < 1e-12 {
		return Vec3{}
	}
	return v.Scale(1 / n)
}

// ApproxEqual reports whether every component of v and w differs by at most tol.
func (v Vec3) ApproxEqual(w Vec3, tol float64) bool {
	return scalar.EqualWithinAbs(v[0], w[0], tol) &&
		scalar.EqualWithinAbs(v[1], w[1], tol) &&
		scalar.EqualWithinAbs(v[2], w[2], tol)
}
