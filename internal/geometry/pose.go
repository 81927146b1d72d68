// Package geometry holds the path primitives used to lay template geometry
// along a track: poses, legs and the transforms between them.
//
// Conventions: Y is up, a heading of 0 looks down +Z, and headings grow
// counter-clockwise when viewed from above, so positive sweep angles turn left
// (towards -X) and local +X is the right-hand side of the path.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"

	"track-replicator/internal/mathutil"
)

// Pose is a position plus heading in degrees about +Y.
type Pose struct {
	Position mathutil.Vec3 `json:"position"`
	Heading  float64       `json:"heading"`
}

// Forward returns the unit travel direction.
func (p Pose) Forward() mathutil.Vec3 {
	h := mathutil.Deg2Rad(p.Heading)
	return mathutil.Vec3{-math.Sin(h), 0, math.Cos(h)}
}

// Left returns the unit vector pointing to the left of the travel direction.
func (p Pose) Left() mathutil.Vec3 {
	h := mathutil.Deg2Rad(p.Heading)
	return mathutil.Vec3{-math.Cos(h), 0, -math.Sin(h)}
}

// Reversed returns the same position facing the opposite way.
func (p Pose) Reversed() Pose {
	return Pose{Position: p.Position, Heading: mathutil.NormalizeDeg(p.Heading + 180)}
}

// ApproxEqual compares positions component-wise and headings modulo 360.
func (p Pose) ApproxEqual(q Pose, tol float64) bool {
	if !p.Position.ApproxEqual(q.Position, tol) {
		return false
	}
	return scalar.EqualWithinAbs(mathutil.AngleDist(p.Heading, q.Heading), 0, tol)
}
