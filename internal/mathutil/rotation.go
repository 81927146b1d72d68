package mathutil

import "math"

// YRotation is a rotation about the vertical Y axis, the only rotation track
// geometry needs. It is stored as the cosine and sine of the angle.
type YRotation struct {
	Cos, Sin float64
}

// RotY returns the rotation by a radians about +Y.
func RotY(a float64) YRotation {
	return YRotation{Cos: math.Cos(a), Sin: math.Sin(a)}
}

// Apply rotates v. Y is left untouched.
func (r YRotation) Apply(v Vec3) Vec3 {
	return Vec3{
		r.Cos*v[0] + r.Sin*v[2],
		v[1],
		-r.Sin*v[0] + r.Cos*v[2],
	}
}

// Inverse returns the opposite rotation.
func (r YRotation) Inverse() YRotation {
	return YRotation{Cos: r.Cos, Sin: -r.Sin}
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}

// NormalizeDeg wraps an angle in degrees into [0, 360).
func NormalizeDeg(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a -= 360
	}
	return a
}

// AngleDist returns the shortest angular distance between two angles in degrees (0–180).
func AngleDist(a, b float64) float64 {
	d := NormalizeDeg(a - b)
	if d > 180 {
		return 360 - d
	}
	return d
}
