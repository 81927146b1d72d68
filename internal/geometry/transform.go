package geometry

import (
	"errors"
	"math"

	"track-replicator/internal/mathutil"
)

// ErrTooFewPoints is returned by ProjectToPlane when fewer than three points are given.
var ErrTooFewPoints = errors.New("geometry: plane projection needs at least 3 points")

// ComposeEndDirection advances start along the straight part of leg and then
// along its arc, returning the resulting pose with the heading in [0, 360).
func ComposeEndDirection(leg Leg, start Pose) Pose {
	pos := start.Position.Add(start.Forward().Scale(leg.Straight))
	heading := start.Heading

	if !leg.IsStraight() && leg.Angle != 0 {
		// Arc center sits radius away on the side the leg turns towards.
		s := leg.Turn()
		r := math.Abs(leg.Radius)
		center := pos.Add(Pose{Heading: heading}.Left().Scale(s * r))
		heading += leg.Angle
		pos = center.Sub(Pose{Heading: heading}.Left().Scale(s * r))
	}

	return Pose{Position: pos, Heading: mathutil.NormalizeDeg(heading)}
}

// TransposePoint rotates p by -pose.Heading about +Y and translates it to
// pose.Position, taking template space into world space.
func TransposePoint(p mathutil.Vec3, pose Pose) mathutil.Vec3 {
	return TransposeNormal(p, pose).Add(pose.Position)
}

// TransposeNormal applies only the rotation part of TransposePoint.
func TransposeNormal(n mathutil.Vec3, pose Pose) mathutil.Vec3 {
	return mathutil.RotY(mathutil.Deg2Rad(-pose.Heading)).Apply(n)
}

// BendPoint stretches p along local Z by scale and, for curved legs, wraps the
// stretched Z onto the arc: Z becomes arc length and X stays a radial offset.
func BendPoint(p mathutil.Vec3, leg Leg, scale float64) mathutil.Vec3 {
	z := p[2] * scale
	if leg.IsStraight() || leg.Angle == 0 {
		return mathutil.Vec3{p[0], p[1], z}
	}

	s := leg.Turn()
	r := math.Abs(leg.Radius)
	h := s * z / r
	d := s*r + p[0]
	return mathutil.Vec3{-s*r + d*math.Cos(h), p[1], d * math.Sin(h)}
}

// BendNormal rotates n by the heading change BendPoint applies at point p.
func BendNormal(n, p mathutil.Vec3, leg Leg, scale float64) mathutil.Vec3 {
	if leg.IsStraight() || leg.Angle == 0 {
		return n
	}
	h := leg.Turn() * p[2] * scale / math.Abs(leg.Radius)
	return mathutil.RotY(-h).Apply(n)
}

// ProjectToPlane fits a plane through the first three points and returns
// per-point coordinates in that plane, rescaled into the unit square by the
// larger of the two extents.
func ProjectToPlane(points []mathutil.Vec3) ([][2]float64, error) {
	if len(points) < 3 {
		return nil, ErrTooFewPoints
	}

	origin := points[0]
	u := points[1].Sub(origin).Normalize()
	normal := u.Cross(points[2].Sub(origin)).Normalize()
	v := u.Cross(normal).Normalize()

	uv := make([][2]float64, len(points))
	minU, minV := math.Inf(1), math.Inf(1)
	maxU, maxV := math.Inf(-1), math.Inf(-1)
	for i, p := range points {
		d := p.Sub(origin)
		uv[i] = [2]float64{d.Dot(u), d.Dot(v)}
		minU = math.Min(minU, uv[i][0])
		maxU = math.Max(maxU, uv[i][0])
		minV = math.Min(minV, uv[i][1])
		maxV = math.Max(maxV, uv[i][1])
	}

	extent := math.Max(maxU-minU, maxV-minV)
	if extent < 1e-9 {
		extent = 1
	}
	for i := range uv {
		uv[i][0] = (uv[i][0] - minU) / extent
		uv[i][1] = (uv[i][1] - minV) / extent
	}
	return uv, nil
}
