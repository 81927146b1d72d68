package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"

	"track-replicator/internal/mathutil"
)

// Leg is one straight run or constant-radius arc. Radius 0 means straight.
// Angle is the swept angle in degrees; positive turns left.
type Leg struct {
	Straight float64 `json:"straight,omitempty"`
	Radius   float64 `json:"radius,omitempty"`
	Angle    float64 `json:"angle,omitempty"`
}

// NewLeg builds a leg, dropping the straight length when a radius is given so
// that a leg is never both straight and curved.
func NewLeg(straight, radius, angle float64) Leg {
	if radius != 0 {
		return Leg{Radius: math.Abs(radius), Angle: angle}
	}
	return Leg{Straight: straight}
}

// StraightLeg returns a straight leg of the given length.
func StraightLeg(length float64) Leg {
	return Leg{Straight: length}
}

// CurveLeg returns an arc of the given radius sweeping angle degrees.
func CurveLeg(radius, angle float64) Leg {
	return NewLeg(0, radius, angle)
}

func (l Leg) IsStraight() bool {
	return l.Radius == 0
}

// Turn is -1 for right-hand arcs and +1 otherwise.
func (l Leg) Turn() float64 {
	if l.Angle < 0 {
		return -1
	}
	return 1
}

// Length returns the distance travelled along the leg.
func (l Leg) Length() float64 {
	if l.IsStraight() {
		return l.Straight
	}
	return math.Abs(l.Radius * mathutil.Deg2Rad(l.Angle))
}

// WithLength returns a leg of the same curvature and turn direction spanning length.
func (l Leg) WithLength(length float64) Leg {
	if l.IsStraight() {
		return StraightLeg(length)
	}
	r := math.Abs(l.Radius)
	return CurveLeg(r, l.Turn()*mathutil.Rad2Deg(length/r))
}

// SameCurvature reports whether two legs bend identically: both straight, or
// arcs of the same radius turning the same way.
func (l Leg) SameCurvature(o Leg) bool {
	if l.IsStraight() || o.IsStraight() {
		return l.IsStraight() && o.IsStraight()
	}
	return scalar.EqualWithinAbs(math.Abs(l.Radius), math.Abs(o.Radius), 1e-9) && l.Turn() == o.Turn()
}

// Merge sums two legs of the same curvature.
func (l Leg) Merge(o Leg) Leg {
	if l.IsStraight() {
		return StraightLeg(l.Straight + o.Straight)
	}
	return CurveLeg(l.Radius, l.Angle+o.Angle)
}

// PathLeg is a Leg anchored at a start pose. The end pose is always derived.
type PathLeg struct {
	Leg   Leg  `json:"leg"`
	Start Pose `json:"start"`
}

// End returns ComposeEndDirection(p.Leg, p.Start).
func (p PathLeg) End() Pose {
	return ComposeEndDirection(p.Leg, p.Start)
}

// Chain anchors legs end-to-start beginning at start.
func Chain(start Pose, legs ...Leg) []PathLeg {
	out := make([]PathLeg, len(legs))
	for i, l := range legs {
		out[i] = PathLeg{Leg: l, Start: start}
		start = out[i].End()
	}
	return out
}
