package interval

import (
	"math"

	"track-replicator/internal/geometry"
	"track-replicator/internal/mathutil"
)

// ShiftStart moves the start of leg by shift along the path (backwards when
// negative) and returns the new start with the remaining length to the
// original end.
func ShiftStart(leg geometry.PathLeg, shift float64) (geometry.Pose, float64) {
	length := leg.Leg.Length()
	if shift == 0 {
		return leg.Start, length
	}
	remaining := math.Max(length-shift, 0)

	start := leg.Start
	if leg.Leg.IsStraight() {
		start.Position = start.Position.Add(start.Forward().Scale(shift))
		return start, remaining
	}

	r := math.Abs(leg.Leg.Radius)
	arc := geometry.CurveLeg(r, leg.Leg.Turn()*mathutil.Rad2Deg(math.Abs(shift)/r))
	if shift > 0 {
		return geometry.ComposeEndDirection(arc, start), remaining
	}

	// Walking backwards is walking forwards from the reversed pose, where the
	// arc center lies on the other side.
	mirrored := geometry.CurveLeg(r, -arc.Angle)
	back := geometry.ComposeEndDirection(mirrored, start.Reversed())
	return back.Reversed(), remaining
}
