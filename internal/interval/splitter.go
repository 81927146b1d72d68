// Package interval turns one path leg and a replication policy into the legs
// at which template copies are placed.
package interval

import (
	"math"

	"track-replicator/internal/geometry"
	"track-replicator/internal/shape"
)

// epsilon absorbs floating-point noise in lengths (metres).
const epsilon = 1e-6

// Result lists the placement legs produced for one path leg.
type Result struct {
	Main         []geometry.PathLeg // full-pitch legs, chained end to start
	Trailing     *geometry.PathLeg  // optional shorter leg after the main legs
	Scale        float64            // longitudinal scale for Stretch
	TextureScale float64            // V multiplier keeping texture density
}

// Legs returns the main legs followed by the trailing leg, if any.
func (r Result) Legs() []geometry.PathLeg {
	out := append([]geometry.PathLeg(nil), r.Main...)
	if r.Trailing != nil {
		out = append(out, *r.Trailing)
	}
	return out
}

// Count returns the number of placements.
func (r Result) Count() int {
	n := len(r.Main)
	if r.Trailing != nil {
		n++
	}
	return n
}

// Split applies spec's replication method to leg. The orchestrator copies
// NoReplication parts without splitting; here they get one leg at the start
// with the method's OriginalLength, zero for a nil method.
func Split(leg geometry.PathLeg, spec shape.ReplicationSpec) Result {
	switch m := spec.Method.(type) {
	case nil:
		return single(leg.Start, leg.Leg.WithLength(0))
	case shape.NoReplication:
		return single(leg.Start, leg.Leg.WithLength(m.OriginalLength))
	case shape.AtFixedPos:
		return single(leg.Start, leg.Leg.WithLength(m.OriginalLength))
	case shape.AtTheEnd:
		return single(leg.End(), leg.Leg.WithLength(m.OriginalLength))
	case shape.StretchedByArc:
		return stretchOverLeg(leg, m.Slicing)
	}

	sl, ok := spec.Slicing()
	if !ok {
		return Result{Scale: 1, TextureScale: 1}
	}
	return splitIntervals(leg, spec, sl)
}

func single(start geometry.Pose, l geometry.Leg) Result {
	return Result{
		Main:         []geometry.PathLeg{{Leg: l, Start: start}},
		Scale:        1,
		TextureScale: 1,
	}
}

// splitIntervals handles ByFixedIntervals, ByEvenIntervals and StretchedByDeflection.
func splitIntervals(leg geometry.PathLeg, spec shape.ReplicationSpec, sl shape.Slicing) Result {
	start, length := ShiftStart(leg, sl.InitialShift)
	count, subLen := subintervals(spec.Method, leg.Leg, length)
	sub := sl.Subdivisions()

	res := Result{Scale: 1, TextureScale: 1}

	_, byDeflection := spec.Method.(shape.StretchedByDeflection)
	straightDeflection := byDeflection && leg.Leg.IsStraight()

	mainCount := count / sub
	if straightDeflection {
		mainCount = 0
	}

	pitch := subLen * float64(sub)
	cursor := start
	if mainCount > 0 {
		legs := make([]geometry.Leg, mainCount)
		for i := range legs {
			legs[i] = leg.Leg.WithLength(pitch)
		}
		res.Main = geometry.Chain(start, legs...)
		cursor = res.Main[mainCount-1].End()
	}

	remainder := length - float64(mainCount)*pitch
	if spec.Scaling == shape.FixLengthAndTrim {
		remainder = trimToSlices(remainder, sl.SliceLength())
	}
	if remainder > epsilon {
		res.Trailing = &geometry.PathLeg{Leg: leg.Leg.WithLength(remainder), Start: cursor}
	}

	if res.Count() == 0 && sl.LeaveAtLeastOnePart && sl.SliceLength() > 0 {
		res.Trailing = &geometry.PathLeg{Leg: leg.Leg.WithLength(sl.SliceLength()), Start: start}
	}

	if sl.OriginalLength > 0 && pitch > 0 {
		res.Scale = pitch / sl.OriginalLength
	}
	if straightDeflection && sl.OriginalLength > 0 && length > 0 {
		res.Scale = length / sl.OriginalLength
		if count > 0 {
			res.TextureScale = float64(count) / float64(sub)
		}
	}
	return res
}

// stretchOverLeg places one copy stretched over the whole (shifted) leg.
func stretchOverLeg(leg geometry.PathLeg, sl shape.Slicing) Result {
	start, length := ShiftStart(leg, sl.InitialShift)
	res := Result{Scale: 1, TextureScale: 1}

	switch {
	case length > epsilon:
		res.Trailing = &geometry.PathLeg{Leg: leg.Leg.WithLength(length), Start: start}
		if sl.OriginalLength > 0 {
			res.Scale = length / sl.OriginalLength
		}
	case sl.LeaveAtLeastOnePart && sl.SliceLength() > 0:
		res.Trailing = &geometry.PathLeg{Leg: leg.Leg.WithLength(sl.SliceLength()), Start: start}
	}
	return res
}

// subintervals returns the number and length of the smallest repeatable units
// that fit into length.
func subintervals(m shape.Method, leg geometry.Leg, length float64) (int, float64) {
	switch m := m.(type) {
	case shape.ByFixedIntervals:
		subLen := m.IntervalLength / float64(m.Subdivisions())
		if subLen <= 0 || length <= 0 {
			return 0, 0
		}
		return int(math.Floor(length/subLen + epsilon)), subLen
	case shape.ByEvenIntervals:
		return evenly(length, m.SliceLength())
	case shape.StretchedByDeflection:
		unit := m.SliceLength()
		if maxArc, ok := maxArcLength(leg, m.MaxDeflection, length); ok {
			unit = math.Min(unit, maxArc)
		}
		return evenly(length, unit)
	}
	return 0, 0
}

// evenly divides length into the whole number of units closest to unit.
func evenly(length, unit float64) (int, float64) {
	if unit <= 0 || length <= 0 {
		return 0, 0
	}
	count := int(math.Round(length / unit))
	if count == 0 {
		return 0, 0
	}
	return count, length / float64(count)
}

// maxArcLength bounds an arc so its chord sagitta stays within deflection.
// Straight legs and zero deflection impose no bound.
func maxArcLength(leg geometry.Leg, deflection, length float64) (float64, bool) {
	if leg.IsStraight() || deflection == 0 {
		return 0, false
	}
	r := math.Abs(leg.Radius)
	ratio := math.Min(math.Abs(deflection/r), 2)
	maxArc := math.Min(2*math.Acos(1-ratio)*r, length)
	if maxArc <= 0 {
		return 0, false
	}
	return maxArc, true
}

// trimToSlices floors remainder to a whole number of slices.
func trimToSlices(remainder, slice float64) float64 {
	if slice <= 0 || remainder <= 0 {
		return 0
	}
	return math.Floor(remainder/slice+epsilon) * slice
}
