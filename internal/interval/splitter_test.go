package interval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"track-replicator/internal/geometry"
	"track-replicator/internal/mathutil"
	"track-replicator/internal/shape"
)

const tol = 1e-6

func straight(length float64) geometry.PathLeg {
	return geometry.PathLeg{Leg: geometry.StraightLeg(length)}
}

func curve(radius, angle float64) geometry.PathLeg {
	return geometry.PathLeg{Leg: geometry.CurveLeg(radius, angle)}
}

func legLengths(r Result) []float64 {
	var out []float64
	for _, l := range r.Legs() {
		out = append(out, l.Leg.Length())
	}
	return out
}

func fixedIntervals(leave bool) shape.ReplicationSpec {
	sl := shape.NewSlicing(1.05, 1)
	sl.LeaveAtLeastOnePart = leave
	return shape.ReplicationSpec{
		Method:  shape.NewByFixedIntervals(sl, 1.05),
		Scaling: shape.FixLengthAndTrim,
	}
}

func TestSplit_ByFixedIntervals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		leg   geometry.PathLeg
		leave bool
		want  int
	}{
		{name: "ten metres", leg: straight(10), want: 9},
		{name: "short section", leg: straight(0.8), want: 0},
		{name: "short section kept", leg: straight(0.8), leave: true, want: 1},
		{name: "zero length", leg: straight(0), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := Split(tt.leg, fixedIntervals(tt.leave))
			assert.Equal(t, tt.want, res.Count())
		})
	}
}

func TestSplit_ByFixedIntervalsKeepsRemainderWithoutTrim(t *testing.T) {
	t.Parallel()

	spec := fixedIntervals(false)
	spec.Scaling = shape.FixLength
	res := Split(straight(10), spec)

	require.Len(t, res.Main, 9)
	require.NotNil(t, res.Trailing)
	assert.InDelta(t, 0.55, res.Trailing.Leg.Length(), tol)
	assert.True(t, res.Trailing.Start.ApproxEqual(geometry.Pose{Position: mathutil.Vec3{0, 0, 9.45}}, tol))
}

func TestSplit_ByFixedIntervalsSubdivided(t *testing.T) {
	t.Parallel()

	// Four slices of 0.5 each per 2 m interval; 7.2 m holds 14 slices.
	spec := shape.ReplicationSpec{
		Method:  shape.NewByFixedIntervals(shape.NewSlicing(2, 4), 2),
		Scaling: shape.FixLengthAndTrim,
	}
	res := Split(straight(7.2), spec)
	require.Len(t, res.Main, 3)
	require.NotNil(t, res.Trailing)
	assert.InDelta(t, 1.0, res.Trailing.Leg.Length(), tol)
	assert.InDelta(t, 1.0, res.Scale, tol)
}

func TestSplit_ByEvenIntervalsHasNoRemainder(t *testing.T) {
	t.Parallel()

	legs := []geometry.PathLeg{
		straight(10),
		straight(0.7),
		straight(123.456),
		curve(500, 7.3),
		curve(120, -33),
	}
	for _, sub := range []int{1, 2, 3} {
		for _, leg := range legs {
			spec := shape.ReplicationSpec{
				Method:  shape.NewByEvenIntervals(shape.NewSlicing(1.2, sub)),
				Scaling: shape.Stretch,
			}
			res := Split(leg, spec)
			require.Positive(t, res.Count(), "leg %+v sub %d", leg.Leg, sub)
			assert.InDelta(t, leg.Leg.Length(), floats.Sum(legLengths(res)), tol, "leg %+v sub %d", leg.Leg, sub)

			// The last placement ends where the input leg ends.
			all := res.Legs()
			assert.True(t, all[len(all)-1].End().ApproxEqual(leg.End(), 1e-5))
		}
	}
}

func TestSplit_ByEvenIntervalsScale(t *testing.T) {
	t.Parallel()

	spec := shape.ReplicationSpec{Method: shape.NewByEvenIntervals(shape.NewSlicing(3, 1)), Scaling: shape.Stretch}
	res := Split(straight(10), spec)
	require.Len(t, res.Main, 3)
	assert.Nil(t, res.Trailing)
	assert.InDelta(t, 10.0/9, res.Scale, tol)
}

func TestSplit_MainLegsChain(t *testing.T) {
	t.Parallel()

	spec := shape.ReplicationSpec{Method: shape.NewByEvenIntervals(shape.NewSlicing(5, 1))}
	res := Split(geometry.PathLeg{Leg: geometry.CurveLeg(50, 60), Start: geometry.Pose{Heading: 10}}, spec)
	require.Greater(t, len(res.Main), 1)
	for i := 1; i < len(res.Main); i++ {
		assert.Equal(t, res.Main[i-1].End(), res.Main[i].Start)
	}
}

func TestSplit_StretchedByDeflection(t *testing.T) {
	t.Parallel()

	t.Run("curve bounded by sagitta", func(t *testing.T) {
		t.Parallel()
		spec := shape.ReplicationSpec{
			Method:  shape.NewStretchedByDeflection(shape.NewSlicing(20, 1), 0.01),
			Scaling: shape.Stretch,
		}
		leg := curve(100, 30)
		res := Split(leg, spec)

		// 30 degrees at r=100 is 52.36m; the 0.01m sagitta bound allows 2.83m
		// arcs, so the even rule yields 19 pieces of 2.756m.
		maxArc := 2 * math.Acos(1-0.01/100) * 100
		require.Len(t, res.Main, 19)
		assert.Nil(t, res.Trailing)
		for _, l := range res.Legs() {
			assert.LessOrEqual(t, l.Leg.Length(), maxArc)
			sagitta := 100 * (1 - math.Cos(l.Leg.Length()/200))
			assert.LessOrEqual(t, sagitta, 0.01)
		}
		assert.InDelta(t, leg.Leg.Length(), floats.Sum(legLengths(res)), tol)
	})

	t.Run("straight is one stretched piece", func(t *testing.T) {
		t.Parallel()
		spec := shape.ReplicationSpec{
			Method:  shape.NewStretchedByDeflection(shape.NewSlicing(5, 1), 0.01),
			Scaling: shape.Stretch,
		}
		res := Split(straight(23), spec)
		assert.Empty(t, res.Main)
		require.NotNil(t, res.Trailing)
		assert.InDelta(t, 23, res.Trailing.Leg.Length(), tol)
		assert.InDelta(t, 23.0/5, res.Scale, tol)
		assert.InDelta(t, 5, res.TextureScale, tol) // round(23/5) = 5 slices
	})

	t.Run("zero deflection falls back to authored length", func(t *testing.T) {
		t.Parallel()
		spec := shape.ReplicationSpec{Method: shape.NewStretchedByDeflection(shape.NewSlicing(5, 1), 0)}
		res := Split(curve(100, 30), spec)
		assert.Len(t, res.Legs(), int(math.Round(curve(100, 30).Leg.Length()/5)))
	})
}

func TestSplit_StretchedByArc(t *testing.T) {
	t.Parallel()

	spec := shape.ReplicationSpec{Method: shape.NewStretchedByArc(shape.NewSlicing(10, 1)), Scaling: shape.Stretch}
	leg := curve(200, 12)
	res := Split(leg, spec)
	require.Equal(t, 1, res.Count())
	assert.InDelta(t, leg.Leg.Length()/10, res.Scale, tol)
	assert.True(t, res.Legs()[0].End().ApproxEqual(leg.End(), 1e-5))
}

func TestSplit_SinglePlacements(t *testing.T) {
	t.Parallel()

	leg := geometry.PathLeg{Leg: geometry.StraightLeg(25), Start: geometry.Pose{Position: mathutil.Vec3{1, 0, 1}, Heading: 90}}

	res := Split(leg, shape.ReplicationSpec{Method: shape.NewAtFixedPos(4)})
	require.Equal(t, 1, res.Count())
	assert.Equal(t, leg.Start, res.Main[0].Start)
	assert.InDelta(t, 4, res.Main[0].Leg.Length(), tol)

	res = Split(leg, shape.ReplicationSpec{Method: shape.NewAtTheEnd(4)})
	require.Equal(t, 1, res.Count())
	assert.Equal(t, leg.End(), res.Main[0].Start)

	res = Split(leg, shape.ReplicationSpec{})
	require.Equal(t, 1, res.Count())
	assert.Equal(t, leg.Start, res.Main[0].Start)

	res = Split(leg, shape.ReplicationSpec{Method: shape.NoReplication{OriginalLength: 3}})
	require.Equal(t, 1, res.Count())
	assert.Equal(t, leg.Start, res.Main[0].Start)
	assert.InDelta(t, 3, res.Main[0].Leg.Length(), tol)
}

func TestSplit_LeaveAtLeastOnePart(t *testing.T) {
	t.Parallel()

	slicing := func(leave bool) shape.Slicing {
		sl := shape.NewSlicing(2, 1)
		sl.LeaveAtLeastOnePart = leave
		return sl
	}
	tests := map[string]struct {
		method func(shape.Slicing) shape.Method
		leg    geometry.PathLeg
	}{
		"even intervals": {
			method: func(sl shape.Slicing) shape.Method { return shape.NewByEvenIntervals(sl) },
			leg:    straight(0.4),
		},
		"deflection on straight": {
			method: func(sl shape.Slicing) shape.Method { return shape.NewStretchedByDeflection(sl, 0.01) },
			leg:    straight(0.4),
		},
		"arc on empty leg": {
			method: func(sl shape.Slicing) shape.Method { return shape.NewStretchedByArc(sl) },
			leg:    straight(0),
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			res := Split(tt.leg, shape.ReplicationSpec{Method: tt.method(slicing(false)), Scaling: shape.FixLengthAndTrim})
			assert.Zero(t, res.Count())

			res = Split(tt.leg, shape.ReplicationSpec{Method: tt.method(slicing(true)), Scaling: shape.FixLengthAndTrim})
			require.Equal(t, 1, res.Count())
			require.NotNil(t, res.Trailing)
			assert.Equal(t, tt.leg.Start, res.Trailing.Start)
			assert.InDelta(t, 2, res.Trailing.Leg.Length(), tol)
		})
	}
}

func TestSplit_NegativeInitialShift(t *testing.T) {
	t.Parallel()

	sl := shape.NewSlicing(2, 1)
	sl.InitialShift = -0.5
	spec := shape.ReplicationSpec{Method: shape.NewByFixedIntervals(sl, 2), Scaling: shape.FixLengthAndTrim}

	res := Split(straight(10), spec)
	require.Len(t, res.Main, 5)
	assert.True(t, res.Main[0].Start.ApproxEqual(geometry.Pose{Position: mathutil.Vec3{0, 0, -0.5}}, tol))
	assert.True(t, res.Main[4].End().ApproxEqual(geometry.Pose{Position: mathutil.Vec3{0, 0, 9.5}}, tol))
	assert.Nil(t, res.Trailing)

	sl.InitialShift = -1
	spec.Method = shape.NewByFixedIntervals(sl, 2)
	for _, angle := range []float64{40, -40} {
		leg := geometry.PathLeg{Leg: geometry.CurveLeg(50, angle), Start: geometry.Pose{Position: mathutil.Vec3{3, 0, 4}, Heading: 20}}
		res := Split(leg, spec)

		// (34.9 + 1) / 2 floors to 17 pieces.
		require.Len(t, res.Main, 17, "angle %v", angle)
		first := res.Main[0].Start
		assert.True(t, geometry.ComposeEndDirection(leg.Leg.WithLength(1), first).ApproxEqual(leg.Start, tol), "angle %v", angle)
		for i := 1; i < len(res.Main); i++ {
			assert.True(t, res.Main[i].Start.ApproxEqual(res.Main[i-1].End(), tol))
		}
	}
}

func TestSplit_AllZeroSpecDegrades(t *testing.T) {
	t.Parallel()

	specs := []shape.ReplicationSpec{
		{Method: shape.ByFixedIntervals{}},
		{Method: shape.ByEvenIntervals{}},
		{Method: shape.StretchedByDeflection{}},
		{Method: shape.StretchedByArc{}, Scaling: shape.Stretch},
		{Method: shape.ByEvenIntervals{}, Scaling: shape.FixLengthAndTrim},
	}
	for _, spec := range specs {
		for _, leg := range []geometry.PathLeg{straight(10), curve(50, 20), straight(0), curve(0, 0)} {
			res := Split(leg, spec)
			assert.False(t, math.IsNaN(res.Scale) || math.IsInf(res.Scale, 0), "%T", spec.Method)
			for _, l := range res.Legs() {
				p := l.End().Position
				assert.False(t, math.IsNaN(p[0]) || math.IsNaN(p[2]), "%T", spec.Method)
			}
		}
	}
}

func TestShiftStart(t *testing.T) {
	t.Parallel()

	t.Run("straight", func(t *testing.T) {
		t.Parallel()
		start, rest := ShiftStart(straight(10), 2)
		assert.True(t, start.ApproxEqual(geometry.Pose{Position: mathutil.Vec3{0, 0, 2}}, tol))
		assert.InDelta(t, 8, rest, tol)

		start, rest = ShiftStart(straight(10), -1)
		assert.True(t, start.ApproxEqual(geometry.Pose{Position: mathutil.Vec3{0, 0, -1}}, tol))
		assert.InDelta(t, 11, rest, tol)
	})

	for _, angle := range []float64{40, -40} {
		leg := geometry.PathLeg{Leg: geometry.CurveLeg(50, angle), Start: geometry.Pose{Position: mathutil.Vec3{3, 0, 4}, Heading: 20}}

		fwd, _ := ShiftStart(leg, 5)
		want := geometry.ComposeEndDirection(leg.Leg.WithLength(5), leg.Start)
		assert.True(t, fwd.ApproxEqual(want, tol), "forward %v", angle)

		// Shifting back then forward returns to the start.
		back, rest := ShiftStart(leg, -5)
		assert.InDelta(t, leg.Leg.Length()+5, rest, tol)
		again := geometry.ComposeEndDirection(leg.Leg.WithLength(5), back)
		assert.True(t, again.ApproxEqual(leg.Start, tol), "backward %v", angle)
	}
}

func TestSplit_InitialShiftMovesPattern(t *testing.T) {
	t.Parallel()

	sl := shape.NewSlicing(2, 1)
	sl.InitialShift = 0.5
	spec := shape.ReplicationSpec{Method: shape.NewByFixedIntervals(sl, 2), Scaling: shape.FixLengthAndTrim}
	res := Split(straight(10), spec)

	require.Len(t, res.Main, 4)
	assert.True(t, res.Main[0].Start.ApproxEqual(geometry.Pose{Position: mathutil.Vec3{0, 0, 0.5}}, tol))
	assert.Nil(t, res.Trailing)
}
