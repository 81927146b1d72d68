package shape

import "fmt"

// MethodKind names a replication policy.
type MethodKind int

const (
	MethodNone MethodKind = iota
	MethodAtFixedPos
	MethodAtTheEnd
	MethodByFixedIntervals
	MethodByEvenIntervals
	MethodStretchedByArc
	MethodStretchedByDeflection
)

var methodNames = [...]string{
	MethodNone:                  "none",
	MethodAtFixedPos:            "at_fixed_pos",
	MethodAtTheEnd:              "at_the_end",
	MethodByFixedIntervals:      "by_fixed_intervals",
	MethodByEvenIntervals:       "by_even_intervals",
	MethodStretchedByArc:        "stretched_by_arc",
	MethodStretchedByDeflection: "stretched_by_deflection",
}

func (k MethodKind) String() string {
	if k < 0 || int(k) >= len(methodNames) {
		return fmt.Sprintf("MethodKind(%d)", int(k))
	}
	return methodNames[k]
}

// ParseMethodKind accepts the names produced by MethodKind.String.
func ParseMethodKind(s string) (MethodKind, error) {
	for k, name := range methodNames {
		if name == s {
			return MethodKind(k), nil
		}
	}
	return MethodNone, fmt.Errorf("shape: unknown replication method %q", s)
}

// Method is the closed set of replication policies. Each implementation
// carries exactly the parameters its policy needs.
type Method interface {
	Kind() MethodKind
}

// Slicing describes how an authored part divides into repeatable slices.
type Slicing struct {
	OriginalLength      float64 // authored length of the template part
	SubdivisionCount    int     // slices per authored part, at least 1
	InitialShift        float64 // phase shift of the pattern along the leg
	LeaveAtLeastOnePart bool
}

// NewSlicing coerces subdivisions to an integer >= 1.
func NewSlicing(originalLength float64, subdivisions int) Slicing {
	if subdivisions < 1 {
		subdivisions = 1
	}
	return Slicing{OriginalLength: originalLength, SubdivisionCount: subdivisions}
}

// Subdivisions returns SubdivisionCount, treating anything below 1 as 1.
func (s Slicing) Subdivisions() int {
	if s.SubdivisionCount < 1 {
		return 1
	}
	return s.SubdivisionCount
}

// SliceLength is the authored length of one subdivision.
func (s Slicing) SliceLength() float64 {
	return s.OriginalLength / float64(s.Subdivisions())
}

// NoReplication leaves the part untransformed. OriginalLength is only used
// when a caller splits a leg with it anyway; the copy gets that length.
type NoReplication struct {
	OriginalLength float64
}

// AtFixedPos places one copy at the start of each leg.
type AtFixedPos struct {
	OriginalLength float64
}

// AtTheEnd places one copy at the end of each leg.
type AtTheEnd struct {
	OriginalLength float64
}

// ByFixedIntervals repeats the part at a fixed pitch, leaving a remainder.
type ByFixedIntervals struct {
	Slicing
	IntervalLength float64
}

// ByEvenIntervals repeats the part at the pitch closest to its authored
// length that divides the leg evenly.
type ByEvenIntervals struct {
	Slicing
}

// StretchedByArc stretches one copy over the whole leg.
type StretchedByArc struct {
	Slicing
}

// StretchedByDeflection repeats the part so that no chord strays more than
// MaxDeflection from the arc.
type StretchedByDeflection struct {
	Slicing
	MaxDeflection float64
}

func (NoReplication) Kind() MethodKind         { return MethodNone }
func (AtFixedPos) Kind() MethodKind            { return MethodAtFixedPos }
func (AtTheEnd) Kind() MethodKind              { return MethodAtTheEnd }
func (ByFixedIntervals) Kind() MethodKind      { return MethodByFixedIntervals }
func (ByEvenIntervals) Kind() MethodKind       { return MethodByEvenIntervals }
func (StretchedByArc) Kind() MethodKind        { return MethodStretchedByArc }
func (StretchedByDeflection) Kind() MethodKind { return MethodStretchedByDeflection }

func NewAtFixedPos(originalLength float64) AtFixedPos {
	return AtFixedPos{OriginalLength: originalLength}
}

func NewAtTheEnd(originalLength float64) AtTheEnd {
	return AtTheEnd{OriginalLength: originalLength}
}

func NewByFixedIntervals(s Slicing, intervalLength float64) ByFixedIntervals {
	return ByFixedIntervals{Slicing: s, IntervalLength: intervalLength}
}

func NewByEvenIntervals(s Slicing) ByEvenIntervals {
	return ByEvenIntervals{Slicing: s}
}

func NewStretchedByArc(s Slicing) StretchedByArc {
	return StretchedByArc{Slicing: s}
}

func NewStretchedByDeflection(s Slicing, maxDeflection float64) StretchedByDeflection {
	return StretchedByDeflection{Slicing: s, MaxDeflection: maxDeflection}
}

// ScalingMethod controls what happens to template geometry along the path.
type ScalingMethod int

const (
	FixLength        ScalingMethod = iota // place copies unscaled
	FixLengthAndTrim                      // unscaled, drop partial trailing slices
	Stretch                               // bend and stretch copies onto each leg
)

var scalingNames = [...]string{
	FixLength:        "fix_length",
	FixLengthAndTrim: "fix_length_and_trim",
	Stretch:          "stretch",
}

func (m ScalingMethod) String() string {
	if m < 0 || int(m) >= len(scalingNames) {
		return fmt.Sprintf("ScalingMethod(%d)", int(m))
	}
	return scalingNames[m]
}

// ParseScalingMethod accepts the names produced by ScalingMethod.String.
// The empty string selects FixLength.
func ParseScalingMethod(s string) (ScalingMethod, error) {
	if s == "" {
		return FixLength, nil
	}
	for m, name := range scalingNames {
		if name == s {
			return ScalingMethod(m), nil
		}
	}
	return FixLength, fmt.Errorf("shape: unknown scaling method %q", s)
}

// WidthMethod controls lateral scaling.
type WidthMethod int

const (
	KeepWidth WidthMethod = iota
	ScaleToGauge
)

func (m WidthMethod) String() string {
	if m == ScaleToGauge {
		return "scale_to_gauge"
	}
	return "keep_width"
}

// StretchInWidth scales local X by the section gauge over ReferenceGauge.
type StretchInWidth struct {
	Method         WidthMethod
	ReferenceGauge float64
}

// Factor returns the lateral scale for a section of the given gauge.
func (w StretchInWidth) Factor(gauge float64) float64 {
	if w.Method != ScaleToGauge || w.ReferenceGauge <= 0 || gauge <= 0 {
		return 1
	}
	return gauge / w.ReferenceGauge
}

// ReplicationSpec is the per-part replication policy.
type ReplicationSpec struct {
	Method  Method
	Scaling ScalingMethod
	Width   StretchInWidth
}

// Kind returns the policy kind; a nil Method means MethodNone.
func (r ReplicationSpec) Kind() MethodKind {
	if r.Method == nil {
		return MethodNone
	}
	return r.Method.Kind()
}

// Slicing returns the slicing parameters of interval-based methods.
func (r ReplicationSpec) Slicing() (Slicing, bool) {
	switch m := r.Method.(type) {
	case ByFixedIntervals:
		return m.Slicing, true
	case ByEvenIntervals:
		return m.Slicing, true
	case StretchedByArc:
		return m.Slicing, true
	case StretchedByDeflection:
		return m.Slicing, true
	}
	return Slicing{}, false
}
