package shape

import (
	"encoding/json"
	"fmt"
	"os"
)

// fileShape matches the JSON schema of a template or replicated shape.
type fileShape struct {
	Name string    `json:"name"`
	LODs []fileLOD `json:"lods"`
}

type fileLOD struct {
	Distance float64    `json:"distance"`
	Parts    []filePart `json:"parts"`
}

type filePart struct {
	Name        string           `json:"name"`
	Smooth      bool             `json:"smooth,omitempty"`
	PlanarUV    bool             `json:"planar_uv,omitempty"`
	Replication *fileReplication `json:"replication,omitempty"`
	Polygons    []Polygon        `json:"polygons"`
}

// fileReplication holds every parameter any method may take. Which ones are
// required depends on Method; see toMethod.
type fileReplication struct {
	Method              string   `json:"method"`
	Scaling             string   `json:"scaling,omitempty"`
	StretchInWidth      bool     `json:"stretch_in_width,omitempty"`
	ReferenceGauge      *float64 `json:"reference_gauge,omitempty"`
	OriginalLength      *float64 `json:"original_length,omitempty"`
	IntervalLength      *float64 `json:"interval_length,omitempty"`
	MaxDeflection       *float64 `json:"max_deflection,omitempty"`
	SubdivisionCount    *int     `json:"subdivision_count,omitempty"`
	InitialShift        *float64 `json:"initial_shift,omitempty"`
	LeaveAtLeastOnePart *bool    `json:"leave_at_least_one_part,omitempty"`
}

// Load reads a JSON shape file and validates its polygons.
func Load(path string) (Shape, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Shape{}, fmt.Errorf("shape: read %s: %w", path, err)
	}
	s, err := Decode(raw)
	if err != nil {
		return Shape{}, fmt.Errorf("shape: parse %s: %w", path, err)
	}
	return s, nil
}

// Decode parses a JSON shape document.
func Decode(raw []byte) (Shape, error) {
	var f fileShape
	if err := json.Unmarshal(raw, &f); err != nil {
		return Shape{}, err
	}

	s := Shape{Name: f.Name, LODs: make([]LOD, len(f.LODs))}
	for i, fl := range f.LODs {
		lod := LOD{Distance: fl.Distance, Parts: make([]Part, len(fl.Parts))}
		for j, fp := range fl.Parts {
			spec, err := fp.Replication.toSpec()
			if err != nil {
				return Shape{}, fmt.Errorf("part %q: %w", fp.Name, err)
			}
			lod.Parts[j] = Part{
				Name:        fp.Name,
				Smooth:      fp.Smooth,
				PlanarUV:    fp.PlanarUV,
				Replication: spec,
				Polygons:    fp.Polygons,
			}
		}
		s.LODs[i] = lod
	}

	if err := s.Validate(); err != nil {
		return Shape{}, err
	}
	return s, nil
}

// Save writes s as indented JSON.
func Save(path string, s Shape) error {
	data, err := Encode(s)
	if err != nil {
		return fmt.Errorf("shape: encode %s: %w", s.Name, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("shape: write %s: %w", path, err)
	}
	return nil
}

// Encode renders s as indented JSON.
func Encode(s Shape) ([]byte, error) {
	f := fileShape{Name: s.Name, LODs: make([]fileLOD, len(s.LODs))}
	for i, lod := range s.LODs {
		fl := fileLOD{Distance: lod.Distance, Parts: make([]filePart, len(lod.Parts))}
		for j, p := range lod.Parts {
			fl.Parts[j] = filePart{
				Name:        p.Name,
				Smooth:      p.Smooth,
				PlanarUV:    p.PlanarUV,
				Replication: fromSpec(p.Replication),
				Polygons:    p.Polygons,
			}
		}
		f.LODs[i] = fl
	}
	return json.MarshalIndent(f, "", "  ")
}

func (r *fileReplication) toSpec() (ReplicationSpec, error) {
	if r == nil {
		return ReplicationSpec{}, nil
	}

	kind, err := ParseMethodKind(r.Method)
	if err != nil {
		return ReplicationSpec{}, err
	}
	scaling, err := ParseScalingMethod(r.Scaling)
	if err != nil {
		return ReplicationSpec{}, err
	}
	spec := ReplicationSpec{Scaling: scaling}

	if r.StretchInWidth {
		if r.ReferenceGauge == nil {
			return ReplicationSpec{}, fmt.Errorf("shape: stretch_in_width needs reference_gauge")
		}
		spec.Width = StretchInWidth{Method: ScaleToGauge, ReferenceGauge: *r.ReferenceGauge}
	}

	switch kind {
	case MethodNone:
		var none NoReplication
		if r.OriginalLength != nil {
			none.OriginalLength = *r.OriginalLength
		}
		spec.Method = none
	case MethodAtFixedPos:
		orig, err := r.required("original_length", r.OriginalLength)
		if err != nil {
			return ReplicationSpec{}, err
		}
		spec.Method = NewAtFixedPos(orig)
	case MethodAtTheEnd:
		orig, err := r.required("original_length", r.OriginalLength)
		if err != nil {
			return ReplicationSpec{}, err
		}
		spec.Method = NewAtTheEnd(orig)
	case MethodByFixedIntervals:
		sl, err := r.slicing()
		if err != nil {
			return ReplicationSpec{}, err
		}
		interval, err := r.required("interval_length", r.IntervalLength)
		if err != nil {
			return ReplicationSpec{}, err
		}
		spec.Method = NewByFixedIntervals(sl, interval)
	case MethodByEvenIntervals:
		sl, err := r.slicing()
		if err != nil {
			return ReplicationSpec{}, err
		}
		spec.Method = NewByEvenIntervals(sl)
	case MethodStretchedByArc:
		sl, err := r.slicing()
		if err != nil {
			return ReplicationSpec{}, err
		}
		spec.Method = NewStretchedByArc(sl)
	case MethodStretchedByDeflection:
		sl, err := r.slicing()
		if err != nil {
			return ReplicationSpec{}, err
		}
		defl, err := r.required("max_deflection", r.MaxDeflection)
		if err != nil {
			return ReplicationSpec{}, err
		}
		spec.Method = NewStretchedByDeflection(sl, defl)
	}
	return spec, nil
}

func (r *fileReplication) required(name string, v *float64) (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("shape: method %s requires %s", r.Method, name)
	}
	return *v, nil
}

func (r *fileReplication) slicing() (Slicing, error) {
	orig, err := r.required("original_length", r.OriginalLength)
	if err != nil {
		return Slicing{}, err
	}
	sub := 1
	if r.SubdivisionCount != nil {
		sub = *r.SubdivisionCount
	}
	sl := NewSlicing(orig, sub)
	if r.InitialShift != nil {
		sl.InitialShift = *r.InitialShift
	}
	if r.LeaveAtLeastOnePart != nil {
		sl.LeaveAtLeastOnePart = *r.LeaveAtLeastOnePart
	}
	return sl, nil
}

func fromSpec(spec ReplicationSpec) *fileReplication {
	none, _ := spec.Method.(NoReplication)
	if spec.Kind() == MethodNone && none.OriginalLength == 0 && spec.Scaling == FixLength && spec.Width.Method == KeepWidth {
		return nil
	}

	r := &fileReplication{Method: spec.Kind().String(), Scaling: spec.Scaling.String()}
	if spec.Width.Method == ScaleToGauge {
		r.StretchInWidth = true
		r.ReferenceGauge = ptrFloat64(spec.Width.ReferenceGauge)
	}

	switch m := spec.Method.(type) {
	case NoReplication:
		if m.OriginalLength != 0 {
			r.OriginalLength = ptrFloat64(m.OriginalLength)
		}
	case AtFixedPos:
		r.OriginalLength = ptrFloat64(m.OriginalLength)
	case AtTheEnd:
		r.OriginalLength = ptrFloat64(m.OriginalLength)
	case ByFixedIntervals:
		r.setSlicing(m.Slicing)
		r.IntervalLength = ptrFloat64(m.IntervalLength)
	case ByEvenIntervals:
		r.setSlicing(m.Slicing)
	case StretchedByArc:
		r.setSlicing(m.Slicing)
	case StretchedByDeflection:
		r.setSlicing(m.Slicing)
		r.MaxDeflection = ptrFloat64(m.MaxDeflection)
	}
	return r
}

func (r *fileReplication) setSlicing(s Slicing) {
	r.OriginalLength = ptrFloat64(s.OriginalLength)
	sub := s.Subdivisions()
	r.SubdivisionCount = &sub
	if s.InitialShift != 0 {
		r.InitialShift = ptrFloat64(s.InitialShift)
	}
	if s.LeaveAtLeastOnePart {
		r.LeaveAtLeastOnePart = ptrBool(true)
	}
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
