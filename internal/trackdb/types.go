package trackdb

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"track-replicator/internal/geometry"
)

// ErrUnknownSection is wrapped when a path references a section id the
// database does not define.
var ErrUnknownSection = errors.New("trackdb: unknown track section")

// Section is one database track section: a gauge and a leg.
type Section struct {
	ID    int
	Gauge float64
	Leg   geometry.Leg
}

// Sections maps section id to Section.
type Sections map[int]Section

// Lookup returns the section with the given id.
func (s Sections) Lookup(id int) (Section, error) {
	sec, ok := s[id]
	if !ok {
		return Section{}, fmt.Errorf("%w: %d", ErrUnknownSection, id)
	}
	return sec, nil
}

// Path is a run of sections laid end to end from Start.
type Path struct {
	Start      geometry.Pose
	SectionIDs []int
}

// TrackShape is a named list of paths sharing one shape file.
type TrackShape struct {
	ID       int
	FileName string
	Paths    []Path
}

// Name returns the file name without directory or extension.
func (t TrackShape) Name() string {
	base := filepath.Base(strings.ReplaceAll(t.FileName, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return fmt.Sprintf("shape%d", t.ID)
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Database holds parsed track sections and track shapes.
type Database struct {
	Sections Sections
	Shapes   map[int]TrackShape
}

// ShapesByID returns the track shapes in ascending id order.
func (d Database) ShapesByID() []TrackShape {
	ids := make([]int, 0, len(d.Shapes))
	for id := range d.Shapes {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]TrackShape, len(ids))
	for i, id := range ids {
		out[i] = d.Shapes[id]
	}
	return out
}
