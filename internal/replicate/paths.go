package replicate

import (
	"fmt"

	"track-replicator/internal/geometry"
	"track-replicator/internal/trackdb"
)

// TrackLeg is a merged, chained path leg with the gauge of its sections.
type TrackLeg struct {
	geometry.PathLeg
	Gauge float64
}

// PathLegs resolves the path's section ids, merges neighbours of identical
// curvature and gauge, and chains the merged legs from the path start.
func PathLegs(path trackdb.Path, sections trackdb.Sections) ([]TrackLeg, error) {
	var merged []TrackLeg
	for _, id := range path.SectionIDs {
		sec, err := sections.Lookup(id)
		if err != nil {
			return nil, err
		}
		if n := len(merged); n > 0 && merged[n-1].Gauge == sec.Gauge && merged[n-1].Leg.SameCurvature(sec.Leg) {
			merged[n-1].Leg = merged[n-1].Leg.Merge(sec.Leg)
			continue
		}
		merged = append(merged, TrackLeg{PathLeg: geometry.PathLeg{Leg: sec.Leg}, Gauge: sec.Gauge})
	}

	start := path.Start
	for i := range merged {
		merged[i].Start = start
		start = merged[i].End()
	}
	return merged, nil
}

// ShapeLegs returns PathLegs for every path of ts.
func ShapeLegs(ts trackdb.TrackShape, sections trackdb.Sections) ([][]TrackLeg, error) {
	out := make([][]TrackLeg, len(ts.Paths))
	for i, p := range ts.Paths {
		legs, err := PathLegs(p, sections)
		if err != nil {
			return nil, fmt.Errorf("replicate: track shape %d path %d: %w", ts.ID, i, err)
		}
		out[i] = legs
	}
	return out, nil
}
