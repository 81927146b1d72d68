// Package replicate lays a template shape along the paths of a track shape.
//
// Replicate is a pure function of its inputs and keeps no state between
// calls, so track shapes can be processed concurrently against the same
// template and section database.
package replicate

import (
	"errors"
	"fmt"

	"track-replicator/internal/interval"
	"track-replicator/internal/segment"
	"track-replicator/internal/shape"
	"track-replicator/internal/trackdb"
)

// ErrNoPolygons is returned when replication leaves the output empty. Batch
// callers treat it as a skip rather than a failure.
var ErrNoPolygons = errors.New("replicate: replication produced no polygons")

// Replicate builds the output shape for one track shape.
func Replicate(template shape.Shape, ts trackdb.TrackShape, sections trackdb.Sections) (shape.Shape, error) {
	paths, err := ShapeLegs(ts, sections)
	if err != nil {
		return shape.Shape{}, err
	}

	out := shape.Shape{Name: ts.Name(), LODs: make([]shape.LOD, 0, len(template.LODs))}
	for _, lod := range template.LODs {
		outLOD := shape.LOD{Distance: lod.Distance}
		for _, part := range lod.Parts {
			parts, err := replicatePart(part, paths)
			if err != nil {
				return shape.Shape{}, fmt.Errorf("replicate: track shape %d: %w", ts.ID, err)
			}
			outLOD.Parts = append(outLOD.Parts, parts...)
		}
		out.LODs = append(out.LODs, outLOD)
	}

	if out.PolygonCount() == 0 {
		return out, fmt.Errorf("%w: track shape %d (%s)", ErrNoPolygons, ts.ID, ts.FileName)
	}
	return out, nil
}

func replicatePart(part shape.Part, paths [][]TrackLeg) ([]shape.Part, error) {
	if part.Replication.Kind() == shape.MethodNone {
		return []shape.Part{part.Clone()}, nil
	}

	var out []shape.Part
	for pi, legs := range paths {
		for li, leg := range legs {
			res := interval.Split(leg.PathLeg, part.Replication)
			polys, err := segment.Assemble(part, res, segment.Options{Gauge: leg.Gauge})
			if err != nil {
				return nil, err
			}
			if len(polys) == 0 {
				continue
			}
			out = append(out, shape.Part{
				Name:     ReplicaName(part.Name, pi, li),
				Smooth:   part.Smooth,
				Polygons: polys,
			})
		}
	}
	return out, nil
}

// ReplicaName disambiguates the copies of a part made for each path leg.
func ReplicaName(part string, path, leg int) string {
	return fmt.Sprintf("%s_p%d_l%d", part, path, leg)
}
