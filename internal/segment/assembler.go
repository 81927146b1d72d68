// Package segment realises placed copies of a template part along the legs
// produced by the interval splitter.
package segment

import (
	"fmt"

	"track-replicator/internal/geometry"
	"track-replicator/internal/interval"
	"track-replicator/internal/mathutil"
	"track-replicator/internal/shape"
)

// trimSlack lets polygons sitting exactly on the trailing boundary survive.
const trimSlack = 1e-6

// Options carries per-leg context not found in the template.
type Options struct {
	Gauge float64 // gauge of the track section the leg came from, 0 if unknown
}

// Assemble returns fresh polygons for every placement in res. No returned
// polygon shares vertex storage with the template or with another copy.
func Assemble(part shape.Part, res interval.Result, opts Options) ([]shape.Polygon, error) {
	bend := part.Replication.Scaling == shape.Stretch
	scale := 1.0
	if bend && res.Scale > 0 {
		scale = res.Scale
	}
	texScale := res.TextureScale
	if texScale <= 0 {
		texScale = 1
	}
	p := placer{
		part:     part,
		bend:     bend,
		scale:    scale,
		width:    part.Replication.Width.Factor(opts.Gauge),
		texScale: texScale,
	}

	out := make([]shape.Polygon, 0, res.Count()*len(part.Polygons))
	for _, leg := range res.Main {
		polys, err := p.place(leg, -1)
		if err != nil {
			return nil, err
		}
		out = append(out, polys...)
	}
	if res.Trailing != nil {
		polys, err := p.place(*res.Trailing, res.Trailing.Leg.Length())
		if err != nil {
			return nil, err
		}
		out = append(out, polys...)
	}
	return out, nil
}

type placer struct {
	part     shape.Part
	bend     bool
	scale    float64
	width    float64
	texScale float64
}

// place copies the template onto leg. A non-negative limit drops polygons
// whose centroid lies beyond that distance along the leg.
func (p placer) place(leg geometry.PathLeg, limit float64) ([]shape.Polygon, error) {
	out := make([]shape.Polygon, 0, len(p.part.Polygons))
	for _, tmpl := range p.part.Polygons {
		if limit >= 0 && tmpl.Centroid()[2]*p.scale > limit+trimSlack {
			continue
		}

		poly := tmpl.Clone()
		for i := range poly.Vertices {
			v := &poly.Vertices[i]
			local := v.Position
			local[0] *= p.width
			n := v.Normal
			if p.bend {
				n = geometry.BendNormal(n, local, leg.Leg, p.scale)
				local = geometry.BendPoint(local, leg.Leg, p.scale)
			}
			v.Position = geometry.TransposePoint(local, leg.Start)
			v.Normal = geometry.TransposeNormal(n, leg.Start)
			v.UV[1] *= p.texScale
		}

		if p.part.PlanarUV {
			if err := projectUV(&poly); err != nil {
				return nil, fmt.Errorf("segment: part %q polygon %d: %w", p.part.Name, poly.ID, err)
			}
		}
		out = append(out, poly)
	}
	return out, nil
}

// projectUV replaces the polygon's texture coordinates by a plane projection
// of its placed vertices.
func projectUV(poly *shape.Polygon) error {
	pts := make([]mathutil.Vec3, len(poly.Vertices))
	for i, v := range poly.Vertices {
		pts[i] = v.Position
	}
	uv, err := geometry.ProjectToPlane(pts)
	if err != nil {
		return err
	}
	for i := range poly.Vertices {
		poly.Vertices[i].UV = uv[i]
	}
	return nil
}
