package shape

import (
	"fmt"

	"track-replicator/internal/mathutil"
)

// Vertex is one polygon corner: position, texture coordinate and normal.
type Vertex struct {
	Position mathutil.Vec3 `json:"position"`
	UV       [2]float64    `json:"uv"`
	Normal   mathutil.Vec3 `json:"normal"`
}

// Polygon holds an ordered vertex loop with its material and texture.
// A finished polygon has at least three vertices.
type Polygon struct {
	ID       int      `json:"id"`
	Material string   `json:"material,omitempty"`
	Texture  string   `json:"texture,omitempty"`
	Vertices []Vertex `json:"vertices"`
}

// Clone returns a copy that shares no storage with p.
func (p Polygon) Clone() Polygon {
	out := p
	out.Vertices = append([]Vertex(nil), p.Vertices...)
	return out
}

// Validate rejects polygons still under construction.
func (p Polygon) Validate() error {
	if len(p.Vertices) < 3 {
		return fmt.Errorf("shape: polygon %d has %d vertices, need at least 3", p.ID, len(p.Vertices))
	}
	return nil
}

// Centroid returns the average vertex position.
func (p Polygon) Centroid() mathutil.Vec3 {
	var c mathutil.Vec3
	if len(p.Vertices) == 0 {
		return c
	}
	for _, v := range p.Vertices {
		c = c.Add(v.Position)
	}
	return c.Scale(1 / float64(len(p.Vertices)))
}

// Part is a named polygon group replicated as a unit.
type Part struct {
	Name        string
	Smooth      bool
	PlanarUV    bool // regenerate UVs by plane projection after placement
	Replication ReplicationSpec
	Polygons    []Polygon
}

// Clone deep-copies the part and all its polygons.
func (p Part) Clone() Part {
	out := p
	out.Polygons = make([]Polygon, len(p.Polygons))
	for i, poly := range p.Polygons {
		out.Polygons[i] = poly.Clone()
	}
	return out
}

// LOD is the part list shown up to Distance.
type LOD struct {
	Distance float64
	Parts    []Part
}

// Shape is a named set of LODs.
type Shape struct {
	Name string
	LODs []LOD
}

// PolygonCount returns the total number of polygons over all LODs.
func (s Shape) PolygonCount() int {
	n := 0
	for _, lod := range s.LODs {
		for _, p := range lod.Parts {
			n += len(p.Polygons)
		}
	}
	return n
}

// Validate checks every polygon in the shape.
func (s Shape) Validate() error {
	for li, lod := range s.LODs {
		for _, part := range lod.Parts {
			for _, poly := range part.Polygons {
				if err := poly.Validate(); err != nil {
					return fmt.Errorf("lod %d part %q: %w", li, part.Name, err)
				}
			}
		}
	}
	return nil
}
