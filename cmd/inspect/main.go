package main

import (
	"fmt"
	"math"
	"os"

	"track-replicator/internal/shape"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: inspect template.json")
		os.Exit(2)
	}
	s, err := shape.Load(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Shape %q: LODs: %d, Polygons: %d\n", s.Name, len(s.LODs), s.PolygonCount())
	for li, lod := range s.LODs {
		fmt.Printf("LOD[%d] distance=%.0f parts=%d\n", li, lod.Distance, len(lod.Parts))
		for pi, p := range lod.Parts {
			minX, minY, minZ := math.Inf(1), math.Inf(1), math.Inf(1)
			maxX, maxY, maxZ := math.Inf(-1), math.Inf(-1), math.Inf(-1)
			verts := 0
			textures := map[string]int{}
			for _, poly := range p.Polygons {
				textures[poly.Texture]++
				for _, v := range poly.Vertices {
					verts++
					minX, maxX = math.Min(minX, v.Position[0]), math.Max(maxX, v.Position[0])
					minY, maxY = math.Min(minY, v.Position[1]), math.Max(maxY, v.Position[1])
					minZ, maxZ = math.Min(minZ, v.Position[2]), math.Max(maxZ, v.Position[2])
				}
			}
			fmt.Printf("  Part[%d] %q: polys=%d, verts=%d, smooth=%v, planar_uv=%v\n",
				pi, p.Name, len(p.Polygons), verts, p.Smooth, p.PlanarUV)
			fmt.Printf("    Replication: %s, scaling=%s, width=%s\n",
				p.Replication.Kind(), p.Replication.Scaling, p.Replication.Width.Method)
			if sl, ok := p.Replication.Slicing(); ok {
				fmt.Printf("    Slicing: length=%.3f subdivisions=%d shift=%.3f keep_one=%v\n",
					sl.OriginalLength, sl.Subdivisions(), sl.InitialShift, sl.LeaveAtLeastOnePart)
			}
			if verts == 0 {
				continue
			}
			fmt.Printf("    BBox: X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]\n", minX, maxX, minY, maxY, minZ, maxZ)
			fmt.Printf("    Textures: %v\n", textures)
		}
	}
}
