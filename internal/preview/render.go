// Package preview draws a top-down thumbnail of a shape, used to eyeball
// replication results without a 3-D viewer.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"

	"github.com/HugoSmits86/nativewebp"

	"track-replicator/internal/mathutil"
	"track-replicator/internal/shape"
	"track-replicator/internal/texture"
)

// Options controls preview rendering.
type Options struct {
	Size        int // output edge length in pixels
	Supersample int // render at Size*Supersample, then downsample
	LOD         int // index of the LOD to draw, clamped to the shape's range
}

var defaultColor = color.NRGBA{R: 160, G: 160, B: 170, A: 255}

// Render draws s viewed from above, +Z pointing up the image. tex may be nil.
func Render(s shape.Shape, opts Options, tex texture.Resolver) *image.NRGBA {
	size := opts.Size
	if size <= 0 {
		size = 512
	}
	ss := opts.Supersample
	if ss < 1 {
		ss = 1
	}
	renderSize := size * ss

	if len(s.LODs) == 0 {
		return image.NewNRGBA(image.Rect(0, 0, size, size))
	}
	lod := s.LODs[min(max(opts.LOD, 0), len(s.LODs)-1)]

	// Bounding box in the ground plane
	minX, minZ := math.Inf(1), math.Inf(1)
	maxX, maxZ := math.Inf(-1), math.Inf(-1)
	for _, part := range lod.Parts {
		for _, poly := range part.Polygons {
			for _, v := range poly.Vertices {
				minX = math.Min(minX, v.Position[0])
				maxX = math.Max(maxX, v.Position[0])
				minZ = math.Min(minZ, v.Position[2])
				maxZ = math.Max(maxZ, v.Position[2])
			}
		}
	}
	if math.IsInf(minX, 1) {
		return image.NewNRGBA(image.Rect(0, 0, size, size))
	}

	cx, cz := (minX+maxX)/2, (minZ+maxZ)/2
	span := math.Max(maxX-minX, maxZ-minZ)
	if span < 0.001 {
		span = 0.001
	}
	margin := 8 * ss
	scale := float64(renderSize-2*margin) / span
	half := float64(renderSize) / 2

	project := func(p mathutil.Vec3) mathutil.Vec3 {
		return mathutil.Vec3{(p[0]-cx)*scale + half, half - (p[2]-cz)*scale, p[1]}
	}

	cv := NewCanvas(renderSize, renderSize)
	for _, part := range lod.Parts {
		for _, poly := range part.Polygons {
			if len(poly.Vertices) < 3 {
				continue
			}
			c := defaultColor
			if tex != nil {
				if tc, ok := tex.Resolve(poly.Texture); ok {
					c = tc
				}
			}

			// Triangle fan around the first vertex
			v0 := poly.Vertices[0].Position
			for i := 1; i+1 < len(poly.Vertices); i++ {
				v1, v2 := poly.Vertices[i].Position, poly.Vertices[i+1].Position
				n := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
				if n == (mathutil.Vec3{}) {
					continue
				}
				RasterizeTriangle(cv, project(v0), project(v1), project(v2), n, c)
			}
		}
	}

	img := cv.Img
	if ss > 1 {
		img = Downsample(img, size)
	}
	return img
}

// Encode writes img as lossless WebP.
func Encode(w io.Writer, img image.Image) error {
	return nativewebp.Encode(w, img, nil)
}

// WriteFile renders s and saves it as a WebP file.
func WriteFile(path string, s shape.Shape, opts Options, tex texture.Resolver) error {
	img := Render(s, opts, tex)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: create %s: %w", path, err)
	}
	if err := Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("preview: encode %s: %w", path, err)
	}
	return f.Close()
}
