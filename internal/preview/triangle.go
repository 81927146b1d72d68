package preview

import (
	"image/color"
	"math"

	"track-replicator/internal/mathutil"
)

// lightDir is the fixed key light for flat shading, pointing down onto the track.
var lightDir = mathutil.Vec3{0.3, 1, 0.2}.Normalize()

const ambient = 0.35

// RasterizeTriangle fills a screen-space triangle with a flat-shaded colour.
// Points are (x, y) pixel coordinates with z as height; higher z wins.
// normal is the world-space face normal used for shading.
func RasterizeTriangle(cv *Canvas, p0, p1, p2 mathutil.Vec3, normal mathutil.Vec3, c color.NRGBA) {
	area := edge(p0, p1, p2[0], p2[1])
	if math.Abs(area) < 1e-8 {
		return
	}

	shade := ambient + (1-ambient)*math.Abs(normal.Dot(lightDir))
	lit := color.NRGBA{
		R: clamp255(float64(c.R) * shade),
		G: clamp255(float64(c.G) * shade),
		B: clamp255(float64(c.B) * shade),
		A: 255,
	}

	b := cv.Img.Rect
	minX := max(int(math.Floor(min(p0[0], p1[0], p2[0]))), b.Min.X)
	maxX := min(int(math.Ceil(max(p0[0], p1[0], p2[0]))), b.Max.X-1)
	minY := max(int(math.Floor(min(p0[1], p1[1], p2[1]))), b.Min.Y)
	maxY := min(int(math.Ceil(max(p0[1], p1[1], p2[1]))), b.Max.Y-1)

	// Edge functions sampled at pixel centres, normalised to barycentrics
	const slack = -0.001
	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			w0 := edge(p1, p2, px, py) / area
			w1 := edge(p2, p0, px, py) / area
			w2 := 1 - w0 - w1
			if w0 < slack || w1 < slack || w2 < slack {
				continue
			}
			cv.Plot(x, y, w0*p0[2]+w1*p1[2]+w2*p2[2], lit)
		}
	}
}

// edge is twice the signed area of (a, b, (px, py)).
func edge(a, b mathutil.Vec3, px, py float64) float64 {
	return (b[0]-a[0])*(py-a[1]) - (b[1]-a[1])*(px-a[0])
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
