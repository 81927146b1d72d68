package preview

import (
	"image"
	"image/color"
	"math"
)

// Canvas is an NRGBA target paired with the tallest height drawn at each
// pixel. Looking straight down, the highest surface is the visible one.
type Canvas struct {
	Img    *image.NRGBA
	Height []float64
}

// NewCanvas returns a transparent w×h canvas with every height at -inf.
func NewCanvas(w, h int) *Canvas {
	height := make([]float64, w*h)
	for i := range height {
		height[i] = math.Inf(-1)
	}
	return &Canvas{Img: image.NewNRGBA(image.Rect(0, 0, w, h)), Height: height}
}

// Plot writes c at (x, y) if z is above the surface already drawn there.
// Coordinates must lie inside the canvas.
func (cv *Canvas) Plot(x, y int, z float64, c color.NRGBA) {
	i := y*cv.Img.Rect.Dx() + x
	if z <= cv.Height[i] {
		return
	}
	cv.Height[i] = z
	cv.Img.SetNRGBA(x, y, c)
}
