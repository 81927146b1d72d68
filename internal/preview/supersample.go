package preview

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample shrinks img to size×size. Filtering runs on premultiplied
// pixels so transparent background does not bleed dark fringes into edges.
func Downsample(img *image.NRGBA, size int) *image.NRGBA {
	src := img.Bounds()
	if src.Dx() <= size && src.Dy() <= size {
		return img
	}

	premul := image.NewRGBA(src)
	draw.Copy(premul, image.Point{}, img, src, draw.Src, nil)

	scaled := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(scaled, scaled.Rect, premul, src, draw.Src, nil)

	out := image.NewNRGBA(scaled.Rect)
	draw.Copy(out, image.Point{}, scaled, scaled.Rect, draw.Src, nil)
	return out
}
