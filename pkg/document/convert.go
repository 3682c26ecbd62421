package document

import (
	"image"

	"golang.org/x/image/draw"
)

// toRGBA returns img as an *image.RGBA with its origin at (0, 0).
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// fitExact rescales img to px when a backend's rounding left it a pixel or
// two off. Callers rely on receiving exactly the size they asked for.
func fitExact(img *image.RGBA, px image.Point) *image.RGBA {
	if img.Bounds().Size() == px {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, px.X, px.Y))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
