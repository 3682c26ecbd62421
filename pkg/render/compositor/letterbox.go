package compositor

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/matzehuels/podium/pkg/geometry"
)

// Letterbox paints dst black and draws src centred in it at the largest
// size that keeps its aspect ratio. It returns the rectangle the slide
// occupies, which the overlay engine needs to map pointer positions.
func Letterbox(dst draw.Image, src image.Image) image.Rectangle {
	bounds := dst.Bounds()
	draw.Draw(dst, bounds, image.NewUniform(color.Black), image.Point{}, draw.Src)
	if src == nil {
		return image.Rectangle{}
	}

	sb := src.Bounds()
	fit := geometry.FitPixels(geometry.SizeOf(sb.Size()), bounds.Size())
	if fit.X == 0 || fit.Y == 0 {
		return image.Rectangle{}
	}
	r := geometry.Center(fit, bounds)
	if fit == sb.Size() {
		draw.Draw(dst, r, src, sb.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(dst, r, src, sb, draw.Src, nil)
	}
	return r
}
