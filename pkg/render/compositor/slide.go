package compositor

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Slide is a rendered page as held by one surface. It is never modified
// after creation.
type Slide struct {
	Image *image.RGBA
	Page  int
	Split bool

	// Scale is the device scale the image was rendered for.
	Scale float64
}

// LogicalSize converts the image size back to logical pixels.
func (s *Slide) LogicalSize() image.Point {
	if s == nil || s.Image == nil {
		return image.Point{}
	}
	f := s.Scale
	if f <= 0 {
		f = 1
	}
	b := s.Image.Bounds()
	return image.Pt(int(math.Round(float64(b.Dx())/f)), int(math.Round(float64(b.Dy())/f)))
}

// SplitCrop copies the two halves of img into new images. The left half is
// floor(w/2) wide and the right half takes the remainder.
func SplitCrop(img *image.RGBA) (left, right *image.RGBA) {
	b := img.Bounds()
	mid := b.Min.X + b.Dx()/2
	return crop(img, image.Rect(b.Min.X, b.Min.Y, mid, b.Max.Y)),
		crop(img, image.Rect(mid, b.Min.Y, b.Max.X, b.Max.Y))
}

func crop(img *image.RGBA, r image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return dst
}
