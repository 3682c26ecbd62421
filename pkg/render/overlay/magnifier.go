package overlay

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// Magnifier limits. Size is the lens diameter in logical pixels.
const (
	MinMagnifierSize     = 250
	MaxMagnifierSize     = 1500
	DefaultMagnifierSize = 250

	MinMagnification     = 2.0
	MaxMagnification     = 5.0
	DefaultMagnification = 2.0
)

// MagnifierStyle configures the lens.
type MagnifierStyle struct {
	Size          int
	Magnification float64
}

// DefaultMagnifierStyle returns the default lens.
func DefaultMagnifierStyle() MagnifierStyle {
	return MagnifierStyle{Size: DefaultMagnifierSize, Magnification: DefaultMagnification}
}

// Clamp forces the style into its valid ranges.
func (s MagnifierStyle) Clamp() MagnifierStyle {
	s.Size = clampInt(s.Size, MinMagnifierSize, MaxMagnifierSize)
	s.Magnification = math.Min(math.Max(s.Magnification, MinMagnification), MaxMagnification)
	return s
}

// MagnifierSource returns the region of the slide image to magnify for a
// pointer at p.
//
// The lens is Size*scale frame pixels wide, so it covers a frame square of
// side Size*scale/Magnification around p. That square is mapped into image
// space through fitted, the rectangle the slide occupies in the frame, so
// letterboxing is accounted for. Near the slide edges, and for a pointer
// outside fitted, the region slides inward to the nearest part of the image
// rather than shrinking; if the image is smaller than the region the whole
// image is returned.
func MagnifierSource(p image.Point, fitted image.Rectangle, img image.Point, s MagnifierStyle, scale float64) image.Rectangle {
	if fitted.Empty() || img.X <= 0 || img.Y <= 0 {
		return image.Rectangle{}
	}
	if scale <= 0 {
		scale = 1
	}
	s = s.Clamp()
	rx := float64(img.X) / float64(fitted.Dx())
	ry := float64(img.Y) / float64(fitted.Dy())

	half := lensDiameter(s, scale) / 2 / s.Magnification
	cx := float64(p.X-fitted.Min.X) * rx
	cy := float64(p.Y-fitted.Min.Y) * ry

	x0, x1 := clampSpan(cx-half*rx, cx+half*rx, float64(img.X))
	y0, y1 := clampSpan(cy-half*ry, cy+half*ry, float64(img.Y))
	return image.Rect(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)))
}

// clampSpan shifts [lo, hi) into [0, limit) keeping its length when it fits.
func clampSpan(lo, hi, limit float64) (float64, float64) {
	if hi-lo >= limit {
		return 0, limit
	}
	if lo < 0 {
		hi -= lo
		lo = 0
	}
	if hi > limit {
		lo -= hi - limit
		hi = limit
	}
	return lo, hi
}

// lensDiameter is the lens size in frame pixels.
func lensDiameter(s MagnifierStyle, scale float64) float64 {
	return float64(s.Size) * scale
}

// paintLens draws the magnified region of slide as a circle centred on p.
func paintLens(dst *image.RGBA, slide image.Image, fitted image.Rectangle, p image.Point, s MagnifierStyle, scale float64) {
	if slide == nil {
		return
	}
	s = s.Clamp()
	src := MagnifierSource(p, fitted, slide.Bounds().Size(), s, scale)
	src = src.Add(slide.Bounds().Min)
	if src.Empty() {
		return
	}

	d := int(math.Round(lensDiameter(s, scale)))
	if d <= 0 {
		return
	}
	lens := image.NewRGBA(image.Rect(0, 0, d, d))
	draw.CatmullRom.Scale(lens, lens.Bounds(), slide, src, draw.Src, nil)

	at := image.Rect(p.X-d/2, p.Y-d/2, p.X-d/2+d, p.Y-d/2+d)
	draw.DrawMask(dst, at, lens, image.Point{}, circleMask(d), image.Point{}, draw.Over)

	strokeRing(dst, p, float64(d)/2, 3*scale, color.RGBA{R: 40, G: 40, B: 40, A: 230})
}

// circleMask is an anti-aliased disc of diameter d.
func circleMask(d int) *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, d, d))
	r := float64(d) / 2
	for y := 0; y < d; y++ {
		for x := 0; x < d; x++ {
			dist := math.Hypot(float64(x)+0.5-r, float64(y)+0.5-r)
			cov := math.Min(math.Max(r-dist+0.5, 0), 1)
			m.SetAlpha(x, y, color.Alpha{A: uint8(cov * 255)})
		}
	}
	return m
}
