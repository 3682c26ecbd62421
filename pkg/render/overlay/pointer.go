package overlay

import (
	"image"
	"image/color"
	"math"
)

// Laser pointer limits, in logical pixels and 8-bit alpha.
const (
	MinPointerSize     = 10
	MaxPointerSize     = 200
	DefaultPointerSize = 60

	MinPointerOpacity     = 20
	MaxPointerOpacity     = 255
	DefaultPointerOpacity = 128
)

// PointerStyle configures the laser pointer.
type PointerStyle struct {
	Size    int
	Opacity int
	Color   color.RGBA
}

// DefaultPointerStyle is a translucent red dot.
func DefaultPointerStyle() PointerStyle {
	return PointerStyle{Size: DefaultPointerSize, Opacity: DefaultPointerOpacity, Color: color.RGBA{R: 255, A: 255}}
}

// Clamp forces the style into its valid ranges.
func (s PointerStyle) Clamp() PointerStyle {
	s.Size = clampInt(s.Size, MinPointerSize, MaxPointerSize)
	s.Opacity = clampInt(s.Opacity, MinPointerOpacity, MaxPointerOpacity)
	return s
}

// PointerImage renders the laser dot at the given device scale: a radial
// gradient at full style opacity in the centre, 80% of it halfway out and
// transparent at the edge. The style is clamped before scaling. The hotspot
// is the centre of the returned image.
func PointerImage(s PointerStyle, scale float64) (*image.NRGBA, image.Point) {
	s = s.Clamp()
	if scale <= 0 {
		scale = 1
	}
	n := max(int(math.Round(float64(s.Size)*scale)), 1)
	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	r := float64(n) / 2
	peak := float64(s.Opacity)

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			d := math.Hypot(float64(x)+0.5-r, float64(y)+0.5-r) / r
			var a float64
			switch {
			case d <= 0.5:
				a = lerp(peak, 0.8*peak, d/0.5)
			case d <= 1:
				a = lerp(0.8*peak, 0, (d-0.5)/0.5)
			}
			img.SetNRGBA(x, y, color.NRGBA{R: s.Color.R, G: s.Color.G, B: s.Color.B, A: uint8(math.Round(a))})
		}
	}
	return img, image.Pt(n/2, n/2)
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
