package geometry

import (
	"fmt"
	"image"
	"math"
)

// Size is a width and height in arbitrary units, usually PDF points.
type Size struct {
	W, H float64
}

// Empty reports whether either dimension is non-positive.
func (s Size) Empty() bool {
	return !(s.W > 0 && s.H > 0)
}

// Aspect returns W/H, or 0 for an empty size.
func (s Size) Aspect() float64 {
	if s.Empty() {
		return 0
	}
	return s.W / s.H
}

// Scale multiplies both dimensions by f.
func (s Size) Scale(f float64) Size {
	return Size{W: s.W * f, H: s.H * f}
}

// HalfWidth returns the size with its width halved. Split-mode slides keep
// the audience half on the left and speaker notes on the right.
func (s Size) HalfWidth() Size {
	return Size{W: s.W / 2, H: s.H}
}

// Pixels rounds the size to whole pixels.
func (s Size) Pixels() image.Point {
	return image.Pt(int(math.Round(s.W)), int(math.Round(s.H)))
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.W, s.H)
}

// SizeOf converts a pixel size to a Size.
func SizeOf(p image.Point) Size {
	return Size{W: float64(p.X), H: float64(p.Y)}
}

// FitInside returns the largest size with the aspect ratio of content that
// fits within bounds. An empty content or bounds yields the zero Size.
func FitInside(content, bounds Size) Size {
	if content.Empty() || bounds.Empty() {
		return Size{}
	}
	w := bounds.H * content.W / content.H
	if w <= bounds.W {
		return Size{W: w, H: bounds.H}
	}
	return Size{W: bounds.W, H: bounds.W * content.H / content.W}
}

// FitPixels is FitInside for pixel bounds. The result is rounded and never
// smaller than 1x1 when the inputs are non-empty, so extreme aspect ratios
// still produce a drawable image.
func FitPixels(content Size, bounds image.Point) image.Point {
	fit := FitInside(content, SizeOf(bounds))
	if fit.Empty() {
		return image.Point{}
	}
	p := fit.Pixels()
	if p.X < 1 {
		p.X = 1
	}
	if p.Y < 1 {
		p.Y = 1
	}
	if p.X > bounds.X {
		p.X = bounds.X
	}
	if p.Y > bounds.Y {
		p.Y = bounds.Y
	}
	return p
}

// Center returns the rectangle of size inner centred in outer.
func Center(inner image.Point, outer image.Rectangle) image.Rectangle {
	x := outer.Min.X + (outer.Dx()-inner.X)/2
	y := outer.Min.Y + (outer.Dy()-inner.Y)/2
	return image.Rect(x, y, x+inner.X, y+inner.Y)
}

// ScalePoint multiplies a pixel size by a device scale factor, rounding to
// whole pixels.
func ScalePoint(p image.Point, f float64) image.Point {
	if f <= 0 {
		f = 1
	}
	return image.Pt(int(math.Round(float64(p.X)*f)), int(math.Round(float64(p.Y)*f)))
}
