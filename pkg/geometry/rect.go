package geometry

import (
	"image"
	"math"
)

// Rect is a floating-point rectangle with its origin at the top-left.
type Rect struct {
	X, Y, W, H float64
}

// RectOf converts an image.Rectangle.
func RectOf(r image.Rectangle) Rect {
	return Rect{X: float64(r.Min.X), Y: float64(r.Min.Y), W: float64(r.Dx()), H: float64(r.Dy())}
}

func (r Rect) Empty() bool {
	return !(r.W > 0 && r.H > 0)
}

func (r Rect) Size() Size {
	return Size{W: r.W, H: r.H}
}

// Center returns the midpoint of r.
func (r Rect) Center() (x, y float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Contains reports whether (x, y) lies in r. The right and bottom edges are
// exclusive, matching image.Rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Union returns the smallest rectangle containing r and s. Empty operands
// are ignored.
func (r Rect) Union(s Rect) Rect {
	if r.Empty() {
		return s
	}
	if s.Empty() {
		return r
	}
	x0 := math.Min(r.X, s.X)
	y0 := math.Min(r.Y, s.Y)
	x1 := math.Max(r.X+r.W, s.X+s.W)
	y1 := math.Max(r.Y+r.H, s.Y+s.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Inset shrinks r by d on every side. A negative d grows it.
func (r Rect) Inset(d float64) Rect {
	out := Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// Image rounds r to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	x0 := int(math.Round(r.X))
	y0 := int(math.Round(r.Y))
	return image.Rect(x0, y0, x0+int(math.Round(r.W)), y0+int(math.Round(r.H)))
}
