package overlay

import (
	"image"
	"image/color"

	"github.com/google/uuid"
)

// LineStyle is the dash pattern of a stroke.
type LineStyle int

const (
	LineSolid LineStyle = iota
	LineDashed
	LineDotted
)

func (l LineStyle) String() string {
	switch l {
	case LineDashed:
		return "dashed"
	case LineDotted:
		return "dotted"
	default:
		return "solid"
	}
}

// ParseLineStyle maps a settings value to a LineStyle, defaulting to solid.
func ParseLineStyle(s string) LineStyle {
	switch s {
	case "dashed":
		return LineDashed
	case "dotted":
		return LineDotted
	default:
		return LineSolid
	}
}

// Pen is the style new strokes are drawn with.
type Pen struct {
	Color     color.RGBA
	Thickness float64
	Style     LineStyle
}

// DefaultPen is a 3px solid red line.
func DefaultPen() Pen {
	return Pen{Color: color.RGBA{R: 255, A: 255}, Thickness: 3}
}

// Stroke is a committed polyline in screen coordinates.
type Stroke struct {
	ID     uuid.UUID
	Points []image.Point
	Pen    Pen
}

// Ink holds the annotation strokes of the current page.
type Ink struct {
	strokes []Stroke
	current *Stroke
}

// Begin starts a stroke at p. A stroke already in progress is committed
// first.
func (k *Ink) Begin(p image.Point, pen Pen) {
	k.End()
	k.current = &Stroke{ID: uuid.New(), Points: []image.Point{p}, Pen: pen}
}

// Extend appends p to the stroke in progress. Repeated points are dropped.
func (k *Ink) Extend(p image.Point) bool {
	if k.current == nil {
		return false
	}
	pts := k.current.Points
	if pts[len(pts)-1] == p {
		return false
	}
	k.current.Points = append(pts, p)
	return true
}

// End commits the stroke in progress.
func (k *Ink) End() {
	if k.current == nil {
		return
	}
	s := *k.current
	s.Points = append([]image.Point(nil), s.Points...)
	k.strokes = append(k.strokes, s)
	k.current = nil
}

// Undo removes the last committed stroke and returns its id.
func (k *Ink) Undo() (uuid.UUID, bool) {
	n := len(k.strokes)
	if n == 0 {
		return uuid.Nil, false
	}
	id := k.strokes[n-1].ID
	k.strokes = k.strokes[:n-1:n-1]
	return id, true
}

// Remove deletes the committed stroke with the given id.
func (k *Ink) Remove(id uuid.UUID) bool {
	for i, s := range k.strokes {
		if s.ID == id {
			k.strokes = append(k.strokes[:i:i], k.strokes[i+1:]...)
			return true
		}
	}
	return false
}

// Drawing reports whether a stroke is in progress.
func (k *Ink) Drawing() bool { return k.current != nil }

// Strokes returns a deep copy of the committed strokes.
func (k *Ink) Strokes() []Stroke {
	out := make([]Stroke, len(k.strokes))
	for i, s := range k.strokes {
		s.Points = append([]image.Point(nil), s.Points...)
		out[i] = s
	}
	return out
}

// Clear drops all strokes, including one in progress.
func (k *Ink) Clear() bool {
	had := len(k.strokes) > 0 || k.current != nil
	k.strokes, k.current = nil, nil
	return had
}

func (k *Ink) all() []Stroke {
	if k.current == nil {
		return k.strokes
	}
	return append(k.strokes[:len(k.strokes):len(k.strokes)], *k.current)
}
