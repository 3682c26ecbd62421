package selector

import (
	"image"
	"math"

	"github.com/matzehuels/podium/pkg/display"
	"github.com/matzehuels/podium/pkg/geometry"
)

// Layout constants in widget pixels.
const (
	Margin      = 20
	IconSize    = 40
	IconSpacing = 10
)

// Target is the surface a marker stands for.
type Target int

const (
	Audience Target = iota
	Console
)

func (t Target) String() string {
	if t == Audience {
		return "audience"
	}
	return "console"
}

// Change is a committed drag: Target should move to display Index.
type Change struct {
	Target Target
	Index  int
}

type drag struct {
	target  Target
	preview int
}

// Widget is the drag-to-assign display map. It is not safe for concurrent
// use.
type Widget struct {
	size     image.Point
	displays []display.Descriptor
	rects    []image.Rectangle
	assigned [2]int
	drag     *drag
}

// New returns an empty widget of the given size.
func New(size image.Point) *Widget {
	return &Widget{size: size, assigned: [2]int{-1, -1}}
}

// Size returns the widget size.
func (w *Widget) Size() image.Point { return w.size }

// Resize changes the widget size and recomputes the layout.
func (w *Widget) Resize(size image.Point) {
	w.size = size
	w.layout()
}

// SetTopology replaces the displays and committed assignment. Any drag in
// progress is cancelled.
func (w *Widget) SetTopology(ds []display.Descriptor, a display.Assignment) {
	w.displays = append([]display.Descriptor(nil), ds...)
	w.assigned = [2]int{a.Audience, a.Console}
	w.drag = nil
	w.layout()
}

// Assigned returns the committed display index of t.
func (w *Widget) Assigned(t Target) int { return w.assigned[t] }

// Layout returns the miniature rectangle of each display, in display
// order.
func (w *Widget) Layout() []image.Rectangle {
	return append([]image.Rectangle(nil), w.rects...)
}

// layout fits the union of all display geometries inside the widget minus
// its margin, preserving relative position and aspect ratio.
func (w *Widget) layout() {
	w.rects = w.rects[:0]
	if len(w.displays) == 0 {
		return
	}
	var bbox geometry.Rect
	for _, d := range w.displays {
		bbox = bbox.Union(geometry.RectOf(d.Geometry))
	}
	avail := geometry.Size{W: float64(w.size.X - 2*Margin), H: float64(w.size.Y - 2*Margin)}
	if bbox.Empty() || avail.Empty() {
		w.rects = make([]image.Rectangle, len(w.displays))
		return
	}
	fit := geometry.FitInside(bbox.Size(), avail)
	scale := fit.W / bbox.W
	ox := Margin + (avail.W-fit.W)/2
	oy := Margin + (avail.H-fit.H)/2

	for _, d := range w.displays {
		g := geometry.RectOf(d.Geometry)
		r := geometry.Rect{
			X: ox + (g.X-bbox.X)*scale,
			Y: oy + (g.Y-bbox.Y)*scale,
			W: g.W * scale,
			H: g.H * scale,
		}
		w.rects = append(w.rects, r.Image())
	}
}

// =============================================================================
// Markers
// =============================================================================

// shown returns the display index at which t's marker is drawn: the drag
// preview when t is being dragged over a display, else its committed
// index.
func (w *Widget) shown(t Target) int {
	if w.drag != nil && w.drag.target == t && w.drag.preview >= 0 {
		return w.drag.preview
	}
	return w.assigned[t]
}

// Marker returns the icon rectangle of t, or an empty rectangle when t is
// not on a known display. Markers sharing a display sit side by side.
func (w *Widget) Marker(t Target) image.Rectangle {
	i := w.shown(t)
	if i < 0 || i >= len(w.rects) {
		return image.Rectangle{}
	}
	r := w.rects[i]
	if r.Empty() {
		return image.Rectangle{}
	}
	cx := float64(r.Min.X+r.Max.X) / 2
	cy := float64(r.Min.Y+r.Max.Y) / 2
	if w.shown(Audience) == w.shown(Console) {
		offset := float64(IconSize+IconSpacing) / 2
		if t == Audience {
			cx -= offset
		} else {
			cx += offset
		}
	}
	half := float64(IconSize) / 2
	min := image.Pt(int(math.Round(cx-half)), int(math.Round(cy-half)))
	return image.Rectangle{Min: min, Max: min.Add(image.Pt(IconSize, IconSize))}
}

// displayAt returns the index of the miniature containing p, or -1.
func (w *Widget) displayAt(p image.Point) int {
	for i, r := range w.rects {
		if p.In(r) {
			return i
		}
	}
	return -1
}

// =============================================================================
// Drag state machine
// =============================================================================

// Dragging reports the target being dragged and its preview index.
func (w *Widget) Dragging() (Target, int, bool) {
	if w.drag == nil {
		return 0, -1, false
	}
	return w.drag.target, w.drag.preview, true
}

// Press starts a drag when p is on a marker, or on a display hosting
// exactly one marker. It reports whether a drag started.
func (w *Widget) Press(p image.Point) bool {
	if w.drag != nil {
		return false
	}
	for _, t := range []Target{Audience, Console} {
		if p.In(w.Marker(t)) {
			w.drag = &drag{target: t, preview: w.assigned[t]}
			return true
		}
	}

	i := w.displayAt(p)
	if i < 0 {
		return false
	}
	a, c := w.assigned[Audience] == i, w.assigned[Console] == i
	switch {
	case a && !c:
		w.drag = &drag{target: Audience, preview: i}
	case c && !a:
		w.drag = &drag{target: Console, preview: i}
	default:
		return false
	}
	return true
}

// Move updates the preview index while dragging. It reports whether the
// widget needs a repaint.
func (w *Widget) Move(p image.Point) bool {
	if w.drag == nil {
		return false
	}
	i := w.displayAt(p)
	if i == w.drag.preview {
		return false
	}
	w.drag.preview = i
	return true
}

// Release ends a drag. When the pointer is over a display other than the
// dragged marker's committed one, the change is committed and returned.
// Releasing outside every display cancels the drag.
func (w *Widget) Release(p image.Point) (Change, bool) {
	if w.drag == nil {
		return Change{}, false
	}
	w.Move(p)
	d := *w.drag
	w.drag = nil
	if d.preview < 0 || d.preview == w.assigned[d.target] {
		return Change{}, false
	}
	w.assigned[d.target] = d.preview
	return Change{Target: d.target, Index: d.preview}, true
}
