package aspect

import (
	"image"
	"testing"

	"github.com/matzehuels/podium/pkg/geometry"
)

var widescreen = geometry.Size{W: 1600, H: 900}

func TestDesired(t *testing.T) {
	tests := []struct {
		name    string
		current image.Point
		aspect  float64
		area    image.Point
		want    image.Point
	}{
		{"widescreen from 1000x400", image.Pt(1000, 400), 16.0 / 9, image.Pt(1920, 1080), image.Pt(1000, 562)},
		{"already correct", image.Pt(1600, 900), 16.0 / 9, image.Pt(1920, 1080), image.Pt(1600, 900)},
		{"height overflows", image.Pt(1000, 400), 4.0 / 3, image.Pt(1920, 600), image.Pt(800, 600)},
		{"width overflows", image.Pt(2400, 400), 2, image.Pt(1920, 1080), image.Pt(1920, 960)},
		{"split half page", image.Pt(900, 300), 16.0 / 18, image.Pt(1920, 1080), image.Pt(900, 1012)},
		{"no area limit", image.Pt(3000, 100), 2, image.Point{}, image.Pt(3000, 1500)},
		{"invalid aspect", image.Pt(640, 480), 0, image.Pt(1920, 1080), image.Pt(640, 480)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Desired(tt.current, tt.aspect, tt.area); got != tt.want {
				t.Errorf("Desired = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDesiredFitsArea(t *testing.T) {
	area := image.Pt(1280, 800)
	for w := 100; w <= 4000; w += 173 {
		for _, aspect := range []float64{0.5, 1, 4.0 / 3, 16.0 / 9, 32.0 / 9} {
			got := Desired(image.Pt(w, 300), aspect, area)
			if got.X > area.X || got.Y > area.Y {
				t.Errorf("Desired(%d, %.2f) = %v exceeds %v", w, aspect, got, area)
			}
		}
	}
}

// window resizes synchronously and delivers the new size straight back to
// the controller, the way a toolkit resize event would.
type window struct {
	c       *Controller
	size    image.Point
	resizes int
	ev      Event
}

func (w *window) Resize(size image.Point) {
	w.resizes++
	w.size = size
	ev := w.ev
	ev.Size = size
	w.c.OnResize(ev)
}

func TestControllerCorrectsOnce(t *testing.T) {
	w := &window{ev: Event{Page: widescreen, Area: image.Rect(0, 0, 1920, 1080)}}
	c := NewController(w, nil)
	w.c = c
	c.SetLocked(true)

	ev := w.ev
	ev.Size = image.Pt(1000, 400)
	if !c.OnResize(ev) {
		t.Fatal("no correction applied")
	}
	if w.size.X != 1000 || w.size.Y < 560 || w.size.Y > 564 {
		t.Errorf("window size = %v, want 1000x562", w.size)
	}
	if w.resizes > 2 || c.Applied() > 2 {
		t.Errorf("resizes = %d, applied = %d", w.resizes, c.Applied())
	}

	// The settled size arriving later is within tolerance.
	ev.Size = w.size
	if c.OnResize(ev) {
		t.Error("settled size corrected again")
	}
	if w.resizes != 1 {
		t.Errorf("resizes = %d, want 1", w.resizes)
	}
}

func TestControllerInert(t *testing.T) {
	base := Event{Size: image.Pt(1000, 400), Page: widescreen, Area: image.Rect(0, 0, 1920, 1080)}
	tests := []struct {
		name   string
		locked bool
		edit   func(*Event)
	}{
		{"unlocked", false, func(*Event) {}},
		{"fullscreen", true, func(e *Event) { e.FullScreen = true }},
		{"no page", true, func(e *Event) { e.Page = geometry.Size{} }},
		{"within tolerance", true, func(e *Event) { e.Size = image.Pt(1000, 564) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &window{}
			c := NewController(w, nil)
			w.c = c
			c.SetLocked(tt.locked)
			ev := base
			tt.edit(&ev)
			if c.OnResize(ev) || w.resizes != 0 {
				t.Errorf("OnResize applied a correction")
			}
		})
	}
}

func TestControllerSplit(t *testing.T) {
	w := &window{ev: Event{Page: widescreen, Split: true, Area: image.Rect(0, 0, 1920, 1080)}}
	c := NewController(w, nil)
	w.c = c
	c.SetLocked(true)

	ev := w.ev
	ev.Size = image.Pt(800, 800)
	c.OnResize(ev)
	if w.size.X != 800 || abs(w.size.Y-900) > 1 {
		t.Errorf("split window size = %v, want 800x900", w.size)
	}
}
