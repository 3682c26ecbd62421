package selector

import (
	"image"
	"math"
	"testing"

	"github.com/matzehuels/podium/pkg/display"
)

func row(n int) []display.Descriptor {
	ds := make([]display.Descriptor, n)
	for i := range ds {
		r := image.Rect(i*1920, 0, (i+1)*1920, 1080)
		ds[i] = display.Descriptor{Index: i, Geometry: r, Available: r}
	}
	return ds
}

func center(r image.Rectangle) image.Point {
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

func newWidget(n, audience, console int) *Widget {
	w := New(image.Pt(620, 240))
	w.SetTopology(row(n), display.Assignment{Audience: audience, Console: console})
	return w
}

func TestLayoutPreservesArrangement(t *testing.T) {
	w := newWidget(3, 1, 0)
	rects := w.Layout()
	if len(rects) != 3 {
		t.Fatalf("len(Layout) = %d", len(rects))
	}
	bounds := image.Rect(Margin, Margin, 620-Margin, 240-Margin)
	for i, r := range rects {
		if !r.In(bounds) {
			t.Errorf("rect %d = %v outside %v", i, r, bounds)
		}
		aspect := float64(r.Dx()) / float64(r.Dy())
		if math.Abs(aspect-16.0/9) > 0.05 {
			t.Errorf("rect %d aspect = %.3f", i, aspect)
		}
		if i > 0 {
			prev := rects[i-1]
			if abs(r.Min.X-prev.Max.X) > 1 || r.Min.Y != prev.Min.Y {
				t.Errorf("rect %d = %v not adjacent to %v", i, r, prev)
			}
		}
	}
	// The arrangement is wider than tall, so it spans the full width.
	if rects[0].Min.X != Margin || rects[2].Max.X != 620-Margin {
		t.Errorf("layout does not span width: %v", rects)
	}
}

func TestLayoutStacked(t *testing.T) {
	w := New(image.Pt(300, 300))
	ds := []display.Descriptor{
		{Index: 0, Geometry: image.Rect(0, 0, 1000, 1000)},
		{Index: 1, Geometry: image.Rect(0, 1000, 1000, 2000)},
	}
	w.SetTopology(ds, display.Assignment{Audience: 0, Console: 1})
	rects := w.Layout()
	if rects[0].Max.Y != rects[1].Min.Y {
		t.Errorf("stacked displays not adjacent: %v", rects)
	}
	if rects[0].Min.Y != Margin || rects[1].Max.Y != 300-Margin {
		t.Errorf("stacked layout does not span height: %v", rects)
	}
}

func TestLayoutEmpty(t *testing.T) {
	w := New(image.Pt(30, 30))
	w.SetTopology(row(2), display.Assignment{Audience: 1, Console: 0})
	for _, r := range w.Layout() {
		if !r.Empty() {
			t.Errorf("layout in a collapsed widget = %v", r)
		}
	}
	if !w.Marker(Audience).Empty() {
		t.Error("marker drawn in a collapsed widget")
	}
}

func TestMarkersSideBySide(t *testing.T) {
	w := newWidget(3, 1, 1)
	a, c := w.Marker(Audience), w.Marker(Console)
	if a.Overlaps(c) {
		t.Errorf("markers overlap: %v %v", a, c)
	}
	if a.Min.Y != c.Min.Y || a.Max.X >= c.Min.X {
		t.Errorf("markers not side by side: %v %v", a, c)
	}
	if gap := c.Min.X - a.Max.X; gap != IconSpacing {
		t.Errorf("gap = %d", gap)
	}
	mid := center(w.Layout()[1])
	if abs((a.Max.X+c.Min.X)/2-mid.X) > 1 {
		t.Errorf("pair not centered on display: %v %v around %v", a, c, mid)
	}
}

func TestMarkerCentered(t *testing.T) {
	w := newWidget(3, 2, 0)
	if got, want := center(w.Marker(Audience)), center(w.Layout()[2]); absPt(got.Sub(want)) > 1 {
		t.Errorf("audience marker center = %v, want %v", got, want)
	}
	if got := w.Marker(Audience).Size(); got != image.Pt(IconSize, IconSize) {
		t.Errorf("marker size = %v", got)
	}
}

func TestDragCommitsChange(t *testing.T) {
	w := newWidget(3, 1, 0)
	rects := w.Layout()

	if !w.Press(center(w.Marker(Console))) {
		t.Fatal("press on console marker ignored")
	}
	if target, preview, ok := w.Dragging(); !ok || target != Console || preview != 0 {
		t.Fatalf("Dragging = %v %d %v", target, preview, ok)
	}
	if !w.Move(center(rects[2])) {
		t.Error("move to another display did not request repaint")
	}
	if _, preview, _ := w.Dragging(); preview != 2 {
		t.Errorf("preview = %d", preview)
	}
	if got := center(w.Marker(Console)); absPt(got.Sub(center(rects[2]))) > 1 {
		t.Errorf("marker not shown at preview: %v", got)
	}
	if w.Assigned(Console) != 0 {
		t.Error("move committed the change")
	}

	change, ok := w.Release(center(rects[2]))
	if !ok || change != (Change{Target: Console, Index: 2}) {
		t.Errorf("Release = %+v %v", change, ok)
	}
	if _, _, dragging := w.Dragging(); dragging {
		t.Error("still dragging after release")
	}
	if w.Assigned(Console) != 2 {
		t.Errorf("Assigned(Console) = %d", w.Assigned(Console))
	}
}

func TestReleaseWithoutChange(t *testing.T) {
	w := newWidget(3, 1, 0)
	rects := w.Layout()

	w.Press(center(w.Marker(Audience)))
	if _, ok := w.Release(center(rects[1])); ok {
		t.Error("release on the same display reported a change")
	}

	w.Press(center(w.Marker(Audience)))
	w.Move(center(rects[0]))
	if _, ok := w.Release(image.Pt(1, 1)); ok {
		t.Error("release outside all displays reported a change")
	}
	if w.Assigned(Audience) != 1 {
		t.Errorf("cancelled drag changed assignment to %d", w.Assigned(Audience))
	}

	if _, ok := w.Release(center(rects[2])); ok {
		t.Error("release while idle reported a change")
	}
}

func TestPressOnDisplay(t *testing.T) {
	tests := []struct {
		name     string
		audience int
		console  int
		display  int
		want     bool
		target   Target
	}{
		{"hosts audience", 1, 0, 1, true, Audience},
		{"hosts console", 1, 0, 0, true, Console},
		{"hosts both", 1, 1, 1, false, 0},
		{"hosts none", 1, 0, 2, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWidget(3, tt.audience, tt.console)
			r := w.Layout()[tt.display]
			corner := r.Min.Add(image.Pt(3, 3))
			if got := w.Press(corner); got != tt.want {
				t.Fatalf("Press = %v, want %v", got, tt.want)
			}
			if target, _, ok := w.Dragging(); ok && target != tt.target {
				t.Errorf("dragging %v, want %v", target, tt.target)
			}
		})
	}
}

func TestPressOnMarkerWhenShared(t *testing.T) {
	w := newWidget(3, 1, 1)
	if !w.Press(center(w.Marker(Console))) {
		t.Fatal("press on console icon ignored")
	}
	if target, _, _ := w.Dragging(); target != Console {
		t.Errorf("dragging %v", target)
	}
	if w.Press(center(w.Marker(Audience))) {
		t.Error("second press started another drag")
	}
}

func TestSetTopologyCancelsDrag(t *testing.T) {
	w := newWidget(3, 1, 0)
	w.Press(center(w.Marker(Audience)))
	w.SetTopology(row(2), display.Assignment{Audience: 1, Console: 0})
	if _, _, ok := w.Dragging(); ok {
		t.Error("drag survived SetTopology")
	}
}

func TestPaint(t *testing.T) {
	w := newWidget(3, 1, 0)
	img, err := w.Paint()
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Size() != w.Size() {
		t.Fatalf("Paint size = %v, want %v", img.Bounds().Size(), w.Size())
	}

	m := w.Marker(Audience)
	c := center(m)
	r, g, _, _ := img.At(c.X, m.Min.Y+4).RGBA()
	if r>>8 < 180 || g>>8 > 120 {
		t.Errorf("audience marker pixel = %v", img.At(c.X, m.Min.Y+4))
	}

	empty := w.Layout()[2]
	r, g, b, _ := img.At(empty.Max.X-6, empty.Max.Y-6).RGBA()
	if abs(int(r>>8)-0x2c) > 2 || abs(int(g>>8)-0x3e) > 2 || abs(int(b>>8)-0x50) > 2 {
		t.Errorf("display fill pixel = %v", img.At(empty.Max.X-6, empty.Max.Y-6))
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func absPt(p image.Point) int {
	return max(abs(p.X), abs(p.Y))
}
