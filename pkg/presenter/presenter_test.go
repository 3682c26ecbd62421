package presenter

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/draw"

	"github.com/matzehuels/podium/pkg/display"
	"github.com/matzehuels/podium/pkg/display/selector"
	"github.com/matzehuels/podium/pkg/document"
	perrors "github.com/matzehuels/podium/pkg/errors"
	"github.com/matzehuels/podium/pkg/geometry"
	"github.com/matzehuels/podium/pkg/render/compositor"
	"github.com/matzehuels/podium/pkg/render/overlay"
	"github.com/matzehuels/podium/pkg/settings"
)

var slideGreen = color.RGBA{G: 200, A: 255}

type fakeDoc struct {
	pages    int
	size     geometry.Size
	chapters []document.Chapter
	renders  int
}

func newFakeDoc(pages int) *fakeDoc {
	return &fakeDoc{pages: pages, size: geometry.Size{W: 1600, H: 900}}
}

func (d *fakeDoc) Status() document.Status      { return document.StatusReady }
func (d *fakeDoc) PageCount() int               { return d.pages }
func (d *fakeDoc) Title() string                { return "fake" }
func (d *fakeDoc) Chapters() []document.Chapter { return d.chapters }
func (d *fakeDoc) Close() error                 { return nil }

func (d *fakeDoc) PageSize(int) (geometry.Size, error) { return d.size, nil }

func (d *fakeDoc) Render(_ context.Context, page int, px image.Point) (*image.RGBA, error) {
	if px.X <= 0 || px.Y <= 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidSize, "bad size %v", px)
	}
	d.renders++
	img := image.NewRGBA(image.Rectangle{Max: px})
	draw.Draw(img, img.Bounds(), image.NewUniform(slideGreen), image.Point{}, draw.Src)
	return img, nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *clock {
	return &clock{t: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)}
}

func TestNavigation(t *testing.T) {
	clk := newClock()
	c := New(newFakeDoc(3), Options{Now: clk.now})

	if c.Prev() || c.First() {
		t.Error("moved before the first page")
	}
	if c.Stopwatch().Running() {
		t.Fatal("timer running before any navigation")
	}
	if !c.Next() || c.Page() != 1 {
		t.Fatalf("Next: page = %d", c.Page())
	}
	if !c.Stopwatch().Running() {
		t.Error("Next did not start the timer")
	}
	if !c.Last() || c.Page() != 2 || c.Next() {
		t.Errorf("Last/Next at end: page = %d", c.Page())
	}
	if !c.First() || c.Page() != 0 {
		t.Errorf("First: page = %d", c.Page())
	}
	if c.GoTo(3) || c.GoTo(-1) || c.GoTo(0) {
		t.Error("GoTo accepted an invalid or unchanged page")
	}
}

func TestNextStartsPausedTimerOnLastPage(t *testing.T) {
	clk := newClock()
	c := New(newFakeDoc(1), Options{Now: clk.now})
	c.ToggleTimer()
	c.ToggleTimer()
	if c.Stopwatch().Running() {
		t.Fatal("timer still running after pause")
	}
	if c.Next() {
		t.Error("Next moved past the only page")
	}
	if !c.Stopwatch().Running() {
		t.Error("Next did not resume the timer")
	}
}

func TestPageChangeClearsInk(t *testing.T) {
	c := New(newFakeDoc(3), Options{})
	c.SetOverlayMode(overlay.ChangeToggleAnnotation)
	c.PointerPress(image.Pt(10, 10))
	c.PointerMove(image.Pt(20, 20))
	c.PointerRelease(image.Pt(30, 30))
	if len(c.Overlay().Strokes()) != 1 {
		t.Fatalf("strokes = %d", len(c.Overlay().Strokes()))
	}
	c.Next()
	if n := len(c.Overlay().Strokes()); n != 0 {
		t.Errorf("strokes after page change = %d", n)
	}
}

func TestRender(t *testing.T) {
	ctx := context.Background()
	c := New(newFakeDoc(2), Options{})
	c.Resize(compositor.SurfaceAudience, compositor.Target{Size: image.Pt(800, 600), Scale: 1})
	c.Resize(compositor.SurfaceConsole, compositor.Target{Size: image.Pt(400, 300), Scale: 2})
	c.Resize(compositor.SurfaceNext, compositor.Target{Size: image.Pt(200, 150), Scale: 1})

	v, err := c.Render(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if v.Audience == nil || v.Audience.Image.Bounds().Size() != image.Pt(800, 450) {
		t.Fatalf("audience = %+v", v.Audience)
	}
	if v.Console.Image.Bounds().Size() != image.Pt(800, 450) {
		t.Errorf("console raster = %v", v.Console.Image.Bounds().Size())
	}
	if v.Next == nil || v.NextEnd {
		t.Error("missing next preview")
	}
	if v.Notes != nil || v.NotesText != "Notes for Slide 1" {
		t.Errorf("notes = %v %q", v.Notes, v.NotesText)
	}
	if v.PageCount != 2 || v.Title != "fake" || v.Status != document.StatusReady {
		t.Errorf("view = %+v", v)
	}

	c.Next()
	c.SetSplit(true)
	v, err = c.Render(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !v.NextEnd || v.Next != nil {
		t.Error("last page still has a next preview")
	}
	if v.Notes == nil || v.NotesText != "" {
		t.Errorf("split notes = %v %q", v.Notes, v.NotesText)
	}
	if !v.Audience.Split || v.Audience.Image.Bounds().Dy() != 600 {
		t.Errorf("split audience = %+v", v.Audience)
	}
}

func TestRenderNotReady(t *testing.T) {
	release := make(chan struct{})
	p := document.Load(context.Background(), "slow.pdf", func(context.Context) (document.Document, error) {
		<-release
		return newFakeDoc(4), nil
	})
	c := New(p, Options{})
	v, err := c.Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if v.Audience != nil || v.Status != document.StatusLoading || v.Title != "slow.pdf" {
		t.Errorf("loading view = %+v", v)
	}
	if c.Next() {
		t.Error("navigated while loading")
	}

	close(release)
	if err := p.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}
	v, err = c.Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if v.Audience == nil || v.PageCount != 4 {
		t.Errorf("view after load = %+v", v)
	}
}

func TestAudienceFrame(t *testing.T) {
	c := New(newFakeDoc(2), Options{})
	c.Resize(compositor.SurfaceAudience, compositor.Target{Size: image.Pt(400, 400), Scale: 1})

	empty := c.AudienceFrame(image.Pt(400, 400), false)
	if empty.RGBAAt(200, 200) != (color.RGBA{A: 255}) {
		t.Errorf("frame before render = %v", empty.RGBAAt(200, 200))
	}

	if _, err := c.Render(context.Background()); err != nil {
		t.Fatal(err)
	}
	frame := c.AudienceFrame(image.Pt(400, 400), false)
	fitted := c.Fitted()
	if fitted.Dx() != 400 || fitted.Dy() != 225 {
		t.Fatalf("fitted = %v", fitted)
	}
	if got := frame.RGBAAt(200, 10); got != (color.RGBA{A: 255}) {
		t.Errorf("letterbox bar = %v", got)
	}
	if got := frame.RGBAAt(200, 200); got != slideGreen {
		t.Errorf("slide pixel = %v", got)
	}

	c.SetOverlayMode(overlay.ChangeLaser)
	c.PointerMove(image.Pt(200, 200))
	frame = c.AudienceFrame(image.Pt(400, 400), true)
	if got := frame.RGBAAt(200, 200); got.R == 0 {
		t.Errorf("laser not drawn: %v", got)
	}
}

func TestAudienceScaleReachesOverlay(t *testing.T) {
	s := settings.Default()
	s.Overlay.LaserSize = 40
	c := New(newFakeDoc(2), Options{Settings: s})

	c.Resize(compositor.SurfaceAudience, compositor.Target{Size: image.Pt(400, 400), Scale: 2})
	if got := c.Overlay().Scale(); got != 2 {
		t.Fatalf("overlay scale = %v, want 2", got)
	}
	c.SetOverlayMode(overlay.ChangeLaser)
	if got := c.Overlay().Cursor().Image.Bounds().Dx(); got != 80 {
		t.Errorf("laser width on a scale 2 surface = %d, want 80", got)
	}

	// Console resizes leave the audience scale alone.
	c.Resize(compositor.SurfaceConsole, compositor.Target{Size: image.Pt(300, 200), Scale: 1})
	if got := c.Overlay().Scale(); got != 2 {
		t.Errorf("overlay scale after console resize = %v", got)
	}
}

func TestUndoStroke(t *testing.T) {
	ctx := context.Background()
	c := New(newFakeDoc(2), Options{})
	c.SetOverlayMode(overlay.ChangeToggleAnnotation)
	for _, y := range []int{10, 20} {
		c.PointerPress(image.Pt(0, y))
		c.PointerRelease(image.Pt(30, y))
	}

	if changed, _ := c.Handle(ctx, ActionFor("u")); !changed {
		t.Fatal("undo reported no change")
	}
	strokes := c.Overlay().Strokes()
	if len(strokes) != 1 || strokes[0].Points[0] != image.Pt(0, 10) {
		t.Errorf("strokes after undo = %v, want the first one", strokes)
	}
	c.Handle(ctx, ActionUndoStroke)
	if changed, _ := c.Handle(ctx, ActionUndoStroke); changed {
		t.Error("undo on an empty canvas reported a change")
	}
}

func TestHandle(t *testing.T) {
	ctx := context.Background()
	c := New(newFakeDoc(3), Options{})

	steps := []struct {
		action  Action
		changed bool
		mode    overlay.Mode
	}{
		{ActionLaser, true, overlay.ModeLaser},
		{ActionToggleMagnifier, true, overlay.ModeMagnifier},
		{ActionLaser, true, overlay.ModeLaser},
		{ActionNormal, true, overlay.ModeDefault},
		{ActionNormal, false, overlay.ModeDefault},
		{ActionToggleAnnotation, true, overlay.ModeAnnotation},
		{ActionToggleAnnotation, true, overlay.ModeDefault},
		{ActionNext, true, overlay.ModeDefault},
		{ActionToggleSplit, true, overlay.ModeDefault},
		{ActionSwapDisplays, false, overlay.ModeDefault},
	}
	for i, s := range steps {
		changed, quit := c.Handle(ctx, s.action)
		if changed != s.changed || quit {
			t.Errorf("step %d %v: changed=%v quit=%v", i, s.action, changed, quit)
		}
		if c.Overlay().Mode() != s.mode {
			t.Errorf("step %d %v: mode = %v, want %v", i, s.action, c.Overlay().Mode(), s.mode)
		}
	}
	if !c.Split() {
		t.Error("split not toggled")
	}
	if changed, _ := c.Handle(ctx, ActionToggleFullScreen); !changed || c.AudienceFullScreen() {
		t.Error("audience fullscreen not toggled off")
	}
	c.Handle(ctx, ActionToggleAspectLock)
	if !c.AspectLock().Locked() {
		t.Error("aspect lock not toggled")
	}
	if _, quit := c.Handle(ctx, ActionQuit); !quit {
		t.Error("quit not reported")
	}
}

func TestActionFor(t *testing.T) {
	tests := map[string]Action{
		"right":  ActionNext,
		" ":      ActionNext,
		"up":     ActionPrev,
		"home":   ActionFirst,
		"end":    ActionLast,
		"l":      ActionLaser,
		"z":      ActionToggleMagnifier,
		"ctrl+s": ActionToggleSplit,
		"s":      ActionSwapDisplays,
		"f":      ActionToggleFullScreen,
		"F":      ActionToggleConsoleFullScreen,
		"q":      ActionQuit,
		"x":      ActionNone,
	}
	for key, want := range tests {
		if got := ActionFor(key); got != want {
			t.Errorf("ActionFor(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestResizeDebounce(t *testing.T) {
	c := New(newFakeDoc(1), Options{})
	first, ok := c.Resize(compositor.SurfaceConsole, compositor.Target{Size: image.Pt(300, 200), Scale: 1})
	if !ok {
		t.Fatal("resize not recorded")
	}
	second, _ := c.Resize(compositor.SurfaceConsole, compositor.Target{Size: image.Pt(320, 200), Scale: 1})
	if _, ok := c.Resize(compositor.SurfaceConsole, compositor.Target{Size: image.Pt(320, 200), Scale: 1}); ok {
		t.Error("unchanged target produced a token")
	}
	if _, ok := c.Resize("sidebar", compositor.Target{}); ok {
		t.Error("unknown surface produced a token")
	}
	if c.ResizeDue(first) {
		t.Error("superseded resize is due")
	}
	if !c.ResizeDue(second) {
		t.Error("latest resize not due")
	}
	if c.ResizeDue(second) {
		t.Error("resize due twice")
	}
}

func TestChapters(t *testing.T) {
	doc := newFakeDoc(6)
	doc.chapters = []document.Chapter{{Title: "Intro", Page: 0}, {Title: "Middle", Page: 3}}
	c := New(doc, Options{})

	if !c.ActivateChapter(1) || c.Page() != 3 || c.ActiveChapter() != 1 {
		t.Errorf("ActivateChapter(1): page %d chapter %d", c.Page(), c.ActiveChapter())
	}
	c.Prev()
	if c.ActiveChapter() != 0 {
		t.Errorf("ActiveChapter on page 2 = %d", c.ActiveChapter())
	}
	if c.ActivateChapter(5) {
		t.Error("invalid chapter accepted")
	}
}

func TestAspectLock(t *testing.T) {
	win := display.NewVirtualWindow("audience", image.Rect(100, 100, 1100, 500))
	s := settings.Default()
	s.Window.AspectLock = true
	c := New(newFakeDoc(1), Options{Settings: s, Audience: win})
	c.SetAudienceFullScreen(false)

	if !c.AudienceResized(image.Pt(1000, 400), image.Rect(0, 0, 1920, 1080)) {
		t.Fatal("aspect lock did not apply")
	}
	if got := win.Geometry(); got != image.Rect(100, 100, 1100, 662) {
		t.Errorf("window geometry = %v", got)
	}

	c.SetAudienceFullScreen(true)
	if c.AudienceResized(image.Pt(1000, 400), image.Rect(0, 0, 1920, 1080)) {
		t.Error("aspect lock active in fullscreen")
	}
}

func TestDisplays(t *testing.T) {
	ctx := context.Background()
	enum := display.NewStaticEnumerator(
		display.Descriptor{Name: "a", Geometry: image.Rect(0, 0, 1920, 1080)},
		display.Descriptor{Name: "b", Geometry: image.Rect(1920, 0, 3840, 1080)},
		display.Descriptor{Name: "c", Geometry: image.Rect(3840, 0, 5760, 1080)},
	)
	audience := display.NewVirtualWindow("audience", image.Rectangle{})
	console := display.NewVirtualWindow("console", image.Rectangle{})
	topo := display.NewTopology(enum, audience, console, display.Options{})
	if err := topo.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := topo.Place(ctx, display.Preferences{}); err != nil {
		t.Fatal(err)
	}

	c := New(newFakeDoc(1), Options{Topology: topo, Audience: audience, Console: console})
	got, err := c.ApplySelection(ctx, selector.Change{Target: selector.Audience, Index: 0})
	if err != nil {
		t.Fatal(err)
	}
	if got != (display.Assignment{Audience: 0, Console: 1}) {
		t.Errorf("assignment = %+v", got)
	}
	if v := c.View(); v.Visibility != display.ShowMap || v.Assignment != got {
		t.Errorf("view visibility=%v assignment=%+v", v.Visibility, v.Assignment)
	}
	if c.SwapDisplays(ctx) {
		t.Error("swap with three displays")
	}

	plain := New(newFakeDoc(1), Options{})
	if _, err := plain.ApplySelection(ctx, selector.Change{}); !perrors.Is(err, perrors.ErrCodeUnsupported) {
		t.Errorf("ApplySelection without topology = %v", err)
	}
}

func TestSettingsSnapshot(t *testing.T) {
	c := New(newFakeDoc(1), Options{})
	c.SetSplit(true)
	c.AspectLock().SetLocked(true)
	c.SetConsoleFullScreen(true)
	c.Overlay().SetPointerStyle(overlay.PointerStyle{Size: 90, Opacity: 200, Color: color.RGBA{B: 255, A: 255}})

	got := c.Settings(settings.Default())
	want := settings.Default()
	want.View.Split = true
	want.Window.AspectLock = true
	want.Window.ConsoleFullScreen = true
	want.Overlay.LaserSize = 90
	want.Overlay.LaserOpacity = 200
	want.Overlay.LaserColor = "#0000ff"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Settings mismatch (-want +got):\n%s", diff)
	}
}

func TestDeckNotesText(t *testing.T) {
	deck, err := document.NewDeck([]byte("## One\n\nNotes: remember the demo\n\n---\n\n## Two\n"))
	if err != nil {
		t.Fatal(err)
	}
	c := New(deck, Options{})
	if got := c.View().NotesText; got != "remember the demo" {
		t.Errorf("NotesText = %q", got)
	}
	c.Next()
	if got := c.View().NotesText; got != "Notes for Slide 2" {
		t.Errorf("NotesText = %q", got)
	}
}
