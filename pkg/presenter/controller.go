package presenter

import (
	"context"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/podium/pkg/aspect"
	"github.com/matzehuels/podium/pkg/display"
	"github.com/matzehuels/podium/pkg/display/selector"
	"github.com/matzehuels/podium/pkg/document"
	perrors "github.com/matzehuels/podium/pkg/errors"
	"github.com/matzehuels/podium/pkg/render/compositor"
	"github.com/matzehuels/podium/pkg/render/overlay"
	"github.com/matzehuels/podium/pkg/settings"
)

// Options configures a Controller.
type Options struct {
	// Settings seeds styles and flags. The zero value means
	// settings.Default().
	Settings settings.Settings

	// Topology places the surfaces. Nil disables display management.
	Topology *display.Topology

	// Audience and Console are the surface windows. Either may be nil.
	Audience display.Window
	Console  display.Window

	// Now reads the wall clock. Defaults to time.Now.
	Now func() time.Time

	// Debounce is the resize quiet period. Defaults to DefaultDebounce.
	Debounce time.Duration

	Logger *log.Logger
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if o.Settings == (settings.Settings{}) {
		o.Settings = settings.Default()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Controller holds the presentation state and routes events to the
// rendering and display components.
type Controller struct {
	doc      document.Document
	comp     *compositor.Compositor
	overlay  *overlay.Engine
	lock     *aspect.Controller
	topo     *display.Topology
	audience display.Window
	console  display.Window
	watch    *Stopwatch
	resize   *Debouncer
	now      func() time.Time
	logger   *log.Logger

	page         int
	split        bool
	audienceFull bool
	consoleFull  bool
	fitted       image.Rectangle
	result       compositor.Result
}

// New returns a controller showing the first page of doc.
func New(doc document.Document, opts Options) *Controller {
	opts.SetDefaults()
	s := opts.Settings
	c := &Controller{
		doc:          doc,
		comp:         compositor.New(doc, opts.Logger),
		topo:         opts.Topology,
		audience:     opts.Audience,
		console:      opts.Console,
		watch:        NewStopwatch(opts.Now),
		resize:       NewDebouncer(opts.Debounce),
		now:          opts.Now,
		logger:       opts.Logger,
		split:        s.View.Split,
		audienceFull: s.Window.AudienceFullScreen,
		consoleFull:  s.Window.ConsoleFullScreen,
	}
	c.overlay = overlay.NewEngine(overlay.Options{
		Pointer:   s.PointerStyle(),
		Magnifier: s.MagnifierStyle(),
		Pen:       s.Pen(),
	})
	c.overlay.SetPage(0)
	c.lock = aspect.NewController(windowResizer{opts.Audience}, opts.Logger)
	c.lock.SetLocked(s.Window.AspectLock)
	return c
}

// windowResizer keeps a window's origin and changes its size.
type windowResizer struct {
	w display.Window
}

func (r windowResizer) Resize(size image.Point) {
	if r.w == nil {
		return
	}
	g := r.w.Geometry()
	r.w.SetGeometry(image.Rectangle{Min: g.Min, Max: g.Min.Add(size)})
}

// SetDocument replaces the document and returns to the first page.
func (c *Controller) SetDocument(doc document.Document) {
	c.doc = doc
	c.comp.SetDocument(doc)
	c.result = compositor.Result{}
	c.page = 0
	c.overlay.SetPage(0)
	c.overlay.Clear()
}

// Document returns the current document.
func (c *Controller) Document() document.Document { return c.doc }

func (c *Controller) ready() bool {
	return c.doc != nil && c.doc.Status() == document.StatusReady
}

// =============================================================================
// Navigation
// =============================================================================

// Page returns the current page index.
func (c *Controller) Page() int { return c.page }

// GoTo shows page and reports whether the page changed. Out of range pages
// and documents that are not ready are ignored.
func (c *Controller) GoTo(page int) bool {
	if !c.ready() || page < 0 || page >= c.doc.PageCount() || page == c.page {
		return false
	}
	c.page = page
	c.overlay.SetPage(page)
	return true
}

// Next advances one page. It also starts the timer if it is not running,
// even on the last page.
func (c *Controller) Next() bool {
	c.watch.Start()
	return c.GoTo(c.page + 1)
}

func (c *Controller) Prev() bool { return c.GoTo(c.page - 1) }

func (c *Controller) First() bool { return c.GoTo(0) }

func (c *Controller) Last() bool {
	if !c.ready() {
		return false
	}
	return c.GoTo(c.doc.PageCount() - 1)
}

// Chapters returns the document outline.
func (c *Controller) Chapters() []document.Chapter {
	if c.doc == nil {
		return nil
	}
	return c.doc.Chapters()
}

// ActiveChapter returns the index of the chapter containing the current
// page, or -1.
func (c *Controller) ActiveChapter() int {
	return document.ActiveChapter(c.Chapters(), c.page)
}

// ActivateChapter jumps to the first page of chapter i.
func (c *Controller) ActivateChapter(i int) bool {
	chapters := c.Chapters()
	if i < 0 || i >= len(chapters) {
		return false
	}
	return c.GoTo(chapters[i].Page)
}

// =============================================================================
// View state
// =============================================================================

// Split reports whether split mode is on.
func (c *Controller) Split() bool { return c.split }

// SetSplit turns split mode on or off and reports whether it changed.
func (c *Controller) SetSplit(on bool) bool {
	if on == c.split {
		return false
	}
	c.split = on
	return true
}

// ToggleTimer starts, pauses or resumes the presentation timer.
func (c *Controller) ToggleTimer() { c.watch.Toggle() }

// Stopwatch exposes the presentation timer.
func (c *Controller) Stopwatch() *Stopwatch { return c.watch }

// Overlay exposes the overlay engine for style changes.
func (c *Controller) Overlay() *overlay.Engine { return c.overlay }

// SetOverlayMode applies a mode change and reports whether the mode
// changed.
func (c *Controller) SetOverlayMode(ch overlay.Change) bool {
	changed := c.overlay.Apply(ch)
	if changed {
		c.logger.Debug("overlay mode", "mode", c.overlay.Mode())
	}
	return changed
}

// ClearInk removes every annotation on the current page.
func (c *Controller) ClearInk() bool { return c.overlay.Clear() }

// UndoStroke removes the most recent annotation stroke.
func (c *Controller) UndoStroke() bool { return c.overlay.Undo() }

// AspectLock exposes the audience aspect lock.
func (c *Controller) AspectLock() *aspect.Controller { return c.lock }

// =============================================================================
// Rendering
// =============================================================================

// Resize sets the target of a compositor surface. It returns a debounce
// token when the target changed; once DefaultDebounce has passed without a
// newer token, ResizeDue accepts it and the caller re-renders.
func (c *Controller) Resize(surface string, t compositor.Target) (uint64, bool) {
	var s *compositor.Surface
	switch surface {
	case compositor.SurfaceAudience:
		s = &c.comp.Audience
		c.overlay.SetScale(t.Scale)
	case compositor.SurfaceConsole:
		s = &c.comp.Console
	case compositor.SurfaceNext:
		s = &c.comp.Next
	default:
		return 0, false
	}
	if !s.Resize(t) {
		return 0, false
	}
	return c.resize.Trigger(), true
}

// ResizeDue reports whether token is the latest resize.
func (c *Controller) ResizeDue(token uint64) bool { return c.resize.Due(token) }

// DebounceDelay returns the resize quiet period.
func (c *Controller) DebounceDelay() time.Duration { return c.resize.Delay() }

// Render brings every surface up to date. While the document is loading
// it returns the previous view unchanged.
func (c *Controller) Render(ctx context.Context) (View, error) {
	if !c.ready() {
		return c.View(), nil
	}
	res, err := c.comp.Render(ctx, compositor.Request{Page: c.page, Split: c.split})
	if err != nil {
		c.logger.Debug("render failed", "page", c.page+1, "err", err)
		return c.View(), err
	}
	c.result = res
	return c.View(), nil
}

// AudienceFrame paints the audience surface at size: the current slide
// letterboxed on black with the overlays on top. With drawCursor set the
// laser dot is drawn into the frame.
func (c *Controller) AudienceFrame(size image.Point, drawCursor bool) *image.RGBA {
	frame := image.NewRGBA(image.Rectangle{Max: size})
	if c.result.Audience == nil || c.result.Audience.Image == nil {
		c.fitted = compositor.Letterbox(frame, nil)
		return frame
	}
	slide := c.result.Audience.Image
	c.fitted = compositor.Letterbox(frame, slide)
	c.overlay.Paint(frame, slide, c.fitted, drawCursor)
	return frame
}

// Fitted returns where the slide sat in the last audience frame.
func (c *Controller) Fitted() image.Rectangle { return c.fitted }

// PointerMove, PointerPress, PointerRelease and PointerLeave forward
// audience pointer events to the overlay engine and report whether the
// audience frame needs repainting.
func (c *Controller) PointerMove(p image.Point) bool    { return c.overlay.Move(p) }
func (c *Controller) PointerPress(p image.Point) bool   { return c.overlay.Press(p) }
func (c *Controller) PointerRelease(p image.Point) bool { return c.overlay.Release(p) }
func (c *Controller) PointerLeave() bool                { return c.overlay.Leave() }

// AudienceResized runs the aspect lock for a windowed audience surface
// now sized size on a display whose available area is area.
func (c *Controller) AudienceResized(size image.Point, area image.Rectangle) bool {
	ev := aspect.Event{Size: size, FullScreen: c.audienceFull, Split: c.split, Area: area}
	if c.ready() {
		if page, err := c.doc.PageSize(c.page); err == nil {
			ev.Page = page
		}
	}
	return c.lock.OnResize(ev)
}

// =============================================================================
// Windows and displays
// =============================================================================

// SetAudienceFullScreen switches the audience window. Leaving fullscreen
// shows the window normally and brings it to the front.
func (c *Controller) SetAudienceFullScreen(on bool) {
	c.audienceFull = on
	setFullScreen(c.audience, on)
}

// SetConsoleFullScreen switches the console window.
func (c *Controller) SetConsoleFullScreen(on bool) {
	c.consoleFull = on
	setFullScreen(c.console, on)
}

// AudienceFullScreen reports whether the audience window is fullscreen.
func (c *Controller) AudienceFullScreen() bool { return c.audienceFull }

// ConsoleFullScreen reports whether the console window is fullscreen.
func (c *Controller) ConsoleFullScreen() bool { return c.consoleFull }

func setFullScreen(w display.Window, on bool) {
	if w == nil {
		return
	}
	if on {
		w.ShowFullScreen()
		return
	}
	w.ShowNormal()
	w.Raise()
}

// Topology returns the display topology, or nil.
func (c *Controller) Topology() *display.Topology { return c.topo }

// SwapDisplays exchanges the surfaces when exactly two displays exist.
func (c *Controller) SwapDisplays(ctx context.Context) bool {
	if c.topo == nil {
		return false
	}
	return c.topo.SwapWhenTwoDisplays(ctx)
}

// ApplySelection applies a change made in the display map and returns the
// assignment that resulted, which may differ when the console had to move
// out of the audience's way.
func (c *Controller) ApplySelection(ctx context.Context, ch selector.Change) (display.Assignment, error) {
	if c.topo == nil {
		return display.Assignment{Audience: -1, Console: -1}, perrors.New(perrors.ErrCodeUnsupported, "display management disabled")
	}
	var err error
	switch ch.Target {
	case selector.Audience:
		err = c.topo.AssignAudience(ctx, ch.Index)
	case selector.Console:
		err = c.topo.AssignConsole(ctx, ch.Index)
	}
	return c.topo.Assignment(), err
}

// =============================================================================
// Keys
// =============================================================================

// Handle runs a bound action. It reports whether the view changed and
// whether the presenter should quit.
func (c *Controller) Handle(ctx context.Context, a Action) (changed, quit bool) {
	switch a {
	case ActionNext:
		return c.Next(), false
	case ActionPrev:
		return c.Prev(), false
	case ActionFirst:
		return c.First(), false
	case ActionLast:
		return c.Last(), false
	case ActionLaser:
		return c.SetOverlayMode(overlay.ChangeLaser), false
	case ActionNormal:
		return c.SetOverlayMode(overlay.ChangeNormal), false
	case ActionToggleMagnifier:
		return c.SetOverlayMode(overlay.ChangeToggleMagnifier), false
	case ActionToggleAnnotation:
		return c.SetOverlayMode(overlay.ChangeToggleAnnotation), false
	case ActionClearInk:
		return c.ClearInk(), false
	case ActionUndoStroke:
		return c.UndoStroke(), false
	case ActionToggleTimer:
		c.ToggleTimer()
		return true, false
	case ActionToggleSplit:
		return c.SetSplit(!c.split), false
	case ActionSwapDisplays:
		return c.SwapDisplays(ctx), false
	case ActionToggleFullScreen:
		c.SetAudienceFullScreen(!c.audienceFull)
		return true, false
	case ActionToggleConsoleFullScreen:
		c.SetConsoleFullScreen(!c.consoleFull)
		return true, false
	case ActionToggleAspectLock:
		c.lock.SetLocked(!c.lock.Locked())
		return true, false
	case ActionQuit:
		return false, true
	}
	return false, false
}

// =============================================================================
// Snapshots
// =============================================================================

// View is what the console shows after a render.
type View struct {
	Title     string
	Status    document.Status
	Page      int
	PageCount int
	Split     bool

	Chapters []document.Chapter
	Chapter  int

	Audience *compositor.Slide
	Console  *compositor.Slide

	// Notes is the notes half in split mode. NotesText is shown instead
	// when Notes is nil.
	Notes     *compositor.Slide
	NotesText string

	Next    *compositor.Slide
	NextEnd bool

	Mode         overlay.Mode
	Clock        string
	Timer        string
	TimerRunning bool

	Visibility display.Visibility
	Assignment display.Assignment
}

// View returns the current state without rendering.
func (c *Controller) View() View {
	v := View{
		Page:         c.page,
		Split:        c.split,
		Chapters:     c.Chapters(),
		Chapter:      c.ActiveChapter(),
		Audience:     c.result.Audience,
		Console:      c.result.Console,
		Notes:        c.result.Notes,
		Next:         c.result.Next,
		NextEnd:      c.result.NextEnd,
		Mode:         c.overlay.Mode(),
		Clock:        FormatClock(c.now()),
		Timer:        FormatElapsed(c.watch.Elapsed()),
		TimerRunning: c.watch.Running(),
		Assignment:   display.Assignment{Audience: -1, Console: -1},
	}
	if c.doc != nil {
		v.Title = c.doc.Title()
		v.Status = c.doc.Status()
		if v.Status == document.StatusReady {
			v.PageCount = c.doc.PageCount()
		}
	}
	if v.Notes == nil {
		v.NotesText = c.notesText()
	}
	if c.topo != nil {
		v.Visibility = c.topo.Visibility()
		v.Assignment = c.topo.Assignment()
	}
	return v
}

func (c *Controller) notesText() string {
	if n, ok := c.doc.(interface{ Notes(int) string }); ok {
		if text := n.Notes(c.page); text != "" {
			return text
		}
	}
	return fmt.Sprintf("Notes for Slide %d", c.page+1)
}

// Settings returns s updated with the controller's current styles and
// flags, for saving at shutdown.
func (c *Controller) Settings(s settings.Settings) settings.Settings {
	s.SetOverlay(c.overlay.PointerStyle(), c.overlay.MagnifierStyle(), c.overlay.Pen())
	s.View.Split = c.split
	s.Window.AudienceFullScreen = c.audienceFull
	s.Window.ConsoleFullScreen = c.consoleFull
	s.Window.AspectLock = c.lock.Locked()
	if c.topo != nil {
		s.SetPreferences(c.topo.Preferences())
	}
	return s
}
