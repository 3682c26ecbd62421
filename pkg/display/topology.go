package display

import (
	"context"
	"image"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	perrors "github.com/matzehuels/podium/pkg/errors"
	"github.com/matzehuels/podium/pkg/observability"
)

// DefaultConsoleSize is the console window size used when it is moved to
// another display.
var DefaultConsoleSize = image.Pt(1200, 800)

// Options configures a Topology.
type Options struct {
	// ConsoleSize is the size the console is re-centered at after a move.
	ConsoleSize image.Point
	Logger      *log.Logger
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if o.ConsoleSize.X <= 0 || o.ConsoleSize.Y <= 0 {
		o.ConsoleSize = DefaultConsoleSize
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Preferences are remembered display identities for the two surfaces.
// Empty fields mean no preference.
type Preferences struct {
	Audience Identity
	Console  Identity
}

// Topology owns the display list and the placement of the audience and
// console windows.
type Topology struct {
	enum     Enumerator
	audience Window
	console  Window
	opts     Options

	mu         sync.Mutex
	displays   []Descriptor
	audienceID Identity
	consoleID  Identity
}

// NewTopology returns a topology with no displays. Call Refresh to
// enumerate.
func NewTopology(enum Enumerator, audience, console Window, opts Options) *Topology {
	opts.SetDefaults()
	return &Topology{enum: enum, audience: audience, console: console, opts: opts}
}

// =============================================================================
// Queries
// =============================================================================

// Displays returns the displays from the latest enumeration.
func (t *Topology) Displays() []Descriptor {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Descriptor(nil), t.displays...)
}

// Assignment resolves both surfaces against the latest enumeration.
func (t *Topology) Assignment() Assignment {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.assignmentLocked()
}

func (t *Topology) assignmentLocked() Assignment {
	return Assignment{Audience: indexOf(t.displays, t.audienceID), Console: indexOf(t.displays, t.consoleID)}
}

// Preferences returns the current identities, suitable for saving.
func (t *Topology) Preferences() Preferences {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Preferences{Audience: t.audienceID, Console: t.consoleID}
}

// Visibility returns the control to show for the current display count.
func (t *Topology) Visibility() Visibility {
	t.mu.Lock()
	defer t.mu.Unlock()
	return VisibilityFor(len(t.displays))
}

// =============================================================================
// Enumeration
// =============================================================================

// Refresh re-enumerates displays and re-resolves both surfaces. A surface
// whose display vanished is re-resolved from its window position. If the
// change left both surfaces on one display while others exist, the
// console is moved away.
func (t *Topology) Refresh(ctx context.Context) error {
	ds, err := t.enum.Displays(ctx)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.displays = ds
	t.audienceID = t.resolveLocked(t.audienceID, t.audience)
	t.consoleID = t.resolveLocked(t.consoleID, t.console)
	observability.Display().OnDisplaysChanged(ctx, len(ds))

	a := t.assignmentLocked()
	t.opts.Logger.Debug("displays refreshed", "count", len(ds), "audience", a.Audience, "console", a.Console)
	if len(ds) >= 2 && a.Audience >= 0 && a.Audience == a.Console {
		t.assignAudienceLocked(ctx, a.Audience)
	}
	return nil
}

func (t *Topology) resolveLocked(id Identity, w Window) Identity {
	if indexOf(t.displays, id) >= 0 {
		return id
	}
	g := w.Geometry()
	if g.Empty() {
		return ""
	}
	center := g.Min.Add(g.Size().Div(2))
	if i := indexAt(t.displays, center); i >= 0 {
		return t.displays[i].Identity()
	}
	return ""
}

// Run refreshes on every hotplug event until ctx is done, calling changed
// after each refresh.
func (t *Topology) Run(ctx context.Context, changed func()) error {
	events, err := t.enum.Watch(ctx)
	if err != nil {
		return err
	}
	for ev := range events {
		t.opts.Logger.Info("display "+ev.Kind.String(), "display", ev.Display.Name, "geometry", FormatGeometry(ev.Display.Geometry))
		if err := t.Refresh(ctx); err != nil {
			t.opts.Logger.Warn("refresh displays", "err", err)
			continue
		}
		if changed != nil {
			changed()
		}
	}
	return ctx.Err()
}

// =============================================================================
// Assignment
// =============================================================================

// Place performs the initial placement. Remembered identities are used
// when they still exist; otherwise the audience goes to the second display
// and the console to the first.
func (t *Topology) Place(ctx context.Context, prefs Preferences) (Assignment, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(t.displays)
	if n == 0 {
		return Assignment{Audience: -1, Console: -1}, ErrNoDisplays
	}
	a := indexOf(t.displays, prefs.Audience)
	c := indexOf(t.displays, prefs.Console)
	if n == 1 {
		a, c = 0, 0
	} else {
		if a < 0 {
			a = 1
			if c == 1 {
				a = 0
			}
		}
		if c < 0 || c == a {
			c = firstOther(n, a)
		}
	}
	t.placeConsoleLocked(c, true)
	t.placeAudienceLocked(a)

	got := t.assignmentLocked()
	observability.Display().OnAssignment(ctx, got.Audience, got.Console)
	return got, nil
}

// AssignAudience moves the audience output to display i, fullscreen. With
// two or more displays, a console on i is moved first: to the audience's
// previous display if that is valid and differs from i, otherwise to the
// first display other than i.
func (t *Topology) AssignAudience(ctx context.Context, i int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.checkIndexLocked(i); err != nil {
		return err
	}
	t.assignAudienceLocked(ctx, i)
	return nil
}

func (t *Topology) assignAudienceLocked(ctx context.Context, i int) {
	n := len(t.displays)
	cur := t.assignmentLocked()
	if n >= 2 && i == cur.Console {
		candidate := cur.Audience
		if candidate < 0 || candidate == i {
			candidate = firstOther(n, i)
		}
		t.opts.Logger.Debug("moving console out of the way", "from", i, "to", candidate)
		t.placeConsoleLocked(candidate, false)
	}
	t.placeAudienceLocked(i)

	got := t.assignmentLocked()
	t.opts.Logger.Debug("audience assigned", "audience", got.Audience, "console", got.Console)
	observability.Display().OnAssignment(ctx, got.Audience, got.Console)
}

// AssignConsole moves the console window to display i, centered at its
// default size, and restores fullscreen if it was fullscreen. It does not
// check for a collision with the audience.
func (t *Topology) AssignConsole(ctx context.Context, i int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.checkIndexLocked(i); err != nil {
		return err
	}
	t.placeConsoleLocked(i, true)

	got := t.assignmentLocked()
	t.opts.Logger.Debug("console assigned", "audience", got.Audience, "console", got.Console)
	observability.Display().OnAssignment(ctx, got.Audience, got.Console)
	return nil
}

// SwapWhenTwoDisplays moves the audience to the other display when exactly
// two are connected. It reports whether a swap happened.
func (t *Topology) SwapWhenTwoDisplays(ctx context.Context) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.displays) != 2 {
		return false
	}
	cur := indexOf(t.displays, t.audienceID)
	if cur < 0 {
		cur = 0
	}
	t.assignAudienceLocked(ctx, 1-cur)
	return true
}

func (t *Topology) checkIndexLocked(i int) error {
	if len(t.displays) == 0 {
		return ErrNoDisplays
	}
	if i < 0 || i >= len(t.displays) {
		return perrors.New(perrors.ErrCodeInvalidDisplay, "display %d out of range [0, %d)", i, len(t.displays))
	}
	return nil
}

func (t *Topology) placeAudienceLocked(i int) {
	d := t.displays[i]
	t.audience.SetDisplay(d)
	t.audience.SetGeometry(d.Geometry)
	t.audience.ShowFullScreen()
	t.audienceID = d.Identity()
}

// placeConsoleLocked centers the console on display i. With keepFullScreen
// a fullscreen console is made fullscreen again on the new display.
func (t *Topology) placeConsoleLocked(i int, keepFullScreen bool) {
	d := t.displays[i]
	wasFull := t.console.FullScreen()
	t.console.ShowNormal()
	t.console.SetDisplay(d)
	t.console.SetGeometry(centered(d.Available, t.opts.ConsoleSize))
	if keepFullScreen && wasFull {
		t.console.ShowFullScreen()
	}
	t.console.Raise()
	t.consoleID = d.Identity()
}

func firstOther(n, i int) int {
	for j := 0; j < n; j++ {
		if j != i {
			return j
		}
	}
	return -1
}

// centered returns a rectangle of the given size, shrunk to fit, centered
// in area.
func centered(area image.Rectangle, size image.Point) image.Rectangle {
	if size.X > area.Dx() {
		size.X = area.Dx()
	}
	if size.Y > area.Dy() {
		size.Y = area.Dy()
	}
	min := area.Min.Add(area.Size().Sub(size).Div(2))
	return image.Rectangle{Min: min, Max: min.Add(size)}
}
