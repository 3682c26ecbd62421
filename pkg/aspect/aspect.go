package aspect

import (
	"image"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/podium/pkg/geometry"
)

// Tolerance is the per-dimension difference in pixels below which no
// correction is applied.
const Tolerance = 2

// Desired returns the size closest to current that has the given aspect
// (width / height) and fits inside area. The width of current is kept
// unless the result overflows area, in which case the overflowing
// dimension is shrunk and the other recomputed. Fractions are truncated.
func Desired(current image.Point, aspect float64, area image.Point) image.Point {
	if aspect <= 0 || current.X <= 0 || current.Y <= 0 {
		return current
	}
	w := current.X
	h := int(float64(w) / aspect)
	if area.Y > 0 && h > area.Y {
		h = area.Y
		w = int(float64(h) * aspect)
	}
	if area.X > 0 && w > area.X {
		w = area.X
		h = int(float64(w) / aspect)
	}
	return image.Pt(max(w, 1), max(h, 1))
}

// Resizer applies a window size. Implementations may call OnResize again
// before returning.
type Resizer interface {
	Resize(size image.Point)
}

// Event describes the audience surface after a resize.
type Event struct {
	Size       image.Point
	FullScreen bool
	// Page is the natural size of the current page; empty when no
	// document is ready.
	Page  geometry.Size
	Split bool
	// Area is the available geometry of the display holding the window.
	Area image.Rectangle
}

// Controller corrects the audience window size after user resizes.
type Controller struct {
	win    Resizer
	logger *log.Logger

	locked  bool
	guard   bool
	applied int
}

// NewController returns an unlocked controller.
func NewController(win Resizer, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Controller{win: win, logger: logger}
}

func (c *Controller) Locked() bool { return c.locked }

func (c *Controller) SetLocked(locked bool) { c.locked = locked }

// Applied returns how many corrections have been applied.
func (c *Controller) Applied() int { return c.applied }

// OnResize handles one resize of the audience surface and reports whether
// it applied a correction.
func (c *Controller) OnResize(ev Event) bool {
	if c.guard {
		c.logger.Debug("aspect lock: nested resize skipped", "size", ev.Size)
		return false
	}
	if !c.locked || ev.FullScreen || ev.Page.Empty() {
		return false
	}

	aspect := ev.Page.Aspect()
	if ev.Split {
		aspect /= 2
	}
	target := Desired(ev.Size, aspect, ev.Area.Size())
	d := target.Sub(ev.Size)
	if abs(d.X) <= Tolerance && abs(d.Y) <= Tolerance {
		return false
	}

	c.guard = true
	defer func() { c.guard = false }()
	c.logger.Debug("aspect lock: resizing", "from", ev.Size, "to", target)
	c.applied++
	c.win.Resize(target)
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
