package overlay

import (
	"image"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// CursorKind is the system cursor a surface should show.
type CursorKind int

const (
	CursorArrow CursorKind = iota
	CursorImage            // draw Cursor.Image at the pointer
	CursorHidden
	CursorCross
)

// Cursor describes the pointer appearance for the current mode.
type Cursor struct {
	Kind    CursorKind
	Image   *image.NRGBA
	Hotspot image.Point
}

// Options seeds a new Engine.
type Options struct {
	Mode      Mode
	Pointer   PointerStyle
	Magnifier MagnifierStyle
	Pen       Pen

	// Scale is the device scale of the audience surface.
	Scale float64
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if o.Pointer == (PointerStyle{}) {
		o.Pointer = DefaultPointerStyle()
	}
	if o.Magnifier == (MagnifierStyle{}) {
		o.Magnifier = DefaultMagnifierStyle()
	}
	if o.Pen == (Pen{}) {
		o.Pen = DefaultPen()
	}
	if o.Scale <= 0 {
		o.Scale = 1
	}
}

// Engine holds pointer state for the audience surface. It is not safe for
// concurrent use; the presenter drives it from its event loop.
type Engine struct {
	mode      Mode
	pointer   PointerStyle
	cursor    *image.NRGBA
	hotspot   image.Point
	magnifier MagnifierStyle
	pen       Pen
	scale     float64

	ink  Ink
	page int

	pos     image.Point
	inside  bool
	pressed bool
}

// NewEngine returns an engine in opts.Mode.
func NewEngine(opts Options) *Engine {
	opts.SetDefaults()
	e := &Engine{
		mode:      opts.Mode,
		magnifier: opts.Magnifier.Clamp(),
		pen:       opts.Pen,
		scale:     opts.Scale,
		page:      -1,
	}
	e.SetPointerStyle(opts.Pointer)
	return e
}

// Mode returns the active mode.
func (e *Engine) Mode() Mode { return e.mode }

// Apply runs c through Transition and reports whether the mode changed.
func (e *Engine) Apply(c Change) bool {
	return e.SetMode(Transition(e.mode, c))
}

// SetMode switches to m. Leaving annotation mode ends any stroke in
// progress.
func (e *Engine) SetMode(m Mode) bool {
	if m == e.mode {
		return false
	}
	if e.mode == ModeAnnotation {
		e.ink.End()
		e.pressed = false
	}
	e.mode = m
	return true
}

// PointerStyle returns the laser style.
func (e *Engine) PointerStyle() PointerStyle { return e.pointer }

// SetPointerStyle changes the laser style and regenerates its image.
func (e *Engine) SetPointerStyle(s PointerStyle) {
	e.pointer = s.Clamp()
	e.cursor, e.hotspot = PointerImage(e.pointer, e.scale)
}

// Scale returns the device scale overlays are drawn at.
func (e *Engine) Scale() float64 { return e.scale }

// SetScale changes the device scale of the audience surface. The laser
// image is regenerated and the lens and stroke widths follow. It reports
// whether the scale changed.
func (e *Engine) SetScale(f float64) bool {
	if f <= 0 {
		f = 1
	}
	if f == e.scale {
		return false
	}
	e.scale = f
	e.SetPointerStyle(e.pointer)
	return true
}

// MagnifierStyle returns the lens style.
func (e *Engine) MagnifierStyle() MagnifierStyle { return e.magnifier }

// SetMagnifierStyle changes the lens and reports whether a repaint is due.
func (e *Engine) SetMagnifierStyle(s MagnifierStyle) bool {
	e.magnifier = s.Clamp()
	return e.mode == ModeMagnifier
}

// Pen returns the style for new strokes.
func (e *Engine) Pen() Pen { return e.pen }

// SetPen changes the style for new strokes. Existing strokes keep theirs.
func (e *Engine) SetPen(p Pen) { e.pen = p }

// Strokes returns the committed annotation strokes.
func (e *Engine) Strokes() []Stroke { return e.ink.Strokes() }

// Undo removes the most recent committed stroke and reports whether there
// was one. A stroke in progress is left alone.
func (e *Engine) Undo() bool {
	_, ok := e.ink.Undo()
	return ok
}

// RemoveStroke deletes the committed stroke with the given id.
func (e *Engine) RemoveStroke(id uuid.UUID) bool { return e.ink.Remove(id) }

// Cursor returns how the pointer should look over the audience surface.
func (e *Engine) Cursor() Cursor {
	switch e.mode {
	case ModeLaser:
		return Cursor{Kind: CursorImage, Image: e.cursor, Hotspot: e.hotspot}
	case ModeMagnifier:
		return Cursor{Kind: CursorHidden}
	case ModeAnnotation:
		return Cursor{Kind: CursorCross}
	default:
		return Cursor{Kind: CursorArrow}
	}
}

// SetPage tells the engine which page is shown. Moving to a different page
// clears the annotation canvas. It reports whether anything was cleared.
func (e *Engine) SetPage(page int) bool {
	if page == e.page {
		return false
	}
	e.page = page
	e.pressed = false
	return e.ink.Clear()
}

// Clear removes all strokes and reports whether there were any.
func (e *Engine) Clear() bool {
	e.pressed = false
	return e.ink.Clear()
}

// Move records a pointer position and reports whether the frame must be
// repainted.
func (e *Engine) Move(p image.Point) bool {
	moved := !e.inside || p != e.pos
	e.pos, e.inside = p, true
	switch e.mode {
	case ModeMagnifier:
		return moved
	case ModeAnnotation:
		return e.pressed && e.ink.Extend(p)
	case ModeLaser:
		return moved
	}
	return false
}

// Press starts a stroke in annotation mode.
func (e *Engine) Press(p image.Point) bool {
	e.pos, e.inside = p, true
	if e.mode != ModeAnnotation {
		return false
	}
	e.pressed = true
	e.ink.Begin(p, e.pen)
	return true
}

// Release commits the stroke in progress.
func (e *Engine) Release(p image.Point) bool {
	if e.mode != ModeAnnotation || !e.pressed {
		return false
	}
	e.ink.Extend(p)
	e.ink.End()
	e.pressed = false
	return true
}

// Leave records that the pointer left the surface.
func (e *Engine) Leave() bool {
	e.inside = false
	return e.mode == ModeMagnifier || e.mode == ModeLaser
}

// Position returns the last pointer position and whether it is over the
// surface.
func (e *Engine) Position() (image.Point, bool) { return e.pos, e.inside }

// Paint draws the overlays onto frame, which already holds slide
// letterboxed into fitted. With drawCursor set the laser dot is stamped
// into the frame too, for surfaces that cannot show a custom cursor.
func (e *Engine) Paint(frame *image.RGBA, slide image.Image, fitted image.Rectangle, drawCursor bool) {
	drawStrokes(frame, e.ink.all(), e.scale)

	if !e.inside {
		return
	}
	switch e.mode {
	case ModeMagnifier:
		paintLens(frame, slide, fitted, e.pos, e.magnifier, e.scale)
	case ModeLaser:
		if drawCursor {
			at := e.pos.Sub(e.hotspot)
			r := image.Rectangle{Min: at, Max: at.Add(e.cursor.Bounds().Size())}
			draw.Draw(frame, r, e.cursor, image.Point{}, draw.Over)
		}
	}
}
