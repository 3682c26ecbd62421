package display

import (
	"image"
	"sync"
)

// Window is a top-level surface that can be placed on a display.
type Window interface {
	// SetDisplay attaches the window to a display.
	SetDisplay(d Descriptor)
	SetGeometry(r image.Rectangle)
	Geometry() image.Rectangle
	ShowFullScreen()
	ShowNormal()
	FullScreen() bool
	Raise()
}

// VirtualWindow is a Window that only records what was asked of it.
type VirtualWindow struct {
	mu         sync.Mutex
	name       string
	display    Descriptor
	geometry   image.Rectangle
	normal     image.Rectangle
	fullScreen bool
	raises     int
}

// NewVirtualWindow returns a window with the given initial geometry.
func NewVirtualWindow(name string, geometry image.Rectangle) *VirtualWindow {
	return &VirtualWindow{name: name, geometry: geometry, normal: geometry, display: Descriptor{Index: -1}}
}

func (w *VirtualWindow) Name() string { return w.name }

// Display returns the display last passed to SetDisplay.
func (w *VirtualWindow) Display() Descriptor {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.display
}

func (w *VirtualWindow) SetDisplay(d Descriptor) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.display = d
}

func (w *VirtualWindow) SetGeometry(r image.Rectangle) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.geometry = r
	if !w.fullScreen {
		w.normal = r
	}
}

func (w *VirtualWindow) Geometry() image.Rectangle {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.geometry
}

// ShowFullScreen covers the attached display.
func (w *VirtualWindow) ShowFullScreen() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.fullScreen {
		w.normal = w.geometry
	}
	w.fullScreen = true
	if !w.display.Geometry.Empty() {
		w.geometry = w.display.Geometry
	}
}

// ShowNormal restores the last non-fullscreen geometry.
func (w *VirtualWindow) ShowNormal() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fullScreen {
		w.geometry = w.normal
	}
	w.fullScreen = false
}

func (w *VirtualWindow) FullScreen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fullScreen
}

func (w *VirtualWindow) Raise() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.raises++
}

// Raises returns how many times Raise was called.
func (w *VirtualWindow) Raises() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.raises
}
