package compositor

import (
	"image"

	perrors "github.com/matzehuels/podium/pkg/errors"
	"github.com/matzehuels/podium/pkg/geometry"
)

// SafeSize replaces a target that has no area yet, such as a window that
// has not been laid out.
var SafeSize = image.Pt(100, 100)

// ErrZeroSize is returned for pages whose reported size has no area.
var ErrZeroSize = perrors.New(perrors.ErrCodeInvalidSize, "page has zero size")

// Target describes a surface: its size in logical pixels and how many
// device pixels make up one logical pixel.
type Target struct {
	Size  image.Point
	Scale float64
}

// Physical returns the target's size in device pixels, substituting
// SafeSize for an empty target.
func (t Target) Physical() image.Point {
	size := t.Size
	if size.X <= 0 || size.Y <= 0 {
		size = SafeSize
	}
	return geometry.ScalePoint(size, t.scale())
}

func (t Target) scale() float64 {
	if t.Scale <= 0 {
		return 1
	}
	return t.Scale
}

// Plan is the result of fitting a page into a target.
type Plan struct {
	Page  int
	Split bool

	// Visible is the device-pixel size of what the surface shows: the
	// whole page, or its left half in split mode.
	Visible image.Point

	// Raster is the device-pixel size requested from the document.
	Raster image.Point
}

// PlanFor fits page into t. In split mode only the left half of the page is
// fitted and the raster is twice as wide.
func PlanFor(index int, page geometry.Size, t Target, split bool) (Plan, error) {
	if page.Empty() {
		return Plan{}, ErrZeroSize
	}
	effective := page
	if split {
		effective = page.HalfWidth()
	}
	visible := geometry.FitPixels(effective, t.Physical())
	raster := visible
	if split {
		raster.X = 2 * visible.X
	}
	return Plan{Page: index, Split: split, Visible: visible, Raster: raster}, nil
}
