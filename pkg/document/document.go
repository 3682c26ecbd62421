package document

import (
	"context"
	"image"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/podium/pkg/cache"
	perrors "github.com/matzehuels/podium/pkg/errors"
	"github.com/matzehuels/podium/pkg/geometry"
)

// Status reports whether a document can be rendered.
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// ErrNotReady is returned by Render and PageSize while a document is still
// loading or after loading failed.
var ErrNotReady = perrors.New(perrors.ErrCodeDocumentNotReady, "document not ready")

// Rasterizer is the part of a document the compositor needs.
type Rasterizer interface {
	Status() Status
	PageCount() int

	// PageSize returns the page's size in PDF points, after rotation.
	PageSize(page int) (geometry.Size, error)

	// Render draws page at exactly px pixels.
	Render(ctx context.Context, page int, px image.Point) (*image.RGBA, error)
}

// Chapter is a top-level outline entry.
type Chapter struct {
	Title string
	Page  int
	Level int
}

// Document is a loaded presentation.
type Document interface {
	Rasterizer
	Title() string
	Chapters() []Chapter
	Close() error
}

// ActiveChapter returns the index of the chapter containing page: the
// chapter with the greatest start page at or before page, the first one in
// document order when several start on the same page. It returns -1 when
// page precedes every chapter.
func ActiveChapter(chapters []Chapter, page int) int {
	best, bestPage := -1, -1
	for i, ch := range chapters {
		if ch.Page <= page && ch.Page > bestPage {
			best, bestPage = i, ch.Page
		}
	}
	return best
}

// Options configures document backends.
type Options struct {
	// Cache stores rendered rasters. Nil disables caching.
	Cache cache.Cache
	Keyer cache.Keyer

	// Renderer is the pdftoppm executable. Empty means look it up on PATH.
	Renderer string

	Logger *log.Logger
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if o.Cache == nil {
		o.Cache = cache.NewNullCache()
	}
	if o.Keyer == nil {
		o.Keyer = cache.NewDefaultKeyer()
	}
	if o.Renderer == "" {
		o.Renderer = DefaultRenderer
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

func checkPage(r Rasterizer, page int) error {
	if r.Status() != StatusReady {
		return ErrNotReady
	}
	return perrors.ValidatePageIndex(page, r.PageCount())
}
