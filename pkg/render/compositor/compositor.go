package compositor

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/podium/pkg/document"
	perrors "github.com/matzehuels/podium/pkg/errors"
	"github.com/matzehuels/podium/pkg/observability"
)

// Surface names used in logs and hooks.
const (
	SurfaceAudience = "audience"
	SurfaceConsole  = "console"
	SurfaceNext     = "next"
)

// Surface is one drawing area together with the slide it currently shows.
type Surface struct {
	name   string
	target Target
	plan   Plan
	slide  *Slide
	notes  *Slide
}

// Target returns the surface's current target.
func (s *Surface) Target() Target { return s.target }

// Resize sets a new target and reports whether it differs from the old one.
// The cached slide stays visible until the next render replaces it.
func (s *Surface) Resize(t Target) bool {
	if t == s.target {
		return false
	}
	s.target = t
	return true
}

// Slide returns the slide last rendered for this surface, or nil.
func (s *Surface) Slide() *Slide { return s.slide }

// Invalidate forces the next render to rasterize again.
func (s *Surface) Invalidate() {
	s.plan = Plan{Page: -1}
}

// Request selects what to render.
type Request struct {
	Page  int
	Split bool
}

// Result holds the slides for every surface after a render.
type Result struct {
	Audience *Slide
	Console  *Slide

	// Notes is the right half of the console raster in split mode.
	Notes *Slide

	// Next is the preview of the following page. It is nil and NextEnd is
	// true when the current page is the last one.
	Next    *Slide
	NextEnd bool
}

// Compositor renders pages for the audience, console and next-slide
// surfaces.
type Compositor struct {
	Audience Surface
	Console  Surface
	Next     Surface

	doc    document.Rasterizer
	last   Result
	logger *log.Logger
}

// New returns a compositor for doc. The logger may be nil.
func New(doc document.Rasterizer, logger *log.Logger) *Compositor {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	c := &Compositor{
		Audience: Surface{name: SurfaceAudience, target: Target{Scale: 1}},
		Console:  Surface{name: SurfaceConsole, target: Target{Scale: 1}},
		Next:     Surface{name: SurfaceNext, target: Target{Scale: 1}},
		doc:      doc,
		logger:   logger,
	}
	c.invalidate()
	return c
}

// SetDocument swaps the document and drops every cached slide.
func (c *Compositor) SetDocument(doc document.Rasterizer) {
	c.doc = doc
	c.last = Result{}
	c.Audience.slide, c.Console.slide, c.Console.notes, c.Next.slide = nil, nil, nil, nil
	c.invalidate()
}

func (c *Compositor) invalidate() {
	c.Audience.Invalidate()
	c.Console.Invalidate()
	c.Next.Invalidate()
}

// Last returns the most recent result.
func (c *Compositor) Last() Result { return c.last }

// Render brings every surface up to date for req. Surfaces whose plan has
// not changed keep their slide. While the document is not ready nothing
// happens and the previous result is returned.
func (c *Compositor) Render(ctx context.Context, req Request) (Result, error) {
	if c.doc == nil || c.doc.Status() != document.StatusReady {
		return c.last, nil
	}
	count := c.doc.PageCount()
	if err := perrors.ValidatePageIndex(req.Page, count); err != nil {
		return c.last, err
	}

	var res Result
	var err error

	if res.Audience, _, err = c.renderSurface(ctx, &c.Audience, req.Page, req.Split); err != nil {
		return c.last, err
	}
	if res.Console, res.Notes, err = c.renderSurface(ctx, &c.Console, req.Page, req.Split); err != nil {
		return c.last, err
	}
	if next := req.Page + 1; next < count {
		if res.Next, _, err = c.renderSurface(ctx, &c.Next, next, req.Split); err != nil {
			return c.last, err
		}
	} else {
		c.Next.slide = nil
		c.Next.Invalidate()
		res.NextEnd = true
	}

	c.last = res
	return res, nil
}

// renderSurface rasterizes page for s unless its plan is unchanged. In split
// mode it returns the left half as the slide and the right half as notes.
func (c *Compositor) renderSurface(ctx context.Context, s *Surface, page int, split bool) (*Slide, *Slide, error) {
	size, err := c.doc.PageSize(page)
	if err != nil {
		return nil, nil, err
	}
	plan, err := PlanFor(page, size, s.target, split)
	if err != nil {
		return nil, nil, err
	}
	if plan == s.plan && s.slide != nil {
		return s.slide, s.notes, nil
	}

	start := time.Now()
	img, err := c.doc.Render(ctx, page, plan.Raster)
	if err != nil {
		return nil, nil, err
	}

	scale := s.target.scale()
	slide := &Slide{Image: img, Page: page, Split: split, Scale: scale}
	var notes *Slide
	if split {
		left, right := SplitCrop(img)
		slide = &Slide{Image: left, Page: page, Split: true, Scale: scale}
		notes = &Slide{Image: right, Page: page, Split: true, Scale: scale}
	}

	s.plan, s.slide, s.notes = plan, slide, notes
	elapsed := time.Since(start)
	observability.Render().OnComposite(ctx, s.name, page, elapsed)
	c.logger.Debug("rendered surface", "surface", s.name, "page", page+1, "px", plan.Raster, "split", split, "took", elapsed)
	return slide, notes, nil
}
