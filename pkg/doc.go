// Package pkg provides the core libraries for the Podium presenter.
//
// # Overview
//
// Podium shows a PDF (or a markdown deck) on a projector while the speaker
// watches a console with the current slide, the notes, the next slide, a
// clock and a timer. The pkg directory is organized into four areas:
//
//  1. [document] - Page sources (PDF via pdftoppm, markdown decks, the demo)
//  2. [render] - Pixel pipeline (compositor, overlay, sinks)
//  3. [display] - Output enumeration and surface placement
//  4. [presenter] - The controller tying the above to user actions
//
// # Architecture
//
// The typical data flow for one frame:
//
//	PDF / deck file
//	      ↓
//	[document] (page sizes, outline, rasterization)
//	      ↓
//	[render/compositor] (per-surface rasters, split crops, reuse)
//	      ↓
//	[render/overlay] (ink, magnifier, laser pointer)
//	      ↓
//	audience frame + console view
//
// # Quick Start
//
// Open a document and render the audience frame for page 3:
//
//	import (
//	    "context"
//	    "image"
//
//	    "github.com/matzehuels/podium/pkg/document"
//	    "github.com/matzehuels/podium/pkg/presenter"
//	    "github.com/matzehuels/podium/pkg/render/compositor"
//	    "github.com/matzehuels/podium/pkg/render/sink"
//	)
//
//	doc, _ := document.Open("talk.pdf", document.Options{})
//	ctrl := presenter.New(doc, presenter.Options{})
//	ctrl.Resize(compositor.SurfaceAudience, compositor.Target{Size: image.Pt(1920, 1080), Scale: 1})
//	ctrl.GoTo(2)
//	ctrl.Render(context.Background())
//	frame := ctrl.AudienceFrame(image.Pt(1920, 1080), true)
//	data, _ := sink.RenderPNG(frame)
//
// # Main Packages
//
// [document] - The [document.Document] interface with a poppler-backed PDF
// implementation, markdown decks rendered with tdewolff/canvas, and
// [document.Load] for opening files in the background.
//
// [render/compositor] - Decides the raster size for each surface, crops
// split pages into slide and notes halves and reuses rasters whose plan is
// unchanged.
//
// [render/overlay] - Pointer modes, ink strokes, the magnifier lens and the
// laser pointer.
//
// [render/sink] - PNG and PDF output for frames.
//
// [display] - Output enumeration (X11 RandR or static specs), the
// audience/console assignment and window placement.
//
// [display/selector] - The display map widget used to reassign surfaces.
//
// [aspect] - Keeps the audience window at the slide's aspect ratio.
//
// [presenter] - Navigation, chapters, stopwatch, key bindings and resize
// debouncing.
//
// ## Infrastructure
//
// [settings] - Persistent TOML settings.
//
// [cache] - File cache for page rasters.
//
// [observability] - Hooks for render, cache and display events.
//
// [errors] - Structured errors with codes and user messages.
//
// [geometry] - Sizes and rectangles in page points.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/render/...       # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [document]: https://pkg.go.dev/github.com/matzehuels/podium/pkg/document
// [document.Document]: https://pkg.go.dev/github.com/matzehuels/podium/pkg/document#Document
// [document.Load]: https://pkg.go.dev/github.com/matzehuels/podium/pkg/document#Load
// [render]: https://pkg.go.dev/github.com/matzehuels/podium/pkg/render
// [render/compositor]: https://pkg.go.dev/github.com/matzehuels/podium/pkg/render/compositor
// [render/overlay]: https://pkg.go.dev/github.com/matzehuels/podium/pkg/render/overlay
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/podium/pkg/render/sink
// [display]: https://pkg.go.dev/github.com/matzehuels/podium/pkg/display
// [display/selector]: https://pkg.go.dev/github.com/matzehuels/podium/pkg/display/selector
// [aspect]: https://pkg.go.dev/github.com/matzehuels/podium/pkg/aspect
// [presenter]: https://pkg.go.dev/github.com/matzehuels/podium/pkg/presenter
// [settings]: https://pkg.go.dev/github.com/matzehuels/podium/pkg/settings
// [cache]: https://pkg.go.dev/github.com/matzehuels/podium/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/podium/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/podium/pkg/errors
// [geometry]: https://pkg.go.dev/github.com/matzehuels/podium/pkg/geometry
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/podium/pkg/buildinfo
package pkg
