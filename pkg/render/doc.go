// Package render groups the pixel pipeline that turns document pages into
// the frames shown on the audience and console screens.
//
// # Overview
//
// Rendering happens in three stages:
//
//   - Rasterization: a [document.Rasterizer] turns a page into an RGBA image
//     at an exact pixel size (pdftoppm for PDF, tdewolff/canvas for decks).
//   - Composition: the [compositor] decides how large each surface's raster
//     must be, crops split pages into slide and notes halves, and reuses
//     rasters whose plan has not changed.
//   - Overlay: the [overlay] engine paints ink strokes, the magnifier lens
//     and the laser pointer on top of the letterboxed audience frame.
//
// The [sink] subpackage writes finished frames as PNG or PDF for headless
// use.
//
//	c := compositor.New(doc, logger)
//	c.Audience.Resize(compositor.Target{Size: image.Pt(1920, 1080), Scale: 1})
//	res, err := c.Render(ctx, compositor.Request{Page: 3, Split: true})
//	frame := image.NewRGBA(image.Rect(0, 0, 1920, 1080))
//	fitted := compositor.Letterbox(frame, res.Audience.Image)
//	engine.Paint(frame, res.Audience.Image, fitted, true)
//	data, err := sink.RenderPNG(frame)
//
// [document.Rasterizer]: github.com/matzehuels/podium/pkg/document#Rasterizer
// [compositor]: github.com/matzehuels/podium/pkg/render/compositor
// [overlay]: github.com/matzehuels/podium/pkg/render/overlay
// [sink]: github.com/matzehuels/podium/pkg/render/sink
package render
