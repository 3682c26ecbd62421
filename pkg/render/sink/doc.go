// Package sink writes composited frames to files.
//
// The presenter normally shows its frames on screen, but "podium render"
// produces the same images headlessly: the audience frame, the console
// preview, the notes half and the next-slide preview for one page. Frames
// are encoded as PNG by default, or wrapped in a single-page PDF.
//
//	data, err := sink.RenderPNG(frame, sink.WithCompression(png.BestSpeed))
//	data, err := sink.RenderPDF(frame, sink.WithDPI(150))
package sink
