// Package compositor turns document pages into the images shown on each
// surface of the presenter.
//
// Three surfaces are fed from one document: the audience view, the
// console's current-slide preview and the console's next-slide preview.
// Each surface has a [Target] (its logical size and device scale) and keeps
// its own [Slide], an immutable raster that is replaced whenever the page,
// split mode or target changes.
//
// # Split mode
//
// Presentations prepared with speaker notes on the right half of every page
// are rendered at twice the width of the fitted slide and cut down the
// middle with [SplitCrop]. The left half goes to the audience and the
// console preview; the right half becomes the notes image. When the
// rendered width is odd the notes half receives the extra column.
//
// # Failure handling
//
// While the document is loading, [Compositor.Render] does nothing and
// returns the previous result, so surfaces keep showing what they had. A
// page with an empty size reports [ErrZeroSize] instead of dividing by
// zero.
//
// [Letterbox] draws a slide centred on a black background, which is how
// the audience window presents it in full screen.
package compositor
