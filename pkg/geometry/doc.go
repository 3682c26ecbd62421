// Package geometry holds the small amount of 2-D arithmetic shared by the
// rendering, overlay and display packages.
//
// Two coordinate flavours appear throughout Podium. Page sizes come from the
// document in PDF points and are fractional, so they are carried as [Size].
// Everything that ends up as pixels uses the standard library's image.Point
// and image.Rectangle. [FitInside] and [FitPixels] bridge the two: they
// compute the largest aspect-preserving box that fits a bound.
//
// # Fitting
//
// Fitting follows the usual "keep aspect ratio" rule: try to use the full
// height of the bound, and if the resulting width overflows, use the full
// width instead.
//
//	slide := geometry.Size{W: 1024, H: 768}
//	geometry.FitPixels(slide, image.Pt(1920, 1080)) // (1440, 1080)
//
// [Rect] is a floating-point rectangle used for layout math that later gets
// rounded, such as the thumbnail map in the display selector.
package geometry
