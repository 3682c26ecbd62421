// Package aspect keeps a windowed audience surface at the aspect ratio of
// the slide it shows.
//
// [Desired] is a pure function from the current window size, the slide
// aspect and the available display area to the size the window should
// have. [Controller] calls it from a single resize handler and applies the
// result through a [Resizer]. The resize it triggers re-enters the handler
// on most window systems; a guard flag turns that nested call into a no-op
// so one user resize produces at most one correction.
//
// The controller is inert while the surface is fullscreen. The
// compositor letterboxes the slide instead.
package aspect
