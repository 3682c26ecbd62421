// Package presenter is the top-level controller of a presentation. It owns
// the state shared by every surface (current page, split mode, overlay
// styles, fullscreen flags) and drives the compositor, the overlay engine,
// the display topology and the aspect lock from discrete events.
//
// # Event Model
//
// A [Controller] is driven from a single event loop and is not safe for
// concurrent use. Each call handles one event: a key press mapped to an
// [Action], a pointer event on the audience surface, a surface resize or a
// timer tick. Calls that change what is visible report it, and the caller
// then invokes [Controller.Render] and paints the resulting [View].
//
// Resizes arrive in bursts while a window is dragged. [Controller.Resize]
// returns a token from a [Debouncer]; the event loop waits
// [DefaultDebounce] and re-renders only if [Controller.ResizeDue] still
// accepts that token.
//
// # Surfaces
//
// The console shows the current slide, the notes (the right half of the
// page in split mode, or a text placeholder), the next-slide preview, the
// chapter list and the clocks. The audience surface shows the current
// slide letterboxed to the window, with the laser, magnifier and
// annotation overlays drawn by [Controller.AudienceFrame].
package presenter
