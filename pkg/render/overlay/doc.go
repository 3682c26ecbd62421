// Package overlay draws what the presenter puts on top of a slide: the
// laser pointer, the magnifying lens and freehand annotations.
//
// # Modes
//
// Exactly one [Mode] is active at a time. Key presses are expressed as a
// [Change] and fed through [Transition], a pure function, so the rules
// ("the laser and the magnifier exclude each other", "N returns to the
// plain cursor") live in one table instead of being spread across
// handlers. [Resolve] maps a set of independent on/off flags, as stored in
// older settings files, to the mode that should win: annotation over
// magnifier over laser over the default cursor.
//
// # Drawing
//
// The [Engine] owns the mode, the styles and an [Ink] canvas of
// annotation strokes. Committed strokes are immutable; changing the page
// wipes them. [Engine.Paint] composites strokes and the lens onto a frame
// that already holds the letterboxed slide.
package overlay
