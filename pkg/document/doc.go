// Package document loads presentations and turns their pages into pixels.
//
// A presentation is anything that implements [Document]: a page count, a
// size for each page in PDF points, and a way to rasterize a page at an
// exact pixel size. Two backends are provided.
//
// # PDF
//
// [OpenPDF] reads page geometry, the document title and the outline with
// seehuhn.de/go/pdf. Pixels come from Poppler's pdftoppm, which Podium runs
// as a subprocess; results are kept in a [cache.Cache] keyed by the file's
// content hash, page and size, so flipping back to a slide is instant.
//
// # Markdown decks
//
// [ParseDeck] turns a Markdown file into slides using goldmark: a thematic
// break ("---") starts a new slide, "#" headings become chapters, and a
// paragraph starting with "Notes:" holds speaker notes. Decks are drawn
// with tdewolff/canvas, so they render without any external tools. A deck
// with notes produces double-width pages in the same layout LaTeX beamer
// uses for "show notes on second screen", which is what split mode expects.
//
// [NewDemo] returns a small built-in deck used when no file is given.
//
// # Loading
//
// Opening a large PDF can take a moment. [Load] returns a [Pending]
// document immediately whose status stays [StatusLoading] until the
// backend finishes; callers that render while loading simply get
// [ErrNotReady] and keep showing what they had.
package document
