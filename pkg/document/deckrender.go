package document

import (
	"context"
	"fmt"
	"image"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/podium/pkg/buildinfo"
	perrors "github.com/matzehuels/podium/pkg/errors"
	"github.com/matzehuels/podium/pkg/geometry"
	"github.com/matzehuels/podium/pkg/observability"
)

// DeckPage is the size of one slide in PDF points (16:9, 10in wide).
var DeckPage = geometry.Size{W: 720, H: 405}

const ptToMM = 25.4 / 72

var (
	inkColor   = canvas.Hex("#1d2330")
	mutedColor = canvas.Hex("#6b7280")
	accent     = canvas.Hex("#2563eb")
	notesPaper = canvas.Hex("#f4f1e8")
	codePaper  = canvas.Hex("#eef1f5")
)

// Deck is a presentation written in Markdown and drawn with canvas.
type Deck struct {
	title    string
	slides   []Slide
	chapters []Chapter
	notes    bool

	mu      sync.Mutex
	sans    *canvas.FontFamily
	mono    *canvas.FontFamily
	fontErr error
}

// NewDeck parses src into a deck.
func NewDeck(src []byte) (*Deck, error) {
	slides := ParseSlides(src)
	if len(slides) == 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "deck has no slides")
	}

	d := &Deck{slides: slides}
	for i, s := range slides {
		if s.Chapter != "" {
			if d.title == "" {
				d.title = s.Chapter
			}
			d.chapters = append(d.chapters, Chapter{Title: s.Chapter, Page: i})
		}
		if s.Notes != "" {
			d.notes = true
		}
	}
	if d.title == "" {
		d.title = slides[0].Title
	}
	return d, nil
}

func (d *Deck) Status() Status      { return StatusReady }
func (d *Deck) PageCount() int      { return len(d.slides) }
func (d *Deck) Title() string       { return d.title }
func (d *Deck) Chapters() []Chapter { return d.chapters }
func (d *Deck) Close() error        { return nil }

// Slides returns the parsed slides.
func (d *Deck) Slides() []Slide { return d.slides }

// SplitHint reports whether pages carry a notes half on the right.
func (d *Deck) SplitHint() bool { return d.notes }

// Notes returns the speaker notes of page, or "" when it has none.
func (d *Deck) Notes(page int) string {
	if page < 0 || page >= len(d.slides) {
		return ""
	}
	return d.slides[page].Notes
}

func (d *Deck) PageSize(page int) (geometry.Size, error) {
	if err := checkPage(d, page); err != nil {
		return geometry.Size{}, err
	}
	return d.pageSize(), nil
}

func (d *Deck) pageSize() geometry.Size {
	if d.notes {
		return geometry.Size{W: 2 * DeckPage.W, H: DeckPage.H}
	}
	return DeckPage
}

// Render rasterizes page at exactly px pixels.
func (d *Deck) Render(ctx context.Context, page int, px image.Point) (*image.RGBA, error) {
	if err := checkPage(d, page); err != nil {
		return nil, err
	}
	if err := perrors.ValidateSize(px.X, px.Y); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	start := time.Now()
	c, err := d.drawPage(page)
	if err != nil {
		observability.Render().OnRaster(ctx, page, px, time.Since(start), err)
		return nil, err
	}
	size := d.pageSize().Scale(ptToMM)
	img := rasterizer.Draw(c, canvas.DPMM(float64(px.X)/size.W), canvas.DefaultColorSpace)
	observability.Render().OnRaster(ctx, page, px, time.Since(start), nil)
	return fitExact(toRGBA(img), px), nil
}

// WritePDF exports every slide as a page of a PDF document.
func (d *Deck) WritePDF(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	size := d.pageSize().Scale(ptToMM)
	writer := pdf.New(w, size.W, size.H, nil)
	writer.SetInfo(d.title, "", "", "", buildinfo.Producer())
	for i := range d.slides {
		if i > 0 {
			writer.NewPage(size.W, size.H)
		}
		c, err := d.drawPage(i)
		if err != nil {
			return err
		}
		c.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// =============================================================================
// Drawing
// =============================================================================

func (d *Deck) fonts() error {
	if d.sans != nil || d.fontErr != nil {
		return d.fontErr
	}
	sans := canvas.NewFontFamily("Go")
	if err := sans.LoadFont(goregular.TTF, 0, canvas.FontRegular); err != nil {
		d.fontErr = err
		return err
	}
	if err := sans.LoadFont(gobold.TTF, 0, canvas.FontBold); err != nil {
		d.fontErr = err
		return err
	}
	mono := canvas.NewFontFamily("Go Mono")
	if err := mono.LoadFont(gomono.TTF, 0, canvas.FontRegular); err != nil {
		d.fontErr = err
		return err
	}
	d.sans, d.mono = sans, mono
	return nil
}

// drawPage lays out one slide in millimetres with the origin at the top
// left.
func (d *Deck) drawPage(page int) (*canvas.Canvas, error) {
	if err := d.fonts(); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "load fonts")
	}

	slide := d.slides[page]
	full := d.pageSize().Scale(ptToMM)
	half := DeckPage.Scale(ptToMM)

	c := canvas.New(full.W, full.H)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	ctx.SetFillColor(canvas.White)
	ctx.SetStrokeColor(canvas.Transparent)
	ctx.DrawPath(0, 0, canvas.Rectangle(half.W, half.H))

	margin := half.W * 0.06
	width := half.W - 2*margin
	y := margin

	if slide.Chapter != "" && slide.Chapter != slide.Title {
		face := d.sans.Face(12, accent, canvas.FontBold, canvas.FontNormal)
		y = d.drawLines(ctx, face, []string{strings.ToUpper(slide.Chapter)}, margin, y)
		y += 2
	}
	if slide.Title != "" {
		size := 30.0
		if len(slide.Blocks) == 0 {
			size = 40
			y = half.H*0.4 - toMM(size)
		}
		face := d.sans.Face(size, inkColor, canvas.FontBold, canvas.FontNormal)
		y = d.drawLines(ctx, face, wrap(face, slide.Title, width), margin, y)
		ctx.SetFillColor(accent)
		ctx.DrawPath(margin, y+2, canvas.Rectangle(width*0.12, 0.8))
		y += 8
	}

	body := d.sans.Face(18, inkColor, canvas.FontRegular, canvas.FontNormal)
	code := d.mono.Face(14, inkColor, canvas.FontRegular, canvas.FontNormal)
	for _, b := range slide.Blocks {
		switch b.Kind {
		case BlockBullet:
			indent := 6 + float64(b.Level)*8
			bullet := canvas.NewTextLine(body, "•", canvas.Left)
			ctx.DrawText(margin+indent-5, y+body.Metrics().Ascent, bullet)
			y = d.drawLines(ctx, body, wrap(body, b.Text, width-indent), margin+indent, y)
		case BlockCode:
			lines := strings.Split(b.Text, "\n")
			h := float64(len(lines))*code.Metrics().LineHeight + 4
			ctx.SetFillColor(codePaper)
			ctx.DrawPath(margin, y, canvas.RoundedRectangle(width, h, 1.5))
			d.drawLines(ctx, code, lines, margin+3, y+2)
			y += h
		default:
			y = d.drawLines(ctx, body, wrap(body, b.Text, width), margin, y)
		}
		y += 3
	}

	footer := d.sans.Face(10, mutedColor, canvas.FontRegular, canvas.FontNormal)
	label := canvas.NewTextLine(footer, fmt.Sprintf("%d / %d", page+1, len(d.slides)), canvas.Right)
	ctx.DrawText(half.W-margin, half.H-margin/2, label)

	if d.notes {
		d.drawNotes(ctx, slide, page, half)
	}
	return c, nil
}

// drawNotes fills the right half of a double-width page.
func (d *Deck) drawNotes(ctx *canvas.Context, slide Slide, page int, half geometry.Size) {
	ctx.SetFillColor(notesPaper)
	ctx.DrawPath(half.W, 0, canvas.Rectangle(half.W, half.H))

	margin := half.W * 0.06
	x := half.W + margin
	width := half.W - 2*margin

	heading := d.sans.Face(14, mutedColor, canvas.FontBold, canvas.FontNormal)
	y := d.drawLines(ctx, heading, []string{fmt.Sprintf("Notes for Slide %d", page+1)}, x, margin)
	y += 4

	body := d.sans.Face(16, inkColor, canvas.FontRegular, canvas.FontNormal)
	for _, para := range strings.Split(slide.Notes, "\n") {
		y = d.drawLines(ctx, body, wrap(body, para, width), x, y)
		y += 2
	}
}

// drawLines draws lines top-down starting at y and returns the y below the
// last line.
func (d *Deck) drawLines(ctx *canvas.Context, face *canvas.FontFace, lines []string, x, y float64) float64 {
	m := face.Metrics()
	for _, l := range lines {
		ctx.DrawText(x, y+m.Ascent, canvas.NewTextLine(face, l, canvas.Left))
		y += m.LineHeight
	}
	return y
}

// wrap breaks s into lines no wider than width using greedy word fill.
// Words longer than width get a line of their own.
func wrap(face *canvas.FontFace, s string, width float64) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if face.TextWidth(line+" "+w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}

func toMM(pt float64) float64 { return pt * ptToMM }
