package selector

import (
	"image"
	"image/color"
	"math"
	"strconv"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"golang.org/x/image/font/gofont/gobold"
)

// pxToPt converts a pixel size to the point size canvas expects when one
// canvas unit is one pixel.
const pxToPt = 72 / 25.4

var (
	background  = canvas.Hex("#1f2328")
	screenFill  = canvas.Hex("#2c3e50")
	emptyColor  = canvas.Hex("#3498db")
	audienceCol = canvas.Hex("#e74c3c")
	consoleCol  = canvas.Hex("#2ecc71")
	bothColor   = canvas.Hex("#9b59b6")
	labelColor  = canvas.Hex("#ecf0f1")
)

var (
	fontOnce sync.Once
	font     *canvas.FontFamily
	fontErr  error
)

func loadFont() (*canvas.FontFamily, error) {
	fontOnce.Do(func() {
		f := canvas.NewFontFamily("Go")
		if err := f.LoadFont(gobold.TTF, 0, canvas.FontBold); err != nil {
			fontErr = err
			return
		}
		font = f
	})
	return font, fontErr
}

// Paint draws the map at the widget size.
func (w *Widget) Paint() (*image.RGBA, error) {
	family, err := loadFont()
	if err != nil {
		return nil, err
	}
	c := canvas.New(float64(w.size.X), float64(w.size.Y))
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)
	ctx.SetStrokeJoiner(canvas.RoundJoin)

	ctx.SetFillColor(background)
	ctx.SetStrokeColor(canvas.Transparent)
	ctx.DrawPath(0, 0, canvas.Rectangle(float64(w.size.X), float64(w.size.Y)))

	label := family.Face(12*pxToPt, labelColor, canvas.FontBold, canvas.FontNormal)
	for i, r := range w.rects {
		if r.Empty() {
			continue
		}
		ctx.SetFillColor(screenFill)
		ctx.SetStrokeColor(w.borderColor(i))
		ctx.SetStrokeWidth(2)
		ctx.DrawPath(float64(r.Min.X), float64(r.Min.Y), canvas.Rectangle(float64(r.Dx()), float64(r.Dy())))
		ctx.SetStrokeColor(canvas.Transparent)

		text := canvas.NewTextLine(label, strconv.Itoa(i+1), canvas.Left)
		ctx.DrawText(float64(r.Min.X)+5, float64(r.Min.Y)+5+label.Metrics().CapHeight, text)
	}

	letter := family.Face(18*pxToPt, canvas.White, canvas.FontBold, canvas.FontNormal)
	for _, t := range []Target{Audience, Console} {
		m := w.Marker(t)
		if m.Empty() {
			continue
		}
		col := audienceCol
		name := "A"
		if t == Console {
			col, name = consoleCol, "C"
		}
		if target, _, ok := w.Dragging(); ok && target == t {
			col.A = 200
			col = premultiply(col)
		}
		cx := float64(m.Min.X+m.Max.X) / 2
		cy := float64(m.Min.Y+m.Max.Y) / 2
		ctx.SetFillColor(col)
		ctx.DrawPath(0, 0, disc(cx, cy, IconSize/2))

		text := canvas.NewTextLine(letter, name, canvas.Center)
		ctx.DrawText(cx, cy+letter.Metrics().CapHeight/2, text)
	}

	return rasterizer.Draw(c, canvas.DPMM(1), canvas.DefaultColorSpace), nil
}

// borderColor marks which surfaces a display currently shows.
func (w *Widget) borderColor(i int) color.RGBA {
	a, c := w.shown(Audience) == i, w.shown(Console) == i
	switch {
	case a && c:
		return bothColor
	case a:
		return audienceCol
	case c:
		return consoleCol
	default:
		return emptyColor
	}
}

func premultiply(c color.RGBA) color.RGBA {
	f := float64(c.A) / 255
	return color.RGBA{R: uint8(float64(c.R) * f), G: uint8(float64(c.G) * f), B: uint8(float64(c.B) * f), A: c.A}
}

func disc(cx, cy, r float64) *canvas.Path {
	const segments = 48
	p := &canvas.Path{}
	p.MoveTo(cx+r, cy)
	for i := 1; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		p.LineTo(cx+r*math.Cos(a), cy+r*math.Sin(a))
	}
	p.Close()
	return p
}
