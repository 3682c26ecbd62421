package overlay

import (
	"image"
	"image/color"
	"math"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"golang.org/x/image/draw"
)

// vectorLayer is a transparent canvas the size of a frame, with one canvas
// unit per device pixel and the origin at the top left.
type vectorLayer struct {
	c   *canvas.Canvas
	ctx *canvas.Context
}

func newVectorLayer(size image.Point) *vectorLayer {
	c := canvas.New(float64(size.X), float64(size.Y))
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)
	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeCapper(canvas.RoundCap)
	ctx.SetStrokeJoiner(canvas.RoundJoin)
	return &vectorLayer{c: c, ctx: ctx}
}

// composite rasterizes the layer and draws it over dst.
func (l *vectorLayer) composite(dst *image.RGBA) {
	img := rasterizer.Draw(l.c, canvas.DPMM(1), canvas.DefaultColorSpace)
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Over)
}

func (l *vectorLayer) stroke(s Stroke, scale float64) {
	if len(s.Points) == 0 {
		return
	}
	w := math.Max(s.Pen.Thickness*scale, 1)
	ctx := l.ctx

	if len(s.Points) == 1 {
		ctx.SetStrokeColor(canvas.Transparent)
		ctx.SetFillColor(s.Pen.Color)
		p := s.Points[0]
		ctx.DrawPath(0, 0, polygonCircle(float64(p.X), float64(p.Y), w/2))
		ctx.SetFillColor(canvas.Transparent)
		return
	}

	ctx.SetStrokeColor(s.Pen.Color)
	ctx.SetStrokeWidth(w)
	switch s.Pen.Style {
	case LineDashed:
		ctx.SetDashes(0, 4*w, 2*w)
	case LineDotted:
		ctx.SetDashes(0, 0.01, 2*w)
	default:
		ctx.SetDashes(0)
	}

	path := &canvas.Path{}
	path.MoveTo(float64(s.Points[0].X), float64(s.Points[0].Y))
	for _, p := range s.Points[1:] {
		path.LineTo(float64(p.X), float64(p.Y))
	}
	ctx.DrawPath(0, 0, path)
	ctx.SetDashes(0)
}

func (l *vectorLayer) ring(center image.Point, r, width float64, col color.RGBA) {
	l.ctx.SetStrokeColor(col)
	l.ctx.SetStrokeWidth(width)
	l.ctx.DrawPath(0, 0, polygonCircle(float64(center.X), float64(center.Y), r))
}

// polygonCircle approximates a circle closely enough for on-screen use.
func polygonCircle(cx, cy, r float64) *canvas.Path {
	const segments = 64
	p := &canvas.Path{}
	p.MoveTo(cx+r, cy)
	for i := 1; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		p.LineTo(cx+r*math.Cos(a), cy+r*math.Sin(a))
	}
	p.Close()
	return p
}

// drawStrokes paints strokes onto dst.
func drawStrokes(dst *image.RGBA, strokes []Stroke, scale float64) {
	if len(strokes) == 0 {
		return
	}
	l := newVectorLayer(dst.Bounds().Size())
	for _, s := range strokes {
		l.stroke(s, scale)
	}
	l.composite(dst)
}

func strokeRing(dst *image.RGBA, center image.Point, r, width float64, col color.RGBA) {
	l := newVectorLayer(dst.Bounds().Size())
	l.ring(center, r, width, col)
	l.composite(dst)
}
