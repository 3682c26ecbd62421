package sink

import (
	"bytes"
	"fmt"
	"image"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/matzehuels/podium/pkg/buildinfo"
)

// PDFOption configures PDF output.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	dpi   float64
	title string
}

// WithDPI sets the resolution used to size the page (default 96).
func WithDPI(dpi float64) PDFOption {
	return func(r *pdfRenderer) { r.dpi = dpi }
}

// WithTitle sets the document title.
func WithTitle(title string) PDFOption {
	return func(r *pdfRenderer) { r.title = title }
}

// RenderPDF wraps img in a one-page PDF sized to the image at the chosen
// resolution.
func RenderPDF(img image.Image, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{dpi: 96}
	for _, opt := range opts {
		opt(&r)
	}
	if r.dpi <= 0 {
		return nil, fmt.Errorf("invalid dpi %v", r.dpi)
	}

	b := img.Bounds()
	res := canvas.DPI(r.dpi)
	w := float64(b.Dx()) / res.DPMM()
	h := float64(b.Dy()) / res.DPMM()

	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	ctx.DrawImage(0, 0, img, res)

	var buf bytes.Buffer
	writer := pdf.New(&buf, w, h, nil)
	writer.SetInfo(r.title, "", "", "", buildinfo.Producer())
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
