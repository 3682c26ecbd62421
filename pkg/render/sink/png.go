package sink

import (
	"bytes"
	"image"
	"image/png"
)

// PNGOption configures PNG encoding.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	level png.CompressionLevel
}

// WithCompression sets the zlib level (default png.DefaultCompression).
func WithCompression(level png.CompressionLevel) PNGOption {
	return func(r *pngRenderer) { r.level = level }
}

// RenderPNG encodes img as PNG.
func RenderPNG(img image.Image, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{level: png.DefaultCompression}
	for _, opt := range opts {
		opt(&r)
	}
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: r.level}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
