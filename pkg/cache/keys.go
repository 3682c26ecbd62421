package cache

import "image"

// Keyer derives cache keys for the artifacts Podium stores.
type Keyer interface {
	// RasterKey identifies a page rendered at an exact pixel size.
	RasterKey(docHash string, page int, px image.Point) string

	// OutlineKey identifies the parsed chapter list of a document.
	OutlineKey(docHash string) string
}

// DefaultKeyer produces "raster:<sha256>" style keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) RasterKey(docHash string, page int, px image.Point) string {
	return hashKey("raster", docHash, page, px.X, px.Y)
}

func (DefaultKeyer) OutlineKey(docHash string) string {
	return hashKey("outline", docHash)
}
