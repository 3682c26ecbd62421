// Package cache stores rendered page rasters between runs.
//
// Rasterizing a PDF page with an external renderer costs tens to hundreds of
// milliseconds, which is noticeable when flipping slides. The document
// backends therefore look a page up by [Keyer.RasterKey] before shelling out
// and store the encoded PNG afterwards.
//
// Two implementations are provided:
//
//   - [FileCache] keeps entries as JSON files under a directory, sharded by
//     the first two hex digits of the key hash.
//   - [NullCache] never stores anything and is used with --no-cache.
//
// Keys embed a hash of the document bytes, so editing a PDF naturally
// invalidates its entries.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// DefaultRasterTTL bounds how long an unused page raster survives.
const DefaultRasterTTL = 7 * 24 * time.Hour
