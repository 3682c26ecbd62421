package document

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"

	"github.com/matzehuels/podium/pkg/cache"
	perrors "github.com/matzehuels/podium/pkg/errors"
	"github.com/matzehuels/podium/pkg/geometry"
	"github.com/matzehuels/podium/pkg/observability"
)

// PDF is a PDF file rasterized by Poppler.
//
// Page geometry and the outline are read once at open time; the file is not
// held open afterwards, so the presenter never blocks another program from
// rewriting it.
type PDF struct {
	path     string
	hash     string
	title    string
	sizes    []geometry.Size
	chapters []Chapter

	renderer *poppler
	cache    cache.Cache
	keyer    cache.Keyer
	logger   *log.Logger

	mu sync.Mutex // serializes renderer invocations
}

// OpenPDF reads the metadata of the PDF at path.
func OpenPDF(path string, opts Options) (*PDF, error) {
	opts.SetDefaults()
	if err := perrors.ValidateDocumentPath(path); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "open %s", path)
	}

	hash, err := cache.HashFile(path)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "read %s", path)
	}

	r, err := pdf.Open(path, nil)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "parse %s", path)
	}
	defer r.Close()

	sizes, err := readPageSizes(r)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "read page tree of %s", path)
	}

	chapters, err := readOutline(r)
	if err != nil {
		// A broken outline should not keep the talk from starting.
		opts.Logger.Warn("ignoring unreadable outline", "path", path, "err", err)
		chapters = nil
	}

	title := readTitle(r)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	renderer, err := newPoppler(opts.Renderer)
	if err != nil {
		return nil, err
	}

	opts.Logger.Debug("opened pdf", "path", path, "pages", len(sizes), "chapters", len(chapters))

	return &PDF{
		path:     path,
		hash:     hash,
		title:    title,
		sizes:    sizes,
		chapters: chapters,
		renderer: renderer,
		cache:    opts.Cache,
		keyer:    opts.Keyer,
		logger:   opts.Logger,
	}, nil
}

func (d *PDF) Status() Status      { return StatusReady }
func (d *PDF) PageCount() int      { return len(d.sizes) }
func (d *PDF) Title() string       { return d.title }
func (d *PDF) Chapters() []Chapter { return d.chapters }
func (d *PDF) Close() error        { return nil }

// Path returns the file the document was opened from.
func (d *PDF) Path() string { return d.path }

func (d *PDF) PageSize(page int) (geometry.Size, error) {
	if err := checkPage(d, page); err != nil {
		return geometry.Size{}, err
	}
	return d.sizes[page], nil
}

// Render returns the page at exactly px pixels, consulting the raster cache
// first.
func (d *PDF) Render(ctx context.Context, page int, px image.Point) (*image.RGBA, error) {
	if err := checkPage(d, page); err != nil {
		return nil, err
	}
	if err := perrors.ValidateSize(px.X, px.Y); err != nil {
		return nil, err
	}

	key := d.keyer.RasterKey(d.hash, page, px)
	if data, ok, err := d.cache.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, "raster")
		if img, err := decodePNG(data); err == nil {
			return fitExact(img, px), nil
		}
		_ = d.cache.Delete(ctx, key)
	} else {
		observability.Cache().OnCacheMiss(ctx, "raster")
	}

	d.mu.Lock()
	start := time.Now()
	data, err := d.renderer.render(ctx, d.path, page, px)
	observability.Render().OnRaster(ctx, page, px, time.Since(start), err)
	d.mu.Unlock()
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeRasterizerUnavailable, err, "render page %d", page+1)
	}

	img, err := decodePNG(data)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "decode page %d", page+1)
	}

	if err := d.cache.Set(ctx, key, data, cache.DefaultRasterTTL); err != nil {
		d.logger.Debug("raster cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "raster", len(data))
	}
	return fitExact(img, px), nil
}

// =============================================================================
// Metadata
// =============================================================================

func readPageSizes(r *pdf.Reader) ([]geometry.Size, error) {
	n, err := pagetree.NumPages(r)
	if err != nil {
		return nil, err
	}
	sizes := make([]geometry.Size, n)
	for i := range sizes {
		_, dict, err := pagetree.GetPage(r, i)
		if err != nil {
			return nil, err
		}
		sizes[i], err = pageSize(r, dict)
		if err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "page %d", i+1)
		}
	}
	return sizes, nil
}

// pageSize returns the visible size of a page: the crop box if present,
// otherwise the media box, with width and height swapped for pages rotated
// by a quarter turn.
func pageSize(r pdf.Getter, page pdf.Dict) (geometry.Size, error) {
	box, err := pdf.GetRectangle(r, page["CropBox"])
	if err != nil || box == nil {
		box, err = pdf.GetRectangle(r, page["MediaBox"])
		if err != nil {
			return geometry.Size{}, err
		}
	}
	if box == nil {
		// US Letter is the documented default.
		box = &pdf.Rectangle{URx: 612, URy: 792}
	}
	size := geometry.Size{W: box.URx - box.LLx, H: box.URy - box.LLy}

	rot, _ := pdf.GetInteger(r, page["Rotate"])
	switch ((int(rot) % 360) + 360) % 360 {
	case 90, 270:
		size.W, size.H = size.H, size.W
	}
	return size, nil
}

func readTitle(r *pdf.Reader) string {
	meta := r.GetMeta()
	if meta.Trailer == nil {
		return ""
	}
	info, err := pdf.GetDict(r, meta.Trailer["Info"])
	if err != nil || info == nil {
		return ""
	}
	s, err := pdf.GetString(r, info["Title"])
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(s.AsTextString()))
}
