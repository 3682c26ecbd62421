package cli

import (
	"context"
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/podium/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered 4 surfaces (112ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// =============================================================================
// Observability Hooks
// =============================================================================

// logHooks reports library events at debug level.
type logHooks struct {
	logger *log.Logger
}

func installLogHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetRenderHooks(h)
	observability.SetCacheHooks(h)
	observability.SetDisplayHooks(h)
}

func (h logHooks) OnRaster(_ context.Context, page int, px image.Point, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("raster failed", "page", page+1, "px", px, "err", err)
		return
	}
	h.logger.Debug("rasterized", "page", page+1, "px", px, "took", d.Round(time.Microsecond))
}

func (h logHooks) OnComposite(_ context.Context, surface string, page int, d time.Duration) {
	h.logger.Debug("composited", "surface", surface, "page", page+1, "took", d.Round(time.Microsecond))
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnDisplaysChanged(_ context.Context, count int) {
	h.logger.Debug("displays changed", "count", count)
}

func (h logHooks) OnAssignment(_ context.Context, audience, console int) {
	h.logger.Debug("surfaces placed", "audience", audience, "console", console)
}
