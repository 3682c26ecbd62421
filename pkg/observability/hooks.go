// Package observability provides hooks for timing and diagnostics.
//
// Libraries in Podium report noteworthy events (a page was rasterized, the
// display set changed, a cache lookup missed) through small hook interfaces.
// Nothing is recorded unless a consumer registers an implementation; the CLI
// installs logging hooks when run with --verbose.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    observability.SetDisplayHooks(&myDisplayHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	img, err := r.Render(ctx, page, px)
//	observability.Render().OnRaster(ctx, page, px, time.Since(start), err)
package observability

import (
	"context"
	"image"
	"sync"
	"time"
)

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from document backends and the compositor.
type RenderHooks interface {
	// OnRaster records a single page being turned into pixels.
	OnRaster(ctx context.Context, page int, px image.Point, duration time.Duration, err error)

	// OnComposite records a full compositor pass for one surface
	// ("console", "audience" or "next").
	OnComposite(ctx context.Context, surface string, page int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Display Hooks
// =============================================================================

// DisplayHooks receives events from the display topology.
type DisplayHooks interface {
	// OnDisplaysChanged records a fresh enumeration.
	OnDisplaysChanged(ctx context.Context, count int)

	// OnAssignment records where the two windows ended up. A value of -1
	// means the window is not on any known display.
	OnAssignment(ctx context.Context, audience, console int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRaster(context.Context, int, image.Point, time.Duration, error) {}
func (NoopRenderHooks) OnComposite(context.Context, string, int, time.Duration)          {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopDisplayHooks is a no-op implementation of DisplayHooks.
type NoopDisplayHooks struct{}

func (NoopDisplayHooks) OnDisplaysChanged(context.Context, int) {}
func (NoopDisplayHooks) OnAssignment(context.Context, int, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	renderHooks  RenderHooks  = NoopRenderHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	displayHooks DisplayHooks = NoopDisplayHooks{}
	hooksMu      sync.RWMutex
)

// SetRenderHooks registers custom render hooks. Nil is ignored.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetDisplayHooks registers custom display hooks. Nil is ignored.
func SetDisplayHooks(h DisplayHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		displayHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Display returns the registered display hooks.
func Display() DisplayHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return displayHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
	cacheHooks = NoopCacheHooks{}
	displayHooks = NoopDisplayHooks{}
}
