// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
)

// CaptureSurface abstracts a headless rendering context. The underlying
// browser is launched once per pipeline run; each frame obtains its own
// isolated Page so frames never share mutable rendering state.
type CaptureSurface interface {
	// Open launches the browser with the given options.
	Open(ctx context.Context, opts SurfaceOptions) error

	// NewPage creates an isolated page (tab) in the running browser.
	NewPage(ctx context.Context) (Page, error)

	// Close shuts down the browser and releases all pages.
	Close() error
}

// Page is a single isolated rendering page.
type Page interface {
	// SetViewport sets the page viewport in CSS pixels.
	SetViewport(width, height int) error

	// Navigate loads the specified URL and waits for the load event.
	Navigate(url string) error

	// Evaluate runs a script in the page and discards the result.
	Evaluate(script string) error

	// SetSyntheticTime makes every subsequent in-page read of elapsed time
	// and every animation-frame timestamp equal real time plus offsetMs.
	// Must be called only after the content has finished its own
	// initialization, so that any start-time reference it captured is real.
	SetSyntheticTime(offsetMs int) error

	// WaitAnimationFrame blocks until the page has run exactly one
	// animation-frame callback cycle.
	WaitAnimationFrame() error

	// Screenshot captures the page as PNG data.
	Screenshot() ([]byte, error)

	// Close releases the page.
	Close() error
}

// SurfaceOptions configures browser launch settings.
type SurfaceOptions struct {
	Headless   bool
	ChromePath string
	// NavTimeoutMs bounds content loading per page. Zero means the
	// adapter default.
	NavTimeoutMs int
}
