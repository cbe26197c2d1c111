// Package chromesurface provides a capture surface implementation using chromedp.
package chromesurface

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/chromedp"

	"github.com/user/sketchcast/pkg/ports"
)

// defaultNavTimeoutMs bounds content loading when the caller does not
// override it.
const defaultNavTimeoutMs = 15000

// Surface implements ports.CaptureSurface with a single shared Chrome
// process. Pages are isolated tabs inside that process.
type Surface struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc

	navTimeoutMs int

	mu     sync.Mutex
	opened bool
}

// New creates a new Surface.
func New() *Surface {
	return &Surface{}
}

// Open launches Chrome with the given options. The browser is shared by
// all pages until Close.
func (s *Surface) Open(ctx context.Context, opts ports.SurfaceOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opened {
		return fmt.Errorf("chromesurface: already open")
	}

	chromedpOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("hide-scrollbars", true),
	}

	if opts.Headless {
		// New headless mode renders closer to a real display.
		chromedpOpts = append(chromedpOpts, chromedp.Flag("headless", "new"))
	}

	chromePath := ResolveChromePath(opts.ChromePath)
	if chromePath == "" {
		return fmt.Errorf("chromesurface: chrome not found: install Chrome/Chromium or set CHROME_PATH")
	}
	chromedpOpts = append(chromedpOpts, chromedp.ExecPath(chromePath))

	// Flags for CI/container execution
	chromedpOpts = append(chromedpOpts,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("no-zygote", true),
	)

	s.navTimeoutMs = opts.NavTimeoutMs
	if s.navTimeoutMs <= 0 {
		s.navTimeoutMs = defaultNavTimeoutMs
	}

	s.allocCtx, s.allocCancel = chromedp.NewExecAllocator(ctx, chromedpOpts...)
	s.ctx, s.cancel = chromedp.NewContext(s.allocCtx)

	// Start the browser eagerly so a launch failure surfaces here rather
	// than on the first page.
	if err := chromedp.Run(s.ctx); err != nil {
		s.cancel()
		s.allocCancel()
		return fmt.Errorf("launch chrome: %w", err)
	}

	s.opened = true
	return nil
}

// NewPage creates an isolated tab in the running browser.
func (s *Surface) NewPage(ctx context.Context) (ports.Page, error) {
	s.mu.Lock()
	opened := s.opened
	s.mu.Unlock()

	if !opened {
		return nil, fmt.Errorf("chromesurface: surface not open")
	}

	pageCtx, pageCancel := chromedp.NewContext(s.ctx)

	// The tab context descends from the browser, not from the caller. The
	// caller's deadline (per-frame timeout, fail-fast cancellation) must
	// still bound every operation on the tab, so propagate it.
	bindCancel(ctx, pageCtx, pageCancel)

	return &chromePage{
		ctx:          pageCtx,
		cancel:       pageCancel,
		navTimeoutMs: s.navTimeoutMs,
	}, nil
}

// bindCancel cancels the page context as soon as the caller's context
// ends. The watcher exits with the page on normal teardown.
func bindCancel(caller, page context.Context, cancel context.CancelFunc) {
	go func() {
		select {
		case <-caller.Done():
			cancel()
		case <-page.Done():
		}
	}()
}

// Close shuts down the browser and all remaining pages.
func (s *Surface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.opened {
		return nil
	}
	s.opened = false

	if s.cancel != nil {
		s.cancel()
	}
	if s.allocCancel != nil {
		s.allocCancel()
	}
	return nil
}

// Ensure Surface implements ports.CaptureSurface
var _ ports.CaptureSurface = (*Surface)(nil)
