package chromesurface

import (
	"context"
	"fmt"
	"time"

	cdpruntime "github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// chromePage is a single tab. Frames never share a page, so no locking is
// needed beyond what chromedp provides.
type chromePage struct {
	ctx          context.Context
	cancel       context.CancelFunc
	navTimeoutMs int
}

// SetViewport sets the page viewport in CSS pixels.
func (p *chromePage) SetViewport(width, height int) error {
	return chromedp.Run(p.ctx, chromedp.EmulateViewport(int64(width), int64(height)))
}

// Navigate loads the URL and waits for the load event, bounded by the
// surface's content-load deadline.
func (p *chromePage) Navigate(url string) error {
	navCtx, cancel := context.WithTimeout(p.ctx, time.Duration(p.navTimeoutMs)*time.Millisecond)
	defer cancel()

	if err := chromedp.Run(navCtx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

// Evaluate runs a script in the page, awaiting promises, and discards the
// result.
func (p *chromePage) Evaluate(script string) error {
	var res interface{}
	return chromedp.Run(p.ctx, chromedp.Evaluate(script, &res,
		func(params *cdpruntime.EvaluateParams) *cdpruntime.EvaluateParams {
			return params.WithAwaitPromise(true)
		}))
}

// syntheticTimeScript patches every in-page elapsed-time read and the
// animation-frame timestamp by a fixed offset. The content's own
// initialization has already run against real time, so any start-time
// reference it captured stays correct; only reads after this point are
// shifted.
const syntheticTimeScript = `(() => {
	const offset = %d;
	const realDateNow = Date.now.bind(Date);
	const realPerfNow = performance.now.bind(performance);
	Date.now = () => realDateNow() + offset;
	performance.now = () => realPerfNow() + offset;
	const realRAF = window.requestAnimationFrame.bind(window);
	window.requestAnimationFrame = (cb) => realRAF((ts) => cb(ts + offset));
})()`

// SetSyntheticTime applies the time offset patch. Callers must invoke this
// only after content initialization.
func (p *chromePage) SetSyntheticTime(offsetMs int) error {
	var res interface{}
	script := fmt.Sprintf(syntheticTimeScript, offsetMs)
	if err := chromedp.Run(p.ctx, chromedp.Evaluate(script, &res)); err != nil {
		return fmt.Errorf("set synthetic time: %w", err)
	}
	return nil
}

// WaitAnimationFrame blocks until the page has completed one
// animation-frame callback cycle, giving the content a chance to re-render
// at the injected time.
func (p *chromePage) WaitAnimationFrame() error {
	var done bool
	err := chromedp.Run(p.ctx, chromedp.Evaluate(
		`new Promise((resolve) => requestAnimationFrame(() => resolve(true)))`,
		&done,
		func(params *cdpruntime.EvaluateParams) *cdpruntime.EvaluateParams {
			return params.WithAwaitPromise(true)
		}))
	if err != nil {
		return fmt.Errorf("wait animation frame: %w", err)
	}
	return nil
}

// Screenshot captures the page as PNG data.
func (p *chromePage) Screenshot() ([]byte, error) {
	var buf []byte
	if err := chromedp.Run(p.ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}
	return buf, nil
}

// Close releases the tab.
func (p *chromePage) Close() error {
	p.cancel()
	return nil
}
