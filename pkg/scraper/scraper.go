// Package scraper renders pages in a shared headless Chrome instance and
// extracts their visible text for LLM consumption.
package scraper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"go-jobscout-backend/pkg/logger"
)

const (
	userAgent   = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	loadTimeout = 30 * time.Second
)

// extractScript strips non-content elements and prefers the main content
// region, mirroring what a reader sees.
const extractScript = `(() => {
	document.querySelectorAll('script, style, nav, footer, header').forEach(el => el.remove());
	const main = document.querySelector('main') || document.querySelector('[role="main"]') || document.body;
	return main ? main.innerText : '';
})()`

// Renderer owns a single long-lived browser. Launch cost dominates page
// loads, so the browser is started lazily once and reused; each RenderText
// call gets its own isolated tab.
type Renderer struct {
	mu            sync.Mutex
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// browser returns the shared browser context, launching Chrome on first use.
func (r *Renderer) browser() (context.Context, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browserCtx != nil && r.browserCtx.Err() == nil {
		return r.browserCtx, nil
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Force the browser process to start now so later failures surface here
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	r.allocCancel = allocCancel
	r.browserCtx = browserCtx
	r.browserCancel = browserCancel
	return r.browserCtx, nil
}

// RenderText loads the URL in a fresh tab and returns the page's visible
// text with scripts, styles and chrome removed.
func (r *Renderer) RenderText(ctx context.Context, url string) (string, error) {
	parent, err := r.browser()
	if err != nil {
		return "", err
	}

	tabCtx, cancelTab := chromedp.NewContext(parent)
	defer cancelTab()

	runCtx, cancelRun := context.WithTimeout(tabCtx, loadTimeout)
	defer cancelRun()

	var text string
	err = chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(extractScript, &text),
	)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", url, err)
	}

	logger.Log.Debug("Rendered page text", "url", url, "chars", len(text))
	return text, nil
}

// Close releases the browser. Safe to call when nothing was ever launched.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browserCancel != nil {
		r.browserCancel()
		r.browserCancel = nil
	}
	if r.allocCancel != nil {
		r.allocCancel()
		r.allocCancel = nil
	}
	r.browserCtx = nil
}
