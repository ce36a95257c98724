package render

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
)

// Browser owns one headless Chrome process. It is launched once per
// run by the orchestrator, shared by that run's render calls, and must
// be closed on every exit path.
type Browser struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
}

// LaunchBrowser starts a headless Chrome instance. Launch failures
// surface here rather than on the first render.
func LaunchBrowser(ctx context.Context) (*Browser, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("failed to launch headless browser: %w", err)
	}

	return &Browser{ctx: browserCtx, cancel: cancel, allocCancel: allocCancel}, nil
}

// Close shuts the browser down and releases the process.
func (b *Browser) Close() {
	b.cancel()
	b.allocCancel()
}
