package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the minimum extracted text length to consider an HTTP
// fetch complete. Shorter pages are likely client-rendered.
const MinContentLength = 200

// ShouldUseBrowser reports whether a page looks like an unrendered SPA shell:
// very little text and no preview metadata.
func ShouldUseBrowser(extractedText string, meta Metadata) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength && meta.Image == "" && meta.Description == ""
}

// Renderer returns the fully rendered HTML of a page
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// ChromeRenderer renders pages in headless Chrome. Requires Chrome or
// Chromium to be installed.
type ChromeRenderer struct {
	Timeout time.Duration
	// Settle is how long to wait after body is ready for scripts to run.
	Settle time.Duration
}

// NewChromeRenderer creates a renderer with the given page timeout
func NewChromeRenderer(timeout time.Duration) *ChromeRenderer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ChromeRenderer{Timeout: timeout, Settle: 2 * time.Second}
}

// Render implements Renderer.
func (r *ChromeRenderer) Render(ctx context.Context, url string) (string, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, r.Timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(r.Settle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}
	return html, nil
}
