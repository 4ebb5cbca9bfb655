package fetch

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// DefaultPageCacheTTL is how long a fetched page's preview stays cached
const DefaultPageCacheTTL = time.Hour

// Page is the processed form of a fetched project page
type Page struct {
	URL      string
	Text     string
	Metadata Metadata
	Rendered bool
}

// PageFetcher fetches pages, extracts their text and preview metadata, and
// keeps the results in an in-memory TTL cache. Pages that look client-rendered
// are re-fetched through the Renderer when one is configured.
type PageFetcher struct {
	options  *Options
	renderer Renderer
	pages    *cache.Cache
	logger   *zap.Logger
}

// PageFetcherConfig holds configuration for the page fetcher.
type PageFetcherConfig struct {
	CacheTTL time.Duration
	Options  *Options
	Renderer Renderer
	Logger   *zap.Logger
}

// NewPageFetcher creates a new page fetcher.
func NewPageFetcher(config PageFetcherConfig) *PageFetcher {
	if config.Options == nil {
		config.Options = DefaultOptions()
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = DefaultPageCacheTTL
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &PageFetcher{
		options:  config.Options,
		renderer: config.Renderer,
		pages:    cache.New(config.CacheTTL, 2*config.CacheTTL),
		logger:   config.Logger,
	}
}

// Fetch returns the processed page for urlStr, from cache when fresh.
// Failures are not cached.
func (f *PageFetcher) Fetch(ctx context.Context, urlStr string) (*Page, error) {
	if cached, ok := f.pages.Get(urlStr); ok {
		page := *cached.(*Page)
		return &page, nil
	}

	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		return nil, err
	}

	page, err := buildPage(urlStr, result.HTML)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to process page", Cause: err}
	}

	if f.renderer != nil && ShouldUseBrowser(page.Text, page.Metadata) {
		f.logger.Debug("rendering page in browser", zap.String("url", urlStr))
		html, err := f.renderer.Render(ctx, urlStr)
		if err != nil {
			f.logger.Warn("browser rendering failed, using static HTML",
				zap.String("url", urlStr), zap.Error(err))
		} else if rendered, err := buildPage(urlStr, html); err == nil {
			rendered.Rendered = true
			page = rendered
		}
	}

	f.pages.Set(urlStr, page, cache.DefaultExpiration)
	out := *page
	return &out, nil
}

// Invalidate drops a cached page.
func (f *PageFetcher) Invalidate(urlStr string) {
	f.pages.Delete(urlStr)
}

func buildPage(urlStr, html string) (*Page, error) {
	text, err := ExtractMainText(html, DefaultTextSelectors())
	if err != nil {
		return nil, err
	}
	meta, err := ExtractMetadata(html, urlStr)
	if err != nil {
		return nil, err
	}
	return &Page{URL: urlStr, Text: text, Metadata: meta}, nil
}
