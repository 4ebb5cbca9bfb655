package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	html  string
	err   error
	calls atomic.Int32
}

func (s *stubRenderer) Render(_ context.Context, _ string) (string, error) {
	s.calls.Add(1)
	return s.html, s.err
}

func countingServer(t *testing.T, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func TestPageFetcher_CachesPages(t *testing.T) {
	server, hits := countingServer(t, `<html><head><meta property="og:image" content="/a.png"></head><body><main>Hello</main></body></html>`)
	fetcher := NewPageFetcher(PageFetcherConfig{})

	page, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/a.png", page.Metadata.Image)
	assert.Equal(t, "Hello", page.Text)

	_, err = fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())

	fetcher.Invalidate(server.URL)
	_, err = fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestPageFetcher_ReturnsCopies(t *testing.T) {
	server, _ := countingServer(t, `<html><head><title>T</title></head></html>`)
	fetcher := NewPageFetcher(PageFetcherConfig{})

	page, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	page.Metadata.Title = "mutated"

	again, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "T", again.Metadata.Title)
}

func TestPageFetcher_ErrorsNotCached(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	fetcher := NewPageFetcher(PageFetcherConfig{})
	for range 2 {
		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
	}
	assert.Equal(t, int32(2), hits.Load())
}

func TestPageFetcher_Renderer(t *testing.T) {
	shell := `<html><body><div id="root"></div></body></html>`
	rendered := `<html><head><meta property="og:description" content="Rendered"></head><body>App</body></html>`

	tests := []struct {
		name       string
		body       string
		renderer   *stubRenderer
		wantDesc   string
		wantRender bool
		wantCalls  int32
	}{
		{
			name:       "shell page is rendered",
			body:       shell,
			renderer:   &stubRenderer{html: rendered},
			wantDesc:   "Rendered",
			wantRender: true,
			wantCalls:  1,
		},
		{
			name:      "render failure keeps static page",
			body:      shell,
			renderer:  &stubRenderer{err: errors.New("no chrome")},
			wantCalls: 1,
		},
		{
			name:      "page with metadata skips browser",
			body:      `<html><head><meta property="og:description" content="Static"></head></html>`,
			renderer:  &stubRenderer{html: rendered},
			wantDesc:  "Static",
			wantCalls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := countingServer(t, tt.body)
			fetcher := NewPageFetcher(PageFetcherConfig{Renderer: tt.renderer})

			page, err := fetcher.Fetch(context.Background(), server.URL)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDesc, page.Metadata.Description)
			assert.Equal(t, tt.wantRender, page.Rendered)
			assert.Equal(t, tt.wantCalls, tt.renderer.calls.Load())
		})
	}
}

func TestNewChromeRenderer_DefaultTimeout(t *testing.T) {
	r := NewChromeRenderer(0)
	assert.Positive(t, r.Timeout)
	assert.Positive(t, r.Settle)
}
