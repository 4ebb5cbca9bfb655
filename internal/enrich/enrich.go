// Package enrich fills in project previews from the projects' live pages.
package enrich

import (
	"context"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/fetch"
	"github.com/jonathan/portfolio-builder/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of project pages fetched at once
const DefaultConcurrency = 4

// PageSource fetches a processed page
type PageSource interface {
	Fetch(ctx context.Context, url string) (*fetch.Page, error)
}

// Describer writes a short description for a project from its page text
type Describer interface {
	Describe(ctx context.Context, name, pageText string) (string, error)
}

// DescriberFunc adapts a function to Describer
type DescriberFunc func(ctx context.Context, name, pageText string) (string, error)

// Describe implements Describer.
func (f DescriberFunc) Describe(ctx context.Context, name, pageText string) (string, error) {
	return f(ctx, name, pageText)
}

// Enricher adds preview images and descriptions to projects that link a live
// site but carry no image.
type Enricher struct {
	pages       PageSource
	describer   Describer
	concurrency int
	logger      *zap.Logger
}

// Option configures an Enricher
type Option func(*Enricher)

// WithDescriber sets a fallback for pages that advertise no description
func WithDescriber(d Describer) Option {
	return func(e *Enricher) { e.describer = d }
}

// WithConcurrency sets the number of concurrent page fetches
func WithConcurrency(n int) Option {
	return func(e *Enricher) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Enricher) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Enricher reading pages from pages
func New(pages PageSource, opts ...Option) *Enricher {
	e := &Enricher{
		pages:       pages,
		concurrency: DefaultConcurrency,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result summarizes an enrichment run
type Result struct {
	Candidates int
	Enriched   int
	Failed     int
}

// EnrichProjects returns a copy of doc whose eligible projects have their image
// and, when empty, their description filled from the live page. Per-project
// failures are logged and skipped; only context cancellation is returned.
func (e *Enricher) EnrichProjects(ctx context.Context, doc *types.ResumeDocument) (*types.ResumeDocument, Result, error) {
	var result Result
	if doc == nil {
		return &types.ResumeDocument{}, result, nil
	}

	out := *doc
	out.Projects = append([]types.Project(nil), doc.Projects...)

	outcomes := make([]bool, len(out.Projects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i := range out.Projects {
		project := &out.Projects[i]
		if !eligible(*project) {
			continue
		}
		result.Candidates++

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = e.enrichProject(gctx, project)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, result, err
	}

	for i, ok := range outcomes {
		if !eligible(doc.Projects[i]) {
			continue
		}
		if ok {
			result.Enriched++
		} else {
			result.Failed++
		}
	}

	e.logger.Info("project previews enriched",
		zap.Int("candidates", result.Candidates),
		zap.Int("enriched", result.Enriched),
		zap.Int("failed", result.Failed))
	return &out, result, nil
}

// enrichProject mutates project in place. It reports whether anything was added.
func (e *Enricher) enrichProject(ctx context.Context, project *types.Project) bool {
	liveURL := normalizeURL(project.URLs.Live)
	page, err := e.pages.Fetch(ctx, liveURL)
	if err != nil {
		e.logger.Warn("failed to fetch project page",
			zap.String("project", project.Name),
			zap.String("url", liveURL),
			zap.Error(err))
		return false
	}

	changed := false
	if page.Metadata.Image != "" {
		project.URLs.Image = page.Metadata.Image
		changed = true
	}

	if project.Description == "" {
		switch {
		case page.Metadata.Description != "":
			project.Description = page.Metadata.Description
			changed = true
		case e.describer != nil && page.Text != "":
			description, err := e.describer.Describe(ctx, project.Name, page.Text)
			if err != nil {
				e.logger.Warn("failed to describe project",
					zap.String("project", project.Name), zap.Error(err))
			} else if description != "" {
				project.Description = description
				changed = true
			}
		}
	}

	return changed
}

func eligible(p types.Project) bool {
	return strings.TrimSpace(p.URLs.Live) != "" && strings.TrimSpace(p.URLs.Image) == ""
}

func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}
