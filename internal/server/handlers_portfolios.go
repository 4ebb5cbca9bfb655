package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/portfolio-builder/internal/db"
	"github.com/jonathan/portfolio-builder/internal/mapper"
	"github.com/jonathan/portfolio-builder/internal/registry"
	"github.com/jonathan/portfolio-builder/internal/resume"
	"github.com/jonathan/portfolio-builder/internal/server/middleware"
	"github.com/jonathan/portfolio-builder/internal/types"
	"go.uber.org/zap"
)

// resolver returns a resolver over the static catalog and the approved
// marketplace snapshot, or the static catalog alone when the marketplace fails.
func (s *Server) resolver(ctx context.Context) registry.Resolver {
	resolver, err := s.hybrid.Resolver(ctx)
	if err != nil {
		s.logger.Warn("marketplace unavailable, resolving against static catalog", zap.Error(err))
		return s.catalog
	}
	return resolver
}

// mapResume normalizes, optionally enriches and maps the resume of req.
func (s *Server) mapResume(ctx context.Context, req *types.ImportPortfolioRequest) (*types.SavePortfolioData, error) {
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}

	doc := resume.Normalize(&req.Resume)
	if req.EnrichPreviews && s.enricher != nil {
		enrichCtx, cancel := context.WithTimeout(ctx, s.enrichTimeout)
		enriched, _, err := s.enricher.EnrichProjects(enrichCtx, doc)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.logger.Warn("project enrichment timed out, mapping without previews", zap.Error(err))
		} else {
			doc = enriched
		}
	}

	preset := req.Preset
	if preset == "" {
		preset = s.defaultPreset
	}

	m := mapper.New(s.catalog, mapper.WithResolver(s.resolver(ctx)), mapper.WithClock(s.now))
	data, err := m.Map(doc, mapper.Options{
		Preset:      preset,
		Variants:    req.Variants,
		ColorScheme: req.ColorScheme,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return nil, err
	}
	s.metrics.PortfolioMapped(preset)
	return data, nil
}

// handlePreviewPortfolio maps a resume without saving it
func (s *Server) handlePreviewPortfolio(w http.ResponseWriter, r *http.Request) {
	var req types.ImportPortfolioRequest
	if !decodeBody(w, r, s.logger, &req) {
		return
	}

	data, err := s.mapResume(r.Context(), &req)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, data)
}

// handleImportPortfolio maps a resume and saves the result for the caller
func (s *Server) handleImportPortfolio(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, s.logger, &ErrInvalidCredentials{})
		return
	}

	var req types.ImportPortfolioRequest
	if !decodeBody(w, r, s.logger, &req) {
		return
	}

	data, err := s.mapResume(r.Context(), &req)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	portfolio, err := s.portfolios.CreatePortfolio(r.Context(), userID, data)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	s.logger.Info("portfolio imported",
		zap.String("portfolio_id", portfolio.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("sections", len(portfolio.Layout)))
	writeJSON(w, s.logger, http.StatusCreated, portfolio)
}

// handleListPortfolios lists the caller's portfolios
func (s *Server) handleListPortfolios(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, s.logger, &ErrInvalidCredentials{})
		return
	}

	portfolios, err := s.portfolios.ListPortfoliosByUser(r.Context(), userID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, map[string]any{
		"portfolios": orEmpty(portfolios),
		"count":      len(portfolios),
	})
}

// ownedPortfolio loads a portfolio of the caller. Missing and foreign
// portfolios both yield ErrPortfolioNotFound.
func (s *Server) ownedPortfolio(r *http.Request) (*db.Portfolio, error) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		return nil, &ErrInvalidCredentials{}
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		return nil, err
	}

	portfolio, err := s.portfolios.GetPortfolio(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if portfolio == nil || portfolio.UserID != userID {
		return nil, &ErrPortfolioNotFound{Ref: id.String()}
	}
	return portfolio, nil
}

// handleGetPortfolio returns one of the caller's portfolios
func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	portfolio, err := s.ownedPortfolio(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	portfolio.Layout = mapper.SortLayout(portfolio.Layout)
	writeJSON(w, s.logger, http.StatusOK, portfolio)
}

// handleUpdateLayout replaces the layout of one of the caller's portfolios.
// The layout must resolve and satisfy the section placement rules.
func (s *Server) handleUpdateLayout(w http.ResponseWriter, r *http.Request) {
	portfolio, err := s.ownedPortfolio(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	var req types.UpdateLayoutRequest
	if !decodeBody(w, r, s.logger, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, s.logger, validationError(err))
		return
	}
	if err := mapper.ValidateLayout(req.Layout, s.resolver(r.Context()), s.catalog.Sections()); err != nil {
		writeError(w, s.logger, err)
		return
	}

	updated, err := s.portfolios.UpdatePortfolioLayout(r.Context(), portfolio.ID, mapper.SortLayout(req.Layout), req.IsPublic)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if updated == nil {
		writeError(w, s.logger, &ErrPortfolioNotFound{Ref: portfolio.ID.String()})
		return
	}
	writeJSON(w, s.logger, http.StatusOK, updated)
}

// handleDeletePortfolio deletes one of the caller's portfolios
func (s *Server) handleDeletePortfolio(w http.ResponseWriter, r *http.Request) {
	portfolio, err := s.ownedPortfolio(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	deleted, err := s.portfolios.DeletePortfolio(r.Context(), portfolio.ID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if !deleted {
		writeError(w, s.logger, &ErrPortfolioNotFound{Ref: portfolio.ID.String()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetPublicPortfolio serves a public portfolio by slug without auth
func (s *Server) handleGetPublicPortfolio(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	portfolio, err := s.portfolios.GetPublicPortfolioBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if portfolio == nil {
		writeError(w, s.logger, &ErrPortfolioNotFound{Ref: slug})
		return
	}

	portfolio.Layout = activeLayout(portfolio.Layout)
	portfolio.UserID = uuid.Nil
	writeJSON(w, s.logger, http.StatusOK, portfolio)
}

// activeLayout returns the active components in render order.
func activeLayout(layout []types.PortfolioComponent) []types.PortfolioComponent {
	var active []types.PortfolioComponent
	for _, c := range mapper.SortLayout(layout) {
		if c.IsActive {
			active = append(active, c)
		}
	}
	return orEmpty(active)
}
