package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/registry"
	"github.com/jonathan/portfolio-builder/internal/types"
	"go.uber.org/zap"
)

// components runs a hybrid query. When the marketplace cannot be read the
// static catalog is served instead.
func (s *Server) components(ctx context.Context, query func(*registry.HybridRegistry) ([]registry.HybridComponent, error)) ([]registry.HybridComponent, error) {
	out, err := query(s.hybrid)
	if err == nil {
		return orEmpty(out), nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	s.logger.Warn("marketplace unavailable, serving static catalog", zap.Error(err))
	out, err = query(registry.NewHybridRegistry(s.catalog, nil))
	return orEmpty(out), err
}

// handleListSections returns the section descriptors
func (s *Server) handleListSections(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]any{
		"sections": orEmpty(s.catalog.Sections()),
	})
}

// handleListSectionVariants returns static and marketplace variants of one section
func (s *Server) handleListSectionVariants(w http.ResponseWriter, r *http.Request) {
	section := types.SectionType(r.PathValue("section"))
	if !section.Valid() {
		writeError(w, s.logger, &ErrValidation{Field: "section", Message: "unknown section type " + string(section)})
		return
	}

	variants, err := s.components(r.Context(), func(h *registry.HybridRegistry) ([]registry.HybridComponent, error) {
		return h.ComponentsForSection(r.Context(), section)
	})
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	writeJSON(w, s.logger, http.StatusOK, map[string]any{
		"section":  section,
		"variants": variants,
		"count":    len(variants),
	})
}

// handlePopularVariants returns popular variants across both sources
func (s *Server) handlePopularVariants(w http.ResponseWriter, r *http.Request) {
	variants, err := s.components(r.Context(), func(h *registry.HybridRegistry) ([]registry.HybridComponent, error) {
		return h.Popular(r.Context())
	})
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, map[string]any{
		"variants": variants,
		"count":    len(variants),
	})
}

// handleSearchVariants searches name, description and tags across both sources
func (s *Server) handleSearchVariants(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, s.logger, &ErrValidation{Field: "q", Message: "query is required"})
		return
	}

	variants, err := s.components(r.Context(), func(h *registry.HybridRegistry) ([]registry.HybridComponent, error) {
		return h.Search(r.Context(), query)
	})
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, map[string]any{
		"query":    query,
		"variants": variants,
		"count":    len(variants),
	})
}

// handleListColorSchemes returns the color schemes
func (s *Server) handleListColorSchemes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]any{
		"colorSchemes": orEmpty(s.catalog.ColorSchemes()),
	})
}

// handleListPresets returns the presets
func (s *Server) handleListPresets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]any{
		"presets": orEmpty(s.catalog.Presets()),
	})
}

// orEmpty keeps empty lists from encoding as null.
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
