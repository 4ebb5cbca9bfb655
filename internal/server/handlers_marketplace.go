package server

import (
	"net/http"

	"github.com/jonathan/portfolio-builder/internal/marketplace"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// marketplaceActor returns the caller as an actor, or false after writing an
// error when the marketplace is disabled or the caller cannot be resolved.
func (s *Server) marketplaceActor(w http.ResponseWriter, r *http.Request) (marketplace.Actor, bool) {
	if s.marketplace == nil {
		writeError(w, s.logger, &ErrUnavailable{Feature: "marketplace"})
		return marketplace.Actor{}, false
	}
	actor, err := s.actor(r)
	if err != nil {
		writeError(w, s.logger, err)
		return marketplace.Actor{}, false
	}
	return actor, true
}

// handleListMarketplaceComponents returns the approved components
func (s *Server) handleListMarketplaceComponents(w http.ResponseWriter, r *http.Request) {
	if s.marketplace == nil {
		writeError(w, s.logger, &ErrUnavailable{Feature: "marketplace"})
		return
	}

	components, err := s.marketplace.Approved(r.Context())
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, map[string]any{
		"components": orEmpty(components),
		"count":      len(components),
	})
}

// handleSubmitComponent stores a community submission as pending
func (s *Server) handleSubmitComponent(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.marketplaceActor(w, r)
	if !ok {
		return
	}

	var req types.SubmitComponentRequest
	if !decodeBody(w, r, s.logger, &req) {
		return
	}

	component, err := s.marketplace.Submit(r.Context(), actor, &req)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, s.logger, http.StatusCreated, component)
}

// handleListPendingComponents returns submissions awaiting review. Admin only.
func (s *Server) handleListPendingComponents(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.marketplaceActor(w, r)
	if !ok {
		return
	}

	pending, err := s.marketplace.ListPending(r.Context(), actor)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, map[string]any{
		"components": orEmpty(pending),
		"count":      len(pending),
	})
}

// handleReviewComponent approves or rejects a pending submission. Admin only.
func (s *Server) handleReviewComponent(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.marketplaceActor(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	var req types.ReviewComponentRequest
	if !decodeBody(w, r, s.logger, &req) {
		return
	}

	component, err := s.marketplace.Review(r.Context(), actor, id, &req)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, component)
}

// handleInstallComponent records an install of an approved component
func (s *Server) handleInstallComponent(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.marketplaceActor(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	result, err := s.marketplace.Install(r.Context(), actor, id)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, result)
}

// handleRateComponent records a 1-5 rating of an approved component
func (s *Server) handleRateComponent(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.marketplaceActor(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	var req types.RateComponentRequest
	if !decodeBody(w, r, s.logger, &req) {
		return
	}

	summary, err := s.marketplace.Rate(r.Context(), actor, id, &req)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, summary)
}
