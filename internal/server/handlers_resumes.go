package server

import (
	"net/http"

	"github.com/jonathan/portfolio-builder/internal/parsing"
	"go.uber.org/zap"
)

// ParseResumeRequest carries plain resume text
type ParseResumeRequest struct {
	Text string `json:"text"`
}

// handleParseResume converts plain resume text into a resume document
func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	if s.llm == nil {
		writeError(w, s.logger, &ErrUnavailable{Feature: "resume parsing"})
		return
	}

	var req ParseResumeRequest
	if !decodeBody(w, r, s.logger, &req) {
		return
	}

	doc, err := parsing.ParseResumeText(r.Context(), s.llm, req.Text)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	s.logger.Info("resume parsed",
		zap.Int("skills", len(doc.Skills)),
		zap.Int("work", len(doc.Work)),
		zap.Int("projects", len(doc.Projects)))
	writeJSON(w, s.logger, http.StatusOK, map[string]any{"resume": doc})
}
