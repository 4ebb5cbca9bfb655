package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// maxBodyBytes bounds decoded request bodies
const maxBodyBytes = 2 << 20

// errorBody is the JSON shape of every error response
type errorBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// writeError maps err to a status and writes it as JSON. Internal errors are
// logged and their message is not exposed.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := HTTPStatus(err)
	body := errorBody{Error: err.Error(), Details: errorDetails(err)}
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		logger.Error("request failed", zap.Int("status", status), zap.Error(err))
		if status == http.StatusInternalServerError {
			body = errorBody{Error: "internal server error"}
		}
	}
	writeJSON(w, logger, status, body)
}

// decodeBody decodes a JSON request body into dst. It writes a 400 response
// and returns false when the body is missing, oversized or malformed.
func decodeBody(w http.ResponseWriter, r *http.Request, logger *zap.Logger, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, logger, http.StatusRequestEntityTooLarge, errorBody{Error: "request body too large"})
			return false
		}
		writeError(w, logger, &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()})
		return false
	}
	return true
}
