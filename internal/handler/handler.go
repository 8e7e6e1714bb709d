package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// ErrorResponse is the JSON error envelope shared by all API endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Replies carry Korean text, so the charset is stated explicitly.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	// Once the header is out an encode failure can only truncate the body.
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Warn().Int("status", status).Str("reason", message).Msg("request rejected")
	writeJSON(w, status, ErrorResponse{Error: message})
}
