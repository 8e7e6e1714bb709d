package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"letsgo-store/internal/assistant"
	"letsgo-store/internal/middleware"
	"letsgo-store/internal/model"

	"github.com/rs/zerolog"
)

// ChatHandler handles assistant conversation requests.
type ChatHandler struct {
	assistant assistant.Service
	logger    zerolog.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(assistant assistant.Service, logger zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		assistant: assistant,
		logger:    logger.With().Str("handler", "chat").Logger(),
	}
}

// Chat handles POST /api/chat requests.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required", h.logger)
		return
	}

	sessionID := middleware.SessionID(r.Context())
	if sessionID == "" {
		writeError(w, http.StatusInternalServerError, "missing session", h.logger)
		return
	}

	reply, err := h.assistant.Chat(r.Context(), sessionID, req.Message)
	if err != nil {
		h.logger.Error().Err(err).Msg("chat turn failed")
		writeError(w, http.StatusInternalServerError, "failed to process message", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, reply)
}
