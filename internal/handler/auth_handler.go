package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"letsgo-store/internal/middleware"
	"letsgo-store/internal/model"
	"letsgo-store/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuthHandler attaches and detaches identities on the session. It is a
// shim over the session store, not an authentication system: there are no
// credentials, only a declared identity.
type AuthHandler struct {
	sessions session.Store
	logger   zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(sessions session.Store, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		logger:   logger.With().Str("handler", "auth").Logger(),
	}
}

type signInRequest struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// SignIn handles POST /api/auth/signin requests.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required", h.logger)
		return
	}

	sessionID := middleware.SessionID(r.Context())
	identity := &model.Identity{
		ID:    uuid.NewString(),
		Email: req.Email,
		Name:  strings.TrimSpace(req.Name),
	}
	if err := h.sessions.SaveIdentity(r.Context(), sessionID, identity); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to sign in", h.logger)
		return
	}

	h.logger.Info().Str("email", req.Email).Msg("session signed in")
	writeJSON(w, http.StatusOK, identity)
}

// SignOut handles POST /api/auth/signout requests.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	sessionID := middleware.SessionID(r.Context())
	if err := h.sessions.ClearIdentity(r.Context(), sessionID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to sign out", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
