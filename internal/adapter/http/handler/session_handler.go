package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/codehasanali/mywallet/internal/adapter/http/dto"
	"github.com/codehasanali/mywallet/internal/domain"
)

// SessionService stores the active username. The session only supplies a
// display label; there is no authentication behind it.
type SessionService interface {
	Login(ctx context.Context, username string) error
	Logout(ctx context.Context) error
	Current(ctx context.Context) (string, error)
}

// SessionHandler handles session requests.
type SessionHandler struct {
	sessions SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Login starts a session for a username.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := domain.ValidateUsername(req.Username); err != nil {
		writeError(w, mapDomainError(err), "invalid username", err.Error())
		return
	}

	if err := h.sessions.Login(r.Context(), req.Username); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to start session", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.SessionResponse{Username: req.Username})
}

// Logout ends the active session.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to end session", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Current returns the active session, if any.
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	username, err := h.sessions.Current(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "no active session", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SessionResponse{Username: username})
}
