package handler

import (
	"encoding/json"
	"net/http"

	"github.com/eduprompt/api/internal/application/session"
	"github.com/eduprompt/api/internal/pkg/validate"
	"github.com/eduprompt/api/internal/transport/http/middleware"
)

// SessionHandler handles login, token refresh, logout and session validation.
type SessionHandler struct {
	svc session.Service
}

func NewSessionHandler(svc session.Service) *SessionHandler {
	return &SessionHandler{svc: svc}
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req session.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	pair, err := h.svc.Login(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TokenEnvelope{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

func (h *SessionHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
		SessionToken string `json:"session_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	pair, err := h.svc.Refresh(r.Context(), req.RefreshToken, req.SessionToken)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TokenEnvelope{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

// Logout runs behind SoftAuth: the token signature has been checked but its
// session has not, and expiry is ignored.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tokenStr, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.Logout(r.Context(), tokenStr); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "logged out"})
}

// Validate reports whether the presented token belongs to a live session.
// It sits behind the strict auth middleware, so reaching the handler already
// proves validity.
func (h *SessionHandler) Validate(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"user_id": claims.UserID})
}
