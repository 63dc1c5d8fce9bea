package handler

import (
	"net/http"

	"github.com/eduprompt/api/internal/application/indicator"
	"github.com/eduprompt/api/internal/transport/http/middleware"
)

// IndicatorHandler exposes per-user usage indicators.
type IndicatorHandler struct {
	svc indicator.Service
}

func NewIndicatorHandler(svc indicator.Service) *IndicatorHandler {
	return &IndicatorHandler{svc: svc}
}

func (h *IndicatorHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	ind, err := h.svc.GetByUser(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ind)
}

// Create backfills an indicator record for accounts that predate indicator
// tracking. Normal accounts get theirs during signup.
func (h *IndicatorHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	ind, err := h.svc.CreateForUser(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ind)
}
