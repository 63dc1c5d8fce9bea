package handler

import (
	"encoding/json"
	"net/http"

	"github.com/eduprompt/api/internal/application/auth"
	"github.com/eduprompt/api/internal/pkg/validate"
	"github.com/eduprompt/api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// EmailChangeHandler handles the authenticated email change flow. The
// confirmation code goes to the address being claimed.
type EmailChangeHandler struct {
	svc auth.Service
}

func NewEmailChangeHandler(svc auth.Service) *EmailChangeHandler {
	return &EmailChangeHandler{svc: svc}
}

func (h *EmailChangeHandler) Action(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	switch chi.URLParam(r, "action") {
	case "request":
		var req struct {
			NewEmail string `json:"new_email" validate:"required,email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := validate.Struct(&req); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if err := h.svc.SendEmailChangeCode(r.Context(), claims.UserID, req.NewEmail); err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "confirmation code sent"})
	case "confirm":
		var req struct {
			Code     string `json:"code" validate:"required,len=4"`
			NewEmail string `json:"new_email" validate:"required,email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := validate.Struct(&req); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if err := h.svc.ValidateEmailChangeCode(r.Context(), claims.UserID, req.Code, req.NewEmail); err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "email updated"})
	default:
		writeError(w, http.StatusBadRequest, "unknown action")
	}
}
