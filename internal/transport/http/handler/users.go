package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eduprompt/api/internal/application/user"
	"github.com/eduprompt/api/internal/domain"
	"github.com/eduprompt/api/internal/pkg/validate"
	"github.com/eduprompt/api/internal/transport/http/middleware"
)

// UserHandler handles registration and profile reads.
type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req domain.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	u, err := h.svc.SignUp(r.Context(), req)
	if err != nil {
		// The account may exist even though the activation email failed;
		// report that as a partial success so the client can offer a resend.
		if errors.Is(err, domain.ErrEmailDelivery) && u != nil {
			writeJSON(w, http.StatusCreated, MessageEnvelope{
				Message: "account created",
				Error:   "activation email could not be delivered",
			})
			return
		}
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, MessageEnvelope{Message: "account created, activation code sent"})
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	u, err := h.svc.Get(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSafeUser(u))
}
