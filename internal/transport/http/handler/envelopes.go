package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eduprompt/api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// TokenEnvelope wraps login and refresh responses.
type TokenEnvelope struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserEnvelope wraps single-user responses. The password hash never leaves
// the server.
type UserEnvelope struct {
	UserID        string `json:"user_id"`
	UserName      string `json:"user_name"`
	Email         string `json:"email"`
	TokenCoins    int    `json:"token_coins"`
	IsPremiumUser bool   `json:"is_premium_user"`
	AccountStatus string `json:"account_status"`
}

func toSafeUser(u *domain.User) *UserEnvelope {
	if u == nil {
		return nil
	}
	return &UserEnvelope{
		UserID:        u.UserID,
		UserName:      u.UserName,
		Email:         u.Email,
		TokenCoins:    u.TokenCoins,
		IsPremiumUser: u.IsPremiumUser,
		AccountStatus: u.AccountStatus,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// httpError maps domain sentinel errors onto HTTP status codes. Anything
// unrecognised is a 500 with a generic body so internal detail stays out of
// responses.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrIncorrectPassword),
		errors.Is(err, domain.ErrSessionAlreadyActive),
		errors.Is(err, domain.ErrInvalidSession),
		errors.Is(err, domain.ErrInvalidRefreshToken),
		errors.Is(err, domain.ErrRequiredToken),
		errors.Is(err, domain.ErrRequiredRefresh),
		errors.Is(err, domain.ErrExpiredToken),
		errors.Is(err, domain.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrInactiveAccount),
		errors.Is(err, domain.ErrExpiredCode):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidCode),
		errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrEmailDelivery):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
