package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	// Credential and session lifecycle.
	ErrIncorrectPassword    = errors.New("incorrect password")
	ErrInactiveAccount      = errors.New("account is inactive")
	ErrSessionAlreadyActive = errors.New("session already active")
	ErrInvalidSession       = errors.New("invalid session")
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")
	ErrRequiredToken        = errors.New("session token required")
	ErrRequiredRefresh      = errors.New("refresh token required")
	ErrExpiredToken         = errors.New("expired token")
	ErrInvalidToken         = errors.New("invalid token")

	// Verification codes.
	ErrInvalidCode = errors.New("invalid verification code")
	ErrExpiredCode = errors.New("expired verification code")

	// Registration conflicts.
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")

	// ErrEmailDelivery marks a failed email dispatch after the database work
	// already committed. Callers may retry the notification alone.
	ErrEmailDelivery = errors.New("email delivery failed")

	// Generic kinds.
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrBadRequest = errors.New("bad request")
	ErrInternal   = errors.New("internal error")
)
