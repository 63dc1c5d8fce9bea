package domain

import "time"

// Session pairs a signed access-token value with the digest of its refresh
// token. Only the digest is ever stored; the raw refresh token is handed to
// the client once at creation and never persisted.
type Session struct {
	SessionID        string    `json:"id" dynamodbav:"session_id"`
	SessionToken     string    `json:"-" dynamodbav:"session_token"`
	RefreshTokenHash string    `json:"-" dynamodbav:"refresh_token_hash"`
	Active           bool      `json:"active" dynamodbav:"active"`
	CreatedAt        time.Time `json:"created" dynamodbav:"created_at"`
	ExpiresAt        time.Time `json:"expires_at" dynamodbav:"expires_at"`
}
