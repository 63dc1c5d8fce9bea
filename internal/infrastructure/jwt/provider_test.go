package jwtinfra

import (
	"testing"
	"time"

	"github.com/eduprompt/api/internal/config"
	"github.com/eduprompt/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, expiryMins int) *Provider {
	t.Helper()
	p, err := NewProvider(&config.Config{
		JWTSecret:     "test-signing-secret",
		JWTExpiryMins: expiryMins,
	})
	require.NoError(t, err)
	return p
}

func TestNewProvider_MissingSecret(t *testing.T) {
	_, err := NewProvider(&config.Config{})
	assert.Error(t, err)
}

func TestSignAndVerify_RoundTrip(t *testing.T) {
	p := newTestProvider(t, 15)

	signed, err := p.Sign("user-1")
	require.NoError(t, err)

	claims, err := p.Verify(signed, VerifyOpts{})
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestVerify_ExpiredToken(t *testing.T) {
	p := newTestProvider(t, 15)
	p.expiry = -time.Minute

	signed, err := p.Sign("user-1")
	require.NoError(t, err)

	p.expiry = 15 * time.Minute
	_, err = p.Verify(signed, VerifyOpts{})
	assert.ErrorIs(t, err, domain.ErrExpiredToken)
}

func TestVerify_ExpiredToken_IgnoreExpiry(t *testing.T) {
	p := newTestProvider(t, 15)
	p.expiry = -time.Minute

	signed, err := p.Sign("user-1")
	require.NoError(t, err)

	claims, err := p.Verify(signed, VerifyOpts{IgnoreExpiry: true})
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestVerify_WrongSecret(t *testing.T) {
	p := newTestProvider(t, 15)
	signed, err := p.Sign("user-1")
	require.NoError(t, err)

	other, err := NewProvider(&config.Config{JWTSecret: "a-different-secret", JWTExpiryMins: 15})
	require.NoError(t, err)

	_, err = other.Verify(signed, VerifyOpts{})
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	// A bad signature stays bad even when expiry is ignored.
	_, err = other.Verify(signed, VerifyOpts{IgnoreExpiry: true})
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	p := newTestProvider(t, 15)
	_, err := p.Verify("not-a-token", VerifyOpts{})
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
