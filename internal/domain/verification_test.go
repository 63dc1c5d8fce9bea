package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVerificationCode(t *testing.T) {
	expires := time.Now().UTC().Add(30 * time.Minute)
	vc, err := NewVerificationCode("code-1", "aB3x", CodeEmailVerification, "user-1", expires)
	require.NoError(t, err)
	assert.Equal(t, "aB3x", vc.Code)
	assert.Equal(t, CodeEmailVerification, vc.Type)
	assert.Equal(t, expires, vc.ExpiresAt)
}

func TestNewVerificationCode_RejectsWrongLength(t *testing.T) {
	expires := time.Now().UTC().Add(30 * time.Minute)

	_, err := NewVerificationCode("code-1", "abc", CodePasswordReset, "user-1", expires)
	assert.ErrorIs(t, err, ErrInvalidCode)

	_, err = NewVerificationCode("code-1", "abcde", CodePasswordReset, "user-1", expires)
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestNewIndicator_StartsAtZero(t *testing.T) {
	ind := NewIndicator("ind-1", "user-1")
	assert.Equal(t, "user-1", ind.UserID)
	assert.Zero(t, ind.GeneratedResources)
	assert.Zero(t, ind.UsedTokens)
	assert.Nil(t, ind.LastGeneratedResource)
	assert.NoError(t, ind.Validate())
}
