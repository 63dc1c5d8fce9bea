package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eduprompt/api/internal/config"
	"github.com/eduprompt/api/internal/domain"
	jwtinfra "github.com/eduprompt/api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	claims *jwtinfra.Claims
	err    error
}

func (s *stubValidator) Validate(_ context.Context, _ string) (*jwtinfra.Claims, error) {
	return s.claims, s.err
}

func okHandler(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestAuth_MissingHeader(t *testing.T) {
	v := &stubValidator{claims: &jwtinfra.Claims{UserID: "u1"}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	Auth(v)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_RejectedByValidator(t *testing.T) {
	v := &stubValidator{err: domain.ErrInvalidSession}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rr := httptest.NewRecorder()
	Auth(v)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_ValidToken_InjectsClaimsAndToken(t *testing.T) {
	v := &stubValidator{claims: &jwtinfra.Claims{UserID: "u1"}}

	var gotClaims *jwtinfra.Claims
	var gotToken string
	capture := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = ClaimsFromContext(r.Context())
		gotToken, _ = TokenFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rr := httptest.NewRecorder()
	Auth(v)(capture).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, gotClaims)
	assert.Equal(t, "u1", gotClaims.UserID)
	assert.Equal(t, "some-token", gotToken)
}

func TestSoftAuth_AcceptsExpiredToken(t *testing.T) {
	p, err := jwtinfra.NewProvider(&config.Config{JWTSecret: "test-secret", JWTExpiryMins: -1})
	require.NoError(t, err)
	signed, err := p.Sign("u1")
	require.NoError(t, err)

	var gotClaims *jwtinfra.Claims
	capture := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rr := httptest.NewRecorder()
	SoftAuth(p)(capture).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, gotClaims)
	assert.Equal(t, "u1", gotClaims.UserID)
}

func TestSoftAuth_RejectsBadSignature(t *testing.T) {
	p, err := jwtinfra.NewProvider(&config.Config{JWTSecret: "test-secret", JWTExpiryMins: 15})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rr := httptest.NewRecorder()
	SoftAuth(p)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
