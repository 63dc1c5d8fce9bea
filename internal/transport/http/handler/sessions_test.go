package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eduprompt/api/internal/application/session"
	"github.com/eduprompt/api/internal/domain"
	jwtinfra "github.com/eduprompt/api/internal/infrastructure/jwt"
	"github.com/eduprompt/api/internal/transport/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSessionSvc struct{ mock.Mock }

func (m *mockSessionSvc) Login(ctx context.Context, req session.LoginRequest) (*session.TokenPair, error) {
	args := m.Called(ctx, req)
	if p, _ := args.Get(0).(*session.TokenPair); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionSvc) Refresh(ctx context.Context, refreshToken, oldSessionToken string) (*session.TokenPair, error) {
	args := m.Called(ctx, refreshToken, oldSessionToken)
	if p, _ := args.Get(0).(*session.TokenPair); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionSvc) Logout(ctx context.Context, sessionToken string) error {
	return m.Called(ctx, sessionToken).Error(0)
}

func (m *mockSessionSvc) Validate(ctx context.Context, bearerToken string) (*jwtinfra.Claims, error) {
	args := m.Called(ctx, bearerToken)
	if c, _ := args.Get(0).(*jwtinfra.Claims); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func postJSON(t *testing.T, h http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestLoginHandler_Success(t *testing.T) {
	svc := new(mockSessionSvc)
	svc.On("Login", mock.Anything, session.LoginRequest{Email: "ada@example.com", Password: "s3cret"}).
		Return(&session.TokenPair{AccessToken: "at", RefreshToken: "rt"}, nil)

	h := NewSessionHandler(svc)
	rr := postJSON(t, h.Login, "/v1/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "s3cret",
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	var env TokenEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Equal(t, "at", env.AccessToken)
	assert.Equal(t, "rt", env.RefreshToken)
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	svc := new(mockSessionSvc)
	svc.On("Login", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("login rejected: %w", domain.ErrIncorrectPassword))

	h := NewSessionHandler(svc)
	rr := postJSON(t, h.Login, "/v1/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLoginHandler_InactiveAccount(t *testing.T) {
	svc := new(mockSessionSvc)
	svc.On("Login", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("login rejected: %w", domain.ErrInactiveAccount))

	h := NewSessionHandler(svc)
	rr := postJSON(t, h.Login, "/v1/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "s3cret",
	})

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestLoginHandler_InvalidBody(t *testing.T) {
	h := NewSessionHandler(new(mockSessionSvc))

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLoginHandler_ValidationFailure(t *testing.T) {
	h := NewSessionHandler(new(mockSessionSvc))

	rr := postJSON(t, h.Login, "/v1/auth/login", map[string]string{
		"email":    "not-an-email",
		"password": "s3cret",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestRefreshHandler_MissingRefresh(t *testing.T) {
	svc := new(mockSessionSvc)
	svc.On("Refresh", mock.Anything, "", "old-token").
		Return(nil, fmt.Errorf("refresh rejected: %w", domain.ErrRequiredRefresh))

	h := NewSessionHandler(svc)
	rr := postJSON(t, h.Refresh, "/v1/auth/refresh-token", map[string]string{
		"session_token": "old-token",
	})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogoutHandler_Success(t *testing.T) {
	svc := new(mockSessionSvc)
	svc.On("Logout", mock.Anything, "the-token").Return(nil)

	h := NewSessionHandler(svc)
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.TokenKey, "the-token"))
	rr := httptest.NewRecorder()
	h.Logout(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestLogoutHandler_SecondCallRejected(t *testing.T) {
	svc := new(mockSessionSvc)
	svc.On("Logout", mock.Anything, "the-token").
		Return(fmt.Errorf("logout rejected: %w", domain.ErrInvalidSession))

	h := NewSessionHandler(svc)
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.TokenKey, "the-token"))
	rr := httptest.NewRecorder()
	h.Logout(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
