package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eduprompt/api/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) SendActivationCode(ctx context.Context, userID, email string) error {
	return m.Called(ctx, userID, email).Error(0)
}

func (m *mockAuthSvc) ResendActivationCode(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockAuthSvc) ValidateAccountActivationCode(ctx context.Context, codeValue string) error {
	return m.Called(ctx, codeValue).Error(0)
}

func (m *mockAuthSvc) SendPasswordResetCode(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockAuthSvc) ValidatePasswordResetCode(ctx context.Context, codeValue string) (string, error) {
	args := m.Called(ctx, codeValue)
	return args.String(0), args.Error(1)
}

func (m *mockAuthSvc) ResetPassword(ctx context.Context, userID, newPassword string) error {
	return m.Called(ctx, userID, newPassword).Error(0)
}

func (m *mockAuthSvc) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	return m.Called(ctx, userID, currentPassword, newPassword).Error(0)
}

func (m *mockAuthSvc) SendEmailChangeCode(ctx context.Context, userID, newEmail string) error {
	return m.Called(ctx, userID, newEmail).Error(0)
}

func (m *mockAuthSvc) ValidateEmailChangeCode(ctx context.Context, userID, codeValue, newEmail string) error {
	return m.Called(ctx, userID, codeValue, newEmail).Error(0)
}

func emailConfirmRouter(svc *mockAuthSvc) http.Handler {
	h := NewEmailConfirmHandler(svc)
	r := chi.NewRouter()
	r.Post("/verify-email/{action}", h.Action)
	return r
}

func doPost(t *testing.T, router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestEmailConfirm_Validate_Success(t *testing.T) {
	svc := new(mockAuthSvc)
	svc.On("ValidateAccountActivationCode", mock.Anything, "aB3x").Return(nil)

	rr := doPost(t, emailConfirmRouter(svc), "/verify-email/validate", map[string]string{"code": "aB3x"})

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestEmailConfirm_Validate_UnknownCode(t *testing.T) {
	svc := new(mockAuthSvc)
	svc.On("ValidateAccountActivationCode", mock.Anything, "nope").
		Return(fmt.Errorf("resolving code: %w", domain.ErrInvalidCode))

	rr := doPost(t, emailConfirmRouter(svc), "/verify-email/validate", map[string]string{"code": "nope"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestEmailConfirm_Validate_ExpiredCode(t *testing.T) {
	svc := new(mockAuthSvc)
	svc.On("ValidateAccountActivationCode", mock.Anything, "aB3x").
		Return(fmt.Errorf("resolving code: %w", domain.ErrExpiredCode))

	rr := doPost(t, emailConfirmRouter(svc), "/verify-email/validate", map[string]string{"code": "aB3x"})

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestEmailConfirm_Resend_DeliveryFailure(t *testing.T) {
	svc := new(mockAuthSvc)
	svc.On("ResendActivationCode", mock.Anything, "ada@example.com").
		Return(fmt.Errorf("sending code: %w", domain.ErrEmailDelivery))

	rr := doPost(t, emailConfirmRouter(svc), "/verify-email/resend", map[string]string{"email": "ada@example.com"})

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestEmailConfirm_UnknownAction(t *testing.T) {
	rr := doPost(t, emailConfirmRouter(new(mockAuthSvc)), "/verify-email/destroy", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
