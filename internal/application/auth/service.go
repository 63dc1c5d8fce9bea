package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eduprompt/api/internal/domain"
	"github.com/eduprompt/api/internal/pkg/code"
	"github.com/eduprompt/api/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

const (
	activationSubject    = "Activate your EduPrompt account"
	passwordResetSubject = "Reset your EduPrompt password"
	emailChangeSubject   = "Confirm your new EduPrompt email"

	activationBody    = `<p>Welcome to EduPrompt. Your activation code is <strong>%s</strong>. It expires in 30 minutes.</p>`
	passwordResetBody = `<p>Your password reset code is <strong>%s</strong>. It expires in 30 minutes. If you did not request this, ignore this email.</p>`
	emailChangeBody   = `<p>Your email change code is <strong>%s</strong>. It expires in 30 minutes.</p>`
)

// Service runs the verification code workflows: account activation,
// password recovery and email change.
type Service interface {
	SendActivationCode(ctx context.Context, userID, email string) error
	ResendActivationCode(ctx context.Context, email string) error
	ValidateAccountActivationCode(ctx context.Context, codeValue string) error

	SendPasswordResetCode(ctx context.Context, email string) error
	ValidatePasswordResetCode(ctx context.Context, codeValue string) (string, error)
	ResetPassword(ctx context.Context, userID, newPassword string) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error

	SendEmailChangeCode(ctx context.Context, userID, newEmail string) error
	ValidateEmailChangeCode(ctx context.Context, userID, codeValue, newEmail string) error
}

type codeStore interface {
	Create(ctx context.Context, v *domain.VerificationCode) error
	FindByCode(ctx context.Context, codeValue string, codeType domain.CodeType) (*domain.VerificationCode, error)
	CountByUser(ctx context.Context, userID string, codeType domain.CodeType) (int, error)
	DeleteByType(ctx context.Context, userID string, codeType domain.CodeType) error
	DeleteAllForUser(ctx context.Context, userID string) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type mailer interface {
	Send(subject string, recipients []string, htmlBody string) error
}

type service struct {
	codes   codeStore
	users   userStore
	mail    mailer
	codeTTL time.Duration
}

type ServiceDeps struct {
	Codes   codeStore
	Users   userStore
	Mail    mailer
	CodeTTL time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		codes:   deps.Codes,
		users:   deps.Users,
		mail:    deps.Mail,
		codeTTL: deps.CodeTTL,
	}
}

// issue replaces any outstanding codes of the same type before persisting a
// fresh one, so at most one code per (user, type) is ever valid.
func (s *service) issue(ctx context.Context, userID, email string, codeType domain.CodeType, subject, bodyFmt string) error {
	n, err := s.codes.CountByUser(ctx, userID, codeType)
	if err != nil {
		return err
	}
	if n > 0 {
		if err := s.codes.DeleteByType(ctx, userID, codeType); err != nil {
			return err
		}
	}

	vc, err := domain.NewVerificationCode(id.New(), code.Generate(), codeType, userID, time.Now().UTC().Add(s.codeTTL))
	if err != nil {
		return err
	}
	if err := s.codes.Create(ctx, vc); err != nil {
		return err
	}

	if err := s.mail.Send(subject, []string{email}, fmt.Sprintf(bodyFmt, vc.Code)); err != nil {
		return fmt.Errorf("sending %s code to %s: %w", codeType, email, domain.ErrEmailDelivery)
	}
	return nil
}

// lookup resolves a submitted code value. Expired codes are reported but left
// in place; the table TTL reaps them.
func (s *service) lookup(ctx context.Context, codeValue string, codeType domain.CodeType) (*domain.VerificationCode, error) {
	vc, err := s.codes.FindByCode(ctx, codeValue, codeType)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("resolving %s code: %w", codeType, domain.ErrInvalidCode)
	} else if err != nil {
		return nil, err
	}
	if code.IsExpired(vc, time.Now().UTC()) {
		return nil, fmt.Errorf("resolving %s code: %w", codeType, domain.ErrExpiredCode)
	}
	return vc, nil
}

func (s *service) SendActivationCode(ctx context.Context, userID, email string) error {
	return s.issue(ctx, userID, email, domain.CodeEmailVerification, activationSubject, activationBody)
}

func (s *service) ResendActivationCode(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u.AccountStatus == domain.AccountActive {
		return fmt.Errorf("account %s is already active: %w", u.UserID, domain.ErrConflict)
	}
	return s.SendActivationCode(ctx, u.UserID, u.Email)
}

func (s *service) ValidateAccountActivationCode(ctx context.Context, codeValue string) error {
	vc, err := s.lookup(ctx, codeValue, domain.CodeEmailVerification)
	if err != nil {
		return err
	}
	if err := s.users.Update(ctx, vc.UserID, map[string]interface{}{
		"account_status": domain.AccountActive,
	}); err != nil {
		return err
	}
	// Activation is the end of onboarding; clear every pending code the user
	// accumulated, not just activation ones.
	return s.codes.DeleteAllForUser(ctx, vc.UserID)
}

func (s *service) SendPasswordResetCode(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.issue(ctx, u.UserID, u.Email, domain.CodePasswordReset, passwordResetSubject, passwordResetBody)
}

func (s *service) ValidatePasswordResetCode(ctx context.Context, codeValue string) (string, error) {
	vc, err := s.lookup(ctx, codeValue, domain.CodePasswordReset)
	if err != nil {
		return "", err
	}
	if err := s.codes.DeleteByType(ctx, vc.UserID, domain.CodePasswordReset); err != nil {
		return "", err
	}
	return vc.UserID, nil
}

func (s *service) ResetPassword(ctx context.Context, userID, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	return s.users.Update(ctx, userID, map[string]interface{}{
		"password_hash": string(hash),
	})
}

func (s *service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("password change rejected: %w", domain.ErrIncorrectPassword)
	}
	return s.ResetPassword(ctx, userID, newPassword)
}

func (s *service) SendEmailChangeCode(ctx context.Context, userID, newEmail string) error {
	if _, err := s.users.Get(ctx, userID); err != nil {
		return err
	}
	if err := s.ensureEmailFree(ctx, newEmail); err != nil {
		return err
	}
	// The code goes to the address being claimed, proving the user controls it.
	return s.issue(ctx, userID, newEmail, domain.CodeEmailReset, emailChangeSubject, emailChangeBody)
}

func (s *service) ValidateEmailChangeCode(ctx context.Context, userID, codeValue, newEmail string) error {
	vc, err := s.lookup(ctx, codeValue, domain.CodeEmailReset)
	if err != nil {
		return err
	}
	// The code must belong to the caller; someone else's code is as good as
	// no code.
	if vc.UserID != userID {
		return fmt.Errorf("email change code does not belong to user %s: %w", userID, domain.ErrInvalidCode)
	}
	// Re-checked here: another account may have claimed the address between
	// issue and validation.
	if err := s.ensureEmailFree(ctx, newEmail); err != nil {
		return err
	}
	if err := s.users.Update(ctx, vc.UserID, map[string]interface{}{
		"email": newEmail,
	}); err != nil {
		return err
	}
	return s.codes.DeleteByType(ctx, vc.UserID, domain.CodeEmailReset)
}

func (s *service) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return fmt.Errorf("email %s is already registered: %w", email, domain.ErrEmailTaken)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}
