package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/eduprompt/api/internal/domain"
	jwtinfra "github.com/eduprompt/api/internal/infrastructure/jwt"
	"github.com/eduprompt/api/internal/pkg/id"
	pkgtoken "github.com/eduprompt/api/internal/pkg/token"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPair carries the signed access token and the raw refresh token.
// The raw refresh token crosses this boundary exactly once; only its digest
// is ever persisted.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken, oldSessionToken string) (*TokenPair, error)
	Logout(ctx context.Context, sessionToken string) error
	Validate(ctx context.Context, bearerToken string) (*jwtinfra.Claims, error)
}

type sessionStore interface {
	Create(ctx context.Context, s *domain.Session) error
	FindByToken(ctx context.Context, sessionToken string) (*domain.Session, error)
	UpdateTokenPair(ctx context.Context, sessionID, newToken, newDigest string, newExpiresAt time.Time) error
	Invalidate(ctx context.Context, sessionID string) error
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type tokenProvider interface {
	Sign(userID string) (string, error)
	Verify(tokenStr string, opts jwtinfra.VerifyOpts) (*jwtinfra.Claims, error)
}

type eventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
}

type service struct {
	sessionRepo sessionStore
	userRepo    userStore
	tokens      tokenProvider
	events      eventPublisher
	sessionTTL  time.Duration
}

type ServiceDeps struct {
	SessionRepo sessionStore
	UserRepo    userStore
	Tokens      tokenProvider
	Events      eventPublisher // optional, best-effort
	SessionTTL  time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		sessionRepo: deps.SessionRepo,
		userRepo:    deps.UserRepo,
		tokens:      deps.Tokens,
		events:      deps.Events,
		sessionTTL:  deps.SessionTTL,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*TokenPair, error) {
	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if u.AccountStatus == domain.AccountInactive {
		return nil, fmt.Errorf("login rejected: %w", domain.ErrInactiveAccount)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("login rejected: %w", domain.ErrIncorrectPassword)
	}

	accessToken, err := s.tokens.Sign(u.UserID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := pkgtoken.Generate()
	if err != nil {
		return nil, err
	}

	// Replay guard: a session already holding this exact signed token value
	// means something issued it before. Two independent signings with the same
	// claims inside the same second legitimately collide here; that weakness
	// is inherited behavior, kept as observed.
	if _, err := s.sessionRepo.FindByToken(ctx, accessToken); err == nil {
		return nil, fmt.Errorf("session already exists for this token: %w", domain.ErrSessionAlreadyActive)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	sess := &domain.Session{
		SessionID:        id.New(),
		SessionToken:     accessToken,
		RefreshTokenHash: pkgtoken.Hash(refreshToken),
		Active:           true,
		CreatedAt:        now,
		ExpiresAt:        now.Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken, oldSessionToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh rejected: %w", domain.ErrRequiredRefresh)
	}
	if oldSessionToken == "" {
		return nil, fmt.Errorf("refresh rejected: %w", domain.ErrRequiredToken)
	}

	// The store-side active flag gates the lookup, not signature freshness:
	// an expired access token still resolves its session.
	sess, err := s.sessionRepo.FindByToken(ctx, oldSessionToken)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("refresh rejected: %w", domain.ErrInvalidSession)
	} else if err != nil {
		return nil, err
	}
	if !pkgtoken.Compare(refreshToken, sess.RefreshTokenHash) {
		return nil, fmt.Errorf("refresh rejected: %w", domain.ErrInvalidRefreshToken)
	}

	claims, err := s.tokens.Verify(sess.SessionToken, jwtinfra.VerifyOpts{IgnoreExpiry: true})
	if err != nil {
		return nil, err
	}

	newToken, err := s.tokens.Sign(claims.UserID)
	if err != nil {
		return nil, err
	}
	newRefresh, err := pkgtoken.Generate()
	if err != nil {
		return nil, err
	}

	// Rotation: overwriting the stored digest makes the previous refresh
	// token permanently unusable.
	newExpiresAt := time.Now().UTC().Add(s.sessionTTL)
	if err := s.sessionRepo.UpdateTokenPair(ctx, sess.SessionID, newToken, pkgtoken.Hash(newRefresh), newExpiresAt); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: newToken, RefreshToken: newRefresh}, nil
}

// Logout tears down the session for a token that has already been
// soft-verified (signature checked, expiry ignored) by the transport layer.
// A second logout on the same token fails ErrInvalidSession because the
// lookup only sees active sessions.
func (s *service) Logout(ctx context.Context, sessionToken string) error {
	sess, err := s.sessionRepo.FindByToken(ctx, sessionToken)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("logout rejected: %w", domain.ErrInvalidSession)
	} else if err != nil {
		return err
	}
	if err := s.sessionRepo.Invalidate(ctx, sess.SessionID); err != nil {
		return err
	}
	if s.events != nil {
		if err := s.events.Publish(ctx, "session.revoked", map[string]string{"session_id": sess.SessionID}); err != nil {
			slog.Warn("failed to publish session.revoked event", "session_id", sess.SessionID, "err", err)
		}
	}
	return nil
}

func (s *service) Validate(ctx context.Context, bearerToken string) (*jwtinfra.Claims, error) {
	if bearerToken == "" {
		return nil, fmt.Errorf("validation rejected: %w", domain.ErrRequiredToken)
	}
	claims, err := s.tokens.Verify(bearerToken, jwtinfra.VerifyOpts{})
	if err != nil {
		return nil, err
	}
	if _, err := s.sessionRepo.FindByToken(ctx, bearerToken); errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("validation rejected: %w", domain.ErrInvalidSession)
	} else if err != nil {
		return nil, err
	}
	return claims, nil
}
