package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/eduprompt/api/internal/domain"
	"github.com/eduprompt/api/internal/infrastructure/dynamo"
	"github.com/eduprompt/api/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	SignUp(ctx context.Context, req domain.SignUpRequest) (*domain.User, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUserName(ctx context.Context, userName string) (*domain.User, error)
	TxPut(u *domain.User) (types.TransactWriteItem, error)
}

type indicatorStore interface {
	TxPut(ind *domain.Indicator) (types.TransactWriteItem, error)
}

type txRunner interface {
	Execute(ctx context.Context, fn func(tx *dynamo.Tx) error) error
}

// codeIssuer dispatches the account activation code once the signup
// transaction has committed.
type codeIssuer interface {
	SendActivationCode(ctx context.Context, userID, email string) error
}

type eventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
}

type service struct {
	users      userStore
	indicators indicatorStore
	tx         txRunner
	activation codeIssuer
	events     eventPublisher
}

type ServiceDeps struct {
	Users      userStore
	Indicators indicatorStore
	Tx         txRunner
	Activation codeIssuer
	Events     eventPublisher // optional, best-effort
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:      deps.Users,
		indicators: deps.Indicators,
		tx:         deps.Tx,
		activation: deps.Activation,
		events:     deps.Events,
	}
}

// SignUp registers a new inactive account. The user record and its usage
// indicators are written in a single transaction; either both land or
// neither does. The activation email goes out only after the commit, and a
// delivery failure does not undo the registration.
func (s *service) SignUp(ctx context.Context, req domain.SignUpRequest) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email %s is already registered: %w", req.Email, domain.ErrEmailTaken)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if _, err := s.users.GetByUserName(ctx, req.UserName); err == nil {
		return nil, fmt.Errorf("username %s is already registered: %w", req.UserName, domain.ErrUsernameTaken)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	var u *domain.User
	err := s.tx.Execute(ctx, func(tx *dynamo.Tx) error {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}

		now := time.Now().UTC()
		u = &domain.User{
			UserID:        id.New(),
			UserName:      req.UserName,
			Email:         req.Email,
			PasswordHash:  string(hash),
			AccountStatus: domain.AccountInactive,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		userItem, err := s.users.TxPut(u)
		if err != nil {
			return err
		}
		tx.Add(userItem)

		ind := domain.NewIndicator(id.New(), u.UserID)
		indItem, err := s.indicators.TxPut(ind)
		if err != nil {
			return err
		}
		tx.Add(indItem)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.activation.SendActivationCode(ctx, u.UserID, u.Email); err != nil {
		// The account exists; the caller learns the email never went out and
		// can hit the resend endpoint.
		return u, fmt.Errorf("account %s created: %w", u.UserID, domain.ErrEmailDelivery)
	}

	if s.events != nil {
		if err := s.events.Publish(ctx, "user.registered", map[string]string{"user_id": u.UserID}); err != nil {
			slog.Warn("failed to publish user.registered event", "user_id", u.UserID, "err", err)
		}
	}
	return u, nil
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.Get(ctx, userID)
}
