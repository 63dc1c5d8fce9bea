package indicator

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/eduprompt/api/internal/domain"
	"github.com/eduprompt/api/internal/infrastructure/dynamo"
	"github.com/eduprompt/api/internal/pkg/id"
)

// Service reads and repairs per-user usage indicators. The normal write path
// is the signup transaction; CreateForUser exists for accounts that predate
// indicator tracking.
type Service interface {
	GetByUser(ctx context.Context, userID string) (*domain.Indicator, error)
	CreateForUser(ctx context.Context, userID string) (*domain.Indicator, error)
}

type indicatorStore interface {
	GetByUser(ctx context.Context, userID string) (*domain.Indicator, error)
	TxPut(ind *domain.Indicator) (types.TransactWriteItem, error)
}

type txRunner interface {
	Execute(ctx context.Context, fn func(tx *dynamo.Tx) error) error
}

type service struct {
	indicators indicatorStore
	tx         txRunner
}

func NewService(indicators indicatorStore, tx txRunner) Service {
	return &service{indicators: indicators, tx: tx}
}

func (s *service) GetByUser(ctx context.Context, userID string) (*domain.Indicator, error) {
	return s.indicators.GetByUser(ctx, userID)
}

func (s *service) CreateForUser(ctx context.Context, userID string) (*domain.Indicator, error) {
	if _, err := s.indicators.GetByUser(ctx, userID); err == nil {
		return nil, fmt.Errorf("indicators already exist for user %s: %w", userID, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	ind := domain.NewIndicator(id.New(), userID)
	err := s.tx.Execute(ctx, func(tx *dynamo.Tx) error {
		item, err := s.indicators.TxPut(ind)
		if err != nil {
			return err
		}
		tx.Add(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ind, nil
}
