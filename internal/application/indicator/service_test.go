package indicator

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/eduprompt/api/internal/domain"
	"github.com/eduprompt/api/internal/infrastructure/dynamo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockIndicatorStore struct{ mock.Mock }

func (m *mockIndicatorStore) GetByUser(ctx context.Context, userID string) (*domain.Indicator, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Indicator), args.Error(1)
}

func (m *mockIndicatorStore) TxPut(ind *domain.Indicator) (types.TransactWriteItem, error) {
	args := m.Called(ind)
	return args.Get(0).(types.TransactWriteItem), args.Error(1)
}

type fakeTxRunner struct {
	committed bool
}

func (f *fakeTxRunner) Execute(ctx context.Context, fn func(tx *dynamo.Tx) error) error {
	if err := fn(&dynamo.Tx{}); err != nil {
		return err
	}
	f.committed = true
	return nil
}

func TestCreateForUser_Success(t *testing.T) {
	store := new(mockIndicatorStore)
	tx := &fakeTxRunner{}

	store.On("GetByUser", mock.Anything, "user-1").Return(nil, domain.ErrNotFound)
	store.On("TxPut", mock.MatchedBy(func(ind *domain.Indicator) bool {
		return ind.UserID == "user-1"
	})).Return(types.TransactWriteItem{}, nil)

	svc := NewService(store, tx)
	ind, err := svc.CreateForUser(context.Background(), "user-1")

	require.NoError(t, err)
	assert.True(t, tx.committed)
	assert.Equal(t, "user-1", ind.UserID)
}

func TestCreateForUser_AlreadyExists(t *testing.T) {
	store := new(mockIndicatorStore)
	tx := &fakeTxRunner{}

	store.On("GetByUser", mock.Anything, "user-1").
		Return(&domain.Indicator{IndicatorID: "ind-1", UserID: "user-1"}, nil)

	svc := NewService(store, tx)
	_, err := svc.CreateForUser(context.Background(), "user-1")

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.False(t, tx.committed)
}
