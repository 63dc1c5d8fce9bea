package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/eduprompt/api/internal/domain"
)

// Tx collects writes staged during one unit of work. Repos expose Tx*
// methods that append to it; nothing touches the table until Commit.
type Tx struct {
	items []types.TransactWriteItem
}

// Add stages a write for the transaction.
func (t *Tx) Add(item types.TransactWriteItem) {
	t.items = append(t.items, item)
}

// TxWriter runs a unit of work atomically via DynamoDB TransactWriteItems.
// The callback stages writes on the Tx it receives; if it returns an error,
// nothing is written. All staged writes commit or fail as one.
type TxWriter struct {
	client *dynamodb.Client
}

func NewTxWriter(client *dynamodb.Client) *TxWriter {
	return &TxWriter{client: client}
}

func (w *TxWriter) Execute(ctx context.Context, fn func(tx *Tx) error) error {
	tx := &Tx{}
	if err := fn(tx); err != nil {
		return err
	}
	if len(tx.items) == 0 {
		return nil
	}
	if _, err := w.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: tx.items,
	}); err != nil {
		return fmt.Errorf("transaction failed: %v: %w", err, domain.ErrInternal)
	}
	return nil
}
