package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/eduprompt/api/internal/domain"
)

// IndicatorRepo provides typed DynamoDB operations for the per-user
// statistics aggregate. Creation only ever happens inside the signup
// transaction, so the write path is transactional-only.
type IndicatorRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewIndicatorRepo(client *dynamodb.Client, tableName string) *IndicatorRepo {
	return &IndicatorRepo{client: client, tableName: tableName}
}

func (r *IndicatorRepo) GetByUser(ctx context.Context, userID string) (*domain.Indicator, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("user_id-index"),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("indicator not found: %w", domain.ErrNotFound)
	}
	var ind domain.Indicator
	if err := attributevalue.UnmarshalMap(out.Items[0], &ind); err != nil {
		return nil, err
	}
	return &ind, nil
}

// TxPut stages the creation of an indicator inside a transactional unit of work.
func (r *IndicatorRepo) TxPut(ind *domain.Indicator) (types.TransactWriteItem, error) {
	item, err := attributevalue.MarshalMap(ind)
	if err != nil {
		return types.TransactWriteItem{}, fmt.Errorf("marshal indicator: %w", err)
	}
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(r.tableName),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(indicator_id)"),
		},
	}, nil
}
