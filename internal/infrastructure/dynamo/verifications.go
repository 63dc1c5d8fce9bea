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

// VerificationCodeRepo manages short-lived verification codes.
// PK: code_id. GSIs: code-index (code + type) for validation lookups,
// user_id-index (user_id + type) for purge and count. The expires_at
// attribute doubles as the table TTL so stale codes age out on their own,
// independent of the purge-on-reissue policy.
type VerificationCodeRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewVerificationCodeRepo(client *dynamodb.Client, tableName string) *VerificationCodeRepo {
	return &VerificationCodeRepo{client: client, tableName: tableName}
}

func (r *VerificationCodeRepo) Create(ctx context.Context, v *domain.VerificationCode) error {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return fmt.Errorf("marshal verification code: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// FindByCode returns the code record matching the entered code value and
// type, or ErrNotFound.
func (r *VerificationCodeRepo) FindByCode(ctx context.Context, codeValue string, codeType domain.CodeType) (*domain.VerificationCode, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("code-index"),
		KeyConditionExpression: aws.String("#c = :c AND #t = :ty"),
		ExpressionAttributeNames: map[string]string{
			"#c": "code",
			"#t": "type",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":c":  &types.AttributeValueMemberS{Value: codeValue},
			":ty": &types.AttributeValueMemberS{Value: string(codeType)},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("verification code not found: %w", domain.ErrNotFound)
	}
	var v domain.VerificationCode
	if err := attributevalue.UnmarshalMap(out.Items[0], &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// CountByUser returns how many codes of the given type the user currently has.
func (r *VerificationCodeRepo) CountByUser(ctx context.Context, userID string, codeType domain.CodeType) (int, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("user_id-index"),
		KeyConditionExpression: aws.String("user_id = :uid AND #t = :ty"),
		ExpressionAttributeNames: map[string]string{
			"#t": "type",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
			":ty":  &types.AttributeValueMemberS{Value: string(codeType)},
		},
		Select: types.SelectCount,
	})
	if err != nil {
		return 0, err
	}
	return int(out.Count), nil
}

// DeleteByType removes every code of the given type held by the user.
func (r *VerificationCodeRepo) DeleteByType(ctx context.Context, userID string, codeType domain.CodeType) error {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("user_id-index"),
		KeyConditionExpression: aws.String("user_id = :uid AND #t = :ty"),
		ExpressionAttributeNames: map[string]string{
			"#t": "type",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
			":ty":  &types.AttributeValueMemberS{Value: string(codeType)},
		},
	})
	if err != nil {
		return err
	}
	return r.deleteItems(ctx, out.Items)
}

// DeleteAllForUser removes every code the user holds, across all types.
func (r *VerificationCodeRepo) DeleteAllForUser(ctx context.Context, userID string) error {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("user_id-index"),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return err
	}
	return r.deleteItems(ctx, out.Items)
}

func (r *VerificationCodeRepo) deleteItems(ctx context.Context, items []map[string]types.AttributeValue) error {
	for _, item := range items {
		idAttr, ok := item["code_id"].(*types.AttributeValueMemberS)
		if !ok {
			continue
		}
		if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(r.tableName),
			Key:       strKey("code_id", idAttr.Value),
		}); err != nil {
			return err
		}
	}
	return nil
}
