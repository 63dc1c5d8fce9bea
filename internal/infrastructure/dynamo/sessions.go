package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/eduprompt/api/internal/domain"
)

// SessionRepo provides typed DynamoDB operations for the sessions table.
//
// Lookups only return active sessions; an invalidated session is
// invisible to lookups, which is what makes a second logout on the same
// token fail. The "at most one active session per token"
// rule is checked at the service layer (find-then-create); enforcing it here
// would take a conditional put keyed on the token GSI, which is deliberately
// not done to preserve the observed login semantics.
type SessionRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewSessionRepo(client *dynamodb.Client, tableName string) *SessionRepo {
	return &SessionRepo{client: client, tableName: tableName}
}

func (r *SessionRepo) Create(ctx context.Context, s *domain.Session) error {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// FindByToken looks up the active session carrying the exact signed token
// value via the session_token GSI. Inactive sessions are filtered out.
func (r *SessionRepo) FindByToken(ctx context.Context, sessionToken string) (*domain.Session, error) {
	return r.queryActive(ctx, "session_token-index", fieldSessionToken, sessionToken)
}

// FindByRefreshDigest looks up the active session whose stored refresh-token
// digest matches. The raw refresh token never reaches the store.
func (r *SessionRepo) FindByRefreshDigest(ctx context.Context, digest string) (*domain.Session, error) {
	return r.queryActive(ctx, "refresh_token_hash-index", fieldRefreshTokenHash, digest)
}

// UpdateTokenPair is the rotation step: it replaces the session token, the
// refresh-token digest and the expiry in one update, making the previous
// refresh token permanently unusable.
func (r *SessionRepo) UpdateTokenPair(ctx context.Context, sessionID, newToken, newDigest string, newExpiresAt time.Time) error {
	return r.update(ctx, sessionID, map[string]interface{}{
		fieldSessionToken:     newToken,
		fieldRefreshTokenHash: newDigest,
		fieldExpiresAt:        newExpiresAt.UTC().Format(time.RFC3339),
	})
}

// Invalidate marks the session inactive. The record is kept for audit.
func (r *SessionRepo) Invalidate(ctx context.Context, sessionID string) error {
	return r.update(ctx, sessionID, map[string]interface{}{fieldActive: false})
}

func (r *SessionRepo) update(ctx context.Context, sessionID string, updates map[string]interface{}) error {
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("session_id", sessionID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}

func (r *SessionRepo) queryActive(ctx context.Context, index, attr, value string) (*domain.Session, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                aws.String(r.tableName),
		IndexName:                aws.String(index),
		KeyConditionExpression:   aws.String("#a = :v"),
		FilterExpression:         aws.String("active = :t"),
		ExpressionAttributeNames: map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
			":t": &types.AttributeValueMemberBOOL{Value: true},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("session not found: %w", domain.ErrNotFound)
	}
	var s domain.Session
	if err := attributevalue.UnmarshalMap(out.Items[0], &s); err != nil {
		return nil, err
	}
	return &s, nil
}
