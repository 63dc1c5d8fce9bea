package domain

import (
	"fmt"
	"time"
)

// CodeType identifies the follow-up action a verification code authorizes.
type CodeType string

const (
	CodeEmailVerification CodeType = "email_verification"
	CodePasswordReset     CodeType = "password_reset"
	CodeEmailReset        CodeType = "email_reset"
)

// CodeLength is the fixed length of every verification code.
const CodeLength = 4

// VerificationCode is a short, single-use code delivered by email.
// PK: code_id. ExpiresAt doubles as the DynamoDB TTL attribute.
type VerificationCode struct {
	CodeID    string    `json:"id" dynamodbav:"code_id"`
	Code      string    `json:"code" dynamodbav:"code"`
	Type      CodeType  `json:"type" dynamodbav:"type"`
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	ExpiresAt time.Time `json:"expires_at" dynamodbav:"expires_at,unixtime"`
}

// NewVerificationCode builds a VerificationCode, rejecting codes that are not
// exactly CodeLength characters.
func NewVerificationCode(codeID, code string, codeType CodeType, userID string, expiresAt time.Time) (*VerificationCode, error) {
	if len(code) != CodeLength {
		return nil, fmt.Errorf("code must be exactly %d characters: %w", CodeLength, ErrInvalidCode)
	}
	return &VerificationCode{
		CodeID:    codeID,
		Code:      code,
		Type:      codeType,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}, nil
}
