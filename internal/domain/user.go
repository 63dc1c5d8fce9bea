package domain

import "time"

// AccountStatus values. A user starts inactive and becomes active once the
// email verification code is validated.
const (
	AccountActive   = "active"
	AccountInactive = "inactive"
)

type User struct {
	UserID        string    `json:"id" dynamodbav:"user_id"`
	UserName      string    `json:"user_name" dynamodbav:"user_name"`
	Email         string    `json:"email" dynamodbav:"email"`
	PasswordHash  string    `json:"-" dynamodbav:"password_hash"`
	TokenCoins    int       `json:"token_coins" dynamodbav:"token_coins"`
	IsPremiumUser bool      `json:"is_premium_user" dynamodbav:"is_premium_user"`
	AccountStatus string    `json:"account_status" dynamodbav:"account_status"`
	CreatedAt     time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt     time.Time `json:"updated" dynamodbav:"updated_at"`
}

type SignUpRequest struct {
	UserName string `json:"user_name" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}
