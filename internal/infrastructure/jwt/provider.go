package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/eduprompt/api/internal/config"
	"github.com/eduprompt/api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the JWT payload fields.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// VerifyOpts controls token verification. IgnoreExpiry skips the expiry claim
// check while still verifying the signature; it exists for the logout flow,
// where an expired-but-real token must still identify its owner.
type VerifyOpts struct {
	IgnoreExpiry bool
}

// Provider signs and verifies HS256 JWTs.
type Provider struct {
	secret []byte
	expiry time.Duration
}

func NewProvider(cfg *config.Config) (*Provider, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	return &Provider{secret: []byte(cfg.JWTSecret), expiry: cfg.JWTExpiry()}, nil
}

// Sign issues a token embedding the user id, valid for the configured expiry.
func (p *Provider) Sign(userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(p.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// Verify checks the token signature and, unless opts.IgnoreExpiry is set, its
// expiry. Expired tokens surface domain.ErrExpiredToken; any other
// verification failure surfaces domain.ErrInvalidToken.
func (p *Provider) Verify(tokenStr string, opts VerifyOpts) (*Claims, error) {
	parserOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if opts.IgnoreExpiry {
		parserOpts = append(parserOpts, jwt.WithoutClaimsValidation())
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return p.secret, nil
	}, parserOpts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("token expired: %w", domain.ErrExpiredToken)
		}
		return nil, fmt.Errorf("token invalid or malformed: %w", domain.ErrInvalidToken)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims: %w", domain.ErrInvalidToken)
	}
	return claims, nil
}
