package code

import (
	"math/rand/v2"
	"time"

	"github.com/eduprompt/api/internal/domain"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Generate produces a 4-character alphanumeric verification code.
// Not cryptographically secure: the entropy (~4.77e6 combinations) is a known
// weakness accepted for short-lived, rate-limited, low-value codes.
func Generate() string {
	b := make([]byte, domain.CodeLength)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}

// IsExpired reports whether the code is stale at the given instant.
// A code expiring exactly at now is still valid.
func IsExpired(c *domain.VerificationCode, now time.Time) bool {
	return now.After(c.ExpiresAt)
}
