package token

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// Generate returns a cryptographically random 64-character hex refresh token
// (256 bits of randomness). A CSPRNG failure propagates to the caller.
func Generate() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Hash returns the hex-encoded SHA-256 digest of the given token.
// Only this digest is ever stored.
func Hash(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Compare reports whether the raw token hashes to the stored digest.
// The digest comparison is constant-time.
func Compare(raw, storedDigest string) bool {
	return subtle.ConstantTimeCompare([]byte(Hash(raw)), []byte(storedDigest)) == 1
}
