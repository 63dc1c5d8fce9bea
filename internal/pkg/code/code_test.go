package code

import (
	"strings"
	"testing"
	"time"

	"github.com/eduprompt/api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestGenerate_LengthAndAlphabet(t *testing.T) {
	for i := 0; i < 100; i++ {
		c := Generate()
		assert.Len(t, c, domain.CodeLength)
		for _, r := range c {
			assert.True(t, strings.ContainsRune(alphabet, r), "unexpected rune %q in code %q", r, c)
		}
	}
}

func TestIsExpired(t *testing.T) {
	now := time.Now().UTC()
	vc := &domain.VerificationCode{ExpiresAt: now}

	// Exactly at the deadline is still valid.
	assert.False(t, IsExpired(vc, now))
	assert.False(t, IsExpired(vc, now.Add(-time.Second)))
	assert.True(t, IsExpired(vc, now.Add(time.Second)))
}
