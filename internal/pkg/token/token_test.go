package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_UniqueAndOpaque(t *testing.T) {
	a, err := Generate()
	require.NoError(t, err)
	b, err := Generate()
	require.NoError(t, err)

	assert.Len(t, a, 64) // 32 bytes, hex encoded
	assert.NotEqual(t, a, b)
}

func TestHash_Deterministic(t *testing.T) {
	assert.Equal(t, Hash("some-token"), Hash("some-token"))
	assert.NotEqual(t, Hash("some-token"), Hash("other-token"))
	assert.NotEqual(t, "some-token", Hash("some-token"))
}

func TestCompare_RoundTrip(t *testing.T) {
	raw, err := Generate()
	require.NoError(t, err)

	digest := Hash(raw)
	assert.True(t, Compare(raw, digest))
	assert.False(t, Compare("a-different-token", digest))
	assert.False(t, Compare(raw, Hash("a-different-token")))
}
