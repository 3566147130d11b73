package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHashesToSameValue(t *testing.T) {
	raw, hash, err := New(32)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)

	rehashed, err := Hash(raw)
	require.NoError(t, err)
	assert.Equal(t, hash, rehashed)
}

func TestNewIsRandom(t *testing.T) {
	a, _, err := New(32)
	require.NoError(t, err)
	b, _, err := New(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashRejectsInvalidBase64(t *testing.T) {
	_, err := Hash("not base64!")
	assert.Error(t, err)
}
