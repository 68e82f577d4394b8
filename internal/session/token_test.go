package session

import (
	"encoding/base64"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDTokenGenerator(t *testing.T) {
	a, err := UUIDTokenGenerator.NewToken()
	require.NoError(t, err)
	b, err := UUIDTokenGenerator.NewToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	id, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), id.Version())
}

func TestRandomTokenGenerator(t *testing.T) {
	token, err := RandomTokenGenerator{}.NewToken()
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, raw, 32)

	token, err = RandomTokenGenerator{Size: 16}.NewToken()
	require.NoError(t, err)
	raw, err = base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, raw, 16)
}

func TestNewTokenGenerator(t *testing.T) {
	token, err := NewTokenGenerator(0).NewToken()
	require.NoError(t, err)
	_, err = uuid.Parse(token)
	assert.NoError(t, err)

	token, err = NewTokenGenerator(24).NewToken()
	require.NoError(t, err)
	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, raw, 24)
}
