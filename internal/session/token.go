package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
)

// TokenGenerator produces opaque, unguessable session tokens
type TokenGenerator interface {
	NewToken() (string, error)
}

// TokenGeneratorFunc adapts a function to TokenGenerator
type TokenGeneratorFunc func() (string, error)

func (f TokenGeneratorFunc) NewToken() (string, error) {
	return f()
}

// UUIDTokenGenerator issues random (version 4) UUIDs, 122 bits of entropy
var UUIDTokenGenerator = TokenGeneratorFunc(func() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("session: failed to generate token: %w", err)
	}
	return id.String(), nil
})

// RandomTokenGenerator issues base64url tokens of Size random bytes
type RandomTokenGenerator struct {
	Size int
}

func (g RandomTokenGenerator) NewToken() (string, error) {
	size := g.Size
	if size <= 0 {
		size = 32 // 256 bits
	}

	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session: failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// NewTokenGenerator returns RandomTokenGenerator of size bytes, or
// UUIDTokenGenerator when size is 0.
func NewTokenGenerator(size int) TokenGenerator {
	if size <= 0 {
		return UUIDTokenGenerator
	}
	return RandomTokenGenerator{Size: size}
}
