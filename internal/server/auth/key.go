package auth

import (
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const signingKeyInfo = "passgate session token v1"

// ErrEmptySecret is returned when no secret is configured.
var ErrEmptySecret = errors.New("signing secret is empty")

// SigningKey is the HMAC key that seals session tokens. It is built once from
// configuration and never changes for the life of the process.
type SigningKey struct {
	key []byte
}

// NewSigningKey derives a 256-bit HMAC key from the configured secret with
// HKDF-SHA256, so operators may configure secrets of any length.
func NewSigningKey(secret string) (SigningKey, error) {
	if secret == "" {
		return SigningKey{}, ErrEmptySecret
	}

	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(signingKeyInfo))
	if _, err := io.ReadFull(r, key); err != nil {
		return SigningKey{}, err
	}
	return SigningKey{key: key}, nil
}

func (k SigningKey) bytes() []byte { return k.key }
