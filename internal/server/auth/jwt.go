// Package auth issues and verifies the signed session tokens handed out after
// a successful passcode exchange.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/passgate/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Verification failures. They all wrap common.ErrorUnauthorized; the
// distinction is for logs only.
var (
	ErrMalformed        = fmt.Errorf("%w: malformed token", common.ErrorUnauthorized)
	ErrInvalidSignature = fmt.Errorf("%w: invalid token signature", common.ErrorUnauthorized)
	ErrExpired          = fmt.Errorf("%w: token expired", common.ErrorUnauthorized)
)

// Claims is the token payload: subject (user id), issued-at and expiry.
type Claims struct {
	jwt.RegisteredClaims
}

// Codec seals and opens session tokens with a single SigningKey.
// It holds no mutable state and is safe for concurrent use.
type Codec struct {
	key SigningKey
	ttl time.Duration
	now func() time.Time
}

type Option func(*Codec)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

func NewCodec(key SigningKey, opts ...Option) *Codec {
	c := &Codec{key: key, ttl: common.SessionTTL, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Issue returns a token bound to subject that expires ttl after now.
func (c *Codec) Issue(subject string) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	})

	tokenString, err := token.SignedString(c.key.bytes())
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks the seal and expiry of token and returns its subject.
func (c *Codec) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return c.key.bytes(), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return "", classify(err)
	}

	if !token.Valid || claims.Subject == "" {
		return "", ErrMalformed
	}

	return claims.Subject, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrInvalidSignature
	default:
		return ErrMalformed
	}
}
