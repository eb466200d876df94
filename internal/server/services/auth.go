// Package services contains server-side business logic. This file implements
// AuthService, which exchanges a passcode for a session token and verifies
// bearer tokens presented on later requests.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/passgate/internal/common"
	"github.com/dmitrijs2005/passgate/internal/dbx"
	"github.com/dmitrijs2005/passgate/internal/server/auth"
	"github.com/dmitrijs2005/passgate/internal/server/models"
	"github.com/dmitrijs2005/passgate/internal/server/repositories/repomanager"
)

// Session is the outcome of a successful authentication. Token is delivered
// to the client only through the session cookie.
type Session struct {
	Token string
	Name  string
}

type TokenCodec interface {
	Issue(subject string) (string, error)
	Verify(token string) (string, error)
}

type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	codec       TokenCodec
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, codec TokenCodec) *AuthService {
	return &AuthService{db: db, repomanager: m, codec: codec}
}

// Authenticate looks up the user owning key and issues a session token for it.
//
// Errors:
//   - common.ErrorBadFormat when key is empty
//   - common.ErrorUnauthorized when no user owns key
//   - any other error is a fault (lookup or signing failure)
func (s *AuthService) Authenticate(ctx context.Context, key string) (*Session, error) {
	if key == "" {
		return nil, common.ErrorBadFormat
	}

	var user *models.User
	err := dbx.WithConn(ctx, s.db, func(ctx context.Context, conn dbx.DBTX) error {
		var err error
		user, err = s.repomanager.Users(conn).GetUserByKey(ctx, key)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	token, err := s.codec.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &Session{Token: token, Name: user.Name}, nil
}

// VerifyBearer checks an Authorization header value and returns the token
// subject. A missing or non-Bearer header yields common.ErrorForbidden, a
// token that fails verification yields an error wrapping common.ErrorUnauthorized.
func (s *AuthService) VerifyBearer(header string) (string, error) {
	token, err := auth.ParseBearer(header)
	if err != nil {
		return "", err
	}
	return s.VerifyToken(token)
}

// VerifyToken verifies a raw session token.
func (s *AuthService) VerifyToken(token string) (string, error) {
	subject, err := s.codec.Verify(token)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", common.ErrorUnauthorized, err)
	}
	return subject, nil
}
