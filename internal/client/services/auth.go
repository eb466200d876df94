// Package services contains application services for the passgate client.
// This file defines the session service: passcode login, the server-side
// session check and logout.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/passgate/internal/client/client"
)

// AuthService defines session operations for the CLI.
//
// Contract:
//   - Authenticate: exchange a passcode for a session and return the display name.
//   - Verify: ask the server whether the current session is valid.
//   - Logout: drop the session token and the cached display name.
//   - Name: the cached display name, "Default User" when none is stored.
type AuthService interface {
	Authenticate(ctx context.Context, passcode string) (string, error)
	Verify(ctx context.Context) error
	Logout(ctx context.Context) error
	Name(ctx context.Context) (string, error)
}

// LabelStore is the subset of session.LabelStore the service needs.
type LabelStore interface {
	Name(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

type authService struct {
	client client.Client
	labels LabelStore
}

// NewAuthService constructs an AuthService bound to the given API client and label store.
func NewAuthService(c client.Client, labels LabelStore) AuthService {
	return &authService{client: c, labels: labels}
}

// Authenticate does not store the returned name; the login view does that
// once it has accepted the result.
func (a *authService) Authenticate(ctx context.Context, passcode string) (string, error) {
	name, err := a.client.Authenticate(ctx, passcode)
	if err != nil {
		return "", fmt.Errorf("login error: %w", err)
	}
	return name, nil
}

func (a *authService) Verify(ctx context.Context) error {
	return a.client.Verify(ctx)
}

// Logout clears the token first so a failing label store never leaves a
// usable session behind.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		return fmt.Errorf("logout error: %w", err)
	}
	if err := a.labels.Clear(ctx); err != nil {
		return fmt.Errorf("clear label: %w", err)
	}
	return nil
}

func (a *authService) Name(ctx context.Context) (string, error) {
	return a.labels.Name(ctx)
}
