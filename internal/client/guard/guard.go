// Package guard decides whether a protected view may be entered.
//
// Every decision performs one verification round-trip against the server.
// Results are never cached.
package guard

import (
	"context"

	"github.com/dmitrijs2005/passgate/internal/logging"
)

// Login is the view a denied navigation is redirected to.
const Login = "login"

type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

type Verifier interface {
	Verify(ctx context.Context) error
}

type Navigator interface {
	Navigate(ctx context.Context, target string)
}

// Decide asks the server whether the current session is valid. Any failure,
// including an unreachable server, denies.
func Decide(ctx context.Context, v Verifier) Decision {
	if err := v.Verify(ctx); err != nil {
		return Deny
	}
	return Allow
}

type Guard struct {
	verifier Verifier
	nav      Navigator
	logger   logging.Logger
}

func New(v Verifier, nav Navigator, l logging.Logger) *Guard {
	return &Guard{verifier: v, nav: nav, logger: l.With("module", "guard")}
}

// CanLoad runs before a protected view is loaded for the first time.
func (g *Guard) CanLoad(ctx context.Context) bool {
	return g.Check(ctx)
}

// CanActivate runs on every entry into a protected view.
func (g *Guard) CanActivate(ctx context.Context) bool {
	return g.Check(ctx)
}

// Check returns true when entry is allowed and otherwise redirects to Login.
func (g *Guard) Check(ctx context.Context) bool {
	d := Decide(ctx, g.verifier)
	g.logger.Debug(ctx, "guard decision", "decision", d.String())
	if d == Deny {
		g.nav.Navigate(ctx, Login)
		return false
	}
	return true
}
