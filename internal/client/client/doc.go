// Package client contains client-side building blocks for passgate.
//
// # Overview
//
// The package provides:
//  1. An API contract (see the Client interface) for the passgate server:
//     passcode authentication, session verification, logout and the company
//     record operations.
//  2. An HTTP implementation (see HTTPClient). The session token lives only
//     in the client's cookie jar; Verify and the record calls copy it into a
//     Bearer header.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     session store, using sqlite and embedded goose migrations.
//
// # Error Handling
//
// Response statuses map onto sentinel errors matched with errors.Is:
// ErrBadFormat, ErrUnauthorized, ErrForbidden, ErrNotFound, ErrConflict,
// ErrServer, plus ErrUnavailable for transport failures.
package client
