// Package cli provides the interactive passgate terminal client.
//
// It wires configuration, the in-memory session store, the HTTP API client and
// two views:
//   - login: six-digit passcode entry driven by keystrokes in raw terminal mode
//   - dashboard: a REPL over the company records (list, search, add, update)
//
// Every entry into the dashboard, including the first one after start, runs
// the route guard, which asks the server whether the session is still valid.
// A denied check lands on the login view.
//
// The client is started via App.Run(ctx), which blocks until the user exits.
package cli
