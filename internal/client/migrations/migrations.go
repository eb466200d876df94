// Package migrations embeds the client-side schema (local session metadata).
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
