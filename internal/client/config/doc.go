// Package config loads runtime configuration for the passgate terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or TOML file selected via -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the passgate server
//	-db string  sqlite DSN for the session store
//	-t int      request timeout (seconds)
//	-v          log requests to stderr
//
// # File schema
//
//	{
//	  "server_url": "http://localhost:5000",
//	  "session_dsn": "file:passgate-session?mode=memory&cache=shared",
//	  "request_timeout": "10s",
//	  "verbose": false
//	}
package config
