package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dmitrijs2005/passgate/internal/flagx"
	"github.com/dmitrijs2005/passgate/internal/timex"
)

// FileConfig is the on-disk shape of the client configuration.
type FileConfig struct {
	ServerURL      string         `json:"server_url" toml:"server_url"`
	SessionDSN     string         `json:"session_dsn" toml:"session_dsn"`
	RequestTimeout timex.Duration `json:"request_timeout" toml:"request_timeout"`
	Verbose        bool           `json:"verbose" toml:"verbose"`
}

// parseFile overlays cfg with the file named by -c/-config. Keys missing
// from the file keep their current value. Panics on read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc := FileConfig{
		ServerURL:      cfg.ServerURL,
		SessionDSN:     cfg.SessionDSN,
		RequestTimeout: timex.Duration{Duration: cfg.RequestTimeout},
		Verbose:        cfg.Verbose,
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err = toml.Decode(string(data), &fc)
	} else {
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	cfg.ServerURL = fc.ServerURL
	cfg.SessionDSN = fc.SessionDSN
	cfg.RequestTimeout = fc.RequestTimeout.Duration
	cfg.Verbose = fc.Verbose
}
