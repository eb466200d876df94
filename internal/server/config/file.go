package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dmitrijs2005/passgate/internal/flagx"
)

// FileConfig is the on-disk shape of the server configuration. The same
// keys are used for JSON and TOML files.
type FileConfig struct {
	EndpointAddrHTTP  string   `json:"endpoint_addr_http" toml:"endpoint_addr_http"`
	EndpointAddrGRPC  string   `json:"endpoint_addr_grpc" toml:"endpoint_addr_grpc"`
	DatabaseDSN       string   `json:"database_dsn" toml:"database_dsn"`
	SecretKey         string   `json:"secret_key" toml:"secret_key"`
	AllowedOrigins    []string `json:"allowed_origins" toml:"allowed_origins"`
	CookieInsecure    bool     `json:"cookie_insecure" toml:"cookie_insecure"`
	AcceptCookieToken bool     `json:"accept_cookie_token" toml:"accept_cookie_token"`
	LogFormat         string   `json:"log_format" toml:"log_format"`
	RunMigrations     bool     `json:"run_migrations" toml:"run_migrations"`
}

func fileConfigFrom(c *Config) *FileConfig {
	return &FileConfig{
		EndpointAddrHTTP:  c.EndpointAddrHTTP,
		EndpointAddrGRPC:  c.EndpointAddrGRPC,
		DatabaseDSN:       c.DatabaseDSN,
		SecretKey:         c.SecretKey,
		AllowedOrigins:    c.AllowedOrigins,
		CookieInsecure:    c.CookieInsecure,
		AcceptCookieToken: c.AcceptCookieToken,
		LogFormat:         c.LogFormat,
		RunMigrations:     c.RunMigrations,
	}
}

func (f *FileConfig) apply(c *Config) {
	c.EndpointAddrHTTP = f.EndpointAddrHTTP
	c.EndpointAddrGRPC = f.EndpointAddrGRPC
	c.DatabaseDSN = f.DatabaseDSN
	c.SecretKey = f.SecretKey
	c.AllowedOrigins = f.AllowedOrigins
	c.CookieInsecure = f.CookieInsecure
	c.AcceptCookieToken = f.AcceptCookieToken
	c.LogFormat = f.LogFormat
	c.RunMigrations = f.RunMigrations
}

// decodeFile overlays the file at path onto config. Keys missing from the
// file keep their current values. Files ending in .toml are decoded as TOML,
// everything else as JSON.
func decodeFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	fc := fileConfigFrom(config)

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), fc); err != nil {
			return fmt.Errorf("decode toml config: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, fc); err != nil {
			return fmt.Errorf("decode json config: %w", err)
		}
	}

	fc.apply(config)
	return nil
}

// parseFile loads the file named by -c/-config, if any. A file that cannot
// be read or decoded is fatal, so it panics.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}
	if err := decodeFile(path, config); err != nil {
		panic(err)
	}
}
