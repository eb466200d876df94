package config

import "time"

// Config holds runtime settings for the passgate CLI.
type Config struct {
	ServerURL      string
	SessionDSN     string
	RequestTimeout time.Duration
	Verbose        bool
}

// LoadDefaults populates c with defaults. The session store lives in memory,
// so the identity label lasts as long as the process.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:5000"
	c.SessionDSN = "file:passgate-session?mode=memory&cache=shared"
	c.RequestTimeout = 10 * time.Second
	c.Verbose = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
