package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/passgate/internal/flagx"
)

// parseFlags populates Config fields from command-line flags, ignoring
// flags it does not know.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-db", "-t"}, "-v")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "server base URL")
	fs.StringVar(&cfg.SessionDSN, "db", cfg.SessionDSN, "session store DSN")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "log requests to stderr")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t only overrides when given, so a sub-second file value survives.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
