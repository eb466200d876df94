package config

import (
	"flag"
	"os"
	"strings"

	"github.com/dmitrijs2005/passgate/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-g string   gRPC admin bind address, empty disables the listener
//	-d string   PostgreSQL DSN
//	-s string   session signing secret
//	-o string   comma separated CORS origins
//	-l string   log format: json or console
//	-m          run migrations on start (-m=false to skip)
//	-dev        relax the session cookie for plain-HTTP local development
//	-cookie-token  accept the session cookie when no Authorization header is sent
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-s", "-o", "-l"}, "-m", "-dev", "-cookie-token")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port to run server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC admin address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	origins := fs.String("o", strings.Join(config.AllowedOrigins, ","), "allowed CORS origins, comma separated")

	fs.StringVar(&config.LogFormat, "l", config.LogFormat, "log format (json|console)")
	fs.BoolVar(&config.RunMigrations, "m", config.RunMigrations, "run database migrations on start")
	fs.BoolVar(&config.CookieInsecure, "dev", config.CookieInsecure, "development mode: non-Secure, script-readable session cookie")
	fs.BoolVar(&config.AcceptCookieToken, "cookie-token", config.AcceptCookieToken, "accept the session cookie without an Authorization header")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AllowedOrigins = splitOrigins(*origins)
}

func splitOrigins(s string) []string {
	result := make([]string, 0)
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			result = append(result, o)
		}
	}
	return result
}
