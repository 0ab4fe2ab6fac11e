package config

import (
	"flag"
	"os"
	"time"

	"github.com/Larisagabriela329/goit-project-health-backend/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-m string   session store backend ("postgres" or "redis")
//	-e string   Redis address (e.g., "127.0.0.1:6379")
//	-s string   access token HMAC secret
//	-k string   refresh token HMAC secret
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//
// The function first filters os.Args to only the flags it recognizes via
// flagx.FilterArgs, avoiding collisions with other components. Duration flags
// are accepted as integer minutes and converted to time.Duration.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-m", "-e", "-s", "-k", "-t", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SessionStore, "m", config.SessionStore, "session store backend (postgres|redis)")
	fs.StringVar(&config.RedisAddr, "e", config.RedisAddr, "redis address")
	fs.StringVar(&config.AccessSecretKey, "s", config.AccessSecretKey, "access token secret key")
	fs.StringVar(&config.RefreshSecretKey, "k", config.RefreshSecretKey, "refresh token secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	refreshTokenValidityDuration := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh_token_validity_duration (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.RefreshTokenValidityDuration = time.Duration(*refreshTokenValidityDuration) * time.Minute
}
