package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-m string   admin HTTP bind address, "" disables it
//	-d string   PostgreSQL DSN or "memory"
//	-s string   JWT HMAC secret key
//	-alg string JWT signing algorithm
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-ra int     refreshed access token validity, minutes
//	-l string   log level
//	-prune      prune expired revoked tokens at start-up
//
// Duration flags are whole minutes and only override earlier sources when
// present on the command line.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-m", "-d", "-s", "-alg", "-t", "-r", "-ra", "-l", "-prune"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.AdminAddrHTTP, "m", config.AdminAddrHTTP, "address and port of the admin HTTP listener")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.SigningAlgorithm, "alg", config.SigningAlgorithm, "token signing algorithm")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	refreshTokenValidityDuration := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh_token_validity_duration (in minutes)")
	refreshedAccessValidityDuration := fs.Int("ra", int(config.RefreshedAccessTokenValidityDuration.Minutes()), "refreshed_access_token_validity_duration (in minutes)")

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.BoolVar(&config.PruneRevokedOnStart, "prune", config.PruneRevokedOnStart, "prune expired revoked tokens at start-up")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Durations change only when their flag is present.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
		case "r":
			config.RefreshTokenValidityDuration = time.Duration(*refreshTokenValidityDuration) * time.Minute
		case "ra":
			config.RefreshedAccessTokenValidityDuration = time.Duration(*refreshedAccessValidityDuration) * time.Minute
		}
	})
}
