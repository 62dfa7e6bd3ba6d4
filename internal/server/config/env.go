package config

import "github.com/dmitrijs2005/taskkeeper/internal/flagx"

// Environment variables read by parseEnv.
const (
	EnvEndpointAddrGRPC    = "TASKKEEPER_GRPC_ADDR"
	EnvAdminAddrHTTP       = "TASKKEEPER_ADMIN_ADDR"
	EnvDatabaseDSN         = "TASKKEEPER_DATABASE_DSN"
	EnvSecretKey           = "TASKKEEPER_SECRET_KEY"
	EnvSigningAlgorithm    = "TASKKEEPER_SIGNING_ALGORITHM"
	EnvAccessTokenTTL      = "TASKKEEPER_ACCESS_TOKEN_TTL"
	EnvRefreshTokenTTL     = "TASKKEEPER_REFRESH_TOKEN_TTL"
	EnvRefreshedAccessTTL  = "TASKKEEPER_REFRESHED_ACCESS_TOKEN_TTL"
	EnvBcryptCost          = "TASKKEEPER_BCRYPT_COST"
	EnvLogLevel            = "TASKKEEPER_LOG_LEVEL"
	EnvPruneRevokedOnStart = "TASKKEEPER_PRUNE_REVOKED_ON_START"
)

// parseEnv overlays values from TASKKEEPER_* environment variables.
// Unset variables leave the current value untouched.
func parseEnv(config *Config) error {
	flagx.EnvString(EnvEndpointAddrGRPC, &config.EndpointAddrGRPC)
	flagx.EnvString(EnvAdminAddrHTTP, &config.AdminAddrHTTP)
	flagx.EnvString(EnvDatabaseDSN, &config.DatabaseDSN)
	flagx.EnvString(EnvSecretKey, &config.SecretKey)
	flagx.EnvString(EnvSigningAlgorithm, &config.SigningAlgorithm)
	flagx.EnvString(EnvLogLevel, &config.LogLevel)

	if err := flagx.EnvDuration(EnvAccessTokenTTL, &config.AccessTokenValidityDuration); err != nil {
		return err
	}
	if err := flagx.EnvDuration(EnvRefreshTokenTTL, &config.RefreshTokenValidityDuration); err != nil {
		return err
	}
	if err := flagx.EnvDuration(EnvRefreshedAccessTTL, &config.RefreshedAccessTokenValidityDuration); err != nil {
		return err
	}
	if err := flagx.EnvInt(EnvBcryptCost, &config.BcryptCost); err != nil {
		return err
	}
	return flagx.EnvBool(EnvPruneRevokedOnStart, &config.PruneRevokedOnStart)
}
