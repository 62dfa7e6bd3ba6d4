package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/taskkeeper/internal/flagx"
	"github.com/dmitrijs2005/taskkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the optional JSON config file.
// Durations use timex.Duration so both "30m" and integer nanoseconds work.
// Keys that are absent from the file leave the current value untouched.
type JsonConfig struct {
	EndpointAddrGRPC                     *string         `json:"endpoint_addr_grpc"`
	AdminAddrHTTP                        *string         `json:"admin_addr_http"`
	DatabaseDSN                          *string         `json:"database_dsn"`
	SecretKey                            *string         `json:"secret_key"`
	SigningAlgorithm                     *string         `json:"signing_algorithm"`
	AccessTokenValidityDuration          *timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration         *timex.Duration `json:"refresh_token_validity_duration"`
	RefreshedAccessTokenValidityDuration *timex.Duration `json:"refreshed_access_token_validity_duration"`
	BcryptCost                           *int            `json:"bcrypt_cost"`
	LogLevel                             *string         `json:"log_level"`
	PruneRevokedOnStart                  *bool           `json:"prune_revoked_on_start"`
}

// parseJson loads the file named by -c/-config, if any, into config.
// An unreadable file or invalid JSON panics: the server must not start on a
// half-applied configuration.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.AdminAddrHTTP, c.AdminAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.SigningAlgorithm, c.SigningAlgorithm)
	setString(&config.LogLevel, c.LogLevel)

	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.RefreshedAccessTokenValidityDuration != nil {
		config.RefreshedAccessTokenValidityDuration = c.RefreshedAccessTokenValidityDuration.Duration
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
	if c.PruneRevokedOnStart != nil {
		config.PruneRevokedOnStart = *c.PruneRevokedOnStart
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
