package config

import "github.com/dmitrijs2005/taskkeeper/internal/flagx"

const (
	EnvServerAddr     = "TASKKEEPER_SERVER_ADDR"
	EnvSessionFile    = "TASKKEEPER_SESSION_FILE"
	EnvRequestTimeout = "TASKKEEPER_REQUEST_TIMEOUT"
)

func parseEnv(cfg *Config) error {
	flagx.EnvString(EnvServerAddr, &cfg.ServerEndpointAddr)
	flagx.EnvString(EnvSessionFile, &cfg.SessionFile)
	return flagx.EnvDuration(EnvRequestTimeout, &cfg.RequestTimeout)
}
