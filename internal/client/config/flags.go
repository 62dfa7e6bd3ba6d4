package config

import (
	"github.com/spf13/pflag"
)

// Flag names registered by AddFlags.
const (
	FlagConfig  = "config"
	FlagServer  = "server"
	FlagSession = "session-file"
	FlagTimeout = "timeout"
)

// AddFlags registers the connection flags on fs with default values.
func AddFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to a JSON config file")
	fs.StringP(FlagServer, "a", d.ServerEndpointAddr, "address and port of the TaskKeeper server")
	fs.String(FlagSession, d.SessionFile, "file holding the current session tokens")
	fs.Duration(FlagTimeout, d.RequestTimeout, "timeout for a single request")
}

// parseFlags copies only the flags the user set, so JSON and environment
// values are not reset to the flag defaults.
func parseFlags(cfg *Config, fs *pflag.FlagSet) error {
	var err error
	if fs.Changed(FlagServer) {
		if cfg.ServerEndpointAddr, err = fs.GetString(FlagServer); err != nil {
			return err
		}
	}
	if fs.Changed(FlagSession) {
		if cfg.SessionFile, err = fs.GetString(FlagSession); err != nil {
			return err
		}
	}
	if fs.Changed(FlagTimeout) {
		if cfg.RequestTimeout, err = fs.GetDuration(FlagTimeout); err != nil {
			return err
		}
	}
	return nil
}
