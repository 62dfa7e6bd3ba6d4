package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
)

// Config holds runtime settings for the TaskKeeper CLI.
type Config struct {
	ServerEndpointAddr string
	SessionFile        string
	RequestTimeout     time.Duration
}

// LoadDefaults populates c with sensible defaults. The session file lives in
// the user's home directory, or the working directory when there is none.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.SessionFile = defaultSessionFile()
	c.RequestTimeout = 10 * time.Second
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "taskkeeper-session.json"
	}
	return filepath.Join(home, ".taskkeeper", "session.json")
}

// Load builds a Config from defaults, the JSON file, the environment and
// finally the flags in fs that were set on the command line. fs must carry
// the flags registered by AddFlags.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path, _ := fs.GetString(FlagConfig); path != "" {
		if err := parseJson(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, fs); err != nil {
		return nil, err
	}
	return cfg, nil
}
