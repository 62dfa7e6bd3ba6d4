package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	base := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		return c
	}

	tests := []struct {
		expected    func() *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd",
				"-a", "127.0.0.1:9090", "-m", "127.0.0.1:9091", "-d", "memory", "-s", "secret", "-alg", "HS384",
				"-t", "1", "-r", "3", "-ra", "2", "-l", "debug", "-prune",
			},
			expected: func() *Config {
				c := base()
				c.EndpointAddrGRPC = "127.0.0.1:9090"
				c.AdminAddrHTTP = "127.0.0.1:9091"
				c.DatabaseDSN = "memory"
				c.SecretKey = "secret"
				c.SigningAlgorithm = "HS384"
				c.AccessTokenValidityDuration = 1 * time.Minute
				c.RefreshTokenValidityDuration = 3 * time.Minute
				c.RefreshedAccessTokenValidityDuration = 2 * time.Minute
				c.LogLevel = "debug"
				c.PruneRevokedOnStart = true
				return c
			},
		},
		{
			name:     "no flags keep current values",
			args:     []string{"cmd"},
			expected: base,
		},
		{
			name:        "bad duration panics",
			args:        []string{"cmd", "-t", "soon"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := base()

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(config, tt.expected()))
		})
	}
}

func TestParseFlags_SubMinuteDurationSurvivesWithoutFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"cmd", "-s", "x"}

	c := &Config{AccessTokenValidityDuration: 90 * time.Second}
	parseFlags(c)
	assert.Equal(t, 90*time.Second, c.AccessTokenValidityDuration)
}
