package main

import (
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigFromEnv(t *testing.T) {
	t.Setenv("WEATHER_TRUSTED_PROXIES", "")
	t.Setenv("WEATHER_ADDR", ":8080")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("WEATHER_LOGIN_RATE", "5")
	t.Setenv("WEATHER_LOG_LEVEL", "debug")

	cfg := defaultConfig()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "redis://localhost:6379/1", cfg.RedisURL)
	assert.Equal(t, 5, cfg.LoginRate)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultConfigRejectsBadNumbers(t *testing.T) {
	t.Setenv("WEATHER_LOGIN_RATE", "lots")

	err := defaultConfig().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEATHER_LOGIN_RATE")
}

func TestTrustedProxies(t *testing.T) {
	t.Setenv("WEATHER_TRUSTED_PROXIES", "10.0.0.1, 192.168.0.0/16,")

	cfg := defaultConfig()
	assert.Equal(t, []string{"10.0.0.1", "192.168.0.0/16"}, cfg.TrustedProxies)
	assert.NoError(t, cfg.Validate())

	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	cfg.bindFlags(flags)
	require.NoError(t, flags.Parse([]string{"--trusted-proxies", "172.16.0.0/12"}))
	assert.Equal(t, []string{"172.16.0.0/12"}, cfg.TrustedProxies)

	cfg.TrustedProxies = []string{"proxy.local"}
	assert.Error(t, cfg.Validate())
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("WEATHER_ADDR", ":8080")

	cfg := defaultConfig()
	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	cfg.bindFlags(flags)

	require.NoError(t, flags.Parse([]string{"--addr", ":7000", "--login-rate", "0", "--log-format", "json", "--shutdown-timeout", "3s"}))
	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, 0, cfg.LoginRate)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty address", func(c *Config) { c.Addr = "" }},
		{"negative rate", func(c *Config) { c.LoginRate = -1 }},
		{"unknown level", func(c *Config) { c.LogLevel = "chatty" }},
		{"unknown format", func(c *Config) { c.LogFormat = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestNewLogger(t *testing.T) {
	cfg := defaultConfig()
	cfg.LogLevel = "warn"

	logger, err := cfg.NewLogger()
	require.NoError(t, err)
	assert.False(t, logger.Enabled(t.Context(), slog.LevelDebug))
	assert.True(t, logger.Enabled(t.Context(), slog.LevelError))
}
