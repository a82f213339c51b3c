package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// Config holds the server configuration
type Config struct {
	Addr            string
	RedisURL        string
	LoginRate       int
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	TrustedProxies  []string

	// envErrs collects environment values that could not be parsed
	envErrs []error
}

// defaultConfig returns the configuration with environment overrides applied
func defaultConfig() Config {
	cfg := Config{
		Addr:            envString("WEATHER_ADDR", ":9000"),
		RedisURL:        envString("REDIS_URL", ""),
		LogLevel:        envString("WEATHER_LOG_LEVEL", "info"),
		LogFormat:       envString("WEATHER_LOG_FORMAT", "text"),
		ShutdownTimeout: 10 * time.Second,
		TrustedProxies:  envList("WEATHER_TRUSTED_PROXIES"),
	}

	loginRate, err := envInt("WEATHER_LOGIN_RATE", 60)
	if err != nil {
		cfg.envErrs = append(cfg.envErrs, err)
	}
	cfg.LoginRate = loginRate

	return cfg
}

// bindFlags registers flags whose defaults come from cfg
func (cfg *Config) bindFlags(flags *pflag.FlagSet) {
	flags.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flags.StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL for publishing events, empty keeps events in process")
	flags.IntVar(&cfg.LoginRate, "login-rate", cfg.LoginRate, "tokens per minute allowed per client IP, 0 disables the limit")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")
	flags.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "time allowed for in flight requests on shutdown")
	flags.StringSliceVar(&cfg.TrustedProxies, "trusted-proxies", cfg.TrustedProxies, "proxy IPs or CIDRs allowed to set X-Forwarded-For, empty trusts none")
}

// Validate checks the configuration for values the server cannot run with
func (cfg Config) Validate() error {
	if err := errors.Join(cfg.envErrs...); err != nil {
		return err
	}
	if cfg.Addr == "" {
		return fmt.Errorf("listen address is required")
	}
	if cfg.LoginRate < 0 {
		return fmt.Errorf("login rate must not be negative: %d", cfg.LoginRate)
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return err
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
	for _, proxy := range cfg.TrustedProxies {
		if net.ParseIP(proxy) != nil {
			continue
		}
		if _, _, err := net.ParseCIDR(proxy); err != nil {
			return fmt.Errorf("invalid trusted proxy %q", proxy)
		}
	}
	return nil
}

// NewLogger builds the process logger described by cfg
func (cfg Config) NewLogger() (*slog.Logger, error) {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts)), nil
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts)), nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func envList(key string) []string {
	var items []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
