// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP     HTTPConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Logging  LoggingConfig

	// SeedPeople is the person directory written at startup if missing.
	SeedPeople []string
	// ReadCacheTTL bounds how stale a chart read may be between writes.
	ReadCacheTTL time.Duration
}

// HTTPConfig governs the HTTP server.
type HTTPConfig struct {
	Addr   string
	WebDir string
}

// DatabaseConfig describes connectivity to PostgreSQL.
type DatabaseConfig struct {
	URL string
}

// AuthConfig controls session auth and the optional OIDC SSO flow.
type AuthConfig struct {
	Disabled         bool
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level  string
	Format string // text|json
}

const (
	defaultAddr         = ":8080"
	defaultWebDir       = "web"
	defaultSeedPeople   = "Samuel,Fabian,Genee"
	defaultReadCacheTTL = 30 * time.Second
	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
)

// Load reads configuration from environment variables, applying defaults.
// DATABASE_URL is the only required value.
func Load() (Config, error) {
	cfg := Config{
		HTTP: HTTPConfig{
			Addr:   env("ADDR", defaultAddr),
			WebDir: env("WEB_DIR", defaultWebDir),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Auth: AuthConfig{
			OIDCIssuer:       os.Getenv("OIDC_ISSUER"),
			OIDCClientID:     os.Getenv("OIDC_CLIENT_ID"),
			OIDCClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
			OIDCRedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
		},
		Logging: LoggingConfig{
			Level:  env("LOG_LEVEL", defaultLogLevel),
			Format: env("LOG_FORMAT", defaultLogFormat),
		},
		ReadCacheTTL: defaultReadCacheTTL,
	}

	if cfg.Database.URL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}

	for _, name := range strings.Split(env("SEED_PEOPLE", defaultSeedPeople), ",") {
		if name = strings.TrimSpace(name); name != "" {
			cfg.SeedPeople = append(cfg.SeedPeople, name)
		}
	}

	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CACHE_TTL %q: %w", v, err)
		}
		cfg.ReadCacheTTL = d
	}

	if v := os.Getenv("DISABLE_AUTH"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DISABLE_AUTH %q: %w", v, err)
		}
		cfg.Auth.Disabled = b
	}

	if cfg.Auth.OIDCIssuer != "" && (cfg.Auth.OIDCClientID == "" || cfg.Auth.OIDCRedirectURL == "") {
		return Config{}, fmt.Errorf("OIDC_ISSUER set but OIDC_CLIENT_ID or OIDC_REDIRECT_URL missing")
	}

	return cfg, nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
