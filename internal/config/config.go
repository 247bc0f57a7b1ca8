// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultAPIURL is the backend used when NEWSDESK_API_URL is not set.
const DefaultAPIURL = "http://127.0.0.1:8000/api"

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the dashboard client configuration loaded from environment
// variables.
type Config struct {
	APIURL        string        `env:"NEWSDESK_API_URL" envDefault:"http://127.0.0.1:8000/api"`
	StoragePrefix string        `env:"NEWSDESK_STORAGE_PREFIX" envDefault:"/storage/"`
	HTTPTimeout   time.Duration `env:"NEWSDESK_HTTP_TIMEOUT" envDefault:"0s"` // 0 keeps the transport default

	// Session persistence
	SessionBackend string `env:"NEWSDESK_SESSION_BACKEND" envDefault:"file"` // file, redis or memory
	SessionPath    string `env:"NEWSDESK_SESSION_PATH"`                      // defaults to the user config dir
	RedisURL       string `env:"NEWSDESK_REDIS_URL"`
	RedisPrefix    string `env:"NEWSDESK_REDIS_PREFIX" envDefault:"newsdesk:"`
	RedisFallback  bool   `env:"NEWSDESK_REDIS_FALLBACK" envDefault:"true"` // use the file when Redis is down

	SearchDebounce time.Duration `env:"NEWSDESK_SEARCH_DEBOUNCE" envDefault:"500ms"`
	PerPage        int           `env:"NEWSDESK_PER_PAGE" envDefault:"15"`
	ImageMaxDim    int           `env:"NEWSDESK_IMAGE_MAX_DIM" envDefault:"2048"`

	LogLevel  string `env:"NEWSDESK_LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"NEWSDESK_LOG_FORMAT" envDefault:"text"`
}

// UseRedisSession returns true if sessions are kept in Redis.
func (c Config) UseRedisSession() bool {
	return c.SessionBackend == "redis"
}

// Load parses environment variables and returns the client Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	u, err := url.Parse(cfg.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("NEWSDESK_API_URL must be an absolute URL, got %q", cfg.APIURL)
	}

	switch cfg.SessionBackend {
	case "file", "memory":
	case "redis":
		if cfg.RedisURL == "" {
			return nil, errors.New("NEWSDESK_REDIS_URL is required when NEWSDESK_SESSION_BACKEND=redis")
		}
	default:
		return nil, fmt.Errorf("NEWSDESK_SESSION_BACKEND must be file, redis or memory, got %q", cfg.SessionBackend)
	}

	if cfg.SessionPath == "" {
		cfg.SessionPath = defaultSessionPath()
	}
	if cfg.PerPage <= 0 {
		return nil, fmt.Errorf("NEWSDESK_PER_PAGE must be positive, got %d", cfg.PerPage)
	}
	if cfg.SearchDebounce < 0 || cfg.HTTPTimeout < 0 {
		return nil, errors.New("durations must not be negative")
	}
	if err := checkLogSettings(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, err
	}

	return cfg, nil
}

// defaultSessionPath returns <user config dir>/newsdesk/session.json, or a
// file in the working directory when no config dir is known.
func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".newsdesk", "session.json")
	}
	return filepath.Join(dir, "newsdesk", "session.json")
}

// DevAPIConfig configures the in-memory development backend.
type DevAPIConfig struct {
	Host          string `env:"NEWSDESK_DEVAPI_HOST" envDefault:"127.0.0.1"`
	Port          int    `env:"NEWSDESK_DEVAPI_PORT" envDefault:"8000"`
	Secret        string `env:"NEWSDESK_DEVAPI_SECRET,required"`
	AdminEmail    string `env:"NEWSDESK_DEVAPI_ADMIN_EMAIL" envDefault:"admin@example.com"`
	AdminPassword string `env:"NEWSDESK_DEVAPI_ADMIN_PASSWORD,required"`

	TokenTTL   time.Duration `env:"NEWSDESK_DEVAPI_TOKEN_TTL" envDefault:"24h"`
	ExpirySpec string        `env:"NEWSDESK_DEVAPI_EXPIRY_SPEC" envDefault:"@every 1m"` // cron spec of the flash news expiry job

	LogLevel  string `env:"NEWSDESK_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"NEWSDESK_LOG_FORMAT" envDefault:"text"`
}

// ServerAddr returns the full server address in host:port format.
func (c DevAPIConfig) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MinSecretLength is the minimum length of the token signing secret.
// HS256 keys should be at least as long as the hash output.
const MinSecretLength = 32

// LoadDevAPI parses environment variables for the development backend.
func LoadDevAPI() (*DevAPIConfig, error) {
	cfg := &DevAPIConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.Secret) < MinSecretLength {
		return nil, fmt.Errorf("NEWSDESK_DEVAPI_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSecretLength, len(cfg.Secret))
	}
	for _, weak := range knownWeakSecrets {
		if cfg.Secret == weak {
			return nil, errors.New("NEWSDESK_DEVAPI_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}
	if !hasMinimumEntropy(cfg.Secret) {
		slog.Warn("NEWSDESK_DEVAPI_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("NEWSDESK_DEVAPI_PORT out of range: %d", cfg.Port)
	}
	if cfg.TokenTTL <= 0 {
		return nil, errors.New("NEWSDESK_DEVAPI_TOKEN_TTL must be positive")
	}
	if err := checkLogSettings(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, err
	}

	return cfg, nil
}

func checkLogSettings(level, format string) error {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("NEWSDESK_LOG_LEVEL must be debug, info, warn or error, got %q", level)
	}
	switch strings.ToLower(format) {
	case "text", "json":
	default:
		return fmt.Errorf("NEWSDESK_LOG_FORMAT must be text or json, got %q", format)
	}
	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
