// Package config loads server settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variable names.
const (
	EnvDatabaseURL          = "DATABASE_URL"
	EnvAuthSecret           = "AUTH_SECRET"
	EnvAuthBaseURL          = "AUTH_BASE_URL"
	EnvAddr                 = "ADDR"
	EnvRedisHost            = "REDIS_HOST"
	EnvRedisPort            = "REDIS_PORT"
	EnvRedisPassword        = "REDIS_PASSWORD"
	EnvRunMigrations        = "RUN_MIGRATIONS"
	EnvSessionExpiresIn     = "SESSION_EXPIRES_IN"
	EnvSessionUpdateAge     = "SESSION_UPDATE_AGE"
	EnvListUsersRequireAuth = "LIST_USERS_REQUIRE_AUTH"
	EnvLogLevel             = "LOG_LEVEL"
	EnvAuthRateLimit        = "AUTH_RATE_LIMIT"
)

const (
	defaultBaseURL       = "http://localhost:3000"
	defaultAddr          = ":3000"
	defaultRedisPort     = "6379"
	defaultExpiresIn     = 7 * 24 * time.Hour
	defaultUpdateAge     = 24 * time.Hour
	defaultAuthRateLimit = 100
	// AuthRateWindow is the fixed window AUTH_RATE_LIMIT applies to.
	AuthRateWindow = 10 * time.Second
)

var (
	// ErrMissingDatabaseURL is returned when DATABASE_URL is not set.
	ErrMissingDatabaseURL = errors.New("DATABASE_URL environment variable is not set")
	// ErrMissingAuthSecret is returned when AUTH_SECRET is not set.
	ErrMissingAuthSecret = errors.New("AUTH_SECRET environment variable is not set")
)

// Config holds runtime settings for the server.
type Config struct {
	DatabaseURL string
	AuthSecret  string
	// BaseURL is the public origin of the service; it is the credential issuer
	// and the only origin allowed by CORS.
	BaseURL string
	Addr    string

	// RedisAddr is empty when Redis is not configured.
	RedisAddr     string
	RedisPassword string

	RunMigrations bool

	SessionExpiresIn time.Duration
	SessionUpdateAge time.Duration

	ListUsersRequireAuth bool

	LogLevel slog.Level

	// AuthRateLimit is the number of auth requests a client may make per AuthRateWindow.
	AuthRateLimit int
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:   os.Getenv(EnvDatabaseURL),
		AuthSecret:    os.Getenv(EnvAuthSecret),
		BaseURL:       getEnv(EnvAuthBaseURL, defaultBaseURL),
		Addr:          getEnv(EnvAddr, defaultAddr),
		RedisPassword: os.Getenv(EnvRedisPassword),
	}

	if host := os.Getenv(EnvRedisHost); host != "" {
		cfg.RedisAddr = host + ":" + getEnv(EnvRedisPort, defaultRedisPort)
	}

	var err error
	if cfg.RunMigrations, err = getBool(EnvRunMigrations, false); err != nil {
		return Config{}, err
	}
	if cfg.ListUsersRequireAuth, err = getBool(EnvListUsersRequireAuth, false); err != nil {
		return Config{}, err
	}
	if cfg.SessionExpiresIn, err = getDuration(EnvSessionExpiresIn, defaultExpiresIn); err != nil {
		return Config{}, err
	}
	if cfg.SessionUpdateAge, err = getDuration(EnvSessionUpdateAge, defaultUpdateAge); err != nil {
		return Config{}, err
	}
	if cfg.AuthRateLimit, err = getInt(EnvAuthRateLimit, defaultAuthRateLimit); err != nil {
		return Config{}, err
	}
	if cfg.LogLevel, err = getLevel(EnvLogLevel, slog.LevelInfo); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that required settings are present.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	if c.AuthSecret == "" {
		return ErrMissingAuthSecret
	}
	return nil
}

// SecureCookies reports whether session cookies should carry the Secure flag.
func (c Config) SecureCookies() bool {
	return strings.HasPrefix(c.BaseURL, "https://")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", key, v)
	}
	return n, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive duration", key, v)
	}
	return d, nil
}

func getLevel(key string, def slog.Level) (slog.Level, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		return def, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return level, nil
}
