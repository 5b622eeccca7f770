package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// telemetry API. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: the shared API token, the
	// guard-chain limits, and the CORS origin allow-list.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the relational database backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control
// authentication and the request guard chain.
type App struct {
	// APIToken is the shared secret expected in the "Authorization: Bearer"
	// header of every protected request. The process refuses to start when
	// it is empty.
	// Env: APP_API_TOKEN
	APIToken string `env:"API_TOKEN"`

	// CORSOrigins is the list of origins allowed by the CORS layer.
	// An empty list is treated as permissive ("*"), matching the
	// development default.
	// Env: APP_CORS_ORIGINS (comma-separated)
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	// RateLimitEnabled toggles the per-client rate guard. When false the
	// guard is a no-op that never rejects.
	// Env: APP_RATE_LIMIT_ENABLED
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED"`

	// RateLimitPerMinute is the number of requests allowed per client key
	// within a rolling one-minute window when the rate guard is enabled.
	// Env: APP_RATE_LIMIT_PER_MINUTE
	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE"`

	// MaxRequestBytes is the largest declared Content-Length accepted on
	// body-carrying requests before they are rejected with 413.
	// Env: APP_MAX_REQUEST_BYTES
	MaxRequestBytes int64 `env:"MAX_REQUEST_BYTES"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8000").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for the persistence backend.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the database connection string. A "postgres://" DSN selects
	// the pgx driver; any other value is treated as a SQLite file path,
	// which keeps local development dependency-free.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Built-in default values, applied as the lowest-priority configuration
// source so any explicitly configured value wins over them.
const (
	defaultRateLimitPerMinute = 120
	defaultMaxRequestBytes    = 1 << 20
	defaultHTTPAddress        = ":8000"
	defaultRequestTimeout     = 30 * time.Second
	defaultDSN                = "greenhouse.db"
)

// defaults returns the built-in default configuration. It is merged last:
// env defaults on the source structs would make those fields non-zero before
// the flag and JSON sources are merged, silently discarding their values.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			RateLimitPerMinute: defaultRateLimitPerMinute,
			MaxRequestBytes:    defaultMaxRequestBytes,
		},
		Server: Server{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultRequestTimeout,
		},
		Storage: Storage{
			DB: DB{DSN: defaultDSN},
		},
	}
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
