// Package config assembles the board's runtime configuration.
//
// Values come from three layers, later layers winning:
//  1. compiled defaults (Default)
//  2. an optional file named by CONFIG_FILE (.yaml, .yml or .toml)
//  3. environment variables
package config

import (
	"time"
)

// Config is the complete runtime configuration of the API server.
type Config struct {
	Server     ServerConfig     `yaml:"server" toml:"server"`
	Database   DatabaseConfig   `yaml:"database" toml:"database"`
	Auth       AuthConfig       `yaml:"auth" toml:"auth"`
	Pagination PaginationConfig `yaml:"pagination" toml:"pagination"`
	Tracing    TracingConfig    `yaml:"tracing" toml:"tracing"`
	Stats      StatsConfig      `yaml:"stats" toml:"stats"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	// Addr is the listen address. Env: SERVER_ADDR. Default: ":8080"
	Addr string `yaml:"addr" toml:"addr"`

	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" toml:"read_header_timeout"`
	ReadTimeout       time.Duration `yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout" toml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout" toml:"idle_timeout"`

	// RequestTimeout bounds each handler. Env: REQUEST_TIMEOUT. Default: 30s
	RequestTimeout time.Duration `yaml:"request_timeout" toml:"request_timeout"`

	// ShutdownTimeout bounds graceful shutdown. Env: SHUTDOWN_TIMEOUT. Default: 10s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"`

	// MaxBodyBytes caps form and JSON bodies. Env: MAX_BODY_BYTES. Default: 1 MiB
	MaxBodyBytes int `yaml:"max_body_bytes" toml:"max_body_bytes"`
}

// DatabaseConfig selects the store and sizes its pool.
type DatabaseConfig struct {
	// Driver is one of pgx, sqlite3, sqlite. Env: DB_DRIVER. Default: pgx
	Driver string `yaml:"driver" toml:"driver"`

	// DSN is the connection string. Env: DATABASE_URL
	DSN string `yaml:"dsn" toml:"dsn"`

	// AutoMigrate applies the schema at startup. Env: DB_AUTO_MIGRATE. Default: true
	AutoMigrate bool `yaml:"auto_migrate" toml:"auto_migrate"`

	MaxOpenConns    int           `yaml:"max_open_conns" toml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns" toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" toml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" toml:"conn_max_idle_time"`
}

// AuthConfig covers session tokens, password hashing and login throttling.
type AuthConfig struct {
	// JWTSecret signs session tokens. Env: JWT_SECRET. Required, at least 32 bytes.
	JWTSecret string `yaml:"jwt_secret" toml:"jwt_secret"`

	// TokenTTL is the session lifetime. Env: JWT_TTL. Default: 24h
	TokenTTL time.Duration `yaml:"token_ttl" toml:"token_ttl"`

	// CookieName holds the session token. Env: AUTH_COOKIE_NAME. Default: board_session
	CookieName string `yaml:"cookie_name" toml:"cookie_name"`

	// CookieSecure sets the Secure attribute. Env: AUTH_COOKIE_SECURE. Default: false
	CookieSecure bool `yaml:"cookie_secure" toml:"cookie_secure"`

	// BcryptCost for new password hashes. Env: BCRYPT_COST. Default: 10
	BcryptCost int `yaml:"bcrypt_cost" toml:"bcrypt_cost"`

	// LoginRate is the sustained login attempts per minute per client.
	// Env: LOGIN_RATE_PER_MINUTE. Default: 10
	LoginRate int `yaml:"login_rate_per_minute" toml:"login_rate_per_minute"`

	// LoginBurst. Env: LOGIN_BURST. Default: 5
	LoginBurst int `yaml:"login_burst" toml:"login_burst"`
}

// PaginationConfig mirrors the tunable part of pagination.Config.
type PaginationConfig struct {
	DefaultSize int `yaml:"default_size" toml:"default_size"`
	MaxSize     int `yaml:"max_size" toml:"max_size"`
	BarLength   int `yaml:"bar_length" toml:"bar_length"`
}

// TracingConfig controls the OpenTelemetry tracer provider.
type TracingConfig struct {
	// Enabled installs an SDK provider. Env: TRACING_ENABLED. Default: false
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// ServiceName. Env: OTEL_SERVICE_NAME. Default: project-board
	ServiceName string `yaml:"service_name" toml:"service_name"`

	// SampleRatio in [0, 1]. Env: TRACING_SAMPLE_RATIO. Default: 1
	SampleRatio float64 `yaml:"sample_ratio" toml:"sample_ratio"`
}

// StatsConfig schedules the board statistics refresher.
type StatsConfig struct {
	// Enabled. Env: STATS_ENABLED. Default: true
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// Cron accepts five-field specs and descriptors. Env: STATS_CRON. Default: "@every 1m"
	Cron string `yaml:"cron" toml:"cron"`

	// Timeout bounds one refresh run. Env: STATS_TIMEOUT. Default: 15s
	Timeout time.Duration `yaml:"timeout" toml:"timeout"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
			RequestTimeout:    30 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			MaxBodyBytes:      1 << 20,
		},
		Database: DatabaseConfig{
			Driver:          "pgx",
			AutoMigrate:     true,
			MaxOpenConns:    25,
			MaxIdleConns:    10,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 30 * time.Minute,
		},
		Auth: AuthConfig{
			TokenTTL:   24 * time.Hour,
			CookieName: "board_session",
			BcryptCost: 10,
			LoginRate:  10,
			LoginBurst: 5,
		},
		Pagination: PaginationConfig{
			DefaultSize: 10,
			MaxSize:     100,
			BarLength:   5,
		},
		Tracing: TracingConfig{
			ServiceName: "project-board",
			SampleRatio: 1,
		},
		Stats: StatsConfig{
			Enabled: true,
			Cron:    "@every 1m",
			Timeout: 15 * time.Second,
		},
	}
}
