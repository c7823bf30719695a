package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"project-board/internal/domain/entity"
	envcfg "project-board/pkg/config"
)

// ErrUnsupportedFormat is returned for config files that are neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported config file format")

// Load builds the configuration from defaults, CONFIG_FILE and the environment,
// then validates it.
func Load() (*Config, error) {
	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays the values present in a YAML or TOML file onto c.
// Keys the file does not mention keep their current values.
func (c *Config) LoadFile(path string) error {
	// #nosec G304 -- path comes from the operator's environment
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parse config file %s: %w", path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), c)
		if err != nil {
			return fmt.Errorf("parse config file %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("parse config file %s: unknown key %q", path, undecoded[0].String())
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return nil
}

// ApplyEnv overrides c with any environment variables that are set.
func (c *Config) ApplyEnv() {
	s := &c.Server
	s.Addr = envcfg.GetEnvString("SERVER_ADDR", s.Addr)
	s.ReadHeaderTimeout = envcfg.GetEnvDuration("SERVER_READ_HEADER_TIMEOUT", s.ReadHeaderTimeout)
	s.ReadTimeout = envcfg.GetEnvDuration("SERVER_READ_TIMEOUT", s.ReadTimeout)
	s.WriteTimeout = envcfg.GetEnvDuration("SERVER_WRITE_TIMEOUT", s.WriteTimeout)
	s.IdleTimeout = envcfg.GetEnvDuration("SERVER_IDLE_TIMEOUT", s.IdleTimeout)
	s.RequestTimeout = envcfg.GetEnvDuration("REQUEST_TIMEOUT", s.RequestTimeout)
	s.ShutdownTimeout = envcfg.GetEnvDuration("SHUTDOWN_TIMEOUT", s.ShutdownTimeout)
	s.MaxBodyBytes = envcfg.GetEnvInt("MAX_BODY_BYTES", s.MaxBodyBytes)

	d := &c.Database
	d.Driver = envcfg.GetEnvString("DB_DRIVER", d.Driver)
	d.DSN = envcfg.GetEnvString("DATABASE_URL", d.DSN)
	d.AutoMigrate = envcfg.GetEnvBool("DB_AUTO_MIGRATE", d.AutoMigrate)
	d.MaxOpenConns = envcfg.GetEnvInt("DB_MAX_OPEN_CONNS", d.MaxOpenConns)
	d.MaxIdleConns = envcfg.GetEnvInt("DB_MAX_IDLE_CONNS", d.MaxIdleConns)
	d.ConnMaxLifetime = envcfg.GetEnvDuration("DB_CONN_MAX_LIFETIME", d.ConnMaxLifetime)
	d.ConnMaxIdleTime = envcfg.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", d.ConnMaxIdleTime)

	a := &c.Auth
	a.JWTSecret = envcfg.GetEnvString("JWT_SECRET", a.JWTSecret)
	a.TokenTTL = envcfg.GetEnvDuration("JWT_TTL", a.TokenTTL)
	a.CookieName = envcfg.GetEnvString("AUTH_COOKIE_NAME", a.CookieName)
	a.CookieSecure = envcfg.GetEnvBool("AUTH_COOKIE_SECURE", a.CookieSecure)
	a.BcryptCost = envcfg.GetEnvInt("BCRYPT_COST", a.BcryptCost)
	a.LoginRate = envcfg.GetEnvInt("LOGIN_RATE_PER_MINUTE", a.LoginRate)
	a.LoginBurst = envcfg.GetEnvInt("LOGIN_BURST", a.LoginBurst)

	p := &c.Pagination
	p.DefaultSize = envcfg.GetEnvInt("PAGINATION_DEFAULT_SIZE", p.DefaultSize)
	p.MaxSize = envcfg.GetEnvInt("PAGINATION_MAX_SIZE", p.MaxSize)
	p.BarLength = envcfg.GetEnvInt("PAGINATION_BAR_LENGTH", p.BarLength)

	t := &c.Tracing
	t.Enabled = envcfg.GetEnvBool("TRACING_ENABLED", t.Enabled)
	t.ServiceName = envcfg.GetEnvString("OTEL_SERVICE_NAME", t.ServiceName)
	t.SampleRatio = envcfg.GetEnvFloat("TRACING_SAMPLE_RATIO", t.SampleRatio)

	st := &c.Stats
	st.Enabled = envcfg.GetEnvBool("STATS_ENABLED", st.Enabled)
	st.Cron = envcfg.GetEnvString("STATS_CRON", st.Cron)
	st.Timeout = envcfg.GetEnvDuration("STATS_TIMEOUT", st.Timeout)
}

const minSecretLength = 32

// Validate returns the first invalid setting as an *entity.ValidationError.
func (c *Config) Validate() error {
	checks := []check{
		{"server.addr", nonEmpty(c.Server.Addr)},
		{"server.read_header_timeout", envcfg.ValidatePositiveDuration(c.Server.ReadHeaderTimeout)},
		{"server.request_timeout", envcfg.ValidatePositiveDuration(c.Server.RequestTimeout)},
		{"server.shutdown_timeout", envcfg.ValidatePositiveDuration(c.Server.ShutdownTimeout)},
		{"server.max_body_bytes", envcfg.ValidateIntRange(c.Server.MaxBodyBytes, 1, 64<<20)},
		{"database.driver", validDriver(c.Database.Driver)},
		{"database.dsn", nonEmpty(c.Database.DSN)},
		{"database.max_open_conns", envcfg.ValidateIntRange(c.Database.MaxOpenConns, 1, 1000)},
		{"database.max_idle_conns", envcfg.ValidateIntRange(c.Database.MaxIdleConns, 0, c.Database.MaxOpenConns)},
		{"auth.jwt_secret", secretLength(c.Auth.JWTSecret)},
		{"auth.token_ttl", envcfg.ValidateDurationRange(c.Auth.TokenTTL, time.Minute, 30*24*time.Hour)},
		{"auth.cookie_name", nonEmpty(c.Auth.CookieName)},
		{"auth.bcrypt_cost", envcfg.ValidateIntRange(c.Auth.BcryptCost, 4, 31)},
		{"auth.login_rate_per_minute", envcfg.ValidateIntRange(c.Auth.LoginRate, 1, 10000)},
		{"auth.login_burst", envcfg.ValidateIntRange(c.Auth.LoginBurst, 1, 10000)},
		{"pagination.default_size", envcfg.ValidateIntRange(c.Pagination.DefaultSize, 1, c.Pagination.MaxSize)},
		{"pagination.bar_length", envcfg.ValidateIntRange(c.Pagination.BarLength, 1, 50)},
		{"tracing.sample_ratio", ratio(c.Tracing.SampleRatio)},
	}
	if c.Stats.Enabled {
		checks = append(checks,
			check{"stats.cron", envcfg.ValidateCronSpec(c.Stats.Cron)},
			check{"stats.timeout", envcfg.ValidatePositiveDuration(c.Stats.Timeout)},
		)
	}

	for _, ch := range checks {
		if ch.err != nil {
			return &entity.ValidationError{Field: ch.field, Message: ch.err.Error()}
		}
	}
	return nil
}

type check struct {
	field string
	err   error
}

func nonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("must not be empty")
	}
	return nil
}

func validDriver(driver string) error {
	switch driver {
	case "pgx", "sqlite3", "sqlite":
		return nil
	}
	return fmt.Errorf("unsupported driver %q (want pgx, sqlite3 or sqlite)", driver)
}

func secretLength(secret string) error {
	if len(secret) < minSecretLength {
		return fmt.Errorf("must be at least %d bytes", minSecretLength)
	}
	return nil
}

func ratio(r float64) error {
	if r < 0 || r > 1 {
		return fmt.Errorf("must be within [0, 1], got %v", r)
	}
	return nil
}
