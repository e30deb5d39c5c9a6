// Package config assembles the runtime configuration of the journal API.
//
// Values are resolved in three layers: built-in defaults, an optional YAML
// file, then environment variables. The result is checked with struct tags
// (github.com/go-playground/validator/v10) before the server starts.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	env "journal-api/pkg/config"
)

// Config is the complete runtime configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Journal  JournalConfig  `yaml:"journal"`
	Stats    StatsConfig    `yaml:"stats"`
	Log      LogConfig      `yaml:"log"`
	Tracing  TracingConfig  `yaml:"tracing"`
	Version  string         `yaml:"version"`
}

// HTTPConfig configures the listener and server timeouts.
type HTTPConfig struct {
	Addr              string        `yaml:"addr" validate:"required,hostname_port"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" validate:"gt=0"`
	ReadTimeout       time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout      time.Duration `yaml:"write_timeout" validate:"gt=0"`
	IdleTimeout       time.Duration `yaml:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
	// TrustedProxies lists CIDRs whose X-Forwarded-For is believed.
	TrustedProxies []string `yaml:"trusted_proxies" validate:"dive,cidr"`
}

// DatabaseConfig selects the store.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver" validate:"oneof=postgres sqlite"`
	URL             string        `yaml:"url" validate:"required"`
	MaxOpenConns    int           `yaml:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int           `yaml:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" validate:"gte=0"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" validate:"gte=0"`
	// CircuitBreaker wraps the repository with a breaker and read retries.
	CircuitBreaker bool `yaml:"circuit_breaker"`
	// StatsInterval is how often pool gauges are refreshed.
	StatsInterval time.Duration `yaml:"stats_interval" validate:"gt=0"`
}

// AuthConfig configures token issuance and the built-in users.
type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret" validate:"required,min=32"`
	TokenTTL      time.Duration `yaml:"token_ttl" validate:"gt=0"`
	AdminUser     string        `yaml:"admin_user" validate:"required"`
	AdminPassword string        `yaml:"admin_password" validate:"required"`
	// DemoUser gets read-only access; both fields empty disables it.
	DemoUser     string `yaml:"demo_user" validate:"required_with=DemoPassword"`
	DemoPassword string `yaml:"demo_password" validate:"required_with=DemoUser"`
	// RateLimit is the number of token requests per client per minute.
	RateLimit int `yaml:"rate_limit" validate:"gte=1"`
}

// JournalConfig configures the journal mapper.
type JournalConfig struct {
	DatePolicy string `yaml:"date_policy" validate:"oneof=fallback reject"`
}

// StatsConfig schedules the journals_total refresh job.
type StatsConfig struct {
	Schedule string `yaml:"schedule" validate:"cron"`
}

// LogConfig mirrors logging.Options.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"oneof=json text"`
}

// TracingConfig configures the OpenTelemetry sampler.
type TracingConfig struct {
	SampleRatio float64 `yaml:"sample_ratio" validate:"gte=0,lte=1"`
}

// Default returns the configuration used when nothing overrides it.
// Secrets and credentials have no defaults.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:          "postgres",
			MaxOpenConns:    25,
			MaxIdleConns:    10,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 30 * time.Minute,
			CircuitBreaker:  true,
			StatsInterval:   15 * time.Second,
		},
		Auth: AuthConfig{
			TokenTTL:  time.Hour,
			RateLimit: 5,
		},
		Journal: JournalConfig{DatePolicy: "fallback"},
		Stats:   StatsConfig{Schedule: "@every 1m"},
		Log:     LogConfig{Level: "info", Format: "json"},
		Tracing: TracingConfig{SampleRatio: 1.0},
		Version: "dev",
	}
}

// Load builds the configuration from defaults, the YAML file at path (skipped
// when path is empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			configValidationErrors.WithLabelValues("file").Inc()
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	configLoadTimestamp.SetToCurrentTime()
	return &cfg, nil
}

func (c *Config) mergeFile(path string) error {
	// #nosec G304 -- path comes from CONFIG_FILE, set by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	// decoding into the defaults keeps keys the file omits
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.HTTP.Addr = env.GetEnvString("HTTP_ADDR", c.HTTP.Addr)
	c.HTTP.ShutdownTimeout = env.GetEnvDuration("HTTP_SHUTDOWN_TIMEOUT", c.HTTP.ShutdownTimeout)
	c.HTTP.TrustedProxies = env.GetEnvStringList("TRUSTED_PROXIES", c.HTTP.TrustedProxies)

	c.Database.Driver = env.GetEnvString("DATABASE_DRIVER", c.Database.Driver)
	c.Database.URL = env.GetEnvString("DATABASE_URL", c.Database.URL)
	c.Database.MaxOpenConns = env.GetEnvInt("DB_MAX_OPEN_CONNS", c.Database.MaxOpenConns)
	c.Database.MaxIdleConns = env.GetEnvInt("DB_MAX_IDLE_CONNS", c.Database.MaxIdleConns)
	c.Database.ConnMaxLifetime = env.GetEnvDuration("DB_CONN_MAX_LIFETIME", c.Database.ConnMaxLifetime)
	c.Database.ConnMaxIdleTime = env.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", c.Database.ConnMaxIdleTime)
	c.Database.CircuitBreaker = env.GetEnvBool("DB_CIRCUIT_BREAKER", c.Database.CircuitBreaker)

	c.Auth.JWTSecret = env.GetEnvString("JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.TokenTTL = env.GetEnvDuration("TOKEN_TTL", c.Auth.TokenTTL)
	c.Auth.AdminUser = env.GetEnvString("ADMIN_USER", c.Auth.AdminUser)
	c.Auth.AdminPassword = env.GetEnvString("ADMIN_USER_PASSWORD", c.Auth.AdminPassword)
	c.Auth.DemoUser = env.GetEnvString("DEMO_USER", c.Auth.DemoUser)
	c.Auth.DemoPassword = env.GetEnvString("DEMO_USER_PASSWORD", c.Auth.DemoPassword)
	c.Auth.RateLimit = env.GetEnvInt("AUTH_RATE_LIMIT", c.Auth.RateLimit)

	c.Journal.DatePolicy = env.GetEnvString("DATE_POLICY", c.Journal.DatePolicy)
	c.Stats.Schedule = env.GetEnvString("STATS_CRON_SCHEDULE", c.Stats.Schedule)

	c.Log.Level = env.GetEnvString("LOG_LEVEL", c.Log.Level)
	c.Log.Format = env.GetEnvString("LOG_FORMAT", c.Log.Format)
	c.Tracing.SampleRatio = env.GetEnvFloat("OTEL_SAMPLE_RATIO", c.Tracing.SampleRatio)
	c.Version = env.GetEnvString("VERSION", c.Version)
}

// ErrInvalid wraps every validation failure returned by Validate.
var ErrInvalid = errors.New("invalid configuration")
