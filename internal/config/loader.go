package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingDatabaseURL is returned when no store connection string is configured
var ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")

// Option overrides a setting after the environment and config file are read
type Option func(*viper.Viper)

// WithDatabaseURL overrides DATABASE_URL when url is non-empty
func WithDatabaseURL(url string) Option {
	return func(v *viper.Viper) {
		if url != "" {
			v.Set("database_url", url)
		}
	}
}

// Load loads configuration from environment variables and config files
func Load(opts ...Option) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/phonebook")

	// Ignore error if config file not found
	_ = v.ReadInConfig()

	for _, opt := range opts {
		opt(v)
	}

	var cfg Config

	// Server
	cfg.Server.Host = v.GetString("server_host")
	cfg.Server.Port = v.GetInt("port")
	cfg.Server.Env = v.GetString("server_env")
	cfg.Server.StaticDir = v.GetString("static_dir")

	// Database
	cfg.Database.URL = v.GetString("database_url")
	cfg.Database.MaxConns = int32(v.GetInt("database_max_conns"))
	cfg.Database.MinConns = int32(v.GetInt("database_min_conns"))

	// Redis
	cfg.Redis.URL = v.GetString("redis_url")

	// Rate limiting
	cfg.RateLimit.Enabled = v.GetBool("rate_limit_enabled")
	cfg.RateLimit.Max = v.GetInt("rate_limit_max")
	cfg.RateLimit.Window = time.Duration(v.GetInt("rate_limit_window_seconds")) * time.Second

	// CORS
	cfg.CORS.AllowedOrigins = splitList(v.GetString("cors_allowed_origins"))

	// Logging
	cfg.Log.Level = v.GetString("log_level")
	cfg.Log.Format = v.GetString("log_format")

	// Sentry
	cfg.Sentry.DSN = v.GetString("sentry_dsn")
	cfg.Sentry.Environment = v.GetString("sentry_environment")
	cfg.Sentry.SampleRate = v.GetFloat64("sentry_sample_rate")
	if cfg.Sentry.Environment == "" {
		cfg.Sentry.Environment = cfg.Server.Env
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("port", 3001)
	v.SetDefault("server_env", "development")
	v.SetDefault("static_dir", "")

	// Database defaults
	v.SetDefault("database_url", "")
	v.SetDefault("database_max_conns", 10)
	v.SetDefault("database_min_conns", 1)

	// Redis defaults
	v.SetDefault("redis_url", "")

	// Rate limiting defaults
	v.SetDefault("rate_limit_enabled", false)
	v.SetDefault("rate_limit_max", 100)
	v.SetDefault("rate_limit_window_seconds", 60)

	// CORS defaults
	v.SetDefault("cors_allowed_origins", "*")

	// Logging defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	// Sentry defaults
	v.SetDefault("sentry_dsn", "")
	v.SetDefault("sentry_environment", "")
	v.SetDefault("sentry_sample_rate", 1.0)
}

func validate(cfg *Config) error {
	if cfg.Database.URL == "" {
		return ErrMissingDatabaseURL
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid PORT %d: must be between 1 and 65535", cfg.Server.Port)
	}
	if cfg.RateLimit.Enabled && !cfg.Redis.Enabled() {
		return fmt.Errorf("RATE_LIMIT_ENABLED requires REDIS_URL")
	}
	if cfg.RateLimit.Enabled && (cfg.RateLimit.Max <= 0 || cfg.RateLimit.Window <= 0) {
		return fmt.Errorf("rate limit max and window must be positive")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
