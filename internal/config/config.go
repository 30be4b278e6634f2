// Package config loads the process configuration from the environment.
//
// A .env file in the working directory is loaded first when present. Variables
// already set in the environment win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"

	"article-inventory/internal/infra/db"
	pkgconfig "article-inventory/pkg/config"
)

// EnvProduction is the APP_ENV value that switches off stack traces in error
// bodies and debug request logging.
const EnvProduction = "production"

// Database holds the DB_* variables.
type Database struct {
	Driver          string `env:"DB_DRIVER,default=mysql"`
	Host            string `env:"DB_HOST"`
	User            string `env:"DB_USER"`
	Password        string `env:"DB_PASSWORD"`
	Name            string `env:"DB_DATABASE"`
	SSLMode         string `env:"DB_SSLMODE"`
	PoolSize        int    `env:"DB_POOL_SIZE,default=10"`
	MonitorSchedule string `env:"DB_MONITOR_SCHEDULE,default=@every 30s"`

	// Port falls back to the driver's default when unset.
	Port int `env:"DB_PORT"`
}

// Config is the full application configuration.
type Config struct {
	Port             int           `env:"PORT,default=3000"`
	Env              string        `env:"APP_ENV,default=development"`
	LogLevel         string        `env:"LOG_LEVEL,default=info"`
	LogFormat        string        `env:"LOG_FORMAT,default=json"`
	APIKeySecret     string        `env:"API_KEY_SECRET"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
	MaxBodyBytes     int64         `env:"MAX_BODY_BYTES,default=1048576"`
	RateLimitRPS     float64       `env:"RATE_LIMIT_RPS,default=20"`
	RateLimitBurst   int           `env:"RATE_LIMIT_BURST,default=40"`
	TraceSampleRatio float64       `env:"TRACE_SAMPLE_RATIO,default=1"`

	Database Database

	// CORSAllowedOrigins is comma separated in the environment.
	CORSAllowedOrigins []string
}

// Load reads the optional dotenv files (".env" when none are given) and
// decodes the environment into a Config. A value that does not parse as its
// field's type is an error. Ranges are checked by Validate.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}

	if cfg.Database.Port == 0 {
		cfg.Database.Port = db.DefaultPort(cfg.Database.Driver)
	}
	cfg.CORSAllowedOrigins = pkgconfig.GetEnvStringList("CORS_ALLOWED_ORIGINS", []string{"*"})

	return &cfg, nil
}

// Production reports whether APP_ENV is production.
func (c *Config) Production() bool {
	return c.Env == EnvProduction
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// DB converts the database section into the pool configuration.
func (c *Config) DB() db.Config {
	return db.Config{
		Driver:   c.Database.Driver,
		Host:     c.Database.Host,
		Port:     c.Database.Port,
		User:     c.Database.User,
		Password: c.Database.Password,
		Database: c.Database.Name,
		SSLMode:  c.Database.SSLMode,
		PoolSize: c.Database.PoolSize,
	}
}

// Validate checks values that have no usable default.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative, got %v", c.RateLimitRPS)
	}
	if c.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must not be negative, got %d", c.RateLimitBurst)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	if c.TraceSampleRatio < 0 || c.TraceSampleRatio > 1 {
		return fmt.Errorf("TRACE_SAMPLE_RATIO must be within [0,1], got %v", c.TraceSampleRatio)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}
