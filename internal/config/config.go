package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds settings shared by the CLI, the HTTP server and the batch
// runner.
type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	// Parsing
	AvoidRedundantStreetType bool `env:"AVOID_REDUNDANT_STREET_TYPE" envDefault:"false"`

	// HTTP server
	WebHost string `env:"WEB_HOST" envDefault:"0.0.0.0"`
	WebPort int    `env:"WEB_PORT" envDefault:"8080"`
	// APIKey, when set, is required in X-API-Key on /api routes
	APIKey string `env:"API_KEY"`

	// PostgreSQL
	DBHost     string `env:"PGHOST" envDefault:"localhost"`
	DBPort     int    `env:"PGPORT" envDefault:"5432"`
	DBUser     string `env:"PGUSER" envDefault:"streetsweeper"`
	DBPassword string `env:"PGPASSWORD" envDefault:"password"`
	DBName     string `env:"PGDATABASE" envDefault:"streetsweeper"`
	DBSSLMode  string `env:"PGSSLMODE" envDefault:"disable"`
	DBMaxConns int    `env:"DB_MAX_CONNECTIONS" envDefault:"20"`

	// Redis parse cache; an empty address disables caching
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	CacheTTL      time.Duration `env:"PARSE_CACHE_TTL" envDefault:"24h"`

	// Batch worker pool
	BatchWorkers int `env:"BATCH_WORKERS" envDefault:"4"`
	BatchSize    int `env:"BATCH_SIZE" envDefault:"500"`
}

// Load reads the .env file, if any, then the environment.
func Load() (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the services cannot run with.
func (c *Config) Validate() error {
	if c.WebPort < 1 || c.WebPort > 65535 {
		return fmt.Errorf("invalid WEB_PORT: %d", c.WebPort)
	}
	if c.BatchWorkers < 1 {
		return fmt.Errorf("BATCH_WORKERS must be at least 1, got %d", c.BatchWorkers)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("BATCH_SIZE must be at least 1, got %d", c.BatchSize)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("PARSE_CACHE_TTL must not be negative, got %v", c.CacheTTL)
	}
	return nil
}

// PostgresDSN returns the lib/pq connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// WebAddr is the listen address for the HTTP server.
func (c *Config) WebAddr() string {
	return fmt.Sprintf("%s:%d", c.WebHost, c.WebPort)
}
