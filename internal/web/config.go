package web

import (
	"github.com/streetsweeper/internal/config"
)

// Config represents the web server configuration
type Config struct {
	Server ServerConfig
	Parse  ParseConfig
	Auth   AuthConfig
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port int
	Host string
}

// ParseConfig contains defaults applied to every parse request
type ParseConfig struct {
	AvoidRedundantStreetType bool
	Debug                    bool
}

// AuthConfig contains authentication settings. An empty APIKey leaves the
// API open.
type AuthConfig struct {
	APIKey string
}

// NewConfig maps the process configuration onto the server's.
func NewConfig(c *config.Config) *Config {
	return &Config{
		Server: ServerConfig{
			Port: c.WebPort,
			Host: c.WebHost,
		},
		Parse: ParseConfig{
			AvoidRedundantStreetType: c.AvoidRedundantStreetType,
			Debug:                    c.Debug,
		},
		Auth: AuthConfig{
			APIKey: c.APIKey,
		},
	}
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			Host: "0.0.0.0",
		},
	}
}
