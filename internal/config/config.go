package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all revise configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
}

type ServerConfig struct {
	Bind string
	Port int
}

type DatabaseConfig struct {
	Path string
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 8000,
		},
		Database: DatabaseConfig{
			Path: "", // resolved at runtime via store.DefaultDBPath()
		},
	}
}

// Load returns the default config with any .env file and environment
// overrides applied. A missing .env file is fine; set variables win over it.
func Load() Config {
	godotenv.Load()

	cfg := Default()
	if bind := os.Getenv("REVISE_BIND"); bind != "" {
		cfg.Server.Bind = bind
	}
	if port := os.Getenv("REVISE_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Server.Port = n
		}
	}
	if path := os.Getenv("REVISE_DB"); path != "" {
		cfg.Database.Path = path
	}
	return cfg
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
