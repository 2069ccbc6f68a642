// Package config loads cmd/editpilot's optional YAML configuration. The
// engine packages (pkg/editcore, pkg/render) never see this type; it exists
// only to configure the CLI and HTTP server.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig configures cmd/editpilot serve.
type ServerConfig struct {
	Addr          string `yaml:"addr"`
	HistoryDBPath string `yaml:"historyDbPath"`
}

// Config is the top-level editpilot configuration document.
type Config struct {
	LogLevel   string       `yaml:"logLevel"`
	GitStaging bool         `yaml:"gitStaging"`
	Server     ServerConfig `yaml:"server"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		LogLevel:   "info",
		GitStaging: false,
		Server: ServerConfig{
			Addr:          ":8080",
			HistoryDBPath: "editpilot.db",
		},
	}
}

// LoadFromFile reads and validates a YAML config document at path. A
// missing path is not an error: callers get Default() back unchanged.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields that matter to the commands that read them.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logLevel %q", c.LogLevel)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	return nil
}
