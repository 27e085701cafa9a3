// Package config loads tracker settings from an optional YAML file and
// SHOWDOWN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"showdown-tracker/client"
)

// DefaultConfigFile is read when no path is given and the file exists.
const DefaultConfigFile = "showdown.yaml"

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Narration NarrationConfig `yaml:"narration"`
}

type ServerConfig struct {
	URL               string        `yaml:"url" env:"SHOWDOWN_SERVER_URL"`
	ReconnectAttempts int           `yaml:"reconnect_attempts" env:"SHOWDOWN_RECONNECT_ATTEMPTS"`
	ReconnectDelay    time.Duration `yaml:"reconnect_delay" env:"SHOWDOWN_RECONNECT_DELAY"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" env:"SHOWDOWN_LOG_LEVEL"`
	// Format is text or json.
	Format string `yaml:"format" env:"SHOWDOWN_LOG_FORMAT"`
}

type MetricsConfig struct {
	// Addr enables the Prometheus endpoint when non-empty, e.g. ":9090".
	Addr string `yaml:"addr" env:"SHOWDOWN_METRICS_ADDR"`
}

type NarrationConfig struct {
	TurnPrefix bool `yaml:"turn_prefix" env:"SHOWDOWN_TURN_PREFIX"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:               client.DefaultServerURL,
			ReconnectAttempts: 3,
			ReconnectDelay:    2 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Narration: NarrationConfig{
			TurnPrefix: true,
		},
	}
}

// Load starts from Default, applies the YAML file at path and then the
// environment. An empty path falls back to DefaultConfigFile if present.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && !explicit:
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return errors.New("server.url is required")
	}
	if c.Server.ReconnectAttempts < 1 {
		return fmt.Errorf("server.reconnect_attempts must be at least 1, got %d", c.Server.ReconnectAttempts)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}
