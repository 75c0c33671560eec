// Package config provides configuration loading for sightline commands.
//
// Values come from three layers, later layers winning: an optional YAML file
// (SIGHTLINE_CONFIG or ./sightline.yaml), a .env file in the working
// directory, and real environment variables.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults for the inference service connection.
const (
	DefaultEndpointURL = "wss://infer.sightline.dev/v1/session"
	DefaultServerPort  = 8080
)

// Errors returned when required configuration is missing.
var (
	ErrNoAPIKey    = errors.New("config: SIGHTLINE_API_KEY is required")
	ErrNoProfileID = errors.New("config: SIGHTLINE_PROFILE_ID is required")
)

// Config holds the settings for the sightline server.
type Config struct {
	// APIKey authenticates against the hosted inference service.
	APIKey string `yaml:"api_key"`

	// ProfileID identifies the inference profile to run against.
	ProfileID string `yaml:"profile_id"`

	// EndpointURL is the websocket endpoint of the inference service.
	EndpointURL string `yaml:"endpoint_url"`

	// Port is the HTTP listen port.
	Port int `yaml:"port"`

	// LogLevel sets the slog level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// Load assembles the configuration from file, .env, and environment.
// It returns an error if a required value is absent so the process can
// refuse to start with a clear diagnostic.
func Load() (*Config, error) {
	cfg := &Config{
		EndpointURL: DefaultEndpointURL,
		Port:        DefaultServerPort,
		LogLevel:    "info",
	}

	if path := configPath(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	// .env is optional; missing file is not an error.
	_ = godotenv.Load()

	if v := os.Getenv("SIGHTLINE_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("SIGHTLINE_PROFILE_ID"); v != "" {
		cfg.ProfileID = v
	}
	if v := os.Getenv("SIGHTLINE_ENDPOINT_URL"); v != "" {
		cfg.EndpointURL = v
	}
	if v := os.Getenv("SIGHTLINE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("PORT"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.Port)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrNoAPIKey
	}
	if c.ProfileID == "" {
		return ErrNoProfileID
	}
	return nil
}

// configPath returns the YAML config file to load, or "" if none exists.
func configPath() string {
	if path := os.Getenv("SIGHTLINE_CONFIG"); path != "" {
		return path
	}
	if _, err := os.Stat("sightline.yaml"); err == nil {
		return "sightline.yaml"
	}
	return ""
}

// ServerURL returns the sightline server URL for the client command.
// Falls back to localhost with the default port.
func ServerURL() string {
	if url := os.Getenv("SIGHTLINE_SERVER_URL"); url != "" {
		return url
	}
	return fmt.Sprintf("http://localhost:%d", DefaultServerPort)
}
