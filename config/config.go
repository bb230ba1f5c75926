package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port        int      `yaml:"port"`
		CorsOrigins []string `yaml:"corsOrigins"`
	} `yaml:"server"`

	Backend struct {
		// APIBaseURL is the AgenticAds backend API root, including the
		// /api suffix, e.g. http://localhost:8000/api
		APIBaseURL string `yaml:"apiBaseUrl"`
		// AuthMode controls whether history/feedback reads require the
		// admin bearer token: "public" or "gated"
		AuthMode       string `yaml:"authMode"`
		TimeoutSeconds int    `yaml:"timeoutSeconds"`
	} `yaml:"backend"`

	Storage struct {
		// StatePath is the sqlite file holding durable client state
		// (current view, admin flag, admin token)
		StatePath string `yaml:"statePath"`
	} `yaml:"storage"`
}

const (
	AuthModePublic = "public"
	AuthModeGated  = "gated"
)

// LoadConfig reads the configuration file and applies defaults and
// environment overrides.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, err
	}

	if url := os.Getenv("BACKEND_API_URL"); url != "" {
		cfg.Backend.APIBaseURL = url
	}

	return cfg, nil
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if len(cfg.Server.CorsOrigins) == 0 {
		cfg.Server.CorsOrigins = []string{"http://localhost:5173"}
	}
	if cfg.Backend.APIBaseURL == "" {
		cfg.Backend.APIBaseURL = "http://localhost:8000/api"
	}
	cfg.Backend.APIBaseURL = strings.TrimRight(cfg.Backend.APIBaseURL, "/")
	if cfg.Backend.AuthMode == "" {
		cfg.Backend.AuthMode = AuthModePublic
	}
	if cfg.Backend.AuthMode != AuthModePublic && cfg.Backend.AuthMode != AuthModeGated {
		return nil, fmt.Errorf("invalid backend auth mode: %q", cfg.Backend.AuthMode)
	}
	if cfg.Backend.TimeoutSeconds == 0 {
		cfg.Backend.TimeoutSeconds = 120
	}
	if cfg.Storage.StatePath == "" {
		cfg.Storage.StatePath = "./data/state.db"
	}

	return &cfg, nil
}
