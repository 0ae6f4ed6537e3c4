package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/marcus/clinic/internal/workdir"
)

const (
	configFile = ".clinic/config.json"
	envFile    = ".env"

	// DefaultAPIBaseURL is the Spring backend address used when nothing is configured
	DefaultAPIBaseURL = "http://localhost:8080"
	defaultTimeout    = 15
	defaultLogLevel   = "info"
)

// Config holds client settings. Values from the JSON file are overridden by
// environment variables (a .env file in the base dir is loaded first).
type Config struct {
	APIBaseURL     string `json:"api_base_url,omitempty" env:"CLINIC_API_URL"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" env:"CLINIC_TIMEOUT_SECONDS"`
	LogLevel       string `json:"log_level,omitempty" env:"CLINIC_LOG_LEVEL"`
	Offline        bool   `json:"offline,omitempty" env:"CLINIC_OFFLINE"`
}

// Timeout returns the HTTP request timeout
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultTimeout * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Dir returns the client state directory under baseDir
func Dir(baseDir string) string {
	return workdir.StateDir(baseDir)
}

// Load reads the config file, applies .env and environment overrides, then
// fills defaults for anything still unset.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFile(baseDir)
	if err != nil {
		return nil, err
	}

	if err := godotenv.Load(filepath.Join(baseDir, envFile)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

// loadFile reads only the JSON file; a missing file is an empty config
func loadFile(baseDir string) (*Config, error) {
	configPath := filepath.Join(baseDir, configFile)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configFile, err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaultTimeout
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
}

// Save writes the config to disk
func Save(baseDir string, cfg *Config) error {
	if _, err := workdir.EnsureStateDir(baseDir); err != nil {
		return err
	}
	configPath := filepath.Join(baseDir, configFile)

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// SetAPIBaseURL updates only the backend URL in the config file
func SetAPIBaseURL(baseDir, url string) error {
	cfg, err := loadFile(baseDir)
	if err != nil {
		return err
	}

	cfg.APIBaseURL = url
	return Save(baseDir, cfg)
}
