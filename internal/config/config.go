// Package config loads the service configuration from a YAML file with
// environment overrides for secrets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Server struct {
		Port        int `yaml:"port"`
		MetricsPort int `yaml:"metrics_port"`
	} `yaml:"server"`

	Vision struct {
		BaseURL string `yaml:"base_url"`
		Model   string `yaml:"model"`
		// APIKey is normally left empty here and supplied via the
		// VISION_API_KEY environment variable.
		APIKey string `yaml:"api_key"`
	} `yaml:"vision"`

	Storage struct {
		LedgerPath  string `yaml:"ledger_path"`
		HistoryPath string `yaml:"history_path"`
		UploadDir   string `yaml:"upload_dir"`
	} `yaml:"storage"`

	Sensor struct {
		Enabled         bool    `yaml:"enabled"`
		PollSeconds     float64 `yaml:"poll_seconds"`
		CooldownSeconds float64 `yaml:"cooldown_seconds"`
	} `yaml:"sensor"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Server.MetricsPort = 9090
	cfg.Vision.Model = "qwen-vl-plus"
	cfg.Storage.LedgerPath = "fridge_inventory.json"
	cfg.Storage.HistoryPath = "fridge_history.db"
	cfg.Storage.UploadDir = "uploads"
	cfg.Sensor.Enabled = true
	cfg.Sensor.PollSeconds = 0.1
	cfg.Sensor.CooldownSeconds = 3.0
	return cfg
}

// Load reads the configuration file at path, applying defaults for anything
// unset and the VISION_API_KEY environment override. A missing file is not an
// error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if key := os.Getenv("VISION_API_KEY"); key != "" {
		cfg.Vision.APIKey = key
	}
	return cfg, nil
}
