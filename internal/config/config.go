package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

type Config struct {
	DataDir     string `json:"data_dir"`
	MaxRetries  int    `json:"max_retries"`
	BackoffBase int    `json:"backoff_base"`
	WorkerCount int    `json:"worker_count"`
}

const configFileName = "config.json"

// NewConfig creates a config with default values
func NewConfig() *Config {
	return &Config{
		DataDir:     "./db",
		MaxRetries:  3,
		BackoffBase: 2,
		WorkerCount: 1,
	}
}

func configPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	appConfigDir := filepath.Join(configDir, "queuectl")
	if err := os.MkdirAll(appConfigDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(appConfigDir, configFileName), nil
}

func LoadConfig() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	cfg := NewConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// First run: persist the defaults.
			return cfg, SaveConfig(cfg)
		}
		return nil, err
	}
	if err := json.Unmarshal(file, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func SaveConfig(cfg *Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
