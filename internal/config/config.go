package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

type StorageConfig struct {
	// Root is the directory holding projects/, versions/, and index.db.
	Root string `yaml:"root"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Storage: StorageConfig{
			Root: "printdesk-data",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("PRINTDESK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if root := os.Getenv("PRINTDESK_STORAGE_ROOT"); root != "" {
		cfg.Storage.Root = root
	}
	if level := os.Getenv("PRINTDESK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
