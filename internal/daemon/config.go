// Package daemon manages the sage daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/sage-journal/sage/internal/domain"
)

// Config holds all daemon configuration.
type Config struct {
	Storage       StorageConfig      `toml:"storage"`
	API           APIConfig          `toml:"api"`
	Notifications NotificationConfig `toml:"notifications"`
	Logging       LoggingConfig      `toml:"logging"`
}

// StorageConfig controls where progression state lives.
type StorageConfig struct {
	Dir string `toml:"dir"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	EnableMetrics bool   `toml:"enable_metrics"`
}

// NotificationConfig controls the pending notification feed.
type NotificationConfig struct {
	MaxPerDay  int    `toml:"max_per_day"`
	QuietStart string `toml:"quiet_start"`
	QuietEnd   string `toml:"quiet_end"`
}

// Policy converts the config section to a domain policy.
func (n NotificationConfig) Policy() domain.NotificationPolicy {
	return domain.NotificationPolicy{
		MaxPerDay:  n.MaxPerDay,
		QuietStart: n.QuietStart,
		QuietEnd:   n.QuietEnd,
	}
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	home := sageHome()
	policy := domain.DefaultNotificationPolicy()
	return Config{
		Storage: StorageConfig{
			Dir: home,
		},
		API: APIConfig{
			Host:          "127.0.0.1",
			Port:          7420,
			EnableMetrics: true,
		},
		Notifications: NotificationConfig{
			MaxPerDay:  policy.MaxPerDay,
			QuietStart: policy.QuietStart,
			QuietEnd:   policy.QuietEnd,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(home, "sage.log"),
		},
	}
}

// LoadConfig reads config from ~/.sage/config.toml, falling back to
// defaults when no file exists.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(sageHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.sage/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(sageHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// sageHome returns the sage data directory.
func sageHome() string {
	if env := os.Getenv("SAGE_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".sage")
}

// SageHome is exported for use by other packages.
func SageHome() string {
	return sageHome()
}
