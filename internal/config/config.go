// Package config loads the application configuration from the user's
// config directory, filling in defaults for anything missing.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// DataFile is the task file path. Relative paths resolve against the
	// working directory.
	DataFile string `yaml:"data_file"`

	// ArchiveFile is the completed-task archive database path
	ArchiveFile string `yaml:"archive_file"`

	// DefaultCategory is applied to tasks created without a category
	DefaultCategory string `yaml:"default_category"`

	// ReminderIntervalSeconds is how often the daemon checks reminders
	ReminderIntervalSeconds int `yaml:"reminder_interval_seconds"`

	// UpcomingWindowHours bounds the "upcoming reminders" listing
	UpcomingWindowHours int `yaml:"upcoming_window_hours"`
}

// Load loads config from the user's config directory.
// Returns the default config if no file exists. The DODO_DATA_FILE
// environment variable overrides the task file path either way.
func Load() (*Config, error) {
	config := defaults()

	configPath, err := getConfigPath()
	if err != nil {
		applyEnv(config)
		return config, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		applyEnv(config)
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	config.applyDefaults()
	applyEnv(config)

	return config, nil
}

// Save writes the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// ReminderInterval returns the reminder check interval as a duration
func (c *Config) ReminderInterval() time.Duration {
	return time.Duration(c.ReminderIntervalSeconds) * time.Second
}

// UpcomingWindow returns the upcoming-reminder window as a duration
func (c *Config) UpcomingWindow() time.Duration {
	return time.Duration(c.UpcomingWindowHours) * time.Hour
}

// defaults returns a fully populated default config
func defaults() *Config {
	return &Config{
		DataFile:                "data/tasks.json",
		ArchiveFile:             "data/archive.db",
		DefaultCategory:         "general",
		ReminderIntervalSeconds: 1,
		UpcomingWindowHours:     24,
	}
}

// applyDefaults fills in any missing values
func (c *Config) applyDefaults() {
	d := defaults()
	if c.DataFile == "" {
		c.DataFile = d.DataFile
	}
	if c.ArchiveFile == "" {
		c.ArchiveFile = d.ArchiveFile
	}
	if c.DefaultCategory == "" {
		c.DefaultCategory = d.DefaultCategory
	}
	if c.ReminderIntervalSeconds <= 0 {
		c.ReminderIntervalSeconds = d.ReminderIntervalSeconds
	}
	if c.UpcomingWindowHours <= 0 {
		c.UpcomingWindowHours = d.UpcomingWindowHours
	}
}

// applyEnv applies environment variable overrides
func applyEnv(c *Config) {
	if path := os.Getenv("DODO_DATA_FILE"); path != "" {
		c.DataFile = path
	}
	if path := os.Getenv("DODO_ARCHIVE_FILE"); path != "" {
		c.ArchiveFile = path
	}
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "dodo", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "dodo", "config.yaml"), nil
}

// SocketPath returns the daemon socket path under ~/.dodo
func SocketPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".dodo", "dodo.sock"), nil
}
