package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds CLI configuration stored at ~/.orrery/config.
type Config struct {
	File           string `yaml:"file,omitempty"`
	FPS            int    `yaml:"fps"`
	ShowProperties bool   `yaml:"show_properties"`
	Watch          bool   `yaml:"watch"`
	LogFile        string `yaml:"log_file,omitempty"`
	LogLevel       string `yaml:"log_level,omitempty"`
}

// Default returns the configuration used when no file exists on disk.
func Default() *Config {
	return &Config{
		FPS:            30,
		ShowProperties: true,
		Watch:          true,
		LogLevel:       "info",
	}
}

// Path returns the config file path.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".orrery", "config")
}

// DefaultLogPath returns the log file used when log_file is unset.
func DefaultLogPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".orrery", "orrery.log")
}

// Load reads and parses the config file. A missing file yields defaults; an
// existing file with loose permissions is an error.
func Load() (*Config, error) {
	path := Path()

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat config: %w", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Start from defaults so keys absent from the file keep their defaults.
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.FPS <= 0 {
		cfg.FPS = Default().FPS
	}

	return cfg, nil
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// ResolvedLogPath returns the configured log file, or the default when unset.
func (c *Config) ResolvedLogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return DefaultLogPath()
}
