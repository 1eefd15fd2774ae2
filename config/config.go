// Package config holds the settings of the ngrams command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the ngrams command.
type Config struct {
	// Pattern source
	PatternsFile     string `yaml:"patterns_file"`
	PatternsRequired bool   `yaml:"patterns_required"`

	// Report settings
	Order    string `yaml:"order"`
	HideZero bool   `yaml:"hide_zero"`

	// Treat every input file as a separate stream
	FlushBetweenFiles bool `yaml:"flush_between_files"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		PatternsFile:      "ngrams.txt",
		PatternsRequired:  true,
		Order:             "index",
		FlushBetweenFiles: true,
	}
}

// Load loads configuration from file and environment. An explicit path must
// exist; the default location is optional.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = getConfigPath()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if path := os.Getenv("NGRAMS_CONFIG"); path != "" {
		return path
	}
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "ngrams", "config.yaml")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "ngrams", "config.yaml")
	}
	return ""
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// loadFromEnv loads configuration from environment variables
func loadFromEnv(cfg *Config) error {
	if file := os.Getenv("NGRAMS_PATTERNS"); file != "" {
		cfg.PatternsFile = file
	}
	if order := os.Getenv("NGRAMS_ORDER"); order != "" {
		cfg.Order = order
	}
	for name, dst := range map[string]*bool{
		"NGRAMS_PATTERNS_REQUIRED": &cfg.PatternsRequired,
		"NGRAMS_HIDE_ZERO":         &cfg.HideZero,
		"NGRAMS_FLUSH":             &cfg.FlushBetweenFiles,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		b, err := parseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		*dst = b
	}
	return nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("%q (use true/false)", s)
}

// Validate checks the configuration for consistency.
func (cfg *Config) Validate() error {
	if cfg.PatternsFile == "" {
		return errors.New("patterns_file must not be empty")
	}
	switch strings.ToLower(cfg.Order) {
	case "", "index", "count", "label":
	default:
		return fmt.Errorf("unknown order %q (use index, count or label)", cfg.Order)
	}
	return nil
}
