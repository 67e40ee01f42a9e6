// Package config loads preview settings from a YAML file, with walk-up
// discovery so a project can pin its own preview defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for the preview tool
type Config struct {
	// TabWidth is the indentation width used when measuring the document
	// for the collapse decision.
	TabWidth int `yaml:"tab_width"`
	// CollapseLines is the line-count threshold above which a rendered
	// document starts collapsed.
	CollapseLines int `yaml:"collapse_lines"`
	// Filter is a default JSONPath expression applied when the CLI is
	// given none.
	Filter string `yaml:"filter"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		TabWidth:      2,
		CollapseLines: 100,
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.TabWidth < 0 {
		return fmt.Errorf("tab_width must be >= 0, got %d", c.TabWidth)
	}
	if c.CollapseLines <= 0 {
		return fmt.Errorf("collapse_lines must be > 0, got %d", c.CollapseLines)
	}
	return nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".formiko.yml", ".formiko.yaml", "formiko.yml", "formiko.yaml"}

	// Start from current directory
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		// Move up one directory
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}
