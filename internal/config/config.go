package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents codesum configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// TOC enables the table-of-contents section in generated reports
	TOC bool `yaml:"toc"`

	// IgnoreFile is the path to an external ignore-pattern file
	// (gitignore syntax, one pattern per line)
	IgnoreFile string `yaml:"ignore_file"`

	// IgnoreExtensions lists file extensions to exclude at run time,
	// normalized to leading-dot lowercase before use
	IgnoreExtensions []string `yaml:"ignore_extensions"`

	// History enables recording generate runs in the history database
	History bool `yaml:"history"`

	// AllowedExtensions overrides the built-in extension allow-list
	// (empty = use the built-in list)
	AllowedExtensions []string `yaml:"allowed_extensions"`

	// AllowedBasenames overrides the built-in extensionless basename
	// allow-list (empty = use the built-in list)
	AllowedBasenames []string `yaml:"allowed_basenames"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:          "info",
		TOC:               false,
		IgnoreFile:        "",
		IgnoreExtensions:  nil,
		History:           true,
		AllowedExtensions: nil,
		AllowedBasenames:  nil,
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// File doesn't exist, return defaults (not an error)
		return cfg, nil
	}

	// Read the file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlCfg Config
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply values from file (merging with defaults)
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.IgnoreFile != "" {
		cfg.IgnoreFile = yamlCfg.IgnoreFile
	}
	if yamlCfg.IgnoreExtensions != nil {
		cfg.IgnoreExtensions = yamlCfg.IgnoreExtensions
	}
	if yamlCfg.AllowedExtensions != nil {
		cfg.AllowedExtensions = yamlCfg.AllowedExtensions
	}
	if yamlCfg.AllowedBasenames != nil {
		cfg.AllowedBasenames = yamlCfg.AllowedBasenames
	}

	// Booleans whose default is not the zero value need a presence check:
	// "history: false" must win over the default true
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if _, exists := rawMap["toc"]; exists {
			cfg.TOC = yamlCfg.TOC
		}
		if _, exists := rawMap["history"]; exists {
			cfg.History = yamlCfg.History
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .codesum/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ".codesum", "config.yaml")
	return LoadConfig(configPath)
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
// This allows CLI flags to take precedence over config file settings
func (c *Config) MergeWithFlags(logLevel *string, toc *bool, ignoreFile *string, ignoreExtensions *[]string, history *bool) {
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if toc != nil {
		c.TOC = *toc
	}
	if ignoreFile != nil {
		c.IgnoreFile = *ignoreFile
	}
	if ignoreExtensions != nil {
		c.IgnoreExtensions = *ignoreExtensions
	}
	if history != nil {
		c.History = *history
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	return nil
}

// DefaultYAML returns the default configuration rendered as YAML,
// used by `codesum init` to scaffold .codesum/config.yaml
func DefaultYAML() []byte {
	return []byte(`# codesum configuration
log_level: info
toc: false
ignore_file: ""
ignore_extensions: []
history: true
allowed_extensions: []
allowed_basenames: []
`)
}
