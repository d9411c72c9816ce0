package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config   *Config
	filePath string
}

// NewLoader creates a new configuration loader reading the default
// configuration file location
func NewLoader() *Loader {
	return NewLoaderWithFile(DefaultConfigPath())
}

// NewLoaderWithFile creates a loader reading the given configuration file.
// An empty path skips the file layer.
func NewLoaderWithFile(path string) *Loader {
	return &Loader{
		config:   NewConfig(),
		filePath: path,
	}
}

// DefaultConfigPath returns $TL_CONFIG, or ~/.config/timelog/config.yaml
func DefaultConfigPath() string {
	if path := os.Getenv("TL_CONFIG"); path != "" {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "timelog", "config.yaml")
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML configuration file, when present
// 3. Override with environment variables
// 4. Override with command line flags (see LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.config.LoadFromFile(l.filePath); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadFromFile merges the YAML file at path into the configuration. A
// missing file leaves the configuration untouched.
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Log overrides
	LogDir          *string
	LogFilename     *string
	VirtualMidnight *string

	// Task list overrides
	TasksFilename *string

	// Report overrides
	ReportEmail *string
	ReportName  *string
	ReportStyle *string

	// Logging overrides
	LogLevel  *string
	LogOutput *string

	// Application overrides
	Timeout *time.Duration
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.LogDir != nil {
		config.Log.Dir = *overrides.LogDir
	}
	if overrides.LogFilename != nil {
		config.Log.Filename = *overrides.LogFilename
	}
	if overrides.VirtualMidnight != nil {
		config.Log.VirtualMidnight = *overrides.VirtualMidnight
	}

	if overrides.TasksFilename != nil {
		config.Tasks.Filename = *overrides.TasksFilename
	}

	if overrides.ReportEmail != nil {
		config.Report.Email = *overrides.ReportEmail
	}
	if overrides.ReportName != nil {
		config.Report.Name = *overrides.ReportName
	}
	if overrides.ReportStyle != nil {
		config.Report.Style = *overrides.ReportStyle
	}

	if overrides.LogLevel != nil {
		config.Logging.Level = *overrides.LogLevel
	}
	if overrides.LogOutput != nil {
		config.Logging.File = *overrides.LogOutput
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}
