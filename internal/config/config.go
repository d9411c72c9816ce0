package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"timelog/internal/timeutil"
)

const (
	ReportStylePlain       = "plain"
	ReportStyleCategorized = "categorized"
)

// Config holds all configuration options for the time log application
type Config struct {
	Log         LogConfig         `yaml:"log"`
	Tasks       TasksConfig       `yaml:"tasks"`
	Report      ReportConfig      `yaml:"report"`
	Validation  ValidationConfig  `yaml:"validation"`
	Logging     LoggingConfig     `yaml:"logging"`
	Application ApplicationConfig `yaml:"application"`
}

// LogConfig describes where the time log lives and how its days are cut
type LogConfig struct {
	Dir             string `yaml:"dir" env:"TL_DIR"`
	Filename        string `yaml:"filename" env:"TL_LOG_FILENAME"`
	VirtualMidnight string `yaml:"virtual_midnight" env:"TL_VIRTUAL_MIDNIGHT"`
}

// TasksConfig holds task list configuration
type TasksConfig struct {
	Filename      string        `yaml:"filename" env:"TL_TASKS_FILENAME"`
	WatchDebounce time.Duration `yaml:"watch_debounce" env:"TL_TASKS_DEBOUNCE"`
}

// ReportConfig holds the identity reports are addressed from
type ReportConfig struct {
	Email string `yaml:"email" env:"TL_REPORT_EMAIL"`
	Name  string `yaml:"name" env:"TL_REPORT_NAME"`
	Style string `yaml:"style" env:"TL_REPORT_STYLE"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	EntryMaxLength int `yaml:"entry_max_length" env:"TL_ENTRY_MAX_LENGTH"`
}

// LoggingConfig holds diagnostic logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" env:"TL_LOG_LEVEL"`
	File  string `yaml:"file" env:"TL_LOG_OUTPUT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"TL_APP_TIMEOUT"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Log: LogConfig{
			Dir:             filepath.Join(homeDir, ".timelog"),
			Filename:        "timelog.txt",
			VirtualMidnight: "02:00",
		},
		Tasks: TasksConfig{
			Filename:      "tasks.txt",
			WatchDebounce: 100 * time.Millisecond,
		},
		Report: ReportConfig{
			Email: "activity-list@example.com",
			Name:  "Anonymous",
			Style: ReportStylePlain,
		},
		Validation: ValidationConfig{
			EntryMaxLength: 500,
		},
		Logging: LoggingConfig{
			Level: zerolog.LevelInfoValue,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
		},
	}
}

// GetLogPath returns the full path to the time log file
func (c *Config) GetLogPath() string {
	return filepath.Join(c.Log.Dir, c.Log.Filename)
}

// GetTaskListPath returns the full path to the task list file
func (c *Config) GetTaskListPath() string {
	return filepath.Join(c.Log.Dir, c.Tasks.Filename)
}

// GetVirtualMidnight returns the time of day at which a new day starts
func (c *Config) GetVirtualMidnight() (timeutil.Clock, error) {
	return timeutil.ParseTime(c.Log.VirtualMidnight)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Log configuration
	if dir := os.Getenv("TL_DIR"); dir != "" {
		c.Log.Dir = dir
	}
	if filename := os.Getenv("TL_LOG_FILENAME"); filename != "" {
		c.Log.Filename = filename
	}
	if vm := os.Getenv("TL_VIRTUAL_MIDNIGHT"); vm != "" {
		c.Log.VirtualMidnight = vm
	}

	// Task list configuration
	if filename := os.Getenv("TL_TASKS_FILENAME"); filename != "" {
		c.Tasks.Filename = filename
	}
	if debounce := os.Getenv("TL_TASKS_DEBOUNCE"); debounce != "" {
		c.Tasks.WatchDebounce = ParseDurationWithFallback(debounce, c.Tasks.WatchDebounce)
	}

	// Report configuration
	if email := os.Getenv("TL_REPORT_EMAIL"); email != "" {
		c.Report.Email = email
	}
	if name := os.Getenv("TL_REPORT_NAME"); name != "" {
		c.Report.Name = name
	}
	if style := os.Getenv("TL_REPORT_STYLE"); style != "" {
		c.Report.Style = style
	}

	// Validation configuration
	if maxLen := os.Getenv("TL_ENTRY_MAX_LENGTH"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.EntryMaxLength = n
		}
	}

	// Logging configuration
	if level := os.Getenv("TL_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if file := os.Getenv("TL_LOG_OUTPUT"); file != "" {
		c.Logging.File = file
	}

	// Application configuration
	if timeout := os.Getenv("TL_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Log.Dir == "" {
		return &ConfigError{Field: "log.dir", Message: "log directory cannot be empty"}
	}
	if c.Log.Filename == "" {
		return &ConfigError{Field: "log.filename", Message: "log filename cannot be empty"}
	}
	if _, err := c.GetVirtualMidnight(); err != nil {
		return &ConfigError{Field: "log.virtual_midnight", Message: "virtual midnight must be HH:MM"}
	}

	if c.Tasks.Filename == "" {
		return &ConfigError{Field: "tasks.filename", Message: "task list filename cannot be empty"}
	}
	if c.Tasks.WatchDebounce < 0 {
		return &ConfigError{Field: "tasks.watch_debounce", Message: "watch debounce cannot be negative"}
	}

	if c.Report.Email == "" {
		return &ConfigError{Field: "report.email", Message: "report recipient cannot be empty"}
	}
	if c.Report.Style != ReportStylePlain && c.Report.Style != ReportStyleCategorized {
		return &ConfigError{Field: "report.style", Message: "report style must be plain or categorized"}
	}

	if c.Validation.EntryMaxLength < 1 {
		return &ConfigError{Field: "validation.entry_max_length", Message: "entry maximum length must be at least 1"}
	}

	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return &ConfigError{Field: "logging.level", Message: "unknown log level " + strconv.Quote(c.Logging.Level)}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
