package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"timelog/internal/cli"
	"timelog/internal/config"
	"timelog/internal/logging"
	"timelog/internal/tasklist"
	"timelog/internal/timelog"
	"timelog/internal/timeutil"
	"timelog/internal/validation"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// developmentLogFile is the log used while working on tl itself.
const developmentLogFile = "timelog.txt"

// AppFactory creates the application for the environment once the
// configuration is final
type AppFactory struct {
	env    Environment
	logger zerolog.Logger
}

// NewAppFactory creates a new app factory for the given environment
func NewAppFactory(env Environment) *AppFactory {
	return &AppFactory{
		env:    env,
		logger: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).Level(zerolog.ErrorLevel),
	}
}

// Logger returns the diagnostic logger of the last app created, or a
// stderr error logger before that.
func (f *AppFactory) Logger() *zerolog.Logger {
	return &f.logger
}

// CreateApp builds the time log, the task list and the app around them
func (f *AppFactory) CreateApp(cfg *config.Config) (*cli.App, func(), error) {
	logger, closeLogger, err := logging.New(logging.EffectiveLevel(cfg.Logging.Level), cfg.Logging.File)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	f.logger = logger

	log, err := f.createTimeLog(cfg)
	if err != nil {
		closeLogger()
		return nil, nil, err
	}
	logger.Debug().Str("env", string(f.env)).Str("log", log.Path()).Msg("time log ready")

	tasks := tasklist.New(cfg.GetTaskListPath(), tasklist.WithLogger(logger))
	app := cli.NewApp(log, tasks, cfg, cli.WithAppLogger(logger))
	return app, closeLogger, nil
}

// createTimeLog picks the log file for the environment
func (f *AppFactory) createTimeLog(cfg *config.Config) (*timelog.TimeLog, error) {
	vm, err := cfg.GetVirtualMidnight()
	if err != nil {
		return nil, err
	}
	opts := []timelog.Option{
		timelog.WithLogger(f.logger),
		timelog.WithValidator(validation.NewEntryValidatorWithConfig(cfg)),
	}

	switch f.env {
	case Development:
		// For development, use a log file in the working directory
		return timelog.New(developmentLogFile, vm, opts...), nil
	case Testing:
		return f.createTestingTimeLog(cfg, vm, opts)
	default:
		return timelog.New(cfg.GetLogPath(), vm, opts...), nil
	}
}

// createTestingTimeLog loads the configured log into memory. Reports work
// as usual but nothing can be appended.
func (f *AppFactory) createTestingTimeLog(cfg *config.Config, vm timeutil.Clock, opts []timelog.Option) (*timelog.TimeLog, error) {
	data, err := os.ReadFile(cfg.GetLogPath())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read testing log: %w", err)
	}
	return timelog.NewFromReader(bytes.NewReader(data), vm, opts...)
}

// getEnvironment determines the current environment
func getEnvironment() Environment {
	switch os.Getenv("TL_ENV") {
	case "development":
		return Development
	case "testing":
		return Testing
	default:
		// Default to production for safety
		return Production
	}
}
