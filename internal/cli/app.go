package cli

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"timelog/internal/config"
	"timelog/internal/tasklist"
	"timelog/internal/timelog"
	"timelog/internal/timeutil"
)

// App represents the main CLI application
type App struct {
	log    *timelog.TimeLog
	tasks  *tasklist.TaskList
	config *config.Config
	logger zerolog.Logger
	out    io.Writer
}

// AppOption configures an App.
type AppOption func(*App)

// WithOutput redirects command output, stdout by default.
func WithOutput(w io.Writer) AppOption {
	return func(a *App) {
		a.out = w
	}
}

// WithAppLogger sets the logger commands report through.
func WithAppLogger(logger zerolog.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(log *timelog.TimeLog, tasks *tasklist.TaskList, cfg *config.Config, opts ...AppOption) *App {
	app := &App{
		log:    log,
		tasks:  tasks,
		config: cfg,
		logger: zerolog.Nop(),
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// Out returns the writer commands print to.
func (a *App) Out() io.Writer {
	return a.out
}

// today returns the current virtual day.
func (a *App) today() time.Time {
	return timeutil.VirtualDay(a.log.Now(), a.log.VirtualMidnight())
}

// dateArg parses a YYYY-MM-DD flag value, defaulting to today.
func (a *App) dateArg(value string) (time.Time, error) {
	if value == "" {
		return a.today(), nil
	}
	return timeutil.ParseDate(value)
}
