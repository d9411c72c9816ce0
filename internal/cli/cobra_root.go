package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"timelog/internal/config"
)

// AppFactory builds the application once configuration is final. The
// returned function releases what the app holds open.
type AppFactory func(cfg *config.Config) (*App, func(), error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	loader  *config.Loader
	newApp  AppFactory
	config  *config.Config
	app     *App
	cleanup func()
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(loader *config.Loader, newApp AppFactory) *RootCommand {
	root := &RootCommand{
		loader: loader,
		newApp: newApp,
	}

	root.cmd = &cobra.Command{
		Use:   "tl",
		Short: "A plain-text work log",
		Long: `Time Log (tl) keeps a plain-text log of what you worked on and reports on it.

Every entry records the moment you finished something. The time between two
entries is the time spent on the second one.

ENTRY SYNTAX:
  category: what you did -- tag1 tag2      # category and tags are optional
  lunch **                                 # ** marks time off
  commute ***                              # *** marks time off kept out of listings
  15:20 forgot to log this                 # log at 15:20 today
  -10 forgot to log this                   # log 10 minutes ago

EXAMPLES:
  tl add arrived                           # Start the day
  tl add "project: fix bugs -- backend"    # Log finished work
  tl last                                  # Show the last entry
  tl report weekly --style categorized     # This week, grouped by category
  tl report range --from 2024-01-01 --to 2024-01-15
  tl export ical --period month > log.ics  # Export this month as a calendar
  tl tasks --follow                        # Show suggested tasks as they change

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

  The config file is YAML, read from ~/.config/timelog/config.yaml
  or the path in TL_CONFIG.

  Log Configuration:
    TL_DIR                                 Log directory (default: ~/.timelog)
    TL_LOG_FILENAME                        Log filename (default: timelog.txt)
    TL_VIRTUAL_MIDNIGHT                    Time a new day starts (default: 02:00)

  Task List Configuration:
    TL_TASKS_FILENAME                      Task list filename (default: tasks.txt)
    TL_TASKS_DEBOUNCE                      Delay before reloading a changed task list (default: 100ms)

  Report Configuration:
    TL_REPORT_EMAIL                        Report recipient (default: activity-list@example.com)
    TL_REPORT_NAME                         Your name in report subjects (default: Anonymous)
    TL_REPORT_STYLE                        plain or categorized (default: plain)

  Diagnostics:
    TL_LOG_LEVEL                           Diagnostic log level (default: info)
    TL_LOG_OUTPUT                          Diagnostic log file (default: stderr)
    TL_DEBUG                               Force debug logging when set

GETTING HELP:
  tl [command] --help                      # Get help for any specific command
  tl completion bash                       # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command returns the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command under ctx
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	defer func() {
		if r.cleanup != nil {
			r.cleanup()
		}
	}()
	return r.cmd.ExecuteContext(ctx)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Log configuration
	flags.String("dir", "", "Log directory (overrides TL_DIR)")
	flags.String("log-file", "", "Log filename (overrides TL_LOG_FILENAME)")
	flags.String("virtual-midnight", "", "Time a new day starts, HH:MM (overrides TL_VIRTUAL_MIDNIGHT)")

	// Task list configuration
	flags.String("tasks-file", "", "Task list filename (overrides TL_TASKS_FILENAME)")

	// Report configuration
	flags.String("email", "", "Report recipient (overrides TL_REPORT_EMAIL)")
	flags.String("name", "", "Your name in report subjects (overrides TL_REPORT_NAME)")

	// Diagnostics
	flags.String("log-level", "", "Diagnostic log level (overrides TL_LOG_LEVEL)")
	flags.String("log-output", "", "Diagnostic log file (overrides TL_LOG_OUTPUT)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides TL_APP_TIMEOUT)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	// Add command
	var at string
	addCmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Log what you just finished",
		Long: `Append an entry to the log, timestamped now.

A leading "HH:MM " or "-N " in the text, or the --at flag, logs the entry
earlier. The corrected time may not be in the future or before the last
entry.

Examples:
  tl add "project: write docs"
  tl add --at 09:15 arrived
  tl add -- -5 coffee **`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.timeoutContext(cmd)
			defer cancel()

			handler := NewAddCommand(r.app)
			handler.at = at
			return handler.Execute(ctx, args)
		},
	}
	addCmd.Flags().StringVar(&at, "at", "", "Log the entry at HH:MM of the current day")
	// Flags after the first word belong to the entry text.
	addCmd.Flags().SetInterspersed(false)

	// Last command
	lastCmd := &cobra.Command{
		Use:   "last",
		Short: "Show the most recent entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.timeoutContext(cmd)
			defer cancel()

			return NewLastCommand(r.app).Execute(ctx, args)
		},
	}

	// Report command
	var reportDate, reportFrom, reportTo, reportStyle string
	reportCmd := &cobra.Command{
		Use:       "report daily|weekly|monthly|range",
		Short:     "Print a report",
		ValidArgs: []string{ReportDaily, ReportWeekly, ReportMonthly, ReportRange},
		Long: `Print an e-mail ready report of the work logged in a period.

Daily, weekly and monthly reports cover the period containing --date
(default: today). Range reports cover --from to --to, both included.

Examples:
  tl report daily
  tl report weekly --date 2024-03-04 --style categorized
  tl report range --from 2024-03-01 --to 2024-03-15`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.timeoutContext(cmd)
			defer cancel()

			handler := NewReportCommand(r.app)
			handler.date = reportDate
			handler.from = reportFrom
			handler.to = reportTo
			handler.style = reportStyle
			return handler.Execute(ctx, args)
		},
	}
	reportCmd.Flags().StringVar(&reportDate, "date", "", "Any day in the reported period, YYYY-MM-DD")
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "First day of a range report, YYYY-MM-DD")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "Last day of a range report, YYYY-MM-DD")
	reportCmd.Flags().StringVar(&reportStyle, "style", "", "plain or categorized (overrides TL_REPORT_STYLE)")

	// Export command
	var exportDate, exportPeriod string
	exportCmd := &cobra.Command{
		Use:       "export csv-complete|csv-daily|ical",
		Short:     "Export the log",
		ValidArgs: []string{ExportCSVComplete, ExportCSVDaily, ExportICal},
		Long: `Export the log, or one period of it, to standard output.

Formats:
  csv-complete   minutes spent per task
  csv-daily      start, slacking and work hours per day
  ical           one calendar event per entry

Examples:
  tl export csv-complete > tasks.csv
  tl export ical --period week --date 2024-03-04 > week.ics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.timeoutContext(cmd)
			defer cancel()

			handler := NewExportCommand(r.app)
			handler.date = exportDate
			handler.period = exportPeriod
			return handler.Execute(ctx, args)
		},
	}
	exportCmd.Flags().StringVar(&exportDate, "date", "", "Any day in the exported period, YYYY-MM-DD")
	exportCmd.Flags().StringVar(&exportPeriod, "period", PeriodAll, "all, day, week or month")

	// Tasks command
	var follow bool
	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "List suggested tasks",
		Long: `List the tasks from the task file, grouped by category.

The task file holds one task per line, optionally prefixed by "category:".
Lines starting with # are comments.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := NewTasksCommand(r.app)
			handler.follow = follow
			if !follow {
				ctx, cancel := r.timeoutContext(cmd)
				defer cancel()
				return handler.Execute(ctx, args)
			}

			// Following runs until interrupted.
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return handler.Execute(ctx, args)
		},
	}
	tasksCmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep listing tasks as the file changes")

	r.cmd.AddCommand(
		addCmd,
		lastCmd,
		reportCmd,
		exportCmd,
		tasksCmd,
	)
}

// setup loads the final configuration and builds the app
func (r *RootCommand) setup() error {
	cfg, err := r.loader.LoadWithOverrides(r.overridesFromFlags())
	if err != nil {
		return err
	}
	r.config = cfg

	app, cleanup, err := r.newApp(cfg)
	if err != nil {
		return err
	}
	r.app = app
	r.cleanup = cleanup
	return nil
}

// timeoutContext bounds a command by the configured application timeout
func (r *RootCommand) timeoutContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), r.getAppTimeout())
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// overridesFromFlags collects the global flags the user set
func (r *RootCommand) overridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		value, _ := flags.GetString(name)
		return &value
	}

	overrides.LogDir = stringFlag("dir")
	overrides.LogFilename = stringFlag("log-file")
	overrides.VirtualMidnight = stringFlag("virtual-midnight")
	overrides.TasksFilename = stringFlag("tasks-file")
	overrides.ReportEmail = stringFlag("email")
	overrides.ReportName = stringFlag("name")
	overrides.LogLevel = stringFlag("log-level")
	overrides.LogOutput = stringFlag("log-output")

	if flags.Changed("app-timeout") {
		timeout, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &timeout
	}

	return overrides
}
