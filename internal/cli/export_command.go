package cli

import (
	"context"

	"timelog/internal/errors"
	"timelog/internal/services"
	"timelog/internal/timelog"
)

// Export formats accepted by the export command
const (
	ExportCSVComplete = "csv-complete"
	ExportCSVDaily    = "csv-daily"
	ExportICal        = "ical"
)

// Export periods
const (
	PeriodAll   = "all"
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// ExportCommand handles the export command
type ExportCommand struct {
	app          *App
	errorHandler *ErrorHandler
	date         string
	period       string
	exportOpts   []services.ExportOption
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App, opts ...services.ExportOption) *ExportCommand {
	return &ExportCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
		period:       PeriodAll,
		exportOpts:   opts,
	}
}

// Execute writes the log, or one period of it, in the requested format
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "export", "usage: tl export csv-complete|csv-daily|ical")
	}
	format := args[0]

	var write func(services.ExportService) error
	switch format {
	case ExportCSVComplete:
		write = func(s services.ExportService) error { return s.ToCSVComplete(c.app.out) }
	case ExportCSVDaily:
		write = func(s services.ExportService) error { return s.ToCSVDaily(c.app.out) }
	case ExportICal:
		write = func(s services.ExportService) error { return s.ICalendar(c.app.out) }
	default:
		return errors.NewInvalidInputError("format", format, "must be csv-complete, csv-daily or ical")
	}

	window, err := c.window()
	if err != nil {
		return c.errorHandler.Handle("export", err)
	}

	c.app.logger.Debug().Str("format", format).Stringer("window", window).Msg("exporting")

	if err := write(services.NewExportService(window, c.exportOpts...)); err != nil {
		return c.errorHandler.Handle("export", err)
	}
	return nil
}

func (c *ExportCommand) window() (*timelog.TimeWindow, error) {
	if c.period == PeriodAll || c.period == "" {
		return c.app.log.Window()
	}

	date, err := c.app.dateArg(c.date)
	if err != nil {
		return nil, err
	}

	switch c.period {
	case PeriodDay:
		return c.app.log.WindowForDay(date)
	case PeriodWeek:
		return c.app.log.WindowForWeek(date)
	case PeriodMonth:
		return c.app.log.WindowForMonth(date)
	default:
		return nil, errors.NewInvalidInputError("period", c.period, "must be all, day, week or month")
	}
}
