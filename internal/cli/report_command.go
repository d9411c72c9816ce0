package cli

import (
	"context"
	"fmt"
	"strings"

	"timelog/internal/config"
	"timelog/internal/errors"
	"timelog/internal/services"
	"timelog/internal/timelog"
	"timelog/internal/timeutil"
	"timelog/internal/validation"
)

// Report kinds accepted by the report command
const (
	ReportDaily   = "daily"
	ReportWeekly  = "weekly"
	ReportMonthly = "monthly"
	ReportRange   = "range"
)

// ReportCommand handles the report command
type ReportCommand struct {
	app          *App
	errorHandler *ErrorHandler
	date         string
	from         string
	to           string
	style        string
}

// NewReportCommand creates a new report command handler
func NewReportCommand(app *App) *ReportCommand {
	return &ReportCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute renders one report to the app's output
func (c *ReportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "report", "usage: tl report daily|weekly|monthly|range")
	}
	kind := args[0]

	style := c.style
	if style == "" {
		style = c.app.config.Report.Style
	}
	if style != config.ReportStylePlain && style != config.ReportStyleCategorized {
		return errors.NewInvalidInputError("style", style, "must be plain or categorized")
	}

	window, err := c.window(kind)
	if err != nil {
		return c.errorHandler.Handle("build report", err)
	}

	reports := services.NewReportService(window)
	email, who := c.app.config.Report.Email, c.app.config.Report.Name
	categorized := style == config.ReportStyleCategorized
	out := c.app.out

	c.app.logger.Debug().Str("kind", kind).Str("style", style).Stringer("window", window).Msg("rendering report")

	switch {
	case kind == ReportDaily:
		err = reports.DailyReport(out, email, who)
	case kind == ReportWeekly && categorized:
		err = reports.WeeklyReportCategorized(out, email, who)
	case kind == ReportWeekly:
		err = reports.WeeklyReportPlain(out, email, who)
	case kind == ReportMonthly && categorized:
		err = reports.MonthlyReportCategorized(out, email, who)
	case kind == ReportMonthly:
		err = reports.MonthlyReportPlain(out, email, who)
	case categorized:
		err = reports.CustomRangeReportCategorized(out, email, who)
	default:
		err = reports.CustomRangeReportPlain(out, email, who)
	}
	if err != nil {
		return c.errorHandler.Handle("write report", err)
	}
	return nil
}

// window picks the time window a report kind covers.
func (c *ReportCommand) window(kind string) (*timelog.TimeWindow, error) {
	if kind == ReportRange {
		return c.rangeWindow()
	}

	date, err := c.app.dateArg(c.date)
	if err != nil {
		return nil, err
	}

	switch kind {
	case ReportDaily:
		return c.app.log.WindowForDay(date)
	case ReportWeekly:
		return c.app.log.WindowForWeek(date)
	case ReportMonthly:
		return c.app.log.WindowForMonth(date)
	default:
		kinds := strings.Join([]string{ReportDaily, ReportWeekly, ReportMonthly, ReportRange}, ", ")
		return nil, errors.NewInvalidInputError("report", kind, fmt.Sprintf("must be one of %s", kinds))
	}
}

func (c *ReportCommand) rangeWindow() (*timelog.TimeWindow, error) {
	if c.from == "" || c.to == "" {
		return nil, errors.NewInvalidInputError("range", c.from+".."+c.to, "both --from and --to are required")
	}
	from, err := timeutil.ParseDate(c.from)
	if err != nil {
		return nil, err
	}
	to, err := timeutil.ParseDate(c.to)
	if err != nil {
		return nil, err
	}

	v := validation.NewEntryValidatorWithConfig(c.app.config)
	if err := v.ValidateDateRange(from, to.AddDate(0, 0, 1)); err != nil {
		return nil, err
	}
	return c.app.log.WindowForDateRange(from, to)
}
