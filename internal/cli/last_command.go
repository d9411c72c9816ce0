package cli

import (
	"context"
	"fmt"

	"timelog/internal/timeutil"
)

// LastCommand handles the last command
type LastCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewLastCommand creates a new last command handler
func NewLastCommand(app *App) *LastCommand {
	return &LastCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute prints the most recent interval of the log
func (c *LastCommand) Execute(ctx context.Context, args []string) error {
	window, err := c.app.log.Window()
	if err != nil {
		return c.errorHandler.Handle("read log", err)
	}

	last, ok := window.LastEntry()
	if !ok {
		fmt.Fprintln(c.app.out, "No entries logged yet")
		return nil
	}

	fmt.Fprintf(c.app.out, "%s %s-%s (%s) %s\n",
		last.Start.Format(timeutil.DateLayout),
		last.Start.Format("15:04"),
		last.Stop.Format("15:04"),
		timeutil.FormatDurationLong(last.Duration),
		last.Text)
	return nil
}
