package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"timelog/internal/errors"
	"timelog/internal/timeutil"
)

// AddCommand handles the add command
type AddCommand struct {
	app          *App
	errorHandler *ErrorHandler
	at           string
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "add", "usage: tl add \"what you just finished\"")
	}
	text := strings.Join(args, " ")

	var at time.Time
	if c.at != "" {
		t, err := c.correctedTime()
		if err != nil {
			return c.errorHandler.Handle("add entry", err)
		}
		at = t
	}

	entry, err := c.app.log.Append(text, at)
	if err != nil {
		return c.errorHandler.Handle("add entry", err)
	}

	c.app.logger.Info().Time("at", entry.Time).Str("entry", entry.Text).Msg("entry added")
	fmt.Fprintf(c.app.out, "Logged at %s: %s\n", entry.Time.Format("15:04"), entry.Text)
	return nil
}

// correctedTime resolves --at the same way an inline "HH:MM" prefix is
// resolved, rejecting times the log would not accept.
func (c *AddCommand) correctedTime() (time.Time, error) {
	if _, err := timeutil.ParseTime(c.at); err != nil {
		return time.Time{}, err
	}
	_, at := c.app.log.ParseCorrection(c.at + " ")
	if at == nil {
		return time.Time{}, errors.NewInvalidInputError("at", c.at,
			"must not be in the future or before the last entry")
	}
	return *at, nil
}
