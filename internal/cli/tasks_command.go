package cli

import (
	"context"
	"fmt"
	"io"

	"timelog/internal/tasklist"
)

// TasksCommand handles the tasks command
type TasksCommand struct {
	app          *App
	errorHandler *ErrorHandler
	follow       bool
}

// NewTasksCommand creates a new tasks command handler
func NewTasksCommand(app *App) *TasksCommand {
	return &TasksCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute prints the task list. With follow set it keeps printing the
// list whenever the task file changes, until ctx is done.
func (c *TasksCommand) Execute(ctx context.Context, args []string) error {
	c.app.tasks.CheckReload()
	printGroups(c.app.out, c.app.tasks.Groups())

	if !c.follow {
		return nil
	}

	watcher := tasklist.NewWatcher(c.app.tasks, c.app.config.Tasks.WatchDebounce, c.app.logger)
	err := watcher.Run(ctx, func(groups []tasklist.Group) {
		fmt.Fprintln(c.app.out)
		printGroups(c.app.out, groups)
	})
	if err != nil {
		return c.errorHandler.Handle("watch task list", err)
	}
	return nil
}

func printGroups(w io.Writer, groups []tasklist.Group) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "No tasks defined")
		return
	}
	for _, group := range groups {
		fmt.Fprintf(w, "%s:\n", group.Category)
		for _, task := range group.Tasks {
			fmt.Fprintf(w, "  %s\n", task)
		}
	}
}
