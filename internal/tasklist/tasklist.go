// Package tasklist reads the file of suggested task names, grouped by
// category.
package tasklist

import (
	"bufio"
	"bytes"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"timelog/internal/errors"
)

// OtherCategory collects tasks written without a category.
const OtherCategory = "Other"

// Group is a category and its tasks in file order.
type Group struct {
	Category string
	Tasks    []string
}

// TaskList holds the grouped contents of a task file and reloads them
// when the file changes.
type TaskList struct {
	path   string
	logger zerolog.Logger

	mu     sync.Mutex
	mtime  time.Time
	groups []Group
}

// Option configures a TaskList.
type Option func(*TaskList)

// WithLogger sets the logger used to report reloads.
func WithLogger(logger zerolog.Logger) Option {
	return func(t *TaskList) {
		t.logger = logger
	}
}

// New loads the task file at path. A missing or unreadable file yields an
// empty list.
func New(path string, opts ...Option) *TaskList {
	t := &TaskList{
		path:   path,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.mtime = t.modTime()
	if err := t.load(); err != nil {
		t.logger.Warn().Err(err).Str("path", path).Msg("cannot load task list")
	}
	return t
}

// Path returns the task file path.
func (t *TaskList) Path() string {
	return t.path
}

// Groups returns the task groups: Other first, then the remaining
// categories in the order they first appear.
func (t *TaskList) Groups() []Group {
	t.mu.Lock()
	defer t.mu.Unlock()

	groups := make([]Group, len(t.groups))
	for i, g := range t.groups {
		groups[i] = Group{Category: g.Category, Tasks: append([]string(nil), g.Tasks...)}
	}
	return groups
}

// CheckReload reloads the file if its modification time changed since the
// last load and reports whether it did.
func (t *TaskList) CheckReload() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	mtime := t.modTime()
	if mtime.Equal(t.mtime) {
		return false
	}
	t.mtime = mtime
	if err := t.load(); err != nil {
		t.logger.Warn().Err(err).Str("path", t.path).Msg("cannot reload task list")
	}
	return true
}

// Reload rereads the file unconditionally.
func (t *TaskList) Reload() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.mtime = t.modTime()
	return t.load()
}

// modTime returns the zero time for a missing file.
func (t *TaskList) modTime() time.Time {
	info, err := os.Stat(t.path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

func (t *TaskList) load() error {
	t.groups = nil

	data, err := os.ReadFile(t.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.NewStorageError("read task list", t.path, err)
	}

	t.groups = parse(data)
	t.logger.Debug().Str("path", t.path).Int("groups", len(t.groups)).Msg("task list loaded")
	return nil
}

func parse(data []byte) []Group {
	var (
		other  []string
		groups []Group
	)
	index := make(map[string]int)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		category, task, found := strings.Cut(line, ":")
		if !found {
			other = append(other, line)
			continue
		}
		category, task = strings.TrimSpace(category), strings.TrimSpace(task)
		if category == OtherCategory {
			other = append(other, task)
			continue
		}

		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, Group{Category: category})
		}
		groups[i].Tasks = append(groups[i].Tasks, task)
	}

	if len(other) > 0 {
		groups = append([]Group{{Category: OtherCategory, Tasks: other}}, groups...)
	}
	return groups
}
