// Package timelog reads the append-only time log and answers questions
// about the intervals between its entries.
package timelog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"timelog/internal/domain"
	"timelog/internal/errors"
	"timelog/internal/timeutil"
)

const (
	lineSeparator = ": "
	reprLayout    = "2006-01-02 15:04:05"
	maxLineSize   = 1024 * 1024
)

// TimeWindow is an immutable, time-ordered view of the log entries that
// fall in [min, max). A zero bound leaves that side of the window open.
type TimeWindow struct {
	min             time.Time
	max             time.Time
	virtualMidnight timeutil.Clock
	items           []domain.Entry
	logger          zerolog.Logger
}

// WindowOption configures a TimeWindow.
type WindowOption func(*TimeWindow)

// WithWindowLogger sets the logger that reports skipped lines.
func WithWindowLogger(logger zerolog.Logger) WindowOption {
	return func(w *TimeWindow) {
		w.logger = logger
	}
}

// NewTimeWindow parses log lines from r and keeps those in [min, max).
// Lines without a valid timestamp are skipped.
func NewTimeWindow(r io.Reader, min, max time.Time, vm timeutil.Clock, opts ...WindowOption) (*TimeWindow, error) {
	w := &TimeWindow{
		min:             min,
		max:             max,
		virtualMidnight: vm,
		logger:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := w.read(r); err != nil {
		return nil, err
	}
	return w, nil
}

// OpenTimeWindow reads the window from the log file at path. A missing
// file yields an empty window.
func OpenTimeWindow(path string, min, max time.Time, vm timeutil.Clock, opts ...WindowOption) (*TimeWindow, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return NewTimeWindow(strings.NewReader(""), min, max, vm, opts...)
	}
	if err != nil {
		return nil, errors.NewStorageError("read log", path, err)
	}
	defer f.Close()

	w, err := NewTimeWindow(f, min, max, vm, opts...)
	if err != nil {
		return nil, errors.NewStorageError("read log", path, err)
	}
	return w, nil
}

func (w *TimeWindow) read(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		entry, ok := parseLine(line)
		if !ok {
			w.logger.Debug().Int("line", lineNo).Str("text", line).Msg("skipping line without timestamp")
			continue
		}
		if w.contains(entry.Time) {
			w.items = append(w.items, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	sort.SliceStable(w.items, func(i, j int) bool {
		return w.items[i].Time.Before(w.items[j].Time)
	})
	return nil
}

func parseLine(line string) (domain.Entry, bool) {
	stamp, text, found := strings.Cut(line, lineSeparator)
	if !found {
		return domain.Entry{}, false
	}
	t, err := timeutil.ParseDateTime(stamp)
	if err != nil {
		return domain.Entry{}, false
	}
	return domain.NewEntry(t, strings.TrimSpace(text)), true
}

func (w *TimeWindow) contains(t time.Time) bool {
	if !w.min.IsZero() && t.Before(w.min) {
		return false
	}
	if !w.max.IsZero() && !t.Before(w.max) {
		return false
	}
	return true
}

// Min returns the inclusive lower bound of the window.
func (w *TimeWindow) Min() time.Time { return w.min }

// Max returns the exclusive upper bound of the window.
func (w *TimeWindow) Max() time.Time { return w.max }

// VirtualMidnight returns the time of day at which the window's days start.
func (w *TimeWindow) VirtualMidnight() timeutil.Clock { return w.virtualMidnight }

// Entries returns a copy of the parsed entries in time order.
func (w *TimeWindow) Entries() []domain.Entry {
	out := make([]domain.Entry, len(w.items))
	copy(out, w.items)
	return out
}

// LastTime returns the time of the latest entry.
func (w *TimeWindow) LastTime() (time.Time, bool) {
	if len(w.items) == 0 {
		return time.Time{}, false
	}
	return w.items[len(w.items)-1].Time, true
}

// AllEntries returns one interval per entry. The first entry of each
// virtual day starts a zero-length interval.
func (w *TimeWindow) AllEntries() []domain.Interval {
	intervals := make([]domain.Interval, 0, len(w.items))
	var stop time.Time
	for i, item := range w.items {
		start := stop
		stop = item.Time
		if i == 0 || timeutil.DifferentDays(start, stop, w.virtualMidnight) {
			start = stop
		}
		intervals = append(intervals, domain.NewInterval(start, stop, item.Text))
	}
	return intervals
}

// LastEntry returns the interval ending with the latest entry.
func (w *TimeWindow) LastEntry() (domain.Interval, bool) {
	n := len(w.items)
	if n == 0 {
		return domain.Interval{}, false
	}
	stop := w.items[n-1].Time
	start := stop
	if n > 1 && !timeutil.DifferentDays(w.items[n-2].Time, stop, w.virtualMidnight) {
		start = w.items[n-2].Time
	}
	return domain.NewInterval(start, stop, w.items[n-1].Text), true
}

// CountDays returns the number of virtual days with at least one entry.
func (w *TimeWindow) CountDays() int {
	days := make(map[time.Time]struct{})
	for _, item := range w.items {
		days[timeutil.VirtualDay(item.Time, w.virtualMidnight)] = struct{}{}
	}
	return len(days)
}

// Totals sums work and slacking over the intervals carrying tag. An empty
// tag selects every interval.
func (w *TimeWindow) Totals(tag string) (work, slacking time.Duration) {
	for _, interval := range w.AllEntries() {
		if tag != "" && !interval.Tags.Has(tag) {
			continue
		}
		if interval.IsSlacking() {
			slacking += interval.Duration
		} else {
			work += interval.Duration
		}
	}
	return work, slacking
}

// SetOfAllTags returns every tag used in the window.
func (w *TimeWindow) SetOfAllTags() domain.TagSet {
	tags := domain.NewTagSet()
	for _, interval := range w.AllEntries() {
		tags.Union(interval.Tags)
	}
	return tags
}

// String implements fmt.Stringer.
func (w *TimeWindow) String() string {
	return fmt.Sprintf("<TimeWindow: %s..%s>", w.min.Format(reprLayout), w.max.Format(reprLayout))
}
