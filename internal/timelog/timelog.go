package timelog

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"timelog/internal/domain"
	"timelog/internal/errors"
	"timelog/internal/timeutil"
	"timelog/internal/validation"
)

const memoryLog = "in-memory log"

// EntryValidator checks entry text before it is appended.
type EntryValidator interface {
	ValidateEntryText(text string) error
}

// TimeLog owns the log file. It appends entries and builds windows over
// the entries already written.
type TimeLog struct {
	path            string
	content         []byte
	inMemory        bool
	virtualMidnight timeutil.Clock
	now             func() time.Time
	logger          zerolog.Logger
	validator       EntryValidator
	cache           windowCache
}

// Option configures a TimeLog.
type Option func(*TimeLog)

// WithClock replaces time.Now as the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(l *TimeLog) {
		l.now = now
	}
}

// WithLogger sets the logger for the log and the windows it builds.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *TimeLog) {
		l.logger = logger
	}
}

// WithValidator replaces the default entry validator.
func WithValidator(v EntryValidator) Option {
	return func(l *TimeLog) {
		l.validator = v
	}
}

// New binds a TimeLog to the log file at path. The file is read on demand
// and need not exist yet.
func New(path string, vm timeutil.Clock, opts ...Option) *TimeLog {
	l := &TimeLog{
		path:            path,
		virtualMidnight: vm,
		now:             time.Now,
		logger:          zerolog.Nop(),
		validator:       validation.NewEntryValidator(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewFromReader binds a read-only TimeLog to the contents of r.
func NewFromReader(r io.Reader, vm timeutil.Clock, opts ...Option) (*TimeLog, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewStorageError("read log", memoryLog, err)
	}
	l := New("", vm, opts...)
	l.content = content
	l.inMemory = true
	return l, nil
}

// Path returns the log file path, empty for an in-memory log.
func (l *TimeLog) Path() string {
	return l.path
}

// VirtualMidnight returns the time of day at which a new day starts.
func (l *TimeLog) VirtualMidnight() timeutil.Clock {
	return l.virtualMidnight
}

// Now returns the current wall-clock time as a naive timestamp.
func (l *TimeLog) Now() time.Time {
	return timeutil.Naive(l.now())
}

// WindowFor returns the window [min, max), reusing the last window built
// when the range is the same.
func (l *TimeLog) WindowFor(min, max time.Time) (*TimeWindow, error) {
	key := windowKey{min: min, max: max}
	if w, ok := l.cache.get(key); ok {
		l.logger.Debug().Stringer("window", w).Msg("window cache hit")
		return w, nil
	}

	var (
		w   *TimeWindow
		err error
	)
	opt := WithWindowLogger(l.logger)
	if l.inMemory {
		w, err = NewTimeWindow(bytes.NewReader(l.content), min, max, l.virtualMidnight, opt)
		if err != nil {
			err = errors.NewStorageError("read log", memoryLog, err)
		}
	} else {
		w, err = OpenTimeWindow(l.path, min, max, l.virtualMidnight, opt)
	}
	if err != nil {
		return nil, err
	}

	l.logger.Debug().Stringer("window", w).Int("entries", len(w.items)).Msg("window cache miss")
	l.cache.put(key, w)
	return w, nil
}

// WindowForDay returns the window covering the virtual day of date.
func (l *TimeLog) WindowForDay(date time.Time) (*TimeWindow, error) {
	min := timeutil.At(date, l.virtualMidnight)
	return l.WindowFor(min, min.AddDate(0, 0, 1))
}

// WindowForWeek returns the window covering the Monday-based week of date.
func (l *TimeLog) WindowForWeek(date time.Time) (*TimeWindow, error) {
	min := timeutil.At(timeutil.MondayOf(date), l.virtualMidnight)
	return l.WindowFor(min, min.AddDate(0, 0, 7))
}

// WindowForMonth returns the window covering the calendar month of date.
func (l *TimeLog) WindowForMonth(date time.Time) (*TimeWindow, error) {
	min := timeutil.At(timeutil.FirstOfMonth(date), l.virtualMidnight)
	max := timeutil.At(timeutil.NextMonth(date), l.virtualMidnight)
	return l.WindowFor(min, max)
}

// WindowForDateRange returns the window covering the days from first to
// last, both included.
func (l *TimeLog) WindowForDateRange(first, last time.Time) (*TimeWindow, error) {
	min := timeutil.At(first, l.virtualMidnight)
	max := timeutil.At(last.AddDate(0, 0, 1), l.virtualMidnight)
	return l.WindowFor(min, max)
}

// Window returns a window over the whole log.
func (l *TimeLog) Window() (*TimeWindow, error) {
	return l.WindowFor(time.Time{}, time.Time{})
}

// LastTime returns the time of the latest entry in the log.
func (l *TimeLog) LastTime() (time.Time, bool, error) {
	w, err := l.Window()
	if err != nil {
		return time.Time{}, false, err
	}
	last, ok := w.LastTime()
	return last, ok, nil
}

// ValidTime reports whether an entry may be logged at t: not in the
// future and not before the latest entry.
func (l *TimeLog) ValidTime(t time.Time) bool {
	if t.After(l.Now()) {
		return false
	}
	last, ok, err := l.LastTime()
	if err != nil {
		l.logger.Warn().Err(err).Msg("cannot read log to validate time")
		return false
	}
	return !ok || !t.Before(last)
}

// Append writes text to the log. A leading time correction in text picks
// the timestamp; otherwise now is used, or the clock when now is zero.
func (l *TimeLog) Append(text string, now time.Time) (domain.Entry, error) {
	if l.inMemory {
		return domain.Entry{}, errors.NewPermissionError("append", memoryLog)
	}

	text, at := l.ParseCorrection(strings.TrimSpace(text))
	if err := l.validator.ValidateEntryText(text); err != nil {
		var ve *validation.ValidationError
		if stderrors.As(err, &ve) {
			return domain.Entry{}, ve.AsAppError()
		}
		return domain.Entry{}, err
	}

	switch {
	case at != nil:
		now = *at
	case now.IsZero():
		now = l.Now()
	}
	entry := domain.NewEntry(now.Truncate(time.Minute), text)

	last, ok, err := l.LastTime()
	if err != nil {
		return domain.Entry{}, err
	}

	if err := l.write(entry, ok && timeutil.DifferentDays(last, entry.Time, l.virtualMidnight)); err != nil {
		return domain.Entry{}, err
	}

	l.cache.invalidate()
	l.logger.Debug().
		Str("path", l.path).
		Time("at", entry.Time).
		Str("entry", entry.Text).
		Msg("appended entry")
	return entry, nil
}

func (l *TimeLog) write(entry domain.Entry, newDay bool) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return errors.NewStorageError("create log directory", l.path, err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return errors.NewStorageError("open log", l.path, err)
	}
	defer f.Close()

	var buf strings.Builder
	unterminated, err := endsWithoutNewline(f)
	if err != nil {
		return errors.NewStorageError("read log", l.path, err)
	}
	if unterminated {
		buf.WriteString("\n")
	}
	if newDay {
		buf.WriteString("\n")
	}
	buf.WriteString(timeutil.FormatTimestamp(entry.Time))
	buf.WriteString(lineSeparator)
	buf.WriteString(entry.Text)
	buf.WriteString("\n")

	if _, err := f.WriteString(buf.String()); err != nil {
		return errors.NewStorageError("append entry", l.path, err)
	}
	return nil
}

// endsWithoutNewline reports whether a non-empty file lacks a final newline.
func endsWithoutNewline(f *os.File) (bool, error) {
	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return false, nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false, err
	}
	return last[0] != '\n', nil
}
