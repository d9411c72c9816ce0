// Package timeutil holds the calendar and duration helpers shared by the
// time log, its reports and its exports.
//
// Log timestamps carry no zone. They are represented as wall-clock values
// in time.UTC so that arithmetic on them never crosses a DST transition.
// Use Naive to bring a real instant (time.Now) onto the same footing.
package timeutil

import (
	"fmt"
	"strconv"
	"time"

	"timelog/internal/errors"
)

const (
	// TimestampLayout is the layout of a log line timestamp.
	TimestampLayout = "2006-01-02 15:04"
	// DateLayout is the layout used for dates in reports and flags.
	DateLayout = "2006-01-02"
	clockLayout = "15:04"
)

// Clock is a time of day with minute resolution.
type Clock struct {
	Hour   int
	Minute int
}

// NewClock returns the Clock for h:m.
func NewClock(h, m int) Clock {
	return Clock{Hour: h, Minute: m}
}

// ClockOf returns the time-of-day of t.
func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute()}
}

// Before reports whether c is earlier in the day than other.
func (c Clock) Before(other Clock) bool {
	return c.minutes() < other.minutes()
}

// Since returns the time elapsed between midnight and c.
func (c Clock) Since() time.Duration {
	return time.Duration(c.minutes()) * time.Minute
}

// String formats the clock as HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c Clock) minutes() int {
	return c.Hour*60 + c.Minute
}

// Naive drops the location of t, keeping its wall clock reading.
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// Date returns midnight of the calendar date of t.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// At returns the instant on date's calendar day at the given clock time.
func At(date time.Time, c Clock) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, time.UTC)
}

// VirtualDay returns the day t belongs to when days start at
// virtualMidnight instead of 00:00.
func VirtualDay(t time.Time, virtualMidnight Clock) time.Time {
	if ClockOf(t).Before(virtualMidnight) {
		return Date(t).AddDate(0, 0, -1)
	}
	return Date(t)
}

// DifferentDays reports whether t1 and t2 fall on different virtual days.
func DifferentDays(t1, t2 time.Time, virtualMidnight Clock) bool {
	return !VirtualDay(t1, virtualMidnight).Equal(VirtualDay(t2, virtualMidnight))
}

// FirstOfMonth returns the first day of date's month.
func FirstOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NextMonth returns the first day of the month following date's month.
func NextMonth(date time.Time) time.Time {
	return FirstOfMonth(date).AddDate(0, 1, 0)
}

// MondayOf returns the Monday starting date's week.
func MondayOf(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7
	return Date(date).AddDate(0, 0, -offset)
}

// ParseDateTime parses a strict "YYYY-MM-DD HH:MM" timestamp.
func ParseDateTime(s string) (time.Time, error) {
	if len(s) != len(TimestampLayout) {
		return time.Time{}, errors.NewParseError("date time", s)
	}
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, errors.NewParseError("date time", s)
	}
	return t, nil
}

// ParseDate parses a strict "YYYY-MM-DD" date.
func ParseDate(s string) (time.Time, error) {
	if len(s) != len(DateLayout) {
		return time.Time{}, errors.NewParseError("date", s)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, errors.NewParseError("date", s)
	}
	return t, nil
}

// ParseTime parses a strict "HH:MM" time of day.
func ParseTime(s string) (Clock, error) {
	if len(s) != len(clockLayout) {
		return Clock{}, errors.NewParseError("time", s)
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return Clock{}, errors.NewParseError("time", s)
	}
	return ClockOf(t), nil
}

// FormatTimestamp renders t the way it is written to the log.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// AsMinutes returns the number of whole minutes in d.
func AsMinutes(d time.Duration) int {
	return int(d / time.Minute)
}

// AsHours converts d to fractional hours, counting whole minutes only.
func AsHours(d time.Duration) float64 {
	return float64(AsMinutes(d)) / 60.0
}

// FormatHours renders an hour value with the shortest exact decimal
// representation, always keeping a fractional part ("3.0", "12.75").
func FormatHours(h float64) string {
	s := strconv.FormatFloat(h, 'f', -1, 64)
	for _, r := range s {
		if r == '.' {
			return s
		}
	}
	return s + ".0"
}

// FormatDuration renders d as "H h M min".
func FormatDuration(d time.Duration) string {
	h, m := divmod(AsMinutes(d), 60)
	return fmt.Sprintf("%d h %d min", h, m)
}

// FormatDurationShort renders d as "H:MM"; hours are not wrapped at 24.
func FormatDurationShort(d time.Duration) string {
	h, m := divmod(AsMinutes(d), 60)
	return fmt.Sprintf("%d:%02d", h, m)
}

// FormatDurationLong renders d as "N hours M min", leaving out zero parts.
func FormatDurationLong(d time.Duration) string {
	h, m := divmod(AsMinutes(d), 60)
	hours := "hours"
	if h == 1 {
		hours = "hour"
	}
	switch {
	case h != 0 && m != 0:
		return fmt.Sprintf("%d %s %d min", h, hours, m)
	case h != 0:
		return fmt.Sprintf("%d %s", h, hours)
	default:
		return fmt.Sprintf("%d min", m)
	}
}

func divmod(n, d int) (int, int) {
	return n / d, n % d
}

// Uniq collapses runs of equal consecutive elements. Repeats that are
// not adjacent are kept.
func Uniq[T comparable](items []T) []T {
	out := make([]T, 0, len(items))
	for i, item := range items {
		if i > 0 && item == items[i-1] {
			continue
		}
		out = append(out, item)
	}
	return out
}
