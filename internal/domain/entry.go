package domain

import (
	"time"
)

// Entry represents one parsed line of the time log.
type Entry struct {
	Time time.Time
	Text string
}

// NewEntry creates a new Entry logged at the given time.
func NewEntry(t time.Time, text string) Entry {
	return Entry{
		Time: t,
		Text: text,
	}
}

// Interval is the span between two consecutive log entries. It is
// described by the text of the entry that ends it.
type Interval struct {
	Start    time.Time
	Stop     time.Time
	Duration time.Duration
	Tags     TagSet
	Text     string
}

// NewInterval builds the interval ending with the given entry text.
// The text is split into display text and tags.
func NewInterval(start, stop time.Time, text string) Interval {
	display, tags := SplitEntryAndTags(text)
	return Interval{
		Start:    start,
		Stop:     stop,
		Duration: stop.Sub(start),
		Tags:     tags,
		Text:     display,
	}
}

// IsEmpty returns true for zero-length intervals, such as the arrival
// that opens a day.
func (i Interval) IsEmpty() bool {
	return i.Duration == 0
}

// IsSlacking returns true if the interval was time off.
func (i Interval) IsSlacking() bool {
	return IsSlacking(i.Text)
}

// IsHidden returns true if the interval should never be listed.
func (i Interval) IsHidden() bool {
	return IsHidden(i.Text)
}
