package timelog

import (
	"regexp"
	"strconv"
	"time"

	"timelog/internal/timeutil"
)

var (
	// "HH:MM text" logs text at that time of the current virtual day.
	absoluteCorrection = regexp.MustCompile(`^(\d\d):(\d\d)\s+`)
	// "-N text" logs text N minutes ago, 1 <= N <= 199.
	relativeCorrection = regexp.MustCompile(`^-([1-9]\d?|1\d\d)\s+`)
)

// ParseCorrection recognizes a leading time correction in text and returns
// the remaining text with the corrected timestamp. Text without a usable
// correction is returned unchanged with a nil timestamp.
func (l *TimeLog) ParseCorrection(text string) (string, *time.Time) {
	if match := absoluteCorrection.FindStringSubmatch(text); match != nil {
		h, _ := strconv.Atoi(match[1])
		m, _ := strconv.Atoi(match[2])
		if h >= 24 || m >= 60 {
			return text, nil
		}

		clock := timeutil.NewClock(h, m)
		now := l.Now()
		t := timeutil.At(timeutil.VirtualDay(now, l.virtualMidnight), clock)
		if clock.Before(l.virtualMidnight) {
			// Early-morning times belong to the second calendar day of
			// the virtual day.
			t = t.AddDate(0, 0, 1)
		}
		if !l.ValidTime(t) {
			return text, nil
		}
		return text[len(match[0]):], &t
	}

	if match := relativeCorrection.FindStringSubmatch(text); match != nil {
		minutes, _ := strconv.Atoi(match[1])
		t := l.Now().Add(-time.Duration(minutes) * time.Minute).Truncate(time.Minute)
		if !l.ValidTime(t) {
			return text, nil
		}
		return text[len(match[0]):], &t
	}

	return text, nil
}
