package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "timelog/internal/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dt(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestAsHours(t *testing.T) {
	assert.Equal(t, 0.0, AsHours(0))
	assert.Equal(t, 0.5, AsHours(30*time.Minute))
	assert.Equal(t, 1.0, AsHours(60*time.Minute))
	assert.Equal(t, 48.0, AsHours(48*time.Hour))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "0.0", FormatHours(0))
	assert.Equal(t, "3.0", FormatHours(3))
	assert.Equal(t, "12.75", FormatHours(12.75))
	assert.Equal(t, "0.5", FormatHours(0.5))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0 h 0 min", FormatDuration(0))
	assert.Equal(t, "0 h 1 min", FormatDuration(time.Minute))
	assert.Equal(t, "1 h 0 min", FormatDuration(time.Hour))
}

func TestFormatDurationShort(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "0:00"},
		{time.Minute, "0:01"},
		{59 * time.Minute, "0:59"},
		{60 * time.Minute, "1:00"},
		{26*time.Hour + 3*time.Minute, "26:03"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatDurationShort(tt.d))
	}
}

func TestFormatDurationLong(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "0 min"},
		{time.Minute, "1 min"},
		{60 * time.Minute, "1 hour"},
		{65 * time.Minute, "1 hour 5 min"},
		{2 * time.Hour, "2 hours"},
		{2*time.Hour + time.Minute, "2 hours 1 min"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatDurationLong(tt.d))
	}
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("2005-02-03 02:13")
	require.NoError(t, err)
	assert.Equal(t, dt(2005, 2, 3, 2, 13), got)

	for _, bad := range []string{"xyzzy", "YYYY-MM-DD HH:MM", "2005-02-03 2:13", "2005-13-03 02:13", "2005-02-03 24:00"} {
		t.Run(bad, func(t *testing.T) {
			_, err := ParseDateTime(bad)
			require.Error(t, err)
			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, `bad date time: "`+bad+`"`, appErr.Message)
		})
	}
}

func TestParseDateTime_RoundTrip(t *testing.T) {
	for _, s := range []string{"2005-02-03 02:13", "2013-12-31 23:59", "2016-02-29 00:00"} {
		parsed, err := ParseDateTime(s)
		require.NoError(t, err)
		assert.Equal(t, s, FormatTimestamp(parsed))
	}
}

func TestParseTime(t *testing.T) {
	got, err := ParseTime("02:13")
	require.NoError(t, err)
	assert.Equal(t, NewClock(2, 13), got)
	assert.Equal(t, "02:13", got.String())

	_, err = ParseTime("xyzzy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `bad time: "xyzzy"`)

	_, err = ParseTime("24:00")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2010-01-30")
	require.NoError(t, err)
	assert.Equal(t, date(2010, 1, 30), got)

	_, err = ParseDate("30/01/2010")
	assert.Contains(t, err.Error(), `bad date: "30/01/2010"`)
}

func TestVirtualDay(t *testing.T) {
	vm := NewClock(2, 0)

	assert.Equal(t, date(2005, 2, 2), VirtualDay(dt(2005, 2, 3, 1, 15), vm))
	assert.Equal(t, date(2005, 2, 2), VirtualDay(dt(2005, 2, 3, 1, 59), vm))
	assert.Equal(t, date(2005, 2, 3), VirtualDay(dt(2005, 2, 3, 2, 0), vm))
	assert.Equal(t, date(2005, 2, 3), VirtualDay(dt(2005, 2, 3, 12, 0), vm))
	assert.Equal(t, date(2005, 2, 3), VirtualDay(dt(2005, 2, 3, 23, 59), vm))
}

func TestVirtualDay_AllDates(t *testing.T) {
	vm := NewClock(2, 0)
	for d := date(2000, 1, 1); d.Before(date(2005, 1, 1)); d = d.AddDate(0, 0, 1) {
		prev := d.AddDate(0, 0, -1)
		if got := VirtualDay(At(d, NewClock(1, 59)), vm); !got.Equal(prev) {
			t.Fatalf("VirtualDay(%s 01:59) = %s", d.Format(DateLayout), got.Format(DateLayout))
		}
		if got := VirtualDay(At(d, vm), vm); !got.Equal(d) {
			t.Fatalf("VirtualDay(%s 02:00) = %s", d.Format(DateLayout), got.Format(DateLayout))
		}
		if got := VirtualDay(At(d, NewClock(23, 59)), vm); !got.Equal(d) {
			t.Fatalf("VirtualDay(%s 23:59) = %s", d.Format(DateLayout), got.Format(DateLayout))
		}
	}
}

func TestVirtualDay_AnyMidnight(t *testing.T) {
	d := date(2014, 5, 27)
	for h := 0; h < 24; h++ {
		for _, m := range []int{0, 30, 59} {
			vm := NewClock(h, m)
			assert.Equal(t, d, VirtualDay(At(d, vm), vm), "at virtual midnight %s", vm)
			if h > 0 || m > 0 {
				assert.Equal(t, d.AddDate(0, 0, -1), VirtualDay(d, vm), "midnight before %s", vm)
			}
		}
	}
}

func TestDifferentDays(t *testing.T) {
	vm := NewClock(2, 0)
	assert.True(t, DifferentDays(dt(2005, 2, 3, 1, 15), dt(2005, 2, 3, 2, 15), vm))
	assert.False(t, DifferentDays(dt(2005, 2, 3, 11, 15), dt(2005, 2, 3, 12, 15), vm))
	assert.False(t, DifferentDays(dt(2013, 12, 5, 22, 30), dt(2013, 12, 6, 0, 30), vm))
}

func TestFirstOfMonth(t *testing.T) {
	assert.Equal(t, date(2007, 1, 1), FirstOfMonth(date(2007, 1, 1)))
	assert.Equal(t, date(2007, 1, 1), FirstOfMonth(date(2007, 1, 7)))
	assert.Equal(t, date(2007, 1, 1), FirstOfMonth(date(2007, 1, 31)))
	assert.Equal(t, date(2007, 2, 1), FirstOfMonth(date(2007, 2, 28)))
	assert.Equal(t, date(2007, 3, 1), FirstOfMonth(date(2007, 3, 1)))

	for d := date(2000, 1, 1); d.Before(date(2005, 1, 1)); d = d.AddDate(0, 0, 1) {
		f := FirstOfMonth(d)
		if f.Day() != 1 || f.Year() != d.Year() || f.Month() != d.Month() {
			t.Fatalf("FirstOfMonth(%s) = %s", d.Format(DateLayout), f.Format(DateLayout))
		}
	}
}

func TestNextMonth(t *testing.T) {
	assert.Equal(t, date(2007, 2, 1), NextMonth(date(2007, 1, 1)))
	assert.Equal(t, date(2007, 2, 1), NextMonth(date(2007, 1, 31)))
	assert.Equal(t, date(2007, 3, 1), NextMonth(date(2007, 2, 28)))
	assert.Equal(t, date(2008, 1, 1), NextMonth(date(2007, 12, 31)))

	for d := date(2000, 1, 1); d.Before(date(2005, 1, 1)); d = d.AddDate(0, 0, 1) {
		f := NextMonth(d)
		prev := f.AddDate(0, 0, -1)
		if f.Day() != 1 || prev.Year() != d.Year() || prev.Month() != d.Month() {
			t.Fatalf("NextMonth(%s) = %s", d.Format(DateLayout), f.Format(DateLayout))
		}
	}
}

func TestMondayOf(t *testing.T) {
	assert.Equal(t, date(2010, 1, 25), MondayOf(date(2010, 1, 30)))
	assert.Equal(t, date(2010, 1, 25), MondayOf(date(2010, 1, 31)))
	assert.Equal(t, date(2010, 1, 25), MondayOf(date(2010, 1, 25)))
}

func TestUniq(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c", "d", "b", "d"}, Uniq([]string{"a", "b", "b", "c", "d", "b", "d"}))
	assert.Equal(t, []string{"a"}, Uniq([]string{"a"}))
	assert.Equal(t, []string{}, Uniq([]string{}))
}

func TestNaive(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	got := Naive(time.Date(2015, 5, 12, 16, 27, 0, 0, loc))
	assert.Equal(t, dt(2015, 5, 12, 16, 27), got)
}
