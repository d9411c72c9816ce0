package timelog

import (
	"sort"
	"time"

	"timelog/internal/domain"
	"timelog/internal/timeutil"
)

// GroupedEntry is the total time spent on one entry text, starting at its
// first occurrence.
type GroupedEntry struct {
	Start    time.Time
	Text     string
	Duration time.Duration
}

// CategoryTotal is the time spent in one category. The empty category
// collects uncategorized work.
type CategoryTotal struct {
	Category string
	Duration time.Duration
}

// DayTotal summarizes one virtual day.
type DayTotal struct {
	Date     time.Time
	DayStart time.Duration
	Slacking time.Duration
	Work     time.Duration
}

// TaskTotal is the time spent on one task, category prefix removed.
type TaskTotal struct {
	Task     string
	Duration time.Duration
}

// GroupedEntries merges intervals with the same text and splits them into
// work and slacking, each sorted by first start time. Zero-length and
// hidden intervals are left out.
func (w *TimeWindow) GroupedEntries() (work, slacking []GroupedEntry) {
	workIdx := make(map[string]int)
	slackIdx := make(map[string]int)

	for _, interval := range w.AllEntries() {
		if interval.IsEmpty() || interval.IsHidden() {
			continue
		}

		entries, index := &work, workIdx
		if interval.IsSlacking() {
			entries, index = &slacking, slackIdx
		}

		if i, ok := index[interval.Text]; ok {
			(*entries)[i].Duration += interval.Duration
			continue
		}
		index[interval.Text] = len(*entries)
		*entries = append(*entries, GroupedEntry{
			Start:    interval.Start,
			Text:     interval.Text,
			Duration: interval.Duration,
		})
	}

	sortGrouped(work)
	sortGrouped(slacking)
	return work, slacking
}

func sortGrouped(entries []GroupedEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Start.Equal(entries[j].Start) {
			return entries[i].Start.Before(entries[j].Start)
		}
		return entries[i].Text < entries[j].Text
	})
}

// CategorizedWorkEntries groups work by category. Entry texts lose their
// category prefix and are capitalized. Totals are listed in the order the
// categories first appear.
func (w *TimeWindow) CategorizedWorkEntries() (map[string][]GroupedEntry, []CategoryTotal) {
	work, _ := w.GroupedEntries()

	entries := make(map[string][]GroupedEntry)
	var totals []CategoryTotal
	index := make(map[string]int)

	for _, entry := range work {
		category, text := domain.SplitCategory(entry.Text)
		entries[category] = append(entries[category], GroupedEntry{
			Start:    entry.Start,
			Text:     domain.Capitalize(text),
			Duration: entry.Duration,
		})

		if i, ok := index[category]; ok {
			totals[i].Duration += entry.Duration
			continue
		}
		index[category] = len(totals)
		totals = append(totals, CategoryTotal{Category: category, Duration: entry.Duration})
	}
	return entries, totals
}

// DailyTotals returns one row per virtual day from the first to the last
// day with entries. Days in between without entries get zero rows.
func (w *TimeWindow) DailyTotals() []DayTotal {
	var days []DayTotal
	for _, interval := range w.AllEntries() {
		day := timeutil.VirtualDay(interval.Start, w.virtualMidnight)

		if len(days) == 0 || !days[len(days)-1].Date.Equal(day) {
			if len(days) > 0 {
				for gap := days[len(days)-1].Date.AddDate(0, 0, 1); gap.Before(day); gap = gap.AddDate(0, 0, 1) {
					days = append(days, DayTotal{Date: gap})
				}
			}
			days = append(days, DayTotal{
				Date:     day,
				DayStart: interval.Start.Sub(timeutil.Date(interval.Start)),
			})
		}

		current := &days[len(days)-1]
		if interval.IsSlacking() {
			current.Slacking += interval.Duration
		} else {
			current.Work += interval.Duration
		}
	}
	return days
}

// TaskTotals sums work per task with category prefixes removed, sorted
// by task.
func (w *TimeWindow) TaskTotals() []TaskTotal {
	work, _ := w.GroupedEntries()

	sums := make(map[string]time.Duration)
	for _, entry := range work {
		_, task := domain.SplitCategory(entry.Text)
		sums[task] += entry.Duration
	}

	totals := make([]TaskTotal, 0, len(sums))
	for task, d := range sums {
		if d > 0 {
			totals = append(totals, TaskTotal{Task: task, Duration: d})
		}
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Task < totals[j].Task
	})
	return totals
}
