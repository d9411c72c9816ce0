package services

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"timelog/internal/domain"
	"timelog/internal/errors"
	"timelog/internal/timelog"
	"timelog/internal/timeutil"
)

const (
	// textWidth is the width of the entry column in plain reports.
	textWidth = 62
	// lineWidth is the width of a categorized report line.
	lineWidth = 70

	noCategoryPlain       = "(none)"
	noCategoryCategorized = "No category"
)

// period names the span a report covers, as used in "this week".
type period string

const (
	periodWeek   period = "week"
	periodMonth  period = "month"
	periodCustom period = "custom range"
)

// reportServiceImpl implements the ReportService interface
type reportServiceImpl struct {
	window *timelog.TimeWindow
}

// NewReportService creates a new ReportService over window
func NewReportService(window *timelog.TimeWindow) ReportService {
	return &reportServiceImpl{window: window}
}

// reportRow is one line of a report: a label and the time spent on it.
type reportRow struct {
	text     string
	duration time.Duration
}

func (s *reportServiceImpl) DailyReport(w io.Writer, email, who string) error {
	min := s.window.Min()
	_, week := min.ISOWeek()
	subject := fmt.Sprintf("%s report for %s (%s, week %02d)",
		min.Format(timeutil.DateLayout), who, min.Format("Mon"), week)

	var b strings.Builder
	writeHeader(&b, email, subject)

	intervals := s.window.AllEntries()
	if len(intervals) == 0 {
		b.WriteString("No work done today.\n")
		return flush(w, &b)
	}

	first := intervals[0]
	fmt.Fprintf(&b, "%s at %s\n\n", domain.Capitalize(first.Text), first.Start.Format("15:04"))

	work, slacking := s.window.GroupedEntries()
	for _, entry := range work {
		writeLongRow(&b, domain.Capitalize(entry.Text), entry.Duration)
	}
	totalWork, totalSlacking := s.window.Totals("")
	fmt.Fprintf(&b, "\nTotal work done: %s\n", timeutil.FormatDurationLong(totalWork))

	writeCategories(&b, categoryTotals(work))

	if len(slacking) > 0 {
		b.WriteString("Slacking:\n\n")
		for _, entry := range slacking {
			writeLongRow(&b, domain.Capitalize(entry.Text), entry.Duration)
		}
		fmt.Fprintf(&b, "\nTime spent slacking: %s\n", timeutil.FormatDurationLong(totalSlacking))
	}

	return flush(w, &b)
}

func (s *reportServiceImpl) WeeklyReportPlain(w io.Writer, email, who string) error {
	return s.plainReport(w, email, s.weeklySubject(who), periodWeek)
}

func (s *reportServiceImpl) WeeklyReportCategorized(w io.Writer, email, who string) error {
	return s.categorizedReport(w, email, s.weeklySubject(who), periodWeek)
}

func (s *reportServiceImpl) MonthlyReportPlain(w io.Writer, email, who string) error {
	return s.plainReport(w, email, s.monthlySubject(who), periodMonth)
}

func (s *reportServiceImpl) MonthlyReportCategorized(w io.Writer, email, who string) error {
	return s.categorizedReport(w, email, s.monthlySubject(who), periodMonth)
}

func (s *reportServiceImpl) CustomRangeReportPlain(w io.Writer, email, who string) error {
	return s.plainReport(w, email, s.customRangeSubject(who), periodCustom)
}

func (s *reportServiceImpl) CustomRangeReportCategorized(w io.Writer, email, who string) error {
	return s.categorizedReport(w, email, s.customRangeSubject(who), periodCustom)
}

func (s *reportServiceImpl) weeklySubject(who string) string {
	_, week := s.window.Min().ISOWeek()
	return fmt.Sprintf("Weekly report for %s (week %02d)", who, week)
}

func (s *reportServiceImpl) monthlySubject(who string) string {
	return fmt.Sprintf("Monthly report for %s (%s)", who, s.window.Min().Format("2006/01"))
}

func (s *reportServiceImpl) customRangeSubject(who string) string {
	last := s.window.Max().AddDate(0, 0, -1)
	return fmt.Sprintf("Custom date range report for %s (%s - %s)", who,
		s.window.Min().Format(timeutil.DateLayout), last.Format(timeutil.DateLayout))
}

// plainReport lists work alphabetically with long durations, followed by
// the time spent per category.
func (s *reportServiceImpl) plainReport(w io.Writer, email, subject string, p period) error {
	var b strings.Builder
	writeHeader(&b, email, subject)

	if len(s.window.Entries()) == 0 {
		fmt.Fprintf(&b, "No work done this %s.\n", p)
		return flush(w, &b)
	}

	fmt.Fprintf(&b, "%-*s  %s\n", textWidth, "", "time")

	work, _ := s.window.GroupedEntries()
	rows := make([]reportRow, 0, len(work))
	for _, entry := range work {
		rows = append(rows, reportRow{text: domain.Capitalize(entry.Text), duration: entry.Duration})
	}
	for _, row := range mergeRows(rows) {
		writeLongRow(&b, row.text, row.duration)
	}

	totalWork, _ := s.window.Totals("")
	fmt.Fprintf(&b, "\nTotal work done this %s: %s\n", p, timeutil.FormatDurationLong(totalWork))

	writeCategories(&b, categoryTotals(work))
	return flush(w, &b)
}

// categorizedReport lists work per category with short durations, then the
// categories and tags ordered by time spent.
func (s *reportServiceImpl) categorizedReport(w io.Writer, email, subject string, p period) error {
	var b strings.Builder
	writeHeader(&b, email, subject)

	if len(s.window.Entries()) == 0 {
		fmt.Fprintf(&b, "No work done this %s.\n", p)
		return flush(w, &b)
	}

	fmt.Fprintf(&b, "%*s\n", lineWidth, "time")

	entries, totals := s.window.CategorizedWorkEntries()
	for _, category := range sortedCategories(totals) {
		label := category
		if label == "" {
			label = noCategoryCategorized
		}
		fmt.Fprintf(&b, "%s:\n", label)

		rows := make([]reportRow, 0, len(entries[category]))
		var subtotal time.Duration
		for _, entry := range entries[category] {
			rows = append(rows, reportRow{text: entry.Text, duration: entry.Duration})
			subtotal += entry.Duration
		}
		for _, row := range mergeRows(rows) {
			fmt.Fprintf(&b, "  %-*s  %5s\n", lineWidth-9, row.text, timeutil.FormatDurationShort(row.duration))
		}
		b.WriteString(strings.Repeat("-", lineWidth))
		fmt.Fprintf(&b, "\n%*s\n\n", lineWidth, timeutil.FormatDurationShort(subtotal))
	}

	totalWork, _ := s.window.Totals("")
	fmt.Fprintf(&b, "Total work done this %s: %s\n", p, timeutil.FormatDurationShort(totalWork))

	byTime := make([]reportRow, 0, len(totals))
	for _, total := range totals {
		label := total.Category
		if label == "" {
			label = noCategoryCategorized
		}
		byTime = append(byTime, reportRow{text: label, duration: total.Duration})
	}
	b.WriteString("\nCategories by time spent:\n")
	writeRanking(&b, byTime)

	if tags := s.window.SetOfAllTags().Sorted(); len(tags) > 0 {
		s.writeTags(&b, tags)
	}

	return flush(w, &b)
}

// writeTags ranks tags by the work time of the entries carrying them.
func (s *reportServiceImpl) writeTags(b *strings.Builder, tags []string) {
	rows := make([]reportRow, 0, len(tags))
	for _, tag := range tags {
		work, _ := s.window.Totals(tag)
		rows = append(rows, reportRow{text: tag, duration: work})
	}

	b.WriteString("\nTime spent in each area:\n\n")
	writeRanking(b, rows)
	b.WriteString("\nNote that area totals may not add up to the period totals,\n" +
		"as each entry may be belong to multiple areas (or none at all).\n")
}

func writeHeader(b *strings.Builder, email, subject string) {
	fmt.Fprintf(b, "To: %s\nSubject: %s\n\n", email, subject)
}

func writeLongRow(b *strings.Builder, text string, d time.Duration) {
	fmt.Fprintf(b, "%-*s  %s\n", textWidth, text, timeutil.FormatDurationLong(d))
}

// writeCategories lists category totals alphabetically, uncategorized
// work last.
func writeCategories(b *strings.Builder, totals []timelog.CategoryTotal) {
	b.WriteString("\nBy category:\n\n")
	sums := make(map[string]time.Duration, len(totals))
	for _, total := range totals {
		sums[total.Category] += total.Duration
	}
	for _, category := range sortedCategories(totals) {
		label := category
		if label == "" {
			label = noCategoryPlain
		}
		writeLongRow(b, label, sums[category])
	}
	b.WriteString("\n")
}

// writeRanking lists rows by descending duration, keeping the given order
// among equal durations.
func writeRanking(b *strings.Builder, rows []reportRow) {
	width := 0
	for _, row := range rows {
		width = max(width, utf8.RuneCountInString(row.text))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].duration > rows[j].duration
	})
	for _, row := range rows {
		fmt.Fprintf(b, "  %-*s %5s\n", width+4, row.text, timeutil.FormatDurationShort(row.duration))
	}
}

// categoryTotals sums grouped work per category in first-seen order.
func categoryTotals(work []timelog.GroupedEntry) []timelog.CategoryTotal {
	var totals []timelog.CategoryTotal
	index := make(map[string]int)
	for _, entry := range work {
		category, _ := domain.SplitCategory(entry.Text)
		if i, ok := index[category]; ok {
			totals[i].Duration += entry.Duration
			continue
		}
		index[category] = len(totals)
		totals = append(totals, timelog.CategoryTotal{Category: category, Duration: entry.Duration})
	}
	return totals
}

// sortedCategories returns the category names alphabetically with the
// empty category last.
func sortedCategories(totals []timelog.CategoryTotal) []string {
	names := make([]string, 0, len(totals))
	uncategorized := false
	for _, total := range totals {
		if total.Category == "" {
			uncategorized = true
			continue
		}
		names = append(names, total.Category)
	}
	sort.Strings(names)
	names = timeutil.Uniq(names)
	if uncategorized {
		names = append(names, "")
	}
	return names
}

// mergeRows sums rows with equal text, drops empty ones and sorts the rest
// by text, then duration.
func mergeRows(rows []reportRow) []reportRow {
	sums := make(map[string]time.Duration)
	var order []string
	for _, row := range rows {
		if _, ok := sums[row.text]; !ok {
			order = append(order, row.text)
		}
		sums[row.text] += row.duration
	}

	merged := make([]reportRow, 0, len(order))
	for _, text := range order {
		if sums[text] == 0 {
			continue
		}
		merged = append(merged, reportRow{text: text, duration: sums[text]})
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].text != merged[j].text {
			return merged[i].text < merged[j].text
		}
		return merged[i].duration < merged[j].duration
	})
	return merged
}

func flush(w io.Writer, b *strings.Builder) error {
	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.NewStorageError("write report", "output", err)
	}
	return nil
}
