package services

import (
	"io"
)

// ReportService renders e-mail style reports over one time window.
type ReportService interface {
	// DailyReport lists the day's work and slacking in the order it happened.
	DailyReport(w io.Writer, email, who string) error

	// WeeklyReportPlain lists the week's work alphabetically.
	WeeklyReportPlain(w io.Writer, email, who string) error

	// WeeklyReportCategorized lists the week's work grouped by category.
	WeeklyReportCategorized(w io.Writer, email, who string) error

	// MonthlyReportPlain lists the month's work alphabetically.
	MonthlyReportPlain(w io.Writer, email, who string) error

	// MonthlyReportCategorized lists the month's work grouped by category.
	MonthlyReportCategorized(w io.Writer, email, who string) error

	// CustomRangeReportPlain lists work in an arbitrary date range
	// alphabetically.
	CustomRangeReportPlain(w io.Writer, email, who string) error

	// CustomRangeReportCategorized lists work in an arbitrary date range
	// grouped by category.
	CustomRangeReportCategorized(w io.Writer, email, who string) error
}

// ExportService writes a time window in machine-readable formats.
type ExportService interface {
	// ToCSVComplete writes one row per task with the minutes spent on it.
	ToCSVComplete(w io.Writer) error

	// ToCSVDaily writes one row per day with start, slacking and work hours.
	ToCSVDaily(w io.Writer) error

	// ICalendar writes every interval as an iCalendar event.
	ICalendar(w io.Writer) error
}
