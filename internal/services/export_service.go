package services

import (
	"crypto/md5"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"timelog/internal/errors"
	"timelog/internal/timelog"
	"timelog/internal/timeutil"
)

const (
	icalLocalLayout = "20060102T150405"
	icalUTCLayout   = "20060102T150405Z"
	uidLayout       = "2006-01-02 15:04:05"
)

var summaryEscaper = strings.NewReplacer(`\`, `\\`, `,`, `\,`, `;`, `\;`)

// exportServiceImpl implements the ExportService interface
type exportServiceImpl struct {
	window   *timelog.TimeWindow
	hostname func() string
	now      func() time.Time
}

// ExportOption configures an ExportService.
type ExportOption func(*exportServiceImpl)

// WithHostname fixes the host name used in iCalendar event UIDs.
func WithHostname(host string) ExportOption {
	return func(s *exportServiceImpl) {
		s.hostname = func() string { return host }
	}
}

// WithNow replaces time.Now as the source of iCalendar stamps.
func WithNow(now func() time.Time) ExportOption {
	return func(s *exportServiceImpl) {
		s.now = now
	}
}

// NewExportService creates a new ExportService over window
func NewExportService(window *timelog.TimeWindow, opts ...ExportOption) ExportService {
	s := &exportServiceImpl{
		window:   window,
		hostname: fullyQualifiedHostname,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *exportServiceImpl) ToCSVComplete(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"task", "time (minutes)"}); err != nil {
		return exportError("csv", err)
	}
	for _, total := range s.window.TaskTotals() {
		record := []string{total.Task, strconv.Itoa(timeutil.AsMinutes(total.Duration))}
		if err := cw.Write(record); err != nil {
			return exportError("csv", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return exportError("csv", err)
	}
	return nil
}

func (s *exportServiceImpl) ToCSVDaily(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "day-start (hours)", "slacking (hours)", "work (hours)"}); err != nil {
		return exportError("csv", err)
	}
	for _, day := range s.window.DailyTotals() {
		record := []string{
			day.Date.Format(timeutil.DateLayout),
			timeutil.FormatHours(timeutil.AsHours(day.DayStart)),
			timeutil.FormatHours(timeutil.AsHours(day.Slacking)),
			timeutil.FormatHours(timeutil.AsHours(day.Work)),
		}
		if err := cw.Write(record); err != nil {
			return exportError("csv", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return exportError("csv", err)
	}
	return nil
}

func (s *exportServiceImpl) ICalendar(w io.Writer) error {
	host := s.hostname()
	stamp := s.now().UTC().Format(icalUTCLayout)

	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\n")
	b.WriteString("PRODID:-//gtimelog.org/NONSGML GTimeLog//EN\n")
	b.WriteString("VERSION:2.0\n")
	for _, interval := range s.window.AllEntries() {
		sum := md5.Sum([]byte(interval.Start.Format(uidLayout) + interval.Stop.Format(uidLayout) + interval.Text))
		b.WriteString("BEGIN:VEVENT\n")
		fmt.Fprintf(&b, "UID:%s@%s\n", hex.EncodeToString(sum[:]), host)
		fmt.Fprintf(&b, "SUMMARY:%s\n", summaryEscaper.Replace(interval.Text))
		fmt.Fprintf(&b, "DTSTART:%s\n", interval.Start.Format(icalLocalLayout))
		fmt.Fprintf(&b, "DTEND:%s\n", interval.Stop.Format(icalLocalLayout))
		fmt.Fprintf(&b, "DTSTAMP:%s\n", stamp)
		b.WriteString("END:VEVENT\n")
	}
	b.WriteString("END:VCALENDAR\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return exportError("icalendar", err)
	}
	return nil
}

func exportError(format string, err error) error {
	return errors.NewStorageError("export "+format, "output", err)
}

// fullyQualifiedHostname resolves the canonical name of this host,
// falling back to the bare host name.
func fullyQualifiedHostname() string {
	host, err := os.Hostname()
	if err != nil {
		return "localhost"
	}
	cname, err := net.LookupCNAME(host)
	if err != nil || cname == "" {
		return host
	}
	return strings.TrimSuffix(cname, ".")
}
