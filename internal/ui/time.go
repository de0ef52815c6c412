package ui

import (
	"fmt"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateLongLayout = "Mon, Jan 2 2006"
)

// FormatDate renders a calendar date, or "-" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

// FormatDateLong renders a date the way day headings show it.
func FormatDateLong(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLongLayout)
}

// FormatDue joins a due date with its optional time-of-day label.
func FormatDue(date time.Time, dueTime string) string {
	formatted := FormatDate(date)
	if dueTime == "" || formatted == "-" {
		return formatted
	}
	return formatted + " " + dueTime
}

// FormatHours renders a work-hour amount with at most one decimal.
func FormatHours(hours float64) string {
	if hours == float64(int64(hours)) {
		return fmt.Sprintf("%dh", int64(hours))
	}
	return fmt.Sprintf("%.1fh", hours)
}

