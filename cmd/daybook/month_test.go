package main

import (
	"strings"
	"testing"
	"time"

	"github.com/amonks/daybook/calendar"
	"github.com/amonks/daybook/progress"
	"github.com/amonks/daybook/todo"
)

var monthTestNow = time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC)

func day(d int) *time.Time {
	t := time.Date(2026, time.June, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestMonthViewFormat(t *testing.T) {
	todos := []todo.Todo{
		{ID: "aaa", Title: "Pay rent", DueDate: day(3), Completed: true, CompletedAt: day(3), WorkHours: hoursPtr(6)},
		{ID: "bbb", Title: "Review", DueDate: day(15)},
	}
	notes := []todo.Note{{ID: "n1", Text: "Rent is due", CreatedAt: *day(3)}}
	period := calendar.PeriodOf(monthTestNow)

	view := monthView{
		Stats: progress.Month(todos, notes, period, monthTestNow),
		Todos: todos,
		Notes: notes,
	}
	got := view.format(func(id string) string { return id }, false)

	for _, want := range []string{
		"June 2026\n\n",
		"Todos:       2 (1 done, 1 pending)\n",
		"Notes:       1\n",
		"Completion:  ██████████░░░░░░░░░░ 50%\n",
		"Work hours:  6h (0.4h/day)\n",
		"Wed, Jun 3 2026\n  [x] aaa Pay rent (6h)\n",
		"Mon, Jun 15 2026\n  [ ] bbb Review\n",
		"Notes\n  Wed, Jun 3 2026\n    Rent is due\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "expired") {
		t.Error("current month should not be expired")
	}
}

func TestMonthViewFormatExpiredEmpty(t *testing.T) {
	period := calendar.Period{Year: 2026, Month: time.May}
	view := monthView{Stats: progress.Month(nil, nil, period, monthTestNow)}

	got := view.format(func(id string) string { return id }, false)
	if !strings.HasPrefix(got, "May 2026 (expired)\n") {
		t.Errorf("expected expired heading, got:\n%s", got)
	}
	if !strings.Contains(got, "No todos this month.") {
		t.Errorf("expected empty message, got:\n%s", got)
	}
}

func TestFormatWeekTable(t *testing.T) {
	todos := []todo.Todo{
		{ID: "aaa", Title: "Plan", DueDate: day(1), Completed: true, CompletedAt: day(1), WorkHours: hoursPtr(42)},
		{ID: "bbb", Title: "Wrap up", DueDate: day(30)},
	}
	period := calendar.PeriodOf(monthTestNow)

	got := formatWeekTable(progress.Weeks(todos, period), period, monthTestNow, false)
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 2+1+calendar.WeekCount {
		t.Fatalf("expected title, blank, header and %d rows, got:\n%s", calendar.WeekCount, got)
	}
	if !strings.HasPrefix(lines[3], "1*  ") || !strings.Contains(lines[3], "1-6") || !strings.HasSuffix(lines[3], " 50%") {
		t.Errorf("unexpected first week row %q", lines[3])
	}
	if !strings.HasPrefix(lines[7], "5   ") || !strings.Contains(lines[7], "28-30") {
		t.Errorf("unexpected last week row %q", lines[7])
	}
}

func TestFormatWeek(t *testing.T) {
	todos := []todo.Todo{{ID: "bbb", Title: "Wrap up", DueDate: day(30), DueTime: "17:00"}}
	period := calendar.PeriodOf(monthTestNow)

	got := formatWeek(todos, period, calendar.MaxWeekIndex, monthTestNow, func(id string) string { return id }, false)
	for _, want := range []string{
		"June 2026, week 5\n",
		"Work hours:  0h of 84h\n",
		"SUN 28\n",
		"TUE 30\n  [ ] bbb Wrap up @ 17:00\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in:\n%s", want, got)
		}
	}
}

func TestFormatHoursTable(t *testing.T) {
	todos := []todo.Todo{
		{ID: "aaa", Title: "Plan", DueDate: day(1), Completed: true, CompletedAt: day(15), WorkHours: hoursPtr(12)},
	}
	got := formatHours(progress.WorkHours(todos, monthTestNow), monthTestNow)
	if !strings.Contains(got, "June 2026  ") {
		t.Errorf("expected month row in:\n%s", got)
	}
	if !strings.Contains(got, "6.7%") || !strings.Contains(got, "93.3%") {
		t.Errorf("expected month percentages in:\n%s", got)
	}
}

func TestFormatYearly(t *testing.T) {
	var series [12]int
	series[5] = 100
	got := formatYearly(series, 2026, false)
	if !strings.HasPrefix(got, "2026\n\nMONTH") {
		t.Errorf("unexpected heading in:\n%s", got)
	}
	if !strings.Contains(got, "June       ████████████████████ 100%\n") {
		t.Errorf("expected full June bar in:\n%s", got)
	}
}
