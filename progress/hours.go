package progress

import (
	"math"
	"time"

	"github.com/amonks/daybook/calendar"
	"github.com/amonks/daybook/todo"
)

// HourShare splits a period's baseline hours into what was logged, what
// was missed on elapsed days and what lies ahead. Percentages have one
// decimal.
type HourShare struct {
	LoggedHours   float64
	DaysPassed    int
	DaysRemaining int

	CompletedPercentage float64
	MissedPercentage    float64
	RemainingPercentage float64
}

// HoursBreakdown covers the current month and the current year.
type HoursBreakdown struct {
	Month HourShare
	Year  HourShare
}

// WorkHours measures logged hours against the baseline for the month and
// the year containing now. Hours count towards the date a todo was
// completed, or its creation date when that is missing. Today counts as
// a passed day.
func WorkHours(todos []todo.Todo, now time.Time) HoursBreakdown {
	period := calendar.PeriodOf(now)
	year := now.Year()

	var monthHours, yearHours float64
	for _, t := range todos {
		if !t.Completed || t.WorkHours == nil {
			continue
		}
		date := t.CreatedAt
		if t.CompletedAt != nil {
			date = *t.CompletedAt
		}
		date = date.In(now.Location())
		if date.Year() != year {
			continue
		}
		yearHours += *t.WorkHours
		if date.Month() == period.Month {
			monthHours += *t.WorkHours
		}
	}

	startOfYear := time.Date(year, time.January, 1, 0, 0, 0, 0, now.Location())
	yearPassed := int(math.Floor(now.Sub(startOfYear).Hours()/24)) + 1

	return HoursBreakdown{
		Month: hourShare(monthHours, now.Day(), period.Days()),
		Year:  hourShare(yearHours, yearPassed, daysInYear(year)),
	}
}

func hourShare(logged float64, passed, total int) HourShare {
	share := HourShare{
		LoggedHours:   logged,
		DaysPassed:    passed,
		DaysRemaining: total - passed,
	}
	past := float64(passed * todo.BaselineHours)
	if past > 0 {
		share.CompletedPercentage = roundTenth(logged / past * 100)
		share.MissedPercentage = roundTenth(math.Max(0, (past-logged)/past*100))
	}
	if total > 0 {
		share.RemainingPercentage = roundTenth(float64(share.DaysRemaining) / float64(total) * 100)
	}
	return share
}

func daysInYear(year int) int {
	if (year%4 == 0 && year%100 != 0) || year%400 == 0 {
		return 366
	}
	return 365
}
