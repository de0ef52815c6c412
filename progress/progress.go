// Package progress derives completion and work-hour statistics from todos.
//
// Everything is computed on demand from the collections and a reference
// time; nothing is cached between calls.
package progress

import (
	"math"
	"time"

	"github.com/amonks/daybook/calendar"
	"github.com/amonks/daybook/todo"
)

const (
	// WeeklyBaselineHours is seven baseline days.
	WeeklyBaselineHours = todo.BaselineHours * 7

	// DefaultWindowDays is the length of the daily completion series.
	DefaultWindowDays = 7
)

func effectiveDate(t todo.Todo) time.Time { return t.EffectiveDate() }

func noteDate(n todo.Note) time.Time { return n.CreatedAt }

// Percent returns part/whole as a rounded percentage, 0 when whole is 0.
func Percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func completedHours(todos []todo.Todo) float64 {
	var sum float64
	for _, t := range todos {
		sum += t.CompletedHours()
	}
	return sum
}

// MonthTodos returns the month bucket of period. Like
// calendar.BucketByMonth it ignores the year.
func MonthTodos(todos []todo.Todo, period calendar.Period) []todo.Todo {
	return calendar.BucketByMonth(todos, effectiveDate).Month(period.Month)
}

// MonthNotes returns the notes in the month bucket of period.
func MonthNotes(notes []todo.Note, period calendar.Period) []todo.Note {
	return calendar.BucketByMonth(notes, noteDate).Month(period.Month)
}

// MonthStats summarizes one month.
type MonthStats struct {
	Period    calendar.Period
	Total     int
	Completed int
	Pending   int
	Notes     int

	CompletionPercentage      int
	WorkHours                 float64
	IdealCompletionPercentage int
	AverageDailyWorkHours     float64
	Expired                   bool
}

// Month summarizes the todos and notes in the month bucket of period.
func Month(todos []todo.Todo, notes []todo.Note, period calendar.Period, now time.Time) MonthStats {
	monthTodos := MonthTodos(todos, period)
	monthNotes := MonthNotes(notes, period)

	stats := MonthStats{
		Period:  period,
		Total:   len(monthTodos),
		Notes:   len(monthNotes),
		Expired: calendar.IsMonthExpired(period, now),
	}
	for _, t := range monthTodos {
		if t.Completed {
			stats.Completed++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	stats.CompletionPercentage = Percent(stats.Completed, stats.Total)
	stats.WorkHours = completedHours(monthTodos)
	stats.IdealCompletionPercentage = IdealCompletionPercentage(stats.WorkHours, period, now)
	stats.AverageDailyWorkHours = AverageDailyWorkHours(stats.WorkHours, period, now)
	return stats
}

// ElapsedDays counts the days of period that count towards its baseline:
// all of them for a past month, up to today for the current one and none
// for a future month.
func ElapsedDays(period calendar.Period, now time.Time) int {
	current := calendar.PeriodOf(now)
	switch {
	case period == current:
		return now.Day()
	case period.Before(current):
		return period.Days()
	default:
		return 0
	}
}

// IdealCompletionPercentage compares hours with a full baseline day for
// every elapsed day of period. The result is rounded but not capped.
func IdealCompletionPercentage(hours float64, period calendar.Period, now time.Time) int {
	baseline := float64(ElapsedDays(period, now) * todo.BaselineHours)
	if baseline == 0 {
		return 0
	}
	return int(math.Round(hours / baseline * 100))
}

// AverageDailyWorkHours spreads hours over the elapsed days of the
// current month, or over every day of any other month.
func AverageDailyWorkHours(hours float64, period calendar.Period, now time.Time) float64 {
	days := period.Days()
	if period == calendar.PeriodOf(now) {
		days = now.Day()
	}
	return hours / float64(days)
}

// WeekStats summarizes one week bucket.
type WeekStats struct {
	Total     int
	Completed int
	Pending   int
	WorkHours float64
	// Percentage is WorkHours against WeeklyBaselineHours, to one decimal.
	Percentage float64
}

// Week summarizes the todos of one week bucket.
func Week(todos []todo.Todo) WeekStats {
	stats := WeekStats{Total: len(todos)}
	for _, t := range todos {
		if t.Completed {
			stats.Completed++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	stats.WorkHours = completedHours(todos)
	stats.Percentage = roundTenth(stats.WorkHours / WeeklyBaselineHours * 100)
	return stats
}

// Weeks splits the todos of period's month bucket into week buckets and
// summarizes each.
func Weeks(todos []todo.Todo, period calendar.Period) []WeekStats {
	buckets := calendar.BucketByWeek(MonthTodos(todos, period), effectiveDate)
	out := make([]WeekStats, len(buckets))
	for i, bucket := range buckets {
		out[i] = Week(bucket)
	}
	return out
}

// YearlyCompletion returns, per month of year, the completion percentage
// of todos scheduled in that month. A todo counts as completed when it was
// completed by the end of its month. Months without todos report 0.
func YearlyCompletion(todos []todo.Todo, year int) [12]int {
	var series [12]int
	for m := time.January; m <= time.December; m++ {
		period := calendar.Period{Year: year, Month: m}
		total, completed := 0, 0
		for _, t := range todos {
			date := t.EffectiveDate()
			if !period.Contains(date) {
				continue
			}
			total++
			if t.Completed && t.CompletedAt != nil && !t.CompletedAt.After(period.Last(date.Location())) {
				completed++
			}
		}
		series[m-1] = Percent(completed, total)
	}
	return series
}

// DayPoint is one day of the daily completion series.
type DayPoint struct {
	Date       time.Time
	Total      int
	Completed  int
	Percentage int
}

// DailyCompletion returns windowDays points ending today. Each day counts
// every todo created by the end of that day, and how many of them were
// completed by then.
func DailyCompletion(todos []todo.Todo, windowDays int, now time.Time) []DayPoint {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	today := calendar.StartOfDay(now)
	points := make([]DayPoint, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		end := day.AddDate(0, 0, 1).Add(-time.Nanosecond)
		point := DayPoint{Date: day}
		for _, t := range todos {
			if t.CreatedAt.After(end) {
				continue
			}
			point.Total++
			if t.Completed && t.CompletedAt != nil && !t.CompletedAt.After(end) {
				point.Completed++
			}
		}
		point.Percentage = Percent(point.Completed, point.Total)
		points = append(points, point)
	}
	return points
}

// OverallStats summarizes every todo.
type OverallStats struct {
	Total      int
	Completed  int
	Remaining  int
	Percentage int
}

// Overall summarizes every todo regardless of date.
func Overall(todos []todo.Todo) OverallStats {
	stats := OverallStats{Total: len(todos)}
	for _, t := range todos {
		if t.Completed {
			stats.Completed++
		}
	}
	stats.Remaining = stats.Total - stats.Completed
	stats.Percentage = Percent(stats.Completed, stats.Total)
	return stats
}
