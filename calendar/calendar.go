// Package calendar assigns dated items to months, weeks and days.
//
// Every function here is pure: buckets are recomputed on each call and
// inputs are never modified. Weeks follow the rows of a Sunday-first
// month grid, so the first bucket holds the days before the first
// Saturday of the month.
package calendar

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	// WeekCount is the number of week buckets a month is split into.
	WeekCount = 5

	// MaxWeekIndex is the last week bucket. Days that fall on a sixth
	// grid row are folded into it.
	MaxWeekIndex = WeekCount - 1
)

// Period identifies a calendar month in a specific year.
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the month containing t, in t's location.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// Before reports whether p is an earlier month than other.
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// First returns midnight on the first day of p in loc.
func (p Period) First(loc *time.Location) time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, loc)
}

// Last returns the final instant of p in loc.
func (p Period) Last(loc *time.Location) time.Time {
	return p.First(loc).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// Days returns the number of days in p.
func (p Period) Days() int {
	return DaysInMonth(p.Year, p.Month)
}

// Contains reports whether t falls in p.
func (p Period) Contains(t time.Time) bool {
	return PeriodOf(t) == p
}

func (p Period) String() string {
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}

// DaysInMonth returns the number of days in month of year.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseMonth accepts a month name, a three-letter abbreviation or 1-12.
func ParseMonth(value string) (time.Month, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if n, err := strconv.Atoi(value); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("invalid month %q: must be 1-12", value)
		}
		return time.Month(n), nil
	}
	if len(value) >= 3 {
		for m := time.January; m <= time.December; m++ {
			name := strings.ToLower(m.String())
			if name == value || name[:3] == value {
				return m, nil
			}
		}
	}
	return 0, fmt.Errorf("invalid month %q", value)
}

// StartOfDay returns midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b share a calendar date, viewed in a's location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// DefaultDate is the date a new entry for p starts with: today when p is
// the current month, otherwise the first of the month.
func DefaultDate(p Period, now time.Time) time.Time {
	if p == PeriodOf(now) {
		return StartOfDay(now)
	}
	return p.First(now.Location())
}

var weekdayInitials = [7]string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

// WeekdayInitial returns the label for d.
func WeekdayInitial(d time.Weekday) string {
	return weekdayInitials[(int(d)+6)%7]
}

// IsMonthExpired reports whether p lies entirely before the month of now.
func IsMonthExpired(p Period, now time.Time) bool {
	return p.Before(PeriodOf(now))
}

// IsWeekExpired reports whether week of p has fully elapsed. In the
// current month, weeks before the one containing today are expired.
func IsWeekExpired(week int, p Period, now time.Time) bool {
	if IsMonthExpired(p, now) {
		return true
	}
	if p == PeriodOf(now) {
		return week < WeekIndex(now)
	}
	return false
}

// WeekIndex returns the week bucket of t within its month.
func WeekIndex(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).Weekday()
	index := (int(first) + t.Day() - 1) / 7
	return min(index, MaxWeekIndex)
}

// WeekDays returns the days of p that land in week, in order.
func WeekDays(p Period, week int, loc *time.Location) []time.Time {
	var days []time.Time
	for day := p.First(loc); PeriodOf(day) == p; day = day.AddDate(0, 0, 1) {
		if WeekIndex(day) == week {
			days = append(days, day)
		}
	}
	return days
}

// MonthBuckets holds items grouped by month name, January first.
type MonthBuckets[T any] [12][]T

// Month returns the bucket for m.
func (b MonthBuckets[T]) Month(m time.Month) []T {
	if m < time.January || m > time.December {
		return nil
	}
	return b[m-1]
}

// BucketByMonth groups items by the month of date(item). The year is
// ignored, so March of every year shares one bucket.
func BucketByMonth[T any](items []T, date func(T) time.Time) MonthBuckets[T] {
	var buckets MonthBuckets[T]
	for _, item := range items {
		m := date(item).Month()
		buckets[m-1] = append(buckets[m-1], item)
	}
	return buckets
}

// BucketByWeek splits items of one month into WeekCount buckets, each
// ordered by date ascending. Items with equal dates keep their order.
func BucketByWeek[T any](items []T, date func(T) time.Time) [][]T {
	buckets := make([][]T, WeekCount)
	for _, item := range items {
		week := WeekIndex(date(item))
		buckets[week] = append(buckets[week], item)
	}
	for _, bucket := range buckets {
		sort.SliceStable(bucket, func(i, j int) bool {
			return date(bucket[i]).Before(date(bucket[j]))
		})
	}
	return buckets
}

// DayGroup is the set of items sharing a calendar date.
type DayGroup[T any] struct {
	Date  time.Time
	Items []T
}

type dayKey struct {
	year  int
	month time.Month
	day   int
}

// GroupByDay groups items by calendar date, earliest day first. Dates are
// read in the location of the first item, so instants from different
// zones still share a day when they fall on the same local date.
func GroupByDay[T any](items []T, date func(T) time.Time) []DayGroup[T] {
	if len(items) == 0 {
		return nil
	}
	loc := date(items[0]).Location()
	index := make(map[dayKey]int)
	var groups []DayGroup[T]
	for _, item := range items {
		y, m, d := date(item).In(loc).Date()
		key := dayKey{year: y, month: m, day: d}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DayGroup[T]{Date: time.Date(y, m, d, 0, 0, 0, 0, loc)})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Date.Before(groups[j].Date)
	})
	for _, group := range groups {
		sort.SliceStable(group.Items, func(i, j int) bool {
			return date(group.Items[i]).Before(date(group.Items[j]))
		})
	}
	return groups
}
