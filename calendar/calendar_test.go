package calendar

import (
	"testing"
	"time"
)

type item struct {
	name string
	when time.Time
}

func itemDate(i item) time.Time { return i.when }

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestWeekIndex(t *testing.T) {
	// March 2026 starts on a Sunday; August 2026 on a Saturday.
	cases := []struct {
		name string
		when time.Time
		want int
	}{
		{name: "first of sunday month", when: date(2026, time.March, 1), want: 0},
		{name: "first saturday", when: date(2026, time.March, 7), want: 0},
		{name: "second sunday", when: date(2026, time.March, 8), want: 1},
		{name: "last day of five row month", when: date(2026, time.March, 31), want: 4},
		{name: "first of saturday month", when: date(2026, time.August, 1), want: 0},
		{name: "second day of saturday month", when: date(2026, time.August, 2), want: 1},
		{name: "sixth row folds into last bucket", when: date(2026, time.August, 30), want: 4},
		{name: "sixth row last day", when: date(2026, time.August, 31), want: 4},
		{name: "february four rows", when: date(2026, time.February, 28), want: 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := WeekIndex(tc.when); got != tc.want {
				t.Fatalf("WeekIndex(%s) = %d, want %d", tc.when.Format("2006-01-02"), got, tc.want)
			}
		})
	}
}

func TestWeekIndexStaysInRange(t *testing.T) {
	for year := 2020; year <= 2030; year++ {
		for month := time.January; month <= time.December; month++ {
			for day := 1; day <= DaysInMonth(year, month); day++ {
				got := WeekIndex(date(year, month, day))
				if got < 0 || got > MaxWeekIndex {
					t.Fatalf("WeekIndex(%d-%d-%d) = %d out of range", year, month, day, got)
				}
			}
		}
	}
}

func TestBucketByMonthKeepsEveryItemOnce(t *testing.T) {
	items := []item{
		{name: "a", when: date(2026, time.January, 5)},
		{name: "b", when: date(2026, time.March, 9)},
		{name: "c", when: date(2025, time.March, 20)},
		{name: "d", when: date(2026, time.December, 31)},
		{name: "e", when: date(2026, time.March, 1)},
	}

	buckets := BucketByMonth(items, itemDate)

	seen := make(map[string]int)
	for m := time.January; m <= time.December; m++ {
		for _, it := range buckets.Month(m) {
			if it.when.Month() != m {
				t.Fatalf("item %s landed in %s", it.name, m)
			}
			seen[it.name]++
		}
	}
	if len(seen) != len(items) {
		t.Fatalf("expected %d distinct items, got %d", len(items), len(seen))
	}
	for name, count := range seen {
		if count != 1 {
			t.Fatalf("item %s appeared %d times", name, count)
		}
	}
	if got := len(buckets.Month(time.March)); got != 3 {
		t.Fatalf("expected March to ignore years and hold 3 items, got %d", got)
	}
	if buckets.Month(0) != nil {
		t.Fatal("expected nil for invalid month")
	}
}

func TestBucketByWeekSortsAndKeepsSixthRow(t *testing.T) {
	items := []item{
		{name: "late", when: date(2026, time.August, 31)},
		{name: "mid-b", when: date(2026, time.August, 12)},
		{name: "first", when: date(2026, time.August, 1)},
		{name: "mid-a", when: date(2026, time.August, 10)},
		{name: "tie-1", when: date(2026, time.August, 11)},
		{name: "tie-2", when: date(2026, time.August, 11)},
	}

	buckets := BucketByWeek(items, itemDate)

	if len(buckets) != WeekCount {
		t.Fatalf("expected %d buckets, got %d", WeekCount, len(buckets))
	}
	total := 0
	for _, bucket := range buckets {
		total += len(bucket)
	}
	if total != len(items) {
		t.Fatalf("expected %d items across buckets, got %d", len(items), total)
	}
	if len(buckets[0]) != 1 || buckets[0][0].name != "first" {
		t.Fatalf("unexpected first week %v", buckets[0])
	}
	if len(buckets[4]) != 1 || buckets[4][0].name != "late" {
		t.Fatalf("expected sixth-row item in last bucket, got %v", buckets[4])
	}
	names := []string{}
	for _, it := range buckets[2] {
		names = append(names, it.name)
	}
	want := []string{"mid-a", "tie-1", "tie-2", "mid-b"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestGroupByDay(t *testing.T) {
	items := []item{
		{name: "afternoon", when: time.Date(2026, time.May, 4, 15, 0, 0, 0, time.UTC)},
		{name: "earlier day", when: time.Date(2026, time.May, 3, 9, 0, 0, 0, time.UTC)},
		{name: "morning", when: time.Date(2026, time.May, 4, 8, 0, 0, 0, time.UTC)},
	}

	groups := GroupByDay(items, itemDate)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if !groups[0].Date.Equal(date(2026, time.May, 3)) {
		t.Fatalf("unexpected first day %v", groups[0].Date)
	}
	if groups[1].Items[0].name != "morning" || groups[1].Items[1].name != "afternoon" {
		t.Fatalf("expected items ordered by time, got %v", groups[1].Items)
	}
}

func TestGroupByDayMixedLocations(t *testing.T) {
	zulu := time.FixedZone("Z", 0)
	ist := time.FixedZone("IST", 5*60*60+30*60)
	items := []item{
		{name: "utc", when: time.Date(2026, time.June, 3, 9, 0, 0, 0, time.UTC)},
		{name: "zulu", when: time.Date(2026, time.June, 3, 10, 0, 0, 0, zulu)},
		{name: "ist", when: time.Date(2026, time.June, 3, 17, 0, 0, 0, ist)},
	}

	groups := GroupByDay(items, itemDate)

	if len(groups) != 1 {
		t.Fatalf("expected one day group, got %d", len(groups))
	}
	if len(groups[0].Items) != 3 {
		t.Fatalf("expected all items in the group, got %v", groups[0].Items)
	}
	if !groups[0].Date.Equal(date(2026, time.June, 3)) || groups[0].Date.Location() != time.UTC {
		t.Fatalf("unexpected day %v", groups[0].Date)
	}
	if GroupByDay[item](nil, itemDate) != nil {
		t.Fatal("expected no groups for no items")
	}
}

func TestIsMonthExpired(t *testing.T) {
	now := time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC)

	for m := time.January; m <= time.December; m++ {
		got := IsMonthExpired(Period{Year: 2026, Month: m}, now)
		want := m < time.June
		if got != want {
			t.Errorf("IsMonthExpired(%s) = %v, want %v", m, got, want)
		}
	}

	if !IsMonthExpired(Period{Year: 2025, Month: time.December}, now) {
		t.Error("expected a month of a past year to be expired")
	}
	if IsMonthExpired(Period{Year: 2027, Month: time.January}, now) {
		t.Error("expected a month of a future year not to be expired")
	}
}

func TestIsWeekExpired(t *testing.T) {
	// June 2026 starts on a Monday; June 15 is in week 2.
	now := time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC)
	june := Period{Year: 2026, Month: time.June}

	cases := []struct {
		name   string
		week   int
		period Period
		want   bool
	}{
		{name: "earlier week of current month", week: 1, period: june, want: true},
		{name: "current week", week: 2, period: june, want: false},
		{name: "later week", week: 4, period: june, want: false},
		{name: "expired month", week: 4, period: Period{Year: 2026, Month: time.May}, want: true},
		{name: "future month", week: 0, period: Period{Year: 2026, Month: time.July}, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsWeekExpired(tc.week, tc.period, now); got != tc.want {
				t.Fatalf("IsWeekExpired(%d, %v) = %v, want %v", tc.week, tc.period, got, tc.want)
			}
		})
	}
}

func TestDefaultDate(t *testing.T) {
	now := time.Date(2026, time.June, 15, 10, 30, 0, 0, time.UTC)

	if got := DefaultDate(Period{Year: 2026, Month: time.June}, now); !got.Equal(date(2026, time.June, 15)) {
		t.Fatalf("expected today for current month, got %v", got)
	}
	if got := DefaultDate(Period{Year: 2026, Month: time.September}, now); !got.Equal(date(2026, time.September, 1)) {
		t.Fatalf("expected first of month, got %v", got)
	}
}

func TestWeekDays(t *testing.T) {
	days := WeekDays(Period{Year: 2026, Month: time.August}, 4, time.UTC)

	// Rows five and six of August 2026 share the last bucket.
	if len(days) != 9 {
		t.Fatalf("expected 9 days, got %d", len(days))
	}
	if days[0].Day() != 23 || days[len(days)-1].Day() != 31 {
		t.Fatalf("unexpected range %v..%v", days[0], days[len(days)-1])
	}
}

func TestParseMonth(t *testing.T) {
	cases := map[string]time.Month{
		"october": time.October,
		"Oct":     time.October,
		"3":       time.March,
		" may ":   time.May,
	}
	for input, want := range cases {
		got, err := ParseMonth(input)
		if err != nil {
			t.Fatalf("ParseMonth(%q) failed: %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseMonth(%q) = %v, want %v", input, got, want)
		}
	}

	for _, input := range []string{"", "13", "oc", "smarch"} {
		if _, err := ParseMonth(input); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestWeekdayInitial(t *testing.T) {
	if WeekdayInitial(time.Monday) != "MON" || WeekdayInitial(time.Sunday) != "SUN" {
		t.Fatal("unexpected weekday initials")
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, time.May, 4, 23, 0, 0, 0, time.UTC)
	b := time.Date(2026, time.May, 4, 1, 0, 0, 0, time.UTC)
	c := time.Date(2026, time.May, 5, 0, 0, 0, 0, time.UTC)

	if !SameDay(a, b) {
		t.Fatal("expected same day")
	}
	if SameDay(a, c) {
		t.Fatal("expected different days")
	}
}
