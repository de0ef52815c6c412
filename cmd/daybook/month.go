package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/amonks/daybook/calendar"
	"github.com/amonks/daybook/internal/markdown"
	"github.com/amonks/daybook/internal/ui"
	"github.com/amonks/daybook/progress"
	"github.com/amonks/daybook/todo"
	"github.com/spf13/cobra"
)

const progressBarWidth = 20

var monthCmd = &cobra.Command{
	Use:   "month [month]",
	Short: "Show a month's todos, notes and progress",
	Long: `Show a month's todos, notes and progress.

The month is a name ("june", "jun"), a number (6) or YYYY-MM.
It defaults to the current month.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMonth,
}

var weekCmd = &cobra.Command{
	Use:   "week <month> [week]",
	Short: "Show a month's weeks, or the todos of one week (1-5)",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runWeek,
}

func init() {
	rootCmd.AddCommand(monthCmd, weekCmd)
}

// parsePeriod reads a month argument relative to now's year.
func parsePeriod(value string, now time.Time) (calendar.Period, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return calendar.PeriodOf(now), nil
	}
	if t, err := time.Parse("2006-01", value); err == nil {
		return calendar.Period{Year: t.Year(), Month: t.Month()}, nil
	}
	month, err := calendar.ParseMonth(value)
	if err != nil {
		return calendar.Period{}, err
	}
	return calendar.Period{Year: now.Year(), Month: month}, nil
}

func todoDate(t todo.Todo) time.Time { return t.EffectiveDate() }

func runMonth(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	now := store.Now()

	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	period, err := parsePeriod(arg, now)
	if err != nil {
		return err
	}

	all := store.Todos()
	view := monthView{
		Stats: progress.Month(all, store.Notes(), period, now),
		Todos: progress.MonthTodos(all, period),
		Notes: progress.MonthNotes(store.Notes(), period),
	}
	highlight := highlighter(todo.PrefixLengths(all), ui.HighlightID)
	fmt.Print(view.format(highlight, ui.ColorEnabled()))
	return nil
}

type monthView struct {
	Stats progress.MonthStats
	Todos []todo.Todo
	Notes []todo.Note
}

func (v monthView) format(highlight func(string) string, styled bool) string {
	var b strings.Builder
	s := v.Stats

	title := s.Period.String()
	if s.Expired {
		title += " (expired)"
	}
	fmt.Fprintf(&b, "%s\n\n", title)
	fmt.Fprintf(&b, "Todos:       %d (%d done, %d pending)\n", s.Total, s.Completed, s.Pending)
	fmt.Fprintf(&b, "Notes:       %d\n", s.Notes)
	fmt.Fprintf(&b, "Completion:  %s\n", ui.ProgressBar(float64(s.CompletionPercentage), progressBarWidth, "", styled))
	fmt.Fprintf(&b, "Work hours:  %s (%s/day)\n", ui.FormatHours(s.WorkHours), ui.FormatHours(roundTenth(s.AverageDailyWorkHours)))
	fmt.Fprintf(&b, "Ideal:       %s\n", ui.ProgressBar(float64(s.IdealCompletionPercentage), progressBarWidth, "", styled))

	if len(v.Todos) == 0 {
		b.WriteString("\nNo todos this month.\n")
	}
	for _, group := range calendar.GroupByDay(v.Todos, todoDate) {
		fmt.Fprintf(&b, "\n%s\n", ui.FormatDateLong(group.Date))
		for _, t := range group.Items {
			b.WriteString(formatTodoLine(t, "  ", highlight))
		}
	}

	if len(v.Notes) > 0 {
		b.WriteString("\nNotes\n")
		for _, group := range calendar.GroupByDay(v.Notes, noteDate) {
			fmt.Fprintf(&b, "  %s\n", ui.FormatDateLong(group.Date))
			for _, n := range group.Items {
				fmt.Fprintf(&b, "%s\n", markdown.Wrap(detailLineWidth, 4, n.Text))
			}
		}
	}
	return b.String()
}

func runWeek(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	now := store.Now()

	period, err := parsePeriod(args[0], now)
	if err != nil {
		return err
	}
	all := store.Todos()

	if len(args) == 1 {
		fmt.Print(formatWeekTable(progress.Weeks(all, period), period, now, ui.ColorEnabled()))
		return nil
	}

	week, err := strconv.Atoi(args[1])
	if err != nil || week < 1 || week > calendar.WeekCount {
		return fmt.Errorf("invalid week %q: must be 1-%d", args[1], calendar.WeekCount)
	}
	bucket := calendar.BucketByWeek(progress.MonthTodos(all, period), todoDate)[week-1]
	highlight := highlighter(todo.PrefixLengths(all), ui.HighlightID)
	fmt.Print(formatWeek(bucket, period, week-1, now, highlight, ui.ColorEnabled()))
	return nil
}

func formatWeekTable(weeks []progress.WeekStats, period calendar.Period, now time.Time, styled bool) string {
	builder := ui.NewTableBuilder([]string{"WEEK", "DAYS", "TODOS", "DONE", "PENDING", "HOURS", "PROGRESS"}, len(weeks))
	builder.AlignRight(2, 3, 4, 5)
	for i, w := range weeks {
		label := strconv.Itoa(i + 1)
		if calendar.IsWeekExpired(i, period, now) {
			label += "*"
		}
		builder.AddRow(
			label,
			formatWeekDays(calendar.WeekDays(period, i, now.Location())),
			strconv.Itoa(w.Total),
			strconv.Itoa(w.Completed),
			strconv.Itoa(w.Pending),
			ui.FormatHours(w.WorkHours),
			ui.ProgressBar(w.Percentage, 10, "", styled),
		)
	}
	return period.String() + "\n\n" + builder.String()
}

func formatWeekDays(days []time.Time) string {
	if len(days) == 0 {
		return "-"
	}
	first, last := days[0], days[len(days)-1]
	return fmt.Sprintf("%d-%d", first.Day(), last.Day())
}

func formatWeek(todos []todo.Todo, period calendar.Period, week int, now time.Time, highlight func(string) string, styled bool) string {
	var b strings.Builder
	stats := progress.Week(todos)

	title := fmt.Sprintf("%s, week %d", period, week+1)
	if calendar.IsWeekExpired(week, period, now) {
		title += " (expired)"
	}
	fmt.Fprintf(&b, "%s\n\n", title)
	fmt.Fprintf(&b, "Todos:       %d (%d done, %d pending)\n", stats.Total, stats.Completed, stats.Pending)
	fmt.Fprintf(&b, "Work hours:  %s of %dh\n", ui.FormatHours(stats.WorkHours), progress.WeeklyBaselineHours)
	fmt.Fprintf(&b, "Progress:    %s\n", ui.ProgressBar(stats.Percentage, progressBarWidth, "", styled))

	byDay := calendar.GroupByDay(todos, todoDate)
	for _, day := range calendar.WeekDays(period, week, now.Location()) {
		fmt.Fprintf(&b, "\n%s %2d\n", calendar.WeekdayInitial(day.Weekday()), day.Day())
		for _, group := range byDay {
			if !calendar.SameDay(group.Date, day) {
				continue
			}
			for _, t := range group.Items {
				b.WriteString(formatTodoLine(t, "  ", highlight))
			}
		}
	}
	return b.String()
}

func roundTenth(value float64) float64 {
	return math.Round(value*10) / 10
}
