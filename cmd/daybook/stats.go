package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/amonks/daybook/internal/ui"
	"github.com/amonks/daybook/progress"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show overall completion",
	RunE:  runStats,
}

var statsYearCmd = &cobra.Command{
	Use:   "year",
	Short: "Show completion per month of a year",
	RunE:  runStatsYear,
}

var statsYear int

var statsDailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Show daily completion for the last days",
	RunE:  runStatsDaily,
}

var statsDailyDays int

var statsHoursCmd = &cobra.Command{
	Use:   "hours",
	Short: "Show logged work hours against the baseline",
	RunE:  runStatsHours,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.AddCommand(statsYearCmd, statsDailyCmd, statsHoursCmd)

	statsYearCmd.Flags().IntVar(&statsYear, "year", 0, "Year (default current)")
	statsDailyCmd.Flags().IntVar(&statsDailyDays, "days", progress.DefaultWindowDays, "Number of days to show")
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	fmt.Print(formatOverall(progress.Overall(store.Todos()), ui.ColorEnabled()))
	return nil
}

func formatOverall(s progress.OverallStats, styled bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Todos:      %d\n", s.Total)
	fmt.Fprintf(&b, "Completed:  %d\n", s.Completed)
	fmt.Fprintf(&b, "Remaining:  %d\n", s.Remaining)
	fmt.Fprintf(&b, "Completion: %s\n", ui.ProgressBar(float64(s.Percentage), progressBarWidth, "", styled))
	return b.String()
}

func runStatsYear(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	year := statsYear
	if year == 0 {
		year = store.Now().Year()
	}
	fmt.Print(formatYearly(progress.YearlyCompletion(store.Todos(), year), year, ui.ColorEnabled()))
	return nil
}

func formatYearly(series [12]int, year int, styled bool) string {
	builder := ui.NewTableBuilder([]string{"MONTH", "COMPLETION"}, len(series))
	for i, pct := range series {
		builder.AddRow(time.Month(i+1).String(), ui.ProgressBar(float64(pct), progressBarWidth, "", styled))
	}
	return strconv.Itoa(year) + "\n\n" + builder.String()
}

func runStatsDaily(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	fmt.Print(formatDaily(progress.DailyCompletion(store.Todos(), statsDailyDays, store.Now()), ui.ColorEnabled()))
	return nil
}

func formatDaily(points []progress.DayPoint, styled bool) string {
	builder := ui.NewTableBuilder([]string{"DAY", "DONE", "TOTAL", "COMPLETION"}, len(points))
	builder.AlignRight(1, 2)
	for _, p := range points {
		builder.AddRow(
			p.Date.Format("Mon Jan 2"),
			strconv.Itoa(p.Completed),
			strconv.Itoa(p.Total),
			ui.ProgressBar(float64(p.Percentage), progressBarWidth, "", styled),
		)
	}
	return builder.String()
}

func runStatsHours(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	now := store.Now()
	fmt.Print(formatHours(progress.WorkHours(store.Todos(), now), now))
	return nil
}

func formatHours(h progress.HoursBreakdown, now time.Time) string {
	builder := ui.NewTableBuilder([]string{"PERIOD", "LOGGED", "DAYS", "LEFT", "DONE", "MISSED", "REMAINING"}, 2)
	builder.AlignRight(1, 2, 3, 4, 5, 6)
	row := func(label string, s progress.HourShare) {
		builder.AddRow(
			label,
			ui.FormatHours(s.LoggedHours),
			strconv.Itoa(s.DaysPassed),
			strconv.Itoa(s.DaysRemaining),
			formatPercent(s.CompletedPercentage),
			formatPercent(s.MissedPercentage),
			formatPercent(s.RemainingPercentage),
		)
	}
	row(now.Format("January 2006"), h.Month)
	row(strconv.Itoa(now.Year()), h.Year)
	return builder.String()
}
