package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/amonks/daybook/internal/ui"
	"github.com/amonks/daybook/todo"
)

// printTodoTable prints todos in a table format.
func printTodoTable(todos []todo.Todo, prefixLengths map[string]int) {
	if len(todos) == 0 {
		fmt.Println("No todos found.")
		return
	}

	fmt.Print(formatTodoTable(todos, prefixLengths, ui.HighlightID))
}

func formatTodoTable(todos []todo.Todo, prefixLengths map[string]int, highlight func(string, int) string) string {
	builder := ui.NewTableBuilder([]string{"ID", "DATE", "STATUS", "HOURS", "SUBS", "TITLE"}, len(todos))
	builder.AlignRight(3, 4)

	if prefixLengths == nil {
		prefixLengths = todo.PrefixLengths(todos)
	}

	for _, t := range todos {
		builder.AddRow(
			highlight(t.ID, ui.PrefixLength(prefixLengths, t.ID)),
			ui.FormatDue(t.EffectiveDate(), t.DueTime),
			todoStatus(t.Completed),
			formatTodoHours(t),
			formatSubTodoCount(t),
			ui.TruncateTableCell(t.Title),
		)
	}

	return builder.String()
}

func sortTodosByDate(todos []todo.Todo) {
	slices.SortStableFunc(todos, func(a, b todo.Todo) int {
		return a.EffectiveDate().Compare(b.EffectiveDate())
	})
}

func todoStatus(completed bool) string {
	if completed {
		return "done"
	}
	return "pending"
}

func todoCheckbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

func formatTodoHours(t todo.Todo) string {
	if t.WorkHours == nil {
		return "-"
	}
	return ui.FormatHours(*t.WorkHours)
}

func formatSubTodoCount(t todo.Todo) string {
	if len(t.SubTodos) == 0 {
		return "-"
	}
	done := 0
	for _, sub := range t.SubTodos {
		if sub.Completed {
			done++
		}
	}
	return fmt.Sprintf("%d/%d", done, len(t.SubTodos))
}

// formatTodoLine renders a todo and its sub-todos as indented checklist lines.
func formatTodoLine(t todo.Todo, indent string, highlight func(string) string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s %s %s", indent, todoCheckbox(t.Completed), highlight(t.ID), t.Title)
	if t.DueTime != "" {
		fmt.Fprintf(&b, " @ %s", t.DueTime)
	}
	if t.WorkHours != nil {
		fmt.Fprintf(&b, " (%s)", ui.FormatHours(*t.WorkHours))
	}
	b.WriteString("\n")
	for _, sub := range t.SubTodos {
		fmt.Fprintf(&b, "%s    %s %s %s\n", indent, todoCheckbox(sub.Completed), highlight(sub.ID), sub.Title)
	}
	return b.String()
}

// printTodoDetail prints detailed information about a todo.
func printTodoDetail(t todo.Todo, highlight func(string) string) {
	fmt.Print(formatTodoDetail(t, highlight))
}

func formatTodoDetail(t todo.Todo, highlight func(string) string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID:        %s\n", highlight(t.ID))
	fmt.Fprintf(&b, "Title:     %s\n", t.Title)
	fmt.Fprintf(&b, "Date:      %s\n", ui.FormatDue(t.EffectiveDate(), t.DueTime))
	fmt.Fprintf(&b, "Status:    %s\n", todoStatus(t.Completed))
	fmt.Fprintf(&b, "Created:   %s\n", t.CreatedAt.Format("2006-01-02 15:04:05"))
	if t.CompletedAt != nil {
		fmt.Fprintf(&b, "Completed: %s\n", t.CompletedAt.Format("2006-01-02 15:04:05"))
	}
	if t.WorkHours != nil {
		pct := 0.0
		if t.WorkCompletionPercentage != nil {
			pct = *t.WorkCompletionPercentage
		}
		fmt.Fprintf(&b, "Hours:     %s (%s of %dh)\n", ui.FormatHours(*t.WorkHours), formatPercent(pct), todo.BaselineHours)
	}

	if len(t.SubTodos) > 0 {
		fmt.Fprintf(&b, "\nSub-todos (%s):\n", formatSubTodoCount(t))
		for _, sub := range t.SubTodos {
			fmt.Fprintf(&b, "  %s %s %s\n", todoCheckbox(sub.Completed), highlight(sub.ID), sub.Title)
		}
	}

	if t.Description != "" {
		fmt.Fprintf(&b, "\nDescription:\n%s\n", renderMarkdownOrDash(t.Description, detailLineWidth, 2))
	}
	return b.String()
}

func formatPercent(value float64) string {
	if value == float64(int64(value)) {
		return fmt.Sprintf("%d%%", int64(value))
	}
	return fmt.Sprintf("%.1f%%", value)
}
