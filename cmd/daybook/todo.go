package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/amonks/daybook/internal/editor"
	"github.com/amonks/daybook/internal/listflags"
	"github.com/amonks/daybook/internal/ui"
	"github.com/amonks/daybook/progress"
	"github.com/amonks/daybook/todo"
	"github.com/spf13/cobra"
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage dated todos",
}

// todo add
var todoAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a todo",
	Long: `Add a todo for a date.

Only one todo may exist per day; add sub-todos to split it up. By default,
opens $EDITOR to edit a TOML representation of the todo when running
interactively. Use --no-edit to skip the editor, or --edit to force it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTodoAdd,
}

var (
	todoAddDate        string
	todoAddMonth       string
	todoAddTime        string
	todoAddDescription string
	todoAddSubTodos    []string
	todoAddEdit        bool
	todoAddNoEdit      bool
)

// todo update
var todoUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a todo",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoUpdate,
}

var (
	todoUpdateTitle       string
	todoUpdateDescription string
	todoUpdateDate        string
	todoUpdateTime        string
)

// todo edit
var todoEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a todo in $EDITOR",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoEdit,
}

// todo done
var todoDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a todo as completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoDone,
}

var todoDoneHours float64

// todo undo
var todoUndoCmd = &cobra.Command{
	Use:   "undo <id>",
	Short: "Mark a completed todo as pending again",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoUndo,
}

// todo hours
var todoHoursCmd = &cobra.Command{
	Use:   "hours <id> <hours>",
	Short: "Set the work hours logged on a completed todo",
	Args:  cobra.ExactArgs(2),
	RunE:  runTodoHours,
}

// todo delete
var todoDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more todos",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTodoDelete,
}

// todo clear
var todoClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every todo",
	RunE:  runTodoClear,
}

var todoClearYes bool

// todo show
var todoShowCmd = &cobra.Command{
	Use:   "show <id>...",
	Short: "Show detailed information about todos",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTodoShow,
}

var todoShowJSON bool

// todo list
var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos",
	RunE:  runTodoList,
}

var (
	todoListMonth     string
	todoListPending   bool
	todoListCompleted bool
	todoListTitle     string
	todoListJSON      bool
)

func init() {
	rootCmd.AddCommand(todoCmd)
	todoCmd.AddCommand(todoAddCmd, todoUpdateCmd, todoEditCmd, todoDoneCmd, todoUndoCmd,
		todoHoursCmd, todoDeleteCmd, todoClearCmd, todoShowCmd, todoListCmd)
	addDescriptionFlagAliases(todoAddCmd, todoUpdateCmd)

	todoAddCmd.Flags().StringVar(&todoAddDate, "date", "", "Date (YYYY-MM-DD, default today)")
	todoAddCmd.Flags().StringVarP(&todoAddMonth, "month", "m", "", "Default the date within this month")
	todoAddCmd.Flags().StringVar(&todoAddTime, "time", "", "Time of day label")
	todoAddCmd.Flags().StringVarP(&todoAddDescription, "description", "d", "", "Description (use '-' to read from stdin)")
	todoAddCmd.Flags().StringArrayVarP(&todoAddSubTodos, "sub", "s", nil, "Sub-todo title (repeatable)")
	todoAddCmd.Flags().BoolVarP(&todoAddEdit, "edit", "e", false, "Open $EDITOR (default if interactive)")
	todoAddCmd.Flags().BoolVar(&todoAddNoEdit, "no-edit", false, "Do not open $EDITOR")

	todoUpdateCmd.Flags().StringVar(&todoUpdateTitle, "title", "", "New title")
	todoUpdateCmd.Flags().StringVarP(&todoUpdateDescription, "description", "d", "", "New description (use '-' to read from stdin)")
	todoUpdateCmd.Flags().StringVar(&todoUpdateDate, "date", "", "New date (YYYY-MM-DD)")
	todoUpdateCmd.Flags().StringVar(&todoUpdateTime, "time", "", "New time of day label")

	todoDoneCmd.Flags().Float64Var(&todoDoneHours, "hours", 0, "Work hours to log with the completion")

	todoClearCmd.Flags().BoolVarP(&todoClearYes, "yes", "y", false, "Confirm deleting every todo")

	listflags.AddJSONFlag(todoShowCmd, &todoShowJSON)

	listflags.AddMonthFlag(todoListCmd, &todoListMonth, "todos")
	todoListCmd.Flags().BoolVar(&todoListPending, "pending", false, "Only pending todos")
	todoListCmd.Flags().BoolVar(&todoListCompleted, "completed", false, "Only completed todos")
	todoListCmd.Flags().StringVar(&todoListTitle, "title", "", "Filter by title substring")
	listflags.AddJSONFlag(todoListCmd, &todoListJSON)
	todoListCmd.MarkFlagsMutuallyExclusive("pending", "completed")
}

func runTodoAdd(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("description") {
		desc, err := resolveTextFromStdin(todoAddDescription, os.Stdin)
		if err != nil {
			return err
		}
		todoAddDescription = desc
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	now := store.Now()
	fallback, err := entryDate(todoAddMonth, now)
	if err != nil {
		return err
	}
	due, err := parseDate(todoAddDate, fallback)
	if err != nil {
		return err
	}

	useEditor := todoAddEdit || (!todoAddNoEdit && editor.IsInteractive())

	var draft todo.Draft
	if useEditor {
		data := editor.DefaultCreateData(due)
		if len(args) > 0 {
			data.Title = args[0]
		}
		data.Time = todoAddTime
		data.Description = todoAddDescription
		data.SubTodos = todoAddSubTodos

		parsed, err := editor.EditTodoWithData(data)
		if err != nil {
			return err
		}
		draft = parsed.Draft()
	} else {
		if len(args) == 0 {
			return fmt.Errorf("title is required (use --edit to open editor)")
		}
		draft = todo.Draft{
			Title:       args[0],
			Description: todoAddDescription,
			DueDate:     due,
			DueTime:     todoAddTime,
			SubTodos:    todoAddSubTodos,
		}
	}

	created, err := store.Create(draft)
	if err != nil {
		return err
	}

	highlight := highlighter(todo.PrefixLengths(store.Todos()), ui.HighlightID)
	fmt.Printf("Created todo %s: %s\n", highlight(created.ID), created.Title)
	return nil
}

func runTodoUpdate(cmd *cobra.Command, args []string) error {
	if !hasChangedFlags(cmd, "title", "description", "date", "time") {
		return fmt.Errorf("at least one update flag is required (use 'daybook todo edit' to open editor)")
	}
	if cmd.Flags().Changed("description") {
		desc, err := resolveTextFromStdin(todoUpdateDescription, os.Stdin)
		if err != nil {
			return err
		}
		todoUpdateDescription = desc
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	existing, err := store.Resolve(args[0])
	if err != nil {
		return err
	}

	var patches []todo.TodoPatch
	if cmd.Flags().Changed("title") {
		patches = append(patches, todo.SetTitle{Title: todoUpdateTitle})
	}
	if cmd.Flags().Changed("description") {
		patches = append(patches, todo.SetDescription{Description: todoUpdateDescription})
	}
	if cmd.Flags().Changed("date") {
		due, err := parseDate(todoUpdateDate, existing.EffectiveDate())
		if err != nil {
			return err
		}
		patches = append(patches, todo.SetDueDate{Date: due})
	}
	if cmd.Flags().Changed("time") {
		patches = append(patches, todo.SetDueTime{Time: todoUpdateTime})
	}

	updated, err := store.Update(existing.ID, patches...)
	if err != nil {
		return err
	}
	highlight := highlighter(todo.PrefixLengths(store.Todos()), ui.HighlightID)
	fmt.Printf("Updated %s: %s\n", highlight(updated.ID), updated.Title)
	return nil
}

func runTodoEdit(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	existing, err := store.Resolve(args[0])
	if err != nil {
		return err
	}

	parsed, err := editor.EditTodo(existing, existing.EffectiveDate())
	if err != nil {
		return err
	}
	patches := parsed.Patches(existing)
	if len(patches) == 0 {
		fmt.Println("No changes.")
		return nil
	}

	updated, err := store.Update(existing.ID, patches...)
	if err != nil {
		return err
	}
	highlight := highlighter(todo.PrefixLengths(store.Todos()), ui.HighlightID)
	fmt.Printf("Updated %s: %s\n", highlight(updated.ID), updated.Title)
	return nil
}

func runTodoDone(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	existing, err := store.Resolve(args[0])
	if err != nil {
		return err
	}

	var hours *float64
	if cmd.Flags().Changed("hours") {
		hours = &todoDoneHours
	}

	if existing.Completed {
		if hours == nil {
			return fmt.Errorf("todo %s is already completed", existing.ID)
		}
		_, err := store.LogWorkHours(existing.ID, *hours)
		return err
	}
	_, err = store.Toggle(existing.ID, hours)
	return err
}

func runTodoUndo(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	existing, err := store.Resolve(args[0])
	if err != nil {
		return err
	}
	if !existing.Completed {
		return fmt.Errorf("%w: %s", todo.ErrNotCompleted, existing.ID)
	}
	_, err = store.Toggle(existing.ID, nil)
	return err
}

func runTodoHours(cmd *cobra.Command, args []string) error {
	hours, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(args[1]), "h"), 64)
	if err != nil {
		return fmt.Errorf("invalid hours %q: %w", args[1], err)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	existing, err := store.Resolve(args[0])
	if err != nil {
		return err
	}

	updated, err := store.LogWorkHours(existing.ID, hours)
	if err != nil {
		return err
	}
	if updated.WorkCompletionPercentage != nil {
		fmt.Printf("%s of a %dh day\n", formatPercent(*updated.WorkCompletionPercentage), todo.BaselineHours)
	}
	return nil
}

func runTodoDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	// Resolve every prefix first so a typo deletes nothing.
	targets := make([]*todo.Todo, 0, len(args))
	for _, arg := range args {
		existing, err := store.Resolve(arg)
		if err != nil {
			return err
		}
		targets = append(targets, existing)
	}
	for _, target := range targets {
		if err := store.Delete(target.ID); err != nil {
			return err
		}
	}
	return nil
}

func runTodoClear(cmd *cobra.Command, args []string) error {
	if !todoClearYes {
		return errors.New("refusing to delete every todo without --yes")
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	return store.ClearTodos()
}

func runTodoShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	items := make([]todo.Todo, 0, len(args))
	for _, arg := range args {
		item, err := store.Resolve(arg)
		if err != nil {
			return err
		}
		items = append(items, *item)
	}

	if todoShowJSON {
		return encodeJSONToStdout(items)
	}

	highlight := highlighter(todo.PrefixLengths(store.Todos()), ui.HighlightID)
	for i, item := range items {
		if i > 0 {
			fmt.Println()
			fmt.Println("---")
			fmt.Println()
		}
		printTodoDetail(item, highlight)
	}
	return nil
}

func runTodoList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	all := store.Todos()
	items := all
	if todoListMonth != "" {
		period, err := parsePeriod(todoListMonth, store.Now())
		if err != nil {
			return err
		}
		items = progress.MonthTodos(items, period)
	}
	items = filterTodos(items, todoListPending, todoListCompleted, todoListTitle)
	sortTodosByDate(items)

	if todoListJSON {
		if items == nil {
			items = []todo.Todo{}
		}
		return encodeJSONToStdout(items)
	}

	printTodoTable(items, todo.PrefixLengths(all))
	return nil
}

func filterTodos(items []todo.Todo, pendingOnly, completedOnly bool, title string) []todo.Todo {
	title = strings.ToLower(strings.TrimSpace(title))
	filtered := make([]todo.Todo, 0, len(items))
	for _, item := range items {
		if pendingOnly && item.Completed {
			continue
		}
		if completedOnly && !item.Completed {
			continue
		}
		if title != "" && !strings.Contains(strings.ToLower(item.Title), title) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}
