package main

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/amonks/daybook/calendar"
	"github.com/amonks/daybook/internal/ids"
	"github.com/amonks/daybook/internal/listflags"
	"github.com/amonks/daybook/internal/markdown"
	"github.com/amonks/daybook/internal/ui"
	"github.com/amonks/daybook/progress"
	"github.com/amonks/daybook/todo"
	"github.com/spf13/cobra"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage dated notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a note (use '-' to read the text from stdin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteAdd,
}

var (
	noteAddDate  string
	noteAddMonth string
)

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes grouped by day",
	RunE:  runNoteList,
}

var (
	noteListMonth string
	noteListJSON  bool
)

var noteUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteUpdate,
}

var (
	noteUpdateText string
	noteUpdateDate string
)

var noteDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more notes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNoteDelete,
}

func init() {
	rootCmd.AddCommand(noteCmd)
	noteCmd.AddCommand(noteAddCmd, noteListCmd, noteUpdateCmd, noteDeleteCmd)

	noteAddCmd.Flags().StringVarP(&noteAddMonth, "month", "m", "", "Default the date within this month")
	noteAddCmd.Flags().StringVar(&noteAddDate, "date", "", "Date (YYYY-MM-DD, default today)")

	listflags.AddMonthFlag(noteListCmd, &noteListMonth, "notes")
	listflags.AddJSONFlag(noteListCmd, &noteListJSON)

	noteUpdateCmd.Flags().StringVar(&noteUpdateText, "text", "", "New text (use '-' to read from stdin)")
	noteUpdateCmd.Flags().StringVar(&noteUpdateDate, "date", "", "New date (YYYY-MM-DD)")
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
	text, err := resolveTextFromStdin(args[0], os.Stdin)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	fallback, err := entryDate(noteAddMonth, store.Now())
	if err != nil {
		return err
	}
	date, err := parseDate(noteAddDate, fallback)
	if err != nil {
		return err
	}

	created, err := store.AddNote(text, date)
	if err != nil {
		return err
	}
	fmt.Printf("Created note %s for %s\n", created.ID, ui.FormatDate(created.CreatedAt))
	return nil
}

func runNoteList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	notes := store.Notes()
	if noteListMonth != "" {
		period, err := parsePeriod(noteListMonth, store.Now())
		if err != nil {
			return err
		}
		notes = progress.MonthNotes(notes, period)
	}
	slices.SortStableFunc(notes, func(a, b todo.Note) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	if noteListJSON {
		if notes == nil {
			notes = []todo.Note{}
		}
		return encodeJSONToStdout(notes)
	}

	if len(notes) == 0 {
		fmt.Println("No notes found.")
		return nil
	}
	fmt.Print(formatNoteGroups(notes, ids.UniquePrefixLengths(noteIDs(store.Notes())), ui.HighlightID))
	return nil
}

func noteIDs(notes []todo.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return out
}

func noteDate(n todo.Note) time.Time { return n.CreatedAt }

// formatNoteGroups renders notes under a heading per day.
func formatNoteGroups(notes []todo.Note, prefixLengths map[string]int, highlight func(string, int) string) string {
	var b strings.Builder
	for i, group := range calendar.GroupByDay(notes, noteDate) {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s\n", ui.FormatDateLong(group.Date))
		for _, n := range group.Items {
			fmt.Fprintf(&b, "  %s\n", highlight(n.ID, ui.PrefixLength(prefixLengths, n.ID)))
			fmt.Fprintf(&b, "%s\n", markdown.Wrap(detailLineWidth, 4, n.Text))
		}
	}
	return b.String()
}

func runNoteUpdate(cmd *cobra.Command, args []string) error {
	if !hasChangedFlags(cmd, "text", "date") {
		return fmt.Errorf("at least one of --text or --date is required")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	existing, err := store.ResolveNote(args[0])
	if err != nil {
		return err
	}

	var patches []todo.NotePatch
	if cmd.Flags().Changed("text") {
		text, err := resolveTextFromStdin(noteUpdateText, os.Stdin)
		if err != nil {
			return err
		}
		patches = append(patches, todo.SetNoteText{Text: text})
	}
	if cmd.Flags().Changed("date") {
		date, err := parseDate(noteUpdateDate, existing.CreatedAt)
		if err != nil {
			return err
		}
		patches = append(patches, todo.SetNoteDate{Date: date})
	}

	_, err = store.UpdateNote(existing.ID, patches...)
	return err
}

func runNoteDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	targets := make([]string, 0, len(args))
	for _, arg := range args {
		existing, err := store.ResolveNote(arg)
		if err != nil {
			return err
		}
		targets = append(targets, existing.ID)
	}
	for _, id := range targets {
		if err := store.DeleteNote(id); err != nil {
			return err
		}
	}
	return nil
}
