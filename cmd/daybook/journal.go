package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/amonks/daybook/internal/config"
	"github.com/amonks/daybook/internal/listflags"
	"github.com/amonks/daybook/internal/markdown"
	"github.com/amonks/daybook/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show journal entries from the configured content lake",
	RunE:  runJournal,
}

var (
	journalJSON  bool
	journalLimit int
)

func init() {
	rootCmd.AddCommand(journalCmd)
	listflags.AddJSONFlag(journalCmd, &journalJSON)
	journalCmd.Flags().IntVar(&journalLimit, "limit", 0, "Maximum number of entries to show (0 for all)")
}

func journalConfig(cfg config.Journal) journal.Config {
	return journal.Config{
		ProjectID:  cfg.ProjectID,
		Dataset:    cfg.Dataset,
		APIVersion: cfg.APIVersion,
		Token:      cfg.Token,
		BaseURL:    cfg.BaseURL,
	}
}

func runJournal(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := journal.New(journalConfig(cfg.Journal))
	if err != nil {
		return err
	}

	entries, err := client.Entries(cmd.Context())
	if err != nil {
		return err
	}
	if journalLimit > 0 && len(entries) > journalLimit {
		entries = entries[:journalLimit]
	}

	if journalJSON {
		if entries == nil {
			entries = []journal.Entry{}
		}
		return encodeJSONToStdout(entries)
	}
	if len(entries) == 0 {
		fmt.Println("No journal entries found.")
		return nil
	}
	fmt.Print(formatJournal(entries))
	return nil
}

const journalTimeLayout = "02 Jan 2006, 03:04 PM"

func formatJournalTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "N/A"
	}
	return t.Format(journalTimeLayout)
}

func formatJournal(entries []journal.Entry) string {
	var b strings.Builder
	for i, entry := range entries {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		date := entry.Date
		fmt.Fprintf(&b, "%s\n", entry.Title)
		fmt.Fprintf(&b, "Date:     %s\n", formatJournalTime(&date))
		fmt.Fprintf(&b, "Created:  %s\n", formatJournalTime(entry.CreatedAt))
		fmt.Fprintf(&b, "Updated:  %s\n", formatJournalTime(entry.UpdatedAt))
		if body := markdown.Render(detailLineWidth, 2, journal.Markdown(entry.Content)); body != "" {
			fmt.Fprintf(&b, "\n%s\n", body)
		}
	}
	return b.String()
}
