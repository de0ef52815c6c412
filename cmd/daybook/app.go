package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/amonks/daybook/calendar"
	"github.com/amonks/daybook/internal/config"
	"github.com/amonks/daybook/internal/env"
	"github.com/amonks/daybook/internal/notify"
	"github.com/amonks/daybook/internal/paths"
	"github.com/amonks/daybook/internal/state"
	"github.com/amonks/daybook/todo"
)

// loadConfig reads the global and per-directory configuration.
func loadConfig() (*config.Config, error) {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}
	return config.Load(cwd)
}

// openStore opens the todo store described by the configuration.
// Mutation messages are written to stdout.
func openStore() (*todo.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return openStoreWithConfig(cfg, notify.NewConsole(os.Stdout))
}

func openStoreWithConfig(cfg *config.Config, notifier todo.Notifier) (*todo.Store, error) {
	dir, err := cfg.StateDir()
	if err != nil {
		return nil, err
	}
	clock, err := env.Clock()
	if err != nil {
		return nil, err
	}

	policy := todo.Policy{
		RejectDuplicateDay:          cfg.Policy.RejectDuplicateDay,
		RejectExpired:               cfg.Policy.RejectExpired,
		DeleteParentWithLastSubTodo: cfg.Policy.DeleteParentWithLastSubTodo,
	}
	return todo.Open(todo.OpenOptions{
		Storage:  state.NewStore(dir),
		Notifier: notifier,
		Policy:   &policy,
		Now:      clock,
	})
}

// parseDate reads a --date flag. An empty value yields fallback.
func parseDate(value string, fallback time.Time) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	date, err := env.ParseInstant(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %w", err)
	}
	return date, nil
}

// entryDate is the default date for a new entry. With a month it is
// today inside the current month and the first of any other month.
func entryDate(month string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(month) == "" {
		return calendar.StartOfDay(now), nil
	}
	period, err := parsePeriod(month, now)
	if err != nil {
		return time.Time{}, err
	}
	return calendar.DefaultDate(period, now), nil
}

func resolveTextFromStdin(value string, reader io.Reader) (string, error) {
	if value != "-" {
		return value, nil
	}

	input, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read from stdin: %w", err)
	}

	return strings.TrimRight(string(input), "\r\n"), nil
}
