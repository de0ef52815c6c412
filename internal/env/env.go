// Package env reads daybook's environment overrides.
package env

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// ConfigVar points at a config file used instead of the global one.
	ConfigVar = "DAYBOOK_CONFIG"

	// StateDirVar overrides the directory holding persisted todos and notes.
	StateDirVar = "DAYBOOK_STATE_DIR"

	// NowVar pins the clock, mostly for scripted tests.
	NowVar = "DAYBOOK_NOW"
)

// String returns the trimmed value of key, or fallback when unset.
func String(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

// Clock returns time.Now unless NowVar holds a fixed instant.
func Clock() (func() time.Time, error) {
	raw := String(NowVar, "")
	if raw == "" {
		return time.Now, nil
	}
	fixed, err := ParseInstant(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", NowVar, err)
	}
	return func() time.Time { return fixed }, nil
}

// ParseInstant accepts RFC 3339 timestamps or bare dates. The result is
// always in local time, so calendar fields match what the user sees.
func ParseInstant(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.In(time.Local), nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04", raw, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q: expected RFC 3339 or YYYY-MM-DD", raw)
}
