package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Level buckets a percentage into the colors progress bars use.
type Level int

const (
	LevelLow Level = iota
	LevelMedium
	LevelHigh
)

// ProgressLevel classifies percent: below 50 is low, below 90 medium.
func ProgressLevel(percent float64) Level {
	switch {
	case percent < 50:
		return LevelLow
	case percent < 90:
		return LevelMedium
	default:
		return LevelHigh
	}
}

var levelStyles = map[Level]lipgloss.Style{
	LevelLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	LevelMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	LevelHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
}

// ProgressBar renders a fixed-width bar followed by the percentage label.
// Percentages above 100 fill the bar but keep their label.
func ProgressBar(percent float64, width int, label string, styled bool) string {
	if width < 1 {
		width = 1
	}
	clamped := math.Max(0, math.Min(100, percent))
	filled := int(math.Round(clamped / 100 * float64(width)))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if styled {
		bar = levelStyles[ProgressLevel(percent)].Render(bar)
	}
	if label == "" {
		label = fmt.Sprintf("%d%%", int(math.Round(percent)))
	}
	return bar + " " + label
}
