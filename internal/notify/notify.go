// Package notify renders user-facing mutation messages.
package notify

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Console writes success and error messages to a writer.
type Console struct {
	mu           sync.Mutex
	writer       io.Writer
	styled       bool
	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
}

// NewConsole builds a notifier for writer.
// Messages are styled only when writer is a terminal and NO_COLOR is unset.
func NewConsole(writer io.Writer) *Console {
	if writer == nil {
		writer = io.Discard
	}
	return &Console{
		writer:       writer,
		styled:       colorEnabled(writer),
		successStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		errorStyle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	}
}

// Success reports a completed mutation.
func (c *Console) Success(message string) {
	c.write("✓", message, c.successStyle)
}

// Error reports a rejected mutation.
func (c *Console) Error(message string) {
	c.write("✗", message, c.errorStyle)
}

func (c *Console) write(marker, message string, style lipgloss.Style) {
	if c == nil {
		return
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	line := marker + " " + message
	if c.styled {
		line = style.Render(line)
	}
	fmt.Fprintln(c.writer, line)
}

// Discard drops every message.
type Discard struct{}

// Success implements the notifier interface.
func (Discard) Success(string) {}

// Error implements the notifier interface.
func (Discard) Error(string) {}

func colorEnabled(writer io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
