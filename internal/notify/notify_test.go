package notify

import (
	"bytes"
	"testing"
)

func TestConsole_PlainOutputForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf)

	console.Success("Todo created")
	console.Error("Todo title is required")

	want := "✓ Todo created\n✗ Todo title is required\n"
	if got := buf.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestConsole_SkipsBlankMessages(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf)

	console.Success("   ")
	console.Error("")

	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestConsole_NilWriterAndReceiver(t *testing.T) {
	NewConsole(nil).Success("ignored")

	var console *Console
	console.Error("ignored")
}

func TestConsole_NoColorDisablesStyling(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	console := NewConsole(&buf)
	if console.styled {
		t.Fatal("expected styling to be disabled")
	}
}
