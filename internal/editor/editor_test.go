package editor

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		name   string
		visual string
		editor string
		want   []string
	}{
		{name: "fallback", want: []string{"vi"}},
		{name: "editor", editor: "nano", want: []string{"nano"}},
		{name: "visual wins", visual: "code --wait", editor: "nano", want: []string{"code", "--wait"}},
		{name: "blank visual", visual: "  ", editor: "hx", want: []string{"hx"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("VISUAL", tt.visual)
			t.Setenv("EDITOR", tt.editor)
			if got := Command(); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func writeEditorScript(t *testing.T, body string) string {
	t.Helper()
	script := filepath.Join(t.TempDir(), "fake-editor")
	if err := os.WriteFile(script, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write editor script: %v", err)
	}
	return script
}

func TestEditRunsEditorOnFile(t *testing.T) {
	script := writeEditorScript(t, `echo "$1 edited" >> "$2"`)
	t.Setenv("VISUAL", script+" --tag")
	t.Setenv("EDITOR", "")

	path := filepath.Join(t.TempDir(), "daybook-todo-1.md")
	if err := os.WriteFile(path, []byte("title = \"Pay rent\"\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if err := Edit(path); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if !strings.Contains(string(data), "--tag edited") {
		t.Fatalf("expected editor to append to the file, got %q", data)
	}
}

func TestEditReportsFailingEditor(t *testing.T) {
	script := writeEditorScript(t, "exit 3")
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", script)

	err := Edit(filepath.Join(t.TempDir(), "daybook-todo-2.md"))
	if err == nil {
		t.Fatal("expected error from failing editor")
	}
	if !strings.Contains(err.Error(), "status 3") || !strings.Contains(err.Error(), "daybook-todo-2.md") {
		t.Fatalf("unexpected error %q", err)
	}
}
