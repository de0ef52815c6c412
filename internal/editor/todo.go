package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/amonks/daybook/internal/env"
	"github.com/amonks/daybook/todo"
)

// DateLayout is the date format used in the front matter.
const DateLayout = "2006-01-02"

// TodoData represents the data used to render the TOML template.
type TodoData struct {
	// IsUpdate is true when editing an existing todo.
	IsUpdate bool
	// ID is the todo ID (only for updates).
	ID string
	// Title is the todo title.
	Title string
	// Date is the due date, formatted with DateLayout.
	Date string
	// Time is the free-form time of day.
	Time string
	// SubTodos are sub-todo titles (only for creates).
	SubTodos []string
	// Description is the todo description.
	Description string
}

// DefaultCreateData returns TodoData for a new todo due on date.
func DefaultCreateData(date time.Time) TodoData {
	return TodoData{Date: date.Format(DateLayout)}
}

// DataFromTodo creates TodoData from an existing todo for editing.
func DataFromTodo(t *todo.Todo) TodoData {
	return TodoData{
		IsUpdate:    true,
		ID:          t.ID,
		Title:       t.Title,
		Date:        t.EffectiveDate().Format(DateLayout),
		Time:        t.DueTime,
		Description: t.Description,
	}
}

var todoTemplate = template.Must(template.New("todo").Parse(`{{- if .IsUpdate }}# todo {{ .ID }}
{{ end -}}
title = {{ printf "%q" .Title }}
date = {{ printf "%q" .Date }} # YYYY-MM-DD
time = {{ printf "%q" .Time }} # optional, e.g. "09:30"
{{- if not .IsUpdate }}
subtodos = [{{ range $i, $s := .SubTodos }}{{ if $i }}, {{ end }}{{ printf "%q" $s }}{{ end }}]
{{- end }}
---
{{ .Description }}
`))

// RenderTodoTOML renders the todo data as a TOML string for editing.
func RenderTodoTOML(data TodoData) (string, error) {
	var buf bytes.Buffer
	if err := todoTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedTodo represents the parsed result from the TOML editor output.
type ParsedTodo struct {
	Title       string   `toml:"title"`
	Date        string   `toml:"date"`
	Time        string   `toml:"time"`
	SubTodos    []string `toml:"subtodos"`
	Description string

	due time.Time
}

// ParseTodoTOML parses the TOML content from the editor.
func ParseTodoTOML(content string) (*ParsedTodo, error) {
	frontmatter, body := splitFrontmatter(content)

	var parsed ParsedTodo
	if _, err := toml.Decode(frontmatter, &parsed); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	parsed.Title = strings.TrimSpace(parsed.Title)
	parsed.Time = strings.TrimSpace(parsed.Time)
	parsed.Description = strings.TrimSpace(body)

	if err := todo.ValidateTitle(parsed.Title); err != nil {
		return nil, err
	}
	if strings.TrimSpace(parsed.Date) == "" {
		return nil, todo.ErrMissingDueDate
	}
	due, err := env.ParseInstant(parsed.Date)
	if err != nil {
		return nil, fmt.Errorf("parse date: %w", err)
	}
	parsed.due = due

	subs := parsed.SubTodos[:0]
	for _, title := range parsed.SubTodos {
		if title = strings.TrimSpace(title); title != "" {
			subs = append(subs, title)
		}
	}
	parsed.SubTodos = subs

	return &parsed, nil
}

func splitFrontmatter(content string) (string, string) {
	content = strings.TrimLeft(content, "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	separatorIndex := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			separatorIndex = i
			break
		}
	}
	if separatorIndex == -1 {
		return content, ""
	}

	frontmatter := strings.Join(lines[:separatorIndex], "\n")
	body := strings.Join(lines[separatorIndex+1:], "\n")
	return frontmatter, body
}

// EditTodo opens the editor for a todo and returns the parsed result.
// For create: pass nil for existing and the default due date.
// For update: pass the existing todo.
func EditTodo(existing *todo.Todo, date time.Time) (*ParsedTodo, error) {
	data := DefaultCreateData(date)
	if existing != nil {
		data = DataFromTodo(existing)
	}
	return EditTodoWithData(data)
}

// EditTodoWithData opens the editor with pre-populated data and returns the parsed result.
func EditTodoWithData(data TodoData) (*ParsedTodo, error) {
	content, err := RenderTodoTOML(data)
	if err != nil {
		return nil, err
	}

	tmpfile, err := os.CreateTemp("", "daybook-todo-*.md")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}

	return ParseTodoTOML(string(edited))
}

// Draft converts a ParsedTodo to a todo.Draft.
func (p *ParsedTodo) Draft() todo.Draft {
	return todo.Draft{
		Title:       p.Title,
		Description: p.Description,
		DueDate:     p.due,
		DueTime:     p.Time,
		SubTodos:    p.SubTodos,
	}
}

// Patches converts a ParsedTodo to the patches that rewrite existing.
// Fields that did not change produce no patch.
func (p *ParsedTodo) Patches(existing *todo.Todo) []todo.TodoPatch {
	var patches []todo.TodoPatch
	if p.Title != existing.Title {
		patches = append(patches, todo.SetTitle{Title: p.Title})
	}
	if p.Description != existing.Description {
		patches = append(patches, todo.SetDescription{Description: p.Description})
	}
	if existing.DueDate == nil || !p.due.Equal(*existing.DueDate) {
		patches = append(patches, todo.SetDueDate{Date: p.due})
	}
	if p.Time != existing.DueTime {
		patches = append(patches, todo.SetDueTime{Time: p.Time})
	}
	return patches
}
