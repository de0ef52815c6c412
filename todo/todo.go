package todo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/amonks/daybook/internal/env"
)

// timestamp decodes the date encodings found in stored collections:
// RFC 3339 with or without fractional seconds, minute precision local
// times and bare dates. Empty strings decode as the zero time.
type timestamp time.Time

func (ts *timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode timestamp: %w", err)
	}
	if raw == "" {
		*ts = timestamp{}
		return nil
	}
	t, err := env.ParseInstant(raw)
	if err != nil {
		return err
	}
	*ts = timestamp(t)
	return nil
}

func (ts *timestamp) ptr() *time.Time {
	if ts == nil || time.Time(*ts).IsZero() {
		return nil
	}
	t := time.Time(*ts)
	return &t
}

// UnmarshalJSON accepts the loose date formats of older saves.
func (t *Todo) UnmarshalJSON(data []byte) error {
	type alias Todo
	aux := struct {
		*alias
		CreatedAt   timestamp  `json:"createdAt"`
		CompletedAt *timestamp `json:"completedAt"`
		DueDate     *timestamp `json:"dueDate"`
	}{alias: (*alias)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.CreatedAt = time.Time(aux.CreatedAt)
	t.CompletedAt = aux.CompletedAt.ptr()
	t.DueDate = aux.DueDate.ptr()
	return nil
}

// UnmarshalJSON accepts the loose date formats of older saves.
func (s *SubTodo) UnmarshalJSON(data []byte) error {
	type alias SubTodo
	aux := struct {
		*alias
		CreatedAt   timestamp  `json:"createdAt"`
		CompletedAt *timestamp `json:"completedAt"`
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.CreatedAt = time.Time(aux.CreatedAt)
	s.CompletedAt = aux.CompletedAt.ptr()
	return nil
}

// UnmarshalJSON accepts the loose date formats of older saves.
func (n *Note) UnmarshalJSON(data []byte) error {
	type alias Note
	aux := struct {
		*alias
		CreatedAt timestamp `json:"createdAt"`
	}{alias: (*alias)(n)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	n.CreatedAt = time.Time(aux.CreatedAt)
	return nil
}

// todoDocument is the persisted shape of the todo collection.
type todoDocument struct {
	State struct {
		Todos []Todo `json:"todos"`
	} `json:"state"`
	Version int `json:"version"`
}

// noteDocument is the persisted shape of the note collection.
type noteDocument struct {
	State struct {
		Notes []Note `json:"notes"`
	} `json:"state"`
	Version int `json:"version"`
}

func newTodoDocument(todos []Todo) todoDocument {
	var doc todoDocument
	doc.State.Todos = todos
	if doc.State.Todos == nil {
		doc.State.Todos = []Todo{}
	}
	return doc
}

func newNoteDocument(notes []Note) noteDocument {
	var doc noteDocument
	doc.State.Notes = notes
	if doc.State.Notes == nil {
		doc.State.Notes = []Note{}
	}
	return doc
}
