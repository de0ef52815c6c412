package todo

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AddNote attaches text to a date. Notes are accepted for any month,
// including expired ones.
func (s *Store) AddNote(text string, date time.Time) (*Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text = strings.TrimSpace(text)
	if err := ValidateNoteText(text); err != nil {
		return nil, s.reject(err)
	}
	if date.IsZero() {
		return nil, s.reject(ErrMissingNoteDate)
	}

	note := Note{ID: uuid.NewString(), Text: text, CreatedAt: date}
	next := append(cloneNotes(s.notes), note)
	if err := s.commitNotes(next, "Note added"); err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateNote applies patches to a note.
func (s *Store) UpdateNote(id string, patches ...NotePatch) (*Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.noteIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	if len(patches) == 0 {
		note := s.notes[i]
		return &note, nil
	}

	next := cloneNotes(s.notes)
	target := &next[i]
	for _, patch := range patches {
		switch p := patch.(type) {
		case SetNoteText:
			text := strings.TrimSpace(p.Text)
			if err := ValidateNoteText(text); err != nil {
				return nil, s.reject(err)
			}
			target.Text = text
		case SetNoteDate:
			if p.Date.IsZero() {
				return nil, s.reject(ErrMissingNoteDate)
			}
			target.CreatedAt = p.Date
		default:
			return nil, s.reject(fmt.Errorf("unsupported note patch %T", patch))
		}
	}

	if err := s.commitNotes(next, "Note updated"); err != nil {
		return nil, err
	}
	note := *target
	return &note, nil
}

// DeleteNote removes a note.
func (s *Store) DeleteNote(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.noteIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}

	next := cloneNotes(s.notes)
	next = append(next[:i], next[i+1:]...)
	return s.commitNotes(next, "Note deleted")
}
