package todo

import (
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/amonks/daybook/internal/ids"
)

// Storage persists whole collections under a key.
type Storage interface {
	// Load decodes the value saved under key into v, reporting false
	// when nothing was saved yet.
	Load(key string, v any) (bool, error)
	Save(key string, v any) error
}

// Notifier shows the outcome of a mutation to the user.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Policy switches the optional rules of the store.
type Policy struct {
	// RejectDuplicateDay refuses a second top-level todo on one date.
	RejectDuplicateDay bool
	// RejectExpired refuses new todos dated in a month that has passed.
	RejectExpired bool
	// DeleteParentWithLastSubTodo removes a todo when its last sub-todo is deleted.
	DeleteParentWithLastSubTodo bool
}

// DefaultPolicy enables every rule.
func DefaultPolicy() Policy {
	return Policy{
		RejectDuplicateDay:          true,
		RejectExpired:               true,
		DeleteParentWithLastSubTodo: true,
	}
}

// OpenOptions configures Open.
type OpenOptions struct {
	// Storage is required.
	Storage Storage

	// Notifier receives mutation messages. Nil discards them.
	Notifier Notifier

	// Policy defaults to DefaultPolicy when nil.
	Policy *Policy

	// Now defaults to time.Now.
	Now func() time.Time
}

// Store owns the todo and note collections.
type Store struct {
	mu       sync.Mutex
	storage  Storage
	notifier Notifier
	policy   Policy
	now      func() time.Time

	todos []Todo
	notes []Note

	// issued holds every todo and sub-todo ID seen by this store so a
	// deleted ID is never handed out again.
	issued map[string]bool
}

type discardNotifier struct{}

func (discardNotifier) Success(string) {}
func (discardNotifier) Error(string)   {}

// Open hydrates a store from storage.
func Open(opts OpenOptions) (*Store, error) {
	if opts.Storage == nil {
		return nil, errors.New("todo store requires storage")
	}
	s := &Store{
		storage:  opts.Storage,
		notifier: opts.Notifier,
		policy:   DefaultPolicy(),
		now:      opts.Now,
		issued:   make(map[string]bool),
	}
	if s.notifier == nil {
		s.notifier = discardNotifier{}
	}
	if opts.Policy != nil {
		s.policy = *opts.Policy
	}
	if s.now == nil {
		s.now = time.Now
	}

	var todoDoc todoDocument
	if _, err := s.storage.Load(TodoStorageKey, &todoDoc); err != nil {
		return nil, fmt.Errorf("read todos: %w", err)
	}
	var noteDoc noteDocument
	if _, err := s.storage.Load(NoteStorageKey, &noteDoc); err != nil {
		return nil, fmt.Errorf("read notes: %w", err)
	}

	s.todos = todoDoc.State.Todos
	s.notes = noteDoc.State.Notes
	for i := range s.todos {
		normalizeLoaded(&s.todos[i])
		if err := ValidateTodo(&s.todos[i]); err != nil {
			return nil, fmt.Errorf("read todos: todo %s: %w", s.todos[i].ID, err)
		}
		s.remember(&s.todos[i])
	}
	return s, nil
}

// normalizeLoaded re-derives fields that must follow from others.
func normalizeLoaded(t *Todo) {
	if t.WorkHours != nil {
		pct := WorkCompletionPercentage(*t.WorkHours)
		t.WorkCompletionPercentage = &pct
	} else {
		t.WorkCompletionPercentage = nil
	}
	for i := range t.SubTodos {
		if t.SubTodos[i].ParentID == "" {
			t.SubTodos[i].ParentID = t.ID
		}
	}
}

func (s *Store) remember(t *Todo) {
	s.issued[t.ID] = true
	for _, sub := range t.SubTodos {
		s.issued[sub.ID] = true
	}
}

func (s *Store) taken(id string) bool {
	return s.issued[id]
}

func (s *Store) newID(input string, now time.Time) string {
	id := ids.GenerateUnique(input, now, ids.DefaultLength, s.taken)
	s.issued[id] = true
	return id
}

// Policy returns the rules the store enforces.
func (s *Store) Policy() Policy {
	return s.policy
}

// Now returns the store's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// Todos returns a copy of every todo.
func (s *Store) Todos() []Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTodos(s.todos)
}

// Notes returns a copy of every note.
func (s *Store) Notes() []Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneNotes(s.notes)
}

// Snapshot returns copies of both collections.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Todos: cloneTodos(s.todos), Notes: cloneNotes(s.notes)}
}

// Get returns a copy of the todo with the exact ID.
func (s *Store) Get(id string) (*Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.todoIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTodoNotFound, id)
	}
	t := cloneTodo(s.todos[i])
	return &t, nil
}

func (s *Store) todoIndex(id string) int {
	for i := range s.todos {
		if s.todos[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) noteIndex(id string) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

// reject reports a refused mutation and returns err.
func (s *Store) reject(err error) error {
	s.notifier.Error(errorMessage(err))
	return err
}

// commitTodos persists next and makes it current. On failure the
// in-memory collection is left untouched.
func (s *Store) commitTodos(next []Todo, message string) error {
	if err := s.storage.Save(TodoStorageKey, newTodoDocument(next)); err != nil {
		s.notifier.Error("Could not save todos")
		return fmt.Errorf("write todos: %w", err)
	}
	s.todos = next
	s.notifier.Success(message)
	return nil
}

func (s *Store) commitNotes(next []Note, message string) error {
	if err := s.storage.Save(NoteStorageKey, newNoteDocument(next)); err != nil {
		s.notifier.Error("Could not save notes")
		return fmt.Errorf("write notes: %w", err)
	}
	s.notes = next
	s.notifier.Success(message)
	return nil
}

func errorMessage(err error) string {
	msg := err.Error()
	r, size := utf8.DecodeRuneInString(msg)
	if size == 0 {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}

func messageDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}
