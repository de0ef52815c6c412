// Package todo holds daybook's dated todos, their sub-todos and notes.
//
// A Store is the only writer of the collections. It validates every
// mutation, keeps completion consistent between a todo and its sub-todos,
// persists the full collection after each change and reports the outcome
// to a Notifier.
package todo

import "time"

const (
	// BaselineHours is the working day that logged hours are measured against.
	BaselineHours = 12

	// MaxTitleLength is the longest accepted title, in bytes.
	MaxTitleLength = 500

	// TodoStorageKey is the storage key of the todo collection.
	TodoStorageKey = "todo-storage"

	// NoteStorageKey is the storage key of the note collection.
	NoteStorageKey = "note-storage"
)

// Todo is a dated task, optionally split into sub-todos.
type Todo struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Completed   bool   `json:"completed" yaml:"completed"`

	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`

	// DueDate is required for new todos but may be missing on old data.
	DueDate *time.Time `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	// DueTime is a free-form time of day shown next to the date.
	DueTime string `json:"dueTime,omitempty" yaml:"dueTime,omitempty"`

	WorkHours                *float64 `json:"workHours,omitempty" yaml:"workHours,omitempty"`
	WorkCompletionPercentage *float64 `json:"workCompletionPercentage,omitempty" yaml:"workCompletionPercentage,omitempty"`

	SubTodos []SubTodo `json:"subTodos" yaml:"subTodos"`
	ParentID string    `json:"parentId,omitempty" yaml:"parentId,omitempty"`
}

// EffectiveDate is the date a todo is scheduled on: its due date when set,
// otherwise its creation time.
func (t Todo) EffectiveDate() time.Time {
	if t.DueDate != nil {
		return *t.DueDate
	}
	return t.CreatedAt
}

// AllSubTodosCompleted reports whether the todo has sub-todos and all are done.
func (t Todo) AllSubTodosCompleted() bool {
	if len(t.SubTodos) == 0 {
		return false
	}
	for _, sub := range t.SubTodos {
		if !sub.Completed {
			return false
		}
	}
	return true
}

// CompletedHours returns the logged hours of a completed todo, or 0.
func (t Todo) CompletedHours() float64 {
	if !t.Completed || t.WorkHours == nil {
		return 0
	}
	return *t.WorkHours
}

// SubTodo is a step of a todo. It is owned by exactly one parent.
type SubTodo struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Completed   bool       `json:"completed" yaml:"completed"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
	ParentID    string     `json:"parentId,omitempty" yaml:"parentId,omitempty"`
}

// Note is free text about a date. CreatedAt is the date the note is about.
type Note struct {
	ID        string    `json:"id" yaml:"id"`
	Text      string    `json:"text" yaml:"text"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// Draft describes a todo to create.
type Draft struct {
	Title       string
	Description string
	DueDate     time.Time
	DueTime     string
	// SubTodos are titles of sub-todos to create with the todo.
	SubTodos []string
}

// Snapshot is a point-in-time copy of both collections.
type Snapshot struct {
	Todos []Todo `json:"todos" yaml:"todos"`
	Notes []Note `json:"notes" yaml:"notes"`
}

// WorkCompletionPercentage converts logged hours into a share of the
// baseline day, capped at 100.
func WorkCompletionPercentage(hours float64) float64 {
	if hours <= 0 {
		return 0
	}
	return min(100, hours/BaselineHours*100)
}

func cloneTodo(t Todo) Todo {
	out := t
	out.CompletedAt = cloneTime(t.CompletedAt)
	out.DueDate = cloneTime(t.DueDate)
	out.WorkHours = cloneFloat(t.WorkHours)
	out.WorkCompletionPercentage = cloneFloat(t.WorkCompletionPercentage)
	if t.SubTodos != nil {
		out.SubTodos = make([]SubTodo, len(t.SubTodos))
		for i, sub := range t.SubTodos {
			out.SubTodos[i] = cloneSubTodo(sub)
		}
	}
	return out
}

func cloneSubTodo(s SubTodo) SubTodo {
	out := s
	out.CompletedAt = cloneTime(s.CompletedAt)
	return out
}

func cloneTodos(todos []Todo) []Todo {
	out := make([]Todo, len(todos))
	for i, t := range todos {
		out[i] = cloneTodo(t)
	}
	return out
}

func cloneNotes(notes []Note) []Note {
	out := make([]Note, len(notes))
	copy(out, notes)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
