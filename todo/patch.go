package todo

import "time"

// TodoPatch is one field change applied by Store.Update.
// The implementations below are the complete set.
type TodoPatch interface {
	todoPatch()
}

// SetTitle replaces the title.
type SetTitle struct{ Title string }

// SetDescription replaces the description. An empty string clears it.
type SetDescription struct{ Description string }

// SetDueDate moves the todo to another date.
type SetDueDate struct{ Date time.Time }

// SetDueTime replaces the display time. An empty string clears it.
type SetDueTime struct{ Time string }

// ReplaceSubTodos swaps the sub-todo list. Entries without an ID are new
// and get one assigned; entries with an ID keep it.
type ReplaceSubTodos struct{ SubTodos []SubTodo }

func (SetTitle) todoPatch()        {}
func (SetDescription) todoPatch()  {}
func (SetDueDate) todoPatch()      {}
func (SetDueTime) todoPatch()      {}
func (ReplaceSubTodos) todoPatch() {}

// NotePatch is one field change applied by Store.UpdateNote.
type NotePatch interface {
	notePatch()
}

// SetNoteText replaces the note text.
type SetNoteText struct{ Text string }

// SetNoteDate moves the note to another date.
type SetNoteDate struct{ Date time.Time }

func (SetNoteText) notePatch() {}
func (SetNoteDate) notePatch() {}
