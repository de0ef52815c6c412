package todo

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrEmptyTitle is returned when a todo or sub-todo title is blank.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrTitleTooLong is returned when a title exceeds MaxTitleLength.
	ErrTitleTooLong = errors.New("title exceeds maximum length")

	// ErrMissingDueDate is returned when a new todo has no date.
	ErrMissingDueDate = errors.New("todo needs a date")

	// ErrEmptyNoteText is returned when a note has no text.
	ErrEmptyNoteText = errors.New("note text cannot be empty")

	// ErrMissingNoteDate is returned when a note has no date.
	ErrMissingNoteDate = errors.New("note needs a date")

	// ErrNegativeWorkHours is returned for logged hours below zero.
	ErrNegativeWorkHours = errors.New("work hours cannot be negative")

	// ErrDuplicateDay is returned when a top-level todo already exists on the date.
	ErrDuplicateDay = errors.New("date already has a todo; add a sub-todo instead")

	// ErrExpiredPeriod is returned when adding a todo to a month that has passed.
	ErrExpiredPeriod = errors.New("cannot add todos to an expired month")

	// ErrNotCompleted is returned when logging hours on a pending todo.
	ErrNotCompleted = errors.New("todo is not completed")

	// ErrDuplicateSubTodoID is returned when a replacement list names a
	// sub-todo more than once.
	ErrDuplicateSubTodoID = errors.New("sub-todo listed more than once")

	// ErrTodoNotFound is returned when no todo has the given ID.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrSubTodoNotFound is returned when the parent has no sub-todo with the given ID.
	ErrSubTodoNotFound = errors.New("sub-todo not found")

	// ErrNoteNotFound is returned when no note has the given ID.
	ErrNoteNotFound = errors.New("note not found")

	// ErrAmbiguousIDPrefix is returned when an ID prefix matches several entries.
	ErrAmbiguousIDPrefix = errors.New("ambiguous ID prefix")

	// ErrCompletedAtMismatch is returned when completed and completedAt disagree.
	ErrCompletedAtMismatch = errors.New("completed and completedAt disagree")

	// ErrHoursOnPendingTodo is returned when a pending todo carries work hours.
	ErrHoursOnPendingTodo = errors.New("pending todo cannot carry work hours")
)

// ValidateTitle checks a todo or sub-todo title.
func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("%w: %d > %d", ErrTitleTooLong, len(title), MaxTitleLength)
	}
	return nil
}

// ValidateNoteText checks note text.
func ValidateNoteText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyNoteText
	}
	return nil
}

// ValidateWorkHours checks a logged hour amount.
func ValidateWorkHours(hours float64) error {
	if hours < 0 {
		return fmt.Errorf("%w: %g", ErrNegativeWorkHours, hours)
	}
	return nil
}

// ValidateDueDate checks the date of a new todo.
func ValidateDueDate(date time.Time) error {
	if date.IsZero() {
		return ErrMissingDueDate
	}
	return nil
}

// ValidateTodo checks the structural invariants of a stored todo. The
// title length limit applies to new input only, so it is not checked here.
func ValidateTodo(t *Todo) error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if t.Completed != (t.CompletedAt != nil) {
		return ErrCompletedAtMismatch
	}
	if t.WorkHours != nil {
		if !t.Completed {
			return ErrHoursOnPendingTodo
		}
		if err := ValidateWorkHours(*t.WorkHours); err != nil {
			return err
		}
	}
	if (t.WorkHours == nil) != (t.WorkCompletionPercentage == nil) {
		return fmt.Errorf("work completion percentage must accompany work hours")
	}
	for _, sub := range t.SubTodos {
		if strings.TrimSpace(sub.Title) == "" {
			return fmt.Errorf("sub-todo %s: %w", sub.ID, ErrEmptyTitle)
		}
		if sub.Completed != (sub.CompletedAt != nil) {
			return fmt.Errorf("sub-todo %s: %w", sub.ID, ErrCompletedAtMismatch)
		}
	}
	return nil
}
