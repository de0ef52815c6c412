package todo

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/amonks/daybook/calendar"
)

// Create adds a new top-level todo.
func (s *Store) Create(draft Draft) (*Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title := strings.TrimSpace(draft.Title)
	if err := ValidateTitle(title); err != nil {
		return nil, s.reject(err)
	}
	if err := ValidateDueDate(draft.DueDate); err != nil {
		return nil, s.reject(err)
	}

	now := s.now()
	due := draft.DueDate
	if s.policy.RejectExpired && calendar.IsMonthExpired(calendar.PeriodOf(due), now) {
		return nil, s.reject(fmt.Errorf("%w: %s", ErrExpiredPeriod, calendar.PeriodOf(due)))
	}
	if s.policy.RejectDuplicateDay {
		for _, existing := range s.todos {
			if calendar.SameDay(due, existing.EffectiveDate()) {
				return nil, s.reject(fmt.Errorf("%w: %s", ErrDuplicateDay, messageDate(due)))
			}
		}
	}

	created := Todo{
		ID:          s.newID(title, now),
		Title:       title,
		Description: draft.Description,
		CreatedAt:   now,
		DueDate:     &due,
		DueTime:     strings.TrimSpace(draft.DueTime),
		SubTodos:    []SubTodo{},
	}
	for _, subTitle := range draft.SubTodos {
		subTitle = strings.TrimSpace(subTitle)
		if subTitle == "" {
			continue
		}
		if err := ValidateTitle(subTitle); err != nil {
			return nil, s.reject(err)
		}
		created.SubTodos = append(created.SubTodos, SubTodo{
			ID:        s.newID(created.ID+"/"+subTitle, now),
			Title:     subTitle,
			CreatedAt: now,
			ParentID:  created.ID,
		})
	}

	next := append(cloneTodos(s.todos), created)
	if err := s.commitTodos(next, "Todo added for "+messageDate(due)); err != nil {
		return nil, err
	}
	out := cloneTodo(created)
	return &out, nil
}

// Update applies patches to a todo. ID and creation time never change.
func (s *Store) Update(id string, patches ...TodoPatch) (*Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.todoIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTodoNotFound, id)
	}
	if len(patches) == 0 {
		out := cloneTodo(s.todos[i])
		return &out, nil
	}

	next := cloneTodos(s.todos)
	target := &next[i]
	now := s.now()
	for _, patch := range patches {
		if err := s.applyTodoPatch(target, patch, now); err != nil {
			return nil, s.reject(err)
		}
	}

	if err := s.commitTodos(next, "Todo updated"); err != nil {
		return nil, err
	}
	out := cloneTodo(*target)
	return &out, nil
}

func (s *Store) applyTodoPatch(t *Todo, patch TodoPatch, now time.Time) error {
	switch p := patch.(type) {
	case SetTitle:
		title := strings.TrimSpace(p.Title)
		if err := ValidateTitle(title); err != nil {
			return err
		}
		t.Title = title
	case SetDescription:
		t.Description = p.Description
	case SetDueDate:
		if err := ValidateDueDate(p.Date); err != nil {
			return err
		}
		due := p.Date
		t.DueDate = &due
	case SetDueTime:
		t.DueTime = strings.TrimSpace(p.Time)
	case ReplaceSubTodos:
		owned := make(map[string]SubTodo, len(t.SubTodos))
		for _, sub := range t.SubTodos {
			owned[sub.ID] = sub
		}
		seen := make(map[string]bool, len(p.SubTodos))
		subs := make([]SubTodo, 0, len(p.SubTodos))
		for _, sub := range p.SubTodos {
			sub = cloneSubTodo(sub)
			sub.Title = strings.TrimSpace(sub.Title)
			if err := ValidateTitle(sub.Title); err != nil {
				return err
			}
			if sub.ID != "" {
				existing, ok := owned[sub.ID]
				if !ok {
					return fmt.Errorf("%w: %s", ErrSubTodoNotFound, sub.ID)
				}
				if seen[sub.ID] {
					return fmt.Errorf("%w: %s", ErrDuplicateSubTodoID, sub.ID)
				}
				sub.CreatedAt = existing.CreatedAt
			}
			if sub.ID == "" {
				sub.ID = s.newID(t.ID+"/"+sub.Title, now)
				sub.CreatedAt = now
			}
			seen[sub.ID] = true
			s.issued[sub.ID] = true
			if sub.Completed && sub.CompletedAt == nil {
				completedAt := now
				sub.CompletedAt = &completedAt
			}
			if !sub.Completed {
				sub.CompletedAt = nil
			}
			sub.ParentID = t.ID
			subs = append(subs, sub)
		}
		t.SubTodos = subs
		cascadeFromSubTodos(t, now)
	default:
		return fmt.Errorf("unsupported todo patch %T", patch)
	}
	return nil
}

// Delete removes a todo together with its sub-todos.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.todoIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTodoNotFound, id)
	}

	next := cloneTodos(s.todos)
	next = append(next[:i], next[i+1:]...)
	return s.commitTodos(next, "Todo deleted")
}

// ClearTodos removes every todo. Notes are kept.
func (s *Store) ClearTodos() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commitTodos([]Todo{}, "All todos cleared")
}

// Toggle flips a todo between pending and completed. When completing,
// workHours, if given, is logged with the completion. Returning to
// pending clears the completion time and any logged hours.
func (s *Store) Toggle(id string, workHours *float64) (*Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.todoIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTodoNotFound, id)
	}

	next := cloneTodos(s.todos)
	target := &next[i]
	var message string
	if target.Completed {
		uncomplete(target)
		message = "Todo marked as pending"
	} else {
		if workHours != nil {
			if err := ValidateWorkHours(*workHours); err != nil {
				return nil, s.reject(err)
			}
		}
		complete(target, s.now(), workHours)
		message = "Todo completed"
		if workHours != nil {
			message += " (" + formatHours(*workHours) + " hours)"
		}
	}

	if err := s.commitTodos(next, message); err != nil {
		return nil, err
	}
	out := cloneTodo(*target)
	return &out, nil
}

// LogWorkHours replaces the hours logged on a completed todo.
func (s *Store) LogWorkHours(id string, hours float64) (*Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.todoIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTodoNotFound, id)
	}
	if err := ValidateWorkHours(hours); err != nil {
		return nil, s.reject(err)
	}
	if !s.todos[i].Completed {
		return nil, s.reject(fmt.Errorf("%w: %s", ErrNotCompleted, id))
	}

	next := cloneTodos(s.todos)
	target := &next[i]
	setWorkHours(target, &hours)

	if err := s.commitTodos(next, "Work hours updated ("+formatHours(hours)+" hours)"); err != nil {
		return nil, err
	}
	out := cloneTodo(*target)
	return &out, nil
}

func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}
