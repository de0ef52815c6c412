package todo

import (
	"fmt"
	"strings"
)

func (s *Store) subTodoIndex(parent *Todo, subID string) int {
	for i := range parent.SubTodos {
		if parent.SubTodos[i].ID == subID {
			return i
		}
	}
	return -1
}

// AddSubTodo appends a sub-todo to a todo. Sub-todos are exempt from the
// one-todo-per-day rule.
func (s *Store) AddSubTodo(parentID, title string) (*SubTodo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.todoIndex(parentID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTodoNotFound, parentID)
	}
	title = strings.TrimSpace(title)
	if err := ValidateTitle(title); err != nil {
		return nil, s.reject(err)
	}

	now := s.now()
	next := cloneTodos(s.todos)
	parent := &next[i]
	sub := SubTodo{
		ID:        s.newID(parent.ID+"/"+title, now),
		Title:     title,
		CreatedAt: now,
		ParentID:  parent.ID,
	}
	parent.SubTodos = append(parent.SubTodos, sub)

	if err := s.commitTodos(next, "Sub-todo added to todo on "+messageDate(parent.EffectiveDate())); err != nil {
		return nil, err
	}
	out := cloneSubTodo(sub)
	return &out, nil
}

// UpdateSubTodo renames a sub-todo.
func (s *Store) UpdateSubTodo(parentID, subID, title string) (*SubTodo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.todoIndex(parentID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTodoNotFound, parentID)
	}
	j := s.subTodoIndex(&s.todos[i], subID)
	if j < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSubTodoNotFound, subID)
	}
	title = strings.TrimSpace(title)
	if err := ValidateTitle(title); err != nil {
		return nil, s.reject(err)
	}

	next := cloneTodos(s.todos)
	parent := &next[i]
	parent.SubTodos[j].Title = title

	if err := s.commitTodos(next, "Sub-todo updated for todo on "+messageDate(parent.EffectiveDate())); err != nil {
		return nil, err
	}
	out := cloneSubTodo(parent.SubTodos[j])
	return &out, nil
}

// DeleteSubTodo removes a sub-todo. When it was the last one and the
// policy asks for it, the parent is deleted as well; the result reports
// whether that happened.
func (s *Store) DeleteSubTodo(parentID, subID string) (parentDeleted bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.todoIndex(parentID)
	if i < 0 {
		return false, fmt.Errorf("%w: %s", ErrTodoNotFound, parentID)
	}
	j := s.subTodoIndex(&s.todos[i], subID)
	if j < 0 {
		return false, fmt.Errorf("%w: %s", ErrSubTodoNotFound, subID)
	}

	next := cloneTodos(s.todos)
	parent := &next[i]
	date := messageDate(parent.EffectiveDate())
	parent.SubTodos = append(parent.SubTodos[:j], parent.SubTodos[j+1:]...)

	message := "Sub-todo deleted from todo on " + date
	if len(parent.SubTodos) == 0 && s.policy.DeleteParentWithLastSubTodo {
		next = append(next[:i], next[i+1:]...)
		parentDeleted = true
		message = "Last sub-todo deleted; removed todo on " + date
	}

	if err := s.commitTodos(next, message); err != nil {
		return false, err
	}
	return parentDeleted, nil
}

// ToggleSubTodo flips a sub-todo, then completes the parent when every
// sub-todo is done or reopens it when one is not.
func (s *Store) ToggleSubTodo(parentID, subID string) (*Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.todoIndex(parentID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTodoNotFound, parentID)
	}
	j := s.subTodoIndex(&s.todos[i], subID)
	if j < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSubTodoNotFound, subID)
	}

	now := s.now()
	next := cloneTodos(s.todos)
	parent := &next[i]
	toggleSubTodo(&parent.SubTodos[j], now)

	message := "Sub-todo updated for todo on " + messageDate(parent.EffectiveDate())
	if cascadeFromSubTodos(parent, now) {
		if parent.Completed {
			message = "All sub-todos done; todo completed"
		} else {
			message = "Sub-todo reopened; todo marked as pending"
		}
	}

	if err := s.commitTodos(next, message); err != nil {
		return nil, err
	}
	out := cloneTodo(*parent)
	return &out, nil
}
