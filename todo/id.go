package todo

import (
	"fmt"

	"github.com/amonks/daybook/internal/ids"
)

// Resolve returns the todo whose ID starts with prefix.
func (s *Store) Resolve(prefix string) (*Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]string, len(s.todos))
	for i, t := range s.todos {
		all[i] = t.ID
	}
	id, err := matchID(all, prefix, ErrTodoNotFound)
	if err != nil {
		return nil, err
	}
	t := cloneTodo(s.todos[s.todoIndex(id)])
	return &t, nil
}

// ResolveNote returns the note whose ID starts with prefix.
func (s *Store) ResolveNote(prefix string) (*Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]string, len(s.notes))
	for i, n := range s.notes {
		all[i] = n.ID
	}
	id, err := matchID(all, prefix, ErrNoteNotFound)
	if err != nil {
		return nil, err
	}
	note := s.notes[s.noteIndex(id)]
	return &note, nil
}

// ResolveSubTodo returns the sub-todo of parent whose ID starts with prefix.
func ResolveSubTodo(parent *Todo, prefix string) (*SubTodo, error) {
	all := make([]string, len(parent.SubTodos))
	for i, sub := range parent.SubTodos {
		all[i] = sub.ID
	}
	id, err := matchID(all, prefix, ErrSubTodoNotFound)
	if err != nil {
		return nil, err
	}
	for i := range parent.SubTodos {
		if parent.SubTodos[i].ID == id {
			sub := cloneSubTodo(parent.SubTodos[i])
			return &sub, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSubTodoNotFound, prefix)
}

func matchID(all []string, prefix string, notFound error) (string, error) {
	id, found, ambiguous := ids.MatchPrefix(all, prefix)
	if ambiguous {
		return "", fmt.Errorf("%w: %s", ErrAmbiguousIDPrefix, prefix)
	}
	if !found {
		return "", fmt.Errorf("%w: %s", notFound, prefix)
	}
	return id, nil
}

// PrefixLengths returns the shortest unique prefix of every todo and
// sub-todo ID, for highlighting in listings.
func PrefixLengths(todos []Todo) map[string]int {
	var all []string
	for _, t := range todos {
		all = append(all, t.ID)
	}
	lengths := ids.UniquePrefixLengths(all)
	for _, t := range todos {
		var subIDs []string
		for _, sub := range t.SubTodos {
			subIDs = append(subIDs, sub.ID)
		}
		for id, n := range ids.UniquePrefixLengths(subIDs) {
			lengths[id] = n
		}
	}
	return lengths
}
