package todo

import "time"

// complete marks t done at now, logging hours when given.
func complete(t *Todo, now time.Time, hours *float64) {
	t.Completed = true
	completedAt := now
	t.CompletedAt = &completedAt
	setWorkHours(t, hours)
}

// uncomplete returns t to pending. Logged hours only exist on completed
// todos, so they go too.
func uncomplete(t *Todo) {
	t.Completed = false
	t.CompletedAt = nil
	setWorkHours(t, nil)
}

// setWorkHours stores hours and the percentage derived from them.
func setWorkHours(t *Todo, hours *float64) {
	if hours == nil {
		t.WorkHours = nil
		t.WorkCompletionPercentage = nil
		return
	}
	h := *hours
	pct := WorkCompletionPercentage(h)
	t.WorkHours = &h
	t.WorkCompletionPercentage = &pct
}

func toggleSubTodo(sub *SubTodo, now time.Time) {
	if sub.Completed {
		sub.Completed = false
		sub.CompletedAt = nil
		return
	}
	sub.Completed = true
	completedAt := now
	sub.CompletedAt = &completedAt
}

// cascadeFromSubTodos brings the parent in line with its sub-todos:
// completed exactly when every sub-todo is. It reports whether the
// parent changed.
func cascadeFromSubTodos(parent *Todo, now time.Time) bool {
	if len(parent.SubTodos) == 0 {
		return false
	}
	all := parent.AllSubTodosCompleted()
	switch {
	case all && !parent.Completed:
		complete(parent, now, nil)
		return true
	case !all && parent.Completed:
		uncomplete(parent)
		return true
	}
	return false
}
