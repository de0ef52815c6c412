package todo

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestOpen_RequiresStorage(t *testing.T) {
	if _, err := Open(OpenOptions{}); err == nil {
		t.Fatal("expected error without storage")
	}
}

func TestOpen_EmptyStorage(t *testing.T) {
	env := newTestEnv(t)

	if len(env.store.Todos()) != 0 || len(env.store.Notes()) != 0 {
		t.Fatal("expected empty collections")
	}
	if env.store.Policy() != DefaultPolicy() {
		t.Fatalf("expected default policy, got %+v", env.store.Policy())
	}
}

func TestStore_PersistsEnvelope(t *testing.T) {
	env := newTestEnv(t)
	created := env.create(t, "Pay rent", day(time.June, 20))
	if _, err := env.store.AddNote("landlord called", day(time.June, 19)); err != nil {
		t.Fatalf("add note failed: %v", err)
	}

	var raw struct {
		State struct {
			Todos []map[string]any `json:"todos"`
		} `json:"state"`
		Version *int `json:"version"`
	}
	if err := json.Unmarshal(env.storage.docs[TodoStorageKey], &raw); err != nil {
		t.Fatalf("decode saved todos: %v", err)
	}
	if raw.Version == nil || *raw.Version != 0 {
		t.Fatal("expected version 0 envelope")
	}
	if len(raw.State.Todos) != 1 {
		t.Fatalf("expected one stored todo, got %d", len(raw.State.Todos))
	}
	stored := raw.State.Todos[0]
	for _, key := range []string{"id", "title", "completed", "createdAt", "dueDate", "subTodos"} {
		if _, ok := stored[key]; !ok {
			t.Errorf("expected key %q in stored todo", key)
		}
	}
	if stored["id"] != created.ID {
		t.Errorf("expected stored id %s, got %v", created.ID, stored["id"])
	}
	if _, ok := env.storage.docs[NoteStorageKey]; !ok {
		t.Fatal("expected notes to be saved under their own key")
	}
}

func TestStore_ReopenRestoresState(t *testing.T) {
	env := newTestEnv(t)
	created := env.create(t, "Pay rent", day(time.June, 20), "transfer")
	if _, err := env.store.Toggle(created.ID, hours(6)); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	note, _ := env.store.AddNote("paid", day(time.June, 20))

	reopened, err := Open(OpenOptions{Storage: env.storage, Now: env.clock.Now})
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}

	got, err := reopened.Get(created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !got.Completed || *got.WorkHours != 6 || *got.WorkCompletionPercentage != 50 {
		t.Fatalf("unexpected reopened todo %+v", got)
	}
	if !got.CompletedAt.Equal(testNow) || !got.DueDate.Equal(day(time.June, 20)) {
		t.Fatalf("expected dates to survive, got %+v", got)
	}
	if len(got.SubTodos) != 1 || got.SubTodos[0].ParentID != created.ID {
		t.Fatalf("unexpected sub-todos %+v", got.SubTodos)
	}
	notes := reopened.Notes()
	if len(notes) != 1 || notes[0].ID != note.ID {
		t.Fatalf("unexpected notes %+v", notes)
	}
}

func TestOpen_RejectsCorruptTodos(t *testing.T) {
	storage := newMemoryStorage()
	storage.docs[TodoStorageKey] = []byte(`{"state":{"todos":[
		{"id": "1718000000000", "title": "Half done", "completed": true, "createdAt": "2026-06-01T08:30:00Z"}
	]},"version":0}`)

	_, err := Open(OpenOptions{Storage: storage, Now: func() time.Time { return testNow }})
	if !errors.Is(err, ErrCompletedAtMismatch) {
		t.Fatalf("expected completedAt mismatch, got %v", err)
	}
}

func TestOpen_AcceptsLongLegacyTitles(t *testing.T) {
	long := strings.Repeat("x", MaxTitleLength+20)
	storage := newMemoryStorage()
	storage.docs[TodoStorageKey] = []byte(`{"state":{"todos":[
		{"id": "1718000000000", "title": "` + long + `", "completed": false, "createdAt": "2026-06-01T08:30:00Z",
		 "subTodos": [{"id": "1718000000001", "title": "` + long + `", "completed": false, "createdAt": "2026-06-01T08:30:00Z"}]}
	]},"version":0}`)

	store, err := Open(OpenOptions{Storage: storage, Now: func() time.Time { return testNow }})
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if got := store.Todos()[0].Title; got != long {
		t.Fatalf("expected long title kept, got %d chars", len(got))
	}

	_, err = store.Update("1718000000000", SetTitle{Title: long})
	if !errors.Is(err, ErrTitleTooLong) {
		t.Fatalf("expected new long titles to be rejected, got %v", err)
	}
}

func TestOpen_HydratesInLocalTime(t *testing.T) {
	saved := time.Local
	time.Local = time.FixedZone("IST", 5*60*60+30*60)
	t.Cleanup(func() { time.Local = saved })

	storage := newMemoryStorage()
	storage.docs[TodoStorageKey] = []byte(`{"state":{"todos":[
		{"id": "1718000000000", "title": "Quarter close", "completed": false,
		 "createdAt": "2026-02-20T09:00:00.000Z", "dueDate": "2026-02-28T18:30:00.000Z"}
	]},"version":0}`)
	storage.docs[NoteStorageKey] = []byte(`{"state":{"notes":[
		{"id": "4b1c", "text": "late night", "createdAt": "2026-02-28T19:00:00.000Z"}
	]},"version":0}`)

	store, err := Open(OpenOptions{Storage: storage, Now: func() time.Time { return testNow }})
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	due := store.Todos()[0].EffectiveDate()
	if due.Location() != time.Local {
		t.Fatalf("expected local location, got %v", due.Location())
	}
	if due.Month() != time.March || due.Day() != 1 {
		t.Fatalf("expected March 1 local, got %v", due)
	}
	if note := store.Notes()[0].CreatedAt; note.Month() != time.March || note.Day() != 1 {
		t.Fatalf("expected note on March 1 local, got %v", note)
	}
}

func TestOpen_HydratesLegacyDates(t *testing.T) {
	storage := newMemoryStorage()
	storage.docs[TodoStorageKey] = []byte(`{
		"state": {"todos": [
			{"id": "1718000000000", "title": "Browser save", "completed": true,
			 "createdAt": "2026-06-01T08:30:00.123Z", "completedAt": "2026-06-01T18:00:00.000Z",
			 "dueDate": "2026-06-01", "dueTime": "08:30", "workHours": 3,
			 "subTodos": [{"id": "1718000000001", "title": "step", "completed": false, "createdAt": "2026-06-01T08:30"}]},
			{"id": "1718000000002", "title": "No due date", "completed": false,
			 "createdAt": "2026-06-02T09:00:00Z", "dueDate": "", "subTodos": null}
		]},
		"version": 0
	}`)
	storage.docs[NoteStorageKey] = []byte(`{"state":{"notes":[{"id":"4b1c","text":"hi","createdAt":"2026-06-03"}]},"version":0}`)

	store, err := Open(OpenOptions{Storage: storage, Now: func() time.Time { return testNow }})
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	todos := store.Todos()
	if len(todos) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(todos))
	}
	first := todos[0]
	if first.DueDate == nil || first.DueDate.Day() != 1 || first.DueDate.Month() != time.June {
		t.Fatalf("unexpected due date %v", first.DueDate)
	}
	if first.CompletedAt == nil || !first.CompletedAt.Equal(time.Date(2026, time.June, 1, 18, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected completedAt %v", first.CompletedAt)
	}
	if first.WorkCompletionPercentage == nil || *first.WorkCompletionPercentage != 25 {
		t.Fatalf("expected percentage derived from hours, got %v", first.WorkCompletionPercentage)
	}
	if first.SubTodos[0].ParentID != first.ID {
		t.Fatalf("expected sub-todo parent to be filled in, got %q", first.SubTodos[0].ParentID)
	}
	if first.SubTodos[0].CreatedAt.IsZero() {
		t.Fatal("expected minute precision timestamp to parse")
	}

	second := todos[1]
	if second.DueDate != nil {
		t.Fatalf("expected empty due date to hydrate as nil, got %v", second.DueDate)
	}
	if !second.EffectiveDate().Equal(second.CreatedAt) {
		t.Fatal("expected effective date to fall back to createdAt")
	}

	notes := store.Notes()
	if len(notes) != 1 || notes[0].CreatedAt.Day() != 3 {
		t.Fatalf("unexpected notes %+v", notes)
	}
}

func TestOpen_InvalidTimestamp(t *testing.T) {
	storage := newMemoryStorage()
	storage.docs[TodoStorageKey] = []byte(`{"state":{"todos":[{"id":"x","title":"bad","createdAt":"yesterday"}]},"version":0}`)

	if _, err := Open(OpenOptions{Storage: storage}); err == nil {
		t.Fatal("expected error for unparseable timestamp")
	}
}

func TestStore_Resolve(t *testing.T) {
	env := newTestEnvWithPolicy(t, &Policy{})
	first := env.create(t, "One", day(time.June, 20))
	env.create(t, "Two", day(time.June, 20))

	got, err := env.store.Resolve(first.ID[:6])
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.ID != first.ID {
		t.Fatalf("expected %s, got %s", first.ID, got.ID)
	}
	if _, err := env.store.Resolve(""); !errors.Is(err, ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound for empty prefix, got %v", err)
	}
}

func TestStore_ResolveAmbiguous(t *testing.T) {
	storage := newMemoryStorage()
	storage.docs[TodoStorageKey] = []byte(`{"state":{"todos":[
		{"id":"abc11111","title":"a","createdAt":"2026-06-01T00:00:00Z"},
		{"id":"abc22222","title":"b","createdAt":"2026-06-02T00:00:00Z"}
	]},"version":0}`)
	store, err := Open(OpenOptions{Storage: storage})
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	if _, err := store.Resolve("abc"); !errors.Is(err, ErrAmbiguousIDPrefix) {
		t.Fatalf("expected ErrAmbiguousIDPrefix, got %v", err)
	}
	if _, err := store.Resolve("ABC1"); err != nil {
		t.Fatalf("expected case-insensitive match, got %v", err)
	}
}

func TestResolveSubTodo(t *testing.T) {
	parent := &Todo{ID: "p", SubTodos: []SubTodo{{ID: "aa11"}, {ID: "ab22"}}}

	sub, err := ResolveSubTodo(parent, "ab")
	if err != nil || sub.ID != "ab22" {
		t.Fatalf("expected ab22, got %v %v", sub, err)
	}
	if _, err := ResolveSubTodo(parent, "a"); !errors.Is(err, ErrAmbiguousIDPrefix) {
		t.Fatalf("expected ambiguity, got %v", err)
	}
	if _, err := ResolveSubTodo(parent, "zz"); !errors.Is(err, ErrSubTodoNotFound) {
		t.Fatalf("expected ErrSubTodoNotFound, got %v", err)
	}
}

func TestPrefixLengths(t *testing.T) {
	todos := []Todo{
		{ID: "abc11111", SubTodos: []SubTodo{{ID: "zz000000"}, {ID: "zy000000"}}},
		{ID: "abd22222"},
	}

	lengths := PrefixLengths(todos)
	if lengths["abc11111"] != 3 || lengths["abd22222"] != 3 {
		t.Fatalf("unexpected todo prefix lengths %v", lengths)
	}
	if lengths["zz000000"] != 2 {
		t.Fatalf("unexpected sub-todo prefix lengths %v", lengths)
	}
}

// End to end: a todo on the 3rd of the month, completed with six hours.
func TestStore_PayRentScenario(t *testing.T) {
	env := newTestEnv(t)
	due := day(time.June, 3)

	created := env.create(t, "Pay rent", due)
	done, err := env.store.Toggle(created.ID, hours(6))
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	if !done.Completed || *done.WorkHours != 6 || *done.WorkCompletionPercentage != 50.0 {
		t.Fatalf("unexpected todo %+v", done)
	}
	if done.EffectiveDate().Month() != testNow.Month() {
		t.Fatal("expected todo in the current month")
	}
}
