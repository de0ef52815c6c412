package todo

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// memoryStorage keeps saved documents as JSON, like the file store does.
type memoryStorage struct {
	docs    map[string][]byte
	saves   int
	failing bool
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{docs: make(map[string][]byte)}
}

func (m *memoryStorage) Load(key string, v any) (bool, error) {
	data, ok := m.docs[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, v)
}

func (m *memoryStorage) Save(key string, v any) error {
	if m.failing {
		return errors.New("disk full")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.docs[key] = data
	m.saves++
	return nil
}

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (r *recordingNotifier) Success(message string) { r.successes = append(r.successes, message) }
func (r *recordingNotifier) Error(message string)   { r.errors = append(r.errors, message) }

// testClock is a settable clock for the store.
type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type testEnv struct {
	store    *Store
	storage  *memoryStorage
	notifier *recordingNotifier
	clock    *testClock
}

var testNow = time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC)

func day(month time.Month, d int) time.Time {
	return time.Date(2026, month, d, 0, 0, 0, 0, time.UTC)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithPolicy(t, nil)
}

func newTestEnvWithPolicy(t *testing.T, policy *Policy) *testEnv {
	t.Helper()

	env := &testEnv{
		storage:  newMemoryStorage(),
		notifier: &recordingNotifier{},
		clock:    &testClock{now: testNow},
	}
	store, err := Open(OpenOptions{
		Storage:  env.storage,
		Notifier: env.notifier,
		Policy:   policy,
		Now:      env.clock.Now,
	})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	env.store = store
	return env
}

func (e *testEnv) create(t *testing.T, title string, due time.Time, subs ...string) *Todo {
	t.Helper()

	created, err := e.store.Create(Draft{Title: title, DueDate: due, SubTodos: subs})
	if err != nil {
		t.Fatalf("failed to create %q: %v", title, err)
	}
	return created
}

func hours(h float64) *float64 { return &h }
