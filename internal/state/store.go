// Package state persists daybook collections as JSON documents.
//
// Each collection lives in its own file named after its storage key
// (for example ~/.local/state/daybook/todo-storage.json). Writes are
// serialized through a lock file and land atomically via rename, so a
// crashed write never leaves a truncated document behind.
package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"syscall"
)

// ErrInvalidKey indicates a storage key that cannot be used as a file name.
var ErrInvalidKey = errors.New("invalid storage key")

var keyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Store reads and writes keyed JSON documents in a directory.
type Store struct {
	dir string
}

// NewStore creates a new state store using the given directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) documentPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *Store) lockPath() string {
	return filepath.Join(s.dir, "state.lock")
}

// Load decodes the document stored under key into v.
// It reports false, leaving v untouched, when nothing has been saved yet.
func (s *Store) Load(key string, v any) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	data, err := os.ReadFile(s.documentPath(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}

// Save writes v as the document stored under key.
func (s *Store) Save(key string, v any) error {
	if err := validateKey(key); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	data = append(data, '\n')

	return s.withLock(func() error {
		path := s.documentPath(key)
		if existing, err := os.ReadFile(path); err == nil {
			if bytes.Equal(existing, data) {
				return nil
			}
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("read %s: %w", key, err)
		}

		tmpFile, err := os.CreateTemp(s.dir, filepath.Base(path)+".tmp")
		if err != nil {
			return fmt.Errorf("create temp file: %w", err)
		}
		name := tmpFile.Name()
		_, err = tmpFile.Write(data)
		if err1 := tmpFile.Close(); err1 != nil && err == nil {
			err = err1
		}
		if err != nil {
			os.Remove(name)
			return fmt.Errorf("write temp file: %w", err)
		}

		if err := os.Rename(name, path); err != nil {
			os.Remove(name)
			return fmt.Errorf("rename %s: %w", key, err)
		}
		return nil
	})
}

// withLock runs fn while holding an exclusive lock on the store directory.
func (s *Store) withLock(fn func() error) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	lockFile, err := os.OpenFile(s.lockPath(), os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer lockFile.Close()

	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)

	return fn()
}

func validateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
