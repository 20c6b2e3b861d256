package tasklist

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

// testClock returns a clock that advances one minute per call.
func testClock() func() time.Time {
	current := time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)
	return func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
}

type backendFactory func(t *testing.T) Backend

func newFileTestBackend(t *testing.T) Backend {
	t.Helper()
	backend, err := NewFileBackend(filepath.Join(t.TempDir(), "tasks"), FileOptions{})
	if err != nil {
		t.Fatalf("create file backend: %v", err)
	}
	return backend
}

func newSQLiteTestBackend(t *testing.T) Backend {
	t.Helper()
	backend, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "lists.db"))
	if err != nil {
		t.Fatalf("create sqlite backend: %v", err)
	}
	t.Cleanup(func() { backend.Close() })
	return backend
}

// forEachBackend runs fn once per Backend implementation.
func forEachBackend(t *testing.T, fn func(t *testing.T, newBackend backendFactory)) {
	t.Helper()
	backends := map[string]backendFactory{
		"file":   newFileTestBackend,
		"sqlite": newSQLiteTestBackend,
	}
	for name, factory := range backends {
		t.Run(name, func(t *testing.T) {
			fn(t, factory)
		})
	}
}

func newTestStore(t *testing.T, backend Backend, opts Options) *Store {
	t.Helper()
	if opts.Now == nil {
		opts.Now = testClock()
	}
	return New(backend, opts)
}

func seedLines(t *testing.T, backend Backend, list string, lines ...string) {
	t.Helper()
	if err := backend.Rewrite(context.Background(), list, lines); err != nil {
		t.Fatalf("seed %s: %v", list, err)
	}
}

func mustLines(t *testing.T, store *Store, list string) []string {
	t.Helper()
	lines, err := store.Load(context.Background(), list)
	if err != nil {
		t.Fatalf("load %s: %v", list, err)
	}
	return lines
}
