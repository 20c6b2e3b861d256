package tasklist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestFileBackend_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "tasks")

	backend, err := NewFileBackend(dir, FileOptions{})
	if err != nil {
		t.Fatalf("create backend: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat dir: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected %s to be a directory", dir)
	}
	if backend.Path("todo1") != filepath.Join(dir, "todo1.txt") {
		t.Fatalf("unexpected path %s", backend.Path("todo1"))
	}
}

func TestFileBackend_RequiresDirectory(t *testing.T) {
	if _, err := NewFileBackend("  ", FileOptions{}); err == nil {
		t.Fatal("expected error for blank directory")
	}
}

func TestFileBackend_FileFormat(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir(), FileOptions{})
	if err != nil {
		t.Fatalf("create backend: %v", err)
	}
	ctx := context.Background()

	if err := backend.Append(ctx, "todo1", "active|2024-05-01 09:00:00|a"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := backend.Append(ctx, "todo1", "active|2024-05-01 09:01:00|b"); err != nil {
		t.Fatalf("append: %v", err)
	}

	data, err := os.ReadFile(backend.Path("todo1"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "active|2024-05-01 09:00:00|a\nactive|2024-05-01 09:01:00|b\n"
	if string(data) != want {
		t.Fatalf("expected %q, got %q", want, data)
	}

	if err := backend.Rewrite(ctx, "todo1", []string{"completed|2024-05-01 09:02:00|b"}); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	data, err = os.ReadFile(backend.Path("todo1"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "completed|2024-05-01 09:02:00|b\n" {
		t.Fatalf("unexpected rewrite output %q", data)
	}

	entries, err := os.ReadDir(filepath.Dir(backend.Path("todo1")))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the list file to remain, got %d entries", len(entries))
	}
}

func TestFileBackend_ReadsCRLFAndMissingTrailingNewline(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir(), FileOptions{})
	if err != nil {
		t.Fatalf("create backend: %v", err)
	}
	content := "active|2024-05-01 09:00:00|a\r\ncompleted|2024-05-01 09:01:00|b"
	if err := os.WriteFile(backend.Path("todo2"), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	lines, err := backend.Lines(context.Background(), "todo2")
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	if len(lines) != 2 || lines[0] != "active|2024-05-01 09:00:00|a" || lines[1] != "completed|2024-05-01 09:01:00|b" {
		t.Fatalf("unexpected lines %q", lines)
	}
}

func TestFileBackend_LockDisabledIsNoop(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir(), FileOptions{})
	if err != nil {
		t.Fatalf("create backend: %v", err)
	}
	unlock, err := backend.Lock(context.Background(), "todo1")
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	if err := unlock(); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if _, err := os.Stat(backend.Path("todo1") + ".lock"); !os.IsNotExist(err) {
		t.Fatalf("expected no lock file, got %v", err)
	}
}

func TestFileBackend_LockHonorsContext(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir(), FileOptions{Lock: true})
	if err != nil {
		t.Fatalf("create backend: %v", err)
	}
	unlock, err := backend.Lock(context.Background(), "todo1")
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	defer unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := backend.Lock(ctx, "todo1"); err == nil {
		t.Fatal("expected second lock to fail with a cancelled context")
	}
}

func TestFileBackend_LockSerializesMutations(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir(), FileOptions{Lock: true})
	if err != nil {
		t.Fatalf("create backend: %v", err)
	}
	store := New(backend, Options{})
	ctx := context.Background()

	const tasks = 20
	for i := range tasks {
		if _, err := store.Append(ctx, "todo1", fmt.Sprintf("task %d", i)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	var wg sync.WaitGroup
	errs := make(chan error, tasks*2)
	for i := range tasks {
		wg.Add(2)
		go func(index int) {
			defer wg.Done()
			if _, err := store.CompleteAt(ctx, "todo1", index); err != nil {
				errs <- err
			}
		}(i)
		go func(index int) {
			defer wg.Done()
			if _, err := store.Append(ctx, "todo1", fmt.Sprintf("extra %d", index)); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent mutation: %v", err)
	}

	active, completed, err := store.LoadParsed(ctx, "todo1")
	if err != nil {
		t.Fatalf("load parsed: %v", err)
	}
	if len(completed) != tasks {
		t.Fatalf("expected %d completed tasks, got %d", tasks, len(completed))
	}
	if len(active) != tasks {
		t.Fatalf("expected %d appended tasks to survive, got %d", tasks, len(active))
	}
}
