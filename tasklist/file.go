package tasklist

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	internalstrings "github.com/amonks/lists/internal/strings"
)

const (
	// ListFileExt is appended to a list name to form its file name.
	ListFileExt = ".txt"

	lockRetryDelay = 25 * time.Millisecond
)

// FileBackend stores each list as a text file in a directory.
type FileBackend struct {
	dir  string
	lock bool
}

// FileOptions configures a FileBackend.
type FileOptions struct {
	// Lock takes an exclusive advisory lock on <list>.txt.lock for the
	// duration of each read-modify-write cycle.
	Lock bool
}

// NewFileBackend returns a backend rooted at dir, creating dir if needed.
func NewFileBackend(dir string, opts FileOptions) (*FileBackend, error) {
	if internalstrings.IsBlank(dir) {
		return nil, fmt.Errorf("tasks directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create tasks dir: %w", err)
	}
	return &FileBackend{dir: dir, lock: opts.Lock}, nil
}

// Path returns the file path for a list.
func (b *FileBackend) Path(list string) string {
	return filepath.Join(b.dir, list+ListFileExt)
}

// Lines reads every line of the list file. A missing file has no lines.
func (b *FileBackend) Lines(_ context.Context, list string) ([]string, error) {
	f, err := os.Open(b.Path(list))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open list file: %w", err)
	}
	defer f.Close()

	// Lines have no length limit.
	var lines []string
	reader := bufio.NewReader(f)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			lines = append(lines, strings.TrimRight(line, "\r\n"))
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read list file: %w", err)
		}
	}
}

// Append writes one line at the end of the list file, creating it if needed.
func (b *FileBackend) Append(_ context.Context, list, line string) error {
	f, err := os.OpenFile(b.Path(list), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open list file: %w", err)
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("append line: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close list file: %w", err)
	}
	return nil
}

// Rewrite replaces the list file with lines, each terminated by a newline.
func (b *FileBackend) Rewrite(_ context.Context, list string, lines []string) error {
	path := b.Path(list)

	// Write to temp file first
	tmpFile, err := os.CreateTemp(b.dir, filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	name := tmpFile.Name()

	writer := bufio.NewWriter(tmpFile)
	for _, line := range lines {
		if _, err = writer.WriteString(line + "\n"); err != nil {
			break
		}
	}
	if err == nil {
		err = writer.Flush()
	}
	if err1 := tmpFile.Close(); err1 != nil && err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Chmod(name, 0o644); err != nil {
		os.Remove(name)
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Lock takes the advisory lock for list when locking is enabled.
func (b *FileBackend) Lock(ctx context.Context, list string) (func() error, error) {
	if !b.lock {
		return noopUnlock, nil
	}
	fl := flock.New(b.Path(list) + ".lock")
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("acquire lock: %s is busy", list)
	}
	return fl.Unlock, nil
}

// Close implements Backend.
func (b *FileBackend) Close() error {
	return nil
}
