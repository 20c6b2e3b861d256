package tasklist

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	internalstrings "github.com/amonks/lists/internal/strings"
)

// List names a list and its display title.
type List struct {
	Name  string `toml:"name"`
	Title string `toml:"title"`
}

// DefaultLists returns the two lists served when nothing is configured.
func DefaultLists() []List {
	return []List{
		{Name: "todo1", Title: "Todo List 1"},
		{Name: "todo2", Title: "Todo List 2"},
	}
}

// Options configures a Store.
type Options struct {
	// Lists are the addressable lists. Defaults to DefaultLists.
	Lists []List

	// KeepUnreferenced makes Reorder carry active tasks that the new order
	// does not mention, instead of dropping them.
	KeepUnreferenced bool

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Logger receives warnings. Defaults to discarding them.
	Logger *log.Logger
}

// Store reads and mutates lists through a Backend.
//
// Every operation loads the list from the backend; nothing is cached between
// calls.
type Store struct {
	backend          Backend
	lists            []List
	keepUnreferenced bool
	now              func() time.Time
	logger           *log.Logger
}

// New creates a store over backend.
func New(backend Backend, opts Options) *Store {
	lists := opts.Lists
	if len(lists) == 0 {
		lists = DefaultLists()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{
		backend:          backend,
		lists:            append([]List(nil), lists...),
		keepUnreferenced: opts.KeepUnreferenced,
		now:              now,
		logger:           logger,
	}
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Lists returns the configured lists in order.
func (s *Store) Lists() []List {
	return append([]List(nil), s.lists...)
}

// Lookup returns the list with the given name.
func (s *Store) Lookup(name string) (List, error) {
	for _, list := range s.lists {
		if list.Name == name {
			return list, nil
		}
	}
	return List{}, fmt.Errorf("%w: %q", ErrUnknownList, name)
}

func (s *Store) timestamp() string {
	return s.now().Format(TimestampLayout)
}

// Load returns the raw lines of a list. A list with no file has no lines.
func (s *Store) Load(ctx context.Context, list string) ([]string, error) {
	if _, err := s.Lookup(list); err != nil {
		return nil, err
	}
	lines, err := s.backend.Lines(ctx, list)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", list, err)
	}
	return lines, nil
}

// LoadParsed splits a list into active and completed tasks, in file order.
// Lines without exactly three fields, or with an unknown status, are skipped
// but still occupy an index.
func (s *Store) LoadParsed(ctx context.Context, list string) (active, completed []Task, err error) {
	lines, err := s.Load(ctx, list)
	if err != nil {
		return nil, nil, err
	}
	active, completed = partition(lines)
	return active, completed, nil
}

func partition(lines []string) (active, completed []Task) {
	active = []Task{}
	completed = []Task{}
	for index, line := range lines {
		task, ok := ParseLine(line)
		if !ok || !task.Status.IsValid() {
			continue
		}
		task.Index = index
		if task.IsCompleted() {
			completed = append(completed, task)
		} else {
			active = append(active, task)
		}
	}
	return active, completed
}

// Append adds an active task stamped with the current time. Line breaks in
// text become spaces and the ends are trimmed. The list is not read, so the returned
// task's Index is -1.
func (s *Store) Append(ctx context.Context, list, text string) (Task, error) {
	if _, err := s.Lookup(list); err != nil {
		return Task{}, err
	}
	text = internalstrings.SingleLine(text)
	if text == "" {
		return Task{}, ErrEmptyText
	}
	if strings.Contains(text, FieldSeparator) {
		return Task{}, ErrInvalidText
	}

	unlock, err := s.backend.Lock(ctx, list)
	if err != nil {
		return Task{}, err
	}
	defer unlock()

	task := Task{Index: -1, Status: StatusActive, Timestamp: s.timestamp(), Text: text}
	if err := s.backend.Append(ctx, list, FormatLine(task.Status, task.Timestamp, task.Text)); err != nil {
		return Task{}, fmt.Errorf("append to %s: %w", list, err)
	}
	return task, nil
}

// DeleteAt removes the line at index. It reports whether a line was removed;
// an out-of-range index is not an error.
func (s *Store) DeleteAt(ctx context.Context, list string, index int) (bool, error) {
	changed := false
	err := s.update(ctx, list, func(lines []string) ([]string, bool) {
		if index < 0 || index >= len(lines) {
			return lines, false
		}
		changed = true
		return append(lines[:index:index], lines[index+1:]...), true
	})
	return changed, err
}

// CompleteAt marks the active task at index completed and stamps it with the
// current time. It reports whether the line changed; out-of-range indices,
// completed tasks, and malformed lines are left alone.
func (s *Store) CompleteAt(ctx context.Context, list string, index int) (bool, error) {
	changed := false
	err := s.update(ctx, list, func(lines []string) ([]string, bool) {
		if index < 0 || index >= len(lines) {
			return lines, false
		}
		task, ok := ParseLine(lines[index])
		if !ok || !task.Status.IsValid() || task.IsCompleted() {
			return lines, false
		}
		lines[index] = FormatLine(StatusCompleted, s.timestamp(), task.Text)
		changed = true
		return lines, true
	})
	return changed, err
}

// ReorderResult describes the outcome of Reorder.
type ReorderResult struct {
	// Active is the number of active lines written.
	Active int

	// Dropped counts active lines that the new order did not reference and
	// that were therefore removed from the list.
	Dropped int

	// Skipped holds entries that were not integers or were out of range.
	Skipped []string
}

// Reorder rewrites a list as the active lines selected by newOrder followed
// by every completed line in its original order.
//
// Each entry of newOrder is a position among the active lines only. Entries
// that are not integers or are out of range are skipped. Active lines that no
// entry selects are dropped unless the store keeps unreferenced lines. Lines
// whose status is neither active nor completed are dropped.
func (s *Store) Reorder(ctx context.Context, list string, newOrder []string) (ReorderResult, error) {
	var result ReorderResult
	err := s.update(ctx, list, func(lines []string) ([]string, bool) {
		var activeLines, completedLines []string
		for _, line := range lines {
			switch lineStatus(line) {
			case StatusActive:
				activeLines = append(activeLines, line)
			case StatusCompleted:
				completedLines = append(completedLines, line)
			}
		}

		referenced := make([]bool, len(activeLines))
		rearranged := make([]string, 0, len(activeLines))
		for _, entry := range newOrder {
			i, err := strconv.Atoi(strings.TrimSpace(entry))
			if err != nil || i < 0 || i >= len(activeLines) {
				result.Skipped = append(result.Skipped, entry)
				continue
			}
			referenced[i] = true
			rearranged = append(rearranged, activeLines[i])
		}

		for i, line := range activeLines {
			if referenced[i] {
				continue
			}
			if s.keepUnreferenced {
				rearranged = append(rearranged, line)
				continue
			}
			result.Dropped++
		}

		result.Active = len(rearranged)
		return append(rearranged, completedLines...), true
	})
	if err != nil {
		return ReorderResult{}, err
	}
	if result.Dropped > 0 {
		s.logger.Printf("reorder %s dropped %d active task(s) missing from the submitted order", list, result.Dropped)
	}
	return result, nil
}

// update runs a read-modify-write cycle under the backend's list lock. fn
// returns the new lines and whether they should be written.
func (s *Store) update(ctx context.Context, list string, fn func(lines []string) ([]string, bool)) error {
	if _, err := s.Lookup(list); err != nil {
		return err
	}

	unlock, err := s.backend.Lock(ctx, list)
	if err != nil {
		return err
	}
	defer unlock()

	lines, err := s.backend.Lines(ctx, list)
	if err != nil {
		return fmt.Errorf("load %s: %w", list, err)
	}
	updated, write := fn(lines)
	if !write {
		return nil
	}
	if err := s.backend.Rewrite(ctx, list, updated); err != nil {
		return fmt.Errorf("rewrite %s: %w", list, err)
	}
	return nil
}
