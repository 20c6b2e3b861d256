package tasklist

import "context"

// Backend persists the raw lines of named lists.
//
// Implementations do no caching: every call goes to storage, so concurrent
// access has whatever semantics the underlying storage call provides.
type Backend interface {
	// Lines returns every line of the list in order, without terminators.
	// A list that was never written has no lines.
	Lines(ctx context.Context, list string) ([]string, error)

	// Append adds one line to the end of the list without rewriting it.
	Append(ctx context.Context, list, line string) error

	// Rewrite replaces the full contents of the list.
	Rewrite(ctx context.Context, list string, lines []string) error

	// Lock blocks until the caller holds the list for a read-modify-write
	// cycle. Backends without locking return a no-op unlock.
	Lock(ctx context.Context, list string) (unlock func() error, err error)

	// Close releases resources held by the backend.
	Close() error
}

func noopUnlock() error { return nil }
