package tasklist

import "errors"

var (
	// ErrUnknownList indicates the list name is not configured.
	ErrUnknownList = errors.New("unknown list")

	// ErrEmptyText indicates a task was added without text.
	ErrEmptyText = errors.New("task text cannot be empty")

	// ErrInvalidText indicates task text contains the field separator.
	ErrInvalidText = errors.New("task text cannot contain '|'")

	// ErrUnknownFormat indicates an unsupported export format.
	ErrUnknownFormat = errors.New("unknown export format")
)
