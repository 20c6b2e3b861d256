// Package tasklist stores named to-do lists as line records.
//
// Each list is an ordered sequence of lines of the form
//
//	status|timestamp|text
//
// A task is addressed by its zero-based line index at the time of the
// operation. Indices are recomputed on every read, so any delete or reorder
// invalidates indices handed out earlier.
//
// The public API mirrors the HTTP surface:
//   - Load, LoadParsed for reading
//   - Append, DeleteAt, CompleteAt, Reorder for mutation
//   - Export for rendering a list in another format
package tasklist

import "strings"

// Status represents the state of a task.
type Status string

const (
	// StatusActive indicates the task has not been completed.
	StatusActive Status = "active"

	// StatusCompleted indicates the task has been marked completed.
	StatusCompleted Status = "completed"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusActive, StatusCompleted}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// TimestampLayout is the time format stored in the timestamp field.
const TimestampLayout = "2006-01-02 15:04:05"

// FieldSeparator joins the three fields of a record.
const FieldSeparator = "|"

// Task is a parsed record together with its line index.
type Task struct {
	Index     int    `json:"index"`
	Status    Status `json:"status"`
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
}

// IsCompleted reports whether the task has been completed.
func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// ParseLine splits a raw line into its fields. Surrounding whitespace is
// ignored. ok is false unless the line has exactly three fields.
func ParseLine(line string) (task Task, ok bool) {
	fields := strings.Split(strings.TrimSpace(line), FieldSeparator)
	if len(fields) != 3 {
		return Task{}, false
	}
	return Task{
		Status:    Status(fields[0]),
		Timestamp: fields[1],
		Text:      fields[2],
	}, true
}

// FormatLine renders a record without a line terminator.
func FormatLine(status Status, timestamp, text string) string {
	return string(status) + FieldSeparator + timestamp + FieldSeparator + text
}

// lineStatus returns the status field of a raw line, whether or not the rest
// of the line is well formed.
func lineStatus(line string) Status {
	status, _, _ := strings.Cut(line, FieldSeparator)
	return Status(status)
}
