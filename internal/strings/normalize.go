package strings

import (
	"strings"
)

// SingleLine replaces each line break with a space and trims the ends.
// Spacing inside the line is kept as is.
func SingleLine(value string) string {
	value = NormalizeNewlines(value)
	return strings.TrimSpace(strings.ReplaceAll(value, "\n", " "))
}

// IsBlank reports whether value is empty or only whitespace.
func IsBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// NormalizeNewlines replaces CRLF and CR with LF.
func NormalizeNewlines(value string) string {
	if value == "" {
		return value
	}
	value = strings.ReplaceAll(value, "\r\n", "\n")
	return strings.ReplaceAll(value, "\r", "\n")
}

// TrimTrailingNewlines removes trailing CR/LF characters.
func TrimTrailingNewlines(value string) string {
	return strings.TrimRight(value, "\r\n")
}
