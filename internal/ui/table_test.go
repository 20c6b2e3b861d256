package ui

import (
	"strings"
	"testing"
)

func TestTruncateTableCellCountsRunes(t *testing.T) {
	value := strings.Repeat("a", tableCellMaxWidth-1) + "é"

	got := TruncateTableCell(value)

	if got != value {
		t.Fatalf("expected value to remain untruncated, got %q", got)
	}
}

func TestTruncateTableCellNormalizesLineBreaks(t *testing.T) {
	value := "Hello\nWorld\r\nAgain\tTab"

	got := TruncateTableCell(value)

	if got != "Hello World Again Tab" {
		t.Fatalf("expected line breaks to normalize, got %q", got)
	}
}

func TestTruncateTableCellIgnoresANSICodes(t *testing.T) {
	value := "\x1b[1m\x1b[36m" + strings.Repeat("a", tableCellMaxWidth) + "\x1b[0m"

	got := TruncateTableCell(value)

	if got != value {
		t.Fatalf("expected value to remain untruncated, got %q", got)
	}
}

func TestTruncateTableCellAddsEllipsis(t *testing.T) {
	value := strings.Repeat("b", tableCellMaxWidth+10)

	got := TruncateTableCell(value)

	if displayWidth(got) != tableCellMaxWidth {
		t.Fatalf("expected width %d, got %d (%q)", tableCellMaxWidth, displayWidth(got), got)
	}
	if !strings.HasSuffix(got, tableCellEllipsis) {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
}

func TestFormatTableNormalizesLineBreaks(t *testing.T) {
	headers := []string{"COL"}
	rows := [][]string{{"Hello\nWorld\r\nAgain\tTab"}}

	got := FormatTable(headers, rows)

	expected := "COL\nHello World Again Tab\n"
	if got != expected {
		t.Fatalf("expected normalized table output, got %q", got)
	}
}

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"INDEX", "STATUS", "TEXT"}
	rows := [][]string{
		{"0", "completed", "buy milk"},
		{"12", "active", "walk dog"},
	}

	got := FormatTable(headers, rows)

	expected := "" +
		"INDEX  STATUS     TEXT\n" +
		"0      completed  buy milk\n" +
		"12     active     walk dog\n"
	if got != expected {
		t.Fatalf("unexpected table:\n%s", got)
	}
}

func TestTableBuilderStylesOnlyWhenEnabled(t *testing.T) {
	build := func(styled bool) string {
		builder := NewTableBuilder([]string{"TEXT"}, 1).WithStyles(styled)
		builder.AddStyledRow(CompletedStyle, []string{"done"})
		return builder.String()
	}

	plain := build(false)
	if plain != "TEXT\ndone\n" {
		t.Fatalf("expected unstyled output, got %q", plain)
	}

	styled := build(true)
	for _, line := range strings.Split(strings.TrimSuffix(styled, "\n"), "\n") {
		if displayWidth(line) != 4 {
			t.Fatalf("styling must not change visible width, got %q", line)
		}
	}
	if !strings.Contains(styled, "done") {
		t.Fatalf("expected row text in styled output, got %q", styled)
	}
}
