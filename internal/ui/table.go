package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const tableCellMaxWidth = 50
const tableCellEllipsis = "..."

// Row styles used when a table is rendered with styles enabled.
var (
	HeaderStyle    = lipgloss.NewStyle().Bold(true)
	CompletedStyle = lipgloss.NewStyle().Faint(true).Strikethrough(true)
)

type tableRow struct {
	cells []string
	style *lipgloss.Style
}

// TableBuilder collects rows and renders a formatted table.
type TableBuilder struct {
	headers []string
	rows    []tableRow
	styled  bool
}

// NewTableBuilder returns a builder with preallocated rows.
func NewTableBuilder(headers []string, capacity int) *TableBuilder {
	return &TableBuilder{headers: headers, rows: make([]tableRow, 0, capacity)}
}

// WithStyles enables or disables row styles.
func (builder *TableBuilder) WithStyles(enabled bool) *TableBuilder {
	builder.styled = enabled
	return builder
}

// AddRow appends a row to the table.
func (builder *TableBuilder) AddRow(row []string) {
	builder.rows = append(builder.rows, tableRow{cells: row})
}

// AddStyledRow appends a row rendered with style when styles are enabled.
func (builder *TableBuilder) AddStyledRow(style lipgloss.Style, row []string) {
	builder.rows = append(builder.rows, tableRow{cells: row, style: &style})
}

// String renders the table output.
func (builder *TableBuilder) String() string {
	widths := columnWidths(builder.headers, builder.rows)

	var out strings.Builder
	header := formatRow(builder.headers, widths)
	if builder.styled {
		header = HeaderStyle.Render(header)
	}
	out.WriteString(header + "\n")
	for _, row := range builder.rows {
		line := formatRow(row.cells, widths)
		if builder.styled && row.style != nil {
			line = row.style.Render(line)
		}
		out.WriteString(line + "\n")
	}
	return out.String()
}

// FormatTable renders headers and rows as an aligned, unstyled table.
func FormatTable(headers []string, rows [][]string) string {
	builder := NewTableBuilder(headers, len(rows))
	for _, row := range rows {
		builder.AddRow(row)
	}
	return builder.String()
}

func columnWidths(headers []string, rows []tableRow) []int {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = displayWidth(normalizeTableCell(header))
	}
	for _, row := range rows {
		for i, cell := range row.cells {
			if i >= len(widths) {
				break
			}
			if w := displayWidth(normalizeTableCell(cell)); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// formatRow pads every cell but the last to its column width.
func formatRow(cells []string, widths []int) string {
	var builder strings.Builder
	for i, cell := range cells {
		cell = normalizeTableCell(cell)
		builder.WriteString(cell)
		if i == len(cells)-1 {
			break
		}
		padding := 0
		if i < len(widths) {
			padding = widths[i] - displayWidth(cell)
		}
		builder.WriteString(strings.Repeat(" ", padding+2))
	}
	return builder.String()
}

// TruncateTableCell limits cell width while preserving visible characters.
func TruncateTableCell(value string) string {
	value = normalizeTableCell(value)
	if displayWidth(value) <= tableCellMaxWidth {
		return value
	}
	return truncate.StringWithTail(value, tableCellMaxWidth, tableCellEllipsis)
}

func displayWidth(value string) int {
	return lipgloss.Width(value)
}

func normalizeTableCell(value string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(value)
}
