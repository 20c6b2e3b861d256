package tasklist

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/amonks/lists/internal/validation"
	"github.com/jung-kurt/gofpdf"
	"github.com/muesli/reflow/wordwrap"
)

// Export formats.
const (
	FormatJSON     = "json"
	FormatText     = "txt"
	FormatMarkdown = "md"
	FormatPDF      = "pdf"
)

const exportTextWidth = 72

// ExportFormats returns the supported export formats.
func ExportFormats() []string {
	return []string{FormatJSON, FormatText, FormatMarkdown, FormatPDF}
}

// Export writes a list's tasks to w in the given format.
func Export(w io.Writer, format, title string, active, completed []Task) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		return exportJSON(w, title, active, completed)
	case FormatText:
		return exportText(w, active, completed)
	case FormatMarkdown:
		_, err := io.WriteString(w, MarkdownChecklist(title, active, completed))
		return err
	case FormatPDF:
		return exportPDF(w, title, active, completed)
	default:
		return validation.FormatInvalidValueError(ErrUnknownFormat, format, ExportFormats())
	}
}

type exportDocument struct {
	Title     string `json:"title"`
	Active    []Task `json:"active"`
	Completed []Task `json:"completed"`
}

func exportJSON(w io.Writer, title string, active, completed []Task) error {
	doc := exportDocument{Title: title, Active: nonNil(active), Completed: nonNil(completed)}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

func nonNil(tasks []Task) []Task {
	if tasks == nil {
		return []Task{}
	}
	return tasks
}

func exportText(w io.Writer, active, completed []Task) error {
	var builder strings.Builder
	for _, task := range active {
		builder.WriteString(checkboxLine("[ ]", task))
	}
	for _, task := range completed {
		builder.WriteString(checkboxLine("[x]", task))
	}
	_, err := io.WriteString(w, builder.String())
	return err
}

// checkboxLine wraps long text and indents continuation lines under the text.
func checkboxLine(box string, task Task) string {
	prefix := "- " + box + " "
	body := fmt.Sprintf("%s (%s)", task.Text, task.Timestamp)
	wrapped := wordwrap.String(body, exportTextWidth-len(prefix))
	indent := strings.Repeat(" ", len(prefix))
	return prefix + strings.ReplaceAll(wrapped, "\n", "\n"+indent) + "\n"
}

// MarkdownChecklist renders a list as a markdown task list.
func MarkdownChecklist(title string, active, completed []Task) string {
	var builder strings.Builder
	if title != "" {
		builder.WriteString("# " + title + "\n\n")
	}
	if len(active) == 0 && len(completed) == 0 {
		builder.WriteString("_No tasks._\n")
		return builder.String()
	}
	for _, task := range active {
		fmt.Fprintf(&builder, "- [ ] %s _(added %s)_\n", task.Text, task.Timestamp)
	}
	for _, task := range completed {
		fmt.Fprintf(&builder, "- [x] ~~%s~~ _(completed %s)_\n", task.Text, task.Timestamp)
	}
	return builder.String()
}

func exportPDF(w io.Writer, title string, active, completed []Task) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	// Core fonts are cp1252.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(14)

	section := func(heading, marker string, tasks []Task) {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, fmt.Sprintf("%s (%d)", heading, len(tasks)))
		pdf.Ln(9)
		pdf.SetFont("Arial", "", 10)
		if len(tasks) == 0 {
			pdf.MultiCell(0, 6, "-", "", "L", false)
		}
		for _, task := range tasks {
			line := fmt.Sprintf("%s %s    %s", marker, task.Text, task.Timestamp)
			pdf.MultiCell(0, 6, tr(line), "", "L", false)
		}
		pdf.Ln(4)
	}
	section("Active", "[ ]", active)
	section("Completed", "[x]", completed)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
