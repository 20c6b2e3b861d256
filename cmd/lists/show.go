package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/amonks/lists/internal/markdown"
	"github.com/amonks/lists/internal/ui"
	"github.com/amonks/lists/tasklist"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <list>",
	Short: "Show a list's tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var (
	showJSON     bool
	showMarkdown bool
)

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")
	showCmd.Flags().BoolVar(&showMarkdown, "markdown", false, "Render as a markdown checklist")
	showCmd.MarkFlagsMutuallyExclusive("json", "markdown")
}

func runShow(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}
	defer store.Close()

	list, err := store.Lookup(args[0])
	if err != nil {
		return err
	}
	active, completed, err := store.LoadParsed(cmd.Context(), list.Name)
	if err != nil {
		return err
	}

	switch {
	case showJSON:
		return tasklist.Export(os.Stdout, tasklist.FormatJSON, list.Title, active, completed)
	case showMarkdown:
		width := ui.TerminalWidth(os.Stdout, 80)
		rendered := markdown.Render(width, 0, []byte(tasklist.MarkdownChecklist(list.Title, active, completed)))
		_, err := fmt.Fprintln(os.Stdout, string(rendered))
		return err
	default:
		return printTaskTable(os.Stdout, active, completed, ui.ANSIEnabled(os.Stdout), time.Now())
	}
}

func printTaskTable(w io.Writer, active, completed []tasklist.Task, styled bool, now time.Time) error {
	if len(active) == 0 && len(completed) == 0 {
		_, err := fmt.Fprintln(w, "No tasks found.")
		return err
	}
	_, err := io.WriteString(w, formatTaskTable(active, completed, styled, now))
	return err
}

// formatTaskTable lists active tasks first, then completed ones. INDEX is the
// task's line index, which done and delete accept.
func formatTaskTable(active, completed []tasklist.Task, styled bool, now time.Time) string {
	builder := ui.NewTableBuilder([]string{"INDEX", "STATUS", "TIME", "AGE", "TEXT"}, len(active)+len(completed))
	builder.WithStyles(styled)
	for _, task := range active {
		builder.AddRow(taskRow(task, now))
	}
	for _, task := range completed {
		builder.AddStyledRow(ui.CompletedStyle, taskRow(task, now))
	}
	return builder.String()
}

func taskRow(task tasklist.Task, now time.Time) []string {
	return []string{
		strconv.Itoa(task.Index),
		string(task.Status),
		task.Timestamp,
		ui.FormatTimestampAge(task.Timestamp, now),
		ui.TruncateTableCell(task.Text),
	}
}
