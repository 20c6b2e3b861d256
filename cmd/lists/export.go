package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/amonks/lists/tasklist"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <list>",
	Short: "Export a list",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var (
	exportFormat string
	exportOut    string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	setFlagAliases(exportCmd.Flags(), exportFlagAliases)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", tasklist.FormatJSON,
		"Export format ("+strings.Join(tasklist.ExportFormats(), ", ")+")")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
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

	if exportOut == "" {
		return tasklist.Export(os.Stdout, exportFormat, list.Title, active, completed)
	}

	file, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", exportOut, err)
	}
	if err := tasklist.Export(file, exportFormat, list.Title, active, completed); err != nil {
		file.Close()
		os.Remove(exportOut)
		return err
	}
	return file.Close()
}
