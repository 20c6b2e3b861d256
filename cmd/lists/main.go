// Package main implements the lists CLI tool.
package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "lists",
	Short:        "Lists - a two-list to-do manager",
	SilenceUsage: true,
}

var (
	configPath string
	tasksDir   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: lists.toml in the working directory)")
	rootCmd.PersistentFlags().StringVar(&tasksDir, "dir", "", "Tasks directory (overrides store.dir)")
}
