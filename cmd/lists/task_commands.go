package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <list> <text>...",
	Short: "Add an active task",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runAdd,
}

var doneCmd = &cobra.Command{
	Use:   "done <list> <index>",
	Short: "Mark the task at index completed",
	Args:  cobra.ExactArgs(2),
	RunE:  runDone,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <list> <index>",
	Short: "Delete the task at index",
	Args:  cobra.ExactArgs(2),
	RunE:  runDelete,
}

var reorderCmd = &cobra.Command{
	Use:   "reorder <list> <position>...",
	Short: "Reorder active tasks by their position among active tasks",
	Long: `Reorder active tasks by their position among active tasks.

Completed tasks keep their order and follow the active ones. Active tasks
that are not listed are dropped unless store.keep-unreferenced is set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReorder,
}

func init() {
	rootCmd.AddCommand(addCmd, doneCmd, deleteCmd, reorderCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}
	defer store.Close()

	task, err := store.Append(cmd.Context(), args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	fmt.Printf("Added to %s: %s\n", args[0], task.Text)
	return nil
}

func runDone(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[1])
	if err != nil {
		return err
	}
	store, err := loadStore()
	if err != nil {
		return err
	}
	defer store.Close()

	changed, err := store.CompleteAt(cmd.Context(), args[0], index)
	if err != nil {
		return err
	}
	if !changed {
		return fmt.Errorf("no active task at index %d in %s", index, args[0])
	}
	fmt.Printf("Completed task %d in %s\n", index, args[0])
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[1])
	if err != nil {
		return err
	}
	store, err := loadStore()
	if err != nil {
		return err
	}
	defer store.Close()

	changed, err := store.DeleteAt(cmd.Context(), args[0], index)
	if err != nil {
		return err
	}
	if !changed {
		return fmt.Errorf("no task at index %d in %s", index, args[0])
	}
	fmt.Printf("Deleted task %d from %s\n", index, args[0])
	return nil
}

func runReorder(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := store.Reorder(cmd.Context(), args[0], args[1:])
	if err != nil {
		return err
	}
	if len(result.Skipped) > 0 {
		fmt.Fprintf(os.Stderr, "skipped positions: %s\n", strings.Join(result.Skipped, ", "))
	}
	if result.Dropped > 0 {
		fmt.Fprintf(os.Stderr, "dropped %d active task(s) not listed\n", result.Dropped)
	}
	fmt.Printf("Reordered %s: %d active task(s)\n", args[0], result.Active)
	return nil
}

func parseIndex(value string) (int, error) {
	index, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || index < 0 {
		return 0, fmt.Errorf("index must be a non-negative integer, got %q", value)
	}
	return index, nil
}
