package main

import (
	"fmt"

	"github.com/amonks/daybook/internal/ui"
	"github.com/amonks/daybook/todo"
	"github.com/spf13/cobra"
)

var subCmd = &cobra.Command{
	Use:   "sub",
	Short: "Manage the sub-todos of a todo",
}

var subAddCmd = &cobra.Command{
	Use:   "add <todo-id> <title>",
	Short: "Add a sub-todo",
	Args:  cobra.ExactArgs(2),
	RunE:  runSubAdd,
}

var subUpdateCmd = &cobra.Command{
	Use:   "update <todo-id> <sub-id> <title>",
	Short: "Rename a sub-todo",
	Args:  cobra.ExactArgs(3),
	RunE:  runSubUpdate,
}

var subDoneCmd = &cobra.Command{
	Use:   "done <todo-id> <sub-id>",
	Short: "Toggle a sub-todo between pending and completed",
	Long: `Toggle a sub-todo between pending and completed.

Completing the last pending sub-todo completes the todo; reopening a
sub-todo of a completed todo reopens the todo.`,
	Args: cobra.ExactArgs(2),
	RunE: runSubDone,
}

var subDeleteCmd = &cobra.Command{
	Use:   "delete <todo-id> <sub-id>",
	Short: "Delete a sub-todo",
	Args:  cobra.ExactArgs(2),
	RunE:  runSubDelete,
}

func init() {
	rootCmd.AddCommand(subCmd)
	subCmd.AddCommand(subAddCmd, subUpdateCmd, subDoneCmd, subDeleteCmd)
}

// resolveSubTodo resolves a todo prefix and a sub-todo prefix within it.
func resolveSubTodo(store *todo.Store, parentPrefix, subPrefix string) (*todo.Todo, *todo.SubTodo, error) {
	parent, err := store.Resolve(parentPrefix)
	if err != nil {
		return nil, nil, err
	}
	sub, err := todo.ResolveSubTodo(parent, subPrefix)
	if err != nil {
		return nil, nil, err
	}
	return parent, sub, nil
}

func runSubAdd(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	parent, err := store.Resolve(args[0])
	if err != nil {
		return err
	}

	sub, err := store.AddSubTodo(parent.ID, args[1])
	if err != nil {
		return err
	}
	highlight := highlighter(todo.PrefixLengths(store.Todos()), ui.HighlightID)
	fmt.Printf("Created sub-todo %s: %s\n", highlight(sub.ID), sub.Title)
	return nil
}

func runSubUpdate(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	parent, sub, err := resolveSubTodo(store, args[0], args[1])
	if err != nil {
		return err
	}
	_, err = store.UpdateSubTodo(parent.ID, sub.ID, args[2])
	return err
}

func runSubDone(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	parent, sub, err := resolveSubTodo(store, args[0], args[1])
	if err != nil {
		return err
	}
	_, err = store.ToggleSubTodo(parent.ID, sub.ID)
	return err
}

func runSubDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	parent, sub, err := resolveSubTodo(store, args[0], args[1])
	if err != nil {
		return err
	}
	_, err = store.DeleteSubTodo(parent.ID, sub.ID)
	return err
}
