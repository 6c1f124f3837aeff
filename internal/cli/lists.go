package cli

import (
	"io"

	"momentum-cli/internal/format"

	"github.com/spf13/cobra"
)

func newListsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Task list commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare `momentum lists` doubles as `lists show`.
			return runListsShow(cmd, app)
		},
	}
	cmd.AddCommand(newListsShowCmd(app))
	cmd.AddCommand(newListsCreateCmd(app))
	cmd.AddCommand(newListsDeleteCmd(app))
	return cmd
}

func newListsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show all task lists, habits first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListsShow(cmd, app)
		},
	}
}

func runListsShow(cmd *cobra.Command, app *App) error {
	s, err := loadLists(cmd, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	cols := s.Collections()
	return writeTable(cmd, app, cols, func(w io.Writer) {
		format.Collections(w, cols)
	})
}

func newListsCreateCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task list",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadLists(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := s.CreateCollection(cmd.Context(), name)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "name": name}})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "List name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newListsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <list-id>",
		Short: "Delete a task list and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadLists(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.DeleteCollection(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": args[0]}})
		},
	}
}
