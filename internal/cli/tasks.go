package cli

import (
	"momentum-cli/internal/model"
	"momentum-cli/internal/sync"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands",
	}
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksEditCmd(app))
	cmd.AddCommand(newTasksToggleCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))
	return cmd
}

// listFor finds the collection holding the task. Task ids are globally
// unique on the backend, so the first hit wins.
func listFor(s *sync.Lists, taskID string) (string, bool) {
	for _, c := range s.Collections() {
		for _, it := range c.Items {
			if it.ID == taskID {
				return c.ID, true
			}
		}
	}
	return "", false
}

func taskIn(s *sync.Lists, listID, taskID string) (model.Item, bool) {
	for _, c := range s.Collections() {
		if c.ID != listID {
			continue
		}
		for _, it := range c.Items {
			if it.ID == taskID {
				return it, true
			}
		}
	}
	return model.Item{}, false
}

func newTasksAddCmd(app *App) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "add <list-id>",
		Short: "Add a task to a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadLists(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			it, err := s.AddItem(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.CommitEdit(cmd.Context(), args[0], it.ID, text); err != nil {
				return writeErr(cmd, err)
			}
			// The commit swapped in the server id; the new task sits at the
			// end of the list.
			for _, c := range s.Collections() {
				if c.ID == args[0] && len(c.Items) > 0 {
					it = c.Items[len(c.Items)-1]
				}
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": it.ID, "text": it.Text}})
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Task text")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func newTasksEditCmd(app *App) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Change a task's text (empty text deletes the task)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadLists(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			listID, ok := listFor(s, args[0])
			if !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}
			if err := s.CommitEdit(cmd.Context(), listID, args[0], text); err != nil {
				return writeErr(cmd, err)
			}
			it, kept := taskIn(s, listID, args[0])
			if !kept {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": args[0], "deleted": true}})
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": it.ID, "text": it.Text}})
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "New task text")
	return cmd
}

func newTasksToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <task-id>",
		Short: "Flip a task between open and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadLists(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			listID, ok := listFor(s, args[0])
			if !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}
			done, err := s.ToggleItem(cmd.Context(), listID, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": args[0], "completed": done}})
		},
	}
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadLists(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			listID, ok := listFor(s, args[0])
			if !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}
			if err := s.DeleteItem(cmd.Context(), listID, args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": args[0]}})
		},
	}
}
