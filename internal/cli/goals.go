package cli

import (
	"io"

	"momentum-cli/internal/board"
	"momentum-cli/internal/format"
	"momentum-cli/internal/model"

	"github.com/spf13/cobra"
)

func newGoalsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Goal commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGoalsList(cmd, app)
		},
	}
	cmd.AddCommand(newGoalsListCmd(app))
	cmd.AddCommand(newGoalsShowCmd(app))
	cmd.AddCommand(newGoalsCreateCmd(app))
	cmd.AddCommand(newGoalsEditCmd(app))
	cmd.AddCommand(newGoalsDeleteCmd(app))
	cmd.AddCommand(newGoalsToggleCmd(app))
	return cmd
}

func newGoalsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGoalsList(cmd, app)
		},
	}
}

func runGoalsList(cmd *cobra.Command, app *App) error {
	s, err := loadGoals(cmd, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	goals := s.All()
	return writeTable(cmd, app, goals, func(w io.Writer) {
		format.Goals(w, goals)
	})
}

func newGoalsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <goal-id>",
		Short: "Show one goal with subgoals, habits, and SMART fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadGoals(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			g, ok := s.Get(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("goal", args[0]))
			}
			return writeTable(cmd, app, g, func(w io.Writer) {
				format.Goal(w, g)
			})
		},
	}
}

// goalFlags binds the editable goal fields to command flags.
func goalFlags(cmd *cobra.Command, g *model.Goal, subgoals, habits *[]string) {
	cmd.Flags().StringVar(&g.Name, "name", "", "Goal name")
	cmd.Flags().StringVar(&g.Deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().StringVar(&g.Description, "description", "", "Description")
	cmd.Flags().StringVar(&g.Specifics, "specifics", "", "What exactly will be achieved")
	cmd.Flags().StringVar(&g.Measure, "measure", "", "How progress is measured")
	cmd.Flags().StringVar(&g.Resources, "resources", "", "What is needed to get there")
	cmd.Flags().StringVar(&g.Alignment, "alignment", "", "Why this goal matters")
	cmd.Flags().StringArrayVar(subgoals, "subgoal", nil, "Subgoal text (repeatable)")
	cmd.Flags().StringArrayVar(habits, "habit", nil, "Supporting habit text (repeatable)")
}

func newGoalsCreateCmd(app *App) *cobra.Command {
	var g model.Goal
	var subgoals, habits []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadGoals(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			for _, text := range subgoals {
				g.Subgoals = append(g.Subgoals, model.Subgoal{ID: board.NewPendingID(), Text: text})
			}
			for _, text := range habits {
				g.Habits = append(g.Habits, model.Habit{ID: board.NewPendingID(), Text: text})
			}
			id, err := s.Create(cmd.Context(), g)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "name": g.Name}})
		},
	}

	goalFlags(cmd, &g, &subgoals, &habits)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("deadline")
	return cmd
}

func newGoalsEditCmd(app *App) *cobra.Command {
	var in model.Goal
	var subgoals, habits []string

	cmd := &cobra.Command{
		Use:   "edit <goal-id>",
		Short: "Edit a goal's fields (flags not given keep their value)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadGoals(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			g, ok := s.Get(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("goal", args[0]))
			}

			f := cmd.Flags()
			if f.Changed("name") {
				g.Name = in.Name
			}
			if f.Changed("deadline") {
				g.Deadline = in.Deadline
			}
			if f.Changed("description") {
				g.Description = in.Description
			}
			if f.Changed("specifics") {
				g.Specifics = in.Specifics
			}
			if f.Changed("measure") {
				g.Measure = in.Measure
			}
			if f.Changed("resources") {
				g.Resources = in.Resources
			}
			if f.Changed("alignment") {
				g.Alignment = in.Alignment
			}
			if f.Changed("subgoal") {
				g.Subgoals = nil
				for _, text := range subgoals {
					g.Subgoals = append(g.Subgoals, model.Subgoal{ID: board.NewPendingID(), Text: text})
				}
			}
			if f.Changed("habit") {
				g.Habits = nil
				for _, text := range habits {
					g.Habits = append(g.Habits, model.Habit{ID: board.NewPendingID(), Text: text})
				}
			}

			if err := s.Update(cmd.Context(), g); err != nil {
				return writeErr(cmd, err)
			}
			updated, _ := s.Get(args[0])
			return writeOut(cmd, app, map[string]any{"data": updated})
		},
	}

	goalFlags(cmd, &in, &subgoals, &habits)
	return cmd
}

func newGoalsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <goal-id>",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadGoals(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Delete(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": args[0]}})
		},
	}
}

func newGoalsToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <goal-id> [subgoal-id]",
		Short: "Flip a goal's (or one subgoal's) completion flag",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadGoals(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if len(args) == 2 {
				done, err := s.ToggleSubgoal(cmd.Context(), args[0], args[1])
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": args[1], "completed": done}})
			}
			done, err := s.ToggleGoal(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": args[0], "completed": done}})
		},
	}
}
