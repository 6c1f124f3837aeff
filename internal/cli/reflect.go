package cli

import (
	"fmt"
	"io"
	"time"

	"momentum-cli/internal/format"
	"momentum-cli/internal/store"

	"github.com/spf13/cobra"
)

func today() string {
	return time.Now().Format("2006-01-02")
}

func newReflectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reflect",
		Short: "Daily reflection (stored locally, one per day)",
	}
	cmd.AddCommand(newReflectShowCmd(app))
	cmd.AddCommand(newReflectSetCmd(app))
	return cmd
}

func newReflectShowCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a day's reflection",
		RunE: func(cmd *cobra.Command, args []string) error {
			local, err := store.OpenLocal(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer local.Close()

			r, err := local.Reflection(cmd.Context(), date)
			if err != nil {
				return writeErr(cmd, err)
			}
			r.Date = date
			return writeTable(cmd, app, r, func(w io.Writer) {
				format.Reflection(w, r)
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", today(), "Day to show (YYYY-MM-DD)")
	return cmd
}

func newReflectSetCmd(app *App) *cobra.Command {
	var (
		date         string
		analysis     string
		satisfaction int
		productivity int
		mood         int
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Record (or amend) a day's reflection",
		RunE: func(cmd *cobra.Command, args []string) error {
			local, err := store.OpenLocal(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer local.Close()

			// Amend: unset flags keep whatever the day already holds.
			r, err := local.Reflection(cmd.Context(), date)
			if err != nil {
				return writeErr(cmd, err)
			}
			r.Date = date

			f := cmd.Flags()
			if f.Changed("analysis") {
				r.Analysis = analysis
			}
			for _, rating := range []struct {
				flag  string
				value int
				dst   *int
			}{
				{"satisfaction", satisfaction, &r.Satisfaction},
				{"productivity", productivity, &r.Productivity},
				{"mood", mood, &r.Mood},
			} {
				if !f.Changed(rating.flag) {
					continue
				}
				// 0 clears the rating back to "not filled".
				if rating.value < 0 || rating.value > 5 {
					return writeErr(cmd, fmt.Errorf("%s must be between 1 and 5, or 0 to clear", rating.flag))
				}
				*rating.dst = rating.value
			}

			if err := local.SaveReflection(cmd.Context(), r); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": r})
		},
	}

	cmd.Flags().StringVar(&date, "date", today(), "Day to record (YYYY-MM-DD)")
	cmd.Flags().StringVar(&analysis, "analysis", "", "Free-form analysis of the day")
	cmd.Flags().IntVar(&satisfaction, "satisfaction", 0, "Satisfaction rating (1-5, 0 clears)")
	cmd.Flags().IntVar(&productivity, "productivity", 0, "Productivity rating (1-5, 0 clears)")
	cmd.Flags().IntVar(&mood, "mood", 0, "Mood rating (1-5, 0 clears)")
	return cmd
}
