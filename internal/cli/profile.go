package cli

import (
	"momentum-cli/internal/store"

	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Local profile settings (never sent to the backend)",
	}
	cmd.AddCommand(newProfileShowCmd(app))
	cmd.AddCommand(newProfileSetCmd(app))
	return cmd
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the profile settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			local, err := store.OpenLocal(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer local.Close()

			p, err := local.Profile(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}
}

func newProfileSetCmd(app *App) *cobra.Command {
	var name, occupation, about string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set profile fields (flags not given keep their value)",
		RunE: func(cmd *cobra.Command, args []string) error {
			local, err := store.OpenLocal(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer local.Close()

			p, err := local.Profile(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			f := cmd.Flags()
			if f.Changed("name") {
				p.Name = name
			}
			if f.Changed("occupation") {
				p.Occupation = occupation
			}
			if f.Changed("about") {
				p.About = about
			}
			if err := local.SaveProfile(cmd.Context(), p); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&occupation, "occupation", "", "Occupation")
	cmd.Flags().StringVar(&about, "about", "", "About text")
	return cmd
}
