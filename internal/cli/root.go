package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"momentum-cli/internal/api"
	"momentum-cli/internal/format"
	"momentum-cli/internal/session"
	"momentum-cli/internal/store"
	"momentum-cli/internal/sync"
	"momentum-cli/internal/tui"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type App struct {
	BaseURL    string
	PrettyJSON bool
	Format     string

	logger *log.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "momentum",
		Short:        "Momentum CLI + TUI: tasks, goals, journal, reflection",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive board
  momentum

  # Scriptable commands
  momentum lists
  momentum tasks add <list-id> --text "Buy milk"
  momentum goals show <goal-id>
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		app.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{ReportTimestamp: false})
		if app.BaseURL == "" {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			app.BaseURL = cfg.BaseURL
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.BaseURL, "base-url", envOr("MOMENTUM_BASE_URL", ""), "Backend base URL (default: config file, then http://localhost:5000)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("MOMENTUM_FORMAT", "json"), "Output format (json|table)")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newSignupCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newListsCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newGoalsCmd(app))
	cmd.AddCommand(newJournalCmd(app))
	cmd.AddCommand(newReflectCmd(app))
	cmd.AddCommand(newProfileCmd(app))

	return cmd
}

func runTUI(app *App) error {
	client, err := newClient(app)
	if err != nil {
		return err
	}
	return tui.Run(client, app.logger)
}

// newClient builds an authenticated API client. A missing or expired session
// fails here, before any network call.
func newClient(app *App) (*api.Client, error) {
	sess, err := session.Load()
	if err != nil {
		return nil, err
	}
	return api.New(app.BaseURL, sess.Token, app.logger), nil
}

// newAnonClient is for login/signup, the two calls that work without a token.
func newAnonClient(app *App) *api.Client {
	return api.New(app.BaseURL, "", app.logger)
}

// loadLists builds the list syncer seeded with the fixed habits collection
// and hydrated from the backend.
func loadLists(cmd *cobra.Command, app *App) (*sync.Lists, error) {
	client, err := newClient(app)
	if err != nil {
		return nil, err
	}
	s := sync.NewLists(client, app.logger)
	if err := s.Load(cmd.Context()); err != nil {
		return nil, err
	}
	return s, nil
}

func loadGoals(cmd *cobra.Command, app *App) (*sync.Goals, error) {
	client, err := newClient(app)
	if err != nil {
		return nil, err
	}
	s := sync.NewGoals(client, app.logger)
	if err := s.Load(cmd.Context()); err != nil {
		return nil, err
	}
	return s, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

// writeTable renders the table form when --format=table, otherwise the JSON
// envelope around v.
func writeTable(cmd *cobra.Command, app *App, v any, render func(w io.Writer)) error {
	if app.Format == "table" {
		render(cmd.OutOrStdout())
		return nil
	}
	return writeOut(cmd, app, map[string]any{"data": v})
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
