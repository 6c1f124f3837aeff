package cli

import (
	"io"
	"strings"

	"momentum-cli/internal/format"
	"momentum-cli/internal/model"

	"github.com/spf13/cobra"
)

// untitledJournal is the title given to entries saved without one.
const untitledJournal = "Untitled Journal"

func journalTitle(title string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	return untitledJournal
}

func newJournalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Journal commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournalList(cmd, app, false)
		},
	}
	cmd.AddCommand(newJournalListCmd(app))
	cmd.AddCommand(newJournalShowCmd(app))
	cmd.AddCommand(newJournalAddCmd(app))
	cmd.AddCommand(newJournalEditCmd(app))
	cmd.AddCommand(newJournalTrashCmd(app))
	cmd.AddCommand(newJournalRestoreCmd(app))
	cmd.AddCommand(newJournalDeleteCmd(app))
	return cmd
}

func newJournalListCmd(app *App) *cobra.Command {
	var trashed bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournalList(cmd, app, trashed)
		},
	}

	cmd.Flags().BoolVar(&trashed, "trashed", false, "Show the trash instead of active entries")
	return cmd
}

func runJournalList(cmd *cobra.Command, app *App, trashed bool) error {
	client, err := newClient(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	all, err := client.Journals(cmd.Context())
	if err != nil {
		return writeErr(cmd, err)
	}
	entries := make([]model.Journal, 0, len(all))
	for _, j := range all {
		if j.Trashed == trashed {
			entries = append(entries, j)
		}
	}
	return writeTable(cmd, app, entries, func(w io.Writer) {
		format.Journals(w, entries)
	})
}

func findJournal(entries []model.Journal, id string) (model.Journal, bool) {
	for _, j := range entries {
		if j.ID == id {
			return j, true
		}
	}
	return model.Journal{}, false
}

func newJournalShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <journal-id>",
		Short: "Show one journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			all, err := client.Journals(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			j, ok := findJournal(all, args[0])
			if !ok {
				return writeErr(cmd, errNotFound("journal entry", args[0]))
			}
			return writeTable(cmd, app, j, func(w io.Writer) {
				format.Journal(w, j, 80)
			})
		},
	}
}

func newJournalAddCmd(app *App) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Write a journal entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			title = journalTitle(title)
			id, err := client.CreateJournal(cmd.Context(), title, content)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "title": title}})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Entry title (defaults to \"Untitled Journal\")")
	cmd.Flags().StringVar(&content, "content", "", "Entry content (markdown)")
	return cmd
}

func newJournalEditCmd(app *App) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "edit <journal-id>",
		Short: "Edit a journal entry (flags not given keep their value)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			all, err := client.Journals(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			j, ok := findJournal(all, args[0])
			if !ok {
				return writeErr(cmd, errNotFound("journal entry", args[0]))
			}
			f := cmd.Flags()
			if f.Changed("title") {
				j.Title = journalTitle(title)
			}
			if f.Changed("content") {
				j.Content = content
			}
			if err := client.UpdateJournal(cmd.Context(), j.ID, j.Title, j.Content); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": j.ID, "title": j.Title}})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New content (markdown)")
	return cmd
}

func newJournalTrashCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "trash <journal-id>",
		Short: "Move a journal entry to the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.TrashJournal(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": args[0], "trashed": true}})
		},
	}
}

func newJournalRestoreCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <journal-id>",
		Short: "Restore a journal entry from the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.RestoreJournal(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": args[0], "trashed": false}})
		},
	}
}

func newJournalDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <journal-id>",
		Short: "Permanently delete a trashed journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			all, err := client.Journals(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			j, ok := findJournal(all, args[0])
			if !ok {
				return writeErr(cmd, errNotFound("journal entry", args[0]))
			}
			// Purge goes through the trash; active entries get trashed first.
			if !j.Trashed {
				return writeErr(cmd, errNotTrashed(args[0]))
			}
			if err := client.DeleteJournal(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": args[0]}})
		},
	}
}
