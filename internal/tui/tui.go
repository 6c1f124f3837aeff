package tui

import (
	"context"

	"momentum-cli/internal/api"
	"momentum-cli/internal/sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// Run starts the interactive board. Lists and goals are fetched up front;
// edits inside the TUI go through the same optimistic sync layer as the CLI.
func Run(client *api.Client, logger *log.Logger) error {
	applyAppearance()

	lists := sync.NewLists(client, logger)
	if err := lists.Load(context.Background()); err != nil {
		return err
	}
	goals := sync.NewGoals(client, logger)
	if err := goals.Load(context.Background()); err != nil {
		return err
	}

	m := newAppModel(lists, goals, logger)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
