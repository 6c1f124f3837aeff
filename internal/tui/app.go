package tui

import (
	"context"
	"time"

	"momentum-cli/internal/model"
	"momentum-cli/internal/sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type view int

const (
	viewBoard view = iota
	viewGoals
)

// opDoneMsg reports a finished sync operation. A non-nil err means the
// optimistic change was rolled back; the board already shows the restored
// state, so the error only drives the status flash.
type opDoneMsg struct{ err error }

type flashDoneMsg struct{ seq int }

type appModel struct {
	lists  *sync.Lists
	goals  *sync.Goals
	logger *log.Logger

	width  int
	height int

	view view

	// Board cursor.
	col int
	row int

	// Goals cursor over flattened rows (goal and subgoal lines).
	goalRow int

	// Editing state. editItem is set while the input is bound to an item;
	// newList is set while it captures a new list title.
	input    textinput.Model
	editCol  string
	editItem string
	editOrig string
	newList  bool

	flash    string
	flashSeq int
}

func newAppModel(lists *sync.Lists, goals *sync.Goals, logger *log.Logger) appModel {
	in := textinput.New()
	in.CharLimit = 280
	in.Prompt = ""
	return appModel{lists: lists, goals: goals, logger: logger, input: in}
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) editing() bool { return m.editItem != "" || m.newList }

// flashError shows a transient warning. Failed backend calls are already
// rolled back by the sync layer; the user just needs to know the change did
// not stick.
func (m *appModel) flashError(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	m.flash = err.Error()
	m.flashSeq++
	seq := m.flashSeq
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return flashDoneMsg{seq: seq}
	})
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case opDoneMsg:
		m.clampCursor()
		if msg.err != nil {
			return m, m.flashError(msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing() {
			return m.updateEditing(msg)
		}
		switch m.view {
		case viewGoals:
			return m.updateGoals(msg)
		default:
			return m.updateBoard(msg)
		}
	}
	return m, nil
}

func (m appModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols := m.lists.Collections()

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "tab":
		m.view = viewGoals
		return m, nil

	case "left", "h":
		if m.col > 0 {
			m.col--
			m.clampCursor()
		}
		return m, nil
	case "right", "l":
		if m.col < len(cols)-1 {
			m.col++
			m.clampCursor()
		}
		return m, nil
	case "up", "k":
		if m.row > 0 {
			m.row--
		}
		return m, nil
	case "down", "j":
		if c := m.currentCollection(); c != nil && m.row < len(c.Items)-1 {
			m.row++
		}
		return m, nil

	case " ", "enter":
		c := m.currentCollection()
		if c == nil || m.row >= len(c.Items) {
			return m, nil
		}
		colID, itemID := c.ID, c.Items[m.row].ID
		return m, func() tea.Msg {
			_, err := m.lists.ToggleItem(context.Background(), colID, itemID)
			return opDoneMsg{err: err}
		}

	case "a":
		c := m.currentCollection()
		if c == nil {
			return m, nil
		}
		it, err := m.lists.AddItem(c.ID)
		if err != nil {
			return m, m.flashError(err)
		}
		m.editCol, m.editItem, m.editOrig = c.ID, it.ID, ""
		m.row = len(c.Items) // cursor on the new last row
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case "e":
		c := m.currentCollection()
		if c == nil || m.row >= len(c.Items) {
			return m, nil
		}
		it := c.Items[m.row]
		if err := m.lists.BeginEdit(c.ID, it.ID); err != nil {
			return m, m.flashError(err)
		}
		m.editCol, m.editItem, m.editOrig = c.ID, it.ID, it.Text
		m.input.SetValue(it.Text)
		m.input.CursorEnd()
		m.input.Focus()
		return m, textinput.Blink

	case "x":
		c := m.currentCollection()
		if c == nil || m.row >= len(c.Items) {
			return m, nil
		}
		colID, itemID := c.ID, c.Items[m.row].ID
		return m, func() tea.Msg {
			return opDoneMsg{err: m.lists.DeleteItem(context.Background(), colID, itemID)}
		}

	case "N":
		m.newList = true
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case "X":
		c := m.currentCollection()
		if c == nil {
			return m, nil
		}
		colID := c.ID
		return m, func() tea.Msg {
			return opDoneMsg{err: m.lists.DeleteCollection(context.Background(), colID)}
		}
	}
	return m, nil
}

// updateEditing routes keys while the input is open. Enter commits; Esc
// commits the text the edit started with, which abandons (deletes) an item
// that was created empty.
func (m appModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		text := m.input.Value()
		if msg.String() == "esc" {
			text = m.editOrig
		}
		m.input.Blur()

		if m.newList {
			m.newList = false
			if text == "" {
				return m, nil
			}
			return m, func() tea.Msg {
				_, err := m.lists.CreateCollection(context.Background(), text)
				return opDoneMsg{err: err}
			}
		}

		colID, itemID := m.editCol, m.editItem
		m.editCol, m.editItem, m.editOrig = "", "", ""
		return m, func() tea.Msg {
			return opDoneMsg{err: m.lists.CommitEdit(context.Background(), colID, itemID, text)}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateGoals(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.goalRows()

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab", "esc":
		m.view = viewBoard
		return m, nil
	case "up", "k":
		if m.goalRow > 0 {
			m.goalRow--
		}
		return m, nil
	case "down", "j":
		if m.goalRow < len(rows)-1 {
			m.goalRow++
		}
		return m, nil
	case " ", "enter":
		if m.goalRow >= len(rows) {
			return m, nil
		}
		r := rows[m.goalRow]
		return m, func() tea.Msg {
			var err error
			if r.subgoalID != "" {
				_, err = m.goals.ToggleSubgoal(context.Background(), r.goalID, r.subgoalID)
			} else {
				_, err = m.goals.ToggleGoal(context.Background(), r.goalID)
			}
			return opDoneMsg{err: err}
		}
	}
	return m, nil
}

func (m *appModel) currentCollection() *model.Collection {
	cols := m.lists.Collections()
	if m.col < 0 || m.col >= len(cols) {
		return nil
	}
	return &cols[m.col]
}

func (m *appModel) clampCursor() {
	cols := m.lists.Collections()
	if m.col >= len(cols) {
		m.col = len(cols) - 1
	}
	if m.col < 0 {
		m.col = 0
	}
	if c := m.currentCollection(); c != nil {
		if m.row >= len(c.Items) {
			m.row = len(c.Items) - 1
		}
	}
	if m.row < 0 {
		m.row = 0
	}
}

// goalRow is one selectable line in the goals view: a goal, or one of its
// subgoals.
type goalRow struct {
	goalID    string
	subgoalID string
	text      string
	completed bool
	deadline  string
}

func (m *appModel) goalRows() []goalRow {
	var rows []goalRow
	for _, g := range m.goals.All() {
		rows = append(rows, goalRow{goalID: g.ID, text: g.Name, completed: g.Completed, deadline: g.Deadline})
		for _, sg := range g.Subgoals {
			rows = append(rows, goalRow{goalID: g.ID, subgoalID: sg.ID, text: sg.Text, completed: sg.Completed})
		}
	}
	return rows
}
