package tui

import (
	"context"
	"fmt"
	"testing"

	"momentum-cli/internal/model"
	"momentum-cli/internal/sync"

	tea "github.com/charmbracelet/bubbletea"
)

// memRemote is a success-only in-memory backend for driving the model.
type memRemote struct {
	nextID int
	lists  []model.Collection
	goals  []model.Goal
}

func (r *memRemote) id(prefix string) string {
	r.nextID++
	return fmt.Sprintf("%s-%d", prefix, r.nextID)
}

func (r *memRemote) TaskLists(ctx context.Context) ([]model.Collection, error) { return r.lists, nil }
func (r *memRemote) CreateTaskList(ctx context.Context, name string) (string, error) {
	return r.id("list"), nil
}
func (r *memRemote) DeleteTaskList(ctx context.Context, listID string) error { return nil }
func (r *memRemote) CreateTask(ctx context.Context, listID, text string) (string, error) {
	return r.id("task"), nil
}
func (r *memRemote) UpdateTask(ctx context.Context, itemID, text string) error           { return nil }
func (r *memRemote) ToggleTask(ctx context.Context, itemID string, completed bool) error { return nil }
func (r *memRemote) DeleteTask(ctx context.Context, itemID string) error                 { return nil }

func (r *memRemote) Goals(ctx context.Context) ([]model.Goal, error) { return r.goals, nil }
func (r *memRemote) CreateGoal(ctx context.Context, g model.Goal) (string, error) {
	return r.id("goal"), nil
}
func (r *memRemote) UpdateGoal(ctx context.Context, g model.Goal) error  { return nil }
func (r *memRemote) DeleteGoal(ctx context.Context, goalID string) error { return nil }
func (r *memRemote) ToggleGoal(ctx context.Context, goalID string, completed bool) error {
	return nil
}
func (r *memRemote) ToggleSubgoal(ctx context.Context, goalID, subgoalID string, completed bool) error {
	return nil
}

func testModel(t *testing.T) appModel {
	t.Helper()
	remote := &memRemote{
		nextID: 1, // the seed below already uses task-1
		lists: []model.Collection{{ID: "list-1", Title: "Groceries", Items: []model.Item{
			{ID: "task-1", Text: "Milk"},
		}}},
	}
	lists := sync.NewLists(remote, nil)
	if err := lists.Load(context.Background()); err != nil {
		t.Fatalf("load lists: %v", err)
	}
	goals := sync.NewGoals(remote, nil)
	if err := goals.Load(context.Background()); err != nil {
		t.Fatalf("load goals: %v", err)
	}
	return newAppModel(lists, goals, nil)
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	panic("unknown key " + s)
}

// press feeds one message and drops any returned command (cursor blinks,
// flash timers).
func press(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(appModel)
}

// pressOp feeds a message that starts a sync operation, runs the returned
// command, and feeds the completion message back. Mirrors how bubbletea
// drives the loop.
func pressOp(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(appModel)
	if cmd == nil {
		return m
	}
	if out := cmd(); out != nil {
		if _, ok := out.(opDoneMsg); ok {
			next, _ = m.Update(out)
			m = next.(appModel)
		}
	}
	return m
}

func typeText(t *testing.T, m appModel, text string) appModel {
	t.Helper()
	for _, r := range text {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestAddThenEscapeAbandonsItem(t *testing.T) {
	m := testModel(t)
	m = press(t, m, key("right")) // move off the habits column
	m = press(t, m, key("a"))
	if !m.editing() {
		t.Fatalf("expected editing state after add")
	}
	m = pressOp(t, m, key("esc"))
	if m.editing() {
		t.Fatalf("still editing after esc")
	}
	cols := m.lists.Collections()
	if len(cols[1].Items) != 1 {
		t.Fatalf("abandoned item was kept: %+v", cols[1].Items)
	}
}

func TestAddCommitCreatesItem(t *testing.T) {
	m := testModel(t)
	m = press(t, m, key("right"))
	m = press(t, m, key("a"))
	m = typeText(t, m, "Eggs")
	m = pressOp(t, m, key("enter"))

	cols := m.lists.Collections()
	if len(cols[1].Items) != 2 {
		t.Fatalf("items: %+v", cols[1].Items)
	}
	it := cols[1].Items[1]
	if it.Text != "Eggs" || it.Editing {
		t.Fatalf("committed item: %+v", it)
	}
	if it.ID != "task-2" {
		t.Fatalf("expected the server id, got %q", it.ID)
	}
}

func TestEditEscapeRestoresText(t *testing.T) {
	m := testModel(t)
	m = press(t, m, key("right"))
	m = press(t, m, key("e"))
	m = typeText(t, m, "xxx")
	m = pressOp(t, m, key("esc"))

	cols := m.lists.Collections()
	if got := cols[1].Items[0].Text; got != "Milk" {
		t.Fatalf("esc should keep the original text, got %q", got)
	}
}

func TestToggleOnHabitsColumn(t *testing.T) {
	m := testModel(t)
	// Column 0 is the locked habits list; toggling is allowed there.
	m = pressOp(t, m, key(" "))
	cols := m.lists.Collections()
	if !cols[0].Items[0].Completed {
		t.Fatalf("habit toggle did not apply")
	}
	// Adding is not.
	m = press(t, m, key("a"))
	if m.editing() {
		t.Fatalf("add must be rejected on the locked list")
	}
	if m.flash == "" {
		t.Fatalf("expected a status flash for the rejected add")
	}
}

func TestGoalsViewToggle(t *testing.T) {
	m := testModel(t)
	m.goals = func() *sync.Goals {
		remote := &memRemote{goals: []model.Goal{{
			ID: "goal-1", Name: "Ship", Deadline: "2026-12-31",
			Subgoals: []model.Subgoal{{ID: "sub-1", Text: "Port"}},
		}}}
		g := sync.NewGoals(remote, nil)
		if err := g.Load(context.Background()); err != nil {
			t.Fatalf("load goals: %v", err)
		}
		return g
	}()

	m = press(t, m, key("tab"))
	if m.view != viewGoals {
		t.Fatalf("tab should open the goals view")
	}
	m = press(t, m, key("j")) // onto the subgoal row
	m = pressOp(t, m, key(" "))

	g, _ := m.goals.Get("goal-1")
	if !g.Subgoals[0].Completed {
		t.Fatalf("subgoal not toggled")
	}
	if g.Completed {
		t.Fatalf("goal flag must not cascade")
	}
}
