package sync

import (
	"context"
	"errors"
	"io"
	"strings"
	stdsync "sync"

	"momentum-cli/internal/board"
	"momentum-cli/internal/model"

	"github.com/charmbracelet/log"
)

// ErrGoalIncomplete is returned when a goal create/update is missing the two
// required fields, name and deadline. No remote call is made.
var ErrGoalIncomplete = errors.New("goal needs a name and a deadline")

// GoalRemote is the slice of the backend the goal syncer needs.
type GoalRemote interface {
	Goals(ctx context.Context) ([]model.Goal, error)
	CreateGoal(ctx context.Context, g model.Goal) (string, error)
	UpdateGoal(ctx context.Context, g model.Goal) error
	DeleteGoal(ctx context.Context, goalID string) error
	ToggleGoal(ctx context.Context, goalID string, completed bool) error
	ToggleSubgoal(ctx context.Context, goalID, subgoalID string, completed bool) error
}

// Goals owns the goal view's state. Same reconciliation shape as Lists,
// richer tree: each goal carries subgoals and habits. Goal completion and
// subgoal completion are independent flags; neither toggle cascades.
type Goals struct {
	mu     stdsync.Mutex
	locks  entityLocks
	goals  []model.Goal
	remote GoalRemote
	logger *log.Logger
}

func NewGoals(remote GoalRemote, logger *log.Logger) *Goals {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Goals{remote: remote, logger: logger}
}

func (s *Goals) Load(ctx context.Context) error {
	goals, err := s.remote.Goals(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = goals
	return nil
}

// All returns a deep copy of the goals for rendering.
func (s *Goals) All() []model.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Goal, len(s.goals))
	for i, g := range s.goals {
		g.Subgoals = append([]model.Subgoal(nil), g.Subgoals...)
		g.Habits = append([]model.Habit(nil), g.Habits...)
		out[i] = g
	}
	return out
}

func (s *Goals) find(goalID string) (int, bool) {
	for i := range s.goals {
		if s.goals[i].ID == goalID {
			return i, true
		}
	}
	return -1, false
}

// Get returns a copy of one goal.
func (s *Goals) Get(goalID string) (model.Goal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.find(goalID)
	if !ok {
		return model.Goal{}, false
	}
	g := s.goals[i]
	g.Subgoals = append([]model.Subgoal(nil), g.Subgoals...)
	g.Habits = append([]model.Habit(nil), g.Habits...)
	return g, true
}

// Create validates, appends the goal optimistically, then swaps in the server
// id; failure removes it again.
func (s *Goals) Create(ctx context.Context, g model.Goal) (string, error) {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" || strings.TrimSpace(g.Deadline) == "" {
		return "", ErrGoalIncomplete
	}

	s.mu.Lock()
	g.ID = board.NewPendingID()
	provisional := g.ID
	s.goals = append(s.goals, g)
	s.mu.Unlock()

	serverID, err := s.remote.CreateGoal(ctx, g)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if i, ok := s.find(provisional); ok {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
		}
		s.logger.Warn("create goal failed; rolled back", "name", g.Name, "err", err)
		return "", err
	}
	if i, ok := s.find(provisional); ok {
		s.goals[i].ID = serverID
	}
	return serverID, nil
}

// Update replaces the goal's editable fields optimistically; failure restores
// the previous version.
func (s *Goals) Update(ctx context.Context, g model.Goal) error {
	if strings.TrimSpace(g.Name) == "" || strings.TrimSpace(g.Deadline) == "" {
		return ErrGoalIncomplete
	}

	unlock := s.locks.lock(g.ID)
	defer unlock()

	s.mu.Lock()
	i, ok := s.find(g.ID)
	if !ok {
		s.mu.Unlock()
		return board.NotFoundError{Kind: "goal", ID: g.ID}
	}
	prev := s.goals[i]
	g.Completed = prev.Completed // completion travels via the toggle routes
	s.goals[i] = g
	s.mu.Unlock()

	if err := s.remote.UpdateGoal(ctx, g); err != nil {
		s.mu.Lock()
		if i, ok := s.find(g.ID); ok {
			s.goals[i] = prev
		}
		s.mu.Unlock()
		s.logger.Warn("update goal failed; rolled back", "goal", g.ID, "err", err)
		return err
	}
	return nil
}

// Delete removes the goal locally only after the backend confirms.
func (s *Goals) Delete(ctx context.Context, goalID string) error {
	unlock := s.locks.lock(goalID)
	defer unlock()

	s.mu.Lock()
	if _, ok := s.find(goalID); !ok {
		s.mu.Unlock()
		return board.NotFoundError{Kind: "goal", ID: goalID}
	}
	s.mu.Unlock()

	if err := s.remote.DeleteGoal(ctx, goalID); err != nil {
		s.logger.Warn("delete goal failed; goal retained", "goal", goalID, "err", err)
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.find(goalID); ok {
		s.goals = append(s.goals[:i], s.goals[i+1:]...)
	}
	return nil
}

// ToggleGoal flips the goal's own completion flag. Subgoals are untouched.
func (s *Goals) ToggleGoal(ctx context.Context, goalID string) (bool, error) {
	unlock := s.locks.lock(goalID)
	defer unlock()

	s.mu.Lock()
	i, ok := s.find(goalID)
	if !ok {
		s.mu.Unlock()
		return false, board.NotFoundError{Kind: "goal", ID: goalID}
	}
	s.goals[i].Completed = !s.goals[i].Completed
	done := s.goals[i].Completed
	s.mu.Unlock()

	if err := s.remote.ToggleGoal(ctx, goalID, done); err != nil {
		s.mu.Lock()
		if i, ok := s.find(goalID); ok {
			s.goals[i].Completed = !done
		}
		s.mu.Unlock()
		s.logger.Warn("toggle goal failed; rolled back", "goal", goalID, "err", err)
		return !done, err
	}
	return done, nil
}

// ToggleSubgoal flips one subgoal's completion flag. The owning goal's flag
// is untouched.
func (s *Goals) ToggleSubgoal(ctx context.Context, goalID, subgoalID string) (bool, error) {
	unlock := s.locks.lock(subgoalID)
	defer unlock()

	s.mu.Lock()
	gi, ok := s.find(goalID)
	if !ok {
		s.mu.Unlock()
		return false, board.NotFoundError{Kind: "goal", ID: goalID}
	}
	si := -1
	for i := range s.goals[gi].Subgoals {
		if s.goals[gi].Subgoals[i].ID == subgoalID {
			si = i
			break
		}
	}
	if si < 0 {
		s.mu.Unlock()
		return false, board.NotFoundError{Kind: "subgoal", ID: subgoalID}
	}
	s.goals[gi].Subgoals[si].Completed = !s.goals[gi].Subgoals[si].Completed
	done := s.goals[gi].Subgoals[si].Completed
	s.mu.Unlock()

	if err := s.remote.ToggleSubgoal(ctx, goalID, subgoalID, done); err != nil {
		s.mu.Lock()
		if gi, ok := s.find(goalID); ok {
			for i := range s.goals[gi].Subgoals {
				if s.goals[gi].Subgoals[i].ID == subgoalID {
					s.goals[gi].Subgoals[i].Completed = !done
				}
			}
		}
		s.mu.Unlock()
		s.logger.Warn("toggle subgoal failed; rolled back", "subgoal", subgoalID, "err", err)
		return !done, err
	}
	return done, nil
}
