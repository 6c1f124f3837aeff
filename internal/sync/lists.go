// Package sync reconciles optimistic board mutations against the backend.
// Every mutating operation applies to local state immediately, then confirms
// with the backend; on failure the exact pre-mutation state is restored and
// the error is returned to the caller. There is no automatic retry.
package sync

import (
	"context"
	"io"
	stdsync "sync"

	"momentum-cli/internal/board"
	"momentum-cli/internal/model"

	"github.com/charmbracelet/log"
)

// ListRemote is the slice of the backend the list syncer needs.
type ListRemote interface {
	TaskLists(ctx context.Context) ([]model.Collection, error)
	CreateTaskList(ctx context.Context, name string) (string, error)
	DeleteTaskList(ctx context.Context, listID string) error
	CreateTask(ctx context.Context, listID, text string) (string, error)
	UpdateTask(ctx context.Context, itemID, text string) error
	ToggleTask(ctx context.Context, itemID string, completed bool) error
	DeleteTask(ctx context.Context, itemID string) error
}

// Lists owns one view's collection tree and keeps it reconciled with the
// backend. The fixed daily-habits collection is seeded client-side and never
// leaves the client; its toggles are local-only.
type Lists struct {
	mu     stdsync.Mutex // guards the board
	locks  entityLocks   // serializes remote calls per entity
	board  *board.Board
	remote ListRemote
	logger *log.Logger
}

func NewLists(remote ListRemote, logger *log.Logger) *Lists {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Lists{
		board:  board.New(model.DefaultHabits()),
		remote: remote,
		logger: logger,
	}
}

// Load replaces local state with the backend's lists, keeping the seeded
// daily-habits collection in front.
func (s *Lists) Load(ctx context.Context) error {
	cols, err := s.remote.TaskLists(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = board.New(append([]model.Collection{model.DefaultHabits()}, cols...)...)
	return nil
}

// Collections returns a deep copy of the current tree for rendering. Callers
// never hold pointers into the live board.
func (s *Lists) Collections() []model.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Collection, len(s.board.Collections))
	for i, c := range s.board.Collections {
		c.Items = append([]model.Item(nil), c.Items...)
		out[i] = c
	}
	return out
}

// CreateCollection appends the collection optimistically, then swaps in the
// server id; on backend failure the collection is removed again.
func (s *Lists) CreateCollection(ctx context.Context, title string) (string, error) {
	s.mu.Lock()
	c, err := s.board.CreateCollection(title)
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	provisional := c.ID
	name := c.Title
	s.mu.Unlock()

	serverID, err := s.remote.CreateTaskList(ctx, name)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		_, _, _ = s.board.RemoveCollection(provisional)
		s.logger.Warn("create list failed; rolled back", "title", name, "err", err)
		return "", err
	}
	if err := s.board.ConfirmCollection(provisional, serverID); err != nil {
		return "", err
	}
	return serverID, nil
}

// DeleteCollection removes the collection locally only after the backend
// confirms the delete; on failure the collection is retained.
func (s *Lists) DeleteCollection(ctx context.Context, collectionID string) error {
	s.mu.Lock()
	c, ok := s.board.Find(collectionID)
	if !ok {
		s.mu.Unlock()
		return board.NotFoundError{Kind: "collection", ID: collectionID}
	}
	if c.Locked {
		s.mu.Unlock()
		return board.LockedError{CollectionID: collectionID}
	}
	s.mu.Unlock()

	unlock := s.locks.lock(collectionID)
	defer unlock()

	if err := s.remote.DeleteTaskList(ctx, collectionID); err != nil {
		s.logger.Warn("delete list failed; list retained", "list", collectionID, "err", err)
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _, err := s.board.RemoveCollection(collectionID)
	return err
}

// AddItem inserts a fresh empty item in edit mode. Nothing is persisted until
// the first commit, so there is no remote call here.
func (s *Lists) AddItem(collectionID string) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, err := s.board.AddItem(collectionID)
	if err != nil {
		return model.Item{}, err
	}
	return *it, nil
}

// BeginEdit opens the item's edit field (closing any other open field).
func (s *Lists) BeginEdit(collectionID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.BeginEdit(collectionID, itemID)
}

// CommitEdit ends an edit with the given text. Empty text abandons the edit
// by deleting the item. New items are created on the backend at first commit;
// existing items are patched. Either way, failure restores the pre-mutation
// state.
func (s *Lists) CommitEdit(ctx context.Context, collectionID, itemID, text string) error {
	unlock := s.locks.lock(itemID)
	defer unlock()

	s.mu.Lock()
	res, err := s.board.CommitEdit(collectionID, itemID, text)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	if res.Removed {
		removed, at := res.RemovedItem, res.RemovedAt
		s.mu.Unlock()
		if board.IsPending(removed.ID) {
			return nil // never persisted; nothing to delete remotely
		}
		if err := s.remote.DeleteTask(ctx, removed.ID); err != nil {
			s.mu.Lock()
			_ = s.board.RestoreItem(collectionID, removed, at)
			s.mu.Unlock()
			s.logger.Warn("delete task failed; restored", "item", removed.ID, "err", err)
			return err
		}
		return nil
	}

	committed := *res.Item
	prevText := res.PrevText
	s.mu.Unlock()

	if board.IsPending(committed.ID) {
		serverID, err := s.remote.CreateTask(ctx, collectionID, committed.Text)
		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			_, _, _ = s.board.RemoveItem(collectionID, committed.ID)
			s.logger.Warn("create task failed; rolled back", "list", collectionID, "err", err)
			return err
		}
		return s.board.ConfirmItem(collectionID, committed.ID, serverID)
	}

	if err := s.remote.UpdateTask(ctx, committed.ID, committed.Text); err != nil {
		s.mu.Lock()
		_ = s.board.SetItemText(collectionID, committed.ID, prevText)
		s.mu.Unlock()
		s.logger.Warn("update task failed; rolled back", "item", committed.ID, "err", err)
		return err
	}
	return nil
}

// DeleteItem removes the item optimistically; backend failure restores it.
func (s *Lists) DeleteItem(ctx context.Context, collectionID, itemID string) error {
	unlock := s.locks.lock(itemID)
	defer unlock()

	s.mu.Lock()
	removed, at, err := s.board.RemoveItem(collectionID, itemID)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if removed.ID == "" {
		return nil // already gone; second delete is a no-op
	}
	if board.IsPending(removed.ID) {
		return nil
	}
	if err := s.remote.DeleteTask(ctx, removed.ID); err != nil {
		s.mu.Lock()
		_ = s.board.RestoreItem(collectionID, removed, at)
		s.mu.Unlock()
		s.logger.Warn("delete task failed; restored", "item", itemID, "err", err)
		return err
	}
	return nil
}

// ToggleItem flips completion optimistically and confirms with the backend,
// rolling the flag back on failure. Toggles on the locked habits collection
// are local-only: the fixed list never leaves the client.
func (s *Lists) ToggleItem(ctx context.Context, collectionID, itemID string) (bool, error) {
	unlock := s.locks.lock(itemID)
	defer unlock()

	s.mu.Lock()
	c, ok := s.board.Find(collectionID)
	if !ok {
		s.mu.Unlock()
		return false, board.NotFoundError{Kind: "collection", ID: collectionID}
	}
	localOnly := c.Locked || board.IsPending(itemID)
	done, err := s.board.ToggleItem(collectionID, itemID)
	s.mu.Unlock()
	if err != nil {
		return false, err
	}
	if localOnly {
		return done, nil
	}

	if err := s.remote.ToggleTask(ctx, itemID, done); err != nil {
		s.mu.Lock()
		_, _ = s.board.ToggleItem(collectionID, itemID)
		s.mu.Unlock()
		s.logger.Warn("toggle failed; rolled back", "item", itemID, "err", err)
		return !done, err
	}
	return done, nil
}
