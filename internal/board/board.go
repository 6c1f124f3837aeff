// Package board holds the in-memory collection/item tree for one view and
// the pure mutations over it. It does no I/O: optimistic application and
// rollback against the backend are layered on top by internal/sync.
package board

import (
	"strings"

	"momentum-cli/internal/model"
)

// Board is an ordered list of collections, each with an ordered list of
// items. A board is owned by exactly one view; it is not safe for concurrent
// use without external locking.
type Board struct {
	Collections []model.Collection
}

// New returns a board seeded with the given collections.
func New(cols ...model.Collection) *Board {
	b := &Board{}
	b.Collections = append(b.Collections, cols...)
	return b
}

// Find returns a pointer into the board for the given collection id.
func (b *Board) Find(collectionID string) (*model.Collection, bool) {
	for i := range b.Collections {
		if b.Collections[i].ID == collectionID {
			return &b.Collections[i], true
		}
	}
	return nil, false
}

func (b *Board) findItem(c *model.Collection, itemID string) (int, bool) {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return i, true
		}
	}
	return -1, false
}

// CreateCollection appends a new collection with a provisional id and no
// items. The title must not trim to empty.
func (b *Board) CreateCollection(title string) (*model.Collection, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	b.Collections = append(b.Collections, model.Collection{
		ID:    NewPendingID(),
		Title: title,
	})
	return &b.Collections[len(b.Collections)-1], nil
}

// ConfirmCollection replaces a provisional collection id with the id the
// server assigned.
func (b *Board) ConfirmCollection(provisionalID, serverID string) error {
	c, ok := b.Find(provisionalID)
	if !ok {
		return NotFoundError{Kind: "collection", ID: provisionalID}
	}
	c.ID = serverID
	return nil
}

// RemoveCollection removes the collection and returns it with its position so
// the caller can restore it on backend failure. Locked collections cannot be
// removed.
func (b *Board) RemoveCollection(collectionID string) (model.Collection, int, error) {
	for i := range b.Collections {
		if b.Collections[i].ID != collectionID {
			continue
		}
		if b.Collections[i].Locked {
			return model.Collection{}, -1, LockedError{CollectionID: collectionID}
		}
		removed := b.Collections[i]
		b.Collections = append(b.Collections[:i], b.Collections[i+1:]...)
		return removed, i, nil
	}
	return model.Collection{}, -1, NotFoundError{Kind: "collection", ID: collectionID}
}

// RestoreCollection reinserts a previously removed collection at its old
// position (rollback of RemoveCollection).
func (b *Board) RestoreCollection(c model.Collection, at int) {
	if at < 0 || at > len(b.Collections) {
		at = len(b.Collections)
	}
	b.Collections = append(b.Collections, model.Collection{})
	copy(b.Collections[at+1:], b.Collections[at:])
	b.Collections[at] = c
}

// AddItem appends a fresh empty item in edit mode so the caller can type a
// value before the first persist. The new item becomes the board's only item
// in edit mode.
func (b *Board) AddItem(collectionID string) (*model.Item, error) {
	c, ok := b.Find(collectionID)
	if !ok {
		return nil, NotFoundError{Kind: "collection", ID: collectionID}
	}
	if c.Locked {
		return nil, LockedError{CollectionID: collectionID}
	}
	b.clearEditing()
	c.Items = append(c.Items, model.Item{
		ID:      NewPendingID(),
		Editing: true,
	})
	return &c.Items[len(c.Items)-1], nil
}

// ConfirmItem replaces a provisional item id with the server-assigned id.
func (b *Board) ConfirmItem(collectionID, provisionalID, serverID string) error {
	c, ok := b.Find(collectionID)
	if !ok {
		return NotFoundError{Kind: "collection", ID: collectionID}
	}
	i, ok := b.findItem(c, provisionalID)
	if !ok {
		return NotFoundError{Kind: "item", ID: provisionalID}
	}
	c.Items[i].ID = serverID
	return nil
}

// BeginEdit puts the item in edit mode and takes every other item out of it:
// at most one edit field is open across the whole board.
func (b *Board) BeginEdit(collectionID, itemID string) error {
	c, ok := b.Find(collectionID)
	if !ok {
		return NotFoundError{Kind: "collection", ID: collectionID}
	}
	if c.Locked {
		return LockedError{CollectionID: collectionID}
	}
	i, ok := b.findItem(c, itemID)
	if !ok {
		return NotFoundError{Kind: "item", ID: itemID}
	}
	b.clearEditing()
	c.Items[i].Editing = true
	return nil
}

// CommitResult describes the outcome of CommitEdit. When Removed is true the
// commit text trimmed to empty and the item was deleted instead of saved
// (abandon-empty-edit). Otherwise Item points at the committed item and
// PrevText carries the pre-commit text for rollback.
type CommitResult struct {
	Removed     bool
	RemovedItem model.Item
	RemovedAt   int
	Item        *model.Item
	PrevText    string
}

// CommitEdit ends the item's edit mode with the given text. Empty trimmed
// text deletes the item instead of saving it.
func (b *Board) CommitEdit(collectionID, itemID, text string) (CommitResult, error) {
	c, ok := b.Find(collectionID)
	if !ok {
		return CommitResult{}, NotFoundError{Kind: "collection", ID: collectionID}
	}
	if c.Locked {
		return CommitResult{}, LockedError{CollectionID: collectionID}
	}
	i, ok := b.findItem(c, itemID)
	if !ok {
		return CommitResult{}, NotFoundError{Kind: "item", ID: itemID}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		removed, at, err := b.RemoveItem(collectionID, itemID)
		if err != nil {
			return CommitResult{}, err
		}
		return CommitResult{Removed: true, RemovedItem: removed, RemovedAt: at}, nil
	}
	prev := c.Items[i].Text
	c.Items[i].Text = text
	c.Items[i].Editing = false
	return CommitResult{Item: &c.Items[i], PrevText: prev}, nil
}

// SetItemText overwrites the item text (rollback of a committed edit).
func (b *Board) SetItemText(collectionID, itemID, text string) error {
	c, ok := b.Find(collectionID)
	if !ok {
		return NotFoundError{Kind: "collection", ID: collectionID}
	}
	i, ok := b.findItem(c, itemID)
	if !ok {
		return NotFoundError{Kind: "item", ID: itemID}
	}
	c.Items[i].Text = text
	return nil
}

// RemoveItem removes the item and returns it with its position for rollback.
// Removing an already-removed item is a no-op (removed=zero, at=-1, nil
// error), which makes the abandon-empty-edit path idempotent.
func (b *Board) RemoveItem(collectionID, itemID string) (model.Item, int, error) {
	c, ok := b.Find(collectionID)
	if !ok {
		return model.Item{}, -1, NotFoundError{Kind: "collection", ID: collectionID}
	}
	if c.Locked {
		return model.Item{}, -1, LockedError{CollectionID: collectionID}
	}
	i, ok := b.findItem(c, itemID)
	if !ok {
		return model.Item{}, -1, nil
	}
	removed := c.Items[i]
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return removed, i, nil
}

// RestoreItem reinserts a removed item at its old position (rollback of
// RemoveItem).
func (b *Board) RestoreItem(collectionID string, it model.Item, at int) error {
	c, ok := b.Find(collectionID)
	if !ok {
		return NotFoundError{Kind: "collection", ID: collectionID}
	}
	if at < 0 || at > len(c.Items) {
		at = len(c.Items)
	}
	c.Items = append(c.Items, model.Item{})
	copy(c.Items[at+1:], c.Items[at:])
	c.Items[at] = it
	return nil
}

// ToggleItem flips the item's completed flag and returns the new value.
// This is the one mutation locked collections allow.
func (b *Board) ToggleItem(collectionID, itemID string) (bool, error) {
	c, ok := b.Find(collectionID)
	if !ok {
		return false, NotFoundError{Kind: "collection", ID: collectionID}
	}
	i, ok := b.findItem(c, itemID)
	if !ok {
		return false, NotFoundError{Kind: "item", ID: itemID}
	}
	c.Items[i].Completed = !c.Items[i].Completed
	return c.Items[i].Completed, nil
}

// Editing returns the collection and item ids of the open edit field, if any.
func (b *Board) Editing() (collectionID, itemID string, ok bool) {
	for ci := range b.Collections {
		for ii := range b.Collections[ci].Items {
			if b.Collections[ci].Items[ii].Editing {
				return b.Collections[ci].ID, b.Collections[ci].Items[ii].ID, true
			}
		}
	}
	return "", "", false
}

func (b *Board) clearEditing() {
	for ci := range b.Collections {
		for ii := range b.Collections[ci].Items {
			b.Collections[ci].Items[ii].Editing = false
		}
	}
}
