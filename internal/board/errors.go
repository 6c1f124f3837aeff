package board

import (
	"errors"
	"fmt"
)

// ErrEmptyTitle is returned when a create is attempted with a title that
// trims to empty. Callers treat it as a client-side validation failure: no
// remote call is made.
var ErrEmptyTitle = errors.New("title is empty")

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// LockedError is returned when a mutation targets a locked collection.
// Toggling completion is the one mutation a locked collection allows.
type LockedError struct {
	CollectionID string
}

func (e LockedError) Error() string {
	return fmt.Sprintf("collection is locked: %s", e.CollectionID)
}
