package cli

import "fmt"

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type notTrashedError struct {
	id string
}

func (e notTrashedError) Error() string {
	return fmt.Sprintf("journal entry %s is not in the trash; run `momentum journal trash %s` first", e.id, e.id)
}

func errNotTrashed(id string) error {
	return notTrashedError{id: id}
}
