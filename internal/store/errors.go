package store

import "fmt"

// NotFoundError indicates a lookup for an id that no longer exists.
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}
