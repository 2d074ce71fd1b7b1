package reconcile

import (
	"errors"
	"fmt"
)

// Side names which of the two stores a lookup ran against.
type Side string

const (
	SideSource Side = "source"
	SideTarget Side = "target"
)

// NotFoundError means no entity with the cross-system key exists on Side.
type NotFoundError struct {
	Kind string
	Key  string
	Side Side
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found at %s", e.Kind, e.Key, e.Side)
}

// IsNotFound reports whether err wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
