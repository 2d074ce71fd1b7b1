package store

import (
	"errors"
	"fmt"
	"strings"
)

// UserError is a field-level rejection reported by the store.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
	Code    string   `json:"code,omitempty"`
}

func (e UserError) String() string {
	if len(e.Field) == 0 {
		return e.Message
	}
	return strings.Join(e.Field, ".") + ": " + e.Message
}

// ValidationConflictError is returned when a write is rejected with user errors.
type ValidationConflictError struct {
	Operation  string
	Payload    any
	UserErrors []UserError
}

func (e *ValidationConflictError) Error() string {
	msgs := make([]string, 0, len(e.UserErrors))
	for _, ue := range e.UserErrors {
		msgs = append(msgs, ue.String())
	}
	return fmt.Sprintf("%s rejected: %s", e.Operation, strings.Join(msgs, "; "))
}

// CheckUserErrors wraps non-empty user errors into a ValidationConflictError.
func CheckUserErrors(operation string, payload any, userErrors []UserError) error {
	if len(userErrors) == 0 {
		return nil
	}
	return &ValidationConflictError{Operation: operation, Payload: payload, UserErrors: userErrors}
}

// IsValidationConflict reports whether err is a ValidationConflictError.
func IsValidationConflict(err error) bool {
	var conflict *ValidationConflictError
	return errors.As(err, &conflict)
}
