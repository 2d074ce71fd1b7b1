package shopify

import (
	"errors"
	"fmt"
	"strings"
)

// GraphQLError is one entry of the top-level "errors" array.
type GraphQLError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Code returns extensions.code, if any.
func (e GraphQLError) Code() string {
	if code, ok := e.Extensions["code"].(string); ok {
		return code
	}
	return ""
}

// RequestError is returned when the API answers with top-level GraphQL errors.
type RequestError struct {
	Operation string
	Errors    []GraphQLError
}

func (e *RequestError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ge := range e.Errors {
		msgs = append(msgs, ge.Message)
	}
	return fmt.Sprintf("shopify %s failed: %s", e.Operation, strings.Join(msgs, "; "))
}

// Throttled reports whether the request was rejected by the cost limiter.
func (e *RequestError) Throttled() bool {
	for _, ge := range e.Errors {
		if ge.Code() == "THROTTLED" {
			return true
		}
	}
	return false
}

// StatusError is returned for non-2xx HTTP responses.
type StatusError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("shopify %s returned status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// IsThrottled reports whether err is a throttling rejection that may be retried.
func IsThrottled(err error) bool {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Throttled()
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode == 429
	}
	return false
}
