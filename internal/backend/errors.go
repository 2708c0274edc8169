package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSelection is returned when a team pair can never be predicted:
	// equal, empty or unknown names.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrNotFound is returned when the backend has no record for the requested team.
	ErrNotFound = errors.New("not found")
	// ErrServiceUnavailable is returned on transport errors and backend failures.
	ErrServiceUnavailable = errors.New("service unavailable")
)

// APIError describes a failed backend call. It unwraps to one of the sentinel errors above.
type APIError struct {
	Op     string
	Status int
	Detail string
	Kind   error
	Err    error
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *APIError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Kind returns the sentinel classifying err, or nil when err did not come from this package.
func Kind(err error) error {
	for _, kind := range []error{ErrInvalidSelection, ErrNotFound, ErrServiceUnavailable} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
