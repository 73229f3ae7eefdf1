package scheduling

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOutcome = errors.New("invalid review outcome")
	ErrInvalidInput   = errors.New("invalid review input")
	ErrItemArchived   = errors.New("item is archived")
)

// ValidationError reports a caller-supplied value that was rejected before scheduling.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Field, e.Reason, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
