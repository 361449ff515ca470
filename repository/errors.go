package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound reports an absent entity. Controllers map it to 404.
var ErrNotFound = errors.New("not found")

// ValidationError is malformed caller input: bad id format, bad date
// format, missing required field, status change without an actor.
// Controllers map it to 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ConsistencyError means a cross-collection move was left in a state that
// needs operator attention (the compensating delete failed, so a document
// may exist in both collections). Never swallowed.
type ConsistencyError struct {
	CaseID string
	Err    error
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("consistency violation for case %s: %v", e.CaseID, e.Err)
}

func (e *ConsistencyError) Unwrap() error { return e.Err }
