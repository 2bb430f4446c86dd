package apperrors

import (
	"fmt"
	"strings"
)

// NotFoundError signals that the referenced identifier does not exist.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Resource, e.ID)
}

func NewNotFoundError(resource string, id int64) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConcurrencyConflictError signals that the record was modified by another
// writer since the caller last read it. Recoverable by re-fetch and retry.
type ConcurrencyConflictError struct {
	Resource string
	ID       int64
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("%s with id %d was modified by another request", e.Resource, e.ID)
}

func NewConcurrencyConflictError(resource string, id int64) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{Resource: resource, ID: id}
}

// FieldError is a single violated rule scoped to one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the full set of violated field rules for one
// create/update call, never a partial list.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func NewValidationError(errors []FieldError) *ValidationError {
	return &ValidationError{Errors: errors}
}

// CascadeFailureError wraps a dependent-collection write that failed after
// the triggering write had already committed. It is never returned to the
// original caller; it is surfaced on the observability channel because it
// represents consistency drift.
type CascadeFailureError struct {
	Source string
	Target string
	Err    error
}

func (e *CascadeFailureError) Error() string {
	return fmt.Sprintf("cascade from %s to %s failed: %v", e.Source, e.Target, e.Err)
}

func (e *CascadeFailureError) Unwrap() error {
	return e.Err
}

func NewCascadeFailureError(source, target string, err error) *CascadeFailureError {
	return &CascadeFailureError{Source: source, Target: target, Err: err}
}
