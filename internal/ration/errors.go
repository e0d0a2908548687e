package ration

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the model. Use errors.Is to classify.
var (
	// ErrValidation marks a proposed value that violates a field constraint.
	// The ration is left unchanged.
	ErrValidation = errors.New("validation failed")

	// ErrPersistence marks a failure to read or write the stored snapshot.
	// The in-memory ration stays authoritative.
	ErrPersistence = errors.New("persistence failed")

	// ErrInvariant marks an internal consistency check that should never fire.
	ErrInvariant = errors.New("invariant violated")
)

// ValidationError describes a rejected edit.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Reason, e.Value)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// PersistenceError wraps a store failure.
type PersistenceError struct {
	Op  string // "load" or "save"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s snapshot: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// InvariantViolation reports a broken internal invariant.
type InvariantViolation struct {
	Detail string
}

func (e *InvariantViolation) Error() string {
	return "invariant violated: " + e.Detail
}

func (e *InvariantViolation) Is(target error) bool { return target == ErrInvariant }

func invalid(field string, value any, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}
