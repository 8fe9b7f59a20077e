package finance

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced payment, student or class does
// not exist.
var ErrNotFound = errors.New("record not found")

// ValidationError reports rejected input, such as a malformed month label.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// StoreError wraps a backend failure so callers can distinguish store I/O
// problems from domain errors.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
