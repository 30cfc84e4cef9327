package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies validation and persistence failures.
type ErrorKind string

const (
	InvalidAmount ErrorKind = "invalid_amount"
	InvalidDate   ErrorKind = "invalid_date"

	LoadFailure  ErrorKind = "load_failure"
	WriteFailure ErrorKind = "write_failure"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrLoadFailure   = errors.New("load failure")
	ErrWriteFailure  = errors.New("write failure")
)

// ValidationError reports malformed user input. It aborts the operation
// in progress before anything is written.
type ValidationError struct {
	Kind  ErrorKind
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %q", e.Kind, e.Field, e.Value)
}

// Is lets errors.Is match the sentinel for the error's kind.
func (e *ValidationError) Is(target error) bool {
	switch e.Kind {
	case InvalidAmount:
		return target == ErrInvalidAmount
	case InvalidDate:
		return target == ErrInvalidDate
	}
	return false
}


// PersistenceError reports an I/O failure against one of the stores.
// Writes already performed against other stores are not undone.
type PersistenceError struct {
	Kind  ErrorKind
	Store string
	Path  string
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s store %s: %v", e.Kind, e.Store, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	switch e.Kind {
	case LoadFailure:
		return target == ErrLoadFailure
	case WriteFailure:
		return target == ErrWriteFailure
	}
	return false
}

// NewLoadError wraps err as a LoadFailure for the named store.
func NewLoadError(store, path string, err error) error {
	return &PersistenceError{Kind: LoadFailure, Store: store, Path: path, Err: err}
}

// NewWriteError wraps err as a WriteFailure for the named store.
func NewWriteError(store, path string, err error) error {
	return &PersistenceError{Kind: WriteFailure, Store: store, Path: path, Err: err}
}
