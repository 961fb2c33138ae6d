// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
	"strings"
)

// Common application errors.
var (
	// Cache errors.
	ErrNotLoaded = errors.New("client cache not loaded")

	// Backend errors.
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrUnauthorized       = errors.New("unauthorized")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ValidationError reports bad or contradictory user input. It is always
// recoverable: the caller's state is unchanged and the operation may be
// retried with corrected input.
type ValidationError struct {
	Msg    string
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Msg
	}
	return fmt.Sprintf("%s (fields: %s)", e.Msg, strings.Join(e.Fields, ", "))
}

// NewValidationError creates a ValidationError naming the offending fields.
func NewValidationError(msg string, fields ...string) error {
	return &ValidationError{Msg: msg, Fields: fields}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// FetchError reports a failed backend read. The local snapshot is left at its
// last known value.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NewFetchError wraps a backend read failure.
func NewFetchError(op string, err error) error {
	return &FetchError{Op: op, Err: err}
}

// IsFetch reports whether err is a FetchError.
func IsFetch(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// WriteError reports a failed backend create, update, or delete. The record
// under edit is left untouched so the user can retry or discard.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// NewWriteError wraps a backend write failure.
func NewWriteError(op string, err error) error {
	return &WriteError{Op: op, Err: err}
}

// IsWrite reports whether err is a WriteError.
func IsWrite(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}
