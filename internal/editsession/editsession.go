// Package editsession implements the per-record optimistic edit flow shared
// by the sales and deposit list views: view, edit into a buffer, then commit
// through the backend or discard.
package editsession

import (
	"context"
	"sync"

	"github.com/kunalgarg/bahi/internal/common"
)

// State of a record with respect to editing.
type State int

// A record is either being viewed or has an edit in progress.
const (
	Viewing State = iota
	Editing
)

// Editor tracks at most one edit buffer per record id. Holding a single
// buffer slot per id is what enforces single-writer-per-record; edits to
// different records are independent.
type Editor[P any] struct {
	mu       sync.Mutex
	sessions map[int64]*P
}

// NewEditor creates an Editor for one record kind.
func NewEditor[P any]() *Editor[P] {
	return &Editor[P]{sessions: make(map[int64]*P)}
}

// State returns the edit state of the record with the given id.
func (e *Editor[P]) State(id int64) State {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.sessions[id]; ok {
		return Editing
	}
	return Viewing
}

// Begin starts an edit for the record, snapshotting its mutable fields into
// a fresh buffer and returning it for in-place mutation. Beginning while an
// edit is already in progress is a no-op that returns the existing buffer.
func (e *Editor[P]) Begin(id int64, snapshot P) *P {
	e.mu.Lock()
	defer e.mu.Unlock()
	if buf, ok := e.sessions[id]; ok {
		return buf
	}
	buf := &snapshot
	e.sessions[id] = buf
	return buf
}

// Buffer returns the in-progress buffer for the record, if any.
func (e *Editor[P]) Buffer(id int64) (*P, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	buf, ok := e.sessions[id]
	return buf, ok
}

// Discard drops the buffer, leaving the record's stored fields exactly as
// they were before the edit began.
func (e *Editor[P]) Discard(id int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.sessions[id]; !ok {
		return common.NewValidationError("no edit in progress")
	}
	delete(e.sessions, id)
	return nil
}

// Commit validates the buffer, issues the write, and only on a successful
// response applies the buffered values via apply and returns the record to
// the viewing state. A validation failure or a failed write leaves the
// session editing with the buffer intact so the user can retry or discard.
func (e *Editor[P]) Commit(ctx context.Context, id int64, validate func(P) error, write func(context.Context, P) error, apply func(P)) error {
	e.mu.Lock()
	buf, ok := e.sessions[id]
	e.mu.Unlock()
	if !ok {
		return common.NewValidationError("no edit in progress")
	}

	if err := validate(*buf); err != nil {
		return err
	}

	if err := write(ctx, *buf); err != nil {
		return err
	}

	apply(*buf)

	e.mu.Lock()
	delete(e.sessions, id)
	e.mu.Unlock()
	return nil
}
