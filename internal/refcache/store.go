// Package refcache holds the process-wide reference data shared by every
// view: a generic in-memory record store and the client cache built on it.
package refcache

import "sync"

// Store is a concurrency-safe in-memory holder for a list of records of one
// kind. Reads hand out copies; the held list is never aliased to callers.
type Store[T any] struct {
	mu    sync.RWMutex
	items []T
}

// Get returns a snapshot copy of the current list. It is never nil.
func (s *Store[T]) Get() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Replace swaps the whole list for a new one.
func (s *Store[T]) Replace(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]T, len(items))
	copy(s.items, items)
}

// Append adds a record at the end of the list.
func (s *Store[T]) Append(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
}

// Remove drops every record matching the predicate, preserving order of the
// rest.
func (s *Store[T]) Remove(match func(T) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, item := range s.items {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	s.items = kept
}

// Len returns the number of held records.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
