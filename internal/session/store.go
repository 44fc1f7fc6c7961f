package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned for unknown or expired session IDs.
var ErrNotFound = errors.New("session not found")

type entry[T any] struct {
	value    *T
	lastUsed time.Time
}

// Store keeps one value per session and expires sessions idle for longer
// than the TTL. All access to a value goes through Do, which holds the
// store lock for the duration of the callback.
type Store[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	newFn   func() *T
	now     func() time.Time
	entries map[string]*entry[T]
}

// NewStore creates a store that builds new values with newFn. A ttl of zero
// disables expiry.
func NewStore[T any](ttl time.Duration, newFn func() *T) *Store[T] {
	return &Store[T]{
		ttl:     ttl,
		newFn:   newFn,
		now:     time.Now,
		entries: make(map[string]*entry[T]),
	}
}

// Create starts a new session and returns its ID.
func (s *Store[T]) Create() string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[id] = &entry[T]{value: s.newFn(), lastUsed: s.now()}
	return id
}

// Do runs fn against the session's value and marks the session used.
func (s *Store[T]) Do(id string, fn func(*T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || s.expired(e) {
		delete(s.entries, id)
		return ErrNotFound
	}

	e.lastUsed = s.now()
	return fn(e.value)
}

// Delete ends a session.
func (s *Store[T]) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

// Len returns the number of sessions, including any not yet swept.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// Sweep removes expired sessions and returns how many were removed.
func (s *Store[T]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

func (s *Store[T]) expired(e *entry[T]) bool {
	return s.ttl > 0 && s.now().Sub(e.lastUsed) > s.ttl
}
