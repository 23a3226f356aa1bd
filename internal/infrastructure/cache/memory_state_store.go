package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStateStore implements accounting.StateStore in process memory.
// Intended for development and tests; state does not survive restarts
// and is not shared across instances.
type MemoryStateStore struct {
	mu     sync.Mutex
	states map[string]time.Time
}

// NewMemoryStateStore creates an in-memory state store
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{
		states: make(map[string]time.Time),
	}
}

// Save stores the state with the given TTL
func (s *MemoryStateStore) Save(_ context.Context, state string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state] = time.Now().Add(ttl)
	return nil
}

// Consume removes the state and reports whether it existed and had not expired
func (s *MemoryStateStore) Consume(_ context.Context, state string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.states[state]
	if !ok {
		return false, nil
	}
	delete(s.states, state)
	if time.Now().After(expiry) {
		return false, nil
	}
	return true, nil
}
