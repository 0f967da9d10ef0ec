// Package oauthstate keeps issued OAuth CSRF state strings in an expiring
// keyed store owned by a single service object. No process-global state.
package oauthstate

import (
	"sync"
	"time"
)

// DefaultTTL bounds how long a login redirect may stay pending.
const DefaultTTL = 10 * time.Minute

// Store is a TTL map for one-shot state strings. Entries are consumed on
// first use and swept lazily on access.
type Store struct {
	mu  sync.Mutex
	ttl time.Duration

	entries map[string]time.Time // state -> expiry
}

// NewStore creates a Store whose entries expire after ttl.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:     ttl,
		entries: make(map[string]time.Time),
	}
}

// Put records a state string until its TTL elapses.
func (s *Store) Put(state string) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(now)
	s.entries[state] = now.Add(s.ttl)
}

// Consume removes the state and reports whether it was present and fresh.
func (s *Store) Consume(state string) bool {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.entries[state]
	if !ok {
		return false
	}
	delete(s.entries, state)
	return now.Before(expiry)
}

// sweepLocked drops expired entries. Callers hold the mutex.
func (s *Store) sweepLocked(now time.Time) {
	for state, expiry := range s.entries {
		if !now.Before(expiry) {
			delete(s.entries, state)
		}
	}
}
