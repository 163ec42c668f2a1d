// Package session keeps extracted results between the upload call and
// the explain/ask/summary calls that follow it. State is explicit: a
// session ID issued at upload is presented by the client on later
// requests, nothing reads ambient globals.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/labdecoder/labdecoder/internal/extract"
)

// DefaultTTL is how long a session survives without being touched.
const DefaultTTL = 30 * time.Minute

type entry struct {
	results  []extract.LabResult
	lastSeen time.Time
}

// Store is an in-memory session store. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a store with the given TTL (0 uses DefaultTTL).
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Put stores results under a fresh session ID and returns the ID.
func (s *Store) Put(results []extract.LabResult) string {
	id := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.sessions[id] = &entry{results: results, lastSeen: s.now()}
	return id
}

// Get returns the results for a session and refreshes its TTL.
func (s *Store) Get(id string) ([]extract.LabResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.lastSeen) > s.ttl {
		delete(s.sessions, id)
		return nil, false
	}
	e.lastSeen = s.now()
	return e.results, true
}

// Delete removes a session. Deleting an unknown ID is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// sweepLocked drops expired sessions. Caller must hold the write lock.
func (s *Store) sweepLocked() {
	cutoff := s.now().Add(-s.ttl)
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
