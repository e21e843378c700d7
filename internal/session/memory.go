package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	userID  uint
	expires time.Time
}

// MemoryStore is an in-process session store for development and tests.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memoryEntry)}
}

// Save stores the session with the given TTL.
func (s *MemoryStore) Save(_ context.Context, sessionID string, userID uint, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = memoryEntry{userID: userID, expires: time.Now().Add(ttl)}
	return nil
}

// Get returns the user ID of a live session, or ErrNotFound.
func (s *MemoryStore) Get(_ context.Context, sessionID string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[sessionID]
	if !ok {
		return 0, ErrNotFound
	}
	if time.Now().After(entry.expires) {
		delete(s.sessions, sessionID)
		return 0, ErrNotFound
	}
	return entry.userID, nil
}

// Delete removes the session.
func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
