package session

import (
	"context"
	"sync"
)

// Storage keys, matching the contract the original browser client kept in
// localStorage. KeyUserRole is an opportunistic hint only; the resolver
// always re-derives the role from the token.
const (
	KeyToken    = "token"
	KeyUserRole = "userRole"
)

// Store persists string values per browser session. A missing value is
// ("", nil), not an error.
type Store interface {
	Get(ctx context.Context, sessionID, key string) (string, error)
	Set(ctx context.Context, sessionID, key, value string) error
	Delete(ctx context.Context, sessionID string, keys ...string) error
}

// MemoryStore keeps sessions in process memory. Used by tests and as the
// default for single-instance deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sessionID][key], nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions[sessionID] == nil {
		s.sessions[sessionID] = make(map[string]string)
	}
	s.sessions[sessionID][key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values := s.sessions[sessionID]
	for _, key := range keys {
		delete(values, key)
	}
	if len(values) == 0 {
		delete(s.sessions, sessionID)
	}
	return nil
}
