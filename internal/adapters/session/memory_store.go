package session

import (
	"context"
	"errors"
	"sync"

	"epsg-finder-service/internal/domain"
	"epsg-finder-service/internal/ports"
)

// In-memory ResultStore. Results live for the process lifetime, so this
// suits single-instance deployments and tests.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]domain.ResolutionResult
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]domain.ResolutionResult)}
}

// Replace the stored resolution for the session.
func (s *MemoryStore) Save(ctx context.Context, sessionID string, res domain.ResolutionResult) error {
	if sessionID == "" {
		return errors.New("result store: session id must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[sessionID] = res
	return nil
}

// Return the stored resolution, or ErrNoResult when nothing is stored.
func (s *MemoryStore) Get(ctx context.Context, sessionID string) (domain.ResolutionResult, error) {
	if sessionID == "" {
		return domain.ResolutionResult{}, errors.New("result store: session id must not be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.m[sessionID]
	if !ok {
		return domain.ResolutionResult{}, ports.ErrNoResult
	}
	return res, nil
}

// Drop the stored resolution.
func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return errors.New("result store: session id must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, sessionID)
	return nil
}
