package api

import (
	"context"
	"sync"

	"github.com/posetrank/posetrank/pkg/errors"
)

// MemoryStore keeps analyses in process memory. It is the default store for
// single-instance deployments and tests; analyses do not survive restarts.
type MemoryStore struct {
	mu       sync.RWMutex
	analyses map[string]*Analysis
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{analyses: make(map[string]*Analysis)}
}

// Put stores an analysis under its ID.
func (s *MemoryStore) Put(_ context.Context, a *Analysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses[a.ID] = a
	return nil
}

// Get retrieves an analysis by ID.
func (s *MemoryStore) Get(_ context.Context, id string) (*Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.analyses[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeAnalysisNotFound, "analysis %s not found", id)
	}
	return a, nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close(context.Context) error { return nil }
