package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/docmind/internal/core/domain"
	"github.com/custodia-labs/docmind/internal/core/ports/driven"
)

// Ensure ResultStore implements the interface.
var _ driven.ResultStore = (*ResultStore)(nil)

// ResultStore is an in-memory implementation of driven.ResultStore.
type ResultStore struct {
	mu      sync.RWMutex
	results map[string]domain.AnalysisResult
}

// NewResultStore creates a new in-memory result cache.
func NewResultStore() *ResultStore {
	return &ResultStore{
		results: make(map[string]domain.AnalysisResult),
	}
}

// Get retrieves a cached result by key.
func (s *ResultStore) Get(_ context.Context, key string) (*domain.AnalysisResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &result, nil
}

// Set stores a result under the given key.
func (s *ResultStore) Set(_ context.Context, key string, result *domain.AnalysisResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[key] = *result
	return nil
}

// Delete removes a cached result.
func (s *ResultStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.results, key)
	return nil
}

// Keys returns all cache keys.
func (s *ResultStore) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.results))
	for key := range s.results {
		keys = append(keys, key)
	}
	return keys, nil
}
