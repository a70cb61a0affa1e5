package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/docmind/internal/core/domain"
	"github.com/custodia-labs/docmind/internal/core/ports/driven"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore is an in-memory implementation of driven.IndexStore.
type IndexStore struct {
	mu      sync.RWMutex
	entries map[string]domain.IndexEntry
}

// NewIndexStore creates a new in-memory index store.
func NewIndexStore() *IndexStore {
	return &IndexStore{
		entries: make(map[string]domain.IndexEntry),
	}
}

// Save stores or replaces an index entry.
func (s *IndexStore) Save(_ context.Context, entry *domain.IndexEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.DocumentID] = *entry
	return nil
}

// Get retrieves an entry by document id.
func (s *IndexStore) Get(_ context.Context, documentID string) (*domain.IndexEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[documentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entry, nil
}

// Delete removes an entry. Deleting a missing id is not an error.
func (s *IndexStore) Delete(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, documentID)
	return nil
}

// List returns all entries.
func (s *IndexStore) List(_ context.Context) ([]domain.IndexEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]domain.IndexEntry, 0, len(s.entries))
	for id := range s.entries {
		entries = append(entries, s.entries[id])
	}
	return entries, nil
}

// Count returns the number of entries.
func (s *IndexStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}
