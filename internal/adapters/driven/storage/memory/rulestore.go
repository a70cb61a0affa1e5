package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/docmind/internal/core/domain"
	"github.com/custodia-labs/docmind/internal/core/ports/driven"
)

// Ensure RuleStore implements the interface.
var _ driven.RuleStore = (*RuleStore)(nil)

// RuleStore is an in-memory implementation of driven.RuleStore.
type RuleStore struct {
	mu  sync.RWMutex
	bag *domain.RuleBag
}

// NewRuleStore creates a new in-memory rule store.
func NewRuleStore() *RuleStore {
	return &RuleStore{}
}

// SaveBag stores the complete rule bag, replacing any previous one.
func (s *RuleStore) SaveBag(_ context.Context, bag *domain.RuleBag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bag = copyBag(bag)
	return nil
}

// LoadBag retrieves the stored rule bag.
func (s *RuleStore) LoadBag(_ context.Context) (*domain.RuleBag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.bag == nil {
		return nil, domain.ErrNotFound
	}
	return copyBag(s.bag), nil
}

// copyBag deep-copies the bag. Pattern and keyword slices are copied
// per rule so callers cannot alias stored state through a saved or
// loaded bag.
func copyBag(bag *domain.RuleBag) *domain.RuleBag {
	copied := &domain.RuleBag{
		Rules: make([]domain.CategoryRule, len(bag.Rules)),
	}
	for i, rule := range bag.Rules {
		rule.Patterns = append([]domain.CategoryPattern(nil), rule.Patterns...)
		for j, pattern := range rule.Patterns {
			if pattern.Keywords != nil {
				rule.Patterns[j].Keywords = append([]string(nil), pattern.Keywords...)
			}
		}
		copied.Rules[i] = rule
	}
	if bag.CustomCategories != nil {
		copied.CustomCategories = make(map[string]domain.Category, len(bag.CustomCategories))
		for id, category := range bag.CustomCategories {
			copied.CustomCategories[id] = category
		}
	}
	return copied
}

// Close releases resources. A no-op for the in-memory store.
func (s *RuleStore) Close() error {
	return nil
}
