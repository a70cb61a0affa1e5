package driven

import (
	"context"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

// RuleStore persists categorization rule sets.
// The persisted form is the JSON-serialisable domain.RuleBag.
type RuleStore interface {
	// SaveBag stores the complete rule bag, replacing any previous one.
	SaveBag(ctx context.Context, bag *domain.RuleBag) error

	// LoadBag retrieves the stored rule bag.
	// Returns domain.ErrNotFound if nothing has been saved.
	LoadBag(ctx context.Context) (*domain.RuleBag, error)

	// Close releases resources.
	Close() error
}
