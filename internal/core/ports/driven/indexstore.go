package driven

import (
	"context"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

// IndexStore persists search index entries.
// One entry per document id; Save replaces any existing entry.
type IndexStore interface {
	// Save stores or replaces an index entry.
	Save(ctx context.Context, entry *domain.IndexEntry) error

	// Get retrieves an entry by document id.
	// Returns domain.ErrNotFound for unknown ids.
	Get(ctx context.Context, documentID string) (*domain.IndexEntry, error)

	// Delete removes an entry. Deleting a missing id is not an error.
	Delete(ctx context.Context, documentID string) error

	// List returns all entries.
	List(ctx context.Context) ([]domain.IndexEntry, error)

	// Count returns the number of entries.
	Count(ctx context.Context) (int, error)
}
