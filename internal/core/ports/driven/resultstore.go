package driven

import (
	"context"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

// ResultStore caches analysis results keyed by a content-derived hash.
//
// The cache is an explicit, injectable store so tests can supply an
// in-memory fake and production can swap in a concurrent-safe or
// externally backed store without touching call sites.
type ResultStore interface {
	// Get retrieves a cached result. Returns domain.ErrNotFound on miss.
	Get(ctx context.Context, key string) (*domain.AnalysisResult, error)

	// Set stores a result under the given key.
	Set(ctx context.Context, key string, result *domain.AnalysisResult) error

	// Delete removes a cached result. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns all cache keys.
	Keys(ctx context.Context) ([]string, error)
}
