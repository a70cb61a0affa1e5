package driving

import (
	"context"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

// SearchService maintains the document index and answers queries.
type SearchService interface {
	// IndexDocument adds or replaces the entry for a document.
	IndexDocument(ctx context.Context, id, title, content string, analysis *domain.AnalysisResult, metadata map[string]any) error

	// UpdateIndex replaces entry fields, regenerating the embedding only
	// if content changed. Returns domain.ErrNotFound for unknown ids.
	UpdateIndex(ctx context.Context, id, title, content string, analysis *domain.AnalysisResult, metadata map[string]any) error

	// RemoveFromIndex hard-deletes an entry.
	RemoveFromIndex(ctx context.Context, id string) error

	// Search runs the full query pipeline: enhancement, scoring,
	// filtering, ranking, faceting. An empty index returns an empty,
	// well-formed result set.
	Search(ctx context.Context, query domain.SmartSearchQuery) (*domain.SmartSearchResults, error)

	// FindSimilar returns documents similar to the given one, filtered
	// by threshold and optional category allow-list.
	// Returns domain.ErrNotFound for unknown ids.
	FindSimilar(ctx context.Context, id string, opts domain.SimilarityOptions) ([]domain.SearchResult, error)

	// Recommendations derives expiring-document, trending-category, and
	// (when relatedTo is non-empty) similar-document recommendations.
	// Never stored; recomputed per call.
	Recommendations(ctx context.Context, relatedTo string) ([]domain.DocumentRecommendation, error)

	// Suggestions returns completion candidates for a partial query from
	// indexed titles, tags, and category names.
	Suggestions(ctx context.Context, partial string) ([]domain.QuerySuggestion, error)
}
