package domain

import "time"

// IndexEntry is the stored, searchable representation of one document.
// One entry exists per document id.
type IndexEntry struct {
	// DocumentID is the external document identity, unique in the index.
	DocumentID string `json:"documentId"`

	// Title is the display title.
	Title string `json:"title"`

	// Content is the full document text.
	Content string `json:"content"`

	// Metadata contains arbitrary key-value pairs from the caller.
	Metadata map[string]any `json:"metadata,omitempty"`

	// Tags are the document's labels.
	Tags []string `json:"tags,omitempty"`

	// Analysis is the document's analysis snapshot.
	Analysis AnalysisResult `json:"analysis"`

	// Embedding is the deterministic pseudo-embedding vector.
	// Regenerated only when content changes.
	Embedding []float32 `json:"-"`

	// LastModified is the document's modification time, taken from
	// metadata when supplied, else the indexing time.
	LastModified time.Time `json:"lastModified"`

	// LastIndexed is when the entry was last written.
	LastIndexed time.Time `json:"lastIndexed"`
}

// SortKey selects the ranking dimension for search results.
type SortKey string

// Available sort keys.
const (
	// SortByRelevance orders by relevance score (default).
	SortByRelevance SortKey = "relevance"

	// SortByDate orders by last-modified date.
	SortByDate SortKey = "date"

	// SortByImportance orders by importance tier.
	SortByImportance SortKey = "importance"

	// SortByTitle orders lexicographically by title.
	SortByTitle SortKey = "title"
)

// IsValid returns true if the sort key is recognised.
func (k SortKey) IsValid() bool {
	switch k {
	case SortByRelevance, SortByDate, SortByImportance, SortByTitle:
		return true
	default:
		return false
	}
}

// SortOrder selects ascending or descending ranking.
type SortOrder string

// Available sort orders.
const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// SearchFilters restricts which documents may score.
// A document failing any active filter is excluded entirely.
type SearchFilters struct {
	// Categories restricts to these primary categories.
	Categories []PrimaryCategory `json:"categories,omitempty"`

	// Tags requires all listed tags to be present.
	Tags []string `json:"tags,omitempty"`

	// Importance restricts to these tiers.
	Importance []ImportanceLevel `json:"importance,omitempty"`

	// Sensitivity restricts to these levels.
	Sensitivity []SensitivityLevel `json:"sensitivity,omitempty"`

	// DateKind names the extracted date field the range applies to.
	DateKind DateKind `json:"dateKind,omitempty"`

	// DateFrom is the inclusive range start for DateKind dates.
	DateFrom *time.Time `json:"dateFrom,omitempty"`

	// DateTo is the inclusive range end for DateKind dates.
	DateTo *time.Time `json:"dateTo,omitempty"`

	// HasAmounts requires (or forbids) extracted monetary amounts.
	HasAmounts *bool `json:"hasAmounts,omitempty"`

	// HasPeople requires (or forbids) extracted people.
	HasPeople *bool `json:"hasPeople,omitempty"`

	// HasExpiration requires (or forbids) an expiration-typed date.
	HasExpiration *bool `json:"hasExpiration,omitempty"`
}

// Active returns true if any filter is set.
func (f SearchFilters) Active() bool {
	return len(f.Categories) > 0 || len(f.Tags) > 0 ||
		len(f.Importance) > 0 || len(f.Sensitivity) > 0 ||
		f.DateFrom != nil || f.DateTo != nil ||
		f.HasAmounts != nil || f.HasPeople != nil || f.HasExpiration != nil
}

// SmartSearchQuery is a full search request.
type SmartSearchQuery struct {
	// Query is the raw query string. Never mutated by enhancement.
	Query string `json:"query"`

	// Filters restricts the candidate set.
	Filters SearchFilters `json:"filters,omitempty"`

	// SortBy selects the ranking key. Defaults to relevance.
	SortBy SortKey `json:"sortBy,omitempty"`

	// SortOrder selects the direction. Defaults to descending.
	SortOrder SortOrder `json:"sortOrder,omitempty"`

	// Limit caps the number of returned results. Defaults to 20.
	Limit int `json:"limit,omitempty"`

	// Offset skips leading results for pagination.
	Offset int `json:"offset,omitempty"`
}

// QueryEnhancement tracks query variants alongside the original.
type QueryEnhancement struct {
	// Original is the untouched query string.
	Original string `json:"original"`

	// Expanded holds plural/singular toggles of the original terms.
	Expanded []string `json:"expanded,omitempty"`

	// Synonyms holds synonym-table additions.
	Synonyms []string `json:"synonyms,omitempty"`

	// Corrected is the typo-corrected query, if a correction applied.
	Corrected string `json:"corrected,omitempty"`
}

// SearchResult is a read-only, query-specific projection of an index
// entry. Never stored; regenerated per query.
type SearchResult struct {
	// DocumentID identifies the matched document.
	DocumentID string `json:"documentId"`

	// Title is the document title.
	Title string `json:"title"`

	// RelevanceScore is the query-specific score.
	RelevanceScore float64 `json:"relevanceScore"`

	// MatchedFields names the fields that matched ("title", "content",
	// "tags", "category").
	MatchedFields []string `json:"matchedFields,omitempty"`

	// Excerpts are highlighted snippets around matches.
	Excerpts []string `json:"highlightedExcerpts,omitempty"`

	// Category is the document's category.
	Category Category `json:"category"`

	// Tags are the document's labels.
	Tags []string `json:"tags,omitempty"`

	// Importance is the document's importance tier.
	Importance ImportanceLevel `json:"importance"`

	// LastModified is the document's modification time.
	LastModified time.Time `json:"lastModified"`
}

// FacetCount is one value/count pair within a facet.
type FacetCount struct {
	// Value is the facet value (category name, tag, bucket label).
	Value string `json:"value"`

	// Count is the number of matching documents.
	Count int `json:"count"`
}

// SearchFacets holds independent tallies over the matched set.
type SearchFacets struct {
	Categories []FacetCount `json:"categories,omitempty"`
	Tags       []FacetCount `json:"tags,omitempty"`
	Dates      []FacetCount `json:"dates,omitempty"`
	Importance []FacetCount `json:"importance,omitempty"`
	FileTypes  []FacetCount `json:"fileTypes,omitempty"`
}

// SmartSearchResults is a complete search response.
// An empty index yields a well-formed empty response, never an error.
type SmartSearchResults struct {
	// Results is the ranked, paginated result page.
	Results []SearchResult `json:"results"`

	// TotalResults is the number of matches before pagination.
	TotalResults int `json:"totalResults"`

	// Facets are tallies over the matched set before pagination.
	Facets SearchFacets `json:"facets"`

	// Enhancement tracks the query variants used.
	Enhancement QueryEnhancement `json:"enhancement"`

	// Took is the query duration.
	Took time.Duration `json:"took"`
}

// SimilarityOptions configures FindSimilar.
type SimilarityOptions struct {
	// Threshold is the minimum similarity in [0,1]. Defaults to 0.7.
	Threshold float64 `json:"threshold,omitempty"`

	// Limit caps the number of results. Defaults to 10.
	Limit int `json:"limit,omitempty"`

	// Categories is an optional allow-list of primary categories.
	Categories []PrimaryCategory `json:"categories,omitempty"`
}

// RecommendationType classifies a derived recommendation.
type RecommendationType string

// Available recommendation types.
const (
	// RecommendationExpiring flags documents expiring within the horizon.
	RecommendationExpiring RecommendationType = "expiring"

	// RecommendationTrending flags the most frequent index categories.
	RecommendationTrending RecommendationType = "trending"

	// RecommendationSimilar bundles documents related to a given one.
	RecommendationSimilar RecommendationType = "similar"
)

// DocumentRecommendation is a derived, never-stored recommendation.
type DocumentRecommendation struct {
	// ID is a generated identifier for this recommendation.
	ID string `json:"id"`

	// Type classifies the recommendation.
	Type RecommendationType `json:"type"`

	// Title is a short summary.
	Title string `json:"title"`

	// Description explains the recommendation.
	Description string `json:"description"`

	// DocumentIDs lists the documents this recommendation covers.
	DocumentIDs []string `json:"documentIds,omitempty"`
}

// QuerySuggestionKind identifies where a suggestion came from.
type QuerySuggestionKind string

// Available query suggestion kinds.
const (
	SuggestionTitle    QuerySuggestionKind = "title"
	SuggestionTag      QuerySuggestionKind = "tag"
	SuggestionCategory QuerySuggestionKind = "category"
)

// QuerySuggestion is a completion candidate for a partial query.
type QuerySuggestion struct {
	// Text is the suggested completion.
	Text string `json:"text"`

	// Kind identifies the suggestion's origin.
	Kind QuerySuggestionKind `json:"kind"`

	// Score orders suggestions; higher is better.
	Score float64 `json:"score"`
}
