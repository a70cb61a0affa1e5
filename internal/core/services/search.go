package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/docmind/internal/core/domain"
	"github.com/custodia-labs/docmind/internal/core/ports/driven"
	"github.com/custodia-labs/docmind/internal/core/ports/driving"
	"github.com/custodia-labs/docmind/internal/logger"
)

// Relevance weights per matched field.
const (
	titleWeight    = 3.0
	contentWeight  = 1.0
	tagWeight      = 2.0
	categoryWeight = 1.5
)

// recencyWindow is how recent a modification must be for the boost.
const recencyWindow = 30 * 24 * time.Hour

// recencyBoost multiplies scores of recently modified documents.
const recencyBoost = 1.1

// expiringWindow is the horizon for expiring-document recommendations.
const expiringWindow = 60 * 24 * time.Hour

// defaultSearchLimit caps results when the query gives no limit.
const defaultSearchLimit = 20

// Ensure SearchIndexService implements the interface.
var _ driving.SearchService = (*SearchIndexService)(nil)

// SearchIndexService maintains the document index and answers queries.
type SearchIndexService struct {
	index    driven.IndexStore
	embedder driven.Embedder
	now      func() time.Time
}

// NewSearchIndexService creates a new search service.
func NewSearchIndexService(index driven.IndexStore, embedder driven.Embedder) *SearchIndexService {
	return &SearchIndexService{
		index:    index,
		embedder: embedder,
		now:      time.Now,
	}
}

// IndexDocument adds or replaces the entry for a document.
func (s *SearchIndexService) IndexDocument(ctx context.Context, id, title, content string, analysis *domain.AnalysisResult, metadata map[string]any) error {
	if s.index == nil {
		return fmt.Errorf("index document: %w", domain.ErrIndexUnavailable)
	}
	if id == "" || analysis == nil {
		return fmt.Errorf("index document: %w", domain.ErrInvalidInput)
	}

	entry := &domain.IndexEntry{
		DocumentID:   id,
		Title:        title,
		Content:      content,
		Metadata:     metadata,
		Tags:         analysis.Tags,
		Analysis:     *analysis,
		LastModified: lastModifiedFrom(metadata, s.now()),
		LastIndexed:  s.now(),
	}

	if s.embedder != nil {
		embedding, err := s.embedder.Embed(ctx, content)
		if err != nil {
			return fmt.Errorf("index document: embed: %w", err)
		}
		entry.Embedding = embedding
	}

	if err := s.index.Save(ctx, entry); err != nil {
		return fmt.Errorf("index document %s: %w", id, err)
	}
	logger.Debug("Indexed document %s (%d bytes)", id, len(content))
	return nil
}

// UpdateIndex replaces entry fields, regenerating the embedding only if
// content changed.
func (s *SearchIndexService) UpdateIndex(ctx context.Context, id, title, content string, analysis *domain.AnalysisResult, metadata map[string]any) error {
	if s.index == nil {
		return fmt.Errorf("update index: %w", domain.ErrIndexUnavailable)
	}

	existing, err := s.index.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("update index %s: %w", id, err)
	}

	entry := &domain.IndexEntry{
		DocumentID:   id,
		Title:        title,
		Content:      content,
		Metadata:     metadata,
		Tags:         existing.Tags,
		Analysis:     existing.Analysis,
		Embedding:    existing.Embedding,
		LastModified: lastModifiedFrom(metadata, s.now()),
		LastIndexed:  s.now(),
	}
	if analysis != nil {
		entry.Analysis = *analysis
		entry.Tags = analysis.Tags
	}

	if content != existing.Content && s.embedder != nil {
		embedding, err := s.embedder.Embed(ctx, content)
		if err != nil {
			return fmt.Errorf("update index: embed: %w", err)
		}
		entry.Embedding = embedding
	}

	if err := s.index.Save(ctx, entry); err != nil {
		return fmt.Errorf("update index %s: %w", id, err)
	}
	return nil
}

// RemoveFromIndex hard-deletes an entry.
func (s *SearchIndexService) RemoveFromIndex(ctx context.Context, id string) error {
	if s.index == nil {
		return fmt.Errorf("remove from index: %w", domain.ErrIndexUnavailable)
	}
	if err := s.index.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove from index %s: %w", id, err)
	}
	return nil
}

// Search runs the full query pipeline: enhancement, scoring, filtering,
// ranking, faceting. An empty index returns an empty, well-formed
// result set.
func (s *SearchIndexService) Search(ctx context.Context, query domain.SmartSearchQuery) (*domain.SmartSearchResults, error) {
	start := s.now()
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query.Query)

	if s.index == nil {
		return nil, fmt.Errorf("search: %w", domain.ErrIndexUnavailable)
	}

	enhancement := enhanceQuery(query.Query)
	terms := queryTerms(enhancement)
	logger.Debug("Query terms after enhancement: %v", terms)

	entries, err := s.index.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("search: list index: %w", err)
	}

	// Score every entry; facets tally the post-score set before the
	// caller's filters narrow it.
	var matched []domain.SearchResult
	var facetable []*domain.IndexEntry

	for i := range entries {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("search: scoring: %w", err)
		}

		entry := &entries[i]
		score, fields := s.scoreEntry(entry, terms)
		if score <= 0 {
			continue
		}
		facetable = append(facetable, entry)

		if !passesFilters(entry, query.Filters) {
			continue
		}

		matched = append(matched, domain.SearchResult{
			DocumentID:     entry.DocumentID,
			Title:          entry.Title,
			RelevanceScore: score,
			MatchedFields:  fields,
			Excerpts:       excerpts(entry.Content, terms),
			Category:       entry.Analysis.Category,
			Tags:           entry.Tags,
			Importance:     entry.Analysis.Importance,
			LastModified:   entry.LastModified,
		})
	}

	sortResults(matched, query.SortBy, query.SortOrder)

	total := len(matched)
	results := &domain.SmartSearchResults{
		Results:      paginate(matched, query.Offset, limitOrDefault(query.Limit)),
		TotalResults: total,
		Facets:       buildFacets(facetable, s.now()),
		Enhancement:  enhancement,
		Took:         s.now().Sub(start),
	}

	logger.Info("Search: %d results in %s", total, results.Took)
	return results, nil
}

// scoreEntry computes the query-specific relevance and matched fields.
func (s *SearchIndexService) scoreEntry(entry *domain.IndexEntry, terms []string) (float64, []string) {
	if len(terms) == 0 {
		return 0, nil
	}

	var titleMatches, contentMatches, tagMatches, categoryMatches int
	categoryText := string(entry.Analysis.Category.Primary) + " " + entry.Analysis.Category.Secondary
	tagText := strings.Join(entry.Tags, " ")

	for _, term := range terms {
		titleMatches += countWholeWord(entry.Title, term)
		contentMatches += countWholeWord(entry.Content, term)
		tagMatches += countWholeWord(tagText, term)
		categoryMatches += countWholeWord(categoryText, term)
	}

	score := titleWeight*float64(titleMatches) +
		contentWeight*float64(contentMatches) +
		tagWeight*float64(tagMatches) +
		categoryWeight*float64(categoryMatches)
	if score <= 0 {
		return 0, nil
	}

	if s.now().Sub(entry.LastModified) <= recencyWindow {
		score *= recencyBoost
	}
	score *= importanceBoost(entry.Analysis.Importance)

	var fields []string
	if titleMatches > 0 {
		fields = append(fields, "title")
	}
	if contentMatches > 0 {
		fields = append(fields, "content")
	}
	if tagMatches > 0 {
		fields = append(fields, "tags")
	}
	if categoryMatches > 0 {
		fields = append(fields, "category")
	}

	return score, fields
}

// importanceBoost scales scores from 1.0 (low) to 1.5 (critical).
func importanceBoost(level domain.ImportanceLevel) float64 {
	return 1.0 + 0.5*float64(level)/float64(domain.ImportanceCritical)
}

// passesFilters reports whether the entry survives every active filter.
func passesFilters(entry *domain.IndexEntry, filters domain.SearchFilters) bool {
	if len(filters.Categories) > 0 && !containsCategory(filters.Categories, entry.Analysis.Category.Primary) {
		return false
	}

	for _, required := range filters.Tags {
		if !containsString(entry.Tags, required) {
			return false
		}
	}

	if len(filters.Importance) > 0 {
		found := false
		for _, level := range filters.Importance {
			if entry.Analysis.Importance == level {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(filters.Sensitivity) > 0 {
		found := false
		for _, level := range filters.Sensitivity {
			if entry.Analysis.Sensitivity == level {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if filters.DateFrom != nil || filters.DateTo != nil {
		if !dateInRange(entry, filters) {
			return false
		}
	}

	if filters.HasAmounts != nil && *filters.HasAmounts != (len(entry.Analysis.KeyInformation.Amounts) > 0) {
		return false
	}
	if filters.HasPeople != nil && *filters.HasPeople != (len(entry.Analysis.KeyInformation.People) > 0) {
		return false
	}
	if filters.HasExpiration != nil && *filters.HasExpiration != hasExpirationDate(entry) {
		return false
	}

	return true
}

// dateInRange checks the named extracted date field against the range.
func dateInRange(entry *domain.IndexEntry, filters domain.SearchFilters) bool {
	kind := filters.DateKind
	if kind == "" {
		kind = domain.DateGeneral
	}
	for _, date := range entry.Analysis.KeyInformation.Dates {
		if date.Kind != kind {
			continue
		}
		if filters.DateFrom != nil && date.Value.Before(*filters.DateFrom) {
			continue
		}
		if filters.DateTo != nil && date.Value.After(*filters.DateTo) {
			continue
		}
		return true
	}
	return false
}

func hasExpirationDate(entry *domain.IndexEntry) bool {
	for _, date := range entry.Analysis.KeyInformation.Dates {
		if date.Kind == domain.DateExpiration {
			return true
		}
	}
	return false
}

func containsCategory(haystack []domain.PrimaryCategory, needle domain.PrimaryCategory) bool {
	for _, c := range haystack {
		if c == needle {
			return true
		}
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}

// sortResults ranks by the requested key. sort.SliceStable preserves
// the incoming relevance order as the tie-break.
func sortResults(results []domain.SearchResult, key domain.SortKey, order domain.SortOrder) {
	if key == "" {
		key = domain.SortByRelevance
	}
	if order == "" {
		order = domain.SortDescending
	}

	less := func(a, b domain.SearchResult) bool {
		switch key {
		case domain.SortByDate:
			return a.LastModified.Before(b.LastModified)
		case domain.SortByImportance:
			return a.Importance < b.Importance
		case domain.SortByTitle:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		default:
			return a.RelevanceScore < b.RelevanceScore
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if order == domain.SortAscending {
			return less(results[i], results[j])
		}
		return less(results[j], results[i])
	})
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return defaultSearchLimit
	}
	return limit
}

func paginate(results []domain.SearchResult, offset, limit int) []domain.SearchResult {
	if offset >= len(results) {
		return []domain.SearchResult{}
	}
	end := offset + limit
	if end > len(results) {
		end = len(results)
	}
	return results[offset:end]
}

// excerpts returns up to 3 sentences containing a query term, capped at
// 200 characters each.
func excerpts(content string, terms []string) []string {
	var out []string

	for _, sentence := range sentences(content) {
		lower := strings.ToLower(sentence)
		for _, term := range terms {
			if strings.Contains(lower, term) {
				if len(sentence) > 200 {
					sentence = sentence[:200] + "..."
				}
				out = append(out, sentence)
				break
			}
		}
		if len(out) >= 3 {
			break
		}
	}

	return out
}

// sentences splits content on terminal punctuation and newlines,
// dropping empty fragments.
func sentences(content string) []string {
	fragments := strings.FieldsFunc(content, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	})

	out := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		if trimmed := strings.TrimSpace(fragment); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// buildFacets tallies category, tag, date bucket, importance, and file
// extension over the post-score set.
func buildFacets(entries []*domain.IndexEntry, now time.Time) domain.SearchFacets {
	categories := make(map[string]int)
	tags := make(map[string]int)
	dates := make(map[string]int)
	importance := make(map[string]int)
	fileTypes := make(map[string]int)

	for _, entry := range entries {
		categories[string(entry.Analysis.Category.Primary)]++
		for _, tag := range entry.Tags {
			tags[tag]++
		}
		dates[dateBucket(entry.LastModified, now)]++
		importance[entry.Analysis.Importance.String()]++
		if ext := fileExtension(entry.Metadata); ext != "" {
			fileTypes[ext]++
		}
	}

	return domain.SearchFacets{
		Categories: facetCounts(categories),
		Tags:       facetCounts(tags),
		Dates:      facetCounts(dates),
		Importance: facetCounts(importance),
		FileTypes:  facetCounts(fileTypes),
	}
}

// dateBucket coarsely buckets a modification time.
func dateBucket(t, now time.Time) string {
	switch {
	case now.Sub(t) <= recencyWindow:
		return "recent"
	case t.Year() == now.Year():
		return "this-year"
	default:
		return "older"
	}
}

func fileExtension(metadata map[string]any) string {
	name, _ := metadata["filename"].(string)
	if name == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

// facetCounts converts a tally map to a sorted slice (count descending,
// then value ascending).
func facetCounts(tally map[string]int) []domain.FacetCount {
	out := make([]domain.FacetCount, 0, len(tally))
	for value, count := range tally {
		out = append(out, domain.FacetCount{Value: value, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// lastModifiedFrom reads a modification time from caller metadata,
// falling back to the indexing time.
func lastModifiedFrom(metadata map[string]any, fallback time.Time) time.Time {
	if metadata != nil {
		if t, ok := metadata["lastModified"].(time.Time); ok {
			return t
		}
	}
	return fallback
}
