package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/docmind/internal/core/domain"
	"github.com/custodia-labs/docmind/internal/logger"
)

// Similarity defaults.
const (
	defaultSimilarityThreshold = 0.7
	defaultSimilarLimit        = 10
	trendingCategoryCount      = 3
	maxSuggestions             = 10
)

// FindSimilar returns documents similar to the given one, filtered by
// threshold and optional category allow-list.
func (s *SearchIndexService) FindSimilar(ctx context.Context, id string, opts domain.SimilarityOptions) ([]domain.SearchResult, error) {
	if s.index == nil {
		return nil, fmt.Errorf("find similar: %w", domain.ErrIndexUnavailable)
	}

	reference, err := s.index.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find similar %s: %w", id, err)
	}

	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = defaultSimilarityThreshold
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSimilarLimit
	}

	entries, err := s.index.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("find similar: list index: %w", err)
	}

	var results []domain.SearchResult
	for i := range entries {
		entry := &entries[i]
		if entry.DocumentID == id {
			continue
		}
		if len(opts.Categories) > 0 && !containsCategory(opts.Categories, entry.Analysis.Category.Primary) {
			continue
		}

		score := similarity(reference, entry)
		if score < threshold {
			continue
		}

		results = append(results, domain.SearchResult{
			DocumentID:     entry.DocumentID,
			Title:          entry.Title,
			RelevanceScore: score,
			Category:       entry.Analysis.Category,
			Tags:           entry.Tags,
			Importance:     entry.Analysis.Importance,
			LastModified:   entry.LastModified,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})
	if len(results) > limit {
		results = results[:limit]
	}

	logger.Debug("FindSimilar %s: %d documents above %.2f", id, len(results), threshold)
	return results, nil
}

// similarity scores two entries in [0,1]: 0.3 for matching primary
// category, 0.2 for matching secondary, 0.3 scaled by tag overlap, and
// up to 0.2 from shared content vocabulary.
func similarity(a, b *domain.IndexEntry) float64 {
	var score float64

	if a.Analysis.Category.Primary == b.Analysis.Category.Primary {
		score += 0.3
		if a.Analysis.Category.Secondary != "" && a.Analysis.Category.Secondary == b.Analysis.Category.Secondary {
			score += 0.2
		}
	}

	score += 0.3 * tagOverlap(a.Tags, b.Tags)

	common := commonWordCount(a.Content, b.Content)
	wordScore := float64(common) / 100
	if wordScore > 0.2 {
		wordScore = 0.2
	}
	score += wordScore

	return score
}

// tagOverlap is |intersection| / max(len(a), len(b)), zero when either
// side has no tags.
func tagOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	set := make(map[string]bool, len(a))
	for _, tag := range a {
		set[strings.ToLower(tag)] = true
	}

	shared := 0
	for _, tag := range b {
		if set[strings.ToLower(tag)] {
			shared++
		}
	}

	max := len(a)
	if len(b) > max {
		max = len(b)
	}
	return float64(shared) / float64(max)
}

// commonWordCount counts distinct lowercased words both contents share.
func commonWordCount(a, b string) int {
	wordsA := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(a)) {
		wordsA[word] = true
	}

	seen := make(map[string]bool)
	count := 0
	for _, word := range strings.Fields(strings.ToLower(b)) {
		if wordsA[word] && !seen[word] {
			seen[word] = true
			count++
		}
	}
	return count
}

// Recommendations derives expiring-document, trending-category, and
// optionally similar-document recommendations from the current index.
func (s *SearchIndexService) Recommendations(ctx context.Context, relatedTo string) ([]domain.DocumentRecommendation, error) {
	if s.index == nil {
		return nil, fmt.Errorf("recommendations: %w", domain.ErrIndexUnavailable)
	}

	entries, err := s.index.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("recommendations: list index: %w", err)
	}

	var recommendations []domain.DocumentRecommendation

	if rec := s.expiringRecommendation(entries); rec != nil {
		recommendations = append(recommendations, *rec)
	}
	recommendations = append(recommendations, trendingRecommendations(entries)...)

	if relatedTo != "" {
		similar, err := s.FindSimilar(ctx, relatedTo, domain.SimilarityOptions{Threshold: defaultSimilarityThreshold})
		if err != nil {
			return nil, fmt.Errorf("recommendations: %w", err)
		}
		if len(similar) > 0 {
			ids := make([]string, len(similar))
			for i, result := range similar {
				ids[i] = result.DocumentID
			}
			recommendations = append(recommendations, domain.DocumentRecommendation{
				ID:          uuid.NewString(),
				Type:        domain.RecommendationSimilar,
				Title:       "Related documents",
				Description: fmt.Sprintf("%d documents similar to %s", len(similar), relatedTo),
				DocumentIDs: ids,
			})
		}
	}

	return recommendations, nil
}

// expiringRecommendation bundles documents with an expiration date
// inside the horizon. Returns nil when none qualify.
func (s *SearchIndexService) expiringRecommendation(entries []domain.IndexEntry) *domain.DocumentRecommendation {
	now := s.now()
	deadline := now.Add(expiringWindow)

	var ids []string
	for i := range entries {
		for _, date := range entries[i].Analysis.KeyInformation.Dates {
			if date.Kind == domain.DateExpiration && date.Value.After(now) && date.Value.Before(deadline) {
				ids = append(ids, entries[i].DocumentID)
				break
			}
		}
	}
	if len(ids) == 0 {
		return nil
	}

	return &domain.DocumentRecommendation{
		ID:          uuid.NewString(),
		Type:        domain.RecommendationExpiring,
		Title:       "Documents expiring soon",
		Description: fmt.Sprintf("%d documents expire within 60 days", len(ids)),
		DocumentIDs: ids,
	}
}

// trendingRecommendations surfaces the most frequent primary
// categories in the index.
func trendingRecommendations(entries []domain.IndexEntry) []domain.DocumentRecommendation {
	tally := make(map[domain.PrimaryCategory][]string)
	for i := range entries {
		primary := entries[i].Analysis.Category.Primary
		tally[primary] = append(tally[primary], entries[i].DocumentID)
	}

	type categoryCount struct {
		category domain.PrimaryCategory
		ids      []string
	}
	counts := make([]categoryCount, 0, len(tally))
	for category, ids := range tally {
		counts = append(counts, categoryCount{category: category, ids: ids})
	}
	sort.Slice(counts, func(i, j int) bool {
		if len(counts[i].ids) != len(counts[j].ids) {
			return len(counts[i].ids) > len(counts[j].ids)
		}
		return counts[i].category < counts[j].category
	})
	if len(counts) > trendingCategoryCount {
		counts = counts[:trendingCategoryCount]
	}

	var recommendations []domain.DocumentRecommendation
	for _, count := range counts {
		recommendations = append(recommendations, domain.DocumentRecommendation{
			ID:          uuid.NewString(),
			Type:        domain.RecommendationTrending,
			Title:       fmt.Sprintf("Frequent category: %s", count.category),
			Description: fmt.Sprintf("%d documents in the %s category", len(count.ids), count.category),
			DocumentIDs: count.ids,
		})
	}
	return recommendations
}

// Suggestions returns completion candidates for a partial query drawn
// from indexed titles, tags, and category names.
func (s *SearchIndexService) Suggestions(ctx context.Context, partial string) ([]domain.QuerySuggestion, error) {
	if s.index == nil {
		return nil, fmt.Errorf("suggestions: %w", domain.ErrIndexUnavailable)
	}

	partial = strings.ToLower(strings.TrimSpace(partial))
	if partial == "" {
		return []domain.QuerySuggestion{}, nil
	}

	entries, err := s.index.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggestions: list index: %w", err)
	}

	best := make(map[string]domain.QuerySuggestion)
	consider := func(text string, kind domain.QuerySuggestionKind, base float64) {
		lower := strings.ToLower(text)
		var score float64
		switch {
		case strings.HasPrefix(lower, partial):
			score = base
		case strings.Contains(lower, partial):
			score = base * 0.7
		default:
			return
		}
		if existing, ok := best[lower]; !ok || score > existing.Score {
			best[lower] = domain.QuerySuggestion{Text: text, Kind: kind, Score: score}
		}
	}

	for i := range entries {
		consider(entries[i].Title, domain.SuggestionTitle, 1.0)
		for _, tag := range entries[i].Tags {
			consider(tag, domain.SuggestionTag, 0.8)
		}
		consider(string(entries[i].Analysis.Category.Primary), domain.SuggestionCategory, 0.6)
	}

	suggestions := make([]domain.QuerySuggestion, 0, len(best))
	for _, suggestion := range best {
		suggestions = append(suggestions, suggestion)
	}
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].Text < suggestions[j].Text
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	return suggestions, nil
}
