package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

// Tag pipeline bounds.
const (
	minTagConfidence = 0.6
	maxSuggestedTags = 10
)

// contentTagIndicators maps content keywords to tag suggestions.
var contentTagIndicators = []struct {
	keyword    string
	tag        string
	confidence float64
}{
	{"confidential", "confidential", 0.85},
	{"urgent", "urgent", 0.85},
	{"expires", "expires", 0.8},
	{"expiration", "expires", 0.8},
	{"draft", "draft", 0.7},
	{"final", "final", 0.7},
	{"signed", "signed", 0.75},
	{"notarized", "notarized", 0.8},
	{"amended", "amended", 0.7},
	{"terminated", "terminated", 0.75},
}

// GenerateTags merges four tag sources: category-derived,
// content-pattern-derived, analysis-derived, and metadata-derived.
// Duplicates keep the highest-confidence instance; the result is
// filtered to confidence >= 0.6, capped at 10, sorted descending.
func (s *CategorizerService) GenerateTags(ctx context.Context, content string, category *domain.Category, analysis *domain.AnalysisResult) (*domain.AutoTaggingResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("generate tags: %w", domain.ErrEmptyContent)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("generate tags: %w", err)
	}

	// Resolve a category: explicit > analysis > fresh classification.
	resolved := domain.Category{Primary: domain.CategoryOther}
	switch {
	case category != nil:
		resolved = *category
	case analysis != nil:
		resolved = analysis.Category
	default:
		resolved, _ = classifyContent(content, "")
	}

	var tags []domain.SuggestedTag

	// Category-derived.
	tags = append(tags, domain.SuggestedTag{
		Tag: string(resolved.Primary), Confidence: 0.9, Source: domain.TagSourceCategory,
	})
	if resolved.Secondary != "" {
		tags = append(tags, domain.SuggestedTag{
			Tag: resolved.Secondary, Confidence: 0.8, Source: domain.TagSourceCategory,
		})
	}

	// Content-pattern-derived.
	lower := strings.ToLower(content)
	for _, indicator := range contentTagIndicators {
		if strings.Contains(lower, indicator.keyword) {
			tags = append(tags, domain.SuggestedTag{
				Tag: indicator.tag, Confidence: indicator.confidence, Source: domain.TagSourceContent,
			})
		}
	}

	// Analysis-derived and metadata-derived.
	if analysis != nil {
		tags = append(tags, analysisDerivedTags(analysis)...)
		tags = append(tags, metadataDerivedTags(analysis.Metadata)...)
	}

	return &domain.AutoTaggingResult{SuggestedTags: mergeTags(tags)}, nil
}

func analysisDerivedTags(analysis *domain.AnalysisResult) []domain.SuggestedTag {
	var tags []domain.SuggestedTag

	if analysis.Importance >= domain.ImportanceHigh {
		tags = append(tags, domain.SuggestedTag{Tag: "important", Confidence: 0.85, Source: domain.TagSourceAnalysis})
	}
	if analysis.Sensitivity == domain.SensitivityRestricted || analysis.Sensitivity == domain.SensitivityConfidential {
		tags = append(tags, domain.SuggestedTag{Tag: "sensitive", Confidence: 0.9, Source: domain.TagSourceAnalysis})
	}
	if len(analysis.PIIDetected) > 0 {
		tags = append(tags, domain.SuggestedTag{Tag: "contains-pii", Confidence: 0.85, Source: domain.TagSourceAnalysis})
	}
	if len(analysis.KeyInformation.Dates) > 0 {
		tags = append(tags, domain.SuggestedTag{Tag: "dated", Confidence: 0.6, Source: domain.TagSourceAnalysis})
	}
	for _, date := range analysis.KeyInformation.Dates {
		if date.Kind == domain.DateExpiration {
			tags = append(tags, domain.SuggestedTag{Tag: "expires", Confidence: 0.85, Source: domain.TagSourceAnalysis})
			break
		}
	}

	return tags
}

func metadataDerivedTags(metadata domain.DocumentMetadata) []domain.SuggestedTag {
	var tags []domain.SuggestedTag

	switch {
	case metadata.PageCount >= 20:
		tags = append(tags, domain.SuggestedTag{Tag: "long-document", Confidence: 0.65, Source: domain.TagSourceMetadata})
	case metadata.PageCount <= 2 && metadata.WordCount > 0:
		tags = append(tags, domain.SuggestedTag{Tag: "short-document", Confidence: 0.6, Source: domain.TagSourceMetadata})
	}
	if metadata.Language != "" && metadata.Language != "en" {
		tags = append(tags, domain.SuggestedTag{Tag: "non-english", Confidence: 0.7, Source: domain.TagSourceMetadata})
	}

	return tags
}

// mergeTags deduplicates by tag string keeping the highest confidence,
// filters to >= minTagConfidence, caps at maxSuggestedTags, and sorts
// descending by confidence (ties break alphabetically for stability).
func mergeTags(tags []domain.SuggestedTag) []domain.SuggestedTag {
	best := make(map[string]domain.SuggestedTag)
	for _, tag := range tags {
		if existing, ok := best[tag.Tag]; !ok || tag.Confidence > existing.Confidence {
			best[tag.Tag] = tag
		}
	}

	merged := make([]domain.SuggestedTag, 0, len(best))
	for _, tag := range best {
		if tag.Confidence >= minTagConfidence {
			merged = append(merged, tag)
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Confidence != merged[j].Confidence {
			return merged[i].Confidence > merged[j].Confidence
		}
		return merged[i].Tag < merged[j].Tag
	})

	if len(merged) > maxSuggestedTags {
		merged = merged[:maxSuggestedTags]
	}

	return merged
}
