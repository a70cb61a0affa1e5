package domain

import "time"

// AlternativeCategory is a runner-up category in a suggestion.
type AlternativeCategory struct {
	// Category is the alternative assignment.
	Category Category `json:"category"`

	// Confidence is the alternative's own confidence in [0,1].
	Confidence float64 `json:"confidence"`

	// Reasoning explains why this alternative scored.
	Reasoning []string `json:"reasoning,omitempty"`
}

// CategorySuggestion is a proposed category with confidence and reasoning.
// Suggestions are ephemeral: the core never persists them.
type CategorySuggestion struct {
	// Category is the winning assignment.
	Category Category `json:"category"`

	// Confidence is in [0,1].
	Confidence float64 `json:"confidence"`

	// Reasoning is the ordered list of contributing explanations.
	Reasoning []string `json:"reasoning,omitempty"`

	// Alternatives holds up to 3 runner-up categories.
	// The winner's confidence is always >= every alternative's.
	Alternatives []AlternativeCategory `json:"alternativeCategories,omitempty"`
}

// TagSource identifies where a suggested tag came from.
type TagSource string

// Available tag sources.
const (
	// TagSourceCategory derives from the assigned category.
	TagSourceCategory TagSource = "category"

	// TagSourceContent derives from content keyword indicators.
	TagSourceContent TagSource = "content"

	// TagSourceAnalysis derives from analysis results (importance,
	// sensitivity, PII presence, date presence).
	TagSourceAnalysis TagSource = "analysis"

	// TagSourceMetadata derives from metadata (page buckets, language).
	TagSourceMetadata TagSource = "metadata"
)

// SuggestedTag is a single tag with its confidence and origin.
type SuggestedTag struct {
	// Tag is the tag string.
	Tag string `json:"tag"`

	// Confidence is in [0,1].
	Confidence float64 `json:"confidence"`

	// Source identifies the tag's origin.
	Source TagSource `json:"source"`
}

// AutoTaggingResult holds the merged, filtered tag suggestions.
// Tags are deduplicated keeping the highest-confidence instance,
// filtered to confidence >= 0.6, capped at 10, sorted descending.
type AutoTaggingResult struct {
	// SuggestedTags is the final tag list.
	SuggestedTags []SuggestedTag `json:"suggestedTags"`
}

// LabeledSample is one supervised training example.
type LabeledSample struct {
	// Content is the document text.
	Content string `json:"content"`

	// Filename is the optional source filename.
	Filename string `json:"filename,omitempty"`

	// Expected is the ground-truth category.
	Expected Category `json:"expected"`
}

// TrainingReport summarises a TrainOnDataset run.
type TrainingReport struct {
	// Samples is the number of labeled samples replayed.
	Samples int `json:"samples"`

	// Correct counts exact matches on category.primary.
	Correct int `json:"correct"`

	// Accuracy is Correct/Samples, 0 for an empty dataset.
	Accuracy float64 `json:"accuracy"`

	// Confusions tallies "expected->predicted" primary pairs for
	// mismatched samples.
	Confusions map[string]int `json:"confusions,omitempty"`
}

// CategorizerStats holds running statistics, updated on every
// categorization call (not only during training).
type CategorizerStats struct {
	// TotalCategorized is the number of categorize calls.
	TotalCategorized int `json:"totalCategorized"`

	// CategoryDistribution counts results per primary category.
	CategoryDistribution map[PrimaryCategory]int `json:"categoryDistribution"`

	// AverageProcessingTime is the mean categorization duration.
	AverageProcessingTime time.Duration `json:"averageProcessingTime"`

	// Throughput is categorizations per second since construction.
	Throughput float64 `json:"throughput"`
}
