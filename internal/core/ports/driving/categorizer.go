package driving

import (
	"context"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

// Categorizer refines category assignments with a mutable rule engine.
type Categorizer interface {
	// Categorize scores content against all enabled rules and combines
	// the rule-based result with the analyzer's suggestion (when given)
	// by confidence-weighted voting. If no rule fires, the analyzer's
	// category wins; absent both, a low-confidence "other" is returned.
	Categorize(ctx context.Context, content, filename string, analysis *domain.AnalysisResult) (*domain.CategorySuggestion, error)

	// GenerateTags merges category, content, analysis, and metadata tag
	// sources, deduplicated by highest confidence, filtered to >= 0.6,
	// capped at 10, sorted descending by confidence.
	GenerateTags(ctx context.Context, content string, category *domain.Category, analysis *domain.AnalysisResult) (*domain.AutoTaggingResult, error)

	// AddRule adds a rule. Generates an ID when empty.
	AddRule(rule domain.CategoryRule) error

	// UpdateRule replaces a rule by ID and bumps its version.
	UpdateRule(rule domain.CategoryRule) error

	// RemoveRule deletes a rule by ID.
	RemoveRule(id string) error

	// Rules returns a copy of the current rule set.
	Rules() []domain.CategoryRule

	// ImportRules replaces the rule set from a serialised bag.
	ImportRules(bag *domain.RuleBag) error

	// ExportRules snapshots the rule set into a serialisable bag.
	ExportRules() *domain.RuleBag

	// TrainOnDataset replays labeled samples through Categorize and
	// reports exact-match accuracy on category.primary with a confusion
	// tally. Mismatches feed the rule-adjustment hook.
	TrainOnDataset(ctx context.Context, samples []domain.LabeledSample) (*domain.TrainingReport, error)

	// Stats returns the running categorization statistics.
	Stats() domain.CategorizerStats
}
