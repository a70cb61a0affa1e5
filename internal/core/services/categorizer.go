package services

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docmind/internal/core/domain"
	"github.com/custodia-labs/docmind/internal/core/ports/driving"
	"github.com/custodia-labs/docmind/internal/logger"
)

// AdjustmentHook receives each mismatched training sample with the
// predicted category. The default hook is a no-op: training currently
// updates statistics without mutating rule weights. The hook point is
// where a future adjustment strategy plugs in.
type AdjustmentHook func(sample domain.LabeledSample, predicted domain.Category)

// Ensure CategorizerService implements the interface.
var _ driving.Categorizer = (*CategorizerService)(nil)

// CategorizerService scores content against a mutable rule set and
// combines rule-based and analyzer-based suggestions by
// confidence-weighted voting.
type CategorizerService struct {
	mu               sync.RWMutex
	rules            []domain.CategoryRule
	customCategories map[string]domain.Category
	adjust           AdjustmentHook

	// regexCache is filled lazily during scoring, which runs under
	// mu.RLock; it needs its own lock.
	regexMu    sync.Mutex
	regexCache map[string]*regexp.Regexp

	// Running statistics, updated on every categorize call.
	statsMu       sync.Mutex
	total         int
	distribution  map[domain.PrimaryCategory]int
	totalDuration time.Duration
	started       time.Time

	now func() time.Time
}

// NewCategorizerService creates a categorizer seeded with the default
// rule set.
func NewCategorizerService() *CategorizerService {
	s := &CategorizerService{
		rules:            defaultRules(),
		customCategories: make(map[string]domain.Category),
		regexCache:       make(map[string]*regexp.Regexp),
		adjust:           func(domain.LabeledSample, domain.Category) {},
		distribution:     make(map[domain.PrimaryCategory]int),
		started:          time.Now(),
		now:              time.Now,
	}
	return s
}

// SetAdjustmentHook replaces the rule-adjustment hook used by training.
func (s *CategorizerService) SetAdjustmentHook(hook AdjustmentHook) {
	if hook == nil {
		hook = func(domain.LabeledSample, domain.Category) {}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adjust = hook
}

// candidate is an aggregated vote for one (primary, secondary) target.
type candidate struct {
	category   domain.Category
	confidence float64
	reasoning  []string
}

// Categorize scores content against all enabled rules, then combines the
// rule verdict with the analyzer's suggestion by confidence-weighted
// voting keyed by (primary, secondary). The rule engine is strictly
// additive: it never overrides the vote, only contributes to it.
func (s *CategorizerService) Categorize(ctx context.Context, content, filename string, analysis *domain.AnalysisResult) (*domain.CategorySuggestion, error) {
	start := s.now()
	logger.Section("Categorization")

	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("categorize: %w", domain.ErrEmptyContent)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("categorize: %w", err)
	}

	ruleCandidates := s.scoreRules(content, filename)
	logger.Debug("Rules fired for %d categories", len(ruleCandidates))

	suggestion := s.combine(ruleCandidates, analysis)
	s.recordStats(suggestion.Category.Primary, s.now().Sub(start))

	return suggestion, nil
}

// scoreRules evaluates every enabled rule and aggregates totals by
// target category. Pattern failures are caught per-pattern, logged, and
// scored as zero; they never abort the categorization.
func (s *CategorizerService) scoreRules(content, filename string) []candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	title := firstMeaningfulLine(content)
	totals := make(map[string]*candidate)

	for _, rule := range s.rules {
		if !rule.Enabled {
			continue
		}

		var ruleScore float64
		for _, pattern := range rule.Patterns {
			score := s.evaluatePattern(pattern, title, filename, content)
			if score > 0 {
				ruleScore += score * pattern.Weight
			}
		}
		if ruleScore <= 0 {
			continue
		}

		ruleScore *= rule.Confidence
		key := rule.Target.Key()
		entry, ok := totals[key]
		if !ok {
			entry = &candidate{category: rule.Target}
			totals[key] = entry
		}
		entry.confidence += ruleScore
		entry.reasoning = append(entry.reasoning,
			fmt.Sprintf("rule %q matched with score %.2f", rule.Name, ruleScore))
	}

	candidates := make([]candidate, 0, len(totals))
	for _, entry := range totals {
		// Saturating map from unbounded score to [0,1).
		entry.confidence = entry.confidence / (entry.confidence + 1.5)
		candidates = append(candidates, *entry)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].confidence > candidates[j].confidence
	})

	return candidates
}

// evaluatePattern returns the raw (unweighted) score of one pattern
// against its selected context text.
func (s *CategorizerService) evaluatePattern(pattern domain.CategoryPattern, title, filename, content string) float64 {
	var text string
	switch pattern.Context {
	case domain.ContextTitle:
		text = title
	case domain.ContextFilename:
		text = filename
	case domain.ContextContent:
		text = content
	default: // anywhere
		text = title + "\n" + filename + "\n" + content
	}

	switch pattern.Type {
	case domain.PatternKeyword:
		return float64(countWholeWord(text, pattern.Pattern))

	case domain.PatternRegex:
		re := s.compiled(pattern.Pattern)
		if re == nil {
			return 0
		}
		return float64(len(re.FindAllStringIndex(text, -1)))

	case domain.PatternSemantic:
		score := 0
		for _, keyword := range pattern.Keywords {
			if countWholeWord(text, keyword) > 0 {
				score++
			}
		}
		return float64(score)

	case domain.PatternStructural:
		return structuralScore(pattern.Pattern, content)

	case domain.PatternMetadata:
		return metadataScore(pattern.Pattern, filename)

	default:
		logger.Warn("Unknown pattern type %q, scored as zero", pattern.Type)
		return 0
	}
}

// compiled returns the cached compiled regex, or nil if the pattern is
// malformed. Compile failures are cached so the warning logs once.
// Safe for concurrent callers holding only the read lock.
func (s *CategorizerService) compiled(pattern string) *regexp.Regexp {
	s.regexMu.Lock()
	defer s.regexMu.Unlock()

	if re, ok := s.regexCache[pattern]; ok {
		return re
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		logger.Warn("Invalid rule pattern %q: %v (scored as zero)", pattern, err)
		re = nil
	}
	s.regexCache[pattern] = re
	return re
}

// structuralScore evaluates a named structural predicate.
func structuralScore(name, content string) float64 {
	switch name {
	case "has-signature-block":
		if strings.Contains(strings.ToLower(content), "signature") {
			return 1
		}
	case "long-document":
		if len(strings.Fields(content)) > 2000 {
			return 1
		}
	case "has-numbered-sections":
		if regexp.MustCompile(`(?m)^\s*\d+\.`).MatchString(content) {
			return 1
		}
	case "has-tabular-data":
		if strings.Count(content, "\t") > 5 || strings.Count(content, "|") > 5 {
			return 1
		}
	default:
		logger.Warn("Unknown structural predicate %q, scored as zero", name)
	}
	return 0
}

// metadataScore evaluates a predicate over the filename.
func metadataScore(predicate, filename string) float64 {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasPrefix(predicate, "ext:"):
		ext := strings.TrimPrefix(predicate, "ext:")
		if strings.TrimPrefix(filepath.Ext(lower), ".") == ext {
			return 1
		}
	case strings.HasPrefix(predicate, "filename-contains:"):
		needle := strings.TrimPrefix(predicate, "filename-contains:")
		if needle != "" && strings.Contains(lower, strings.ToLower(needle)) {
			return 1
		}
	default:
		logger.Warn("Unknown metadata predicate %q, scored as zero", predicate)
	}
	return 0
}

// countWholeWord counts case-insensitive whole-word occurrences.
func countWholeWord(text, word string) int {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return 0
	}
	count := 0
	for _, field := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9' || r == '\'' || r == '-')
	}) {
		if field == word {
			count++
		}
	}
	return count
}

// combine merges rule candidates and the analyzer suggestion by
// confidence-weighted voting keyed by (primary, secondary).
func (s *CategorizerService) combine(ruleCandidates []candidate, analysis *domain.AnalysisResult) *domain.CategorySuggestion {
	votes := make(map[string]*candidate)

	for i := range ruleCandidates {
		rc := ruleCandidates[i]
		votes[rc.category.Key()] = &candidate{
			category:   rc.category,
			confidence: rc.confidence,
			reasoning:  rc.reasoning,
		}
	}

	if analysis != nil {
		key := analysis.Category.Key()
		entry, ok := votes[key]
		if !ok {
			entry = &candidate{category: analysis.Category}
			votes[key] = entry
		}
		entry.confidence += analysis.Confidence
		entry.reasoning = append(entry.reasoning,
			fmt.Sprintf("analyzer classified as %s with confidence %.2f", analysis.Category.Primary, analysis.Confidence))
	}

	if len(votes) == 0 {
		return &domain.CategorySuggestion{
			Category:   domain.Category{Primary: domain.CategoryOther},
			Confidence: 0.2,
			Reasoning:  []string{"no rule matched and no analysis was supplied"},
		}
	}

	ranked := make([]candidate, 0, len(votes))
	for _, entry := range votes {
		if entry.confidence > 0.99 {
			entry.confidence = 0.99
		}
		ranked = append(ranked, *entry)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].confidence > ranked[j].confidence
	})

	winner := ranked[0]
	suggestion := &domain.CategorySuggestion{
		Category:   winner.category,
		Confidence: winner.confidence,
		Reasoning:  winner.reasoning,
	}

	for _, alt := range ranked[1:] {
		if len(suggestion.Alternatives) == 3 {
			break
		}
		suggestion.Alternatives = append(suggestion.Alternatives, domain.AlternativeCategory{
			Category:   alt.category,
			Confidence: alt.confidence,
			Reasoning:  alt.reasoning,
		})
	}

	return suggestion
}

// recordStats updates the running statistics.
func (s *CategorizerService) recordStats(primary domain.PrimaryCategory, took time.Duration) {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	s.total++
	s.distribution[primary]++
	s.totalDuration += took
}

// Stats returns the running categorization statistics.
func (s *CategorizerService) Stats() domain.CategorizerStats {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	stats := domain.CategorizerStats{
		TotalCategorized:     s.total,
		CategoryDistribution: make(map[domain.PrimaryCategory]int, len(s.distribution)),
	}
	for category, count := range s.distribution {
		stats.CategoryDistribution[category] = count
	}
	if s.total > 0 {
		stats.AverageProcessingTime = s.totalDuration / time.Duration(s.total)
	}
	if elapsed := time.Since(s.started).Seconds(); elapsed > 0 {
		stats.Throughput = float64(s.total) / elapsed
	}
	return stats
}

// AddRule adds a rule after validation. Generates an ID when empty.
func (s *CategorizerService) AddRule(rule domain.CategoryRule) error {
	if err := validateRule(&rule); err != nil {
		return fmt.Errorf("add rule: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if rule.ID == "" {
		rule.ID = uuid.New().String()
	} else {
		for _, existing := range s.rules {
			if existing.ID == rule.ID {
				return fmt.Errorf("add rule %s: %w", rule.ID, domain.ErrAlreadyExists)
			}
		}
	}
	if rule.Version == 0 {
		rule.Version = 1
	}

	s.rules = append(s.rules, rule)
	return nil
}

// UpdateRule replaces a rule by ID and bumps its version.
func (s *CategorizerService) UpdateRule(rule domain.CategoryRule) error {
	if err := validateRule(&rule); err != nil {
		return fmt.Errorf("update rule: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.rules {
		if existing.ID == rule.ID {
			rule.Version = existing.Version + 1
			s.rules[i] = rule
			return nil
		}
	}
	return fmt.Errorf("update rule %s: %w", rule.ID, domain.ErrNotFound)
}

// RemoveRule deletes a rule by ID.
func (s *CategorizerService) RemoveRule(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.rules {
		if existing.ID == id {
			s.rules = append(s.rules[:i], s.rules[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("remove rule %s: %w", id, domain.ErrNotFound)
}

// Rules returns a copy of the current rule set.
func (s *CategorizerService) Rules() []domain.CategoryRule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rules := make([]domain.CategoryRule, len(s.rules))
	copy(rules, s.rules)
	return rules
}

// ImportRules replaces the rule set from a serialised bag.
func (s *CategorizerService) ImportRules(bag *domain.RuleBag) error {
	if bag == nil {
		return fmt.Errorf("import rules: %w", domain.ErrInvalidInput)
	}
	for i := range bag.Rules {
		if err := validateRule(&bag.Rules[i]); err != nil {
			return fmt.Errorf("import rules: rule %q: %w", bag.Rules[i].Name, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rules = make([]domain.CategoryRule, len(bag.Rules))
	copy(s.rules, bag.Rules)
	s.customCategories = make(map[string]domain.Category, len(bag.CustomCategories))
	for id, category := range bag.CustomCategories {
		s.customCategories[id] = category
	}
	return nil
}

// ExportRules snapshots the rule set into a serialisable bag.
func (s *CategorizerService) ExportRules() *domain.RuleBag {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bag := &domain.RuleBag{
		Rules:            make([]domain.CategoryRule, len(s.rules)),
		CustomCategories: make(map[string]domain.Category, len(s.customCategories)),
	}
	copy(bag.Rules, s.rules)
	for id, category := range s.customCategories {
		bag.CustomCategories[id] = category
	}
	return bag
}

// TrainOnDataset replays labeled samples through Categorize, tallies
// exact-match accuracy on category.primary, and records a confusion
// tally. Mismatches feed the adjustment hook; the default hook does not
// mutate rule weights. Cancellation is checked once per sample.
func (s *CategorizerService) TrainOnDataset(ctx context.Context, samples []domain.LabeledSample) (*domain.TrainingReport, error) {
	report := &domain.TrainingReport{
		Samples:    len(samples),
		Confusions: make(map[string]int),
	}

	for _, sample := range samples {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("train on dataset: %w", err)
		}

		suggestion, err := s.Categorize(ctx, sample.Content, sample.Filename, nil)
		if err != nil {
			return nil, fmt.Errorf("train on dataset: %w", err)
		}

		if suggestion.Category.Primary == sample.Expected.Primary {
			report.Correct++
			continue
		}

		key := string(sample.Expected.Primary) + "->" + string(suggestion.Category.Primary)
		report.Confusions[key]++

		s.mu.RLock()
		adjust := s.adjust
		s.mu.RUnlock()
		adjust(sample, suggestion.Category)
	}

	if report.Samples > 0 {
		report.Accuracy = float64(report.Correct) / float64(report.Samples)
	}

	logger.Info("Training complete: %d/%d correct (%.1f%%)", report.Correct, report.Samples, report.Accuracy*100)
	return report, nil
}

// validateRule enforces the rule invariants: a valid target primary,
// non-empty patterns, non-negative weights (the score must never
// decrease when more patterns fire), and rule confidence in [0,1].
// Regex patterns must compile at add/update time; evaluation-time
// failures are still caught per-pattern for imported legacy rules.
func validateRule(rule *domain.CategoryRule) error {
	if !rule.Target.Primary.IsValid() {
		return fmt.Errorf("target %q: %w", rule.Target.Primary, domain.ErrInvalidCategory)
	}
	if len(rule.Patterns) == 0 {
		return fmt.Errorf("no patterns: %w", domain.ErrInvalidInput)
	}
	if rule.Confidence < 0 || rule.Confidence > 1 {
		return fmt.Errorf("confidence %v out of range: %w", rule.Confidence, domain.ErrInvalidInput)
	}
	for _, pattern := range rule.Patterns {
		if !pattern.Type.IsValid() {
			return fmt.Errorf("pattern type %q: %w", pattern.Type, domain.ErrInvalidInput)
		}
		if pattern.Weight < 0 {
			return fmt.Errorf("negative pattern weight: %w", domain.ErrInvalidInput)
		}
		if pattern.Type == domain.PatternRegex {
			if _, err := regexp.Compile(pattern.Pattern); err != nil {
				return fmt.Errorf("pattern %q: %w", pattern.Pattern, domain.ErrInvalidPattern)
			}
		}
	}
	return nil
}
