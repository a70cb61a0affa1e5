package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/docmind/internal/core/domain"
	"github.com/custodia-labs/docmind/internal/core/ports/driven"
	"github.com/custodia-labs/docmind/internal/core/ports/driving"
	"github.com/custodia-labs/docmind/internal/logger"
)

// analysisVersion identifies the analyzer revision stamped on results.
const analysisVersion = "1.0.0"

// wordsPerPage is the page estimation divisor, also used by MaxPages
// truncation.
const wordsPerPage = 300

// largeAmountThreshold marks an amount as notable for insights and
// importance scoring.
const largeAmountThreshold = 10000

// Ensure AnalyzerService implements the interface.
var _ driving.Analyzer = (*AnalyzerService)(nil)

// AnalyzerService orchestrates classification, entity extraction,
// insight generation, PII detection, and metadata synthesis.
type AnalyzerService struct {
	extractor driven.Extractor
	cache     driven.ResultStore
	cfg       domain.AnalysisConfig
	now       func() time.Time
}

// NewAnalyzerService creates a new analyzer.
// The cache parameter is optional (can be nil); without it every call
// recomputes.
func NewAnalyzerService(extractor driven.Extractor, cache driven.ResultStore, cfg domain.AnalysisConfig) *AnalyzerService {
	if cfg.ExpirationHorizon <= 0 {
		cfg.ExpirationHorizon = domain.DefaultAnalysisConfig().ExpirationHorizon
	}
	return &AnalyzerService{
		extractor: extractor,
		cache:     cache,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Analyze runs the full pipeline. For identical (content, filename,
// advanced-models config) the cached result is returned without
// recomputation. The operation is all-or-nothing.
func (s *AnalyzerService) Analyze(ctx context.Context, content []byte, filename, mimeType string) (*domain.AnalysisResult, error) {
	start := s.now()
	logger.Section("Document Analysis")
	logger.Debug("Filename: %q, MIME: %q, %d bytes", filename, mimeType, len(content))

	if s.extractor == nil {
		return nil, fmt.Errorf("analyze: %w", domain.ErrExtractorUnavailable)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, fmt.Errorf("analyze: read content: %w", domain.ErrEmptyContent)
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	text := string(content)
	key := s.cacheKey(text, filename)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			logger.Debug("Cache hit: %s", key[:12])
			return cached, nil
		}
	}

	text = s.truncateToPages(text)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analyze: classification: %w", err)
	}
	category, confidence := classifyContent(text, filename)
	logger.Debug("Classified as %s (%.2f)", category.Primary, confidence)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analyze: extraction: %w", err)
	}
	info := s.extractKeyInformation(text)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analyze: insight generation: %w", err)
	}
	insights := s.generateInsights(category, info)

	var pii []domain.PIIDetection
	if s.cfg.DetectPII {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("analyze: pii detection: %w", err)
		}
		// PII scanning runs over the raw text, not the lower-cased copy.
		pii = s.extractor.ScanPII(text)
		logger.Debug("PII detections: %d", len(pii))
	}

	metadata := s.buildMetadata(text, category)
	importance := scoreImportance(category, info, insights)
	sensitivity := scoreSensitivity(category, pii)

	result := &domain.AnalysisResult{
		Category:        category,
		Confidence:      confidence,
		KeyInformation:  *info,
		Metadata:        metadata,
		Insights:        insights,
		PIIDetected:     pii,
		Tags:            analysisTags(category, info, pii, importance),
		Recommendations: handlingRecommendations(sensitivity, info),
		Importance:      importance,
		Sensitivity:     sensitivity,
		ProcessingTime:  s.now().Sub(start),
		AnalysisVersion: analysisVersion,
		Timestamp:       s.now(),
	}

	if s.cfg.AnonymizeResults {
		stripContexts(&result.KeyInformation)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result); err != nil {
			// Caching is best-effort; the result itself is good.
			logger.Warn("Cache write failed: %v", err)
		}
	}

	logger.Info("Analysis complete in %s", result.ProcessingTime)
	return result, nil
}

// Classify scores content against the fixed category pattern groups.
func (s *AnalyzerService) Classify(_ context.Context, content, filename string) (domain.Category, error) {
	if strings.TrimSpace(content) == "" {
		return domain.Category{}, fmt.Errorf("classify: %w", domain.ErrEmptyContent)
	}
	category, _ := classifyContent(content, filename)
	return category, nil
}

// ExtractKeyInformation runs only the entity extraction stage.
func (s *AnalyzerService) ExtractKeyInformation(_ context.Context, content string) (*domain.KeyInformation, error) {
	if s.extractor == nil {
		return nil, fmt.Errorf("extract key information: %w", domain.ErrExtractorUnavailable)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("extract key information: %w", domain.ErrEmptyContent)
	}
	return s.extractKeyInformation(content), nil
}

// cacheKey derives the cache key from a content hash, the filename, and
// the advanced-models flag. Hashing the content (not its length or name)
// avoids collisions between different documents.
func (s *AnalyzerService) cacheKey(content, filename string) string {
	h := sha256.New()
	h.Write([]byte(content))
	h.Write([]byte{0})
	h.Write([]byte(filename))
	h.Write([]byte{0})
	if s.cfg.UseAdvancedModels {
		h.Write([]byte("advanced"))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// truncateToPages bounds extraction input to MaxPages worth of words.
func (s *AnalyzerService) truncateToPages(text string) string {
	if s.cfg.MaxPages <= 0 {
		return text
	}
	words := strings.Fields(text)
	limit := s.cfg.MaxPages * wordsPerPage
	if len(words) <= limit {
		return text
	}
	logger.Debug("Truncating input: %d -> %d words", len(words), limit)
	return strings.Join(words[:limit], " ")
}

func (s *AnalyzerService) extractKeyInformation(content string) *domain.KeyInformation {
	info := &domain.KeyInformation{
		Dates:         s.extractor.ExtractDates(content),
		People:        s.extractor.ExtractPeople(content),
		Organizations: s.extractor.ExtractOrganizations(content),
		Amounts:       s.extractor.ExtractAmounts(content),
		Accounts:      s.extractor.ExtractAccounts(content),
		Addresses:     s.extractor.ExtractAddresses(content),
		Phones:        s.extractor.ExtractPhones(content),
		Emails:        s.extractor.ExtractEmails(content),
	}

	if s.cfg.EnableDeepAnalysis {
		info.ContractTerms = s.extractor.ExtractContractTerms(content)
		info.Obligations = s.extractor.ExtractObligations(content)
		info.Rights = s.extractor.ExtractRights(content)
	}

	return info
}

// generateInsights derives observations from extracted entities.
// Insights are additive and independent; none suppresses another.
func (s *AnalyzerService) generateInsights(category domain.Category, info *domain.KeyInformation) []domain.Insight {
	var insights []domain.Insight
	now := s.now()

	for _, date := range info.Dates {
		switch date.Kind {
		case domain.DateExpiration:
			if date.Value.After(now) && date.Value.Before(now.Add(s.cfg.ExpirationHorizon)) {
				due := date.Value
				insights = append(insights, domain.Insight{
					Type:           domain.InsightWarning,
					Title:          "Document expiring soon",
					Description:    fmt.Sprintf("An expiration date (%s) falls within the next %d days.", date.Raw, int(s.cfg.ExpirationHorizon.Hours()/24)),
					ActionRequired: true,
					DueDate:        &due,
					Confidence:     0.9,
				})
			}
		case domain.DateDue:
			if date.Value.After(now) {
				due := date.Value
				insights = append(insights, domain.Insight{
					Type:           domain.InsightReminder,
					Title:          "Upcoming due date",
					Description:    fmt.Sprintf("A due date (%s) is approaching.", date.Raw),
					ActionRequired: true,
					DueDate:        &due,
					Confidence:     0.85,
				})
			}
		}
	}

	if category.Primary == domain.CategoryFinancial {
		for _, amount := range info.Amounts {
			if amount.Value >= largeAmountThreshold {
				insights = append(insights, domain.Insight{
					Type:        domain.InsightOpportunity,
					Title:       "Large amount detected",
					Description: fmt.Sprintf("This financial document mentions %s; consider reviewing it with an advisor.", amount.Raw),
					Confidence:  0.7,
				})
				break
			}
		}
	}

	return insights
}

// buildMetadata synthesises title/description/type from content.
func (s *AnalyzerService) buildMetadata(content string, category domain.Category) domain.DocumentMetadata {
	words := strings.Fields(content)
	metadata := domain.DocumentMetadata{
		Language:  detectLanguage(content),
		WordCount: len(words),
		PageCount: len(words)/wordsPerPage + 1,
	}

	if !s.cfg.ExtractMetadata {
		return metadata
	}

	metadata.Title = firstMeaningfulLine(content)
	metadata.Description = firstSentence(content)
	metadata.DocumentType = category.Secondary
	if metadata.DocumentType == "" {
		metadata.DocumentType = string(category.Primary)
	}

	return metadata
}

// firstMeaningfulLine returns the first non-empty line, capped at 80 chars.
func firstMeaningfulLine(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) > 80 {
			line = line[:80]
		}
		return line
	}
	return ""
}

// firstSentence returns the first sentence, capped at 200 chars.
func firstSentence(content string) string {
	content = strings.TrimSpace(content)
	for i, r := range content {
		if r == '.' || r == '!' || r == '?' {
			sentence := strings.TrimSpace(content[:i+1])
			if len(sentence) > 200 {
				sentence = sentence[:200]
			}
			return sentence
		}
	}
	if len(content) > 200 {
		return content[:200]
	}
	return content
}

// detectLanguage is a crude stopword tally. English is the default; a
// document with none of the common English function words is unknown.
func detectLanguage(content string) string {
	lower := " " + strings.ToLower(content) + " "
	for _, word := range []string{" the ", " and ", " of ", " to ", " is "} {
		if strings.Contains(lower, word) {
			return "en"
		}
	}
	return "unknown"
}

// categoryImportanceWeight feeds the importance score.
var categoryImportanceWeight = map[domain.PrimaryCategory]int{
	domain.CategoryLegal:      3,
	domain.CategoryFinancial:  3,
	domain.CategoryMedical:    2,
	domain.CategoryInsurance:  2,
	domain.CategoryProperty:   2,
	domain.CategoryGovernment: 2,
	domain.CategoryBusiness:   1,
	domain.CategoryEducation:  1,
}

// scoreImportance is a weighted sum over category weight, large amounts,
// and action-required warnings, bucketed into four tiers.
func scoreImportance(category domain.Category, info *domain.KeyInformation, insights []domain.Insight) domain.ImportanceLevel {
	score := categoryImportanceWeight[category.Primary]

	for _, amount := range info.Amounts {
		if amount.Value >= largeAmountThreshold {
			score += 2
			break
		}
	}

	for _, insight := range insights {
		if insight.Type == domain.InsightWarning && insight.ActionRequired {
			score += 2
			break
		}
	}

	switch {
	case score >= 6:
		return domain.ImportanceCritical
	case score >= 4:
		return domain.ImportanceHigh
	case score >= 2:
		return domain.ImportanceMedium
	default:
		return domain.ImportanceLow
	}
}

// scoreSensitivity escalates by PII severity, then category.
func scoreSensitivity(category domain.Category, pii []domain.PIIDetection) domain.SensitivityLevel {
	for _, detection := range pii {
		if detection.Type == domain.PIISSN || detection.Type == domain.PIICreditCard {
			return domain.SensitivityRestricted
		}
	}
	if category.Primary == domain.CategoryLegal || category.Primary == domain.CategoryFinancial {
		return domain.SensitivityConfidential
	}
	if len(pii) > 0 {
		return domain.SensitivityPrivate
	}
	return domain.SensitivityPublic
}

// analysisTags derives the result's own tag list.
func analysisTags(category domain.Category, info *domain.KeyInformation, pii []domain.PIIDetection, importance domain.ImportanceLevel) []string {
	tags := []string{string(category.Primary)}
	if category.Secondary != "" {
		tags = append(tags, category.Secondary)
	}
	if importance >= domain.ImportanceHigh {
		tags = append(tags, "important")
	}
	if len(pii) > 0 {
		tags = append(tags, "contains-pii")
	}
	for _, date := range info.Dates {
		if date.Kind == domain.DateExpiration {
			tags = append(tags, "expires")
			break
		}
	}
	return tags
}

// handlingRecommendations suggests storage/handling actions.
func handlingRecommendations(sensitivity domain.SensitivityLevel, info *domain.KeyInformation) []string {
	var recs []string

	switch sensitivity {
	case domain.SensitivityRestricted:
		recs = append(recs, "Store in encrypted storage; contains government or card identifiers.")
	case domain.SensitivityConfidential:
		recs = append(recs, "Restrict access; legal or financial material.")
	}

	for _, date := range info.Dates {
		if date.Kind == domain.DateExpiration {
			recs = append(recs, "Set a renewal reminder before the expiration date.")
			break
		}
	}

	return recs
}

// stripContexts drops entity context windows when anonymized results are
// requested.
func stripContexts(info *domain.KeyInformation) {
	for i := range info.Dates {
		info.Dates[i].Context = ""
	}
	for _, entities := range [][]domain.Entity{
		info.People, info.Organizations, info.Accounts,
		info.ContractTerms, info.Obligations, info.Rights,
		info.Addresses, info.Phones, info.Emails,
	} {
		for i := range entities {
			entities[i].Context = ""
		}
	}
	for i := range info.Amounts {
		info.Amounts[i].Context = ""
	}
}
