package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

const invoiceContent = "Invoice #2041\nPayment of the total due is expected within 30 days."

func TestCategorize_RuleMatch(t *testing.T) {
	svc := NewCategorizerService()

	suggestion, err := svc.Categorize(context.Background(), invoiceContent, "invoice.pdf", nil)
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryFinancial, suggestion.Category.Primary)
	assert.Equal(t, "invoice", suggestion.Category.Secondary)
	assert.Greater(t, suggestion.Confidence, 0.5)
	assert.LessOrEqual(t, suggestion.Confidence, 0.99)
	assert.NotEmpty(t, suggestion.Reasoning)
}

func TestCategorize_EmptyContent(t *testing.T) {
	svc := NewCategorizerService()

	_, err := svc.Categorize(context.Background(), "   \n", "", nil)
	assert.ErrorIs(t, err, domain.ErrEmptyContent)
}

func TestCategorize_CancelledContext(t *testing.T) {
	svc := NewCategorizerService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Categorize(ctx, invoiceContent, "", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCategorize_AnalysisOnlyVote(t *testing.T) {
	svc := NewCategorizerService()
	analysis := &domain.AnalysisResult{
		Category:   domain.Category{Primary: domain.CategoryLegal, Secondary: "contract"},
		Confidence: 0.92,
	}

	// Content no rule matches: the analyzer vote decides alone.
	suggestion, err := svc.Categorize(context.Background(), "hello world", "", analysis)
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryLegal, suggestion.Category.Primary)
	assert.Equal(t, "contract", suggestion.Category.Secondary)
	assert.InDelta(t, 0.92, suggestion.Confidence, 1e-9)
}

func TestCategorize_Fallback(t *testing.T) {
	svc := NewCategorizerService()

	suggestion, err := svc.Categorize(context.Background(), "zebra umbrella kaleidoscope", "", nil)
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryOther, suggestion.Category.Primary)
	assert.InDelta(t, 0.2, suggestion.Confidence, 1e-9)
	assert.Equal(t, []string{"no rule matched and no analysis was supplied"}, suggestion.Reasoning)
}

func TestCategorize_ConfidenceCapped(t *testing.T) {
	svc := NewCategorizerService()
	analysis := &domain.AnalysisResult{
		Category:   domain.Category{Primary: domain.CategoryFinancial, Secondary: "invoice"},
		Confidence: 0.95,
	}

	// Strong rule vote plus a strong analyzer vote on the same target
	// would exceed 1; the cap holds.
	suggestion, err := svc.Categorize(context.Background(), invoiceContent, "invoice.pdf", analysis)
	require.NoError(t, err)
	assert.InDelta(t, 0.99, suggestion.Confidence, 1e-9)
}

func TestCategorize_MoreMatchesNeverLowerConfidence(t *testing.T) {
	svc := NewCategorizerService()
	ctx := context.Background()

	before, err := svc.Categorize(ctx, invoiceContent, "invoice.pdf", nil)
	require.NoError(t, err)

	require.NoError(t, svc.AddRule(domain.CategoryRule{
		Name:    "Payment terms",
		Enabled: true,
		Patterns: []domain.CategoryPattern{
			{Type: domain.PatternKeyword, Pattern: "payment", Weight: 1, Context: domain.ContextContent},
		},
		Target:     domain.Category{Primary: domain.CategoryFinancial, Secondary: "invoice"},
		Confidence: 0.8,
	}))

	after, err := svc.Categorize(ctx, invoiceContent, "invoice.pdf", nil)
	require.NoError(t, err)

	assert.Equal(t, before.Category, after.Category)
	assert.GreaterOrEqual(t, after.Confidence, before.Confidence)
}

func TestCategorize_WinnerOutranksAlternatives(t *testing.T) {
	svc := NewCategorizerService()

	content := "The lease agreement requires the tenant to pay rent. " +
		"The landlord holds an insurance policy with premium coverage for the property. " +
		"A final invoice states the total due."
	suggestion, err := svc.Categorize(context.Background(), content, "", nil)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(suggestion.Alternatives), 3)
	for _, alt := range suggestion.Alternatives {
		assert.GreaterOrEqual(t, suggestion.Confidence, alt.Confidence)
	}
}

func TestEvaluatePattern(t *testing.T) {
	svc := NewCategorizerService()
	content := "Invoice Summary\nThe payment schedule lists every payment made.\n1. First item\n2. Second item"
	title := firstMeaningfulLine(content)

	tests := []struct {
		name    string
		pattern domain.CategoryPattern
		want    float64
	}{
		{
			name:    "keyword counts occurrences",
			pattern: domain.CategoryPattern{Type: domain.PatternKeyword, Pattern: "payment", Context: domain.ContextContent},
			want:    2,
		},
		{
			name:    "keyword scoped to title misses content terms",
			pattern: domain.CategoryPattern{Type: domain.PatternKeyword, Pattern: "payment", Context: domain.ContextTitle},
			want:    0,
		},
		{
			name:    "keyword in title",
			pattern: domain.CategoryPattern{Type: domain.PatternKeyword, Pattern: "invoice", Context: domain.ContextTitle},
			want:    1,
		},
		{
			name:    "regex counts matches",
			pattern: domain.CategoryPattern{Type: domain.PatternRegex, Pattern: `(?i)\bpayment\b`, Context: domain.ContextContent},
			want:    2,
		},
		{
			name:    "malformed regex scores zero",
			pattern: domain.CategoryPattern{Type: domain.PatternRegex, Pattern: `[unclosed`, Context: domain.ContextContent},
			want:    0,
		},
		{
			name:    "semantic counts distinct keywords present",
			pattern: domain.CategoryPattern{Type: domain.PatternSemantic, Keywords: []string{"invoice", "payment", "missing"}, Context: domain.ContextContent},
			want:    2,
		},
		{
			name:    "structural numbered sections",
			pattern: domain.CategoryPattern{Type: domain.PatternStructural, Pattern: "has-numbered-sections", Context: domain.ContextContent},
			want:    1,
		},
		{
			name:    "structural signature block absent",
			pattern: domain.CategoryPattern{Type: domain.PatternStructural, Pattern: "has-signature-block", Context: domain.ContextContent},
			want:    0,
		},
		{
			name:    "metadata extension",
			pattern: domain.CategoryPattern{Type: domain.PatternMetadata, Pattern: "ext:pdf", Context: domain.ContextFilename},
			want:    1,
		},
		{
			name:    "metadata filename contains",
			pattern: domain.CategoryPattern{Type: domain.PatternMetadata, Pattern: "filename-contains:invoice", Context: domain.ContextFilename},
			want:    1,
		},
		{
			name:    "metadata unknown predicate",
			pattern: domain.CategoryPattern{Type: domain.PatternMetadata, Pattern: "size-above:10", Context: domain.ContextFilename},
			want:    0,
		},
		{
			name:    "unknown pattern type",
			pattern: domain.CategoryPattern{Type: "telepathic", Pattern: "x", Context: domain.ContextContent},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.evaluatePattern(tt.pattern, title, "INVOICE-2041.pdf", content)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompiled_CachesFailures(t *testing.T) {
	svc := NewCategorizerService()

	assert.Nil(t, svc.compiled("[unclosed"))
	// Second lookup hits the cache; still nil, no recompile.
	assert.Nil(t, svc.compiled("[unclosed"))
	assert.NotNil(t, svc.compiled(`\bword\b`))
}

func TestCountWholeWord(t *testing.T) {
	tests := []struct {
		text string
		word string
		want int
	}{
		{"the invoice and the invoices", "invoice", 1},
		{"Tax tax TAX", "tax", 3},
		{"self-insured party", "self-insured", 1},
		{"", "word", 0},
		{"text", "", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, countWholeWord(tt.text, tt.word), "%q in %q", tt.word, tt.text)
	}
}

func TestAddRule(t *testing.T) {
	svc := NewCategorizerService()

	rule := domain.CategoryRule{
		Name:    "Receipts",
		Enabled: true,
		Patterns: []domain.CategoryPattern{
			{Type: domain.PatternKeyword, Pattern: "receipt", Weight: 1, Context: domain.ContextContent},
		},
		Target:     domain.Category{Primary: domain.CategoryFinancial, Secondary: "receipt"},
		Confidence: 0.8,
	}
	require.NoError(t, svc.AddRule(rule))

	rules := svc.Rules()
	added := rules[len(rules)-1]
	assert.NotEmpty(t, added.ID, "missing ID should be generated")
	assert.Equal(t, 1, added.Version)
}

func TestAddRule_DuplicateID(t *testing.T) {
	svc := NewCategorizerService()

	rule := domain.CategoryRule{
		ID:      "builtin-legal-contract",
		Name:    "Duplicate",
		Enabled: true,
		Patterns: []domain.CategoryPattern{
			{Type: domain.PatternKeyword, Pattern: "x", Weight: 1, Context: domain.ContextContent},
		},
		Target:     domain.Category{Primary: domain.CategoryLegal},
		Confidence: 0.5,
	}
	assert.ErrorIs(t, svc.AddRule(rule), domain.ErrAlreadyExists)
}

func TestAddRule_Validation(t *testing.T) {
	valid := func() domain.CategoryRule {
		return domain.CategoryRule{
			Name:    "Valid",
			Enabled: true,
			Patterns: []domain.CategoryPattern{
				{Type: domain.PatternKeyword, Pattern: "x", Weight: 1, Context: domain.ContextContent},
			},
			Target:     domain.Category{Primary: domain.CategoryLegal},
			Confidence: 0.5,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*domain.CategoryRule)
		wantErr error
	}{
		{
			name:    "invalid target category",
			mutate:  func(r *domain.CategoryRule) { r.Target.Primary = "astrology" },
			wantErr: domain.ErrInvalidCategory,
		},
		{
			name:    "no patterns",
			mutate:  func(r *domain.CategoryRule) { r.Patterns = nil },
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "confidence above one",
			mutate:  func(r *domain.CategoryRule) { r.Confidence = 1.2 },
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "negative pattern weight",
			mutate:  func(r *domain.CategoryRule) { r.Patterns[0].Weight = -1 },
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "invalid pattern type",
			mutate:  func(r *domain.CategoryRule) { r.Patterns[0].Type = "telepathic" },
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "malformed regex rejected at add time",
			mutate: func(r *domain.CategoryRule) {
				r.Patterns[0].Type = domain.PatternRegex
				r.Patterns[0].Pattern = "[unclosed"
			},
			wantErr: domain.ErrInvalidPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCategorizerService()
			rule := valid()
			tt.mutate(&rule)
			assert.ErrorIs(t, svc.AddRule(rule), tt.wantErr)
		})
	}
}

func TestUpdateRule(t *testing.T) {
	svc := NewCategorizerService()

	updated := domain.CategoryRule{
		ID:      "builtin-legal-contract",
		Name:    "Legal contract (tightened)",
		Enabled: true,
		Patterns: []domain.CategoryPattern{
			{Type: domain.PatternKeyword, Pattern: "agreement", Weight: 2, Context: domain.ContextContent},
		},
		Target:     domain.Category{Primary: domain.CategoryLegal, Secondary: "contract"},
		Confidence: 0.95,
	}
	require.NoError(t, svc.UpdateRule(updated))

	for _, rule := range svc.Rules() {
		if rule.ID == "builtin-legal-contract" {
			assert.Equal(t, "Legal contract (tightened)", rule.Name)
			assert.Equal(t, 2, rule.Version, "update bumps the version")
			return
		}
	}
	t.Fatal("updated rule not found")
}

func TestUpdateRule_NotFound(t *testing.T) {
	svc := NewCategorizerService()

	missing := domain.CategoryRule{
		ID:      "no-such-rule",
		Enabled: true,
		Patterns: []domain.CategoryPattern{
			{Type: domain.PatternKeyword, Pattern: "x", Weight: 1, Context: domain.ContextContent},
		},
		Target:     domain.Category{Primary: domain.CategoryLegal},
		Confidence: 0.5,
	}
	assert.ErrorIs(t, svc.UpdateRule(missing), domain.ErrNotFound)
}

func TestRemoveRule(t *testing.T) {
	svc := NewCategorizerService()
	before := len(svc.Rules())

	require.NoError(t, svc.RemoveRule("builtin-legal-contract"))
	assert.Len(t, svc.Rules(), before-1)

	assert.ErrorIs(t, svc.RemoveRule("builtin-legal-contract"), domain.ErrNotFound)
}

func TestRules_ReturnsCopy(t *testing.T) {
	svc := NewCategorizerService()

	rules := svc.Rules()
	rules[0].Name = "mutated"

	assert.NotEqual(t, "mutated", svc.Rules()[0].Name)
}

func TestImportExportRules(t *testing.T) {
	svc := NewCategorizerService()

	bag := &domain.RuleBag{
		Rules: []domain.CategoryRule{
			{
				ID:      "imported-1",
				Name:    "Imported",
				Enabled: true,
				Patterns: []domain.CategoryPattern{
					{Type: domain.PatternKeyword, Pattern: "warranty", Weight: 1, Context: domain.ContextContent},
				},
				Target:     domain.Category{Primary: domain.CategoryLegal, Secondary: "warranty"},
				Confidence: 0.7,
			},
		},
		CustomCategories: map[string]domain.Category{
			"warranties": {Primary: domain.CategoryLegal, Secondary: "warranty"},
		},
	}
	require.NoError(t, svc.ImportRules(bag))

	exported := svc.ExportRules()
	require.Len(t, exported.Rules, 1)
	assert.Equal(t, "imported-1", exported.Rules[0].ID)
	assert.Equal(t, domain.CategoryLegal, exported.CustomCategories["warranties"].Primary)
}

func TestImportRules_Invalid(t *testing.T) {
	svc := NewCategorizerService()

	assert.ErrorIs(t, svc.ImportRules(nil), domain.ErrInvalidInput)

	bad := &domain.RuleBag{
		Rules: []domain.CategoryRule{
			{
				ID:      "bad-regex",
				Name:    "Bad",
				Enabled: true,
				Patterns: []domain.CategoryPattern{
					{Type: domain.PatternRegex, Pattern: "[unclosed", Weight: 1, Context: domain.ContextContent},
				},
				Target:     domain.Category{Primary: domain.CategoryLegal},
				Confidence: 0.5,
			},
		},
	}
	assert.ErrorIs(t, svc.ImportRules(bad), domain.ErrInvalidPattern)

	// A failed import must not clobber the existing rule set.
	assert.NotEmpty(t, svc.Rules())
}

func TestExportRules_Snapshot(t *testing.T) {
	svc := NewCategorizerService()

	exported := svc.ExportRules()
	exported.Rules[0].Name = "mutated"

	assert.NotEqual(t, "mutated", svc.Rules()[0].Name)
}

func TestTrainOnDataset(t *testing.T) {
	svc := NewCategorizerService()

	var hookCalls []domain.LabeledSample
	svc.SetAdjustmentHook(func(sample domain.LabeledSample, _ domain.Category) {
		hookCalls = append(hookCalls, sample)
	})

	samples := []domain.LabeledSample{
		{
			Content:  invoiceContent,
			Filename: "invoice.pdf",
			Expected: domain.Category{Primary: domain.CategoryFinancial},
		},
		{
			Content:  "zebra umbrella kaleidoscope",
			Expected: domain.Category{Primary: domain.CategoryMedical},
		},
	}

	report, err := svc.TrainOnDataset(context.Background(), samples)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Samples)
	assert.Equal(t, 1, report.Correct)
	assert.InDelta(t, 0.5, report.Accuracy, 1e-9)
	assert.Equal(t, 1, report.Confusions["medical->other"])

	require.Len(t, hookCalls, 1, "only mismatches feed the adjustment hook")
	assert.Equal(t, domain.CategoryMedical, hookCalls[0].Expected.Primary)
}

func TestTrainOnDataset_Empty(t *testing.T) {
	svc := NewCategorizerService()

	report, err := svc.TrainOnDataset(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, report.Samples)
	assert.Zero(t, report.Accuracy)
}

func TestTrainOnDataset_Cancelled(t *testing.T) {
	svc := NewCategorizerService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.TrainOnDataset(ctx, []domain.LabeledSample{
		{Content: "x", Expected: domain.Category{Primary: domain.CategoryOther}},
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStats(t *testing.T) {
	svc := NewCategorizerService()
	ctx := context.Background()

	_, err := svc.Categorize(ctx, invoiceContent, "invoice.pdf", nil)
	require.NoError(t, err)
	_, err = svc.Categorize(ctx, "zebra umbrella kaleidoscope", "", nil)
	require.NoError(t, err)

	stats := svc.Stats()
	assert.Equal(t, 2, stats.TotalCategorized)
	assert.Equal(t, 1, stats.CategoryDistribution[domain.CategoryFinancial])
	assert.Equal(t, 1, stats.CategoryDistribution[domain.CategoryOther])
}

// Exercises the lazy regex cache from many goroutines at once; run with
// -race to verify the cache's locking.
func TestCategorize_ConcurrentRegexRules(t *testing.T) {
	svc := NewCategorizerService()

	for i := 0; i < 50; i++ {
		err := svc.AddRule(domain.CategoryRule{
			Name:    fmt.Sprintf("regex-rule-%d", i),
			Enabled: true,
			Target:  domain.Category{Primary: domain.CategoryFinancial, Secondary: "invoice"},
			Patterns: []domain.CategoryPattern{
				{Type: domain.PatternRegex, Pattern: fmt.Sprintf(`(?i)payment|term-%d`, i), Weight: 1.0},
			},
			Confidence: 0.8,
		})
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			suggestion, err := svc.Categorize(context.Background(), invoiceContent, "invoice.pdf", nil)
			assert.NoError(t, err)
			assert.Equal(t, domain.CategoryFinancial, suggestion.Category.Primary)
		}()
	}
	wg.Wait()
}
