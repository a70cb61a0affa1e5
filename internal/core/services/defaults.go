package services

import "github.com/custodia-labs/docmind/internal/core/domain"

// defaultRules is the rule set a fresh categorizer starts with.
// IDs are stable so callers can update or disable individual rules.
func defaultRules() []domain.CategoryRule {
	return []domain.CategoryRule{
		{
			ID:      "builtin-legal-contract",
			Name:    "Legal contract",
			Version: 1,
			Enabled: true,
			Patterns: []domain.CategoryPattern{
				{Type: domain.PatternKeyword, Pattern: "agreement", Weight: 1, Context: domain.ContextContent},
				{Type: domain.PatternSemantic, Keywords: []string{"whereas", "hereby", "party", "parties"}, Weight: 1, Context: domain.ContextContent},
				{Type: domain.PatternStructural, Pattern: "has-signature-block", Weight: 0.5, Context: domain.ContextContent},
			},
			Target:     domain.Category{Primary: domain.CategoryLegal, Secondary: "contract"},
			Confidence: 0.9,
			Priority:   10,
		},
		{
			ID:      "builtin-legal-will",
			Name:    "Will and testament",
			Version: 1,
			Enabled: true,
			Patterns: []domain.CategoryPattern{
				{Type: domain.PatternSemantic, Keywords: []string{"testament", "bequeath", "executor", "estate"}, Weight: 1.5, Context: domain.ContextContent},
				{Type: domain.PatternRegex, Pattern: `(?i)\blast will\b`, Weight: 2, Context: domain.ContextAnywhere},
			},
			Target:     domain.Category{Primary: domain.CategoryLegal, Secondary: "will"},
			Confidence: 0.9,
			Priority:   20,
		},
		{
			ID:      "builtin-financial-invoice",
			Name:    "Invoice",
			Version: 1,
			Enabled: true,
			Patterns: []domain.CategoryPattern{
				{Type: domain.PatternKeyword, Pattern: "invoice", Weight: 1.5, Context: domain.ContextAnywhere},
				{Type: domain.PatternRegex, Pattern: `(?i)\b(?:total|amount) due\b`, Weight: 1, Context: domain.ContextContent},
				{Type: domain.PatternMetadata, Pattern: "filename-contains:invoice", Weight: 2, Context: domain.ContextFilename},
			},
			Target:     domain.Category{Primary: domain.CategoryFinancial, Secondary: "invoice"},
			Confidence: 0.85,
			Priority:   10,
		},
		{
			ID:      "builtin-financial-tax",
			Name:    "Tax filing",
			Version: 1,
			Enabled: true,
			Patterns: []domain.CategoryPattern{
				{Type: domain.PatternSemantic, Keywords: []string{"tax", "irs", "deduction", "withholding"}, Weight: 1, Context: domain.ContextContent},
				{Type: domain.PatternRegex, Pattern: `(?i)\bform 10\d{2}\b`, Weight: 2, Context: domain.ContextContent},
			},
			Target:     domain.Category{Primary: domain.CategoryFinancial, Secondary: "tax-return"},
			Confidence: 0.8,
			Priority:   10,
		},
		{
			ID:      "builtin-insurance-policy",
			Name:    "Insurance policy",
			Version: 1,
			Enabled: true,
			Patterns: []domain.CategoryPattern{
				{Type: domain.PatternSemantic, Keywords: []string{"policy", "premium", "coverage", "insured", "deductible"}, Weight: 1, Context: domain.ContextContent},
			},
			Target:     domain.Category{Primary: domain.CategoryInsurance, Secondary: "policy"},
			Confidence: 0.85,
			Priority:   10,
		},
		{
			ID:      "builtin-medical-record",
			Name:    "Medical record",
			Version: 1,
			Enabled: true,
			Patterns: []domain.CategoryPattern{
				{Type: domain.PatternSemantic, Keywords: []string{"patient", "diagnosis", "treatment", "physician"}, Weight: 1, Context: domain.ContextContent},
			},
			Target:     domain.Category{Primary: domain.CategoryMedical, Secondary: "record"},
			Confidence: 0.85,
			Priority:   10,
		},
		{
			ID:      "builtin-property-lease",
			Name:    "Lease agreement",
			Version: 1,
			Enabled: true,
			Patterns: []domain.CategoryPattern{
				{Type: domain.PatternSemantic, Keywords: []string{"lease", "landlord", "tenant", "rent"}, Weight: 1, Context: domain.ContextContent},
			},
			Target:     domain.Category{Primary: domain.CategoryProperty, Secondary: "lease"},
			Confidence: 0.85,
			Priority:   10,
		},
		{
			ID:      "builtin-government-id",
			Name:    "Government identification",
			Version: 1,
			Enabled: true,
			Patterns: []domain.CategoryPattern{
				{Type: domain.PatternSemantic, Keywords: []string{"passport", "license", "permit", "visa"}, Weight: 1, Context: domain.ContextAnywhere},
			},
			Target:     domain.Category{Primary: domain.CategoryGovernment, Secondary: "license"},
			Confidence: 0.75,
			Priority:   5,
		},
		{
			ID:      "builtin-education-transcript",
			Name:    "Academic transcript",
			Version: 1,
			Enabled: true,
			Patterns: []domain.CategoryPattern{
				{Type: domain.PatternSemantic, Keywords: []string{"transcript", "gpa", "semester", "credits"}, Weight: 1, Context: domain.ContextContent},
			},
			Target:     domain.Category{Primary: domain.CategoryEducation, Secondary: "transcript"},
			Confidence: 0.8,
			Priority:   5,
		},
		{
			ID:      "builtin-business-report",
			Name:    "Business report",
			Version: 1,
			Enabled: true,
			Patterns: []domain.CategoryPattern{
				{Type: domain.PatternSemantic, Keywords: []string{"quarterly", "revenue", "stakeholder", "forecast"}, Weight: 1, Context: domain.ContextContent},
			},
			Target:     domain.Category{Primary: domain.CategoryBusiness, Secondary: "report"},
			Confidence: 0.75,
			Priority:   5,
		},
	}
}
