package domain

const unknownDescription = "Unknown"

// PrimaryCategory is the closed set of top-level document categories.
type PrimaryCategory string

// Available primary categories.
// Declaration order matters: classification ties are broken by taking the
// first declared category, so this order is part of the contract.
const (
	CategoryLegal      PrimaryCategory = "legal"
	CategoryFinancial  PrimaryCategory = "financial"
	CategoryMedical    PrimaryCategory = "medical"
	CategoryInsurance  PrimaryCategory = "insurance"
	CategoryProperty   PrimaryCategory = "property"
	CategoryGovernment PrimaryCategory = "government"
	CategoryPersonal   PrimaryCategory = "personal"
	CategoryBusiness   PrimaryCategory = "business"
	CategoryEducation  PrimaryCategory = "education"
	CategoryOther      PrimaryCategory = "other"
)

// PrimaryCategories returns all primary categories in declaration order.
// The returned slice is a fresh copy; callers may mutate it.
func PrimaryCategories() []PrimaryCategory {
	return []PrimaryCategory{
		CategoryLegal,
		CategoryFinancial,
		CategoryMedical,
		CategoryInsurance,
		CategoryProperty,
		CategoryGovernment,
		CategoryPersonal,
		CategoryBusiness,
		CategoryEducation,
		CategoryOther,
	}
}

// IsValid returns true if the category is in the closed set.
func (c PrimaryCategory) IsValid() bool {
	switch c {
	case CategoryLegal, CategoryFinancial, CategoryMedical, CategoryInsurance,
		CategoryProperty, CategoryGovernment, CategoryPersonal,
		CategoryBusiness, CategoryEducation, CategoryOther:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c PrimaryCategory) String() string {
	return string(c)
}

// Description returns a human-readable description of the category.
func (c PrimaryCategory) Description() string {
	switch c {
	case CategoryLegal:
		return "Legal (contracts, wills, agreements)"
	case CategoryFinancial:
		return "Financial (statements, invoices, tax)"
	case CategoryMedical:
		return "Medical (records, prescriptions)"
	case CategoryInsurance:
		return "Insurance (policies, claims)"
	case CategoryProperty:
		return "Property (deeds, leases, mortgages)"
	case CategoryGovernment:
		return "Government (permits, licences, filings)"
	case CategoryPersonal:
		return "Personal (letters, notes)"
	case CategoryBusiness:
		return "Business (plans, minutes, correspondence)"
	case CategoryEducation:
		return "Education (transcripts, certificates)"
	case CategoryOther:
		return "Other (uncategorised)"
	default:
		return unknownDescription
	}
}

// Category is a full category assignment.
type Category struct {
	// Primary is the top-level category from the closed set.
	Primary PrimaryCategory `json:"primary"`

	// Secondary is a free-form subcategory (e.g., "contract", "invoice").
	Secondary string `json:"secondary,omitempty"`

	// Tertiary is an optional finer-grained label.
	Tertiary string `json:"tertiary,omitempty"`
}

// Key returns a stable identity for vote aggregation.
func (c Category) Key() string {
	return string(c.Primary) + "/" + c.Secondary
}

// PatternType identifies how a CategoryPattern is evaluated.
type PatternType string

// Available pattern types.
const (
	// PatternKeyword counts whole-word occurrences of a literal term.
	PatternKeyword PatternType = "keyword"

	// PatternRegex counts matches of a regular expression.
	PatternRegex PatternType = "regex"

	// PatternSemantic counts how many of a keyword list are present.
	PatternSemantic PatternType = "semantic"

	// PatternStructural evaluates a named structural predicate
	// (e.g., "has-signature-block", "long-document").
	PatternStructural PatternType = "structural"

	// PatternMetadata evaluates a predicate over filename metadata
	// (e.g., "ext:pdf", "filename-contains:invoice").
	PatternMetadata PatternType = "metadata"
)

// IsValid returns true if the pattern type is recognised.
func (t PatternType) IsValid() bool {
	switch t {
	case PatternKeyword, PatternRegex, PatternSemantic, PatternStructural, PatternMetadata:
		return true
	default:
		return false
	}
}

// PatternContext selects which text a pattern is evaluated against.
type PatternContext string

// Available pattern contexts.
const (
	// ContextTitle matches against the document title (first meaningful line).
	ContextTitle PatternContext = "title"

	// ContextFilename matches against the filename.
	ContextFilename PatternContext = "filename"

	// ContextContent matches against the full content.
	ContextContent PatternContext = "content"

	// ContextAnywhere matches against title, filename, and content.
	ContextAnywhere PatternContext = "anywhere"
)

// IsValid returns true if the context is recognised.
func (c PatternContext) IsValid() bool {
	switch c {
	case ContextTitle, ContextFilename, ContextContent, ContextAnywhere:
		return true
	default:
		return false
	}
}

// CategoryPattern is a single weighted matcher within a rule.
type CategoryPattern struct {
	// Type selects the evaluation strategy.
	Type PatternType `json:"type"`

	// Pattern is the term, expression, or predicate name.
	// Unused for semantic patterns, which use Keywords.
	Pattern string `json:"pattern,omitempty"`

	// Keywords is the word list for semantic patterns.
	Keywords []string `json:"keywords,omitempty"`

	// Weight scales this pattern's contribution to the rule score.
	Weight float64 `json:"weight"`

	// Context selects the text the pattern is evaluated against.
	Context PatternContext `json:"context"`
}

// CategoryRule is a named, versioned set of patterns voting for a category.
// Rules are owned by the categorizer and mutated only via explicit
// add/update/remove operations; they are never auto-deleted.
type CategoryRule struct {
	// ID is the unique identifier. Generated if empty on add.
	ID string `json:"id"`

	// Name is the human-readable rule name.
	Name string `json:"name"`

	// Version increments on every update.
	Version int `json:"version"`

	// Enabled toggles the rule without removing it.
	Enabled bool `json:"enabled"`

	// Patterns is the ordered list of weighted matchers.
	Patterns []CategoryPattern `json:"patterns"`

	// Target is the category this rule votes for.
	Target Category `json:"target"`

	// Confidence multiplies the rule's accumulated pattern score.
	Confidence float64 `json:"confidence"`

	// Priority orders rules for presentation. Higher runs no earlier;
	// scoring is order-independent.
	Priority int `json:"priority"`
}

// RuleBag is the JSON-serialisable import/export format for rule sets.
type RuleBag struct {
	// Rules is the full rule list.
	Rules []CategoryRule `json:"rules"`

	// CustomCategories maps caller-defined ids to category assignments.
	CustomCategories map[string]Category `json:"customCategories,omitempty"`
}
