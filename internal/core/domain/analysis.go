package domain

import "time"

// DateKind classifies an extracted date from its surrounding text.
type DateKind string

// Available date kinds.
const (
	// DateGeneral is a date with no recognised role.
	DateGeneral DateKind = "general"

	// DateBirth is a birth date ("born", "DOB").
	DateBirth DateKind = "birth"

	// DateDue is a payment or action deadline ("due", "payable by").
	DateDue DateKind = "due"

	// DateExpiration is a validity end ("expires", "valid until").
	DateExpiration DateKind = "expiration"

	// DateEffective is a start of validity ("effective as of").
	DateEffective DateKind = "effective"

	// DateSignature is a signing date ("signed on", "executed").
	DateSignature DateKind = "signature"
)

// IsValid returns true if the date kind is recognised.
func (k DateKind) IsValid() bool {
	switch k {
	case DateGeneral, DateBirth, DateDue, DateExpiration, DateEffective, DateSignature:
		return true
	default:
		return false
	}
}

// ExtractedDate is a date found in document text.
type ExtractedDate struct {
	// Value is the parsed date.
	Value time.Time `json:"value"`

	// Raw is the original matched text.
	Raw string `json:"raw"`

	// Kind is inferred from the surrounding context window.
	Kind DateKind `json:"kind"`

	// Confidence is the extraction confidence in [0,1].
	Confidence float64 `json:"confidence"`

	// Context is the ±window of text around the match.
	Context string `json:"context"`
}

// Entity is a generic extracted item (person, organization, account,
// address, phone, email, contract clause).
type Entity struct {
	// Text is the extracted value.
	Text string `json:"text"`

	// Confidence is the extraction confidence in [0,1].
	Confidence float64 `json:"confidence"`

	// Context is the ±window of text around the match.
	Context string `json:"context"`
}

// ExtractedAmount is a monetary amount found in document text.
type ExtractedAmount struct {
	// Value is the parsed numeric amount.
	Value float64 `json:"value"`

	// Currency is the symbol that prefixed the amount ("$", "€", "£").
	Currency string `json:"currency"`

	// Raw is the original matched text.
	Raw string `json:"raw"`

	// Confidence is the extraction confidence in [0,1].
	Confidence float64 `json:"confidence"`

	// Context is the ±window of text around the match.
	Context string `json:"context"`
}

// KeyInformation holds all typed entities extracted from one document.
type KeyInformation struct {
	Dates         []ExtractedDate   `json:"dates,omitempty"`
	People        []Entity          `json:"people,omitempty"`
	Organizations []Entity          `json:"organizations,omitempty"`
	Amounts       []ExtractedAmount `json:"amounts,omitempty"`
	Accounts      []Entity          `json:"accounts,omitempty"`
	ContractTerms []Entity          `json:"contractTerms,omitempty"`
	Obligations   []Entity          `json:"obligations,omitempty"`
	Rights        []Entity          `json:"rights,omitempty"`
	Addresses     []Entity          `json:"addresses,omitempty"`
	Phones        []Entity          `json:"phones,omitempty"`
	Emails        []Entity          `json:"emails,omitempty"`
}

// InsightType classifies a derived observation about a document.
type InsightType string

// Available insight types.
const (
	// InsightWarning flags something needing attention (e.g., expiring soon).
	InsightWarning InsightType = "warning"

	// InsightOpportunity flags something potentially beneficial.
	InsightOpportunity InsightType = "opportunity"

	// InsightReminder flags an upcoming date or action.
	InsightReminder InsightType = "reminder"
)

// IsValid returns true if the insight type is recognised.
func (t InsightType) IsValid() bool {
	switch t {
	case InsightWarning, InsightOpportunity, InsightReminder:
		return true
	default:
		return false
	}
}

// Insight is a derived observation about a document's content.
// Insights are additive and independent; none suppresses another.
type Insight struct {
	// Type classifies the insight.
	Type InsightType `json:"type"`

	// Title is a short summary.
	Title string `json:"title"`

	// Description explains the observation.
	Description string `json:"description"`

	// ActionRequired indicates the caller should act on this.
	ActionRequired bool `json:"actionRequired"`

	// DueDate is the relevant deadline, if any.
	DueDate *time.Time `json:"dueDate,omitempty"`

	// Confidence is in [0,1].
	Confidence float64 `json:"confidence"`
}

// PIIType classifies a detected piece of personally identifiable information.
type PIIType string

// Available PII types.
const (
	PIISSN        PIIType = "ssn"
	PIICreditCard PIIType = "creditCard"
	PIIEmail      PIIType = "email"
	PIIPhone      PIIType = "phone"
)

// IsValid returns true if the PII type is recognised.
func (t PIIType) IsValid() bool {
	switch t {
	case PIISSN, PIICreditCard, PIIEmail, PIIPhone:
		return true
	default:
		return false
	}
}

// PIIDetection is a detected and masked piece of PII.
// Content always holds the masked form; the raw match is never retained.
type PIIDetection struct {
	// Type classifies the detection.
	Type PIIType `json:"type"`

	// Content is the masked representation. Masking is type-specific:
	// digit masking with a short parseable suffix for SSN and credit
	// cards, local-part truncation for email, full masking otherwise.
	Content string `json:"content"`

	// Confidence reflects format conformance: a strictly formatted match
	// scores higher than a loose one.
	Confidence float64 `json:"confidence"`
}

// ImportanceLevel buckets a document's importance into four tiers.
type ImportanceLevel int

// Available importance levels, lowest to highest.
const (
	ImportanceLow ImportanceLevel = iota
	ImportanceMedium
	ImportanceHigh
	ImportanceCritical
)

// IsValid returns true if the level is in range.
func (l ImportanceLevel) IsValid() bool {
	return l >= ImportanceLow && l <= ImportanceCritical
}

// String returns the string representation.
func (l ImportanceLevel) String() string {
	switch l {
	case ImportanceLow:
		return "low"
	case ImportanceMedium:
		return "medium"
	case ImportanceHigh:
		return "high"
	case ImportanceCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// SensitivityLevel buckets how carefully a document must be handled.
type SensitivityLevel string

// Available sensitivity levels.
const (
	// SensitivityPublic has no PII and no sensitive category.
	SensitivityPublic SensitivityLevel = "public"

	// SensitivityPrivate has some PII present.
	SensitivityPrivate SensitivityLevel = "private"

	// SensitivityConfidential is legal or financial material.
	SensitivityConfidential SensitivityLevel = "confidential"

	// SensitivityRestricted has SSN or credit card PII present.
	SensitivityRestricted SensitivityLevel = "restricted"
)

// IsValid returns true if the level is recognised.
func (l SensitivityLevel) IsValid() bool {
	switch l {
	case SensitivityPublic, SensitivityPrivate, SensitivityConfidential, SensitivityRestricted:
		return true
	default:
		return false
	}
}

// DocumentMetadata is synthesised descriptive metadata.
type DocumentMetadata struct {
	// Title is extracted from the first meaningful line.
	Title string `json:"title"`

	// Description is extracted from the first meaningful sentence.
	Description string `json:"description"`

	// DocumentType is the inferred type label (e.g., "contract").
	DocumentType string `json:"documentType"`

	// Language is the detected language code. Heuristic; defaults to "en".
	Language string `json:"language"`

	// WordCount is the number of words in the analysed content.
	WordCount int `json:"wordCount"`

	// PageCount is estimated from word count.
	PageCount int `json:"pageCount"`
}

// AnalysisResult is the immutable structured output of analyzing one
// document version. Created once per (content, filename, model-config)
// triple and cached by a content-derived key; a content change produces
// a new result under a new key. Never mutated after creation.
type AnalysisResult struct {
	// Category is the classified category.
	Category Category `json:"category"`

	// Confidence is the classification confidence in [0,1].
	Confidence float64 `json:"confidence"`

	// KeyInformation holds all extracted entities.
	KeyInformation KeyInformation `json:"keyInformation"`

	// Metadata is synthesised descriptive metadata.
	Metadata DocumentMetadata `json:"metadata"`

	// Insights are derived observations.
	Insights []Insight `json:"insights,omitempty"`

	// PIIDetected holds masked PII detections.
	PIIDetected []PIIDetection `json:"piiDetected,omitempty"`

	// Tags are analysis-derived labels.
	Tags []string `json:"tags,omitempty"`

	// Recommendations are free-form handling suggestions.
	Recommendations []string `json:"recommendations,omitempty"`

	// Importance is the bucketed importance tier.
	Importance ImportanceLevel `json:"importance"`

	// Sensitivity is the handling level.
	Sensitivity SensitivityLevel `json:"sensitivity"`

	// ProcessingTime is how long the analysis took.
	ProcessingTime time.Duration `json:"processingTime"`

	// AnalysisVersion identifies the analyzer revision.
	AnalysisVersion string `json:"analysisVersion"`

	// Timestamp is when the analysis ran.
	Timestamp time.Time `json:"timestamp"`
}
