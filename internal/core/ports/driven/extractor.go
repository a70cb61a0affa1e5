package driven

import "github.com/custodia-labs/docmind/internal/core/domain"

// Extractor provides heuristic entity extraction from document text.
// All methods are pure functions over the given content.
//
// The current implementation is regex-based and explicitly heuristic;
// it stands in for a real NLP backend. A learned model can be substituted
// behind this interface without changing analyzer orchestration.
type Extractor interface {
	// ExtractDates finds dates in several literal formats and infers a
	// kind (birth, due, expiration, ...) from each match's context.
	ExtractDates(content string) []domain.ExtractedDate

	// ExtractPeople finds capitalized two-word sequences.
	// A known source of false positives; intentionally heuristic.
	ExtractPeople(content string) []domain.Entity

	// ExtractOrganizations finds capitalized sequences followed by a
	// legal-entity suffix (Inc, LLC, Corp, ...).
	ExtractOrganizations(content string) []domain.Entity

	// ExtractAmounts finds currency-symbol-prefixed numerics.
	ExtractAmounts(content string) []domain.ExtractedAmount

	// ExtractAccounts finds label-adjacent long digit runs.
	ExtractAccounts(content string) []domain.Entity

	// ExtractContractTerms finds duration/term sentence fragments.
	ExtractContractTerms(content string) []domain.Entity

	// ExtractObligations finds modal-verb-triggered obligations
	// ("shall", "must", "agrees to").
	ExtractObligations(content string) []domain.Entity

	// ExtractRights finds entitlement fragments ("may", "is entitled to").
	ExtractRights(content string) []domain.Entity

	// ExtractAddresses finds street-suffix-triggered sequences.
	ExtractAddresses(content string) []domain.Entity

	// ExtractPhones finds phone numbers.
	ExtractPhones(content string) []domain.Entity

	// ExtractEmails finds email addresses.
	ExtractEmails(content string) []domain.Entity

	// ScanPII runs the PII pass over raw (not lower-cased) content.
	// Every detection is returned already masked; the raw match never
	// leaves the extractor.
	ScanPII(content string) []domain.PIIDetection
}
