package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

func TestEnhanceQuery_TypoCorrection(t *testing.T) {
	enhancement := enhanceQuery("recieve the morgage papers")

	assert.Equal(t, "recieve the morgage papers", enhancement.Original)
	assert.Equal(t, "receive the mortgage papers", enhancement.Corrected)
}

func TestEnhanceQuery_NoCorrectionNeeded(t *testing.T) {
	enhancement := enhanceQuery("mortgage papers")

	assert.Equal(t, "mortgage papers", enhancement.Original)
	assert.Empty(t, enhancement.Corrected)
}

func TestEnhanceQuery_OriginalCasePreserved(t *testing.T) {
	enhancement := enhanceQuery("Insurance Policy")
	assert.Equal(t, "Insurance Policy", enhancement.Original)
}

func TestEnhanceQuery_Synonyms(t *testing.T) {
	enhancement := enhanceQuery("contract")
	assert.Contains(t, enhancement.Synonyms, "agreement")

	enhancement = enhanceQuery("house")
	assert.Contains(t, enhancement.Synonyms, "property")
	assert.Contains(t, enhancement.Synonyms, "home")
}

func TestEnhanceQuery_SynonymsAfterCorrection(t *testing.T) {
	// The corrected form drives expansion, not the typo.
	enhancement := enhanceQuery("contarct")
	assert.Equal(t, "contract", enhancement.Corrected)
	assert.Contains(t, enhancement.Synonyms, "agreement")
}

func TestEnhanceQuery_PluralExpansion(t *testing.T) {
	enhancement := enhanceQuery("invoices")
	assert.Contains(t, enhancement.Expanded, "invoice")

	enhancement = enhanceQuery("lease")
	assert.Contains(t, enhancement.Expanded, "leases")
}

func TestEnhanceQuery_NoDuplicateVariants(t *testing.T) {
	// "invoice invoices" already contains both forms; nothing to expand.
	enhancement := enhanceQuery("invoice invoices")
	assert.Empty(t, enhancement.Expanded)
}

func TestTogglePlural(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"policies", "policy"},
		{"taxes", "tax"},
		{"invoices", "invoice"},
		{"party", "parties"},
		{"contract", "contracts"},
		{"is", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, togglePlural(tt.word), tt.word)
	}
}

func TestQueryTerms(t *testing.T) {
	terms := queryTerms(domain.QueryEnhancement{
		Original: "Contarct Papers",
		Corrected: "contract papers",
		Expanded: []string{"contracts", "paper"},
		Synonyms: []string{"agreement"},
	})

	assert.Equal(t, []string{"contract", "papers", "contracts", "paper", "agreement"}, terms)
}

func TestQueryTerms_UsesOriginalWithoutCorrection(t *testing.T) {
	terms := queryTerms(domain.QueryEnhancement{Original: "Lease Renewal"})
	assert.Equal(t, []string{"lease", "renewal"}, terms)
}

func TestQueryTerms_Empty(t *testing.T) {
	assert.Empty(t, queryTerms(domain.QueryEnhancement{Original: "   "}))
}
