package extract

import (
	"regexp"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

// maxFragmentLen caps clause fragments at a readable length.
const maxFragmentLen = 160

var (
	termRe = regexp.MustCompile(`(?i)\b(?:term|duration|period)\s+of\b|\bfor a (?:term|period) of\b|\brenew(?:al|s|ed)?\b`)

	obligationRe = regexp.MustCompile(`(?i)\b(?:shall|must|is required to|agrees? to|will be responsible for)\b`)

	rightRe = regexp.MustCompile(`(?i)\b(?:may|is entitled to|has the right to|shall have the right)\b`)
)

// ExtractContractTerms finds duration/term sentence fragments.
func (h *Heuristic) ExtractContractTerms(content string) []domain.Entity {
	h.calls.Add(1)
	return clauseFragments(content, termRe, 0.7)
}

// ExtractObligations finds modal-verb-triggered obligation fragments.
func (h *Heuristic) ExtractObligations(content string) []domain.Entity {
	h.calls.Add(1)
	return clauseFragments(content, obligationRe, 0.7)
}

// ExtractRights finds entitlement fragments.
func (h *Heuristic) ExtractRights(content string) []domain.Entity {
	h.calls.Add(1)
	return clauseFragments(content, rightRe, 0.65)
}

// clauseFragments returns each sentence matching the trigger, truncated
// to maxFragmentLen. The sentence doubles as its own context.
func clauseFragments(content string, trigger *regexp.Regexp, confidence float64) []domain.Entity {
	var out []domain.Entity

	for _, sentence := range sentences(content) {
		if !trigger.MatchString(sentence) {
			continue
		}

		fragment := sentence
		if len(fragment) > maxFragmentLen {
			fragment = fragment[:maxFragmentLen] + "..."
		}

		out = append(out, domain.Entity{
			Text:       fragment,
			Confidence: confidence,
			Context:    fragment,
		})
	}

	return out
}
