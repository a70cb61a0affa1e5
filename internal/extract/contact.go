package extract

import (
	"regexp"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

var (
	addressRe = regexp.MustCompile(`\b\d{1,5}\s+(?:[A-Z][a-z]+\s+){1,3}(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Drive|Dr|Lane|Ln|Court|Ct|Place|Pl|Way|Terrace|Circle)\b\.?(?:,\s*[A-Z][A-Za-z ]+,?\s*(?:[A-Z]{2}\s*)?\d{5})?`)

	phoneRe = regexp.MustCompile(`(?:\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]\d{3}[-.\s]?\d{4}\b`)

	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// ExtractAddresses finds street-suffix-triggered sequences.
func (h *Heuristic) ExtractAddresses(content string) []domain.Entity {
	h.calls.Add(1)
	return matchEntities(content, addressRe, 0.75)
}

// ExtractPhones finds phone numbers.
func (h *Heuristic) ExtractPhones(content string) []domain.Entity {
	h.calls.Add(1)
	return matchEntities(content, phoneRe, 0.85)
}

// ExtractEmails finds email addresses.
func (h *Heuristic) ExtractEmails(content string) []domain.Entity {
	h.calls.Add(1)
	return matchEntities(content, emailRe, 0.95)
}

// matchEntities collects deduplicated matches with context windows.
func matchEntities(content string, re *regexp.Regexp, confidence float64) []domain.Entity {
	var out []domain.Entity
	seen := make(map[string]bool)

	for _, loc := range re.FindAllStringIndex(content, -1) {
		text := content[loc[0]:loc[1]]
		if seen[text] {
			continue
		}
		seen[text] = true

		out = append(out, domain.Entity{
			Text:       text,
			Confidence: confidence,
			Context:    contextWindow(content, loc[0], loc[1]),
		})
	}

	return out
}
