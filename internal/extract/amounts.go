package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

var (
	amountRe = regexp.MustCompile(`([$€£])\s?(\d[\d,]*(?:\.\d{1,2})?)`)

	accountRe = regexp.MustCompile(`(?i)\b(?:account|acct|policy|member|routing)\s*(?:number|no\.?|num\.?|#)?\s*[:#]?\s*(\d{6,17})\b`)
)

// ExtractAmounts finds currency-symbol-prefixed numerics.
func (h *Heuristic) ExtractAmounts(content string) []domain.ExtractedAmount {
	h.calls.Add(1)

	var out []domain.ExtractedAmount

	for _, loc := range amountRe.FindAllStringSubmatchIndex(content, -1) {
		raw := content[loc[0]:loc[1]]
		currency := content[loc[2]:loc[3]]
		digits := strings.ReplaceAll(content[loc[4]:loc[5]], ",", "")

		value, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			continue
		}

		out = append(out, domain.ExtractedAmount{
			Value:      value,
			Currency:   currency,
			Raw:        raw,
			Confidence: 0.9,
			Context:    contextWindow(content, loc[0], loc[1]),
		})
	}

	return out
}

// ExtractAccounts finds label-adjacent long digit runs.
// The label requirement keeps arbitrary numbers out.
func (h *Heuristic) ExtractAccounts(content string) []domain.Entity {
	h.calls.Add(1)

	var out []domain.Entity
	seen := make(map[string]bool)

	for _, loc := range accountRe.FindAllStringSubmatchIndex(content, -1) {
		number := content[loc[2]:loc[3]]
		if seen[number] {
			continue
		}
		seen[number] = true

		out = append(out, domain.Entity{
			Text:       number,
			Confidence: 0.85,
			Context:    contextWindow(content, loc[0], loc[1]),
		})
	}

	return out
}
