package extract

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

var (
	ssnStrictRe = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)
	ssnLooseRe  = regexp.MustCompile(`\b\d{9}\b`)
	cardRe      = regexp.MustCompile(`\b(?:\d{4}[-\s]){3}\d{4}\b`)
	cardLooseRe = regexp.MustCompile(`\b\d{13,16}\b`)
)

// ScanPII runs the PII pass over raw (not lower-cased) content.
// Each detection is masked immediately; the raw match never leaves this
// function. Confidence is type-specific and reflects format conformance.
func (h *Heuristic) ScanPII(content string) []domain.PIIDetection {
	h.calls.Add(1)

	var out []domain.PIIDetection
	seen := make(map[string]bool)

	add := func(raw string, t domain.PIIType, masked string, confidence float64) {
		key := string(t) + ":" + raw
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, domain.PIIDetection{
			Type:       t,
			Content:    masked,
			Confidence: confidence,
		})
	}

	for _, m := range ssnStrictRe.FindAllString(content, -1) {
		add(m, domain.PIISSN, maskSSN(m), 0.95)
	}

	for _, loc := range ssnLooseRe.FindAllStringIndex(content, -1) {
		m := content[loc[0]:loc[1]]
		window := strings.ToLower(contextWindow(content, loc[0], loc[1]))
		// A bare 9-digit run is only an SSN when labelled as one.
		if !strings.Contains(window, "ssn") && !strings.Contains(window, "social security") {
			continue
		}
		add(m, domain.PIISSN, maskSSN(m), 0.7)
	}

	for _, m := range cardRe.FindAllString(content, -1) {
		add(m, domain.PIICreditCard, maskCard(m), 0.9)
	}
	for _, m := range cardLooseRe.FindAllString(content, -1) {
		add(m, domain.PIICreditCard, maskCard(m), 0.7)
	}

	for _, m := range emailRe.FindAllString(content, -1) {
		add(m, domain.PIIEmail, maskEmail(m), 0.9)
	}

	for _, m := range phoneRe.FindAllString(content, -1) {
		// Strict SSNs also look like loose phone fragments; skip them.
		if ssnStrictRe.MatchString(m) {
			continue
		}
		add(m, domain.PIIPhone, "***-***-****", 0.8)
	}

	return out
}

// maskSSN masks all but the final two digits, preserving separators.
// Two digits keep the suffix parseable without exposing three or more
// contiguous original digits.
func maskSSN(raw string) string {
	digitsSeen := 0
	total := countDigits(raw)

	var b strings.Builder
	for _, r := range raw {
		if r < '0' || r > '9' {
			b.WriteRune(r)
			continue
		}
		digitsSeen++
		if digitsSeen > total-2 {
			b.WriteRune(r)
		} else {
			b.WriteRune('*')
		}
	}
	return b.String()
}

// maskCard masks all but the final four digits, preserving separators.
func maskCard(raw string) string {
	digitsSeen := 0
	total := countDigits(raw)

	var b strings.Builder
	for _, r := range raw {
		if r < '0' || r > '9' {
			b.WriteRune(r)
			continue
		}
		digitsSeen++
		if digitsSeen > total-4 {
			b.WriteRune(r)
		} else {
			b.WriteRune('*')
		}
	}
	return b.String()
}

// maskEmail truncates the local part to its first character.
func maskEmail(raw string) string {
	at := strings.IndexByte(raw, '@')
	if at <= 0 {
		return "***"
	}
	return raw[:1] + "***" + raw[at:]
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
