package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

// datePattern pairs a literal date format with its parse layout.
type datePattern struct {
	re     *regexp.Regexp
	layout string
}

var datePatterns = []datePattern{
	{regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`), "2006-01-02"},
	{regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`), "1/2/2006"},
	{regexp.MustCompile(`\b(?:January|February|March|April|May|June|July|August|September|October|November|December) \d{1,2}, \d{4}\b`), "January 2, 2006"},
	{regexp.MustCompile(`\b\d{1,2} (?:January|February|March|April|May|June|July|August|September|October|November|December) \d{4}\b`), "2 January 2006"},
}

// dateKindCues maps context substrings to date kinds.
// Checked in order; the first cue found in the context wins.
var dateKindCues = []struct {
	cues []string
	kind domain.DateKind
}{
	{[]string{"expir", "valid until", "valid through", "renew"}, domain.DateExpiration},
	{[]string{"due", "payable", "deadline", "no later than"}, domain.DateDue},
	{[]string{"birth", "born", "dob"}, domain.DateBirth},
	{[]string{"effective"}, domain.DateEffective},
	{[]string{"signed", "executed", "signature", "dated this"}, domain.DateSignature},
}

// ExtractDates finds dates in several literal formats and infers a kind
// from each match's surrounding context.
func (h *Heuristic) ExtractDates(content string) []domain.ExtractedDate {
	h.calls.Add(1)

	var out []domain.ExtractedDate
	seen := make(map[string]bool)

	for _, p := range datePatterns {
		for _, loc := range p.re.FindAllStringIndex(content, -1) {
			raw := content[loc[0]:loc[1]]
			if seen[raw] {
				continue
			}

			value, err := time.Parse(p.layout, raw)
			if err != nil {
				// A lexical match that fails to parse (e.g. 13/45/2020)
				// is scored as absent, not an error.
				continue
			}
			seen[raw] = true

			window := contextWindow(content, loc[0], loc[1])
			kind := inferDateKind(window)

			confidence := 0.85
			if kind != domain.DateGeneral {
				confidence = 0.95
			}

			out = append(out, domain.ExtractedDate{
				Value:      value,
				Raw:        raw,
				Kind:       kind,
				Confidence: confidence,
				Context:    window,
			})
		}
	}

	return out
}

// inferDateKind classifies a date from its context window.
func inferDateKind(window string) domain.DateKind {
	lower := strings.ToLower(window)
	for _, entry := range dateKindCues {
		for _, cue := range entry.cues {
			if strings.Contains(lower, cue) {
				return entry.kind
			}
		}
	}
	return domain.DateGeneral
}
