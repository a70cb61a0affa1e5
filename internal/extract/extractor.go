package extract

import (
	"strings"
	"sync/atomic"

	"github.com/custodia-labs/docmind/internal/core/ports/driven"
)

// contextRadius is the number of characters kept either side of a match.
const contextRadius = 40

// Ensure Heuristic implements the interface.
var _ driven.Extractor = (*Heuristic)(nil)

// Heuristic is the regex-based implementation of driven.Extractor.
// It is stateless apart from a call counter used by tests to observe
// cache hits (a cached analysis must not re-run extraction).
type Heuristic struct {
	calls atomic.Int64
}

// New creates a new heuristic extractor.
func New() *Heuristic {
	return &Heuristic{}
}

// CallCount returns the number of extraction calls made so far.
func (h *Heuristic) CallCount() int64 {
	return h.calls.Load()
}

// contextWindow returns the ±contextRadius characters around [start,end).
func contextWindow(content string, start, end int) string {
	from := start - contextRadius
	if from < 0 {
		from = 0
	}
	to := end + contextRadius
	if to > len(content) {
		to = len(content)
	}
	return strings.TrimSpace(content[from:to])
}

// sentences splits content on common terminators and newlines.
func sentences(content string) []string {
	var out []string
	var current strings.Builder

	for _, r := range content {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			s := strings.TrimSpace(current.String())
			if s != "" {
				out = append(out, s)
			}
			current.Reset()
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		out = append(out, s)
	}

	return out
}
