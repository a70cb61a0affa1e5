package extract

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

var (
	personRe = regexp.MustCompile(`\b([A-Z][a-z]+) ([A-Z][a-z]+)\b`)

	orgRe = regexp.MustCompile(`\b((?:[A-Z][A-Za-z&'-]*\s+)+(?:Inc|LLC|Corp|Corporation|Company|Co|Ltd|LLP|Bank|Trust|Group|Associates|Partners))\b\.?`)
)

// personStopwords filters the worst capitalized-pair false positives:
// month names, day names, and common sentence openers.
var personStopwords = map[string]bool{
	"January": true, "February": true, "March": true, "April": true,
	"May": true, "June": true, "July": true, "August": true,
	"September": true, "October": true, "November": true, "December": true,
	"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
	"Friday": true, "Saturday": true, "Sunday": true,
	"The": true, "This": true, "That": true, "These": true, "Whereas": true,
	"New": true, "United": true, "North": true, "South": true, "East": true, "West": true,
}

// orgSuffixes are legal-entity suffixes; a "person" whose second word is
// one of these is really an organization fragment.
var orgSuffixes = map[string]bool{
	"Inc": true, "LLC": true, "Corp": true, "Corporation": true,
	"Company": true, "Co": true, "Ltd": true, "LLP": true,
	"Bank": true, "Trust": true, "Group": true,
	"Associates": true, "Partners": true,
	"Street": true, "Avenue": true, "Road": true, "Boulevard": true,
	"Drive": true, "Lane": true, "Court": true,
}

// ExtractPeople finds capitalized two-word sequences.
// A known source of false positives; intentionally heuristic.
func (h *Heuristic) ExtractPeople(content string) []domain.Entity {
	h.calls.Add(1)

	var out []domain.Entity
	seen := make(map[string]bool)

	for _, loc := range personRe.FindAllStringSubmatchIndex(content, -1) {
		text := content[loc[0]:loc[1]]
		if seen[text] {
			continue
		}

		first := content[loc[2]:loc[3]]
		second := content[loc[4]:loc[5]]
		if personStopwords[first] || personStopwords[second] || orgSuffixes[second] {
			continue
		}
		seen[text] = true

		out = append(out, domain.Entity{
			Text:       text,
			Confidence: 0.6,
			Context:    contextWindow(content, loc[0], loc[1]),
		})
	}

	return out
}

// ExtractOrganizations finds capitalized sequences followed by a
// legal-entity suffix.
func (h *Heuristic) ExtractOrganizations(content string) []domain.Entity {
	h.calls.Add(1)

	var out []domain.Entity
	seen := make(map[string]bool)

	for _, loc := range orgRe.FindAllStringSubmatchIndex(content, -1) {
		text := strings.TrimSpace(content[loc[2]:loc[3]])
		if seen[text] {
			continue
		}
		seen[text] = true

		out = append(out, domain.Entity{
			Text:       text,
			Confidence: 0.8,
			Context:    contextWindow(content, loc[0], loc[1]),
		})
	}

	return out
}
