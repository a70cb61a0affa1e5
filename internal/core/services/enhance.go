package services

import (
	"strings"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

// synonymTable expands query terms with domain vocabulary.
// Static on purpose; the query pipeline must stay deterministic.
var synonymTable = map[string][]string{
	"contract":  {"agreement"},
	"agreement": {"contract"},
	"invoice":   {"bill"},
	"bill":      {"invoice"},
	"doctor":    {"physician"},
	"physician": {"doctor"},
	"house":     {"property", "home"},
	"car":       {"vehicle", "auto"},
	"insurance": {"policy"},
	"tax":       {"taxes", "irs"},
	"will":      {"testament"},
	"lease":     {"rental"},
	"salary":    {"wage", "income"},
	"school":    {"education"},
}

// typoTable corrects common misspellings before term extraction.
var typoTable = map[string]string{
	"recieve":   "receive",
	"seperate":  "separate",
	"definate":  "definite",
	"occured":   "occurred",
	"insurence": "insurance",
	"morgage":   "mortgage",
	"liscense":  "license",
	"recipt":    "receipt",
	"agreemnt":  "agreement",
	"contarct":  "contract",
}

// enhanceQuery derives expanded and corrected variants of the query.
// The original query string is never mutated.
func enhanceQuery(query string) domain.QueryEnhancement {
	enhancement := domain.QueryEnhancement{Original: query}

	words := strings.Fields(strings.ToLower(query))
	corrected := make([]string, len(words))
	anyCorrection := false

	for i, word := range words {
		if fix, ok := typoTable[word]; ok {
			corrected[i] = fix
			anyCorrection = true
		} else {
			corrected[i] = word
		}
	}
	if anyCorrection {
		enhancement.Corrected = strings.Join(corrected, " ")
	}

	seen := make(map[string]bool, len(corrected))
	for _, word := range corrected {
		seen[word] = true
	}

	for _, word := range corrected {
		if variant := togglePlural(word); variant != "" && !seen[variant] {
			seen[variant] = true
			enhancement.Expanded = append(enhancement.Expanded, variant)
		}
		for _, synonym := range synonymTable[word] {
			if !seen[synonym] {
				seen[synonym] = true
				enhancement.Synonyms = append(enhancement.Synonyms, synonym)
			}
		}
	}

	return enhancement
}

// togglePlural flips a word between singular and plural, returning ""
// when no sensible toggle exists.
func togglePlural(word string) string {
	switch {
	case len(word) < 3:
		return ""
	case strings.HasSuffix(word, "ies"):
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "ses"), strings.HasSuffix(word, "xes"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s"):
		return word[:len(word)-1]
	case strings.HasSuffix(word, "y"):
		return word[:len(word)-1] + "ies"
	default:
		return word + "s"
	}
}

// queryTerms flattens an enhancement into the deduplicated term list
// used for scoring.
func queryTerms(enhancement domain.QueryEnhancement) []string {
	base := enhancement.Original
	if enhancement.Corrected != "" {
		base = enhancement.Corrected
	}

	var terms []string
	seen := make(map[string]bool)
	add := func(word string) {
		word = strings.ToLower(strings.TrimSpace(word))
		if word != "" && !seen[word] {
			seen[word] = true
			terms = append(terms, word)
		}
	}

	for _, word := range strings.Fields(base) {
		add(word)
	}
	for _, word := range enhancement.Expanded {
		add(word)
	}
	for _, word := range enhancement.Synonyms {
		add(word)
	}

	return terms
}
