// Package extract implements the heuristic entity extractor.
//
// Every extractor here is pattern-based and explicitly heuristic: dates
// come from a handful of literal formats, people are capitalized
// two-word sequences, organizations are capitalized runs ending in a
// legal-entity suffix. This is a deliberate stand-in for a real NLP
// backend, not production-accurate entity recognition. The analyzer
// consumes it through the driven.Extractor port so a learned model can
// replace it without touching orchestration.
package extract
