// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Extractor: Heuristic entity and PII extraction
//   - ResultStore: Content-keyed analysis result cache
//   - IndexStore: Search index entry persistence
//   - Embedder: Deterministic embedding generation
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RuleStore: Rule set persistence. Without it, rules live in memory only.
//   - ConfigStore: Configuration persistence. Without it, defaults apply.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
