package domain

import "time"

// AnalysisConfig is the configuration bag consumed at construction.
type AnalysisConfig struct {
	// EnableDeepAnalysis enables contract clause extraction
	// (terms, obligations, rights). On by default.
	EnableDeepAnalysis bool `toml:"enable_deep_analysis"`

	// ExtractMetadata enables title/description/type synthesis.
	ExtractMetadata bool `toml:"extract_metadata"`

	// DetectPII enables the PII scanning pass. When false, PII scanning
	// is skipped entirely and sensitivity derives from category alone.
	DetectPII bool `toml:"detect_pii"`

	// UseAdvancedModels is part of the cache key: results computed with
	// and without it are cached separately.
	UseAdvancedModels bool `toml:"use_advanced_models"`

	// LanguageModel names the configured model. Informational; the
	// heuristic extractor ignores it.
	LanguageModel string `toml:"language_model"`

	// LocalProcessing indicates all processing stays on-host.
	LocalProcessing bool `toml:"local_processing"`

	// AnonymizeResults drops entity context windows from results.
	AnonymizeResults bool `toml:"anonymize_results"`

	// Timeout bounds the whole Analyze call. Zero means no bound.
	Timeout time.Duration `toml:"timeout"`

	// MaxPages truncates extraction input. Zero means no truncation.
	MaxPages int `toml:"max_pages"`

	// ExpirationHorizon is the window for expiring-date warnings.
	ExpirationHorizon time.Duration `toml:"expiration_horizon"`
}

// DefaultAnalysisConfig returns the standard configuration.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		EnableDeepAnalysis: true,
		ExtractMetadata:    true,
		DetectPII:          true,
		UseAdvancedModels:  false,
		LanguageModel:      "heuristic-v1",
		LocalProcessing:    true,
		AnonymizeResults:   false,
		Timeout:            0,
		MaxPages:           0,
		ExpirationHorizon:  60 * 24 * time.Hour,
	}
}
