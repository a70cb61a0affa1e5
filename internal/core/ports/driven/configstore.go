package driven

import "github.com/custodia-labs/docmind/internal/core/domain"

// ConfigStore persists the analysis configuration bag.
type ConfigStore interface {
	// Load retrieves the stored configuration.
	// Returns defaults if nothing has been saved.
	Load() (*domain.AnalysisConfig, error)

	// Save stores the configuration.
	Save(cfg *domain.AnalysisConfig) error
}
