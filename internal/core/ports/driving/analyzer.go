package driving

import (
	"context"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

// Analyzer produces structured analyses of document text.
type Analyzer interface {
	// Analyze runs the full pipeline: classification, entity extraction,
	// insight generation, PII detection, metadata synthesis.
	//
	// Content may be raw text bytes; binary blobs must be textified by an
	// external extraction step before calling. For identical (content,
	// filename, advanced-models config) the cached result is returned
	// without recomputation. The operation is all-or-nothing: no partial
	// result is ever returned on failure.
	Analyze(ctx context.Context, content []byte, filename, mimeType string) (*domain.AnalysisResult, error)

	// Classify scores content against the fixed category pattern groups
	// and returns the winning category. Ties break to the first declared
	// category.
	Classify(ctx context.Context, content, filename string) (domain.Category, error)

	// ExtractKeyInformation runs only the entity extraction stage.
	ExtractKeyInformation(ctx context.Context, content string) (*domain.KeyInformation, error)
}
