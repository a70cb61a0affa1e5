package driven

import "context"

// Embedder generates vector embeddings from text.
//
// The shipped implementation is PlaceholderEmbedding: a deterministic
// pseudo-hash, not a learned model. The interface contract is what
// callers may rely on: stable, deterministic for identical input, fixed
// dimensionality. A real embedding model implements the same interface.
type Embedder interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the fixed embedding vector size.
	Dimensions() int

	// ModelName returns the name of the embedding strategy in use.
	ModelName() string
}
