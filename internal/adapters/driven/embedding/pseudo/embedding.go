// Package pseudo provides a deterministic, dependency-free embedder.
// Vectors are hash-bucketed word counts, so identical text always
// produces identical vectors. Useful offline and in tests; not a
// semantic model.
package pseudo

import (
	"context"
	"hash/fnv"
	"math"
	"strings"

	"github.com/custodia-labs/docmind/internal/core/ports/driven"
)

// Ensure Embedder implements the interface.
var _ driven.Embedder = (*Embedder)(nil)

// DefaultDimensions is the vector size when none is configured.
const DefaultDimensions = 64

const modelName = "pseudo-hash-v1"

// Embedder generates deterministic pseudo-embeddings.
type Embedder struct {
	dimensions int
}

// NewEmbedder creates a pseudo-embedder. A non-positive dimensions
// value falls back to DefaultDimensions.
func NewEmbedder(dimensions int) *Embedder {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &Embedder{dimensions: dimensions}
}

// Embed hashes each word into a bucket and L2-normalizes the counts.
// Empty text yields a zero vector.
func (e *Embedder) Embed(_ context.Context, text string) ([]float32, error) {
	vector := make([]float32, e.dimensions)

	for _, word := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(word))
		vector[h.Sum32()%uint32(e.dimensions)]++
	}

	var norm float64
	for _, v := range vector {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vector {
			vector[i] *= scale
		}
	}

	return vector, nil
}

// Dimensions returns the vector size.
func (e *Embedder) Dimensions() int {
	return e.dimensions
}

// ModelName identifies the embedding scheme.
func (e *Embedder) ModelName() string {
	return modelName
}
