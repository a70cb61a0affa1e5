package pseudo

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedder_Deterministic(t *testing.T) {
	embedder := NewEmbedder(64)
	ctx := context.Background()

	first, err := embedder.Embed(ctx, "the quick brown fox")
	require.NoError(t, err)
	second, err := embedder.Embed(ctx, "the quick brown fox")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEmbedder_Dimensions(t *testing.T) {
	embedder := NewEmbedder(32)
	assert.Equal(t, 32, embedder.Dimensions())

	vector, err := embedder.Embed(context.Background(), "hello world")
	require.NoError(t, err)
	assert.Len(t, vector, 32)
}

func TestEmbedder_DefaultDimensions(t *testing.T) {
	embedder := NewEmbedder(0)
	assert.Equal(t, DefaultDimensions, embedder.Dimensions())
}

func TestEmbedder_Normalized(t *testing.T) {
	embedder := NewEmbedder(64)

	vector, err := embedder.Embed(context.Background(), "lease agreement between landlord and tenant")
	require.NoError(t, err)

	var norm float64
	for _, v := range vector {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 0.0001)
}

func TestEmbedder_EmptyText(t *testing.T) {
	embedder := NewEmbedder(64)

	vector, err := embedder.Embed(context.Background(), "")
	require.NoError(t, err)
	for _, v := range vector {
		assert.Zero(t, v)
	}
}

func TestEmbedder_DifferentTextDiffers(t *testing.T) {
	embedder := NewEmbedder(64)
	ctx := context.Background()

	a, err := embedder.Embed(ctx, "insurance policy premium")
	require.NoError(t, err)
	b, err := embedder.Embed(ctx, "academic transcript semester")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
