package mock

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vectorMagnitude(v []float32) float64 {
	var sumSquares float64
	for _, f := range v {
		sumSquares += float64(f) * float64(f)
	}
	return math.Sqrt(sumSquares)
}

func TestEmbedTextProducesUnitVectors(t *testing.T) {
	embedder := NewMockEmbedder()
	ctx := context.Background()

	for _, text := range []string{
		"a warm knit hat",
		"Product ID: HAT0001\nProduct Name: Blue Hat",
		"x",
	} {
		vector, err := embedder.EmbedText(ctx, text)
		require.NoError(t, err)
		require.Len(t, vector, 384)
		assert.InDelta(t, 1.0, vectorMagnitude(vector), 1e-3, "magnitude for %q", text)
	}
}

func TestEmbedTextDeterministic(t *testing.T) {
	embedder := NewMockEmbedder()
	ctx := context.Background()

	first, err := embedder.EmbedText(ctx, "canvas tote")
	require.NoError(t, err)
	second, err := embedder.EmbedText(ctx, "canvas tote")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := embedder.EmbedText(ctx, "linen shirt")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestEmbedTextsMatchesSingleEmbedding(t *testing.T) {
	embedder := NewMockEmbedder()
	ctx := context.Background()

	texts := []string{"blue hat", "canvas tote"}
	vectors, err := embedder.EmbedTexts(ctx, texts)
	require.NoError(t, err)
	require.Len(t, vectors, len(texts))

	for i, text := range texts {
		single, err := embedder.EmbedText(ctx, text)
		require.NoError(t, err)
		assert.Equal(t, single, vectors[i])
	}
}

func TestEmbedderFuncInjection(t *testing.T) {
	embedder := NewMockEmbedder()
	ctx := context.Background()

	boom := errors.New("embedding endpoint down")
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, boom
	}

	_, err := embedder.EmbedText(ctx, "anything")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, embedder.CallCount())

	embedder.Reset()
	assert.Equal(t, 0, embedder.CallCount())
	_, err = embedder.EmbedText(ctx, "anything")
	assert.NoError(t, err)
}
