package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmbeddingClient(t *testing.T) {
	client, err := NewEmbeddingClient("", "")
	require.NoError(t, err)
	assert.IsType(t, &HashEmbeddingClient{}, client)

	client, err = NewEmbeddingClient("local", "")
	require.NoError(t, err)
	assert.IsType(t, &HashEmbeddingClient{}, client)

	_, err = NewEmbeddingClient("openai", "")
	require.Error(t, err)

	client, err = NewEmbeddingClient("openai", "sk-test")
	require.NoError(t, err)
	assert.IsType(t, &OpenAIEmbeddingClient{}, client)

	_, err = NewEmbeddingClient("cohere", "")
	require.Error(t, err)
}

func TestHashEmbeddingIsDeterministicAndNormalized(t *testing.T) {
	client := &HashEmbeddingClient{}

	a, err := client.GetEmbedding(t.Context(), "Lisboa história gastronomia")
	require.NoError(t, err)
	b, err := client.GetEmbedding(t.Context(), "lisboa  história gastronomia ")
	require.NoError(t, err)

	// Case and whitespace do not change the vector.
	assert.Equal(t, a.Slice(), b.Slice())
	require.Len(t, a.Slice(), 1536)

	var magnitude float64
	for _, v := range a.Slice() {
		magnitude += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(magnitude), 1e-3)
}

func TestHashEmbeddingDistinguishesTexts(t *testing.T) {
	client := &HashEmbeddingClient{}

	a, err := client.GetEmbedding(t.Context(), "Lisboa")
	require.NoError(t, err)
	b, err := client.GetEmbedding(t.Context(), "Manaus")
	require.NoError(t, err)

	assert.NotEqual(t, a.Slice(), b.Slice())
}
