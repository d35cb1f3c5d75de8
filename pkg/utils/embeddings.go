package utils

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"github.com/pgvector/pgvector-go"
	openai "github.com/sashabaranov/go-openai"
)

const embeddingDimensions = 1536

type EmbeddingClientInterface interface {
	GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error)
}

// NewEmbeddingClient picks the embedding backend. "openai" needs a key;
// "local" is the hash-based fallback and never leaves the process.
func NewEmbeddingClient(provider, apiKey string) (EmbeddingClientInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai embedding provider")
		}
		return &OpenAIEmbeddingClient{client: openai.NewClient(apiKey)}, nil
	case "", "local":
		return &HashEmbeddingClient{}, nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", provider)
	}
}

type OpenAIEmbeddingClient struct {
	client *openai.Client
}

func (c *OpenAIEmbeddingClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.SmallEmbedding3,
	})
	if err != nil {
		return pgvector.Vector{}, err
	}
	if len(resp.Data) == 0 {
		return pgvector.Vector{}, fmt.Errorf("no embedding returned")
	}
	return pgvector.NewVector(resp.Data[0].Embedding), nil
}

// HashEmbeddingClient builds a deterministic word-hash vector. Crude, but it
// keeps similarity search working without an external credential.
type HashEmbeddingClient struct{}

func (c *HashEmbeddingClient) GetEmbedding(_ context.Context, text string) (pgvector.Vector, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	words := strings.Fields(text)

	vector := make([]float32, embeddingDimensions)
	for _, word := range words {
		hash := hashWord(word)
		for i := 0; i < embeddingDimensions; i++ {
			influence := math.Sin(float64(hash+uint32(i))) * 0.1
			vector[i] += float32(influence)
		}
	}

	var magnitude float32
	for _, val := range vector {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))
	if magnitude > 0 {
		for i := range vector {
			vector[i] /= magnitude
		}
	}
	return pgvector.NewVector(vector), nil
}

func hashWord(word string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(word))
	return h.Sum32()
}
