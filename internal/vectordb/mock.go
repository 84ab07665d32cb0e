package vectordb

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
)

// MockEmbedder produces deterministic pseudo-embeddings for local
// development without API credentials.
type MockEmbedder struct {
	dimension int
}

func NewMockEmbedder(dimension int) *MockEmbedder {
	return &MockEmbedder{dimension: dimension}
}

func (m *MockEmbedder) CreateEmbedding(_ context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, 0, len(texts))

	for _, text := range texts {
		sum := sha256.Sum256([]byte(text))
		vec := make([]float32, m.dimension)
		for i := range vec {
			word := binary.LittleEndian.Uint32(sum[(i*4)%(len(sum)-4):])
			vec[i] = float32(word%2000)/1000 - 1
		}
		embeddings = append(embeddings, vec)
	}

	return embeddings, nil
}
