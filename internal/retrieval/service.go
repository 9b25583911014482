// ABOUTME: Retrieval service: top-K similarity search plus prompt fragment
// ABOUTME: Fragment shape is load-bearing for downstream answer quality
package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/mpardo/assistant-backend/internal/models"
	"github.com/mpardo/assistant-backend/internal/vectorstore"
)

// DefaultTopK is the number of chunks retrieved when the caller does not
// ask for a specific k.
const DefaultTopK = 4

// Embedder turns the query into a vector. Satisfied by llm.Client.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Searcher is the read-only slice of the vector store the service needs
type Searcher interface {
	Search(ctx context.Context, assistantID string, vector []float32, k int) ([]vectorstore.ScoredChunk, error)
}

// Service answers similarity queries against an assistant's collection
type Service struct {
	embedder Embedder
	store    Searcher
}

// NewService creates a retrieval service
func NewService(embedder Embedder, store Searcher) *Service {
	return &Service{embedder: embedder, store: store}
}

// Retrieve embeds the query, searches the assistant's collection, and
// returns the ranked results together with the formatted prompt fragment.
// Both always come from the same search call.
func (s *Service) Retrieve(ctx context.Context, assistantID, query string, k int) ([]models.RetrievalResult, string, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	vectors, err := s.embedder.EmbedBatch(ctx, []string{query})
	if err != nil {
		return nil, "", fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.store.Search(ctx, assistantID, vectors[0], k)
	if err != nil {
		return nil, "", fmt.Errorf("similarity search for assistant %s: %w", assistantID, err)
	}

	results := make([]models.RetrievalResult, 0, len(hits))
	var fragment strings.Builder
	for i, hit := range hits {
		// The "(i) content + \n\n" shape is interpolated verbatim into the
		// system prompt; ordering and separator must not change.
		fmt.Fprintf(&fragment, "(%d) %s + \n\n", i+1, hit.Chunk.Text)

		results = append(results, models.RetrievalResult{
			Document:   hit.Chunk.Metadata[models.DocumentNameKey],
			ChunkIndex: hit.Chunk.ChunkIndex,
			Score:      hit.Score,
			Content:    hit.Chunk.Text,
		})
	}

	return results, fragment.String(), nil
}
