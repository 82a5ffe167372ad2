package service

import (
	"context"
	"fmt"

	"smartassist/internal/models"
	"smartassist/pkg/config"

	"go.uber.org/zap"
)

// ChunkIndex is the vector index over ingested chunks. Append-only from
// the ingestion path, read-only from the query path.
type ChunkIndex interface {
	Store(ctx context.Context, chunks []*models.Chunk) error
	Search(ctx context.Context, embedding []float32, k int) ([]models.ScoredChunk, error)
}

// RetrieverService embeds a query and returns the nearest chunks. An empty
// index or nothing above the similarity floor yields an empty result, not
// an error.
type RetrieverService struct {
	index         ChunkIndex
	embedder      Embedder
	topK          int
	minSimilarity float64
	logger        *zap.Logger
}

func NewRetrieverService(index ChunkIndex, embedder Embedder, cfg *config.RAGConfig, logger *zap.Logger) *RetrieverService {
	topK := cfg.TopK
	if topK <= 0 {
		topK = 3
	}
	return &RetrieverService{
		index:         index,
		embedder:      embedder,
		topK:          topK,
		minSimilarity: cfg.MinSimilarity,
		logger:        logger,
	}
}

// Retrieve returns up to k chunks ordered by descending similarity. The
// query is embedded with the same model used at ingestion time.
func (s *RetrieverService) Retrieve(ctx context.Context, query string, k int) ([]models.ScoredChunk, error) {
	if k <= 0 {
		k = s.topK
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	results, err := s.index.Search(ctx, embedding, k)
	if err != nil {
		return nil, fmt.Errorf("failed to search index: %w", err)
	}

	// Drop hits below the relevance floor, keeping the store's ordering
	filtered := results[:0]
	for _, r := range results {
		if r.Similarity >= s.minSimilarity {
			filtered = append(filtered, r)
		}
	}

	s.logger.Debug("Retrieval completed",
		zap.String("query", query),
		zap.Int("hits", len(filtered)),
	)

	return filtered, nil
}
