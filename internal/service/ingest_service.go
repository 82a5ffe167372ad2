package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"smartassist/internal/models"
	"smartassist/pkg/config"

	"github.com/gen2brain/go-fitz"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IngestService splits uploaded PDFs into overlapping text windows, embeds
// each window, and stores the chunks in the vector index.
type IngestService struct {
	index        ChunkIndex
	embedder     Embedder
	chunkSize    int
	chunkOverlap int
	logger       *zap.Logger
}

func NewIngestService(index ChunkIndex, embedder Embedder, cfg *config.RAGConfig, logger *zap.Logger) *IngestService {
	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 500
	}
	chunkOverlap := cfg.ChunkOverlap
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = 50
	}
	return &IngestService{
		index:        index,
		embedder:     embedder,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		logger:       logger,
	}
}

// IngestPDF indexes a PDF document and returns the number of chunks stored.
// A page whose text extraction fails, or that yields no text, is skipped so
// one bad page never aborts the whole document.
func (s *IngestService) IngestPDF(ctx context.Context, data []byte, filename string) (int, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var texts []string
	var pages []int
	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			s.logger.Warn("Failed to extract text from page",
				zap.Int("page", i+1),
				zap.String("file", filename),
				zap.Error(err),
			)
			continue
		}
		if strings.TrimSpace(pageText) == "" {
			continue
		}

		for _, window := range splitText(pageText, s.chunkSize, s.chunkOverlap) {
			texts = append(texts, window)
			pages = append(pages, i+1)
		}
	}

	if len(texts) == 0 {
		s.logger.Warn("No extractable text in document", zap.String("file", filename))
		return 0, nil
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("failed to embed chunks: %w", err)
	}

	now := time.Now()
	chunks := make([]*models.Chunk, len(texts))
	for i := range texts {
		chunks[i] = &models.Chunk{
			ID:        uuid.New(),
			Source:    filename,
			Page:      pages[i],
			Content:   texts[i],
			Embedding: embeddings[i],
			CreatedAt: now,
		}
	}

	if err := s.index.Store(ctx, chunks); err != nil {
		return 0, fmt.Errorf("failed to store chunks: %w", err)
	}

	s.logger.Info("Document ingested",
		zap.String("file", filename),
		zap.Int("pages", doc.NumPage()),
		zap.Int("chunks", len(chunks)),
	)

	return len(chunks), nil
}

// splitText cuts text into windows of at most size runes. Consecutive
// windows share overlap runes so a sentence straddling a boundary is never
// lost to both sides.
func splitText(text string, size, overlap int) []string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= size {
		return []string{string(runes)}
	}

	step := size - overlap
	var windows []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		window := strings.TrimSpace(string(runes[start:end]))
		if window != "" {
			windows = append(windows, window)
		}
		if end == len(runes) {
			break
		}
	}
	return windows
}
