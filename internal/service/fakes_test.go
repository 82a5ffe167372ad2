package service

import (
	"context"
	"errors"
	"hash/fnv"
	"math"
	"sort"
	"strings"

	"smartassist/internal/models"
)

// fakeGateway replays scripted replies and records every prompt it sees.
type fakeGateway struct {
	replies []string
	err     error
	calls   int
	prompts []string
}

func (g *fakeGateway) Complete(ctx context.Context, prompt string) (string, error) {
	g.calls++
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	if len(g.replies) == 0 {
		return "", nil
	}
	reply := g.replies[0]
	if len(g.replies) > 1 {
		g.replies = g.replies[1:]
	}
	return reply, nil
}

// fakeEmbedder maps text to a deterministic bag-of-words vector so that
// texts sharing words land near each other in the fake embedding space.
type fakeEmbedder struct{}

func (fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vector := make([]float32, 32)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(strings.Trim(word, ".,?!:;")))
		vector[h.Sum32()%32]++
	}
	return vector, nil
}

func (e fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i], _ = e.Embed(ctx, text)
	}
	return vectors, nil
}

type failingEmbedder struct{}

func (failingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return nil, errors.New("embedding model unreachable")
}

func (failingEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, errors.New("embedding model unreachable")
}

// memoryIndex is a flat cosine scan over stored chunks, ordered by
// descending similarity with insertion order breaking ties.
type memoryIndex struct {
	chunks []*models.Chunk
}

func (m *memoryIndex) Store(ctx context.Context, chunks []*models.Chunk) error {
	m.chunks = append(m.chunks, chunks...)
	return nil
}

func (m *memoryIndex) Search(ctx context.Context, embedding []float32, k int) ([]models.ScoredChunk, error) {
	scored := make([]models.ScoredChunk, 0, len(m.chunks))
	for _, chunk := range m.chunks {
		scored = append(scored, models.ScoredChunk{
			Chunk:      *chunk,
			Similarity: cosine(embedding, chunk.Embedding),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// fakeRetriever returns fixed results without touching an embedder.
type fakeRetriever struct {
	results []models.ScoredChunk
	err     error
}

func (r *fakeRetriever) Retrieve(ctx context.Context, query string, k int) ([]models.ScoredChunk, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.results, nil
}

// Orchestrator stubs

type stubClassifier struct {
	label models.IntentLabel
}

func (s stubClassifier) Classify(ctx context.Context, message string) models.IntentLabel {
	return s.label
}

type stubExtractor struct {
	draft models.BookingDraft
}

func (s stubExtractor) Extract(ctx context.Context, message string) models.BookingDraft {
	return s.draft
}

type stubComposer struct {
	answer models.Answer
	err    error
	calls  int
}

func (s *stubComposer) Answer(ctx context.Context, question string) (models.Answer, error) {
	s.calls++
	if s.err != nil {
		return models.Answer{}, s.err
	}
	return s.answer, nil
}

func strptr(s string) *string {
	return &s
}
