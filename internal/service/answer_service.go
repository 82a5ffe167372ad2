package service

import (
	"context"
	"fmt"
	"strings"

	"smartassist/internal/models"

	"go.uber.org/zap"
)

// NoInformationAnswer is returned verbatim whenever retrieval comes back
// empty. The gateway is never invoked in that case: an empty context must
// degrade to "no information", not to a hallucinated answer.
const NoInformationAnswer = "I don't have information on this in the current knowledge base."

// Retriever is the slice of RetrieverService the answer composer needs.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]models.ScoredChunk, error)
}

// AnswerService composes grounded answers from retrieved chunks.
type AnswerService struct {
	retriever Retriever
	gateway   Gateway
	topK      int
	logger    *zap.Logger
}

func NewAnswerService(retriever Retriever, gateway Gateway, topK int, logger *zap.Logger) *AnswerService {
	if topK <= 0 {
		topK = 3
	}
	return &AnswerService{
		retriever: retriever,
		gateway:   gateway,
		topK:      topK,
		logger:    logger,
	}
}

func buildAnswerPrompt(question, context string) string {
	return fmt.Sprintf(`You are CSIS SmartAssist, a helpful university department assistant.
Answer the question using only the context provided below.
If the answer is not in the context, say you don't have that information.

Context:
%s

Question: %s

Answer:`, context, question)
}

// Answer retrieves context for the question and generates a grounded
// answer. The citation names only the top-ranked chunk even though every
// retrieved chunk informs the prompt; downstream consumers rely on that
// single "source, p.N" form.
func (s *AnswerService) Answer(ctx context.Context, question string) (models.Answer, error) {
	results, err := s.retriever.Retrieve(ctx, question, s.topK)
	if err != nil {
		return models.Answer{}, fmt.Errorf("retrieval failed: %w", err)
	}

	if len(results) == 0 {
		return models.Answer{Text: NoInformationAnswer}, nil
	}

	contextParts := make([]string, len(results))
	for i, r := range results {
		contextParts[i] = r.Chunk.Content
	}

	reply, err := s.gateway.Complete(ctx, buildAnswerPrompt(question, strings.Join(contextParts, "\n\n")))
	if err != nil {
		return models.Answer{}, fmt.Errorf("answer generation failed: %w", err)
	}

	top := results[0].Chunk
	citation := fmt.Sprintf("%s, p.%d", top.Source, top.Page)

	s.logger.Info("Answer composed",
		zap.Int("chunks", len(results)),
		zap.String("source", citation),
	)

	return models.Answer{
		Text:   sanitizeUTF8(strings.TrimSpace(reply)),
		Source: &citation,
	}, nil
}
