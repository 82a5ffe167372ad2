package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smartassist/internal/models"
)

func scoredChunk(source string, page int, content string, similarity float64) models.ScoredChunk {
	return models.ScoredChunk{
		Chunk: models.Chunk{
			Source:  source,
			Page:    page,
			Content: content,
		},
		Similarity: similarity,
	}
}

func TestAnswerEmptyRetrievalSkipsGateway(t *testing.T) {
	gw := &fakeGateway{replies: []string{"should never be asked"}}
	svc := NewAnswerService(&fakeRetriever{}, gw, 3, zap.NewNop())

	answer, err := svc.Answer(context.Background(), "what is the refund policy?")

	require.NoError(t, err)
	assert.Equal(t, NoInformationAnswer, answer.Text)
	assert.Nil(t, answer.Source)
	assert.Equal(t, 0, gw.calls, "gateway must not be called when retrieval is empty")
}

func TestAnswerCitesTopChunkOnly(t *testing.T) {
	retriever := &fakeRetriever{results: []models.ScoredChunk{
		scoredChunk("handbook.pdf", 4, "Lab 3 closes at 10 PM on weekdays.", 0.91),
		scoredChunk("rules.pdf", 12, "After-hours access requires advisor approval.", 0.66),
	}}
	gw := &fakeGateway{replies: []string{"Lab 3 closes at 10 PM on weekdays."}}
	svc := NewAnswerService(retriever, gw, 3, zap.NewNop())

	answer, err := svc.Answer(context.Background(), "when does lab 3 close?")

	require.NoError(t, err)
	assert.Equal(t, "Lab 3 closes at 10 PM on weekdays.", answer.Text)
	require.NotNil(t, answer.Source)
	assert.Equal(t, "handbook.pdf, p.4", *answer.Source)
}

func TestAnswerPromptContainsAllChunks(t *testing.T) {
	retriever := &fakeRetriever{results: []models.ScoredChunk{
		scoredChunk("handbook.pdf", 4, "first chunk text", 0.9),
		scoredChunk("rules.pdf", 12, "second chunk text", 0.7),
	}}
	gw := &fakeGateway{replies: []string{"answer"}}
	svc := NewAnswerService(retriever, gw, 3, zap.NewNop())

	_, err := svc.Answer(context.Background(), "what are the rules?")

	require.NoError(t, err)
	require.Len(t, gw.prompts, 1)
	assert.Contains(t, gw.prompts[0], "first chunk text")
	assert.Contains(t, gw.prompts[0], "second chunk text")
	assert.Contains(t, gw.prompts[0], "what are the rules?")
}

func TestAnswerGatewayFailureReturnsError(t *testing.T) {
	retriever := &fakeRetriever{results: []models.ScoredChunk{
		scoredChunk("handbook.pdf", 1, "some context", 0.8),
	}}
	svc := NewAnswerService(retriever, &fakeGateway{err: ErrModelUnavailable}, 3, zap.NewNop())

	_, err := svc.Answer(context.Background(), "anything")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestAnswerTrimsReplyWhitespace(t *testing.T) {
	retriever := &fakeRetriever{results: []models.ScoredChunk{
		scoredChunk("handbook.pdf", 1, "context", 0.8),
	}}
	gw := &fakeGateway{replies: []string{"\n  The deadline is Friday.  \n"}}
	svc := NewAnswerService(retriever, gw, 3, zap.NewNop())

	answer, err := svc.Answer(context.Background(), "deadline?")

	require.NoError(t, err)
	assert.Equal(t, "The deadline is Friday.", answer.Text)
}
