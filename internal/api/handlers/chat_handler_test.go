package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smartassist/internal/dto"
	"smartassist/internal/models"
	"smartassist/internal/service"
)

type fixedClassifier struct {
	label models.IntentLabel
}

func (f fixedClassifier) Classify(ctx context.Context, message string) models.IntentLabel {
	return f.label
}

type emptyExtractor struct{}

func (emptyExtractor) Extract(ctx context.Context, message string) models.BookingDraft {
	return models.BookingDraft{}
}

type fixedComposer struct {
	answer models.Answer
}

func (f fixedComposer) Answer(ctx context.Context, question string) (models.Answer, error) {
	return f.answer, nil
}

func newChatTestApp(classifier service.IntentClassifier, composer service.AnswerComposer) *fiber.App {
	logger := zap.NewNop()
	chatService := service.NewChatService(classifier, emptyExtractor{}, composer, logger)
	handler := NewChatHandler(chatService, logger)

	app := fiber.New()
	app.Post("/chat", handler.Chat)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestChatAnswersQuestion(t *testing.T) {
	source := "handbook.pdf, p.2"
	app := newChatTestApp(
		fixedClassifier{label: models.IntentQuestion},
		fixedComposer{answer: models.Answer{Text: "Office hours are 9 to 5.", Source: &source}},
	)

	resp := postJSON(t, app, "/chat", dto.ChatRequest{Message: "what are the office hours?", UserID: "student1"})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.ChatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "answer", body.Type)
	assert.Equal(t, "Office hours are 9 to 5.", body.Content)
	require.NotNil(t, body.Source)
	assert.Equal(t, source, *body.Source)
}

func TestChatUnclearMessage(t *testing.T) {
	app := newChatTestApp(fixedClassifier{label: models.IntentUnclear}, fixedComposer{})

	resp := postJSON(t, app, "/chat", dto.ChatRequest{Message: "asdfgh"})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.ChatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "unclear", body.Type)
	assert.NotEmpty(t, body.Content)
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	app := newChatTestApp(fixedClassifier{label: models.IntentQuestion}, fixedComposer{})

	resp := postJSON(t, app, "/chat", dto.ChatRequest{Message: ""})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChatRejectsMalformedBody(t *testing.T) {
	app := newChatTestApp(fixedClassifier{label: models.IntentQuestion}, fixedComposer{})

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
