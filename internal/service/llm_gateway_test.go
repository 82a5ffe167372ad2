package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smartassist/pkg/config"
)

func newOllamaTestConfig(baseURL string) *config.OllamaConfig {
	return &config.OllamaConfig{
		BaseURL:        baseURL,
		ChatModel:      "llama3",
		EmbeddingModel: "nomic-embed-text",
		Timeout:        5 * time.Second,
	}
}

func TestOllamaGatewayComplete(t *testing.T) {
	var gotReq ollamaGenerateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: "QUESTION", Done: true})
	}))
	defer srv.Close()

	gw := NewOllamaGateway(newOllamaTestConfig(srv.URL), zap.NewNop())

	reply, err := gw.Complete(context.Background(), "classify this")

	require.NoError(t, err)
	assert.Equal(t, "QUESTION", reply)
	assert.Equal(t, "llama3", gotReq.Model)
	assert.Equal(t, "classify this", gotReq.Prompt)
	assert.False(t, gotReq.Stream)
}

func TestOllamaGatewayNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	gw := NewOllamaGateway(newOllamaTestConfig(srv.URL), zap.NewNop())

	_, err := gw.Complete(context.Background(), "anything")

	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestOllamaGatewayServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	gw := NewOllamaGateway(newOllamaTestConfig(srv.URL), zap.NewNop())

	_, err := gw.Complete(context.Background(), "anything")

	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestOllamaGatewayMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	gw := NewOllamaGateway(newOllamaTestConfig(srv.URL), zap.NewNop())

	_, err := gw.Complete(context.Background(), "anything")

	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestOllamaEmbedderEmbed(t *testing.T) {
	var gotReq ollamaEmbedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embeddings", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(ollamaEmbedResponse{Embedding: []float32{0.1, 0.2, 0.3}})
	}))
	defer srv.Close()

	embedder := NewOllamaEmbedder(newOllamaTestConfig(srv.URL), zap.NewNop())

	vector, err := embedder.Embed(context.Background(), "lab hours")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vector)
	assert.Equal(t, "nomic-embed-text", gotReq.Model)
	assert.Equal(t, "lab hours", gotReq.Prompt)
}

func TestOllamaEmbedderEmptyEmbedding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaEmbedResponse{})
	}))
	defer srv.Close()

	embedder := NewOllamaEmbedder(newOllamaTestConfig(srv.URL), zap.NewNop())

	_, err := embedder.Embed(context.Background(), "anything")

	require.Error(t, err)
}

func TestOllamaEmbedderBatchPreservesOrder(t *testing.T) {
	var prompts []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaEmbedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		prompts = append(prompts, req.Prompt)
		json.NewEncoder(w).Encode(ollamaEmbedResponse{Embedding: []float32{float32(len(prompts))}})
	}))
	defer srv.Close()

	embedder := NewOllamaEmbedder(newOllamaTestConfig(srv.URL), zap.NewNop())

	vectors, err := embedder.EmbedBatch(context.Background(), []string{"one", "two", "three"})

	require.NoError(t, err)
	require.Len(t, vectors, 3)
	assert.Equal(t, []string{"one", "two", "three"}, prompts)
	assert.Equal(t, []float32{1}, vectors[0])
	assert.Equal(t, []float32{3}, vectors[2])
}
