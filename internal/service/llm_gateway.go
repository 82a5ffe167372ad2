package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"smartassist/pkg/config"

	"go.uber.org/zap"
)

// ErrModelUnavailable is returned when the model-serving process cannot be
// reached or does not answer within the request timeout. Callers pick their
// own fallback, the gateway never retries.
var ErrModelUnavailable = errors.New("language model unavailable")

// Gateway is the single boundary to the language model. It applies no
// semantic transformation of its own, so intent classification, entity
// extraction, and answer generation share one integration point and one
// timeout policy.
type Gateway interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OllamaGateway implements Gateway against the Ollama generate API.
type OllamaGateway struct {
	baseURL string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

func NewOllamaGateway(cfg *config.OllamaConfig, logger *zap.Logger) *OllamaGateway {
	return &OllamaGateway{
		baseURL: cfg.BaseURL,
		model:   cfg.ChatModel,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func (g *OllamaGateway) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := ollamaGenerateRequest{
		Model:  g.model,
		Prompt: prompt,
		Stream: false,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"/api/generate", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn("Ollama request failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.logger.Warn("Ollama returned non-OK status", zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("%w: status %d", ErrModelUnavailable, resp.StatusCode)
	}

	var genResp ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrModelUnavailable, err)
	}

	return genResp.Response, nil
}
