// Package openai implements a translation engine over the OpenAI Chat
// Completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/phamtrung99/subtrans/internal/config"
	"github.com/phamtrung99/subtrans/internal/engine"
	"github.com/phamtrung99/subtrans/internal/logger"
)

const defaultBaseURL = "https://api.openai.com/v1"

func init() {
	engine.Register(config.EngineOpenAI, func(cfg *config.Config, log logger.Logger) (engine.Engine, error) {
		return New(cfg.Engines.OpenAI, log)
	})
}

type implEngine struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	retry   engine.RetryConfig
	logger  logger.Logger
}

// New creates an OpenAI engine. BaseURL may point at any
// Chat-Completions-compatible endpoint.
func New(cfg config.OpenAIConfig, log logger.Logger) (engine.Engine, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: %w", engine.ErrNotConfigured)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	retry := engine.DefaultRetryConfig()
	retry.OnRetry = func(attempt int, err error, backoff time.Duration) {
		log.Warn(context.Background(), "OpenAI attempt %d failed, retrying in %s: %v", attempt, backoff, err)
	}

	return &implEngine{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Minute},
		retry:   retry,
		logger:  log,
	}, nil
}

func (e *implEngine) Name() string { return config.EngineOpenAI }

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (e *implEngine) Translate(ctx context.Context, req engine.Request) (string, error) {
	return engine.Retry(ctx, e.retry, func() (string, error) {
		return e.call(ctx, req)
	})
}

func (e *implEngine) call(ctx context.Context, req engine.Request) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: e.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.Instruction()},
			{Role: "user", Content: req.Text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &engine.APIError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", engine.ErrEmptyResponse
	}

	return parsed.Choices[0].Message.Content, nil
}
