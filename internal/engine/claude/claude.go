// Package claude implements a translation engine over the Anthropic
// Messages API.
package claude

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

const (
	defaultBaseURL   = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
	maxTokens        = 64000
)

func init() {
	engine.Register(config.EngineClaude, func(cfg *config.Config, log logger.Logger) (engine.Engine, error) {
		return New(cfg.Engines.Claude, log)
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

// New creates a Claude engine.
func New(cfg config.ClaudeConfig, log logger.Logger) (engine.Engine, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("claude: %w", engine.ErrNotConfigured)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	retry := engine.DefaultRetryConfig()
	retry.OnRetry = func(attempt int, err error, backoff time.Duration) {
		log.Warn(context.Background(), "Claude attempt %d failed, retrying in %s: %v", attempt, backoff, err)
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

func (e *implEngine) Name() string { return config.EngineClaude }

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (e *implEngine) Translate(ctx context.Context, req engine.Request) (string, error) {
	return engine.Retry(ctx, e.retry, func() (string, error) {
		return e.call(ctx, req)
	})
}

func (e *implEngine) call(ctx context.Context, req engine.Request) (string, error) {
	body, err := json.Marshal(messagesRequest{
		Model:     e.model,
		MaxTokens: maxTokens,
		System:    req.Instruction(),
		Messages: []message{
			{Role: "user", Content: req.Text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", e.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("claude request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &engine.APIError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var parsed messagesResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	var text string
	for _, block := range parsed.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return "", engine.ErrEmptyResponse
	}

	return text, nil
}
