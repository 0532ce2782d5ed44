// Package gemini implements the Google Gemini translation engine.
package gemini

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"

	"github.com/phamtrung99/subtrans/internal/config"
	"github.com/phamtrung99/subtrans/internal/engine"
	"github.com/phamtrung99/subtrans/internal/logger"
)

func init() {
	engine.Register(config.EngineGemini, func(cfg *config.Config, log logger.Logger) (engine.Engine, error) {
		return New(cfg.Engines.Gemini, log)
	})
}

type implEngine struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger
}

// New creates a Gemini engine that rotates through the supplied API keys
// on quota errors.
func New(cfg config.GeminiConfig, log logger.Logger) (engine.Engine, error) {
	var keys []string
	for _, k := range cfg.APIKeys {
		if k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("gemini: %w", engine.ErrNotConfigured)
	}

	return &implEngine{
		apiKeys: keys,
		model:   cfg.Model,
		logger:  log,
	}, nil
}

func (e *implEngine) Name() string { return config.EngineGemini }

// Translate sends the chunk to Gemini. Rotates API keys on 429 / quota
// errors so a pool of free-tier keys can cover a long file.
func (e *implEngine) Translate(ctx context.Context, req engine.Request) (string, error) {
	prompt := req.Instruction() + "\n---\n" + req.Text

	attempts := len(e.apiKeys)
	var lastErr error

	for range attempts {
		keyIndex, key := e.snapshotKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			e.rotateKey(keyIndex)
			continue
		}

		result, err := client.Models.GenerateContent(ctx, e.model, genai.Text(prompt), generationConfig())
		if err != nil {
			if engine.IsRateLimit(err) {
				e.logger.Warn(ctx, "Gemini key %d rate limited, rotating...", keyIndex+1)
				e.rotateKey(keyIndex)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			if text != "" {
				return text, nil
			}
		}

		return "", engine.ErrEmptyResponse
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (e *implEngine) snapshotKey() (int, string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentKey, e.apiKeys[e.currentKey]
}

// rotateKey advances past the given key. Concurrent chunk workers that
// saw the same exhausted key only rotate once.
func (e *implEngine) rotateKey(seen int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.currentKey == seen {
		e.currentKey = (e.currentKey + 1) % len(e.apiKeys)
	}
}

// generationConfig mirrors the settings the tool has always used for
// subtitle translation: plain text out, no thinking budget, safety
// filters off so dialogue is never silently dropped.
func generationConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](1),
		TopP:             genai.Ptr[float32](0.95),
		TopK:             genai.Ptr[float32](64),
		MaxOutputTokens:  65536,
		ResponseMIMEType: "text/plain",
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr[int32](0),
		},
		SafetySettings: []*genai.SafetySetting{
			{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockNone},
		},
	}
}
