package translator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phamtrung99/subtrans/internal/engine"
	"github.com/phamtrung99/subtrans/internal/lang"
	"github.com/phamtrung99/subtrans/internal/subtitle"
)

// translateChunk translates one chunk of cues, reusing a cached result
// when the previous run already paid for it.
func (t *implTranslator) translateChunk(ctx context.Context, jobID string, index int, cues []subtitle.Cue, cacheDir string, source, target lang.Language) ([]subtitle.Cue, error) {
	cachePath := filepath.Join(cacheDir, fmt.Sprintf("chunk_%08d_%s.srt", index+1, target.Suffix()))

	if cached, err := os.ReadFile(cachePath); err == nil {
		parsed, err := subtitle.ParseSRT(strings.NewReader(string(cached)))
		if err == nil && len(parsed) > 0 {
			t.logger.Debug(ctx, "[%s] Chunk %d: cache hit", jobID, index+1)
			return parsed, nil
		}
		t.logger.Warn(ctx, "[%s] Chunk %d: discarding unreadable cache file %s", jobID, index+1, cachePath)
	}

	chunkText := subtitle.ComposeSRT(cues)

	// Source chunk is kept on disk for inspection when a run goes wrong.
	sourcePath := filepath.Join(cacheDir, fmt.Sprintf("chunk_%08d.srt", index+1))
	if err := os.WriteFile(sourcePath, []byte(chunkText), 0644); err != nil {
		t.logger.Warn(ctx, "[%s] Chunk %d: failed to write source chunk: %v", jobID, index+1, err)
	}

	req := engine.Request{
		Prompt:         t.opts.Prompt,
		SourceLanguage: source.Name,
		TargetLanguage: target.Name,
		Text:           chunkText,
	}

	parsed, err := t.callAndParse(ctx, req)
	if err != nil {
		// One more engine call covers the occasional malformed response.
		t.logger.Warn(ctx, "[%s] Chunk %d: unparseable engine response, retrying once: %v", jobID, index+1, err)
		parsed, err = t.callAndParse(ctx, req)
		if err != nil {
			return nil, err
		}
	}

	if len(parsed) != len(cues) {
		t.logger.Warn(ctx, "[%s] Chunk %d: engine returned %d cues, source had %d",
			jobID, index+1, len(parsed), len(cues))
	}

	if err := os.WriteFile(cachePath, []byte(subtitle.ComposeSRT(parsed)), 0644); err != nil {
		t.logger.Warn(ctx, "[%s] Chunk %d: failed to cache result: %v", jobID, index+1, err)
	}

	t.logger.Debug(ctx, "[%s] Chunk %d: translated %d cues", jobID, index+1, len(parsed))
	return parsed, nil
}

func (t *implTranslator) callAndParse(ctx context.Context, req engine.Request) ([]subtitle.Cue, error) {
	response, err := t.engine.Translate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("engine translate: %w", err)
	}

	text := StripFence(response)
	parsed, err := subtitle.ParseSRT(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("parse engine response: %w", err)
	}
	if len(parsed) == 0 {
		return nil, fmt.Errorf("engine response contained no cues")
	}
	return parsed, nil
}

// StripFence unwraps a markdown code fence when the engine wraps its
// answer in one, e.g. ```srt ... ```.
func StripFence(s string) string {
	if !strings.Contains(s, "```") {
		return s
	}

	parts := strings.SplitN(s, "```", 3)
	if len(parts) < 2 {
		return s
	}

	inner := parts[1]
	// Drop a language hint on the opening fence line ("```srt").
	if idx := strings.IndexByte(inner, '\n'); idx >= 0 && isFenceHint(strings.TrimSpace(inner[:idx])) {
		inner = inner[idx+1:]
	}
	return inner
}

func isFenceHint(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
