package translator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phamtrung99/subtrans/internal/lang"
	"github.com/phamtrung99/subtrans/internal/subtitle"
)

// Translate orchestrates the pipeline for one subtitle file: split into
// chunks, translate each through the engine with per-chunk caching, merge
// and write `<stem>_<target>.<ext>` into the target directory.
func (t *implTranslator) Translate(ctx context.Context, subtitlePath string) (string, error) {
	startTime := time.Now()
	jobID := uuid.NewString()[:8]

	source, err := lang.Normalize(t.opts.SourceLanguage)
	if err != nil {
		return "", fmt.Errorf("source language: %w", err)
	}
	target, err := lang.Normalize(t.opts.TargetLanguage)
	if err != nil {
		return "", fmt.Errorf("target language: %w", err)
	}

	doc, err := subtitle.Load(subtitlePath)
	if err != nil {
		return "", fmt.Errorf("load subtitle: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(subtitlePath), filepath.Ext(subtitlePath))
	outputPath := filepath.Join(t.opts.TargetDir,
		fmt.Sprintf("%s_%s%s", stem, target.Suffix(), filepath.Ext(subtitlePath)))

	if err := os.MkdirAll(t.opts.TargetDir, 0755); err != nil {
		return "", fmt.Errorf("create target dir: %w", err)
	}

	chunks := subtitle.Split(doc.Cues, t.cfg.Translation.ChunkSize)
	t.logger.Info(ctx, "[%s] Translating %s: %d cues in %d chunks (%s -> %s, engine %s)",
		jobID, subtitlePath, len(doc.Cues), len(chunks), source.Name, target.Name, t.engine.Name())

	if len(chunks) == 0 {
		t.logger.Warn(ctx, "[%s] No cues found in %s, writing empty output", jobID, subtitlePath)
		if err := doc.Save(outputPath); err != nil {
			return "", err
		}
		return outputPath, nil
	}

	// The cache dir name is derived from the input so an interrupted run
	// resumes without re-spending API quota.
	cacheDir := filepath.Join(t.cfg.Paths.Temp, fmt.Sprintf("%s_%s", stem, target.Suffix()))
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	translated, err := t.translateChunks(ctx, jobID, chunks, cacheDir, source, target)
	if err != nil {
		return "", err
	}

	merged := subtitle.Merge(translated)

	out := &subtitle.Document{Format: doc.Format, Cues: merged}
	if doc.Format == subtitle.FormatASS {
		out, err = doc.WithCues(merged)
		if err != nil {
			return "", fmt.Errorf("merge ass translation: %w", err)
		}
	}

	if err := out.Save(outputPath); err != nil {
		return "", err
	}

	if err := os.RemoveAll(cacheDir); err != nil {
		t.logger.Warn(ctx, "[%s] Failed to clean cache dir %s: %v", jobID, cacheDir, err)
	}

	t.logger.Info(ctx, "[%s] Translation completed in %s: %s", jobID, time.Since(startTime), outputPath)
	return outputPath, nil
}

// translateChunks runs the chunk translations under a bounded worker
// pool, preserving chunk order in the result.
func (t *implTranslator) translateChunks(ctx context.Context, jobID string, chunks [][]subtitle.Cue, cacheDir string, source, target lang.Language) ([][]subtitle.Cue, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([][]subtitle.Cue, len(chunks))
	sem := newSemaphore(t.cfg.Performance.MaxConcurrent)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		done     int
	)

	for i, chunk := range chunks {
		if err := sem.acquire(ctx); err != nil {
			break
		}

		wg.Add(1)
		go func(i int, chunk []subtitle.Cue) {
			defer wg.Done()
			defer sem.release()

			cues, err := t.translateChunk(ctx, jobID, i, chunk, cacheDir, source, target)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("chunk %d: %w", i+1, err)
					cancel()
				}
				return
			}
			results[i] = cues
			done++
			if t.opts.Progress != nil {
				t.opts.Progress(done, len(chunks))
			}
		}(i, chunk)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
