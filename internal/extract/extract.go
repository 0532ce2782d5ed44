// Package extract reads embedded subtitle streams from video containers
// with ffmpeg, so videos can be dropped into the pipeline directly.
package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phamtrung99/subtrans/internal/logger"
	"github.com/phamtrung99/subtrans/pkg/executor"
)

type implExtractor struct {
	executor    executor.Executor
	logger      logger.Logger
	tempDir     string
	streamIndex int
}

// New creates an Extractor writing extracted streams under tempDir.
// streamIndex selects among multiple subtitle streams, 0 is the first.
func New(exec executor.Executor, log logger.Logger, tempDir string, streamIndex int) Extractor {
	return &implExtractor{
		executor:    exec,
		logger:      log,
		tempDir:     tempDir,
		streamIndex: streamIndex,
	}
}

// Extract converts the selected subtitle stream to SRT via ffmpeg.
func (e *implExtractor) Extract(ctx context.Context, videoPath string) (string, error) {
	if err := os.MkdirAll(e.tempDir, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	outputPath := filepath.Join(e.tempDir, stem+".srt")

	e.logger.Info(ctx, "Extracting subtitle stream %d from %s", e.streamIndex, videoPath)

	args := []string{
		"-y",
		"-i", videoPath,
		"-map", fmt.Sprintf("0:s:%d", e.streamIndex),
		outputPath,
	}

	if _, err := e.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract subtitle: %w", err)
	}

	e.logger.Info(ctx, "Subtitle extracted: %s", outputPath)
	return outputPath, nil
}

// IsVideo reports whether the path looks like a video container that can
// carry an embedded subtitle stream.
func IsVideo(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mkv", ".mp4", ".mov", ".avi", ".webm", ".m4v", ".ts":
		return true
	}
	return false
}
