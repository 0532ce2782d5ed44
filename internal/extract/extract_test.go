package extract

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phamtrung99/subtrans/internal/logger"
)

type fakeExecutor struct {
	name string
	args []string
	err  error
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.name = name
	f.args = args
	return "", f.err
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func TestExtract(t *testing.T) {
	exec := &fakeExecutor{}
	tempDir := t.TempDir()
	ex := New(exec, logger.NewWithWriter("error", &strings.Builder{}), tempDir, 1)

	out, err := ex.Extract(context.Background(), "/videos/movie.mkv")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if out != filepath.Join(tempDir, "movie.srt") {
		t.Errorf("output path = %s", out)
	}
	if exec.name != "ffmpeg" {
		t.Errorf("command = %q, want ffmpeg", exec.name)
	}

	joined := strings.Join(exec.args, " ")
	if !strings.Contains(joined, "-map 0:s:1") {
		t.Errorf("args = %q, want stream mapping 0:s:1", joined)
	}
}

func TestExtractFFmpegFailure(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("no subtitle stream")}
	ex := New(exec, logger.NewWithWriter("error", &strings.Builder{}), t.TempDir(), 0)

	if _, err := ex.Extract(context.Background(), "movie.mkv"); err == nil {
		t.Error("Extract() should propagate ffmpeg failure")
	}
}

func TestIsVideo(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"movie.mkv", true},
		{"movie.MP4", true},
		{"movie.srt", false},
		{"movie.ass", false},
		{"movie", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsVideo(tt.path); got != tt.want {
				t.Errorf("IsVideo(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
