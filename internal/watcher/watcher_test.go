package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/phamtrung99/subtrans/internal/logger"
)

func TestIsTranslatable(t *testing.T) {
	w := &implWatcher{}

	tests := []struct {
		path string
		want bool
	}{
		{"movie.srt", true},
		{"movie.ASS", true},
		{"movie.ssa", true},
		{"movie.mkv", true},
		{"movie.txt", false},
		{"movie.docx", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := w.isTranslatable(tt.path); got != tt.want {
				t.Errorf("isTranslatable(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestWatcherHandlesCreatedFile(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var handled []string
	handler := func(ctx context.Context, path string) error {
		mu.Lock()
		handled = append(handled, path)
		mu.Unlock()
		return nil
	}

	w, err := New(dir, handler, logger.NewWithWriter("error", &strings.Builder{}), 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Start(ctx)
	}()

	path := filepath.Join(dir, "movie.srt")
	if err := os.WriteFile(path, []byte("1\n00:00:01,000 --> 00:00:02,000\nHi\n"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		mu.Lock()
		n := len(handled)
		mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("handler was not invoked for created file")
		case <-time.After(50 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	if handled[0] != path {
		t.Errorf("handled %q, want %q", handled[0], path)
	}
}

func TestNewRejectsMissingDir(t *testing.T) {
	_, err := New("/nonexistent/path", func(ctx context.Context, _ string) error { return nil },
		logger.NewWithWriter("error", &strings.Builder{}), 1)
	if err == nil {
		t.Error("New() should fail for a missing directory")
	}
}
