package claude

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phamtrung99/subtrans/internal/config"
	"github.com/phamtrung99/subtrans/internal/engine"
	"github.com/phamtrung99/subtrans/internal/logger"
)

func newTestEngine(t *testing.T, url string) engine.Engine {
	t.Helper()
	eng, err := New(config.ClaudeConfig{
		APIKey:  "test-key",
		Model:   "claude-sonnet-4-20250514",
		BaseURL: url,
	}, logger.NewWithWriter("error", &strings.Builder{}))
	if err != nil {
		t.Fatal(err)
	}
	return eng
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New(config.ClaudeConfig{}, logger.New("error"))
	if err == nil {
		t.Error("New() should fail without an API key")
	}
}

func TestTranslate(t *testing.T) {
	var gotKey, gotVersion string
	var gotReq messagesRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{
				{"type": "text", "text": "1\n00:00:01,000 --> 00:00:02,000\n你好\n"},
			},
		})
	}))
	defer server.Close()

	eng := newTestEngine(t, server.URL)
	out, err := eng.Translate(context.Background(), engine.Request{
		Prompt:         "Translate naturally.",
		SourceLanguage: "English",
		TargetLanguage: "Chinese",
		Text:           "1\n00:00:01,000 --> 00:00:02,000\nHello\n",
	})
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}

	if !strings.Contains(out, "你好") {
		t.Errorf("Translate() = %q", out)
	}
	if gotKey != "test-key" {
		t.Errorf("x-api-key = %q", gotKey)
	}
	if gotVersion != anthropicVersion {
		t.Errorf("anthropic-version = %q", gotVersion)
	}
	if gotReq.System == "" || len(gotReq.Messages) != 1 {
		t.Errorf("request = %+v, want system prompt + one user message", gotReq)
	}
}

func TestTranslateOverloadedRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(529)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{{"type": "text", "text": "ok"}},
		})
	}))
	defer server.Close()

	eng := newTestEngine(t, server.URL)
	impl := eng.(*implEngine)
	impl.retry.InitialBackoff = 0
	impl.retry.Jitter = 0

	out, err := eng.Translate(context.Background(), engine.Request{Text: "hi"})
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if out != "ok" || calls != 2 {
		t.Errorf("out = %q after %d calls", out, calls)
	}
}

func TestTranslateEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"content": []any{}})
	}))
	defer server.Close()

	eng := newTestEngine(t, server.URL)
	_, err := eng.Translate(context.Background(), engine.Request{Text: "hi"})
	if err == nil {
		t.Error("Translate() should fail on empty content")
	}
}
