package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigSetKeyCreatesFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	out, err := runCommand(t, "-c", cfgPath, "config", "set-key", "openai", "sk-test")
	if err != nil {
		t.Fatalf("set-key error = %v", err)
	}
	if !strings.Contains(out, "saved openai key") {
		t.Errorf("output = %q", out)
	}

	listing, err := runCommand(t, "-c", cfgPath, "engines")
	if err != nil {
		t.Fatalf("engines error = %v", err)
	}
	if !strings.Contains(listing, "openai") || !strings.Contains(listing, "configured") {
		t.Errorf("engines output = %q", listing)
	}
	if !strings.Contains(listing, "* openai") {
		t.Errorf("openai should be the default engine: %q", listing)
	}
}

func TestConfigSetKeyUnknownEngine(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	if _, err := runCommand(t, "-c", cfgPath, "config", "set-key", "deepl", "x"); err == nil {
		t.Error("set-key should reject unknown engine")
	}
}

func TestConfigShowRedactsKeys(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	if _, err := runCommand(t, "-c", cfgPath, "config", "set-key", "claude", "sk-secret"); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "-c", cfgPath, "config", "show")
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	if strings.Contains(out, "sk-secret") {
		t.Error("show must not print raw API keys")
	}
	if !strings.Contains(out, "****") {
		t.Errorf("show should print redacted keys: %q", out)
	}
}

func TestTranslateMissingConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "missing.yaml")

	if _, err := runCommand(t, "-c", cfgPath, "translate", "movie.srt"); err == nil {
		t.Error("translate should fail without a config file")
	}
}
