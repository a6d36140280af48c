package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "speedread.log")
	logger, err := New(path, false)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Debugw("hidden", "k", 1)
	logger.Infow("session finished", "words", 42)
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "session finished") || !strings.Contains(out, "42") {
		t.Fatalf("expected info entry, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entry must be filtered at info level: %q", out)
	}
}

func TestNewDebugLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	logger, err := New(path, true)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Debugw("rate changed", "to", 263)
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "rate changed") {
		t.Fatalf("expected debug entry, got %q", data)
	}
}
