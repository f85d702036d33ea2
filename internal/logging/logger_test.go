package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog/log"
)

func TestNewJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "warn", Format: "json", Output: &buf})

	logger.Info("dropped")
	logger.Error(errors.New("boom"), "kept")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal(lines[0], &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["message"] != "kept" || entry["error"] != "boom" {
		t.Fatalf("unexpected entry: %#v", entry)
	}
}

func TestWithContextAddsRequestID(t *testing.T) {
	prev := log.Logger
	defer func() { log.Logger = prev }()

	var buf bytes.Buffer
	SetGlobalLogger(New(Config{Level: "debug", Output: &buf}))

	ctx := ContextWithRequestID(context.Background(), "req-123")
	WithContext(ctx).Info().Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["request_id"] != "req-123" {
		t.Fatalf("expected request_id, got %#v", entry)
	}
}

func TestNewWithFileWritesBoth(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "app.log")
	logger := New(Config{Level: "info", Output: &buf, File: path})
	logger.Info("to both")
	if err := logger.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("to both")) {
		t.Fatalf("stdout copy missing: %q", buf.String())
	}
}
