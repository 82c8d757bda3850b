package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewConsoleWritesPlainText(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsole(&buf, zapcore.InfoLevel)

	logger.Warn("token command failed", zap.Error(errors.New("exit status 1")))

	out := buf.String()
	if !strings.Contains(out, "WARN") {
		t.Fatalf("expected level in output, got %q", out)
	}
	if !strings.Contains(out, "token command failed") {
		t.Fatalf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "exit status 1") {
		t.Fatalf("expected error field in output, got %q", out)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Fatalf("expected console encoding, got JSON: %q", out)
	}
}

func TestNewConsoleDropsBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsole(&buf, zapcore.WarnLevel)

	logger.Info("ignored")
	logger.Debug("ignored too")

	if buf.Len() != 0 {
		t.Fatalf("expected no output below level, got %q", buf.String())
	}
}
