package logging

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInitLoggerAndSetLogLevelFallback(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "nested", "sppt.log")
	InitLogger(logFile, 1, 1, 1, false, "invalid")
	SetLogLevel("invalid")
	Info("hello", "k", "v")
	Warn("warn")
	Error("error")
}

func TestErrorValuesAndDanglingKeys(t *testing.T) {
	var buf bytes.Buffer
	SetLoggerForTest(zerolog.New(&buf))

	Error("cleanup failed", "error", errors.New("disk gone"), "dangling")

	out := buf.String()
	if !strings.Contains(out, `"error":"disk gone"`) {
		t.Fatalf("expected error field in %q", out)
	}
	if strings.Contains(out, "dangling") {
		t.Fatalf("dangling key should be dropped: %q", out)
	}
}

func TestDebugSuppressedAtInfo(t *testing.T) {
	var buf bytes.Buffer
	SetLoggerForTest(zerolog.New(&buf).Level(zerolog.InfoLevel))

	Debug("noisy", "n", 1)

	if buf.Len() != 0 {
		t.Fatalf("expected debug to be filtered, got %q", buf.String())
	}
}
