package interfaces

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriterLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, LevelInfo)

	logger.Debug("hidden")
	logger.Info("resolved", F("module", "app"), F("units", 2))
	logger.Error("failed")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message should be filtered, got %q", out)
	}
	if !strings.Contains(out, "INFO: resolved module=app units=2\n") {
		t.Errorf("missing info line, got %q", out)
	}
	if !strings.Contains(out, "ERROR: failed\n") {
		t.Errorf("missing error line, got %q", out)
	}
}

func TestNoOpLogger(_ *testing.T) {
	var l Logger = &NoOpLogger{}
	l.Debug("x")
	l.Info("x", F("k", 1))
	l.Warn("x")
	l.Error("x")
}
