package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"Warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewStructuredLoggerTo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLoggerTo(&buf, "conanrecipe", "v1.2.3", "info")

	logger.Debug("hidden")
	logger.Info("evaluated", "package", "hypertrie/0.9.4")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected a single JSON record, got %q: %v", buf.String(), err)
	}
	for key, want := range map[string]string{
		"msg":     "evaluated",
		"module":  "conanrecipe",
		"version": "v1.2.3",
		"package": "hypertrie/0.9.4",
	} {
		if rec[key] != want {
			t.Errorf("%s = %v, want %q", key, rec[key], want)
		}
	}
	if _, ok := rec["source"]; ok {
		t.Error("info records should not carry source")
	}
}

func TestNewStructuredLoggerTo_LevelFromEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")

	var buf bytes.Buffer
	NewStructuredLoggerTo(&buf, "m", "v", "").Debug("shown")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("debug record not written: %q", buf.String())
	}
	if _, ok := rec["source"]; !ok {
		t.Error("debug records should carry source")
	}
}

func TestNewStructuredLoggerTo_FlagBeatsEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")

	var buf bytes.Buffer
	NewStructuredLoggerTo(&buf, "m", "v", "error").Warn("hidden")
	if buf.Len() != 0 {
		t.Errorf("warn written at error level: %q", buf.String())
	}
}
