package logging

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	mdwlog "github.com/msto63/astview/foundation/core/log"
)

func bufferLogger(level string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := FromConfig(LoggerConfig{
		Name:   "test",
		Level:  level,
		Format: "text",
		Output: &buf,
	})
	return logger, &buf
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{Level(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	logger := New("test-service")

	if logger == nil {
		t.Fatal("New() returned nil")
	}
	if logger.Name() != "test-service" {
		t.Errorf("Name() = %v, want test-service", logger.Name())
	}
}

func TestLogger_KeyValues(t *testing.T) {
	logger, buf := bufferLogger("debug")

	logger.Debug("render node", "kind", "token", "depth", 2)

	out := buf.String()
	if !strings.Contains(out, "render node") {
		t.Errorf("output %q missing message", out)
	}
	if !strings.Contains(out, "[depth=2 kind=token]") {
		t.Errorf("output %q missing fields", out)
	}
}

func TestLogger_OddKeyValues(t *testing.T) {
	logger, buf := bufferLogger("info")

	logger.Info("message", "key1", "value1", "orphan")

	if strings.Contains(buf.String(), "orphan") {
		t.Errorf("orphan value should be dropped: %q", buf.String())
	}
}

func TestLogger_WithLevel(t *testing.T) {
	logger, buf := bufferLogger("error")

	logger.Debug("hidden")
	logger.WithLevel(LevelDebug).Debug("visible")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "visible") {
		t.Errorf("unexpected output %q", buf.String())
	}
	if logger.Enabled(LevelDebug) {
		t.Error("original logger should stay at error level")
	}
}

func TestLogger_WithAndNamed(t *testing.T) {
	logger, buf := bufferLogger("info")

	child := logger.Named("server").With("addr", ":8080").WithRequestID("abc")
	child.Info("listening")

	out := buf.String()
	for _, want := range []string{"{test.server}", "(req=abc)", "addr=:8080"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if child.Name() != "test.server" {
		t.Errorf("Name() = %q", child.Name())
	}
}

func TestDiscard(t *testing.T) {
	if OrDiscard(nil) == nil {
		t.Fatal("OrDiscard(nil) returned nil")
	}
	OrDiscard(nil).Error("nothing happens")

	if Wrap(nil) == nil {
		t.Fatal("Wrap(nil) returned nil")
	}
	base := mdwlog.Discard().WithName("base")
	if Wrap(base).Name() != "base" {
		t.Errorf("Wrap() name = %q", Wrap(base).Name())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected mdwlog.Level
	}{
		{"trace", mdwlog.LevelTrace},
		{"debug", mdwlog.LevelDebug},
		{"INFO", mdwlog.LevelInfo},
		{"warn", mdwlog.LevelWarn},
		{"warning", mdwlog.LevelWarn},
		{"error", mdwlog.LevelError},
		{"invalid", mdwlog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig("astview")

	if cfg.Name != "astview" {
		t.Errorf("Name = %v, want astview", cfg.Name)
	}
	if cfg.Level != "info" {
		t.Errorf("Level = %v, want info", cfg.Level)
	}
	if cfg.Format != "text" {
		t.Errorf("Format = %v, want text", cfg.Format)
	}
}

func TestNewLogger_Formats(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Name: "svc", Level: "info", Format: "json", Output: &buf})
	logger.Info("hello")

	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("json format output = %q", buf.String())
	}

	buf.Reset()
	logger = NewLogger(LoggerConfig{Name: "svc", Format: "bogus", Output: &buf})
	logger.Info("hello")
	if !strings.Contains(buf.String(), "[INF]") {
		t.Errorf("fallback text format output = %q", buf.String())
	}
}

func TestNewLogger_AdditionalOutputs(t *testing.T) {
	var primary, extra bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Name:              "svc",
		Output:            &primary,
		AdditionalOutputs: []io.Writer{&extra},
	})
	logger.Info("twice")

	if !strings.Contains(primary.String(), "twice") || !strings.Contains(extra.String(), "twice") {
		t.Errorf("outputs = %q / %q", primary.String(), extra.String())
	}
}

func TestToFields(t *testing.T) {
	if fields := toFields(); fields != nil {
		t.Error("toFields() with no args should return nil")
	}

	fields := toFields("key1", "value1", "key2", 42)
	if fields["key1"] != "value1" || fields["key2"] != 42 {
		t.Errorf("toFields() = %v", fields)
	}

	fields = toFields(123, "value")
	if len(fields) != 0 {
		t.Errorf("Non-string key should be skipped, got %v fields", len(fields))
	}
}

func TestLogger_ErrorValues(t *testing.T) {
	logger, buf := bufferLogger("warn")

	logger.WarnErr("AST validation", errors.New("name is required"), "node", "StmtVar")
	logger.ErrorErr("Request failed", errors.New("disk full"))

	out := buf.String()
	for _, want := range []string{
		"AST validation",
		`error="name is required"`,
		"node=StmtVar",
		"Request failed",
		`error="disk full"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}
