// File: logger_test.go
// Title: Logger Tests
// Description: Tests for level filtering, context fields, formatters and
//              structured error logging.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	mdwerror "github.com/msto63/astview/foundation/core/error"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{
		Level:  level,
		Format: format,
		Output: &buf,
		Name:   "test",
	})
	return logger, &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatJSON)

	logger.Debug("hidden")
	logger.Info("shown")
	logger.Warn("also shown")

	entries := decodeLines(t, buf)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0]["message"] != "shown" {
		t.Errorf("message = %v, want shown", entries[0]["message"])
	}
	if entries[1]["level"] != "warn" {
		t.Errorf("level = %v, want warn", entries[1]["level"])
	}
}

func TestLogger_Fields(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)

	logger.WithField("component", "render").
		WithRequestID("req-1").
		Debug("render node", Field("kind", "token"), Int("depth", 2))

	entries := decodeLines(t, buf)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e["component"] != "render" {
		t.Errorf("component = %v", e["component"])
	}
	if e["request_id"] != "req-1" {
		t.Errorf("request_id = %v", e["request_id"])
	}
	if e["kind"] != "token" {
		t.Errorf("kind = %v", e["kind"])
	}
	if e["depth"] != float64(2) {
		t.Errorf("depth = %v", e["depth"])
	}
	if e["logger"] != "test" {
		t.Errorf("logger = %v", e["logger"])
	}
}

func TestLogger_ClonesAreIndependent(t *testing.T) {
	base, buf := newBufferLogger(LevelInfo, FormatJSON)
	child := base.WithField("child", true)

	base.Info("from base")
	child.Info("from child")

	entries := decodeLines(t, buf)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if _, ok := entries[0]["child"]; ok {
		t.Error("base logger must not see child fields")
	}
	if entries[1]["child"] != true {
		t.Error("child logger lost its field")
	}
}

func TestLogger_WithLevel(t *testing.T) {
	logger, buf := newBufferLogger(LevelError, FormatJSON)
	verbose := logger.WithLevel(LevelDebug)

	logger.Debug("dropped")
	verbose.Debug("kept")

	entries := decodeLines(t, buf)
	if len(entries) != 1 || entries[0]["message"] != "kept" {
		t.Errorf("entries = %v", entries)
	}
	if logger.GetLevel() != LevelError {
		t.Errorf("original level changed to %v", logger.GetLevel())
	}
	if !verbose.IsLevelEnabled(LevelDebug) {
		t.Error("IsLevelEnabled(debug) = false")
	}
}

func TestLogger_LogError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
		wantCode  string
	}{
		{"low severity", mdwerror.New("bad doc").WithCode(mdwerror.CodeInvalidFormat), "info", "INVALID_FORMAT"},
		{"high severity", mdwerror.New("no config").WithCode(mdwerror.CodeConfigError), "error", "CONFIG_ERROR"},
		{"plain error", errors.New("boom"), "warn", "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(LevelTrace, FormatJSON)
			logger.LogError(tt.err)

			entries := decodeLines(t, buf)
			if len(entries) != 1 {
				t.Fatalf("got %d entries, want 1", len(entries))
			}
			if entries[0]["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %v", entries[0]["level"], tt.wantLevel)
			}
			if entries[0]["error_code"] != tt.wantCode {
				t.Errorf("error_code = %v, want %v", entries[0]["error_code"], tt.wantCode)
			}
		})
	}

	logger, buf := newBufferLogger(LevelTrace, FormatJSON)
	logger.LogError(nil)
	if buf.Len() != 0 {
		t.Error("LogError(nil) should not write")
	}
}

func TestLogger_Timed(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)
	logger.Timed(LevelInfo, "rendered", time.Now().Add(-5*time.Millisecond))

	entries := decodeLines(t, buf)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if d, ok := entries[0]["duration_ms"].(float64); !ok || d < 5 {
		t.Errorf("duration_ms = %v", entries[0]["duration_ms"])
	}
}

func TestLogger_Caller(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatJSON)
	logger.WithCaller(0).Info("with caller")

	entries := decodeLines(t, buf)
	caller, _ := entries[0]["caller"].(string)
	if !strings.Contains(caller, "logger_test.go") {
		t.Errorf("caller = %q, want logger_test.go location", caller)
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("nothing")
	if logger.IsLevelEnabled(LevelError) {
		t.Error("Discard logger should not enable any level")
	}
}

func TestTextFormatter(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatText)
	logger.WithRequestID("r1").Info("loaded", Fields{"b": 2, "a": 1})

	line := buf.String()
	for _, want := range []string{"[INF]", "{test}", "(req=r1)", "loaded", "[a=1 b=2]"} {
		if !strings.Contains(line, want) {
			t.Errorf("text output %q missing %q", line, want)
		}
	}
}

func TestConsoleFormatter(t *testing.T) {
	f := NewConsoleFormatter()
	out, err := f.Format(NewEntry(LevelWarn, "careful"))
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.HasPrefix(string(out), LevelWarn.Color()) {
		t.Errorf("console output not colored: %q", out)
	}

	f.DisableColors = true
	out, _ = f.Format(NewEntry(LevelWarn, "careful"))
	if strings.Contains(string(out), "\033[") {
		t.Errorf("colors should be disabled: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"WARNING", LevelWarn, false},
		{" error ", LevelError, false},
		{"", LevelInfo, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("console"); err != nil || f != FormatConsole {
		t.Errorf("ParseFormat(console) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestLevel_Strings(t *testing.T) {
	if LevelDebug.String() != "debug" || LevelDebug.ShortString() != "DBG" {
		t.Errorf("LevelDebug strings = %s/%s", LevelDebug.String(), LevelDebug.ShortString())
	}
	if Level(42).String() != "unknown" || Level(42).ShortString() != "???" {
		t.Error("unknown level strings")
	}
}
