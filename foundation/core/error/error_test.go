// File: error_test.go
// Title: Error Module Tests
// Description: Tests for error creation, wrapping, codes, severity and
//              serialization.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	msg := "test error message"
	err := New(msg)

	if err == nil {
		t.Fatal("New() returned nil")
	}
	if err.Error() != msg {
		t.Errorf("Error() = %q, want %q", err.Error(), msg)
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityMedium)
	}
	if err.Timestamp().IsZero() {
		t.Error("Timestamp() should not be zero")
	}
	if len(err.StackTrace()) == 0 {
		t.Error("StackTrace() should not be empty")
	}
}

func TestNewf(t *testing.T) {
	err := Newf("unknown node type %q", "Foo")
	if err.Error() != `unknown node type "Foo"` {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		message  string
		wantNil  bool
		wantMsg  string
		wantCode Code
	}{
		{
			name:    "wrap nil error",
			err:     nil,
			message: "wrapper message",
			wantNil: true,
		},
		{
			name:     "wrap standard error",
			err:      errors.New("original error"),
			message:  "wrapper message",
			wantMsg:  "wrapper message: original error",
			wantCode: CodeUnknown,
		},
		{
			name:     "wrap structured error",
			err:      New("bad mapping").WithCode(CodeInvalidFormat),
			message:  "load failed",
			wantMsg:  "load failed: bad mapping",
			wantCode: CodeInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.err, tt.message)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Wrap() = %v, want nil", got)
				}
				return
			}
			if got.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got.Error(), tt.wantMsg)
			}
			if got.Code() != tt.wantCode {
				t.Errorf("Code() = %v, want %v", got.Code(), tt.wantCode)
			}
			if !errors.Is(got, tt.err) {
				t.Error("errors.Is should find the wrapped error")
			}
		})
	}
}

func TestWrap_InheritsDetails(t *testing.T) {
	inner := New("bad mapping").WithCode(CodeInvalidFormat).WithDetail("line", 3)
	outer := Wrap(inner, "load failed")

	if outer.Details()["line"] != 3 {
		t.Errorf("Details()[line] = %v, want 3", outer.Details()["line"])
	}
	if outer.Severity() != SeverityLow {
		t.Errorf("Severity() = %v, want %v", outer.Severity(), SeverityLow)
	}
}

func TestWithCode_SetsSeverity(t *testing.T) {
	tests := []struct {
		code Code
		want Severity
	}{
		{CodeInvalidFormat, SeverityLow},
		{CodeNotFound, SeverityLow},
		{CodeConfigError, SeverityHigh},
		{CodeInternal, SeverityCritical},
		{CodeTimeout, SeverityMedium},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := New("x").WithCode(tt.code)
			if err.Severity() != tt.want {
				t.Errorf("Severity() = %v, want %v", err.Severity(), tt.want)
			}
		})
	}
}

func TestWithCode_KeepsExplicitSeverity(t *testing.T) {
	err := New("x").WithSeverity(SeverityCritical).WithCode(CodeInvalidFormat)
	if err.Severity() != SeverityCritical {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityCritical)
	}
}

func TestHasCode(t *testing.T) {
	inner := New("bad").WithCode(CodeInvalidFormat)
	outer := Wrap(inner, "outer").WithCode(CodeSourceUnreadable)
	std := fmt.Errorf("std: %w", outer)

	if !HasCode(outer, CodeSourceUnreadable) {
		t.Error("HasCode(outer, SOURCE_UNREADABLE) = false")
	}
	if !HasCode(outer, CodeInvalidFormat) {
		t.Error("HasCode should search the whole chain")
	}
	if !HasCode(std, CodeInvalidFormat) {
		t.Error("HasCode should see through fmt.Errorf wrapping")
	}
	if HasCode(errors.New("plain"), CodeInvalidFormat) {
		t.Error("HasCode(plain error) = true")
	}
	if HasCode(nil, CodeUnknown) {
		t.Error("HasCode(nil) = true")
	}
}

func TestGetCodeAndSeverity(t *testing.T) {
	err := New("x").WithCode(CodeRenderFailed)
	if GetCode(err) != CodeRenderFailed {
		t.Errorf("GetCode() = %v", GetCode(err))
	}
	if GetCode(errors.New("plain")) != CodeUnknown {
		t.Error("GetCode(plain) should be UNKNOWN")
	}
	if GetSeverity(err) != SeverityHigh {
		t.Errorf("GetSeverity() = %v", GetSeverity(err))
	}
	if GetSeverity(errors.New("plain")) != SeverityMedium {
		t.Error("GetSeverity(plain) should be medium")
	}
}

func TestSeverity_ShouldAlert(t *testing.T) {
	tests := []struct {
		severity Severity
		want     bool
	}{
		{SeverityLow, false},
		{SeverityMedium, false},
		{SeverityHigh, true},
		{SeverityCritical, true},
	}

	for _, tt := range tests {
		if got := tt.severity.ShouldAlert(); got != tt.want {
			t.Errorf("%v.ShouldAlert() = %v, want %v", tt.severity, got, tt.want)
		}
	}
}

func TestRootCause(t *testing.T) {
	root := errors.New("root")
	err := Wrap(Wrap(root, "middle"), "outer")
	if err.RootCause() != root {
		t.Errorf("RootCause() = %v, want %v", err.RootCause(), root)
	}
}

func TestString(t *testing.T) {
	err := New("bad mapping").
		WithCode(CodeInvalidFormat).
		WithOperation("ast.DecodeDocument").
		WithDetail("line", 4).
		WithDetail("column", 2)

	s := err.String()
	for _, want := range []string{
		"Error: bad mapping",
		"Code: INVALID_FORMAT",
		"Operation: ast.DecodeDocument",
		"Details: {column=2, line=4}",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q in:\n%s", want, s)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	err := Wrap(errors.New("eof"), "read failed").
		WithCode(CodeSourceUnreadable).
		WithOperation("source.Load")

	data, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatalf("json.Marshal() error = %v", jerr)
	}

	var decoded map[string]interface{}
	if jerr := json.Unmarshal(data, &decoded); jerr != nil {
		t.Fatalf("json.Unmarshal() error = %v", jerr)
	}
	if decoded["code"] != "SOURCE_UNREADABLE" {
		t.Errorf("code = %v", decoded["code"])
	}
	if decoded["operation"] != "source.Load" {
		t.Errorf("operation = %v", decoded["operation"])
	}
	if decoded["cause"] != "eof" {
		t.Errorf("cause = %v", decoded["cause"])
	}
}

func TestCode_Properties(t *testing.T) {
	tests := []struct {
		code     Code
		valid    bool
		category string
		status   int
	}{
		{CodeInvalidFormat, true, "document", 400},
		{CodeNotFound, true, "generic", 404},
		{CodeRenderFailed, true, "render", 500},
		{CodeSourceUnreadable, true, "document", 503},
		{CodeConfigError, true, "configuration", 500},
		{Code("BOGUS"), false, "generic", 500},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if tt.code.IsValid() != tt.valid {
				t.Errorf("IsValid() = %v, want %v", tt.code.IsValid(), tt.valid)
			}
			if tt.code.Category() != tt.category {
				t.Errorf("Category() = %v, want %v", tt.code.Category(), tt.category)
			}
			if tt.code.HTTPStatus() != tt.status {
				t.Errorf("HTTPStatus() = %v, want %v", tt.code.HTTPStatus(), tt.status)
			}
		})
	}
}
