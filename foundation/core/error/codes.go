// File: codes.go
// Title: Error Codes
// Description: Defines the structured error codes used across astview for
//              document loading, configuration, rendering and the debug server.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial error code set
// - 2026-10-18 v0.2.0: Reduced to the codes used by the AST viewer

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Documents and AST values
	CodeInvalidFormat    Code = "INVALID_FORMAT"
	CodeUnsupportedType  Code = "UNSUPPORTED_TYPE"
	CodeSourceUnreadable Code = "SOURCE_UNREADABLE"
	CodeValidationFailed Code = "VALIDATION_FAILED"

	// Rendering and serving
	CodeRenderFailed       Code = "RENDER_FAILED"
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"
	CodeNetworkError       Code = "NETWORK_ERROR"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeTimeout,
		CodeInvalidFormat, CodeUnsupportedType, CodeSourceUnreadable, CodeValidationFailed,
		CodeRenderFailed, CodeServiceUnavailable, CodeNetworkError,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeInvalidFormat, CodeUnsupportedType, CodeSourceUnreadable, CodeValidationFailed:
		return "document"
	case CodeRenderFailed:
		return "render"
	case CodeServiceUnavailable, CodeNetworkError:
		return "service"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return "configuration"
	default:
		return "generic"
	}
}

// HTTPStatus returns the HTTP status code the debug server answers with
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return 404
	case CodeInvalidInput, CodeInvalidFormat, CodeUnsupportedType, CodeValidationFailed:
		return 400
	case CodeTimeout:
		return 408
	case CodeServiceUnavailable, CodeSourceUnreadable:
		return 503
	default:
		return 500
	}
}
