// File: severity.go
// Title: Error Severity Levels
// Description: Severity levels attached to structured errors. The logger maps
//              them onto log levels when an error is logged.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial severity levels
// - 2026-10-18 v0.2.0: Severity mapping for the AST viewer codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a problem with user input, e.g. a malformed document
	SeverityLow Severity = iota

	// SeverityMedium indicates a recoverable failure
	SeverityMedium

	// SeverityHigh indicates a failure that stops the current command
	SeverityHigh

	// SeverityCritical indicates the process cannot continue
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should be surfaced prominently
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines the default severity for an error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical
	case CodeServiceUnavailable, CodeRenderFailed, CodeConfigError, CodeInvalidConfig:
		return SeverityHigh
	case CodeInvalidInput, CodeInvalidFormat, CodeUnsupportedType, CodeNotFound,
		CodeValidationFailed, CodeMissingConfig:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
