// Package error provides structured error handling for astview.
//
// Package: error
// Title: astview Error Handling
// Description: Structured errors with codes, severity, operation names and
//              details. Loading, configuration and server layers return these
//              so the CLI and the logger can report them consistently.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Usage:
//
//	err := mdwerror.New("mapping has neither type nor lexeme").
//		WithCode(mdwerror.CodeInvalidFormat).
//		WithOperation("ast.DecodeDocument").
//		WithDetail("line", 12)
//
//	if mdwerror.HasCode(err, mdwerror.CodeInvalidFormat) {
//		// report the document position
//	}
package error
