// File: stringx.go
// Title: String Helpers
// Description: Small Unicode-aware string helpers shared by the text
//              outline, the terminal tree view and the HTML renderer.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core utilities
// - 2026-10-18 v0.2.0: Reduced to the helpers used by the tree renderers

// Package stringx provides string helpers for the tree renderers.
package stringx

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IndentUnit is the text inserted per nesting level.
const IndentUnit = "  "

// IsBlank reports whether s is empty or consists only of whitespace.
func IsBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Indent returns depth copies of IndentUnit. Negative depths yield "".
func Indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat(IndentUnit, depth)
}

// Truncate shortens s to at most maxLen runes, ending with ellipsis when cut.
// The ellipsis counts toward maxLen.
func Truncate(s string, maxLen int, ellipsis string) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}

	ellipsisLen := utf8.RuneCountInString(ellipsis)
	if ellipsisLen >= maxLen {
		return string([]rune(ellipsis)[:maxLen])
	}

	runes := []rune(s)
	return string(runes[:maxLen-ellipsisLen]) + ellipsis
}

// FirstNonBlank returns the first argument that is not blank, or "".
func FirstNonBlank(values ...string) string {
	for _, v := range values {
		if !IsBlank(v) {
			return v
		}
	}
	return ""
}

// SingleLine replaces line breaks and tabs with visible escapes so a value
// fits on one terminal row.
func SingleLine(s string) string {
	if !strings.ContainsAny(s, "\r\n\t") {
		return s
	}
	r := strings.NewReplacer("\r\n", `\n`, "\n", `\n`, "\r", `\r`, "\t", `\t`)
	return r.Replace(s)
}
