// Package log provides structured logging for astview.
//
// Package: log
// Title: astview Structured Logging
// Description: Leveled logger with persistent context fields, request ids,
//              JSON/text/console output and awareness of the structured error
//              type. The renderers use it as their diagnostic sink.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Usage:
//
//	logger := log.NewWithConfig(log.Config{Level: log.LevelDebug, Format: log.FormatText})
//	logger.WithField("component", "render").Debug("render node", log.Field("kind", "token"))
package log
