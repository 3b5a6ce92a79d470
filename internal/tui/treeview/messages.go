// ============================================================================
// astview - AST Tree Viewer
// ============================================================================
//
// Package:     treeview
// Description: Message types for async operations in the tree viewer
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package treeview

import (
	"time"

	"github.com/msto63/astview/internal/outline"
	"github.com/msto63/astview/internal/source"
)

// treeLoadedMsg is sent when the source was loaded
type treeLoadedMsg struct {
	root  *outline.Entry
	stamp source.Stamp
	err   error
}

// tickMsg is used for periodic source checks
type tickMsg time.Time
