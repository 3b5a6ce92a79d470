// ============================================================================
// astview - AST Tree Viewer
// ============================================================================
//
// Package:     source
// Description: Change notification for AST document files
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package source

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/msto63/astview/pkg/core/logging"
)

// DefaultPollInterval is used when a watcher is created without interval
const DefaultPollInterval = 500 * time.Millisecond

// Watcher reports changes of a single file. It listens to fsnotify events
// on the file's directory, so editors that replace the file are noticed,
// and polls the file stamp in addition. A change is reported only after
// the file has been quiet for one interval, so a save that truncates
// before writing is seen as a single change.
type Watcher struct {
	path     string
	interval time.Duration
	logger   *logging.Logger
}

// NewWatcher creates a watcher for path
func NewWatcher(path string, interval time.Duration, logger *logging.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Watcher{
		path:     filepath.Clean(path),
		interval: interval,
		logger:   logging.OrDiscard(logger),
	}
}

// Path returns the watched path
func (w *Watcher) Path() string {
	return w.path
}

// Run calls onChange whenever the file stamp changes, until ctx is done
func (w *Watcher) Run(ctx context.Context, onChange func(Stamp)) error {
	last, _ := Stat(w.path)

	var events <-chan fsnotify.Event
	var errs <-chan error

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Warn("fsnotify unavailable, polling only", "error", err.Error())
	} else {
		defer fsw.Close()
		if err := fsw.Add(filepath.Dir(w.path)); err != nil {
			w.logger.Warn("failed to watch directory, polling only", "dir", filepath.Dir(w.path), "error", err.Error())
		} else {
			events = fsw.Events
			errs = fsw.Errors
		}
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	settle := time.NewTimer(w.interval)
	settle.Stop()
	defer settle.Stop()

	// trigger is the source of the pending change, empty when none is pending
	trigger := ""
	schedule := func(reason string, restart bool) {
		if trigger != "" && !restart {
			return
		}
		trigger = reason
		settle.Reset(w.interval)
	}

	check := func(reason string) {
		current, err := Stat(w.path)
		if err != nil {
			// File might be in the middle of being replaced
			return
		}
		if !current.Changed(last) {
			return
		}
		last = current
		w.logger.Debug("source changed", "path", w.path, "trigger", reason)
		onChange(current)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				schedule("fsnotify", true)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			w.logger.Warn("watch error", "error", err.Error())
		case <-ticker.C:
			if current, err := Stat(w.path); err == nil && current.Changed(last) {
				schedule("poll", false)
			}
		case <-settle.C:
			reason := trigger
			trigger = ""
			check(reason)
		}
	}
}
