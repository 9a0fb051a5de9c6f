package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/exp/slog"
)

//**********************************************************
// source watcher
//**********************************************************

const WATCH_DEBOUNCE = 500 * time.Millisecond

// Rebuilds the routing graph whenever one of the source files changes.
type SourceWatcher struct {
	manager  *RoutingManager
	files    map[string]bool
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

func NewSourceWatcher(manager *RoutingManager) (*SourceWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	files := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, file := range manager.GetSourceFiles() {
		abs, err := filepath.Abs(file)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	// directories are watched to also catch atomic saves (rename)
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch %v: %w", dir, err)
		}
	}
	return &SourceWatcher{
		manager:  manager,
		files:    files,
		watcher:  watcher,
		debounce: WATCH_DEBOUNCE,
	}, nil
}

// Blocks until ctx is cancelled.
func (self *SourceWatcher) Run(ctx context.Context) {
	defer self.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-self.watcher.Events:
			if !ok {
				return
			}
			if !self._IsSourceEvent(event) {
				continue
			}
			slog.Debug(fmt.Sprintf("source file changed: %v", event.Name))
			if timer == nil {
				timer = time.NewTimer(self.debounce)
			} else {
				timer.Reset(self.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			slog.Info("reloading routing graph")
			if err := self.manager.Reload(ctx); err != nil {
				slog.Error(fmt.Sprintf("failed to reload routing graph: %v", err))
			}
		case err, ok := <-self.watcher.Errors:
			if !ok {
				return
			}
			slog.Error(fmt.Sprintf("file watcher error: %v", err))
		}
	}
}

func (self *SourceWatcher) _IsSourceEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return self.files[abs]
}
