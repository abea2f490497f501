package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce is how long the file must stay quiet before onChange runs.
// Editors often write a file several times per save.
const watchDebounce = 150 * time.Millisecond

// Watch calls onChange once the file at path has been written or replaced
// and then left alone for a moment, until ctx is cancelled. The parent
// directory is watched so editors that save by rename are still noticed.
func Watch(ctx context.Context, path string, onChange func()) error {
	return watch(ctx, path, watchDebounce, onChange)
}

func watch(ctx context.Context, path string, delay time.Duration, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	target := filepath.Clean(path)
	go func() {
		defer watcher.Close()

		timer := time.NewTimer(delay)
		timer.Stop()
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				// Reset drops any pending expiry.
				timer.Reset(delay)
			case <-timer.C:
				onChange()
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return nil
}
