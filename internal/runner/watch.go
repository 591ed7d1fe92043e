package runner

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch validates the file once, then re-validates it on every change
// until the context is cancelled. The watch is placed on the containing
// directory because editors typically replace files on save, which drops
// a watch set on the file itself.
func (r *Runner) Watch(ctx context.Context, path string) error {
	if _, err := r.Run(ctx, Options{Path: path}); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	target := filepath.Clean(path)
	r.console.Noticef("Watching %s for changes (Ctrl-C to stop)...", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			r.log.Debug("file changed, re-validating", zap.String("file", path))
			if _, err := r.Run(ctx, Options{Path: path}); err != nil {
				// The file may be mid-save; report and keep watching.
				r.console.Noticef("%v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.Warn("watch error", zap.Error(err))
		}
	}
}
