package scanner

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch registers a recursive fsnotify watch over cfg.Root and triggers an
// incremental Scan on every create/write/rename event for a non-directory
// path, with no debouncing, until ctx is cancelled. New directories are
// added to the watch instead. It is an addition over the one-shot Scan contract:
// useful for a long-running process that wants to pick up new files
// without a cron-style rescan.
func (s *Scanner) Watch(ctx context.Context, cfg Config, sink Sink, onRescan func(*Outcome, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	err = filepath.WalkDir(cfg.Root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr == nil && d.IsDir() {
			_ = watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	incremental := cfg
	incremental.Mode = ModeIncremental

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
				_ = watcher.Add(ev.Name)
				continue
			}
			outcome, scanErr := s.Scan(ctx, incremental, sink)
			if onRescan != nil {
				onRescan(outcome, scanErr)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if onRescan != nil {
				onRescan(nil, err)
			}
		}
	}
}
