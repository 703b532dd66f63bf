// Package discovery implements the lazy recursive directory walk that
// feeds the Scanner Orchestrator candidate audio paths, built around the
// same filepath.WalkDir closure shape the library scanner elsewhere in
// this module uses for directory traversal.
package discovery

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtensions is the extension set used when a caller doesn't
// supply its own.
var DefaultExtensions = []string{"mp3", "flac", "wav", "m4a", "aac", "ogg"}

// SkipFunc is called for a file the walk could not stat or read; it
// never aborts the walk.
type SkipFunc func(path string, err error)

// Config controls what Walk considers a candidate file.
type Config struct {
	Root       string
	Extensions []string // case-insensitive, without the leading dot
	OnSkip     SkipFunc // optional; defaults to a no-op
}

func (c Config) extSet() map[string]struct{} {
	exts := c.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	set := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		set["."+strings.ToLower(strings.TrimPrefix(e, "."))] = struct{}{}
	}
	return set
}

// Walk performs one finite, non-restartable traversal of cfg.Root,
// calling emit for every candidate audio path it finds. Symlinks are
// never followed, hidden files and directories (name begins with '.')
// are skipped, and unreadable entries are reported via cfg.OnSkip and
// otherwise ignored. Walk returns early if ctx is cancelled between
// directory entries.
//
// Memory use is bounded by traversal depth: Walk never materializes the
// full result set, it streams paths to emit as it finds them.
func Walk(ctx context.Context, cfg Config, emit func(path string) bool) error {
	exts := cfg.extSet()
	onSkip := cfg.OnSkip
	if onSkip == nil {
		onSkip = func(string, error) {}
	}

	return filepath.WalkDir(cfg.Root, func(path string, d os.DirEntry, walkErr error) error {
		if ctx.Err() != nil {
			return filepath.SkipAll
		}
		if walkErr != nil {
			onSkip(path, walkErr)
			return nil //nolint:nilerr // per-entry errors are reported, not fatal
		}

		name := d.Name()
		if name != "." && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(name))
		if _, ok := exts[ext]; !ok {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			onSkip(path, err)
			return nil //nolint:nilerr // unreadable files are skipped, never fatal
		}
		_ = info

		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}

		if !emit(abs) {
			return filepath.SkipAll
		}
		return nil
	})
}

// Collect is a convenience wrapper around Walk for callers (tests,
// small libraries) that want the full path list materialized. Scanner
// uses Walk directly to stay within its streaming-batch contract.
func Collect(ctx context.Context, cfg Config) ([]string, error) {
	var paths []string
	err := Walk(ctx, cfg, func(path string) bool {
		paths = append(paths, path)
		return true
	})
	return paths, err
}
