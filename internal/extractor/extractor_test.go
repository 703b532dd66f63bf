package extractor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/llehouerou/waves/internal/errs"
)

func TestTagsOnly_MissingFileIsUnreadable(t *testing.T) {
	var e TagsOnly
	_, err := e.Extract(context.Background(), filepath.Join(t.TempDir(), "missing.mp3"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnreadable))
	require.True(t, errors.Is(err, errs.ErrExtractor))
}

func TestTagsOnly_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	var e TagsOnly
	_, err := e.Extract(context.Background(), path)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnsupported))
}

func TestTagsOnly_CorruptFileIsReportedAsCorrupt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.mp3")
	require.NoError(t, os.WriteFile(path, []byte("not a real mp3 at all"), 0o644))

	var e TagsOnly
	_, err := e.Extract(context.Background(), path)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrCorrupt))
}

func TestTagsOnly_RespectsCancelledContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "track.mp3")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var e TagsOnly
	_, err := e.Extract(ctx, path)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrTimeout))
}
