package fingerprint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStat_MissingFileIsMiss(t *testing.T) {
	_, ok, err := Stat(filepath.Join(t.TempDir(), "does-not-exist.mp3"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStat_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "track.mp3")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	info, ok, err := Stat(path)
	require.NoError(t, err)
	require.True(t, ok)
	require.EqualValues(t, 5, info.Size)
	require.Greater(t, info.Mtime, 0.0)
}

func TestCompute_DeterministicForSameContent(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.mp3")
	b := filepath.Join(dir, "b.mp3")
	content := make([]byte, 200*1024)
	for i := range content {
		content[i] = byte(i % 251)
	}
	require.NoError(t, os.WriteFile(a, content, 0o644))
	require.NoError(t, os.WriteFile(b, content, 0o644))

	fa := Compute(a)
	fb := Compute(b)
	require.Equal(t, fa, fb)
}

func TestCompute_DiffersForDifferentTails(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.mp3")
	b := filepath.Join(dir, "b.mp3")

	content := make([]byte, 200*1024)
	require.NoError(t, os.WriteFile(a, content, 0o644))

	content2 := make([]byte, 200*1024)
	content2[len(content2)-1] = 0xFF
	require.NoError(t, os.WriteFile(b, content2, 0o644))

	require.NotEqual(t, Compute(a), Compute(b))
}

func TestCompute_SmallFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.mp3")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	fp := Compute(path)
	require.Len(t, fp, 8)
}

func TestCompute_MissingFileFallsBackToPathHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.mp3")
	fp1 := Compute(path)
	fp2 := Compute(path)
	require.Equal(t, fp1, fp2)
	require.Len(t, fp1, 8)
}
