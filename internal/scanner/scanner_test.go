package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/llehouerou/waves/internal/catalogue"
	"github.com/llehouerou/waves/internal/extractor"
)

// fakeExtractor always succeeds with a fixed bpm, standing in for a real
// DSP backend so scan tests exercise cache/mode logic without depending
// on tag-parseable file contents.
type fakeExtractor struct {
	bpm   float64
	calls int
}

func (f *fakeExtractor) Extract(ctx context.Context, path string) (*extractor.Features, error) {
	f.calls++
	bpm := f.bpm
	camelot := "8A"
	energy := 0.5
	hamms := make([]float64, 12)
	for i := range hamms {
		hamms[i] = 0.5
	}
	return &extractor.Features{
		BPM:        &bpm,
		CamelotKey: &camelot,
		Energy:     &energy,
		HAMMS:      hamms,
		Tags:       map[string]string{},
	}, nil
}

func makeTracks(t *testing.T, dir string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		path := filepath.Join(dir, "track"+string(rune('a'+i%26))+string(rune('0'+i/26))+".mp3")
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}
}

func openCatalogue(t *testing.T) *catalogue.Catalogue {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalogue.db")
	cat, err := catalogue.Open(path, 4)
	require.NoError(t, err)
	t.Cleanup(func() { cat.Close() })
	return cat
}

func TestScan_FullModeAnalyzesEveryFile(t *testing.T) {
	dir := t.TempDir()
	makeTracks(t, dir, 10)

	cat := openCatalogue(t)
	ext := &fakeExtractor{bpm: 120}
	s := &Scanner{Catalogue: cat, Extractor: ext}

	outcome, err := s.Scan(context.Background(), Config{Root: dir, Mode: ModeFull}, nil)
	require.NoError(t, err)
	require.Equal(t, catalogue.SessionCompleted, outcome.Status)
	require.Equal(t, 10, outcome.Counters.Analyzed)
	require.Equal(t, 10, ext.calls)
}

func TestScan_IncrementalSkipsAlreadyPresent(t *testing.T) {
	dir := t.TempDir()
	makeTracks(t, dir, 5)

	cat := openCatalogue(t)
	ext := &fakeExtractor{bpm: 120}
	s := &Scanner{Catalogue: cat, Extractor: ext}

	_, err := s.Scan(context.Background(), Config{Root: dir, Mode: ModeIncremental}, nil)
	require.NoError(t, err)
	require.Equal(t, 5, ext.calls)

	outcome, err := s.Scan(context.Background(), Config{Root: dir, Mode: ModeIncremental}, nil)
	require.NoError(t, err)
	require.Equal(t, 0, outcome.Counters.Analyzed)
	require.Equal(t, 5, ext.calls) // no new extractor calls
}

// Scenario 4: a 200-file tree scanned twice with mode=smart, no changes in
// between — the second run's cache hit rate must be >= 0.95 and it must
// not re-analyze anything.
func TestScan_SmartModeSecondRunIsAllCacheHits(t *testing.T) {
	dir := t.TempDir()
	makeTracks(t, dir, 200)

	cat := openCatalogue(t)
	ext := &fakeExtractor{bpm: 120}
	s := &Scanner{Catalogue: cat, Extractor: ext}

	first, err := s.Scan(context.Background(), Config{Root: dir, Mode: ModeSmart}, nil)
	require.NoError(t, err)
	require.Equal(t, 200, first.Counters.Analyzed)

	second, err := s.Scan(context.Background(), Config{Root: dir, Mode: ModeSmart}, nil)
	require.NoError(t, err)
	require.Equal(t, 0, second.Counters.Analyzed)

	rate := float64(second.Counters.Cached) / float64(second.Counters.Processed)
	require.GreaterOrEqual(t, rate, 0.95)
}

func TestScan_InvalidRootIsHardError(t *testing.T) {
	cat := openCatalogue(t)
	s := &Scanner{Catalogue: cat, Extractor: &fakeExtractor{bpm: 120}}

	_, err := s.Scan(context.Background(), Config{Root: filepath.Join(t.TempDir(), "missing")}, nil)
	require.Error(t, err)
}

func TestScan_CancellationStopsEarlyAndClosesSessionCancelled(t *testing.T) {
	dir := t.TempDir()
	makeTracks(t, dir, 50)

	cat := openCatalogue(t)
	ext := &fakeExtractor{bpm: 120}
	s := &Scanner{Catalogue: cat, Extractor: ext}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome, err := s.Scan(ctx, Config{Root: dir, Mode: ModeFull, BatchSize: 5}, nil)
	require.NoError(t, err)
	require.Equal(t, catalogue.SessionCancelled, outcome.Status)
}

func TestScan_ReportsProgressSnapshots(t *testing.T) {
	dir := t.TempDir()
	makeTracks(t, dir, 20)

	cat := openCatalogue(t)
	ext := &fakeExtractor{bpm: 120}
	s := &Scanner{Catalogue: cat, Extractor: ext}

	var snapshots []Progress
	_, err := s.Scan(context.Background(), Config{Root: dir, Mode: ModeFull, BatchSize: 5, ProgressInterval: 5}, func(p Progress) {
		snapshots = append(snapshots, p)
	})
	require.NoError(t, err)
	require.NotEmpty(t, snapshots)
	last := snapshots[len(snapshots)-1]
	require.Equal(t, 20, last.Processed)
}
