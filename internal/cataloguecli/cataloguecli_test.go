package cataloguecli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/llehouerou/waves/internal/catalogue"
	"github.com/llehouerou/waves/internal/errs"
	"github.com/llehouerou/waves/internal/extractor"
)

type fixedExtractor struct{ bpm float64 }

func (f fixedExtractor) Extract(ctx context.Context, path string) (*extractor.Features, error) {
	bpm := f.bpm
	camelot := "8A"
	energy := 0.6
	hamms := make([]float64, 12)
	for i := range hamms {
		hamms[i] = 0.5
	}
	return &extractor.Features{BPM: &bpm, CamelotKey: &camelot, Energy: &energy, HAMMS: hamms, Tags: map[string]string{}}, nil
}

func openTestCatalogue(t *testing.T) *catalogue.Catalogue {
	t.Helper()
	cat, err := catalogue.Open(filepath.Join(t.TempDir(), "cat.db"), 4)
	require.NoError(t, err)
	t.Cleanup(func() { cat.Close() })
	return cat
}

func writeTrack(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	return path
}

func TestScan_CompletesAndReturnsNilError(t *testing.T) {
	dir := t.TempDir()
	writeTrack(t, dir, "a.mp3")
	writeTrack(t, dir, "b.mp3")

	cat := openTestCatalogue(t)
	outcome, err := Scan(context.Background(), cat, fixedExtractor{bpm: 120}, ScanParams{Root: dir, Mode: "full"}, nil)
	require.NoError(t, err)
	require.Equal(t, catalogue.SessionCompleted, outcome.Status)
	require.Equal(t, 0, ExitCode(err))
}

func TestScan_CancelledMapsToExit130(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 20; i++ {
		writeTrack(t, dir, filepath_Join(i))
	}
	cat := openTestCatalogue(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Scan(ctx, cat, fixedExtractor{bpm: 120}, ScanParams{Root: dir, Mode: "full", BatchSize: 2}, nil)
	require.Error(t, err)
	require.Equal(t, ExitCancelled, ExitCode(err))
}

func filepath_Join(i int) string {
	return "track" + string(rune('a'+i)) + ".mp3"
}

func TestCompat_RanksCandidatesAgainstSeed(t *testing.T) {
	dir := t.TempDir()
	seed := writeTrack(t, dir, "seed.mp3")
	writeTrack(t, dir, "close.mp3")
	writeTrack(t, dir, "far.mp3")

	cat := openTestCatalogue(t)
	_, err := Scan(context.Background(), cat, fixedExtractor{bpm: 120}, ScanParams{Root: dir, Mode: "full"}, nil)
	require.NoError(t, err)

	results, err := Compat(cat, CompatParams{Path: seed, Top: 5})
	require.NoError(t, err)
	require.Len(t, results, 2)
}

func TestCompat_MissingSeedIsNotFoundError(t *testing.T) {
	cat := openTestCatalogue(t)
	_, err := Compat(cat, CompatParams{Path: "/nope.mp3"})
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestCompatExport_WritesCSVWithHeader(t *testing.T) {
	dir := t.TempDir()
	seed := writeTrack(t, dir, "seed.mp3")
	writeTrack(t, dir, "other.mp3")

	cat := openTestCatalogue(t)
	_, err := Scan(context.Background(), cat, fixedExtractor{bpm: 120}, ScanParams{Root: dir, Mode: "full"}, nil)
	require.NoError(t, err)

	out := filepath.Join(dir, "out.csv")
	err = CompatExport(cat, CompatExportParams{CompatParams: CompatParams{Path: seed}, Out: out})
	require.NoError(t, err)

	contents, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(contents), "path,bpm,key,energy,score")
}

func TestPlaylistGenerate_WritesM3U(t *testing.T) {
	dir := t.TempDir()
	seed := writeTrack(t, dir, "seed.mp3")
	for i := 0; i < 10; i++ {
		writeTrack(t, dir, filepath_Join(i))
	}

	cat := openTestCatalogue(t)
	_, err := Scan(context.Background(), cat, fixedExtractor{bpm: 120}, ScanParams{Root: dir, Mode: "full"}, nil)
	require.NoError(t, err)

	out := filepath.Join(dir, "out.m3u")
	result, err := PlaylistGenerate(cat, PlaylistGenerateParams{
		Seed: seed, Length: 5, Curve: "ascending", BPMTolerance: 0.05, Out: out,
	})
	require.NoError(t, err)
	require.LessOrEqual(t, len(result.Plan), 5)

	contents, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(contents), "#EXTM3U")
}

func TestPlaylistGenerate_WritesCSVByExtension(t *testing.T) {
	dir := t.TempDir()
	seed := writeTrack(t, dir, "seed.mp3")
	for i := 0; i < 10; i++ {
		writeTrack(t, dir, filepath_Join(i))
	}

	cat := openTestCatalogue(t)
	_, err := Scan(context.Background(), cat, fixedExtractor{bpm: 120}, ScanParams{Root: dir, Mode: "full"}, nil)
	require.NoError(t, err)

	out := filepath.Join(dir, "out.csv")
	_, err = PlaylistGenerate(cat, PlaylistGenerateParams{Seed: seed, Length: 5, Curve: "flat", Out: out})
	require.NoError(t, err)

	contents, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(contents), "path,bpm,key,energy")
}

func TestSummary_ReportsCountsAndWritesCSV(t *testing.T) {
	dir := t.TempDir()
	writeTrack(t, dir, "a.mp3")
	writeTrack(t, dir, "b.mp3")

	cat := openTestCatalogue(t)
	_, err := Scan(context.Background(), cat, fixedExtractor{bpm: 120}, ScanParams{Root: dir, Mode: "full"}, nil)
	require.NoError(t, err)

	out := filepath.Join(dir, "summary.csv")
	stats, err := Summary(cat, SummaryParams{CSV: out})
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalTracks)

	contents, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(contents), "total_tracks,2")
}

func TestImportMIK_MergesIntoExistingRows(t *testing.T) {
	dir := t.TempDir()
	writeTrack(t, dir, "track1.mp3")

	cat := openTestCatalogue(t)
	_, err := Scan(context.Background(), cat, fixedExtractor{bpm: 120}, ScanParams{Root: dir, Mode: "full"}, nil)
	require.NoError(t, err)

	csvPath := filepath.Join(dir, "mik.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Filename,Tempo,Camelot Key,Energy\ntrack1.mp3,128.0,9A,8\n"), 0o644))

	report, err := ImportMIK(cat, ImportParams{File: csvPath, Root: dir})
	require.NoError(t, err)
	require.Equal(t, 1, report.Merged)

	row, err := cat.GetRow(filepath.Join(dir, "track1.mp3"))
	require.NoError(t, err)
	require.Equal(t, 128.0, *row.BPM)
	require.Equal(t, "9A", *row.CamelotKey)
}
