package compat

import (
	"testing"

	"github.com/llehouerou/waves/internal/similarity"
	"github.com/stretchr/testify/require"
)

func TestQuery_DropsMissingBPM(t *testing.T) {
	seed := similarity.Track{BPM: 120, CamelotKey: "8A"}
	candidates := map[string]similarity.Track{
		"/a.mp3": {BPM: 121, CamelotKey: "8A"},
		"/b.mp3": {CamelotKey: "8A"}, // no bpm
	}

	results, dropped, err := Query("/seed.mp3", seed, candidates, 0, false)
	require.NoError(t, err)
	require.Equal(t, 1, dropped)
	require.Len(t, results, 1)
	require.Equal(t, "/a.mp3", results[0].Path)
}

func TestQuery_SeedMissingBPMIsHardError(t *testing.T) {
	seed := similarity.Track{CamelotKey: "8A"}
	_, _, err := Query("/seed.mp3", seed, map[string]similarity.Track{}, 0, false)
	require.Error(t, err)
}

func TestQuery_OrderedDescendingWithStableTieBreak(t *testing.T) {
	seed := similarity.Track{BPM: 120, CamelotKey: "8A"}
	candidates := map[string]similarity.Track{
		"/z.mp3": {BPM: 120, CamelotKey: "8A"},
		"/a.mp3": {BPM: 120, CamelotKey: "8A"},
		"/m.mp3": {BPM: 200, CamelotKey: "2A"},
	}

	results, _, err := Query("/seed.mp3", seed, candidates, 0, false)
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.GreaterOrEqual(t, results[0].Score, results[1].Score)
	require.GreaterOrEqual(t, results[1].Score, results[2].Score)
	// the two equal-score candidates tie-break by path
	require.Equal(t, "/a.mp3", results[0].Path)
	require.Equal(t, "/z.mp3", results[1].Path)
}

func TestQuery_RespectsTopLimit(t *testing.T) {
	seed := similarity.Track{BPM: 120, CamelotKey: "8A"}
	candidates := map[string]similarity.Track{
		"/a.mp3": {BPM: 120, CamelotKey: "8A"},
		"/b.mp3": {BPM: 121, CamelotKey: "8A"},
		"/c.mp3": {BPM: 122, CamelotKey: "8A"},
	}

	results, _, err := Query("/seed.mp3", seed, candidates, 2, false)
	require.NoError(t, err)
	require.Len(t, results, 2)
}
