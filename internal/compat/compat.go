// Package compat implements the Compatibility Query: ranking a candidate
// pool against a seed track using the Similarity Engine's composite
// transition score, grounded on the source's suggest_compatible and the
// teacher's radio candidate-ranking style.
package compat

import (
	"sort"

	"github.com/llehouerou/waves/internal/errs"
	"github.com/llehouerou/waves/internal/similarity"
)

// Candidate is one scored result: the path plus the descriptors needed to
// report it, and the score against the seed.
type Candidate struct {
	Path   string
	BPM    float64
	Key    string
	Energy float64
	Score  float64
}

// Query ranks candidates against seed using the composite transition
// score, dropping any candidate missing a BPM (counted in the returned
// drop count). A seed missing BPM is a hard error: the query returns
// empty, never a partial ranking. top <= 0 means unlimited.
func Query(seedPath string, seed similarity.Track, candidates map[string]similarity.Track, top int, preferRelative bool) ([]Candidate, int, error) {
	if seed.BPM <= 0 {
		return nil, 0, errs.Validation(errs.OpCompatQuery, "seed %s has no bpm", seedPath)
	}

	var dropped int
	scored := make([]Candidate, 0, len(candidates))
	for path, c := range candidates {
		if c.BPM <= 0 {
			dropped++
			continue
		}
		score, err := similarity.Composite(seed, c, preferRelative)
		if err != nil {
			dropped++
			continue
		}
		scored = append(scored, Candidate{Path: path, BPM: c.BPM, Key: c.CamelotKey, Energy: c.Energy, Score: score})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Path < scored[j].Path
	})

	if top > 0 && len(scored) > top {
		scored = scored[:top]
	}
	return scored, dropped, nil
}
