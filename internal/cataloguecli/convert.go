package cataloguecli

import (
	"github.com/llehouerou/waves/internal/catalogue"
	"github.com/llehouerou/waves/internal/similarity"
)

// rowToTrack converts a catalogue Row into the Similarity Engine's Track
// shape, the conversion every compat/playlist entry point needs before
// handing rows to the in-process ranking that SQL can't express.
func rowToTrack(r *catalogue.Row) similarity.Track {
	t := similarity.Track{HAMMS: r.HAMMS}
	if r.BPM != nil {
		t.BPM = *r.BPM
	}
	if r.CamelotKey != nil {
		t.CamelotKey = *r.CamelotKey
	}
	if r.Energy != nil {
		t.Energy = *r.Energy
		t.HasEnergy = true
	}
	if r.Subgenre != nil {
		t.Subgenre = *r.Subgenre
	}
	if r.Genre != nil {
		t.Genre = *r.Genre
	}
	if r.Era != nil {
		t.Era = *r.Era
	}
	if r.Mood != nil {
		t.Mood = *r.Mood
	}
	if r.ISRC != nil {
		t.ISRC = *r.ISRC
	}
	return t
}

// candidatePool builds the path->Track map compat.Query ranks against,
// excluding the seed path itself.
func candidatePool(rows []*catalogue.Row, seedPath string) map[string]similarity.Track {
	pool := make(map[string]similarity.Track, len(rows))
	for _, r := range rows {
		if r.Path == seedPath {
			continue
		}
		pool[r.Path] = rowToTrack(r)
	}
	return pool
}
