package similarity

import "github.com/llehouerou/waves/internal/errs"

// Track is the minimal view of a catalogue row the Similarity Engine
// needs. BPM <= 0 and an empty CamelotKey both mean "missing" for the
// primitives above.
type Track struct {
	BPM        float64
	CamelotKey string
	Energy     float64
	HasEnergy  bool
	HAMMS      []float64

	Subgenre string
	Genre    string
	Era      string
	Mood     string
	ISRC     string

	// Cultural and Lyrics are nil unless an enrichment source populated
	// them; the extended composite treats a nil pointer as "not carried"
	// rather than "empty", per §4.5's richer-metadata gating.
	Cultural *CulturalContext
	Lyrics   *LyricsData
}

// Composite computes the transition score T(a,b,prefer_rel) from §4.5:
// base = clamp(0.4*key + 0.3*tempo + 0.3*hamms - energyPenalty, 0, 1),
// with +0.05 (clamped to 1) when prefer_rel is set and a,b are relative
// major/minor. Both tracks must carry a BPM; the Compatibility Query and
// Sequencer are responsible for filtering bpm-less candidates before
// calling in.
func Composite(a, b Track, preferRelative bool) (float64, error) {
	if a.BPM <= 0 || b.BPM <= 0 {
		return 0, errs.Validation(errs.OpSimilarityScore, "both tracks must have bpm")
	}

	keyScore := CamelotScore(a.CamelotKey, b.CamelotKey)
	tempoScore := TempoScore(a.BPM, b.BPM)
	hammsScore, err := HAMMSScore(a.HAMMS, b.HAMMS)
	if err != nil {
		return 0, err
	}

	pen := 0.0
	if a.HasEnergy && b.HasEnergy {
		pen = EnergyPenalty(a.Energy, b.Energy)
	}

	base := 0.4*keyScore + 0.3*tempoScore + 0.3*hammsScore - pen
	if base < 0 {
		base = 0
	}
	if base > 1 {
		base = 1
	}

	if preferRelative && IsRelativeMajorMinor(a.CamelotKey, b.CamelotKey) {
		base += 0.05
		if base > 1 {
			base = 1
		}
	}
	return base, nil
}
