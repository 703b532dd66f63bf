package similarity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCamelotScore_Scenario1(t *testing.T) {
	require.Equal(t, 1.0, CamelotScore("8A", "8A"))
	require.GreaterOrEqual(t, CamelotScore("8A", "8B"), 0.85)
	require.GreaterOrEqual(t, CamelotScore("8A", "9A"), 0.85)
	require.InDelta(t, 0.50, CamelotScore("8A", "2A"), 1e-9)
}

func TestCamelotScore_MissingIsNeutral(t *testing.T) {
	require.Equal(t, 0.5, CamelotScore("", "8A"))
	require.Equal(t, 0.5, CamelotScore("garbage", "8A"))
}

func TestTempoWithinTolerance_Scenario2(t *testing.T) {
	require.True(t, TempoWithinTolerance(120, 240, 0.08))
	require.False(t, TempoWithinTolerance(120, 125, 0.02))
	require.True(t, TempoWithinTolerance(120, 121, 0.02))
}

func TestHAMMSScore_Scenario3(t *testing.T) {
	half := make([]float64, 12)
	for i := range half {
		half[i] = 0.5
	}
	zero := make([]float64, 12)
	one := make([]float64, 12)
	for i := range one {
		one[i] = 1.0
	}

	score, err := HAMMSScore(half, half)
	require.NoError(t, err)
	require.Equal(t, 1.0, score)

	score, err = HAMMSScore(zero, one)
	require.NoError(t, err)
	require.Equal(t, 0.0, score)

	score, err = HAMMSScore(half, nil)
	require.NoError(t, err)
	require.Equal(t, 0.5, score)
}

func TestHAMMSScore_RejectsWrongDimension(t *testing.T) {
	_, err := HAMMSScore(make([]float64, 11), make([]float64, 12))
	require.Error(t, err)
}

func TestHAMMSScore_RejectsOutOfRange(t *testing.T) {
	bad := make([]float64, 12)
	bad[0] = 1.5
	_, err := HAMMSScore(bad, make([]float64, 12))
	require.Error(t, err)
}

func TestCamelotDistance(t *testing.T) {
	d, ok := CamelotDistance("8A", "8B")
	require.True(t, ok)
	require.Equal(t, 0.5, d)

	d, ok = CamelotDistance("1A", "12A")
	require.True(t, ok)
	require.Equal(t, 1.0, d)
}

func TestEnergyPenalty(t *testing.T) {
	require.InDelta(t, 0.1, EnergyPenalty(0.5, 0.7), 1e-9)
	require.Equal(t, 0.5, EnergyPenalty(0.0, 1.0))
}

func TestComposite_SymmetricAndBounded(t *testing.T) {
	a := Track{BPM: 120, CamelotKey: "8A", Energy: 0.5, HasEnergy: true, HAMMS: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0, 0.5, 0.5}}
	b := Track{BPM: 122, CamelotKey: "9A", Energy: 0.6, HasEnergy: true, HAMMS: []float64{0.2, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0, 0.4, 0.5}}

	sAB, err := Composite(a, b, false)
	require.NoError(t, err)
	sBA, err := Composite(b, a, false)
	require.NoError(t, err)
	require.InDelta(t, sAB, sBA, 1e-9)
	require.GreaterOrEqual(t, sAB, 0.0)
	require.LessOrEqual(t, sAB, 1.0)
}

func TestComposite_RejectsMissingBPM(t *testing.T) {
	a := Track{CamelotKey: "8A"}
	b := Track{BPM: 120, CamelotKey: "8A"}
	_, err := Composite(a, b, false)
	require.Error(t, err)
}

func TestComposite_RelativeMajorMinorBonus(t *testing.T) {
	a := Track{BPM: 120, CamelotKey: "8A", HAMMS: make([]float64, 12)}
	b := Track{BPM: 120, CamelotKey: "8B", HAMMS: make([]float64, 12)}

	without, err := Composite(a, b, false)
	require.NoError(t, err)
	with, err := Composite(a, b, true)
	require.NoError(t, err)
	require.Greater(t, with, without)
}

func TestSubgenreScore_KnownPairIsBidirectional(t *testing.T) {
	a := Track{Subgenre: "Tech House"}
	b := Track{Subgenre: "Techno"}
	require.Equal(t, SubgenreScore(a, b), SubgenreScore(b, a))
	require.InDelta(t, 0.85, SubgenreScore(a, b), 1e-9)
}

func TestSubgenreScore_UnknownSameGenreFallsBackTo06(t *testing.T) {
	a := Track{Subgenre: "Obscure A", Genre: "House"}
	b := Track{Subgenre: "Obscure B", Genre: "House"}
	require.Equal(t, 0.6, SubgenreScore(a, b))
}

func TestCulturalScore_MissingIsNeutral(t *testing.T) {
	a := Track{}
	b := Track{Cultural: &CulturalContext{ClubScenes: []string{"berlin"}}}
	require.Equal(t, 0.5, CulturalScore(a, b))
}

func TestCulturalScore_OverlapWeighsClubScenesHighest(t *testing.T) {
	a := Track{Cultural: &CulturalContext{ClubScenes: []string{"berlin", "detroit"}}}
	b := Track{Cultural: &CulturalContext{ClubScenes: []string{"berlin", "ibiza"}}}
	// jaccard({berlin,detroit},{berlin,ibiza}) = 1/3, only component present.
	require.InDelta(t, 1.0/3.0, CulturalScore(a, b), 1e-9)

	identical := Track{Cultural: &CulturalContext{ClubScenes: []string{"berlin"}}}
	require.Equal(t, 1.0, CulturalScore(identical, identical))
}

func TestLyricsScore_UnavailableOrLowConfidenceIsNeutral(t *testing.T) {
	a := Track{Lyrics: &LyricsData{Available: false}}
	b := Track{Lyrics: &LyricsData{Available: true, Confidence: 0.9}}
	require.Equal(t, 0.5, LyricsScore(a, b))

	low := Track{Lyrics: &LyricsData{Available: true, Confidence: 0.1}}
	require.Equal(t, 0.5, LyricsScore(low, b))
}

func TestLyricsScore_MatchingLanguageAndPhrasesScoreHigh(t *testing.T) {
	a := Track{Lyrics: &LyricsData{Available: true, Confidence: 0.9, Language: "en", CommonPhrases: []string{"oh yeah"}, RhymeSeeds: []string{"night"}}}
	b := Track{Lyrics: &LyricsData{Available: true, Confidence: 0.9, Language: "en", CommonPhrases: []string{"oh yeah"}, RhymeSeeds: []string{"night"}}}
	require.Equal(t, 1.0, LyricsScore(a, b))
}

func TestExtendedComposite_HalvesUnderAvailableFeature(t *testing.T) {
	a := Track{HAMMS: make([]float64, 12), Subgenre: "Techno", Era: "2020s", Mood: "energetic"}
	b := Track{HAMMS: make([]float64, 12), Subgenre: "Techno", Era: "2020s", Mood: "energetic"}

	weights := ExtendedWeights{Subgenre: 0.25, HAMMS: 0.25, Era: 0.25, Mood: 0.25}
	full := FeatureAvailability{Subgenre: 1, HAMMS: 1, Era: 1, Mood: 1}
	scoreFull, err := ExtendedComposite(a, b, weights, full)
	require.NoError(t, err)
	require.InDelta(t, 1.0, scoreFull, 1e-9)

	sparse := FeatureAvailability{Subgenre: 0.1, HAMMS: 1, Era: 1, Mood: 1}
	scoreSparse, err := ExtendedComposite(a, b, weights, sparse)
	require.NoError(t, err)
	require.InDelta(t, 1.0, scoreSparse, 1e-9) // both inputs identical, so halving doesn't move the score
}
