package similarity

// CulturalContext carries the scene/production metadata an enrichment
// source (cultural_context in the original catalogue) attaches to a
// track. A nil *CulturalContext on a Track means the source never ran.
type CulturalContext struct {
	ClubScenes           []string
	ProductionMarkers    []string
	MediaFormats         []string
	DistributionChannels []string
}

// LyricsData carries the lyric-derived metadata an enrichment source
// attaches to a track. Available reports whether the source actually
// transcribed lyrics (as opposed to running and finding none); Confidence
// below 0.6 is treated the same as not available.
type LyricsData struct {
	Available     bool
	Confidence    float64
	Language      string
	CommonPhrases []string
	RhymeSeeds    []string
}

const lyricsConfidenceFloor = 0.6

// CulturalScore weighs club-scene overlap (40%), production-marker
// overlap (30%), media-format overlap (20%), and distribution-channel
// overlap (10%) as Jaccard similarities, re-normalizing over whichever
// of the four components both tracks actually carry. Missing context on
// either side scores neutral 0.5.
func CulturalScore(a, b Track) float64 {
	if a.Cultural == nil || b.Cultural == nil {
		return 0.5
	}

	var score, weight float64
	add := func(s1, s2 []string, w float64) {
		j, ok := jaccard(s1, s2)
		if !ok {
			return
		}
		score += j * w
		weight += w
	}
	add(a.Cultural.ClubScenes, b.Cultural.ClubScenes, 0.4)
	add(a.Cultural.ProductionMarkers, b.Cultural.ProductionMarkers, 0.3)
	add(a.Cultural.MediaFormats, b.Cultural.MediaFormats, 0.2)
	add(a.Cultural.DistributionChannels, b.Cultural.DistributionChannels, 0.1)

	if weight == 0 {
		return 0.5
	}
	return clamp01(score / weight)
}

// LyricsScore weighs language match (20%), common-phrase overlap (50%),
// and rhyme-seed overlap (30%). Either side missing, unavailable, or
// below the confidence floor scores neutral 0.5.
func LyricsScore(a, b Track) float64 {
	if a.Lyrics == nil || b.Lyrics == nil {
		return 0.5
	}
	if !a.Lyrics.Available || !b.Lyrics.Available {
		return 0.5
	}
	if a.Lyrics.Confidence < lyricsConfidenceFloor || b.Lyrics.Confidence < lyricsConfidenceFloor {
		return 0.5
	}

	var score, weight float64
	if a.Lyrics.Language != "" && a.Lyrics.Language != "unknown" &&
		b.Lyrics.Language != "" && b.Lyrics.Language != "unknown" {
		if a.Lyrics.Language == b.Lyrics.Language {
			score += 0.2
		} else {
			score += 0.05
		}
		weight += 0.2
	}
	if j, ok := jaccard(a.Lyrics.CommonPhrases, b.Lyrics.CommonPhrases); ok {
		score += j * 0.5
		weight += 0.5
	}
	if j, ok := jaccard(a.Lyrics.RhymeSeeds, b.Lyrics.RhymeSeeds); ok {
		score += j * 0.3
		weight += 0.3
	}

	if weight == 0 {
		return 0.5
	}
	return clamp01(score / weight)
}

// jaccard returns the intersection-over-union of two string sets and
// whether both sets were non-empty (ok=false means the caller should
// skip this component rather than score it 0).
func jaccard(a, b []string) (float64, bool) {
	if len(a) == 0 || len(b) == 0 {
		return 0, false
	}
	set := make(map[string]bool, len(a))
	for _, v := range a {
		set[v] = true
	}
	var intersection int
	union := make(map[string]bool, len(a)+len(b))
	for _, v := range a {
		union[v] = true
	}
	for _, v := range b {
		if set[v] {
			intersection++
		}
		union[v] = true
	}
	if len(union) == 0 {
		return 0, false
	}
	return float64(intersection) / float64(len(union)), true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
