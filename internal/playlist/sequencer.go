package playlist

import (
	"sort"

	"github.com/llehouerou/waves/internal/errs"
	"github.com/llehouerou/waves/internal/similarity"
)

const rankedPoolSize = 100

// Generate produces an ordered sequence of length cfg.Length starting with
// seed, each subsequent track chosen by the four-stage fallback cascade
// of §4.7. candidates missing a BPM are dropped up front (reported via the
// returned drop count); seed missing a BPM is a hard validation error
// (errs.ErrValidation).
func Generate(seed Candidate, candidates []Candidate, cfg Config) (*Result, int, error) {
	if seed.BPM <= 0 {
		return nil, 0, errs.Validation(errs.OpPlaylistSeed, "seed %s has no bpm", seed.Path)
	}
	if cfg.Length < 2 {
		return nil, 0, errs.Validation(errs.OpPlaylistPlan, "length must be >= 2, got %d", cfg.Length)
	}

	valid := make([]Candidate, 0, len(candidates))
	dropped := 0
	for _, c := range candidates {
		if c.BPM <= 0 {
			dropped++
			continue
		}
		valid = append(valid, c)
	}

	curveVals := EnergyCurve(cfg.Length, cfg.Curve)

	var avail similarity.FeatureAvailability
	if cfg.UseExtended {
		avail = poolAvailability(valid)
	}

	result := &Result{Plan: []Candidate{seed}}
	usedPaths := map[string]bool{seed.Path: true}
	usedISRC := map[string]bool{}
	if seed.ISRC != "" {
		usedISRC[seed.ISRC] = true
	}

	smallPool := len(valid) <= cfg.Length
	current := seed

	for i := 1; i < cfg.Length; i++ {
		pool := poolFor(valid, current, usedPaths, smallPool)
		if cfg.DedupeByISRC {
			pool = filterISRC(pool, usedISRC)
		}
		if len(pool) == 0 {
			result.TruncatedEmpty = true
			break
		}

		ranked := rankedAgainst(current, pool, cfg, avail, rankedPoolSize)
		if len(ranked) == 0 {
			result.TruncatedEmpty = true
			break
		}

		survivors, stage := selectStage(current, ranked, cfg.BPMTolerance)
		if len(survivors) == 0 {
			result.TruncatedEmpty = true
			break
		}

		next := pickBest(current, survivors, curveVals[i], cfg.PreferRelative)
		result.Plan = append(result.Plan, next)
		result.StagesUsed = append(result.StagesUsed, stage)
		usedPaths[next.Path] = true
		if next.ISRC != "" {
			usedISRC[next.ISRC] = true
		}
		current = next
	}

	result.Validation = Validate(result.Plan, cfg.BPMTolerance)
	return result, dropped, nil
}

func poolFor(valid []Candidate, current Candidate, used map[string]bool, smallPool bool) []Candidate {
	out := make([]Candidate, 0, len(valid))
	for _, c := range valid {
		if smallPool {
			if c.Path == current.Path {
				continue
			}
		} else if used[c.Path] {
			continue
		}
		out = append(out, c)
	}
	return out
}

func filterISRC(pool []Candidate, usedISRC map[string]bool) []Candidate {
	out := make([]Candidate, 0, len(pool))
	for _, c := range pool {
		if c.ISRC != "" && usedISRC[c.ISRC] {
			continue
		}
		out = append(out, c)
	}
	return out
}

// rankedAgainst returns up to limit candidates from pool sorted by
// descending transition score against current, ties broken by path for
// determinism. When cfg.UseExtended is set and both tracks in a pair
// carry the richer subgenre/era/cultural/lyrics metadata, the extended
// composite of §4.5 ranks that pair in place of the plain composite
// transition score, per §4.7's enhanced variant.
func rankedAgainst(current Candidate, pool []Candidate, cfg Config, avail similarity.FeatureAvailability, limit int) []Candidate {
	type scored struct {
		c     Candidate
		score float64
	}
	out := make([]scored, 0, len(pool))
	for _, c := range pool {
		var score float64
		var err error
		if cfg.UseExtended && hasExtendedMetadata(current.Track, c.Track) {
			score, err = similarity.ExtendedComposite(current.Track, c.Track, cfg.ExtendedWeights, avail)
		} else {
			score, err = similarity.Composite(current.Track, c.Track, cfg.PreferRelative)
		}
		if err != nil {
			continue
		}
		out = append(out, scored{c: c, score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}
		return out[i].c.Path < out[j].c.Path
	})
	if len(out) > limit {
		out = out[:limit]
	}
	result := make([]Candidate, len(out))
	for i, s := range out {
		result[i] = s.c
	}
	return result
}

// selectStage runs the four-stage cascade over a ranked candidate set and
// returns the surviving set plus which stage produced it.
func selectStage(current Candidate, ranked []Candidate, tolerance float64) ([]Candidate, Stage) {
	// Stage A: strict.
	var a []Candidate
	for _, c := range ranked {
		dist, ok := similarity.CamelotDistance(current.CamelotKey, c.CamelotKey)
		compatibleKey := !ok || dist <= 2.0
		if compatibleKey && similarity.TempoWithinTolerance(current.BPM, c.BPM, tolerance) {
			a = append(a, c)
		}
	}
	if len(a) > 0 {
		return a, StageA
	}

	// Stage B: adaptive tempo tolerance, key unconstrained.
	var b []Candidate
	adaptive := adaptiveTolerance(current.BPM)
	for _, c := range ranked {
		if similarity.TempoWithinTolerance(current.BPM, c.BPM, adaptive) {
			b = append(b, c)
		}
	}
	if len(b) > 0 {
		return b, StageB
	}

	// Stage C: excellent-key relaxed-tempo.
	var cc []Candidate
	for _, c := range ranked {
		dist, ok := similarity.CamelotDistance(current.CamelotKey, c.CamelotKey)
		if ok && dist <= 1.0 {
			cc = append(cc, c)
		}
	}
	if len(cc) > 0 {
		return cc, StageC
	}

	// Stage D: emergency.
	top10 := ranked
	if len(top10) > 10 {
		top10 = top10[:10]
	}
	var d []Candidate
	for _, c := range top10 {
		if current.BPM <= 0 {
			continue
		}
		diffPct := abs(c.BPM-current.BPM) / current.BPM
		if diffPct <= 0.4 {
			d = append(d, c)
		}
	}
	if len(d) == 0 {
		top2 := ranked
		if len(top2) > 2 {
			top2 = top2[:2]
		}
		d = top2
	}
	return d, StageD
}

// hasExtendedMetadata reports whether both tracks in a transition carry
// every field the enhanced variant scores, per §4.7: "if each track
// carries subgenre/era/cultural/lyrics ... fields".
func hasExtendedMetadata(a, b similarity.Track) bool {
	return a.Subgenre != "" && b.Subgenre != "" &&
		a.Era != "" && b.Era != "" &&
		a.Cultural != nil && b.Cultural != nil &&
		a.Lyrics != nil && b.Lyrics != nil
}

// poolAvailability measures, over the bpm-valid candidate pool, what
// fraction of tracks carry each extended-composite feature — the input
// ExtendedComposite uses to halve underweighted features.
func poolAvailability(pool []Candidate) similarity.FeatureAvailability {
	if len(pool) == 0 {
		return similarity.FeatureAvailability{Subgenre: 1, HAMMS: 1, Era: 1, Mood: 1, Cultural: 1, Lyrics: 1}
	}

	var subgenre, hamms, era, mood, cultural, lyrics int
	for _, c := range pool {
		if c.Subgenre != "" {
			subgenre++
		}
		if len(c.HAMMS) == 12 {
			hamms++
		}
		if c.Era != "" {
			era++
		}
		if c.Mood != "" {
			mood++
		}
		if c.Cultural != nil {
			cultural++
		}
		if c.Lyrics != nil && c.Lyrics.Available {
			lyrics++
		}
	}

	n := float64(len(pool))
	return similarity.FeatureAvailability{
		Subgenre: float64(subgenre) / n,
		HAMMS:    float64(hamms) / n,
		Era:      float64(era) / n,
		Mood:     float64(mood) / n,
		Cultural: float64(cultural) / n,
		Lyrics:   float64(lyrics) / n,
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// pickBest chooses the survivor minimizing
// (|energy(c) - targetEnergy|, -T(current, c, preferRelative)).
func pickBest(current Candidate, survivors []Candidate, targetEnergy float64, preferRelative bool) Candidate {
	best := survivors[0]
	bestEnergyDiff, bestNegScore := rankKey(current, best, targetEnergy, preferRelative)

	for _, c := range survivors[1:] {
		energyDiff, negScore := rankKey(current, c, targetEnergy, preferRelative)
		if energyDiff < bestEnergyDiff || (energyDiff == bestEnergyDiff && negScore < bestNegScore) {
			best, bestEnergyDiff, bestNegScore = c, energyDiff, negScore
		}
	}
	return best
}

func rankKey(current, c Candidate, targetEnergy float64, preferRelative bool) (float64, float64) {
	energy := 0.5
	if c.HasEnergy {
		energy = c.Energy
	}
	score, err := similarity.Composite(current.Track, c.Track, preferRelative)
	if err != nil {
		score = 0
	}
	return abs(energy - targetEnergy), -score
}
