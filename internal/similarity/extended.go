package similarity

import "github.com/llehouerou/waves/internal/errs"

// availabilityThreshold is the 30% pool-availability cutoff from §4.5
// below which a feature's weight is halved before renormalization.
const availabilityThreshold = 0.3

// ExtendedWeights are the caller-supplied weights for the extended
// composite. They need not sum to 1 on input — Normalize (called
// internally by ExtendedComposite) renormalizes after any halving.
type ExtendedWeights struct {
	Subgenre float64
	HAMMS    float64
	Era      float64
	Mood     float64
	Cultural float64
	Lyrics   float64
}

// FeatureAvailability reports, for the candidate pool a sequencer run is
// drawing from, what fraction of candidates carry each feature. A field
// left at zero counts as 0% available, so that feature's weight is halved.
type FeatureAvailability struct {
	Subgenre float64
	HAMMS    float64
	Era      float64
	Mood     float64
	Cultural float64
	Lyrics   float64
}

// ExtendedComposite computes the richer weighted sum over subgenre,
// HAMMS, era, mood, cultural context, and lyrics compatibility used by
// the sequencer when tracks carry that metadata. Per §4.5, a feature
// whose pool availability falls below 30% has its weight halved before
// the remaining weights are renormalized to sum to 1. The exact
// normalization order when multiple features are underweighted at once
// is left open; this implementation halves every underweighted feature
// first, then renormalizes once over the full adjusted set (see
// DESIGN.md).
func ExtendedComposite(a, b Track, weights ExtendedWeights, avail FeatureAvailability) (float64, error) {
	hammsScore, err := HAMMSScore(a.HAMMS, b.HAMMS)
	if err != nil {
		return 0, errs.E(errs.OpSimilarityScore, errs.ErrValidation, err)
	}

	adjusted := weights
	if avail.Subgenre < availabilityThreshold {
		adjusted.Subgenre /= 2
	}
	if avail.HAMMS < availabilityThreshold {
		adjusted.HAMMS /= 2
	}
	if avail.Era < availabilityThreshold {
		adjusted.Era /= 2
	}
	if avail.Mood < availabilityThreshold {
		adjusted.Mood /= 2
	}
	if avail.Cultural < availabilityThreshold {
		adjusted.Cultural /= 2
	}
	if avail.Lyrics < availabilityThreshold {
		adjusted.Lyrics /= 2
	}

	total := adjusted.Subgenre + adjusted.HAMMS + adjusted.Era + adjusted.Mood + adjusted.Cultural + adjusted.Lyrics
	if total <= 0 {
		return 0.5, nil
	}

	score := adjusted.Subgenre/total*SubgenreScore(a, b) +
		adjusted.HAMMS/total*hammsScore +
		adjusted.Era/total*EraScore(a, b) +
		adjusted.Mood/total*MoodScore(a, b) +
		adjusted.Cultural/total*CulturalScore(a, b) +
		adjusted.Lyrics/total*LyricsScore(a, b)

	return clamp01(score), nil
}
