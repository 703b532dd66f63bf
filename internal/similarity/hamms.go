package similarity

import "github.com/llehouerou/waves/internal/errs"

// HAMMSScore computes 1 - (Σ|a_i - b_i|)/2, clamped at 0. Both vectors
// must be 12-D with every element in [0,1]; a dimension mismatch or
// out-of-range value is a contract violation (ValidationError), not a
// data quirk, so it is never silently coerced. A nil vector on either
// side means "missing" and scores neutral 0.5.
func HAMMSScore(a, b []float64) (float64, error) {
	if a == nil || b == nil {
		return 0.5, nil
	}
	if len(a) != 12 || len(b) != 12 {
		return 0, errs.Validation(errs.OpSimilarityScore, "hamms vectors must be 12-dimensional, got %d and %d", len(a), len(b))
	}
	for _, v := range a {
		if v < 0 || v > 1 {
			return 0, errs.Validation(errs.OpSimilarityScore, "hamms element %v out of [0,1]", v)
		}
	}
	for _, v := range b {
		if v < 0 || v > 1 {
			return 0, errs.Validation(errs.OpSimilarityScore, "hamms element %v out of [0,1]", v)
		}
	}

	dist := 0.0
	for i := range a {
		dist += abs(a[i] - b[i])
	}
	score := 1 - dist/2
	if score < 0 {
		score = 0
	}
	return score, nil
}
