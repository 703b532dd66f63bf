// Package playlist implements the Playlist Sequencer: greedy constrained
// selection with an energy-curve target, a four-stage tolerance fallback
// cascade, and a post-generation BPM-compliance report, ported from the
// source playlist service's generate_playlist.
package playlist

// Curve names accepted by Config.Curve.
const (
	CurveAscending  = "ascending"
	CurveDescending = "descending"
	CurveFlat       = "flat"
)

// EnergyCurve returns a length-L vector of target energies: ascending is
// linear 0..1, descending is linear 1..0, flat is 0.5 everywhere.
func EnergyCurve(length int, curve string) []float64 {
	if length <= 0 {
		return nil
	}
	out := make([]float64, length)
	switch curve {
	case CurveFlat:
		for i := range out {
			out[i] = 0.5
		}
	case CurveDescending:
		denom := length - 1
		if denom < 1 {
			denom = 1
		}
		for i := range out {
			v := 1.0 - float64(i)/float64(denom)
			if v < 0 {
				v = 0
			}
			out[i] = v
		}
	default: // ascending
		denom := length - 1
		if denom < 1 {
			denom = 1
		}
		for i := range out {
			v := float64(i) / float64(denom)
			if v > 1 {
				v = 1
			}
			out[i] = v
		}
	}
	return out
}

// adaptiveTolerance is the second-fallback tolerance table from §4.7.
func adaptiveTolerance(bpm float64) float64 {
	switch {
	case bpm <= 0:
		return 0.20
	case bpm < 90:
		return 0.25
	case bpm < 110:
		return 0.20
	case bpm < 140:
		return 0.15
	default:
		return 0.12
	}
}
