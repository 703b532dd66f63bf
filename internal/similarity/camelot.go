// Package similarity implements the pairwise scoring primitives and the
// composite transition score the Compatibility Query and Playlist
// Sequencer rank candidates with, ported from the camelot/bpm/hamms
// formulas in the source compatibility service and generalized into pure,
// side-effect-free functions.
package similarity

import (
	"regexp"
	"strconv"
)

var camelotRe = regexp.MustCompile(`^(1[0-2]|[1-9])([AB])$`)

// Camelot is a parsed Camelot wheel position: number 1..12, mode A (minor)
// or B (major).
type Camelot struct {
	Number int
	Mode   byte
}

// ParseCamelot parses "NNA" or "NNB"; ok is false for anything else,
// including an empty string.
func ParseCamelot(code string) (Camelot, bool) {
	m := camelotRe.FindStringSubmatch(code)
	if m == nil {
		return Camelot{}, false
	}
	n, _ := strconv.Atoi(m[1])
	return Camelot{Number: n, Mode: m[2][0]}, true
}

// CamelotDistance returns the ring distance plus a 0.5 mode penalty when
// the letters differ. ok is false if either code fails to parse.
func CamelotDistance(c1, c2 string) (float64, bool) {
	a, ok1 := ParseCamelot(c1)
	b, ok2 := ParseCamelot(c2)
	if !ok1 || !ok2 {
		return 0, false
	}
	diff := a.Number - b.Number
	if diff < 0 {
		diff = -diff
	}
	ring := diff
	if 12-diff < ring {
		ring = 12 - diff
	}
	penalty := 0.0
	if a.Mode != b.Mode {
		penalty = 0.5
	}
	return float64(ring) + penalty, true
}

// CamelotScore is the step function of camelot distance: 0->1.0,
// 0.5->0.92, <=1->0.88, <=2->0.70, <=3->0.50, else->0.20. Missing keys
// score neutral 0.5.
func CamelotScore(c1, c2 string) float64 {
	d, ok := CamelotDistance(c1, c2)
	if !ok {
		return 0.5
	}
	switch {
	case d == 0:
		return 1.0
	case d == 0.5:
		return 0.92
	case d <= 1.0:
		return 0.88
	case d <= 2.0:
		return 0.70
	case d <= 3.0:
		return 0.50
	default:
		return 0.20
	}
}

// IsRelativeMajorMinor is true when both codes share the same number but
// differ in mode.
func IsRelativeMajorMinor(c1, c2 string) bool {
	a, ok1 := ParseCamelot(c1)
	b, ok2 := ParseCamelot(c2)
	return ok1 && ok2 && a.Number == b.Number && a.Mode != b.Mode
}
