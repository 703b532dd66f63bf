package playlist

import "github.com/llehouerou/waves/internal/similarity"

// Validate walks consecutive pairs in plan and reports how many violate
// tolerance at the given tempo tolerance. It never fails the plan — a
// generated playlist can legitimately contain fallback-stage transitions
// that don't satisfy the strict tolerance — it only measures compliance.
func Validate(plan []Candidate, tolerance float64) ValidationReport {
	if len(plan) < 2 {
		return ValidationReport{}
	}
	transitions := len(plan) - 1
	violations := 0
	for i := 1; i < len(plan); i++ {
		prev, next := plan[i-1], plan[i]
		if !similarity.TempoWithinTolerance(prev.BPM, next.BPM, tolerance) {
			violations++
		}
	}
	rate := 1.0
	if transitions > 0 {
		rate = float64(transitions-violations) / float64(transitions)
	}
	return ValidationReport{Violations: violations, Transitions: transitions, ComplianceRate: rate}
}
