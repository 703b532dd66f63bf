package catalogue

import (
	"regexp"

	"github.com/llehouerou/waves/internal/errs"
)

var camelotRe = regexp.MustCompile(`^(1[0-2]|[1-9])[AB]$`)
var isrcRe = regexp.MustCompile(`^[A-Z]{2}-[A-Z0-9]{3}-\d{2}-\d{5}$`)

// validateAnalysis enforces the AnalysisResult invariants from §3 before a
// row is allowed to reach the database. A violation is a contract
// violation by the caller, not a data quirk — it is rejected, not
// silently coerced, except for ISRC which the source data model treats as
// "store as null on mismatch" (§3).
func validateAnalysis(a *AnalysisResult) error {
	if a.HAMMS != nil {
		if len(a.HAMMS) != 12 {
			return errs.Validation(errs.OpCatalogueUpsert, "hamms must have exactly 12 elements, got %d", len(a.HAMMS))
		}
		for _, v := range a.HAMMS {
			if v < 0 || v > 1 {
				return errs.Validation(errs.OpCatalogueUpsert, "hamms element %v out of [0,1]", v)
			}
		}
	}
	if a.CamelotKey != nil && !camelotRe.MatchString(*a.CamelotKey) {
		return errs.Validation(errs.OpCatalogueUpsert, "camelot_key %q does not match NN{A|B}", *a.CamelotKey)
	}
	if a.BPM != nil && (*a.BPM <= 0 || *a.BPM > 300) {
		return errs.Validation(errs.OpCatalogueUpsert, "bpm %v out of (0,300]", *a.BPM)
	}
	if a.ISRC != nil && !isrcRe.MatchString(*a.ISRC) {
		a.ISRC = nil
	}
	return nil
}

// hasCompleteData decides has_complete_data: bpm, camelot_key, energy, and
// a full 12-D hamms vector all present.
func hasCompleteData(a *AnalysisResult) bool {
	return a.BPM != nil && a.CamelotKey != nil && a.Energy != nil && len(a.HAMMS) == 12
}
