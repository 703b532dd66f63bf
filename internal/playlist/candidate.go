package playlist

import "github.com/llehouerou/waves/internal/similarity"

// Candidate is one catalogue row as seen by the sequencer: its path plus
// the descriptors the Similarity Engine needs.
type Candidate struct {
	Path string
	similarity.Track
}

// Config controls one Generate call.
type Config struct {
	Length         int
	Curve          string
	BPMTolerance   float64
	PreferRelative bool
	DedupeByISRC   bool

	// UseExtended feature-gates the enhanced variant of §4.7: when set,
	// any transition where both tracks carry subgenre/era/cultural/lyrics
	// metadata is ranked with similarity.ExtendedComposite instead of the
	// plain composite, with ExtendedWeights as the caller-supplied
	// weights and availability measured once over the candidate pool.
	UseExtended     bool
	ExtendedWeights similarity.ExtendedWeights
}

// Stage names one fallback stage of the selection cascade, recorded per
// position for observability and for scenario 5's "at least one fallback
// stage was recorded" escape hatch.
type Stage string

const (
	StageA    Stage = "strict"
	StageB    Stage = "adaptive"
	StageC    Stage = "relaxed-tempo"
	StageD    Stage = "emergency"
	StageNone Stage = "" // no candidate available at this position
)

// ValidationReport is the post-generation compliance pass from §4.7.
type ValidationReport struct {
	Violations     int
	Transitions    int
	ComplianceRate float64
}

// Result is what Generate returns: the plan plus the stage used at each
// transition and the post-generation validation report.
type Result struct {
	Plan           []Candidate
	StagesUsed     []Stage // len(StagesUsed) == len(Plan)-1
	TruncatedEmpty bool
	Validation     ValidationReport
}
