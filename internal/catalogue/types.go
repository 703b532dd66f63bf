package catalogue

import "time"

// Track identifies one file on disk by its canonical absolute path. It is
// created on first discovery and never silently deleted — orphan cleanup
// flips Status to missing instead.
type Track struct {
	Path         string
	Fingerprint  []byte
	Size         uint64
	Mtime        float64 // seconds since epoch
	Status       string  // active | missing
	LastVerified float64
}

const (
	StatusActive  = "active"
	StatusMissing = "missing"
)

// AnalysisResult is 1:1 with a Track, holding the descriptors produced by
// an AudioFeatureExtractor plus any DJMeta overlay merged on top of them.
type AnalysisResult struct {
	BPM             *float64
	InitialKey      *string
	CamelotKey      *string
	Energy          *float64
	HAMMS           []float64 // exactly 12 elements, each in [0,1], or nil
	Genre           *string
	Subgenre        *string
	Era             *string
	Mood            *string
	ISRC            *string
	AnalysisMethod  string
	Confidence      *float64
	AnalyzedAt      float64
	ScanSessionID   *int64
	HasCompleteData bool
	Tags            map[string]string
}

// DJMeta is the overlay an ExternalCatalogueImporter writes over an
// existing AnalysisResult. Fields override the extractor-derived ones when
// present; EnergyLevel (1..10) maps to Energy = clamp(level/10, 0, 1).
type DJMeta struct {
	BPM         *float64
	InitialKey  *string
	CamelotKey  *string
	EnergyLevel *int
	Comment     *string
}

// ScanSession tracks one invocation of the Scanner Orchestrator.
type ScanSession struct {
	ID           int64
	StartedAt    float64
	EndedAt      *float64
	RootPath     string
	Mode         string // full | incremental | smart
	Status       string // running | completed | cancelled | error
	Discovered   int
	Processed    int
	Cached       int
	Analyzed     int
	Skipped      int
	Errors       int
	PeakMemoryMB float64
	DurationSecs float64
	ErrorMessage string
}

const (
	SessionRunning   = "running"
	SessionCompleted = "completed"
	SessionCancelled = "cancelled"
	SessionError     = "error"
)

const (
	ModeFull        = "full"
	ModeIncremental = "incremental"
	ModeSmart       = "smart"
)

// Row is the full denormalized record the Catalogue Store persists and
// returns from point lookups and range scans: a Track joined with its
// AnalysisResult.
type Row struct {
	Track
	AnalysisResult
}

// CandidateFilters narrows query_candidates beyond the mandatory
// status='active' AND has_complete_data AND bpm IS NOT NULL predicate.
type CandidateFilters struct {
	BPMTolerance float64 // 0 disables the BPM window
	Genre        string  // empty disables the genre filter
	MaxResults   int
}

// SessionCounters is the mutable counter set UpdateSession and
// CompleteSession write back to a running ScanSession row.
type SessionCounters struct {
	Discovered int
	Processed  int
	Cached     int
	Analyzed   int
	Skipped    int
	Errors     int
}

// Stats summarizes the catalogue for the summary CLI entry point.
type Stats struct {
	TotalTracks    int
	ActiveTracks   int
	MissingTracks  int
	AnalyzedTracks int
	AverageBPM     float64
	TopGenres      []GenreCount
	DatabaseSizeMB float64
	GeneratedAt    time.Time
}

// GenreCount is one row of the top-genres breakdown in Stats.
type GenreCount struct {
	Genre string
	Count int
}
