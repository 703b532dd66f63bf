// Package extractor defines the AudioFeatureExtractor contract — the only
// boundary between this module and real audio DSP (tempo estimation, key
// detection, chroma, spectrogram) — plus a reference adapter that reads
// container tags only, grounded on internal/tags.
package extractor

import (
	"context"
	"errors"
	"fmt"

	"github.com/llehouerou/waves/internal/errs"
)

// Features is everything an AudioFeatureExtractor returns for one path.
// BPM/InitialKey/CamelotKey/Energy/HAMMS/DurationSeconds are nil when the
// extractor couldn't determine them; Tags is always non-nil (may be
// empty).
type Features struct {
	BPM             *float64
	InitialKey      *string
	CamelotKey      *string
	Energy          *float64
	HAMMS           []float64
	DurationSeconds *float64
	Tags            map[string]string
}

// Kind sentinels for the extractor's error set. Unreadable and Corrupt
// are per-file non-fatal when a scan runs with SkipCorrupted; Unsupported
// and Timeout are reported the same way but never indicate a bad file.
var (
	ErrUnreadable  = errors.New("unreadable")
	ErrUnsupported = errors.New("unsupported format")
	ErrCorrupt     = errors.New("corrupt")
	ErrTimeout     = errors.New("timeout")
)

// Error wraps one of the Err* sentinels above with the offending path,
// and satisfies errors.Is against both the specific sentinel and the
// shared errs.ErrExtractor kind.
type Error struct {
	Path string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract %s: %v: %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("extract %s: %v", e.Path, e.Kind)
}

func (e *Error) Unwrap() []error {
	out := []error{e.Kind, errs.ErrExtractor}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

func wrap(path string, kind error, cause error) error {
	return &Error{Path: path, Kind: kind, Err: cause}
}

// AudioFeatureExtractor is the DSP capability the Scanner Orchestrator
// consumes. Implementations must respect ctx cancellation on long-running
// analysis and return one of the Err* sentinels (wrapped via Error) on
// failure.
type AudioFeatureExtractor interface {
	Extract(ctx context.Context, path string) (*Features, error)
}
