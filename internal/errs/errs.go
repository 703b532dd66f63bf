// Package errs provides the error taxonomy shared by every package in this
// module: a small set of sentinel kinds, wrapped with operation context so
// callers can branch on errors.Is instead of string-matching.
package errs

import (
	"errors"
	"fmt"
)

// Kind sentinels. Callers compare with errors.Is, never by string.
var (
	// ErrValidation marks a contract violation by a caller: bad HAMMS
	// length, invalid tempo, a missing seed bpm. Never retried.
	ErrValidation = errors.New("validation")
	// ErrNotFound marks an absent path or catalogue row where one was
	// required.
	ErrNotFound = errors.New("not found")
	// ErrIO marks a filesystem read/write failure.
	ErrIO = errors.New("io")
	// ErrIntegrity marks database corruption or a malformed stored row.
	ErrIntegrity = errors.New("integrity")
	// ErrExtractor marks a failure surfaced from the AudioFeatureExtractor.
	ErrExtractor = errors.New("extractor")
	// ErrCancelled marks cooperative cancellation observed mid-operation.
	ErrCancelled = errors.New("cancelled")
)

// Op names an operation that can fail, used only for error-message
// context — never compared programmatically.
type Op string

// Operation constants, grouped by component.
const (
	OpCatalogueOpen     Op = "open catalogue"
	OpCatalogueIsCached Op = "check cache"
	OpCatalogueUpsert   Op = "upsert analysis"
	OpCatalogueQuery    Op = "query candidates"
	OpCatalogueSession  Op = "manage scan session"
	OpCatalogueOptimize Op = "optimize catalogue"
	OpCatalogueBackup   Op = "back up catalogue"

	OpScanValidateRoot Op = "validate scan root"
	OpScanDiscover     Op = "discover files"
	OpScanExtract      Op = "extract audio features"

	OpSimilarityScore Op = "score similarity"
	OpCompatQuery     Op = "query compatible tracks"
	OpPlaylistSeed    Op = "validate playlist seed"
	OpPlaylistPlan    Op = "generate playlist"

	OpSidecarImport Op = "import sidecar catalogue"
)

// E wraps err with kind and op context, formatted as "<op>: <kind>: <err>".
// kind should be one of the Err* sentinels; errors.Is(result, kind) holds.
func E(op Op, kind error, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %v", op, kind, err)
}

// Validation is a convenience constructor for the common case of a plain
// validation message with no wrapped cause.
func Validation(op Op, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", op, ErrValidation, fmt.Sprintf(format, args...))
}
