package cataloguecli

import (
	"context"
	"fmt"

	"github.com/llehouerou/waves/internal/catalogue"
	"github.com/llehouerou/waves/internal/errs"
	"github.com/llehouerou/waves/internal/extractor"
	"github.com/llehouerou/waves/internal/scanner"
)

// ScanParams is the parsed form of the `scan <root>` command.
type ScanParams struct {
	Root                string
	Mode                string
	BatchSize           int
	Workers             int
	ValidatePermissions bool
	MemoryLimitMB       float64
}

// Scan runs one Scanner Orchestrator pass and folds its terminal status
// into an error ExitCode can map: nil on completion, errs.ErrCancelled on
// cancellation, a plain error on session failure.
func Scan(ctx context.Context, cat *catalogue.Catalogue, ext extractor.AudioFeatureExtractor, params ScanParams, sink scanner.Sink) (*scanner.Outcome, error) {
	s := &scanner.Scanner{Catalogue: cat, Extractor: ext}
	cfg := scanner.Config{
		Root:                params.Root,
		Mode:                params.Mode,
		BatchSize:           params.BatchSize,
		Workers:             params.Workers,
		ValidatePermissions: params.ValidatePermissions,
		MemoryLimitMB:       params.MemoryLimitMB,
	}

	outcome, err := s.Scan(ctx, cfg, sink)
	if err != nil {
		return nil, err
	}

	switch outcome.Status {
	case catalogue.SessionCancelled:
		return outcome, errs.E(errs.OpScanValidateRoot, errs.ErrCancelled, fmt.Errorf("scan of %s cancelled", params.Root))
	case catalogue.SessionError:
		return outcome, errs.E(errs.OpScanValidateRoot, errs.ErrIO,
			fmt.Errorf("scan of %s ended with %d errors", params.Root, outcome.Counters.Errors))
	default:
		return outcome, nil
	}
}
