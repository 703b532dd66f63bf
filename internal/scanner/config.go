// Package scanner implements the Scanner Orchestrator: it drives an
// end-to-end scan of a root directory through Discovery, the Catalogue
// Store's cache decision, the AudioFeatureExtractor, and back into the
// Catalogue, with bounded batches, progress reporting, and cooperative
// cancellation, built on the same discover-then-worker-pool shape the
// library scanner elsewhere in this module uses.
package scanner

import "github.com/llehouerou/waves/internal/catalogue"

// Mode names re-export the catalogue package's session-mode constants so
// callers only need to import this package to configure a scan.
const (
	ModeFull        = catalogue.ModeFull
	ModeIncremental = catalogue.ModeIncremental
	ModeSmart       = catalogue.ModeSmart
)

// Config controls one Scan call.
type Config struct {
	Root                string
	Mode                string // full | incremental | smart (default)
	BatchSize           int
	SupportedExtensions []string
	SkipCorrupted       bool
	ValidatePermissions bool
	ProgressInterval    int
	MemoryLimitMB       float64
	Workers             int
}

func (c Config) mode() string {
	if c.Mode == "" {
		return ModeSmart
	}
	return c.Mode
}

func (c Config) batchSize() int {
	if c.BatchSize <= 0 {
		return 200
	}
	return c.BatchSize
}

func (c Config) progressInterval() int {
	if c.ProgressInterval <= 0 {
		return 50
	}
	return c.ProgressInterval
}

func (c Config) workers() int {
	if c.Workers <= 0 {
		return 8
	}
	return c.Workers
}

func (c Config) memoryLimitMB() float64 {
	if c.MemoryLimitMB <= 0 {
		return 500
	}
	return c.MemoryLimitMB
}
