// Package sidecar implements the ExternalCatalogueImporter: parsers for
// MixedInKey CSV, Rekordbox XML, and Traktor NML exports, each producing a
// path-keyed overlay of catalogue.DJMeta that a caller merges onto
// existing AnalysisResult rows.
package sidecar

import "github.com/llehouerou/waves/internal/catalogue"

// Result is what every format parser returns: the per-path overlays found,
// plus how many rows were parsed successfully and how many were skipped
// as malformed.
type Result struct {
	Entries map[string]catalogue.DJMeta
	Parsed  int
	Skipped int
}

func newResult() *Result {
	return &Result{Entries: make(map[string]catalogue.DJMeta)}
}

func floatPtr(v float64) *float64 { return &v }
func stringPtr(v string) *string  { return &v }
func intPtr(v int) *int           { return &v }
