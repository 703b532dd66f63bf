package sidecar

import "github.com/llehouerou/waves/internal/catalogue"

// MergeDJMeta applies an importer overlay onto an existing AnalysisResult
// in place, per spec's merge rule: DJMeta fields override the
// extractor-derived ones only when present; anything the overlay doesn't
// carry is left untouched, so an extractor-derived camelot_key survives an
// import that only asserts bpm.
func MergeDJMeta(a *catalogue.AnalysisResult, meta catalogue.DJMeta) {
	if meta.BPM != nil {
		a.BPM = meta.BPM
	}
	if meta.InitialKey != nil {
		a.InitialKey = meta.InitialKey
	}
	if meta.CamelotKey != nil {
		a.CamelotKey = meta.CamelotKey
	}
	if meta.EnergyLevel != nil {
		level := *meta.EnergyLevel
		energy := float64(level) / 10.0
		if energy < 0 {
			energy = 0
		}
		if energy > 1 {
			energy = 1
		}
		a.Energy = &energy
	}
	if meta.Comment != nil {
		if a.Tags == nil {
			a.Tags = make(map[string]string)
		}
		a.Tags["comment"] = *meta.Comment
	}
}
