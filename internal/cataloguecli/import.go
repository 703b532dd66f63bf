package cataloguecli

import (
	"io"
	"os"

	"github.com/llehouerou/waves/internal/catalogue"
	"github.com/llehouerou/waves/internal/errs"
	"github.com/llehouerou/waves/internal/sidecar"
)

// ImportParams is the shared parsed form of the three import-* commands:
// a sidecar file path and the root their relative paths resolve against.
type ImportParams struct {
	File string
	Root string
}

// ImportReport summarizes one import-* run for the caller to print.
type ImportReport struct {
	Parsed  int
	Skipped int
	Merged  int
}

// ImportMIK runs `import-mik --csv F [--root R]`.
func ImportMIK(cat *catalogue.Catalogue, params ImportParams) (*ImportReport, error) {
	return runImport(cat, params, sidecar.ParseMixedInKeyCSV)
}

// ImportRekordbox runs `import-rekordbox --xml F [--root R]`.
func ImportRekordbox(cat *catalogue.Catalogue, params ImportParams) (*ImportReport, error) {
	return runImport(cat, params, sidecar.ParseRekordboxXML)
}

// ImportTraktor runs `import-traktor --nml F [--root R]`.
func ImportTraktor(cat *catalogue.Catalogue, params ImportParams) (*ImportReport, error) {
	return runImport(cat, params, sidecar.ParseTraktorNML)
}

type sidecarParser func(r io.Reader, root string) (*sidecar.Result, error)

func runImport(cat *catalogue.Catalogue, params ImportParams, parse sidecarParser) (*ImportReport, error) {
	f, err := os.Open(params.File)
	if err != nil {
		return nil, errs.E(errs.OpSidecarImport, errs.ErrIO, err)
	}
	defer f.Close()

	result, err := parse(f, params.Root)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{Parsed: result.Parsed, Skipped: result.Skipped}
	for path, meta := range result.Entries {
		row, err := cat.GetRow(path)
		if err != nil {
			report.Skipped++
			continue
		}
		sidecar.MergeDJMeta(&row.AnalysisResult, meta)
		if uerr := cat.UpsertAnalysis(catalogue.AnalysisInput{Path: path, Analysis: row.AnalysisResult}); uerr != nil {
			report.Skipped++
			continue
		}
		report.Merged++
	}
	return report, nil
}
