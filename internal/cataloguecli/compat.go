package cataloguecli

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/llehouerou/waves/internal/catalogue"
	"github.com/llehouerou/waves/internal/compat"
	"github.com/llehouerou/waves/internal/errs"
)

// CompatParams is the parsed form of `compat --path P [--top N]` and of
// the shared prefix of `compat-export`.
type CompatParams struct {
	Path           string
	Top            int
	PreferRelative bool
}

// Compat loads seed, ranks every other active row against it, and returns
// the ranked list `compat` prints as path|bpm|key|energy|score.
func Compat(cat *catalogue.Catalogue, params CompatParams) ([]compat.Candidate, error) {
	seedRow, err := cat.GetRow(params.Path)
	if err != nil {
		return nil, err
	}
	rows, err := cat.AllActiveRows()
	if err != nil {
		return nil, err
	}

	seed := rowToTrack(seedRow)
	pool := candidatePool(rows, params.Path)

	results, _, err := compat.Query(params.Path, seed, pool, params.Top, params.PreferRelative)
	return results, err
}

// CompatExportParams is the parsed form of `compat-export`.
type CompatExportParams struct {
	CompatParams
	Out string
}

// compatCSVHeader is written as the first line of every compat-export CSV.
var compatCSVHeader = []string{"path", "bpm", "key", "energy", "score"}

// CompatExport runs Compat and writes the ranked list as CSV to params.Out.
func CompatExport(cat *catalogue.Catalogue, params CompatExportParams) error {
	results, err := Compat(cat, params.CompatParams)
	if err != nil {
		return err
	}

	f, err := os.Create(params.Out)
	if err != nil {
		return errs.E(errs.OpCompatQuery, errs.ErrIO, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(compatCSVHeader); err != nil {
		return errs.E(errs.OpCompatQuery, errs.ErrIO, err)
	}
	for _, r := range results {
		row := []string{
			r.Path,
			strconv.FormatFloat(r.BPM, 'f', 2, 64),
			r.Key,
			strconv.FormatFloat(r.Energy, 'f', 3, 64),
			strconv.FormatFloat(r.Score, 'f', 4, 64),
		}
		if err := w.Write(row); err != nil {
			return errs.E(errs.OpCompatQuery, errs.ErrIO, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errs.E(errs.OpCompatQuery, errs.ErrIO, err)
	}
	return nil
}

// FormatCompatLine renders one ranked result the way `compat` prints it:
// path|bpm|key|energy|score.
func FormatCompatLine(c compat.Candidate) string {
	return fmt.Sprintf("%s|%.2f|%s|%.3f|%.4f", c.Path, c.BPM, c.Key, c.Energy, c.Score)
}
