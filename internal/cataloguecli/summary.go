package cataloguecli

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/llehouerou/waves/internal/catalogue"
	"github.com/llehouerou/waves/internal/errs"
)

// SummaryParams is the parsed form of `summary [--csv F]`.
type SummaryParams struct {
	CSV string
}

// Summary returns the catalogue-wide counts, averages, and top-genre
// breakdown `summary` prints, optionally also writing them to params.CSV.
func Summary(cat *catalogue.Catalogue, params SummaryParams) (*catalogue.Stats, error) {
	stats, err := cat.Stats()
	if err != nil {
		return nil, err
	}
	if params.CSV != "" {
		if err := writeSummaryCSV(params.CSV, stats); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func writeSummaryCSV(path string, stats *catalogue.Stats) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.E(errs.OpCatalogueQuery, errs.ErrIO, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	rows := [][]string{
		{"metric", "value"},
		{"total_tracks", strconv.Itoa(stats.TotalTracks)},
		{"active_tracks", strconv.Itoa(stats.ActiveTracks)},
		{"missing_tracks", strconv.Itoa(stats.MissingTracks)},
		{"analyzed_tracks", strconv.Itoa(stats.AnalyzedTracks)},
		{"average_bpm", strconv.FormatFloat(stats.AverageBPM, 'f', 2, 64)},
		{"database_size_mb", strconv.FormatFloat(stats.DatabaseSizeMB, 'f', 2, 64)},
	}
	for _, gc := range stats.TopGenres {
		rows = append(rows, []string{"genre:" + gc.Genre, strconv.Itoa(gc.Count)})
	}

	if err := w.WriteAll(rows); err != nil {
		return errs.E(errs.OpCatalogueQuery, errs.ErrIO, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errs.E(errs.OpCatalogueQuery, errs.ErrIO, err)
	}
	return nil
}
