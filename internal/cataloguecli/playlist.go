package cataloguecli

import (
	"bufio"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/llehouerou/waves/internal/catalogue"
	"github.com/llehouerou/waves/internal/errs"
	"github.com/llehouerou/waves/internal/playlist"
)

// PlaylistGenerateParams is the parsed form of `playlist generate`.
type PlaylistGenerateParams struct {
	Seed           string
	Length         int
	Curve          string
	BPMTolerance   float64
	PreferRelative bool
	Out            string
}

// PlaylistGenerate resolves the seed row, pulls every other active row as
// the candidate pool, runs the sequencer, and writes the plan to
// params.Out — M3U or CSV depending on its extension.
func PlaylistGenerate(cat *catalogue.Catalogue, params PlaylistGenerateParams) (*playlist.Result, error) {
	seedRow, err := cat.GetRow(params.Seed)
	if err != nil {
		return nil, err
	}
	rows, err := cat.AllActiveRows()
	if err != nil {
		return nil, err
	}

	seed := playlist.Candidate{Path: params.Seed, Track: rowToTrack(seedRow)}
	candidates := make([]playlist.Candidate, 0, len(rows))
	for _, r := range rows {
		if r.Path == params.Seed {
			continue
		}
		candidates = append(candidates, playlist.Candidate{Path: r.Path, Track: rowToTrack(r)})
	}

	cfg := playlist.Config{
		Length:         params.Length,
		Curve:          params.Curve,
		BPMTolerance:   params.BPMTolerance,
		PreferRelative: params.PreferRelative,
		DedupeByISRC:   true,
	}

	result, _, err := playlist.Generate(seed, candidates, cfg)
	if err != nil {
		return nil, err
	}

	if params.Out != "" {
		if err := writePlaylist(params.Out, result.Plan); err != nil {
			return result, err
		}
	}
	return result, nil
}

func writePlaylist(out string, plan []playlist.Candidate) error {
	f, err := os.Create(out)
	if err != nil {
		return errs.E(errs.OpPlaylistPlan, errs.ErrIO, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(out), ".csv") {
		return writePlaylistCSV(f, plan)
	}
	return writePlaylistM3U(f, plan)
}

func writePlaylistM3U(f *os.File, plan []playlist.Candidate) error {
	w := bufio.NewWriter(f)
	if _, err := w.WriteString("#EXTM3U\n"); err != nil {
		return errs.E(errs.OpPlaylistPlan, errs.ErrIO, err)
	}
	for _, c := range plan {
		// Duration isn't tracked per-row in the catalogue, so every entry
		// uses -1 (unknown), the value #EXTINF reserves for that case.
		title := filepath.Base(c.Path)
		if _, err := w.WriteString("#EXTINF:-1," + title + "\n" + c.Path + "\n"); err != nil {
			return errs.E(errs.OpPlaylistPlan, errs.ErrIO, err)
		}
	}
	if err := w.Flush(); err != nil {
		return errs.E(errs.OpPlaylistPlan, errs.ErrIO, err)
	}
	return nil
}

func writePlaylistCSV(f *os.File, plan []playlist.Candidate) error {
	w := csv.NewWriter(f)
	if err := w.Write([]string{"path", "bpm", "key", "energy"}); err != nil {
		return errs.E(errs.OpPlaylistPlan, errs.ErrIO, err)
	}
	for _, c := range plan {
		row := []string{
			c.Path,
			strconv.FormatFloat(c.BPM, 'f', 2, 64),
			c.CamelotKey,
			strconv.FormatFloat(c.Energy, 'f', 3, 64),
		}
		if err := w.Write(row); err != nil {
			return errs.E(errs.OpPlaylistPlan, errs.ErrIO, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errs.E(errs.OpPlaylistPlan, errs.ErrIO, err)
	}
	return nil
}
