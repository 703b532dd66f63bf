package catalogue

import (
	"github.com/llehouerou/waves/internal/errs"
)

// Seed is the minimal reference a candidate query is ranked against.
type Seed struct {
	BPM   float64
	Genre string
}

// QueryCandidates returns active, fully-analyzed, bpm-bearing rows,
// optionally windowed by seed.BPM*(1±tolerance) and equal genre, ordered
// by |bpm - seed.bpm| then analyzed_at DESC, capped at filters.MaxResults.
func (c *Catalogue) QueryCandidates(seed Seed, filters CandidateFilters) ([]*Row, error) {
	q := `SELECT ` + rowColumns + ` FROM tracks
		WHERE status = 'active' AND has_complete_data = 1 AND bpm IS NOT NULL`
	args := []any{}

	if filters.BPMTolerance > 0 {
		q += ` AND bpm BETWEEN ? AND ?`
		args = append(args, seed.BPM*(1-filters.BPMTolerance), seed.BPM*(1+filters.BPMTolerance))
	}
	if filters.Genre != "" {
		q += ` AND genre = ?`
		args = append(args, filters.Genre)
	}

	q += ` ORDER BY ABS(bpm - ?) ASC, analyzed_at DESC`
	args = append(args, seed.BPM)
	if filters.MaxResults > 0 {
		q += ` LIMIT ?`
		args = append(args, filters.MaxResults)
	}

	rows, err := c.db.Query(q, args...)
	if err != nil {
		return nil, errs.E(errs.OpCatalogueQuery, errs.ErrIntegrity, err)
	}
	defer rows.Close()

	var out []*Row
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, errs.E(errs.OpCatalogueQuery, errs.ErrIntegrity, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// MarkMissing soft-deletes a set of paths by flipping status to missing in
// one statement. Rows are never hard-deleted.
func (c *Catalogue) MarkMissing(paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	q := `UPDATE tracks SET status = 'missing' WHERE path IN (` + placeholders(len(paths)) + `)`
	if _, err := c.db.Exec(q, argsOf(paths)...); err != nil {
		return errs.E(errs.OpCatalogueQuery, errs.ErrIO, err)
	}
	return nil
}
