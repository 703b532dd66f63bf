package catalogue

import (
	"database/sql"
	"errors"
	"time"

	"github.com/llehouerou/waves/internal/errs"
	"github.com/llehouerou/waves/internal/fingerprint"
)

// IsCached stats path and compares it against the stored row. A file that
// does not exist is a miss, not an error. Only genuine IO faults during
// stat return an error; a stat failure on an otherwise-expected path is
// treated as a miss.
func (c *Catalogue) IsCached(path string) (bool, *Row, error) {
	info, exists, err := fingerprint.Stat(path)
	if err != nil {
		return false, nil, errs.E(errs.OpCatalogueIsCached, errs.ErrIO, err)
	}
	if !exists {
		return false, nil, nil
	}

	row, err := c.loadRow(path)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil, nil
		}
		return false, nil, errs.E(errs.OpCatalogueIsCached, errs.ErrIntegrity, err)
	}

	if row.Status != StatusActive {
		return false, row, nil
	}

	if row.Mtime >= info.Mtime && row.HasCompleteData {
		now := nowSeconds()
		if _, err := c.db.Exec(`UPDATE tracks SET last_verified = ? WHERE path = ?`, now, path); err != nil {
			return false, row, errs.E(errs.OpCatalogueIsCached, errs.ErrIO, err)
		}
		row.LastVerified = now
		return true, row, nil
	}

	return false, row, nil
}

// BatchIsCached checks a set of paths in one query plus an in-process stat
// loop, updating last_verified for all hits in a single batched statement.
func (c *Catalogue) BatchIsCached(paths []string) (map[string]bool, error) {
	results := make(map[string]bool, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	rows, err := c.loadRows(paths)
	if err != nil {
		return nil, errs.E(errs.OpCatalogueIsCached, errs.ErrIntegrity, err)
	}

	var hits []string
	now := nowSeconds()
	for _, p := range paths {
		info, exists, statErr := fingerprint.Stat(p)
		if statErr != nil || !exists {
			results[p] = false
			continue
		}
		row, ok := rows[p]
		if !ok || row.Status != StatusActive {
			results[p] = false
			continue
		}
		if row.Mtime >= info.Mtime && row.HasCompleteData {
			results[p] = true
			hits = append(hits, p)
		} else {
			results[p] = false
		}
	}

	if len(hits) > 0 {
		q := `UPDATE tracks SET last_verified = ? WHERE path IN (` + placeholders(len(hits)) + `)`
		args := append([]any{now}, argsOf(hits)...)
		if _, err := c.db.Exec(q, args...); err != nil {
			return nil, errs.E(errs.OpCatalogueIsCached, errs.ErrIO, err)
		}
	}

	return results, nil
}

// Exists reports whether path has any row at all, regardless of mtime or
// completeness — the presence check the Scanner Orchestrator's
// incremental mode uses, as opposed to IsCached's freshness check.
func (c *Catalogue) Exists(path string) (bool, error) {
	var dummy int
	err := c.db.QueryRow(`SELECT 1 FROM tracks WHERE path = ?`, path).Scan(&dummy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, errs.E(errs.OpCatalogueIsCached, errs.ErrIntegrity, err)
	}
	return true, nil
}

func nowSeconds() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}
