package catalogue

import (
	"io"
	"os"
	"time"

	"github.com/llehouerou/waves/internal/errs"
)

// Optimize refreshes planner statistics, vacuums only when the free-page
// count exceeds a threshold, and reindexes.
func (c *Catalogue) Optimize() error {
	if _, err := c.db.Exec(`ANALYZE`); err != nil {
		return errs.E(errs.OpCatalogueOptimize, errs.ErrIO, err)
	}

	var freelist, pageCount int
	if err := c.db.QueryRow(`PRAGMA freelist_count`).Scan(&freelist); err != nil {
		return errs.E(errs.OpCatalogueOptimize, errs.ErrIO, err)
	}
	if err := c.db.QueryRow(`PRAGMA page_count`).Scan(&pageCount); err != nil {
		return errs.E(errs.OpCatalogueOptimize, errs.ErrIO, err)
	}

	// Vacuum only once free pages are a significant share of the file;
	// otherwise the exclusive lock VACUUM takes isn't worth paying for.
	if pageCount > 0 && float64(freelist)/float64(pageCount) > 0.25 {
		if _, err := c.db.Exec(`VACUUM`); err != nil {
			return errs.E(errs.OpCatalogueOptimize, errs.ErrIO, err)
		}
	}

	if _, err := c.db.Exec(`REINDEX`); err != nil {
		return errs.E(errs.OpCatalogueOptimize, errs.ErrIO, err)
	}
	return nil
}

// Backup performs an online copy of the catalogue file to destPath. SQLite
// WAL mode lets readers continue against the live file while the copy
// runs; this does not hold an exclusive lock beyond a single checkpoint.
func (c *Catalogue) Backup(destPath string) error {
	if _, err := c.db.Exec(`PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return errs.E(errs.OpCatalogueBackup, errs.ErrIO, err)
	}

	var seq int
	var name, dbPath string
	if err := c.db.QueryRow(`PRAGMA database_list`).Scan(&seq, &name, &dbPath); err != nil {
		return errs.E(errs.OpCatalogueBackup, errs.ErrIO, err)
	}

	src, err := os.Open(dbPath)
	if err != nil {
		return errs.E(errs.OpCatalogueBackup, errs.ErrIO, err)
	}
	defer src.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return errs.E(errs.OpCatalogueBackup, errs.ErrIO, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return errs.E(errs.OpCatalogueBackup, errs.ErrIO, err)
	}
	return nil
}

// Stats summarizes the catalogue for the summary CLI entry point.
func (c *Catalogue) Stats() (*Stats, error) {
	var s Stats
	s.GeneratedAt = time.Now()

	if err := c.db.QueryRow(`SELECT COUNT(*) FROM tracks`).Scan(&s.TotalTracks); err != nil {
		return nil, errs.E(errs.OpCatalogueQuery, errs.ErrIntegrity, err)
	}
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM tracks WHERE status = 'active'`).Scan(&s.ActiveTracks); err != nil {
		return nil, errs.E(errs.OpCatalogueQuery, errs.ErrIntegrity, err)
	}
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM tracks WHERE status = 'missing'`).Scan(&s.MissingTracks); err != nil {
		return nil, errs.E(errs.OpCatalogueQuery, errs.ErrIntegrity, err)
	}
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM tracks WHERE has_complete_data = 1`).Scan(&s.AnalyzedTracks); err != nil {
		return nil, errs.E(errs.OpCatalogueQuery, errs.ErrIntegrity, err)
	}

	var avgBPM *float64
	if err := c.db.QueryRow(`SELECT AVG(bpm) FROM tracks WHERE bpm IS NOT NULL`).Scan(&avgBPM); err != nil {
		return nil, errs.E(errs.OpCatalogueQuery, errs.ErrIntegrity, err)
	}
	if avgBPM != nil {
		s.AverageBPM = *avgBPM
	}

	rows, err := c.db.Query(`
		SELECT genre, COUNT(*) AS n FROM tracks
		WHERE genre IS NOT NULL AND status = 'active'
		GROUP BY genre ORDER BY n DESC LIMIT 10`)
	if err != nil {
		return nil, errs.E(errs.OpCatalogueQuery, errs.ErrIntegrity, err)
	}
	defer rows.Close()
	for rows.Next() {
		var gc GenreCount
		if err := rows.Scan(&gc.Genre, &gc.Count); err != nil {
			return nil, errs.E(errs.OpCatalogueQuery, errs.ErrIntegrity, err)
		}
		s.TopGenres = append(s.TopGenres, gc)
	}

	var pageCount, pageSize int
	_ = c.db.QueryRow(`PRAGMA page_count`).Scan(&pageCount)
	_ = c.db.QueryRow(`PRAGMA page_size`).Scan(&pageSize)
	s.DatabaseSizeMB = float64(pageCount*pageSize) / (1024 * 1024)

	return &s, rows.Err()
}

// CleanupOrphans flips status to missing for every active track whose
// path no longer exists on disk, the periodic orphan sweep named in
// §4.8's maintenance operations. Returns the number of rows flipped.
func (c *Catalogue) CleanupOrphans() (int, error) {
	rows, err := c.db.Query(`SELECT path FROM tracks WHERE status = 'active'`)
	if err != nil {
		return 0, errs.E(errs.OpCatalogueQuery, errs.ErrIntegrity, err)
	}

	var orphans []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			rows.Close()
			return 0, errs.E(errs.OpCatalogueQuery, errs.ErrIntegrity, err)
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			orphans = append(orphans, path)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, errs.E(errs.OpCatalogueQuery, errs.ErrIntegrity, err)
	}

	if len(orphans) == 0 {
		return 0, nil
	}
	if err := c.MarkMissing(orphans); err != nil {
		return 0, err
	}
	return len(orphans), nil
}
