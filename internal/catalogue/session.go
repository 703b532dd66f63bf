package catalogue

import (
	"github.com/llehouerou/waves/internal/errs"
)

// StartSession creates a ScanSession row with status running and returns
// its id.
func (c *Catalogue) StartSession(root, mode string) (int64, error) {
	res, err := c.db.Exec(
		`INSERT INTO scan_sessions (started_at, root_path, mode, status) VALUES (?, ?, ?, 'running')`,
		nowSeconds(), root, mode,
	)
	if err != nil {
		return 0, errs.E(errs.OpCatalogueSession, errs.ErrIO, err)
	}
	return res.LastInsertId()
}

// UpdateSession writes the current counters for a running session. It does
// not change status or ended_at.
func (c *Catalogue) UpdateSession(id int64, counters SessionCounters) error {
	_, err := c.db.Exec(`
		UPDATE scan_sessions SET
			discovered = ?, processed = ?, cached = ?, analyzed = ?, skipped = ?, errors = ?
		WHERE id = ?`,
		counters.Discovered, counters.Processed, counters.Cached, counters.Analyzed, counters.Skipped, counters.Errors, id,
	)
	if err != nil {
		return errs.E(errs.OpCatalogueSession, errs.ErrIO, err)
	}
	return nil
}

// CompleteSession closes a session exactly once with its final counters
// and a terminal status (completed, cancelled, or error).
func (c *Catalogue) CompleteSession(id int64, counters SessionCounters, status string, errMsg string) error {
	now := nowSeconds()
	_, err := c.db.Exec(`
		UPDATE scan_sessions SET
			ended_at = ?, status = ?, error_message = ?,
			discovered = ?, processed = ?, cached = ?, analyzed = ?, skipped = ?, errors = ?,
			duration_secs = ? - started_at
		WHERE id = ?`,
		now, status, errMsg,
		counters.Discovered, counters.Processed, counters.Cached, counters.Analyzed, counters.Skipped, counters.Errors,
		now, id,
	)
	if err != nil {
		return errs.E(errs.OpCatalogueSession, errs.ErrIO, err)
	}
	return nil
}

// GetSession loads a ScanSession by id.
func (c *Catalogue) GetSession(id int64) (*ScanSession, error) {
	row := c.db.QueryRow(`
		SELECT id, started_at, ended_at, root_path, mode, status,
			discovered, processed, cached, analyzed, skipped, errors,
			peak_memory_mb, duration_secs, error_message
		FROM scan_sessions WHERE id = ?`, id)

	var s ScanSession
	var endedAt, peakMem, duration *float64
	var errMsg *string
	if err := row.Scan(
		&s.ID, &s.StartedAt, &endedAt, &s.RootPath, &s.Mode, &s.Status,
		&s.Discovered, &s.Processed, &s.Cached, &s.Analyzed, &s.Skipped, &s.Errors,
		&peakMem, &duration, &errMsg,
	); err != nil {
		return nil, errs.E(errs.OpCatalogueSession, errs.ErrNotFound, err)
	}
	s.EndedAt = endedAt
	if peakMem != nil {
		s.PeakMemoryMB = *peakMem
	}
	if duration != nil {
		s.DurationSecs = *duration
	}
	if errMsg != nil {
		s.ErrorMessage = *errMsg
	}
	return &s, nil
}
